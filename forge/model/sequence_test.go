package model

import (
	"context"
	"testing"

	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/env"
	"github.com/stretchr/testify/assert"

	_ "github.com/spolu/forge/forge/model/schemas"
)

func setupModelTest(
	t *testing.T,
) context.Context {
	ctx := context.Background()

	ctx = env.With(ctx, &env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	})

	forgeDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := db.CreateDBTables(ctx, "forge", forgeDB); err != nil {
		t.Fatal(err)
	}
	ctx = db.WithDB(ctx, "forge", forgeDB)

	return ctx
}

func TestAllocateIDStartsAtOne(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	id, err := AllocateID(ctx, "collections")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)

	id, err = AllocateID(ctx, "collections")
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id)

	db.Commit(ctx, "forge")
}

func TestAllocateIDIndependentSequences(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	id, err := AllocateID(ctx, "collections")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)

	id, err = AllocateID(ctx, "asset_types")
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id)

	db.Commit(ctx, "forge")
}
