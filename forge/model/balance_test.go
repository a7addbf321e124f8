package model

import (
	"math"
	"testing"

	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/stretchr/testify/assert"
)

func TestCreditAndDebit(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	q, err := Credit(ctx, "alice", 1, 10, "alice")
	assert.Nil(t, err)
	assert.Equal(t, int64(10), q)

	q, err = Credit(ctx, "alice", 1, 5, "alice")
	assert.Nil(t, err)
	assert.Equal(t, int64(15), q)

	q, err = Debit(ctx, "alice", 1, 7)
	assert.Nil(t, err)
	assert.Equal(t, int64(8), q)

	balance, err := LoadBalanceByOwnerAssetType(ctx, "alice", 1)
	assert.Nil(t, err)
	assert.NotNil(t, balance)
	assert.Equal(t, int64(8), balance.Quantity)

	db.Commit(ctx, "forge")
}

func TestDebitRemovesRowAtZero(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	_, err := Credit(ctx, "alice", 1, 10, "alice")
	assert.Nil(t, err)

	q, err := Debit(ctx, "alice", 1, 10)
	assert.Nil(t, err)
	assert.Equal(t, int64(0), q)

	balance, err := LoadBalanceByOwnerAssetType(ctx, "alice", 1)
	assert.Nil(t, err)
	assert.Nil(t, balance)

	db.Commit(ctx, "forge")
}

func TestDebitWithoutBalance(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	_, err := Debit(ctx, "alice", 1, 1)
	assert.NotNil(t, err)
	switch errors.Cause(err).(type) {
	case ErrBalanceNotFound:
	default:
		t.Fatalf("Unexpected error: %+v", err)
	}

	db.Commit(ctx, "forge")
}

func TestDebitInsufficientBalance(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	_, err := Credit(ctx, "alice", 1, 5, "alice")
	assert.Nil(t, err)

	_, err = Debit(ctx, "alice", 1, 6)
	assert.NotNil(t, err)
	switch errors.Cause(err).(type) {
	case ErrInsufficientBalance:
	default:
		t.Fatalf("Unexpected error: %+v", err)
	}

	db.Commit(ctx, "forge")
}

func TestCreditOverflow(
	t *testing.T,
) {
	t.Parallel()
	ctx := setupModelTest(t)

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	_, err := Credit(ctx, "alice", 1, math.MaxInt64, "alice")
	assert.Nil(t, err)

	_, err = Credit(ctx, "alice", 1, 1, "alice")
	assert.NotNil(t, err)
	switch errors.Cause(err).(type) {
	case ErrBalanceOverflow:
	default:
		t.Fatalf("Unexpected error: %+v", err)
	}

	db.Commit(ctx, "forge")
}
