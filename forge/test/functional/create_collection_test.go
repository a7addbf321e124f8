package functional

import (
	"net/url"
	"testing"
	"time"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/test"
	"github.com/spolu/forge/lib/errors"
	"github.com/stretchr/testify/assert"
)

func setupCreateCollection(
	t *testing.T,
) (*test.Forge, *test.ForgeAccount) {
	f := test.CreateForge(t)
	a := f.CreateAccount(t, "alice")

	return f, a
}

func TestCreateCollectionSimple(
	t *testing.T,
) {
	t.Parallel()
	f, a := setupCreateCollection(t)
	defer f.Close()

	status, raw := a.Post(t, "/collections", url.Values{
		"royalty":  {"25"},
		"metadata": {"https://forge.example.com/collections/punks.json"},
	})

	var collection forge.CollectionResource
	if err := raw.Extract("collection", &collection); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 201, status)
	assert.Equal(t, int64(1), collection.ID)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, collection.Created*1000*1000), test.PostLatency)
	assert.Equal(t, "alice", collection.Author)
	assert.Equal(t, int64(25), collection.Royalty)
	assert.Equal(t,
		"https://forge.example.com/collections/punks.json",
		collection.Metadata)
}

func TestCreateCollectionSequentialIDs(
	t *testing.T,
) {
	t.Parallel()
	f, a := setupCreateCollection(t)
	defer f.Close()

	c0 := a.CreateCollection(t, 0, "first")
	c1 := a.CreateCollection(t, 0, "second")

	assert.Equal(t, int64(1), c0.ID)
	assert.Equal(t, int64(2), c1.ID)
}

func TestCreateCollectionWithInvalidRoyalty(
	t *testing.T,
) {
	t.Parallel()
	f, a := setupCreateCollection(t)
	defer f.Close()

	status, raw := a.Post(t, "/collections", url.Values{
		"royalty":  {"1001"},
		"metadata": {"over the basis point cap"},
	})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_argument", e.Code)
}

func TestCreateCollectionWithoutAuthentication(
	t *testing.T,
) {
	t.Parallel()
	f, _ := setupCreateCollection(t)
	defer f.Close()

	status, raw := f.Post(t, "/collections", url.Values{
		"royalty":  {"0"},
		"metadata": {"anonymous"},
	})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "account_unknown", e.Code)
}

func TestRetrieveCollectionIsPublic(
	t *testing.T,
) {
	t.Parallel()
	f, a := setupCreateCollection(t)
	defer f.Close()

	c := a.CreateCollection(t, 50, "public metadata")

	status, raw := f.Get(t, "/collections/1")

	var collection forge.CollectionResource
	if err := raw.Extract("collection", &collection); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 200, status)
	assert.Equal(t, c.ID, collection.ID)
	assert.Equal(t, "alice", collection.Author)
	assert.Equal(t, int64(50), collection.Royalty)
}

func TestRetrieveCollectionNotFound(
	t *testing.T,
) {
	t.Parallel()
	f, _ := setupCreateCollection(t)
	defer f.Close()

	status, raw := f.Get(t, "/collections/42")

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 404, status)
	assert.Equal(t, "not_found", e.Code)
}
