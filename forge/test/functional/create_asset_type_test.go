package functional

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/test"
	"github.com/spolu/forge/lib/errors"
	"github.com/stretchr/testify/assert"
)

func setupCreateAssetType(
	t *testing.T,
) (*test.Forge, *test.ForgeAccount, forge.CollectionResource) {
	f := test.CreateForge(t)
	a := f.CreateAccount(t, "alice")
	c := a.CreateCollection(t, 0, "punks")

	return f, a, c
}

func TestCreateAssetTypeSimple(
	t *testing.T,
) {
	t.Parallel()
	f, a, c := setupCreateAssetType(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/collections/%d/assets", c.ID),
		url.Values{
			"max_supply": {"1000"},
			"metadata":   {"https://forge.example.com/assets/punk.json"},
		})

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 201, status)
	assert.Equal(t, int64(1), assetType.ID)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, assetType.Created*1000*1000), test.PostLatency)
	assert.Equal(t, c.ID, assetType.Collection)
	assert.Equal(t, int64(0), assetType.Supply)
	assert.Equal(t, int64(1000), assetType.MaxSupply)
}

func TestCreateAssetTypeWithInitialSupply(
	t *testing.T,
) {
	t.Parallel()
	f, a, c := setupCreateAssetType(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/collections/%d/assets", c.ID),
		url.Values{
			"max_supply":     {"100"},
			"initial_supply": {"10"},
			"metadata":       {"premined"},
		})

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 201, status)
	assert.Equal(t, int64(10), assetType.Supply)

	// The initial supply is credited to the author.
	status, raw = a.Get(t, "/balances")
	assert.Equal(t, 200, status)

	var balances []forge.BalanceResource
	if err := raw.Extract("balances", &balances); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1, len(balances))
	assert.Equal(t, "alice", balances[0].Owner)
	assert.Equal(t, assetType.ID, balances[0].AssetType)
	assert.Equal(t, int64(10), balances[0].Quantity)

	// The issuance is recorded with the reserved memo.
	status, raw = f.Get(t, fmt.Sprintf("/assets/%d/events", assetType.ID))
	assert.Equal(t, 200, status)

	var events []forge.EventResource
	if err := raw.Extract("events", &events); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 2, len(events))
	assert.Equal(t, "asset_type_created", events[0].Kind)
	assert.Equal(t, "balance_changed", events[1].Kind)
	assert.Equal(t, "", events[1].Source)
	assert.Equal(t, "alice", events[1].Destination)
	assert.Equal(t, int64(10), events[1].Amount)
	assert.Equal(t, "create and mint", events[1].Memo)
}

func TestCreateAssetTypeInUnknownCollection(
	t *testing.T,
) {
	t.Parallel()
	f, a, _ := setupCreateAssetType(t)
	defer f.Close()

	status, raw := a.Post(t, "/collections/42/assets", url.Values{
		"max_supply": {"10"},
		"metadata":   {"orphan"},
	})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 404, status)
	assert.Equal(t, "not_found", e.Code)
}

func TestCreateAssetTypeAsNonAuthor(
	t *testing.T,
) {
	t.Parallel()
	f, _, c := setupCreateAssetType(t)
	defer f.Close()

	bob := f.CreateAccount(t, "bob")

	status, raw := bob.Post(t,
		fmt.Sprintf("/collections/%d/assets", c.ID),
		url.Values{
			"max_supply": {"10"},
			"metadata":   {"stolen"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthorized", e.Code)
}

func TestCreateAssetTypeWithInvalidMaxSupply(
	t *testing.T,
) {
	t.Parallel()
	f, a, c := setupCreateAssetType(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/collections/%d/assets", c.ID),
		url.Values{
			"max_supply": {"0"},
			"metadata":   {"empty"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_argument", e.Code)
}
