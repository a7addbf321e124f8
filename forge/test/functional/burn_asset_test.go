package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/test"
	"github.com/spolu/forge/lib/errors"
	"github.com/stretchr/testify/assert"
)

func setupBurnAsset(
	t *testing.T,
) (*test.Forge, *test.ForgeAccount, forge.AssetTypeResource) {
	f := test.CreateForge(t)
	a := f.CreateAccount(t, "alice")
	c := a.CreateCollection(t, 0, "punks")
	at := a.CreateAssetType(t, c.ID, 100, "punk")

	status, _ := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"20"},
		})
	if status != 200 {
		t.Fatalf("Unexpected status minting: %d", status)
	}

	return f, a, at
}

func TestBurnAssetSimple(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupBurnAsset(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"5"},
			"memo":   {"shrinking"},
		})

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}
	var events []forge.EventResource
	if err := raw.Extract("events", &events); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 200, status)
	assert.Equal(t, int64(15), assetType.Supply)
	assert.Equal(t, int64(100), assetType.MaxSupply)

	assert.Equal(t, 1, len(events))
	assert.Equal(t, "balance_changed", events[0].Kind)
	assert.Equal(t, "alice", events[0].Source)
	assert.Equal(t, "", events[0].Destination)
	assert.Equal(t, int64(5), events[0].Amount)
	assert.Equal(t, int64(15), events[0].SourceBalance)
	assert.Equal(t, int64(0), events[0].DestinationBalance)
	assert.Equal(t, "shrinking", events[0].Memo)
}

func TestBurnAssetEntireBalance(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupBurnAsset(t)
	defer f.Close()

	status, _ := a.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"20"},
		})
	assert.Equal(t, 200, status)

	// The balance row is removed once it reaches zero.
	status, raw := a.Get(t, "/balances")
	assert.Equal(t, 200, status)

	var balances []forge.BalanceResource
	if err := raw.Extract("balances", &balances); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, len(balances))
}

func TestBurnAssetExceedingSupply(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupBurnAsset(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"21"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "insufficient_supply", e.Code)
}

func TestBurnAssetWithInsufficientBalance(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupBurnAsset(t)
	defer f.Close()

	bob := f.CreateAccount(t, "bob")

	// Alice transfers most of her holdings away; she can no longer cover the
	// burn even though the issued supply could.
	status, _ := a.Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"15"},
		})
	assert.Equal(t, 200, status)
	_ = bob

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"10"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "insufficient_balance", e.Code)

	// The failed burn leaves the supply untouched.
	status, raw = f.Get(t, fmt.Sprintf("/assets/%d", at.ID))
	assert.Equal(t, 200, status)

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(20), assetType.Supply)
}

func TestBurnAssetAsNonAuthor(
	t *testing.T,
) {
	t.Parallel()
	f, _, at := setupBurnAsset(t)
	defer f.Close()

	bob := f.CreateAccount(t, "bob")

	status, raw := bob.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"1"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthorized", e.Code)
}
