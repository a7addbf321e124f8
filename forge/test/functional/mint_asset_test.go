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

func setupMintAsset(
	t *testing.T,
) (*test.Forge, *test.ForgeAccount, forge.AssetTypeResource) {
	f := test.CreateForge(t)
	a := f.CreateAccount(t, "alice")
	c := a.CreateCollection(t, 0, "punks")
	at := a.CreateAssetType(t, c.ID, 100, "punk")

	return f, a, at
}

func TestMintAssetToAuthor(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupMintAsset(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"10"},
			"memo":   {"first batch"},
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
	assert.Equal(t, int64(10), assetType.Supply)
	assert.Equal(t, int64(100), assetType.MaxSupply)

	// Minting to the author emits a single issuance event.
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "balance_changed", events[0].Kind)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, events[0].Created*1000*1000), test.PostLatency)
	assert.Equal(t, "", events[0].Source)
	assert.Equal(t, "alice", events[0].Destination)
	assert.Equal(t, int64(10), events[0].Amount)
	assert.Equal(t, int64(0), events[0].SourceBalance)
	assert.Equal(t, int64(10), events[0].DestinationBalance)
	assert.Equal(t, "first batch", events[0].Memo)
}

func TestMintAssetToAnotherAccount(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupMintAsset(t)
	defer f.Close()

	bob := f.CreateAccount(t, "bob")

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"7"},
			"memo":   {"for bob"},
		})

	var events []forge.EventResource
	if err := raw.Extract("events", &events); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 200, status)
	assert.Equal(t, 2, len(events))

	// The issuance event followed by the notification to the recipient.
	assert.Equal(t, "", events[0].Source)
	assert.Equal(t, "alice", events[0].Destination)
	assert.Equal(t, int64(7), events[0].DestinationBalance)
	assert.Equal(t, "alice", events[1].Source)
	assert.Equal(t, "bob", events[1].Destination)
	assert.Equal(t, int64(7), events[1].DestinationBalance)

	// The units land on bob's balance.
	status, raw = bob.Get(t, "/balances")
	assert.Equal(t, 200, status)

	var balances []forge.BalanceResource
	if err := raw.Extract("balances", &balances); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1, len(balances))
	assert.Equal(t, int64(7), balances[0].Quantity)
	assert.Equal(t, "alice", balances[0].Payer)
}

func TestMintAssetExceedingMaxSupply(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupMintAsset(t)
	defer f.Close()

	status, _ := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"60"},
		})
	assert.Equal(t, 200, status)

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"41"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "supply_exceeded", e.Code)

	// The failed mint leaves the supply untouched.
	status, raw = f.Get(t, fmt.Sprintf("/assets/%d", at.ID))
	assert.Equal(t, 200, status)

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(60), assetType.Supply)
}

func TestMintAssetAsNonAuthor(
	t *testing.T,
) {
	t.Parallel()
	f, _, at := setupMintAsset(t)
	defer f.Close()

	bob := f.CreateAccount(t, "bob")

	status, raw := bob.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"1"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 401, status)
	assert.Equal(t, "unauthorized", e.Code)
}

func TestMintAssetToUnknownAccount(
	t *testing.T,
) {
	t.Parallel()
	f, a, at := setupMintAsset(t)
	defer f.Close()

	status, raw := a.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"mallory"},
			"amount": {"1"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "account_unknown", e.Code)
}

func TestMintAssetUnknownAssetType(
	t *testing.T,
) {
	t.Parallel()
	f, a, _ := setupMintAsset(t)
	defer f.Close()

	status, raw := a.Post(t, "/assets/42/mint", url.Values{
		"to":     {"alice"},
		"amount": {"1"},
	})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 404, status)
	assert.Equal(t, "not_found", e.Code)
}
