package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/forge/test"
	"github.com/spolu/forge/lib/db"
	"github.com/stretchr/testify/assert"
)

// checkConservation verifies that the sum of all balances of an asset type
// matches its issued supply.
func checkConservation(
	t *testing.T,
	f *test.Forge,
	assetType int64,
) {
	ctx := db.Begin(f.Ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	at, err := model.LoadAssetTypeByID(ctx, assetType)
	if err != nil {
		t.Fatal(err)
	}

	balances, err := model.LoadBalanceListByAssetType(ctx, assetType)
	if err != nil {
		t.Fatal(err)
	}

	db.Commit(ctx, "forge")

	total := int64(0)
	for _, b := range balances {
		assert.True(t, b.Quantity > 0)
		total += b.Quantity
	}

	assert.Equal(t, at.Supply, total)
}

func TestAssetLifecycle(
	t *testing.T,
) {
	t.Parallel()

	f := test.CreateForge(t)
	defer f.Close()

	alice := f.CreateAccount(t, "alice")
	bob := f.CreateAccount(t, "bob")
	carol := f.CreateAccount(t, "carol")

	collection := alice.CreateCollection(t, 100, "alice's atelier")
	at := alice.CreateAssetType(t, collection.ID, 1000, "limited print")

	// Alice mints 100 units to herself and sends some around.
	status, _ := alice.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"100"},
		})
	assert.Equal(t, 200, status)
	checkConservation(t, f, at.ID)

	status, _ = alice.Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"30"},
			"memo":   {"for bob"},
		})
	assert.Equal(t, 200, status)
	checkConservation(t, f, at.ID)

	status, _ = bob.Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"carol"},
			"amount": {"10"},
		})
	assert.Equal(t, 200, status)
	checkConservation(t, f, at.ID)

	// Alice burns part of her remaining holdings.
	status, raw := alice.Post(t,
		fmt.Sprintf("/assets/%d/burn", at.ID),
		url.Values{
			"amount": {"50"},
		})
	assert.Equal(t, 200, status)
	checkConservation(t, f, at.ID)

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(50), assetType.Supply)

	// Final balances: alice 20, bob 20, carol 10.
	for _, c := range []struct {
		account  *test.ForgeAccount
		quantity int64
	}{
		{alice, 20},
		{bob, 20},
		{carol, 10},
	} {
		status, raw := c.account.Get(t, "/balances")
		assert.Equal(t, 200, status)

		var balances []forge.BalanceResource
		if err := raw.Extract("balances", &balances); err != nil {
			t.Fatal(err)
		}
		assert.Equal(t, 1, len(balances))
		assert.Equal(t, c.quantity, balances[0].Quantity)
	}

	// The event feed records the whole history in order.
	status, raw = f.Get(t, fmt.Sprintf("/assets/%d/events", at.ID))
	assert.Equal(t, 200, status)

	var events []forge.EventResource
	if err := raw.Extract("events", &events); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 5, len(events))
	assert.Equal(t, "asset_type_created", events[0].Kind)
	for _, e := range events[1:] {
		assert.Equal(t, "balance_changed", e.Kind)
	}
	assert.Equal(t, "", events[1].Source)
	assert.Equal(t, "alice", events[1].Destination)
	assert.Equal(t, "alice", events[2].Source)
	assert.Equal(t, "bob", events[2].Destination)
	assert.Equal(t, "bob", events[3].Source)
	assert.Equal(t, "carol", events[3].Destination)
	assert.Equal(t, "alice", events[4].Source)
	assert.Equal(t, "", events[4].Destination)
}
