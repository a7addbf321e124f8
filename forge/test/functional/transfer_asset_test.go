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

func setupTransferAsset(
	t *testing.T,
) (*test.Forge, []*test.ForgeAccount, forge.AssetTypeResource) {
	f := test.CreateForge(t)
	u := []*test.ForgeAccount{
		f.CreateAccount(t, "alice"),
		f.CreateAccount(t, "bob"),
	}
	c := u[0].CreateCollection(t, 0, "punks")
	at := u[0].CreateAssetType(t, c.ID, 100, "punk")

	status, _ := u[0].Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"20"},
		})
	if status != 200 {
		t.Fatalf("Unexpected status minting: %d", status)
	}

	return f, u, at
}

func TestTransferAssetSimple(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"8"},
			"memo":   {"here you go"},
		})

	var events []forge.EventResource
	if err := raw.Extract("events", &events); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 200, status)
	assert.Equal(t, 1, len(events))
	assert.Equal(t, "balance_changed", events[0].Kind)
	assert.Equal(t, "alice", events[0].Source)
	assert.Equal(t, "bob", events[0].Destination)
	assert.Equal(t, int64(8), events[0].Amount)
	assert.Equal(t, int64(12), events[0].SourceBalance)
	assert.Equal(t, int64(8), events[0].DestinationBalance)
	assert.Equal(t, "here you go", events[0].Memo)

	// The sender pays for the newly created destination balance row.
	status, raw = u[1].Get(t, "/balances")
	assert.Equal(t, 200, status)

	var balances []forge.BalanceResource
	if err := raw.Extract("balances", &balances); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(balances))
	assert.Equal(t, int64(8), balances[0].Quantity)
	assert.Equal(t, "alice", balances[0].Payer)
}

func TestTransferAssetEntireBalance(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, _ := u[0].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"20"},
		})
	assert.Equal(t, 200, status)

	// The source balance row is removed once it reaches zero.
	status, raw := u[0].Get(t, "/balances")
	assert.Equal(t, 200, status)

	var balances []forge.BalanceResource
	if err := raw.Extract("balances", &balances); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 0, len(balances))
}

func TestTransferAssetToSelf(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"1"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "invalid_argument", e.Code)
}

func TestTransferAssetFromAnotherAccount(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, raw := u[1].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"from":   {"alice"},
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

func TestTransferAssetToUnknownAccount(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
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

func TestTransferAssetWithInsufficientBalance(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	status, raw := u[0].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"bob"},
			"amount": {"21"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "insufficient_balance", e.Code)
}

func TestTransferAssetWithoutBalance(
	t *testing.T,
) {
	t.Parallel()
	f, u, at := setupTransferAsset(t)
	defer f.Close()

	// Bob holds no balance of the asset type at all.
	status, raw := u[1].Post(t,
		fmt.Sprintf("/assets/%d/transfer", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"1"},
		})

	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 400, status)
	assert.Equal(t, "insufficient_balance", e.Code)
}
