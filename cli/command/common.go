package command

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spolu/forge/cli"
	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/out"
	"github.com/spolu/forge/lib/svc"
)

// userErrorf extracts the user error from a response and formats it.
func userErrorf(
	raw *svc.Resp,
) error {
	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(errors.Newf("(%s) %s", e.Code, e.Message))
}

// CreateCollection creates a collection authored by the currently
// authenticated account.
func CreateCollection(
	ctx context.Context,
	royalty int64,
	metadata string,
) (*forge.CollectionResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Creating collection] account=%s royalty=%d\n",
		s.Credentials.Name, royalty)

	status, raw, err := s.Post(ctx,
		"/collections",
		url.Values{
			"royalty":  {fmt.Sprintf("%d", royalty)},
			"metadata": {metadata},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusCreated {
		return nil, errors.Trace(userErrorf(raw))
	}

	var collection forge.CollectionResource
	err = raw.Extract("collection", &collection)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &collection, nil
}

// CreateAssetType creates an asset type under a collection authored by the
// currently authenticated account.
func CreateAssetType(
	ctx context.Context,
	collection int64,
	maxSupply int64,
	metadata string,
) (*forge.AssetTypeResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Creating asset type] account=%s collection=%d max_supply=%d\n",
		s.Credentials.Name, collection, maxSupply)

	status, raw, err := s.Post(ctx,
		fmt.Sprintf("/collections/%d/assets", collection),
		url.Values{
			"max_supply": {fmt.Sprintf("%d", maxSupply)},
			"metadata":   {metadata},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusCreated {
		return nil, errors.Trace(userErrorf(raw))
	}

	var assetType forge.AssetTypeResource
	err = raw.Extract("asset_type", &assetType)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &assetType, nil
}

// MintAsset mints units of an asset type to an account.
func MintAsset(
	ctx context.Context,
	assetType int64,
	to string,
	amount int64,
	memo string,
) (*forge.AssetTypeResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Minting] account=%s asset=%d to=%s amount=%d\n",
		s.Credentials.Name, assetType, to, amount)

	status, raw, err := s.Post(ctx,
		fmt.Sprintf("/assets/%d/mint", assetType),
		url.Values{
			"to":     {to},
			"amount": {fmt.Sprintf("%d", amount)},
			"memo":   {memo},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		return nil, errors.Trace(userErrorf(raw))
	}

	var a forge.AssetTypeResource
	err = raw.Extract("asset_type", &a)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &a, nil
}

// BurnAsset burns units of an asset type from the author's balance.
func BurnAsset(
	ctx context.Context,
	assetType int64,
	amount int64,
	memo string,
) (*forge.AssetTypeResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Burning] account=%s asset=%d amount=%d\n",
		s.Credentials.Name, assetType, amount)

	status, raw, err := s.Post(ctx,
		fmt.Sprintf("/assets/%d/burn", assetType),
		url.Values{
			"amount": {fmt.Sprintf("%d", amount)},
			"memo":   {memo},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		return nil, errors.Trace(userErrorf(raw))
	}

	var a forge.AssetTypeResource
	err = raw.Extract("asset_type", &a)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &a, nil
}

// TransferAsset transfers units of an asset type from the currently
// authenticated account to another account.
func TransferAsset(
	ctx context.Context,
	assetType int64,
	to string,
	amount int64,
	memo string,
) ([]forge.EventResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Transferring] account=%s asset=%d to=%s amount=%d\n",
		s.Credentials.Name, assetType, to, amount)

	status, raw, err := s.Post(ctx,
		fmt.Sprintf("/assets/%d/transfer", assetType),
		url.Values{
			"to":     {to},
			"amount": {fmt.Sprintf("%d", amount)},
			"memo":   {memo},
		})
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		return nil, errors.Trace(userErrorf(raw))
	}

	var events []forge.EventResource
	err = raw.Extract("events", &events)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return events, nil
}

// ListBalances lists balances of the currently authenticated account.
func ListBalances(
	ctx context.Context,
) ([]forge.BalanceResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Listing balances] account=%s\n", s.Credentials.Name)

	status, raw, err := s.Get(ctx, "/balances")
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		return nil, errors.Trace(userErrorf(raw))
	}

	var balances []forge.BalanceResource
	err = raw.Extract("balances", &balances)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return balances, nil
}

// ListAssetEvents lists the events of an asset type.
func ListAssetEvents(
	ctx context.Context,
	assetType int64,
) ([]forge.EventResource, error) {
	s, err := cli.SessionFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	out.Statf("[Listing events] asset=%d\n", assetType)

	status, raw, err := s.Get(ctx,
		fmt.Sprintf("/assets/%d/events", assetType))
	if err != nil {
		return nil, errors.Trace(err)
	}

	if *status != http.StatusOK {
		return nil, errors.Trace(userErrorf(raw))
	}

	var events []forge.EventResource
	err = raw.Extract("events", &events)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return events, nil
}
