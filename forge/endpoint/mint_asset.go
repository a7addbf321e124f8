package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/lib/authentication"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/format"
	"github.com/spolu/forge/lib/ptr"
	"github.com/spolu/forge/lib/svc"
)

const (
	// EndPtMintAsset mints units of an asset type.
	EndPtMintAsset EndPtName = "MintAsset"
)

func init() {
	registrar[EndPtMintAsset] = NewMintAsset
}

// MintAsset controls the issuance of new units of an asset type. Only the
// author of the asset type's collection can mint; issued units are credited
// to the specified recipient.
type MintAsset struct {
	Caller    string
	AssetType int64
	To        string
	Amount    int64
	Memo      string
}

// NewMintAsset constructs and initializes the endpoint.
func NewMintAsset(
	r *http.Request,
) (Endpoint, error) {
	return &MintAsset{}, nil
}

// Validate validates the input parameters.
func (e *MintAsset) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Account.Name

	// Validate asset.
	assetType, err := ValidateID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetType = *assetType

	// Validate to.
	to, err := ValidateAccountName(ctx, r.PostFormValue("to"))
	if err != nil {
		return errors.Trace(err)
	}
	e.To = *to

	// Validate amount.
	amount, err := ValidateAmount(ctx, r.PostFormValue("amount"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Amount = *amount

	// Validate memo.
	memo, err := ValidateMemo(ctx, r.PostFormValue("memo"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Memo = *memo

	return nil
}

// Execute executes the endpoint.
func (e *MintAsset) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	assetType, err := model.LoadAssetTypeByID(ctx, e.AssetType)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if assetType == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The asset type you are trying to mint does not exist: %d.",
			e.AssetType,
		))
	}

	events, err := executeMint(ctx,
		e.Caller, assetType, e.To, e.Amount, e.Memo)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	db.Commit(ctx, "forge")

	err = queuePropagation(ctx, events)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	l := []forge.EventResource{}
	for _, event := range events {
		event := event
		l = append(l, forge.NewEventResource(ctx, event))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"asset_type": format.JSONPtr(forge.NewAssetTypeResource(ctx,
			assetType)),
		"events": format.JSONPtr(l),
	}, nil
}
