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
	// EndPtBurnAsset burns units of an asset type.
	EndPtBurnAsset EndPtName = "BurnAsset"
)

func init() {
	registrar[EndPtBurnAsset] = NewBurnAsset
}

// BurnAsset controls the retirement of units of an asset type. Only the
// author of the asset type's collection can burn, and only out of their own
// balance.
type BurnAsset struct {
	Caller    string
	AssetType int64
	Amount    int64
	Memo      string
}

// NewBurnAsset constructs and initializes the endpoint.
func NewBurnAsset(
	r *http.Request,
) (Endpoint, error) {
	return &BurnAsset{}, nil
}

// Validate validates the input parameters.
func (e *BurnAsset) Validate(
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
func (e *BurnAsset) Execute(
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
			"The asset type you are trying to burn does not exist: %d.",
			e.AssetType,
		))
	}

	if err := assetType.Retire(ctx, e.Amount); err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrInsufficientSupply:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "insufficient_supply",
				"The amount you are trying to burn (%d) exceeds the "+
					"issued supply of asset type %d: %d.",
				e.Amount, assetType.ID, assetType.Supply,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	collection, err := model.LoadCollectionByID(ctx, assetType.Collection)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if collection == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The collection associated with asset type %d does not "+
				"exist: %d.",
			assetType.ID, assetType.Collection,
		))
	}

	if e.Caller != collection.Author {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			401, "unauthorized",
			"Only the author of the collection can burn units of this "+
				"asset type: %s.",
			collection.Author,
		))
	}

	if err := assetType.Save(ctx); err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	// Burn only ever draws from the author's own holdings.
	fromBalance, err := model.Debit(ctx,
		collection.Author, assetType.ID, e.Amount)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrBalanceNotFound, model.ErrInsufficientBalance:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "insufficient_balance",
				"Your balance of asset type %d is insufficient to burn "+
					"%d units.",
				assetType.ID, e.Amount,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	event, err := model.CreateBalanceChangedEvent(ctx,
		assetType.ID, collection.Author, "", e.Amount, fromBalance, 0,
		e.Memo)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx, "forge")

	err = queuePropagation(ctx, []*model.Event{event})
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"asset_type": format.JSONPtr(forge.NewAssetTypeResource(ctx,
			assetType)),
		"events": format.JSONPtr([]forge.EventResource{
			forge.NewEventResource(ctx, event),
		}),
	}, nil
}
