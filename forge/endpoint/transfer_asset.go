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
	// EndPtTransferAsset transfers units of an asset type between accounts.
	EndPtTransferAsset EndPtName = "TransferAsset"
)

func init() {
	registrar[EndPtTransferAsset] = NewTransferAsset
}

// TransferAsset controls the transfer of units of an asset type from one
// account to another. The authenticated caller must be the source of the
// transfer.
type TransferAsset struct {
	Caller    string
	AssetType int64
	From      string
	To        string
	Amount    int64
	Memo      string
}

// NewTransferAsset constructs and initializes the endpoint.
func NewTransferAsset(
	r *http.Request,
) (Endpoint, error) {
	return &TransferAsset{}, nil
}

// Validate validates the input parameters.
func (e *TransferAsset) Validate(
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

	// Validate from, defaulting to the authenticated caller.
	e.From = e.Caller
	if f := r.PostFormValue("from"); f != "" {
		from, err := ValidateAccountName(ctx, f)
		if err != nil {
			return errors.Trace(err)
		}
		e.From = *from
	}

	// Validate to.
	to, err := ValidateAccountName(ctx, r.PostFormValue("to"))
	if err != nil {
		return errors.Trace(err)
	}
	e.To = *to

	if e.From == e.To {
		return errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_argument",
			"You cannot transfer units of an asset type to yourself: %s.",
			e.From,
		))
	}

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
func (e *TransferAsset) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	if e.Caller != e.From {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			401, "unauthorized",
			"Only the owner of the source balance can transfer units "+
				"out of it: %s.",
			e.From,
		))
	}

	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	to, err := model.LoadAccountByName(ctx, e.To)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if to == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "account_unknown",
			"The account you are trying to transfer to does not "+
				"exist: %s.",
			e.To,
		))
	}

	assetType, err := model.LoadAssetTypeByID(ctx, e.AssetType)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if assetType == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The asset type you are trying to transfer does not "+
				"exist: %d.",
			e.AssetType,
		))
	}

	// Whoever proved authorization for the call pays for a newly created
	// destination balance row, defaulting to the sender.
	payer := e.From
	if e.Caller == e.To {
		payer = e.To
	}

	fromBalance, err := model.Debit(ctx, e.From, assetType.ID, e.Amount)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrBalanceNotFound, model.ErrInsufficientBalance:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "insufficient_balance",
				"Your balance of asset type %d is insufficient to "+
					"transfer %d units.",
				assetType.ID, e.Amount,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	toBalance, err := model.Credit(ctx,
		e.To, assetType.ID, e.Amount, payer)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrBalanceOverflow:
			return nil, nil, errors.Trace(errors.NewUserErrorf(err,
				400, "overflow",
				"Transferring %d units of asset type %d would overflow "+
					"the balance of %s.",
				e.Amount, assetType.ID, e.To,
			))
		default:
			return nil, nil, errors.Trace(err) // 500
		}
	}

	event, err := model.CreateBalanceChangedEvent(ctx,
		assetType.ID, e.From, e.To, e.Amount, fromBalance, toBalance,
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
		"events": format.JSONPtr([]forge.EventResource{
			forge.NewEventResource(ctx, event),
		}),
	}, nil
}
