package endpoint

import (
	"context"
	"time"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/async"
	"github.com/spolu/forge/forge/async/task"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/errors"
)

// queuePropagation queues a propagation task for each event if an indexer is
// configured. Must be called after the transaction that created the events
// has committed.
func queuePropagation(
	ctx context.Context,
	events []*model.Event,
) error {
	if forge.GetIndexerURL(ctx) == "" {
		return nil
	}

	for _, event := range events {
		err := async.Queue(ctx,
			task.NewPropagateEvent(ctx, time.Now(), event.Token))
		if err != nil {
			return errors.Trace(err)
		}
	}

	return nil
}

// executeMint runs the mint transition within the current transaction: it
// increases the issued supply of the asset type, credits the destination and
// appends the corresponding events. The caller must be the author of the
// asset type's collection. Returns the emitted events.
func executeMint(
	ctx context.Context,
	caller string,
	assetType *model.AssetType,
	to string,
	amount int64,
	memo string,
) ([]*model.Event, error) {
	collection, err := model.LoadCollectionByID(ctx, assetType.Collection)
	if err != nil {
		return nil, errors.Trace(err) // 500
	} else if collection == nil {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The collection associated with asset type %d does not "+
				"exist: %d.",
			assetType.ID, assetType.Collection,
		))
	}

	if caller != collection.Author {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			401, "unauthorized",
			"Only the author of the collection can mint units of this "+
				"asset type: %s.",
			collection.Author,
		))
	}

	to_, err := model.LoadAccountByName(ctx, to)
	if err != nil {
		return nil, errors.Trace(err) // 500
	} else if to_ == nil {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "account_unknown",
			"The account you are trying to mint to does not exist: %s.",
			to,
		))
	}

	if err := assetType.Issue(ctx, amount); err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrSupplyExceeded:
			return nil, errors.Trace(errors.NewUserErrorf(err,
				400, "supply_exceeded",
				"The amount you are trying to mint (%d) exceeds the "+
					"available supply for asset type %d: %d/%d issued.",
				amount, assetType.ID, assetType.Supply,
				assetType.MaxSupply,
			))
		default:
			return nil, errors.Trace(err) // 500
		}
	}
	if err := assetType.Save(ctx); err != nil {
		return nil, errors.Trace(err) // 500
	}

	toBalance, err := model.Credit(ctx,
		to, assetType.ID, amount, collection.Author)
	if err != nil {
		switch errors.Cause(err).(type) {
		case model.ErrBalanceOverflow:
			return nil, errors.Trace(errors.NewUserErrorf(err,
				400, "overflow",
				"Minting %d units of asset type %d would overflow the "+
					"balance of %s.",
				amount, assetType.ID, to,
			))
		default:
			return nil, errors.Trace(err) // 500
		}
	}

	// Issuance is always logged with the system as source and the collection
	// author as destination.
	events := []*model.Event{}
	event, err := model.CreateBalanceChangedEvent(ctx,
		assetType.ID, "", collection.Author, amount, 0, toBalance, memo)
	if err != nil {
		return nil, errors.Trace(err) // 500
	}
	events = append(events, event)

	// If the recipient is not the author, the issuance is notified to both
	// parties through a second event. The minted units are credited to the
	// recipient directly so this is a notification, not a second mutation.
	if to != collection.Author {
		event, err := model.CreateBalanceChangedEvent(ctx,
			assetType.ID, collection.Author, to, amount, 0, toBalance, memo)
		if err != nil {
			return nil, errors.Trace(err) // 500
		}
		events = append(events, event)
	}

	return events, nil
}
