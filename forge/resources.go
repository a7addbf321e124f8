package forge

import (
	"context"

	"github.com/spolu/forge/forge/model"
)

// CollectionResource is the representation of a collection in the forge API.
type CollectionResource struct {
	ID      int64 `json:"id"`
	Created int64 `json:"created"`

	Author   string `json:"author"`
	Royalty  int64  `json:"royalty"`
	Metadata string `json:"metadata"`
}

// NewCollectionResource generates a new resource.
func NewCollectionResource(
	ctx context.Context,
	collection *model.Collection,
) CollectionResource {
	return CollectionResource{
		ID:      collection.ID,
		Created: collection.Created.UnixNano() / (1000 * 1000),

		Author:   collection.Author,
		Royalty:  collection.Royalty,
		Metadata: collection.Metadata,
	}
}

// AssetTypeResource is the representation of an asset type in the forge API.
type AssetTypeResource struct {
	ID      int64 `json:"id"`
	Created int64 `json:"created"`

	Collection int64  `json:"collection"`
	Supply     int64  `json:"supply"`
	MaxSupply  int64  `json:"max_supply"`
	Metadata   string `json:"metadata"`
}

// NewAssetTypeResource generates a new resource.
func NewAssetTypeResource(
	ctx context.Context,
	assetType *model.AssetType,
) AssetTypeResource {
	return AssetTypeResource{
		ID:      assetType.ID,
		Created: assetType.Created.UnixNano() / (1000 * 1000),

		Collection: assetType.Collection,
		Supply:     assetType.Supply,
		MaxSupply:  assetType.MaxSupply,
		Metadata:   assetType.Metadata,
	}
}

// BalanceResource is the representation of a balance in the forge API.
type BalanceResource struct {
	Created int64 `json:"created"`

	Owner     string `json:"owner"`
	AssetType int64  `json:"asset_type"`
	Quantity  int64  `json:"quantity"`
	Payer     string `json:"payer"`
}

// NewBalanceResource generates a new resource.
func NewBalanceResource(
	ctx context.Context,
	balance *model.Balance,
) BalanceResource {
	return BalanceResource{
		Created: balance.Created.UnixNano() / (1000 * 1000),

		Owner:     balance.Owner,
		AssetType: balance.AssetType,
		Quantity:  balance.Quantity,
		Payer:     balance.Payer,
	}
}

// EventResource is the representation of an event in the forge API. Events
// are the records consumed by external indexers: an empty source or
// destination on a balance_changed event denotes the system as issuer or
// sink.
type EventResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`
	Kind    string `json:"kind"`

	Collection int64  `json:"collection,omitempty"`
	AssetType  int64  `json:"asset_type,omitempty"`
	Author     string `json:"author,omitempty"`
	Royalty    int64  `json:"royalty,omitempty"`
	Metadata   string `json:"metadata,omitempty"`

	Source             string `json:"source"`
	Destination        string `json:"destination"`
	Amount             int64  `json:"amount,omitempty"`
	SourceBalance      int64  `json:"source_balance"`
	DestinationBalance int64  `json:"destination_balance"`
	Memo               string `json:"memo,omitempty"`
}

// NewEventResource generates a new resource.
func NewEventResource(
	ctx context.Context,
	event *model.Event,
) EventResource {
	return EventResource{
		ID:      event.Token,
		Created: event.Created.UnixNano() / (1000 * 1000),
		Kind:    string(event.Kind),

		Collection: event.Collection,
		AssetType:  event.AssetType,
		Author:     event.Author,
		Royalty:    event.Royalty,
		Metadata:   event.Metadata,

		Source:             event.Source,
		Destination:        event.Destination,
		Amount:             event.Amount,
		SourceBalance:      event.SourceBalance,
		DestinationBalance: event.DestinationBalance,
		Memo:               event.Memo,
	}
}
