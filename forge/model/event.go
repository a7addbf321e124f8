// OWNER: stan

package model

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/token"
)

// Event represents a record emitted by a ledger operation for consumption by
// external indexers. Events are appended within the same transaction as the
// state mutation they describe, so a rolled back operation leaves no event
// behind. The service is the sole writer of this table.
type Event struct {
	Token   string
	Created time.Time
	Kind    EvtKind

	Collection int64  // Collection id (collection_created, asset_type_created).
	AssetType  int64  `db:"asset_type"` // Asset type id.
	Author     string // Collection author (collection_created).
	Royalty    int64  // Royalty rate in basis points (collection_created).
	Metadata   string // Opaque metadata payload (creation events).

	Source             string // Source account, empty denotes the system.
	Destination        string // Destination account, empty denotes the system.
	Amount             int64
	SourceBalance      int64 `db:"source_balance"`
	DestinationBalance int64 `db:"destination_balance"`
	Memo               string
}

// CreateCollectionCreatedEvent creates and stores the event emitted by the
// creation of a collection.
func CreateCollectionCreatedEvent(
	ctx context.Context,
	collection *Collection,
) (*Event, error) {
	event := Event{
		Token:   token.New("event"),
		Created: time.Now().UTC(),
		Kind:    EvtKdCollectionCreated,

		Collection: collection.ID,
		Author:     collection.Author,
		Royalty:    collection.Royalty,
		Metadata:   collection.Metadata,
	}

	if err := event.insert(ctx); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// CreateAssetTypeCreatedEvent creates and stores the event emitted by the
// creation of an asset type.
func CreateAssetTypeCreatedEvent(
	ctx context.Context,
	assetType *AssetType,
) (*Event, error) {
	event := Event{
		Token:   token.New("event"),
		Created: time.Now().UTC(),
		Kind:    EvtKdAssetTypeCreated,

		Collection: assetType.Collection,
		AssetType:  assetType.ID,
		Amount:     assetType.MaxSupply,
		Metadata:   assetType.Metadata,
	}

	if err := event.insert(ctx); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// CreateBalanceChangedEvent creates and stores the event emitted by a mint,
// burn or transfer. An empty source denotes issuance by the system, an empty
// destination annihilation.
func CreateBalanceChangedEvent(
	ctx context.Context,
	assetType int64,
	source string,
	destination string,
	amount int64,
	sourceBalance int64,
	destinationBalance int64,
	memo string,
) (*Event, error) {
	event := Event{
		Token:   token.New("event"),
		Created: time.Now().UTC(),
		Kind:    EvtKdBalanceChanged,

		AssetType:          assetType,
		Source:             source,
		Destination:        destination,
		Amount:             amount,
		SourceBalance:      sourceBalance,
		DestinationBalance: destinationBalance,
		Memo:               memo,
	}

	if err := event.insert(ctx); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

func (e *Event) insert(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "forge")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO events
  (token, created, kind, collection, asset_type, author, royalty, metadata,
   source, destination, amount, source_balance, destination_balance, memo)
VALUES
  (:token, :created, :kind, :collection, :asset_type, :author, :royalty,
   :metadata, :source, :destination, :amount, :source_balance,
   :destination_balance, :memo)
`, e); err != nil {
		return errors.Trace(err)
	}

	return nil
}

// LoadEventByToken attempts to load an event with the given token.
func LoadEventByToken(
	ctx context.Context,
	tok string,
) (*Event, error) {
	event := Event{
		Token: tok,
	}

	ext := db.Ext(ctx, "forge")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM events
WHERE token = :token
`, event); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&event); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &event, nil
}

// LoadEventListByAssetType loads the list of events for an asset type in
// chronological order, created before createdBefore, limited to limit.
func LoadEventListByAssetType(
	ctx context.Context,
	createdBefore time.Time,
	limit uint,
	assetType int64,
) ([]Event, error) {
	query := map[string]interface{}{
		"asset_type":     assetType,
		"created_before": createdBefore.UTC(),
		"limit":          limit,
	}

	ext := db.Ext(ctx, "forge")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM events
WHERE asset_type = :asset_type
  AND created < :created_before
ORDER BY created ASC
LIMIT :limit
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	events := []Event{}
	for rows.Next() {
		event := Event{}
		if err := rows.StructScan(&event); err != nil {
			return nil, errors.Trace(err)
		}
		events = append(events, event)
	}

	return events, nil
}
