// OWNER: stan

package model

import (
	"context"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
)

// AssetType represents a mintable unit class with a supply cap, belonging to
// one collection. The invariant `Supply <= MaxSupply` holds at all times;
// Supply is only mutated through Issue and Retire.
type AssetType struct {
	ID      int64
	Created time.Time

	Collection int64  // Owning collection id.
	Supply     int64  // Currently issued supply.
	MaxSupply  int64  `db:"max_supply"` // Declared supply cap.
	Metadata   string // Opaque metadata payload.
	Payer      string // Account charged for the storage of this row.
}

// ErrSupplyExceeded is returned by Issue when the issuance would push the
// supply past the declared cap.
type ErrSupplyExceeded struct {
	AssetType int64
	Supply    int64
	MaxSupply int64
	Amount    int64
}

func (e ErrSupplyExceeded) Error() string {
	return "Amount exceeds available supply"
}

// ErrInsufficientSupply is returned by Retire when the retired amount
// exceeds the currently issued supply.
type ErrInsufficientSupply struct {
	AssetType int64
	Supply    int64
	Amount    int64
}

func (e ErrInsufficientSupply) Error() string {
	return "Amount exceeds issued supply"
}

// CreateAssetType creates and stores a new AssetType object with a supply of
// 0, allocating its id.
func CreateAssetType(
	ctx context.Context,
	collection int64,
	maxSupply int64,
	metadata string,
	payer string,
) (*AssetType, error) {
	id, err := AllocateID(ctx, "asset_types")
	if err != nil {
		return nil, errors.Trace(err)
	}

	assetType := AssetType{
		ID:      id,
		Created: time.Now().UTC(),

		Collection: collection,
		Supply:     0,
		MaxSupply:  maxSupply,
		Metadata:   metadata,
		Payer:      payer,
	}

	ext := db.Ext(ctx, "forge")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO asset_types
  (id, created, collection, supply, max_supply, metadata, payer)
VALUES
  (:id, :created, :collection, :supply, :max_supply, :metadata, :payer)
`, assetType); err != nil {
		switch err := err.(type) {
		case *pq.Error:
			if err.Code.Name() == "unique_violation" {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		case sqlite3.Error:
			if err.ExtendedCode == sqlite3.ErrConstraintUnique {
				return nil, errors.Trace(ErrUniqueConstraintViolation{err})
			}
		}
		return nil, errors.Trace(err)
	}

	return &assetType, nil
}

// Save updates the object database representation with the in-memory values.
func (a *AssetType) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "forge")
	_, err := sqlx.NamedExec(ext, `
UPDATE asset_types
SET supply = :supply
WHERE id = :id
`, a)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// Issue increases the issued supply by amount, enforcing the supply cap. It
// does not save the object.
func (a *AssetType) Issue(
	ctx context.Context,
	amount int64,
) error {
	if amount > math.MaxInt64-a.Supply {
		return errors.Trace(ErrSupplyExceeded{
			AssetType: a.ID,
			Supply:    a.Supply,
			MaxSupply: a.MaxSupply,
			Amount:    amount,
		})
	}
	if a.Supply+amount > a.MaxSupply {
		return errors.Trace(ErrSupplyExceeded{
			AssetType: a.ID,
			Supply:    a.Supply,
			MaxSupply: a.MaxSupply,
			Amount:    amount,
		})
	}
	a.Supply += amount

	return nil
}

// Retire decreases the issued supply by amount. It does not save the object.
func (a *AssetType) Retire(
	ctx context.Context,
	amount int64,
) error {
	if a.Supply < amount {
		return errors.Trace(ErrInsufficientSupply{
			AssetType: a.ID,
			Supply:    a.Supply,
			Amount:    amount,
		})
	}
	a.Supply -= amount

	return nil
}

// LoadAssetTypeByID attempts to load an asset type with the given id.
func LoadAssetTypeByID(
	ctx context.Context,
	id int64,
) (*AssetType, error) {
	assetType := AssetType{
		ID: id,
	}

	ext := db.Ext(ctx, "forge")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM asset_types
WHERE id = :id
`, assetType); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&assetType); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &assetType, nil
}
