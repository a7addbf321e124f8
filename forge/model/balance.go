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

// Balance represents an owner's held quantity of a specific asset type.
// Balances are sparse: a row always has a quantity of at least 1 and a row
// reaching exactly 0 is deleted, so absence of a row means a balance of 0.
type Balance struct {
	Created time.Time

	Owner     string // Owner account name.
	AssetType int64  `db:"asset_type"` // Asset type id.
	Quantity  int64
	Payer     string // Account charged for the storage of this row.
}

// ErrBalanceNotFound is returned by Debit when the owner holds no balance
// for the asset type.
type ErrBalanceNotFound struct {
	Owner     string
	AssetType int64
}

func (e ErrBalanceNotFound) Error() string {
	return "No balance object found"
}

// ErrInsufficientBalance is returned by Debit when the debited amount
// exceeds the owner's current holding.
type ErrInsufficientBalance struct {
	Owner     string
	AssetType int64
	Quantity  int64
	Amount    int64
}

func (e ErrInsufficientBalance) Error() string {
	return "Overdrawn balance"
}

// ErrBalanceOverflow is returned by Credit when the credited amount would
// push the quantity past the representable range.
type ErrBalanceOverflow struct {
	Owner     string
	AssetType int64
	Quantity  int64
	Amount    int64
}

func (e ErrBalanceOverflow) Error() string {
	return "Balance overflow"
}

// LoadBalanceByOwnerAssetType attempts to load a balance for the given owner
// account name and asset type id.
func LoadBalanceByOwnerAssetType(
	ctx context.Context,
	owner string,
	assetType int64,
) (*Balance, error) {
	balance := Balance{
		Owner:     owner,
		AssetType: assetType,
	}

	ext := db.Ext(ctx, "forge")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM balances
WHERE owner = :owner
  AND asset_type = :asset_type
`, balance); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&balance); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &balance, nil
}

// Credit credits amount to the owner's balance for the asset type, creating
// the row paid for by payer if it does not exist. It returns the resulting
// balance.
func Credit(
	ctx context.Context,
	owner string,
	assetType int64,
	amount int64,
	payer string,
) (int64, error) {
	balance, err := LoadBalanceByOwnerAssetType(ctx, owner, assetType)
	if err != nil {
		return 0, errors.Trace(err)
	}

	ext := db.Ext(ctx, "forge")

	if balance == nil {
		balance = &Balance{
			Created: time.Now().UTC(),

			Owner:     owner,
			AssetType: assetType,
			Quantity:  amount,
			Payer:     payer,
		}
		if _, err := sqlx.NamedExec(ext, `
INSERT INTO balances
  (created, owner, asset_type, quantity, payer)
VALUES
  (:created, :owner, :asset_type, :quantity, :payer)
`, balance); err != nil {
			switch err := err.(type) {
			case *pq.Error:
				if err.Code.Name() == "unique_violation" {
					return 0, errors.Trace(
						ErrUniqueConstraintViolation{err})
				}
			case sqlite3.Error:
				if err.ExtendedCode == sqlite3.ErrConstraintUnique {
					return 0, errors.Trace(
						ErrUniqueConstraintViolation{err})
				}
			}
			return 0, errors.Trace(err)
		}

		return balance.Quantity, nil
	}

	if balance.Quantity > math.MaxInt64-amount {
		return 0, errors.Trace(ErrBalanceOverflow{
			Owner:     owner,
			AssetType: assetType,
			Quantity:  balance.Quantity,
			Amount:    amount,
		})
	}

	balance.Quantity += amount
	if _, err := sqlx.NamedExec(ext, `
UPDATE balances
SET quantity = :quantity
WHERE owner = :owner
  AND asset_type = :asset_type
`, balance); err != nil {
		return 0, errors.Trace(err)
	}

	return balance.Quantity, nil
}

// Debit debits amount from the owner's balance for the asset type. If the
// resulting balance is exactly 0, the row is deleted. It returns the
// resulting balance.
func Debit(
	ctx context.Context,
	owner string,
	assetType int64,
	amount int64,
) (int64, error) {
	balance, err := LoadBalanceByOwnerAssetType(ctx, owner, assetType)
	if err != nil {
		return 0, errors.Trace(err)
	}
	if balance == nil {
		return 0, errors.Trace(ErrBalanceNotFound{
			Owner:     owner,
			AssetType: assetType,
		})
	}
	if balance.Quantity < amount {
		return 0, errors.Trace(ErrInsufficientBalance{
			Owner:     owner,
			AssetType: assetType,
			Quantity:  balance.Quantity,
			Amount:    amount,
		})
	}

	ext := db.Ext(ctx, "forge")

	if balance.Quantity == amount {
		if _, err := sqlx.NamedExec(ext, `
DELETE FROM balances
WHERE owner = :owner
  AND asset_type = :asset_type
`, balance); err != nil {
			return 0, errors.Trace(err)
		}

		return 0, nil
	}

	balance.Quantity -= amount
	if _, err := sqlx.NamedExec(ext, `
UPDATE balances
SET quantity = :quantity
WHERE owner = :owner
  AND asset_type = :asset_type
`, balance); err != nil {
		return 0, errors.Trace(err)
	}

	return balance.Quantity, nil
}

// LoadBalanceListByOwner loads the list of balances owned by owner, created
// before createdBefore, limited to limit.
func LoadBalanceListByOwner(
	ctx context.Context,
	createdBefore time.Time,
	limit uint,
	owner string,
) ([]Balance, error) {
	query := map[string]interface{}{
		"owner":          owner,
		"created_before": createdBefore.UTC(),
		"limit":          limit,
	}

	ext := db.Ext(ctx, "forge")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM balances
WHERE owner = :owner
  AND created < :created_before
ORDER BY created DESC
LIMIT :limit
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	balances := []Balance{}
	for rows.Next() {
		balance := Balance{}
		if err := rows.StructScan(&balance); err != nil {
			return nil, errors.Trace(err)
		}
		balances = append(balances, balance)
	}

	return balances, nil
}

// LoadBalanceListByAssetType loads the list of balances for an asset type.
// Used to check the conservation invariant in tests and tooling.
func LoadBalanceListByAssetType(
	ctx context.Context,
	assetType int64,
) ([]Balance, error) {
	query := map[string]interface{}{
		"asset_type": assetType,
	}

	ext := db.Ext(ctx, "forge")
	rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM balances
WHERE asset_type = :asset_type
ORDER BY created DESC
`, query)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer rows.Close()

	balances := []Balance{}
	for rows.Next() {
		balance := Balance{}
		if err := rows.StructScan(&balance); err != nil {
			return nil, errors.Trace(err)
		}
		balances = append(balances, balance)
	}

	return balances, nil
}
