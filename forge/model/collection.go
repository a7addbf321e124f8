// OWNER: stan

package model

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
)

// Collection represents a grouping of asset types under one author's
// authority. Collections are immutable once created and are never deleted.
type Collection struct {
	ID      int64
	Created time.Time

	Author   string // Author account name.
	Royalty  int64  // Royalty rate in basis points, stored but not enforced.
	Metadata string // Opaque metadata payload.
	Payer    string // Account charged for the storage of this row.
}

// CreateCollection creates and stores a new Collection object, allocating
// its id.
func CreateCollection(
	ctx context.Context,
	author string,
	royalty int64,
	metadata string,
	payer string,
) (*Collection, error) {
	id, err := AllocateID(ctx, "collections")
	if err != nil {
		return nil, errors.Trace(err)
	}

	collection := Collection{
		ID:      id,
		Created: time.Now().UTC(),

		Author:   author,
		Royalty:  royalty,
		Metadata: metadata,
		Payer:    payer,
	}

	ext := db.Ext(ctx, "forge")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO collections
  (id, created, author, royalty, metadata, payer)
VALUES
  (:id, :created, :author, :royalty, :metadata, :payer)
`, collection); err != nil {
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

	return &collection, nil
}

// LoadCollectionByID attempts to load a collection with the given id.
func LoadCollectionByID(
	ctx context.Context,
	id int64,
) (*Collection, error) {
	collection := Collection{
		ID: id,
	}

	ext := db.Ext(ctx, "forge")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM collections
WHERE id = :id
`, collection); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&collection); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &collection, nil
}
