// OWNER: stan

package model

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
)

// sequence represents an id allocator for a table. The id 0 is reserved and
// never assigned: an allocator that would yield 0 is advanced to 1.
type sequence struct {
	Name  string
	Value int64
}

// AllocateID allocates the next id for the named sequence. The first
// allocated id is 1.
func AllocateID(
	ctx context.Context,
	name string,
) (int64, error) {
	seq := sequence{
		Name: name,
	}

	ext := db.Ext(ctx, "forge")
	exists := false
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM sequences
WHERE name = :name
`, seq); err != nil {
		return 0, errors.Trace(err)
	} else if rows.Next() {
		exists = true
		if err := rows.StructScan(&seq); err != nil {
			defer rows.Close()
			return 0, errors.Trace(err)
		}
		if err := rows.Close(); err != nil {
			return 0, errors.Trace(err)
		}
	} else if err := rows.Close(); err != nil {
		return 0, errors.Trace(err)
	}

	id := seq.Value
	if id == 0 {
		id = 1
	}
	seq.Value = id + 1

	if exists {
		if _, err := sqlx.NamedExec(ext, `
UPDATE sequences
SET value = :value
WHERE name = :name
`, seq); err != nil {
			return 0, errors.Trace(err)
		}
	} else {
		if _, err := sqlx.NamedExec(ext, `
INSERT INTO sequences
  (name, value)
VALUES
  (:name, :value)
`, seq); err != nil {
			return 0, errors.Trace(err)
		}
	}

	return id, nil
}
