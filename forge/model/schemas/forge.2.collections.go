package schemas

import "github.com/spolu/forge/lib/db"

const (
	collectionsSQL = `
CREATE TABLE IF NOT EXISTS collections(
  id BIGINT NOT NULL,           -- collection id
  created TIMESTAMP NOT NULL,

  author VARCHAR(64) NOT NULL,  -- author account name
  royalty BIGINT NOT NULL,      -- royalty rate in basis points
  metadata TEXT NOT NULL,       -- opaque metadata payload
  payer VARCHAR(64) NOT NULL,   -- account charged for this row

  PRIMARY KEY(id)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"collections",
		collectionsSQL,
	)
}
