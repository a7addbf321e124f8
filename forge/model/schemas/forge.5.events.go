package schemas

import "github.com/spolu/forge/lib/db"

const (
	eventsSQL = `
CREATE TABLE IF NOT EXISTS events(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,
  kind VARCHAR(32) NOT NULL,    -- kind (collection_created, asset_type_created, balance_changed)

  collection BIGINT NOT NULL,       -- collection id (creation events)
  asset_type BIGINT NOT NULL,       -- asset type id
  author VARCHAR(64) NOT NULL,      -- collection author (collection_created)
  royalty BIGINT NOT NULL,          -- royalty rate (collection_created)
  metadata TEXT NOT NULL,           -- metadata payload (creation events)

  source VARCHAR(64) NOT NULL,      -- source account, '' denotes the system
  destination VARCHAR(64) NOT NULL, -- destination account, '' denotes the system
  amount BIGINT NOT NULL,
  source_balance BIGINT NOT NULL,      -- source balance after the change
  destination_balance BIGINT NOT NULL, -- destination balance after the change
  memo VARCHAR(256) NOT NULL,

  PRIMARY KEY(token)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"events",
		eventsSQL,
	)
}
