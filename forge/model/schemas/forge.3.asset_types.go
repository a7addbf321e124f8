package schemas

import "github.com/spolu/forge/lib/db"

const (
	assetTypesSQL = `
CREATE TABLE IF NOT EXISTS asset_types(
  id BIGINT NOT NULL,           -- asset type id
  created TIMESTAMP NOT NULL,

  collection BIGINT NOT NULL,   -- owning collection id
  supply BIGINT NOT NULL,       -- currently issued supply
  max_supply BIGINT NOT NULL,   -- declared supply cap
  metadata TEXT NOT NULL,       -- opaque metadata payload
  payer VARCHAR(64) NOT NULL,   -- account charged for this row

  PRIMARY KEY(id),
  CONSTRAINT asset_types_collection_fk FOREIGN KEY (collection)
    REFERENCES collections(id)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"asset_types",
		assetTypesSQL,
	)
}
