package schemas

import "github.com/spolu/forge/lib/db"

const (
	balancesSQL = `
CREATE TABLE IF NOT EXISTS balances(
  created TIMESTAMP NOT NULL,

  owner VARCHAR(64) NOT NULL,   -- owner account name
  asset_type BIGINT NOT NULL,   -- asset type id
  quantity BIGINT NOT NULL,     -- held quantity, always >= 1
  payer VARCHAR(64) NOT NULL,   -- account charged for this row

  PRIMARY KEY(owner, asset_type),
  CONSTRAINT balances_asset_type_fk FOREIGN KEY (asset_type)
    REFERENCES asset_types(id)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"balances",
		balancesSQL,
	)
}
