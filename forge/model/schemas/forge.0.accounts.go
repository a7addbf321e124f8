package schemas

import "github.com/spolu/forge/lib/db"

const (
	accountsSQL = `
CREATE TABLE IF NOT EXISTS accounts(
  token VARCHAR(256) NOT NULL,  -- token
  created TIMESTAMP NOT NULL,

  name VARCHAR(64) NOT NULL,           -- account name
  password_hash VARCHAR(256) NOT NULL, -- scrypt hash of the password

  PRIMARY KEY(token),
  CONSTRAINT accounts_name_u UNIQUE (name)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"accounts",
		accountsSQL,
	)
}
