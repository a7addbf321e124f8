package schemas

import "github.com/spolu/forge/lib/db"

const (
	sequencesSQL = `
CREATE TABLE IF NOT EXISTS sequences(
  name VARCHAR(64) NOT NULL,  -- sequence name
  value BIGINT NOT NULL,      -- next candidate id

  PRIMARY KEY(name)
);
`
)

func init() {
	db.RegisterSchema(
		"forge",
		"sequences",
		sequencesSQL,
	)
}
