// OWNER: stan

package model

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/token"
	"golang.org/x/crypto/scrypt"
)

// Account represents an account known to the service. Accounts are the
// principals of the ledger: authorization for an operation means the caller
// authenticated as the acting account.
type Account struct {
	Token   string
	Created time.Time

	Name         string
	PasswordHash string `db:"password_hash"`
}

// CreateAccount creates and stores a new Account object.
func CreateAccount(
	ctx context.Context,
	name string,
	password string,
) (*Account, error) {
	account := Account{
		Token:   token.New("account"),
		Created: time.Now().UTC(),

		Name: name,
	}

	h, err := scrypt.Key(
		[]byte(password), []byte(account.Token), 16384, 8, 1, 64)
	if err != nil {
		return nil, errors.Trace(err)
	}

	account.PasswordHash = base64.StdEncoding.EncodeToString(h)

	ext := db.Ext(ctx, "forge")
	if _, err := sqlx.NamedExec(ext, `
INSERT INTO accounts
  (token, created, name, password_hash)
VALUES
  (:token, :created, :name, :password_hash)
`, account); err != nil {
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

	return &account, nil
}

// Save updates the object database representation with the in-memory values.
func (a *Account) Save(
	ctx context.Context,
) error {
	ext := db.Ext(ctx, "forge")
	_, err := sqlx.NamedExec(ext, `
UPDATE accounts
SET name = :name, password_hash = :password_hash
WHERE token = :token
`, a)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}

// UpdatePassword updates the password of the account. It does not save the
// object.
func (a *Account) UpdatePassword(
	ctx context.Context,
	password string,
) error {
	h, err := scrypt.Key(
		[]byte(password), []byte(a.Token), 16384, 8, 1, 64)
	if err != nil {
		return errors.Trace(err)
	}

	a.PasswordHash = base64.StdEncoding.EncodeToString(h)

	return nil
}

// CheckPassword checks the provided password against the stored hash.
func (a *Account) CheckPassword(
	ctx context.Context,
	password string,
) error {
	h, err := scrypt.Key(
		[]byte(password), []byte(a.Token), 16384, 8, 1, 64)
	if err != nil {
		return errors.Trace(err)
	}

	if a.PasswordHash != base64.StdEncoding.EncodeToString(h) {
		return errors.Newf("Password mismatch")
	}

	return nil
}

// LoadAccountByName attempts to load an account with the given name.
func LoadAccountByName(
	ctx context.Context,
	name string,
) (*Account, error) {
	account := Account{
		Name: name,
	}

	ext := db.Ext(ctx, "forge")
	if rows, err := sqlx.NamedQuery(ext, `
SELECT *
FROM accounts
WHERE name = :name
`, account); err != nil {
		return nil, errors.Trace(err)
	} else if !rows.Next() {
		return nil, nil
	} else if err := rows.StructScan(&account); err != nil {
		defer rows.Close()
		return nil, errors.Trace(err)
	} else if err := rows.Close(); err != nil {
		return nil, errors.Trace(err)
	}

	return &account, nil
}
