package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/spolu/forge/lib/logging"
	"github.com/spolu/forge/lib/token"
)

const (
	// transactionKey the context.Context key to store the current
	// transaction map.
	transactionKey ContextKey = "db.transaction"
)

// Transaction stores a db transaction along with the token used to track it
// in logs.
type Transaction struct {
	Tx    *sqlx.Tx
	Token string
}

// WithTransaction stores the transaction in the provided context under tag.
func WithTransaction(
	ctx context.Context,
	tag string,
	transaction Transaction,
) context.Context {
	m := map[string]Transaction{}
	if ctx.Value(transactionKey) != nil {
		for t, tx := range ctx.Value(transactionKey).(map[string]Transaction) {
			m[t] = tx
		}
	}
	m[tag] = transaction
	return context.WithValue(ctx, transactionKey, m)
}

// GetTransaction retrieves the current transaction for tag from the context.
func GetTransaction(
	ctx context.Context,
	tag string,
) Transaction {
	return ctx.Value(transactionKey).(map[string]Transaction)[tag]
}

// Begin returns a new context with a new transaction set for the given tag.
func Begin(
	ctx context.Context,
	tag string,
) context.Context {
	if ctx.Value(mapKey) == nil || GetDB(ctx, tag) == nil {
		panic("db: no DB in context for tag " + tag)
	}
	token := token.New("tx")
	logging.Logf(ctx,
		"Transaction: begin %s.", token)
	return WithTransaction(ctx, tag, Transaction{
		Tx:    GetDB(ctx, tag).MustBegin(),
		Token: token,
	})
}

// Commit commits the transaction stored in the current context for tag.
func Commit(
	ctx context.Context,
	tag string,
) {
	logging.Logf(ctx,
		"Transaction: commit %s.", GetTransaction(ctx, tag).Token)
	err := GetTransaction(ctx, tag).Tx.Commit()
	if err != nil {
		panic(err)
	}
}

// LoggedRollback rolls the transaction back and logs it if a commit or
// another rollback didn't take place before this call. Used in general with
// defer right after calling `Begin`.
//
//	ctx = db.Begin(ctx, "forge")
//	defer db.LoggedRollback(ctx, "forge")
func LoggedRollback(
	ctx context.Context,
	tag string,
) {
	err := GetTransaction(ctx, tag).Tx.Rollback()
	if err != sql.ErrTxDone && err != nil {
		panic(err)
	} else if err == nil {
		logging.Logf(ctx,
			"Transaction: rollback %s.", GetTransaction(ctx, tag).Token)
	}
}

// Ext returns the current Ext for tag (the transaction if one has begun, or
// the DB otherwise).
func Ext(
	ctx context.Context,
	tag string,
) sqlx.Ext {
	if ctx.Value(transactionKey) != nil {
		if tx, ok := ctx.Value(
			transactionKey).(map[string]Transaction)[tag]; ok && tx.Tx != nil {
			return tx.Tx
		}
	}
	return GetDB(ctx, tag)
}
