package model

import (
	"database/sql/driver"
	"regexp"

	"github.com/spolu/forge/lib/errors"
)

const (
	// MaxMetadataSize is the maximal size in bytes of a collection or asset
	// type metadata payload.
	MaxMetadataSize int = 65535
	// MaxMemoSize is the maximal size in bytes of an operation memo.
	MaxMemoSize int = 256
	// MaxRoyalty is the maximal royalty rate in basis points.
	MaxRoyalty int64 = 1000
)

// AccountNameRegexp is used to validate account names at creation.
var AccountNameRegexp = regexp.MustCompile("^[a-z0-9\\-_.]{1,64}$")

// EvtKind is the kind of an event.
type EvtKind string

const (
	// EvtKdCollectionCreated marks the creation of a collection.
	EvtKdCollectionCreated EvtKind = "collection_created"
	// EvtKdAssetTypeCreated marks the creation of an asset type.
	EvtKdAssetTypeCreated EvtKind = "asset_type_created"
	// EvtKdBalanceChanged marks a mint, burn or transfer. An empty source
	// denotes issuance by the system, an empty destination annihilation.
	EvtKdBalanceChanged EvtKind = "balance_changed"
)

// Value implements driver.Valuer.
func (k EvtKind) Value() (value driver.Value, err error) {
	return string(k), nil
}

// Scan implements sql.Scanner.
func (k *EvtKind) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*k = EvtKind(src)
	case string:
		*k = EvtKind(src)
	default:
		return errors.Newf(
			"Incompatible type for EvtKind with value: %q", src)
	}

	return nil
}

// TkStatus is the status of a task.
type TkStatus string

const (
	// TkStPending is used to mark a task as pending.
	TkStPending TkStatus = "pending"
	// TkStSucceeded is used to mark a task as succeeded.
	TkStSucceeded TkStatus = "succeeded"
	// TkStFailed is used to mark a task as failed.
	TkStFailed TkStatus = "failed"
)

// Value implements driver.Valuer.
func (s TkStatus) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *TkStatus) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = TkStatus(src)
	case string:
		*s = TkStatus(src)
	default:
		return errors.Newf(
			"Incompatible type for TkStatus with value: %q", src)
	}

	return nil
}

// TkName is the name of a task.
type TkName string

// Value implements driver.Valuer.
func (s TkName) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *TkName) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = TkName(src)
	case string:
		*s = TkName(src)
	default:
		return errors.Newf(
			"Incompatible type for TkName with value: %q", src)
	}

	return nil
}
