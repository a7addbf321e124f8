package endpoint

import (
	"context"
	"strconv"
	"time"

	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/errors"
)

const (
	// DefaultLimit is the default limit used for list endpoints.
	DefaultLimit uint = 100
	// MaxLimit is the maximal limit value for list endpoints.
	MaxLimit uint = 1000
)

// ValidateID validates an object id (collection or asset type).
func ValidateID(
	ctx context.Context,
	id string,
) (*int64, error) {
	v, err := strconv.ParseInt(id, 10, 64)
	if err != nil || v <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_argument",
			"The id you provided is invalid: %s. Ids must be positive "+
				"integers.",
			id,
		))
	}

	return &v, nil
}

// ValidateAmount validates an amount. Amounts must be strictly positive.
func ValidateAmount(
	ctx context.Context,
	amount string,
) (*int64, error) {
	v, err := strconv.ParseInt(amount, 10, 64)
	if err != nil || v <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_argument",
			"The amount you provided is invalid: %s. Amounts must be "+
				"strictly positive 64 bits integers.",
			amount,
		))
	}

	return &v, nil
}

// ValidateMemo validates a memo.
func ValidateMemo(
	ctx context.Context,
	memo string,
) (*string, error) {
	if len(memo) > model.MaxMemoSize {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_argument",
			"The memo you provided is too long: %d bytes. Memos can have "+
				"at most %d bytes.",
			len(memo), model.MaxMemoSize,
		))
	}

	return &memo, nil
}

// ValidateMetadata validates an opaque metadata payload.
func ValidateMetadata(
	ctx context.Context,
	metadata string,
) (*string, error) {
	if len(metadata) > model.MaxMetadataSize {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_argument",
			"The metadata you provided is too long: %d bytes. Metadata "+
				"can have at most %d bytes.",
			len(metadata), model.MaxMetadataSize,
		))
	}

	return &metadata, nil
}

// ValidateRoyalty validates a royalty rate in basis points.
func ValidateRoyalty(
	ctx context.Context,
	royalty string,
) (*int64, error) {
	v, err := strconv.ParseInt(royalty, 10, 64)
	if err != nil || v < 0 || v > model.MaxRoyalty {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_argument",
			"The royalty you provided is invalid: %s. Royalties must be "+
				"integers between 0 and %d basis points.",
			royalty, model.MaxRoyalty,
		))
	}

	return &v, nil
}

// ValidateAccountName validates an account name.
func ValidateAccountName(
	ctx context.Context,
	name string,
) (*string, error) {
	if !model.AccountNameRegexp.MatchString(name) {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "invalid_argument",
			"The account name you provided is invalid: %s. Account names "+
				"can use lowercase alphanumeric, `-`, `_` and `.` "+
				"characters only.",
			name,
		))
	}

	return &name, nil
}

// ValidateLimit validates a limit for a list endpoint, defaulting to
// DefaultLimit if not provided.
func ValidateLimit(
	ctx context.Context,
	limit string,
) (*uint, error) {
	if limit == "" {
		l := DefaultLimit
		return &l, nil
	}

	v, err := strconv.ParseUint(limit, 10, 32)
	if err != nil || uint(v) > MaxLimit {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_argument",
			"The limit you provided is invalid: %s. Limits must be "+
				"integers between 0 and %d.",
			limit, MaxLimit,
		))
	}

	l := uint(v)
	return &l, nil
}

// ValidateCreatedBefore validates a created_before timestamp in milliseconds
// for a list endpoint, defaulting to now if not provided.
func ValidateCreatedBefore(
	ctx context.Context,
	createdBefore string,
) (*time.Time, error) {
	if createdBefore == "" {
		t := time.Now().UTC()
		return &t, nil
	}

	v, err := strconv.ParseInt(createdBefore, 10, 64)
	if err != nil {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_argument",
			"The created_before you provided is invalid: %s. It must be a "+
				"timestamp in milliseconds.",
			createdBefore,
		))
	}

	t := time.Unix(0, v*1000*1000).UTC()
	return &t, nil
}
