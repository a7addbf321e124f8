package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/format"
	"github.com/spolu/forge/lib/ptr"
	"github.com/spolu/forge/lib/svc"
)

const (
	// EndPtRetrieveCollection retrieves a collection.
	EndPtRetrieveCollection EndPtName = "RetrieveCollection"
)

func init() {
	registrar[EndPtRetrieveCollection] = NewRetrieveCollection
}

// RetrieveCollection retrieves a collection by id.
type RetrieveCollection struct {
	Collection int64
}

// NewRetrieveCollection constructs and initializes the endpoint.
func NewRetrieveCollection(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveCollection{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveCollection) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate collection.
	collection, err := ValidateID(ctx, pat.Param(r, "collection"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Collection = *collection

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveCollection) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	collection, err := model.LoadCollectionByID(ctx, e.Collection)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if collection == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The collection you are trying to retrieve does not "+
				"exist: %d.",
			e.Collection,
		))
	}

	db.Commit(ctx, "forge")

	return ptr.Int(http.StatusOK), &svc.Resp{
		"collection": format.JSONPtr(forge.NewCollectionResource(ctx,
			collection)),
	}, nil
}
