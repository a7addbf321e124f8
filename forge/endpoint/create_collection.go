package endpoint

import (
	"context"
	"net/http"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/lib/authentication"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/format"
	"github.com/spolu/forge/lib/ptr"
	"github.com/spolu/forge/lib/svc"
)

const (
	// EndPtCreateCollection creates a new collection.
	EndPtCreateCollection EndPtName = "CreateCollection"
)

func init() {
	registrar[EndPtCreateCollection] = NewCreateCollection
}

// CreateCollection controls the creation of new collections. The
// authenticated account becomes the author of the collection.
type CreateCollection struct {
	Author   string
	Royalty  int64
	Metadata string
}

// NewCreateCollection constructs and initializes the endpoint.
func NewCreateCollection(
	r *http.Request,
) (Endpoint, error) {
	return &CreateCollection{}, nil
}

// Validate validates the input parameters.
func (e *CreateCollection) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Author = authentication.Get(ctx).Account.Name

	// Validate royalty.
	royalty, err := ValidateRoyalty(ctx, r.PostFormValue("royalty"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Royalty = *royalty

	// Validate metadata.
	metadata, err := ValidateMetadata(ctx, r.PostFormValue("metadata"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Metadata = *metadata

	return nil
}

// Execute executes the endpoint.
func (e *CreateCollection) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	// The service's own account pays for the storage of collection rows.
	collection, err := model.CreateCollection(ctx,
		e.Author,
		e.Royalty,
		e.Metadata,
		forge.GetSystemAccount(ctx),
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateCollectionCreatedEvent(ctx, collection)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx, "forge")

	err = queuePropagation(ctx, []*model.Event{event})
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"collection": format.JSONPtr(forge.NewCollectionResource(ctx,
			collection)),
	}, nil
}
