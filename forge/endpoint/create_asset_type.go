package endpoint

import (
	"context"
	"net/http"

	"goji.io/pat"

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
	// EndPtCreateAssetType creates a new asset type.
	EndPtCreateAssetType EndPtName = "CreateAssetType"
)

func init() {
	registrar[EndPtCreateAssetType] = NewCreateAssetType
}

// CreateAssetType controls the creation of new asset types within a
// collection. Only the author of the collection can create asset types in
// it. If an initial supply is specified it is minted to the author through
// the normal mint path.
type CreateAssetType struct {
	Caller        string
	Collection    int64
	InitialSupply int64
	MaxSupply     int64
	Metadata      string
}

// NewCreateAssetType constructs and initializes the endpoint.
func NewCreateAssetType(
	r *http.Request,
) (Endpoint, error) {
	return &CreateAssetType{}, nil
}

// Validate validates the input parameters.
func (e *CreateAssetType) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Caller = authentication.Get(ctx).Account.Name

	// Validate collection.
	collection, err := ValidateID(ctx, pat.Param(r, "collection"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Collection = *collection

	// Validate max_supply.
	maxSupply, err := ValidateAmount(ctx, r.PostFormValue("max_supply"))
	if err != nil {
		return errors.Trace(err)
	}
	e.MaxSupply = *maxSupply

	// Validate initial_supply, defaulting to 0.
	e.InitialSupply = 0
	if s := r.PostFormValue("initial_supply"); s != "" {
		initialSupply, err := ValidateAmount(ctx, s)
		if err != nil {
			return errors.Trace(err)
		}
		e.InitialSupply = *initialSupply
	}

	// Validate metadata.
	metadata, err := ValidateMetadata(ctx, r.PostFormValue("metadata"))
	if err != nil {
		return errors.Trace(err)
	}
	e.Metadata = *metadata

	return nil
}

// Execute executes the endpoint.
func (e *CreateAssetType) Execute(
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
			"The collection you are trying to create an asset type in "+
				"does not exist: %d.",
			e.Collection,
		))
	}

	if e.Caller != collection.Author {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			401, "unauthorized",
			"Only the author of the collection can create asset types in "+
				"it: %s.",
			collection.Author,
		))
	}

	// The collection author pays for the storage of asset type rows.
	assetType, err := model.CreateAssetType(ctx,
		collection.ID,
		e.MaxSupply,
		e.Metadata,
		collection.Author,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	event, err := model.CreateAssetTypeCreatedEvent(ctx, assetType)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}
	events := []*model.Event{event}

	// An initial supply is minted to the author through the normal mint
	// path, chaining the supply invariant check.
	if e.InitialSupply > 0 {
		mintEvents, err := executeMint(ctx,
			e.Caller, assetType, collection.Author, e.InitialSupply,
			"create and mint")
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		events = append(events, mintEvents...)
	}

	db.Commit(ctx, "forge")

	err = queuePropagation(ctx, events)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	return ptr.Int(http.StatusCreated), &svc.Resp{
		"asset_type": format.JSONPtr(forge.NewAssetTypeResource(ctx,
			assetType)),
	}, nil
}
