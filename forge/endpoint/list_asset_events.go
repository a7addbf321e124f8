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
	// EndPtListAssetEvents lists the events of an asset type.
	EndPtListAssetEvents EndPtName = "ListAssetEvents"
)

func init() {
	registrar[EndPtListAssetEvents] = NewListAssetEvents
}

// ListAssetEvents returns the list of events emitted for an asset type.
type ListAssetEvents struct {
	ListEndpoint
	AssetType int64
}

// NewListAssetEvents constructs and initializes the endpoint.
func NewListAssetEvents(
	r *http.Request,
) (Endpoint, error) {
	return &ListAssetEvents{
		ListEndpoint: ListEndpoint{},
	}, nil
}

// Validate validates the input parameters.
func (e *ListAssetEvents) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate asset.
	assetType, err := ValidateID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetType = *assetType

	return e.ListEndpoint.Validate(r)
}

// Execute executes the endpoint.
func (e *ListAssetEvents) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	assetType, err := model.LoadAssetTypeByID(ctx, e.AssetType)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	} else if assetType == nil {
		return nil, nil, errors.Trace(errors.NewUserErrorf(nil,
			404, "not_found",
			"The asset type you are trying to list events for does not "+
				"exist: %d.",
			e.AssetType,
		))
	}

	events, err := model.LoadEventListByAssetType(ctx,
		e.ListEndpoint.CreatedBefore,
		e.ListEndpoint.Limit,
		e.AssetType,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx, "forge")

	l := []forge.EventResource{}
	for _, ev := range events {
		ev := ev
		l = append(l, forge.NewEventResource(ctx, &ev))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"events": format.JSONPtr(l),
	}, nil
}
