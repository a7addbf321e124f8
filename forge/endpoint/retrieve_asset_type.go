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
	// EndPtRetrieveAssetType retrieves an asset type.
	EndPtRetrieveAssetType EndPtName = "RetrieveAssetType"
)

func init() {
	registrar[EndPtRetrieveAssetType] = NewRetrieveAssetType
}

// RetrieveAssetType retrieves an asset type by id.
type RetrieveAssetType struct {
	AssetType int64
}

// NewRetrieveAssetType constructs and initializes the endpoint.
func NewRetrieveAssetType(
	r *http.Request,
) (Endpoint, error) {
	return &RetrieveAssetType{}, nil
}

// Validate validates the input parameters.
func (e *RetrieveAssetType) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	// Validate asset.
	assetType, err := ValidateID(ctx, pat.Param(r, "asset"))
	if err != nil {
		return errors.Trace(err)
	}
	e.AssetType = *assetType

	return nil
}

// Execute executes the endpoint.
func (e *RetrieveAssetType) Execute(
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
			"The asset type you are trying to retrieve does not "+
				"exist: %d.",
			e.AssetType,
		))
	}

	db.Commit(ctx, "forge")

	return ptr.Int(http.StatusOK), &svc.Resp{
		"asset_type": format.JSONPtr(forge.NewAssetTypeResource(ctx,
			assetType)),
	}, nil
}
