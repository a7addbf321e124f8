package app

import (
	"github.com/spolu/forge/forge/endpoint"
	"goji.io"
	"goji.io/pat"
)

// Controller binds the API
type Controller struct{}

// Bind registers the API routes.
func (c *Controller) Bind(
	mux *goji.Mux,
) {
	// Authenticated.
	mux.HandleFunc(pat.Post("/collections"), endpoint.HandlerFor(endpoint.EndPtCreateCollection))
	mux.HandleFunc(pat.Post("/collections/:collection/assets"), endpoint.HandlerFor(endpoint.EndPtCreateAssetType))
	mux.HandleFunc(pat.Post("/assets/:asset/mint"), endpoint.HandlerFor(endpoint.EndPtMintAsset))
	mux.HandleFunc(pat.Post("/assets/:asset/burn"), endpoint.HandlerFor(endpoint.EndPtBurnAsset))
	mux.HandleFunc(pat.Post("/assets/:asset/transfer"), endpoint.HandlerFor(endpoint.EndPtTransferAsset))
	mux.HandleFunc(pat.Get("/balances"), endpoint.HandlerFor(endpoint.EndPtListBalances))

	// Public.
	mux.HandleFunc(pat.Get("/collections/:collection"), endpoint.HandlerFor(endpoint.EndPtRetrieveCollection))
	mux.HandleFunc(pat.Get("/assets/:asset"), endpoint.HandlerFor(endpoint.EndPtRetrieveAssetType))
	mux.HandleFunc(pat.Get("/assets/:asset/events"), endpoint.HandlerFor(endpoint.EndPtListAssetEvents))
}
