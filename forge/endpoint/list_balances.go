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
	// EndPtListBalances lists the balances of the authenticated account.
	EndPtListBalances EndPtName = "ListBalances"
)

func init() {
	registrar[EndPtListBalances] = NewListBalances
}

// ListBalances returns the list of balances of the authenticated account.
type ListBalances struct {
	ListEndpoint
	Owner string
}

// NewListBalances constructs and initializes the endpoint.
func NewListBalances(
	r *http.Request,
) (Endpoint, error) {
	return &ListBalances{
		ListEndpoint: ListEndpoint{},
	}, nil
}

// Validate validates the input parameters.
func (e *ListBalances) Validate(
	r *http.Request,
) error {
	ctx := r.Context()

	e.Owner = authentication.Get(ctx).Account.Name

	return e.ListEndpoint.Validate(r)
}

// Execute executes the endpoint.
func (e *ListBalances) Execute(
	ctx context.Context,
) (*int, *svc.Resp, error) {
	ctx = db.Begin(ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	balances, err := model.LoadBalanceListByOwner(ctx,
		e.ListEndpoint.CreatedBefore,
		e.ListEndpoint.Limit,
		e.Owner,
	)
	if err != nil {
		return nil, nil, errors.Trace(err) // 500
	}

	db.Commit(ctx, "forge")

	l := []forge.BalanceResource{}
	for _, b := range balances {
		b := b
		l = append(l, forge.NewBalanceResource(ctx, &b))
	}

	return ptr.Int(http.StatusOK), &svc.Resp{
		"balances": format.JSONPtr(l),
	}, nil
}
