package authentication

import (
	"context"
	"net/http"
	"regexp"

	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/logging"
	"github.com/spolu/forge/lib/respond"
)

// ContextKey is the type of the key used with context to carry contextual
// authentication status.
type ContextKey string

const (
	// statusKey the context.Context key to store the authentication status.
	statusKey ContextKey = "authentication.status"
)

// AutStatus indicates the status of the authentication.
type AutStatus string

const (
	// AutStSucceeded indicates a successful authentication.
	AutStSucceeded AutStatus = "succeeded"
	// AutStSkipped indicates a skipped authentication.
	AutStSkipped AutStatus = "skipped"
	// AutStFailed indicates a failed authentication.
	AutStFailed AutStatus = "failed"
)

// Status stores the authentication information, the status and authenticated
// account if applicable.
type Status struct {
	Status  AutStatus
	Account *model.Account
}

// With stores the authentication information in a new context.
func With(
	ctx context.Context,
	status Status,
) context.Context {
	return context.WithValue(ctx, statusKey, status)
}

// Get retrieves the authentication information from the context.
func Get(
	ctx context.Context,
) Status {
	return ctx.Value(statusKey).(Status)
}

type middleware struct {
	http.Handler
}

// SkipRule defines a skip rule for authentication.
type SkipRule struct {
	Method  string
	Pattern *regexp.Regexp
}

// SkipList is the list of endpoints that do not require authentication.
var SkipList = []*SkipRule{
	{"GET", regexp.MustCompile("^/collections/[0-9]+$")},
	{"GET", regexp.MustCompile("^/assets/[0-9]+$")},
	{"GET", regexp.MustCompile("^/assets/[0-9]+/events$")},
}

// ServeHTTP handles incoming HTTP requests and attempts to authenticate
// them.
func (m middleware) ServeHTTP(
	w http.ResponseWriter,
	r *http.Request,
) {
	ctx := r.Context()
	withStatus := With(ctx, Status{AutStFailed, nil})

	name, password, _ := r.BasicAuth()
	skip := false
	for _, s := range SkipList {
		if s.Method == r.Method && s.Pattern.MatchString(r.URL.Path) {
			skip = true
		}
	}

	// Helper closure to fall back to the skiplist or log and return an
	// authentication error.
	failedAuth := func(err error) {
		if skip {
			withStatus = With(ctx, Status{AutStSkipped, nil})
			logging.Logf(ctx,
				"Authentication: status=%q name=%q",
				Get(withStatus).Status, name)
			m.Handler.ServeHTTP(w, r.WithContext(withStatus))
		} else {
			withStatus = With(ctx, Status{AutStFailed, nil})
			logging.Logf(ctx,
				"Authentication: status=%q name=%q",
				Get(withStatus).Status, name)
			respond.Error(withStatus, w, errors.Trace(err))
		}
	}

	account, err := model.LoadAccountByName(ctx, name)
	if err != nil {
		failedAuth(errors.Trace(err))
		return
	} else if account == nil {
		failedAuth(errors.Trace(errors.NewUserErrorf(err,
			400, "account_unknown",
			"The account name you are trying to authenticate with is not "+
				"associated with any existing account: %s.", name,
		)))
		return
	}

	if err := account.CheckPassword(ctx, password); err != nil {
		failedAuth(errors.Trace(errors.NewUserErrorf(err,
			400, "password_invalid",
			"The password you provided is invalid.",
		)))
		return
	}

	withStatus = With(ctx, Status{AutStSucceeded, account})
	logging.Logf(ctx,
		"Authentication: status=%q account=%q name=%q",
		Get(withStatus).Status, Get(withStatus).Account.Token, name)

	m.Handler.ServeHTTP(w, r.WithContext(withStatus))
}

// Middleware that authenticates API requests.
func Middleware(h http.Handler) http.Handler {
	return middleware{h}
}
