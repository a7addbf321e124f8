package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"goji.io"

	"github.com/facebookgo/grace/gracehttp"
	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/async"
	"github.com/spolu/forge/forge/lib/authentication"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/env"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/logging"
	"github.com/spolu/forge/lib/recoverer"
	"github.com/spolu/forge/lib/requestlogger"

	// force initialization of schemas
	_ "github.com/spolu/forge/forge/model/schemas"
)

// BackgroundContextFromFlags initializes a background context fully loaded
// with everything that could be extracted from the flags.
func BackgroundContextFromFlags(
	envFlag string,
	dsnFlag string,
	hstFlag string,
	prtFlag string,
	sysFlag string,
	idxFlag string,
) (context.Context, error) {
	ctx := context.Background()

	forgeEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	if envFlag == "production" || envFlag == "prod" {
		forgeEnv.Environment = env.Production
	}
	forgeEnv.Config[forge.EnvCfgHost] = hstFlag

	port := forge.DefaultPort[forgeEnv.Environment]
	if prtFlag != "" {
		port = prtFlag
	}
	forgeEnv.Config[forge.EnvCfgPort] = port

	if sysFlag != "" {
		forgeEnv.Config[forge.EnvCfgSystemAccount] = sysFlag
	}
	if idxFlag != "" {
		forgeEnv.Config[forge.EnvCfgIndexerURL] = idxFlag
	}

	ctx = env.With(ctx, &forgeEnv)

	forgeDB, err := db.NewDBForDSN(ctx,
		dsnFlag,
		fmt.Sprintf("sqlite3://~/.forge/forge-%s.db",
			env.Get(ctx).Environment))
	if err != nil {
		return nil, errors.Trace(err)
	}
	err = db.CreateDBTables(ctx, "forge", forgeDB)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = db.WithDB(ctx, "forge", forgeDB)

	a, err := async.NewAsync(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ctx = async.With(ctx, a)

	return ctx, nil
}

// Build initializes the app and its web stack.
func Build(
	ctx context.Context,
) (*goji.Mux, error) {
	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDBMap(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(async.Middleware(async.Get(ctx)))
	mux.Use(authentication.Middleware)

	logging.Logf(ctx, "Initializing: environment=%s port=%s system_account=%s",
		env.Get(ctx).Environment, forge.GetPort(ctx),
		forge.GetSystemAccount(ctx))

	(&Controller{}).Bind(mux)

	// Start an async worker.
	go func() {
		async.Get(ctx).Run()
	}()

	return mux, nil
}

// Serve the goji mux.
func Serve(
	ctx context.Context,
	mux *goji.Mux,
) error {
	s := &http.Server{
		Addr:         fmt.Sprintf(":%s", forge.GetPort(ctx)),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Handler:      mux,
	}

	logging.Logf(ctx, "Listening: port=%s", forge.GetPort(ctx))

	err := gracehttp.Serve(s)
	if err != nil {
		return errors.Trace(err)
	}

	return nil
}
