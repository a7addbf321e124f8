package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/app"
	"github.com/spolu/forge/forge/async"
	"github.com/spolu/forge/forge/lib/authentication"
	"github.com/spolu/forge/forge/model"
	"github.com/spolu/forge/lib/db"
	"github.com/spolu/forge/lib/env"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/recoverer"
	"github.com/spolu/forge/lib/requestlogger"
	"github.com/spolu/forge/lib/svc"
	"github.com/spolu/forge/lib/token"
	goji "goji.io"
)

// PostLatency is the expected latency of a local test post request.
var PostLatency = 200 * time.Millisecond

// Forge represents a test forge service.
type Forge struct {
	Server *httptest.Server
	Ctx    context.Context
	Env    *env.Env
}

// ForgeAccount represents an account owned by a test forge.
type ForgeAccount struct {
	Forge *Forge

	Name     string
	Password string
}

// CreateForge creates a new test forge with an in-memory DB.
func CreateForge(
	t *testing.T,
) *Forge {
	ctx := context.Background()

	forgeEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	ctx = env.With(ctx, &forgeEnv)

	forgeDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	err = db.CreateDBTables(ctx, "forge", forgeDB)
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	ctx = db.WithDB(ctx, "forge", forgeDB)

	a, err := async.NewAsync(ctx)
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	ctx = async.With(ctx, a)

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDBMap(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(async.Middleware(async.Get(ctx)))
	mux.Use(authentication.Middleware)

	(&app.Controller{}).Bind(mux)

	f := Forge{
		Server: httptest.NewServer(mux),
		Ctx:    ctx,
		Env:    &forgeEnv,
	}

	f.Env.Config[forge.EnvCfgHost] = strings.TrimPrefix(
		f.Server.URL, "http://")

	return &f
}

// Close shuts the test forge down.
func (f *Forge) Close() {
	f.Server.Close()
}

// CreateAccount creates a new account on the test forge with a unique name.
func (f *Forge) CreateAccount(
	t *testing.T,
	name string,
) *ForgeAccount {
	password := token.New("password")

	ctx := db.Begin(f.Ctx, "forge")
	defer db.LoggedRollback(ctx, "forge")

	_, err := model.CreateAccount(ctx, name, password)
	if err != nil {
		t.Fatal(errors.Details(err))
	}

	db.Commit(ctx, "forge")

	return &ForgeAccount{
		Forge:    f,
		Name:     name,
		Password: password,
	}
}

// Post posts unauthenticated to the specified endpoint of the test forge.
func (f *Forge) Post(
	t *testing.T,
	path string,
	values url.Values,
) (int, svc.Resp) {
	req, err := http.NewRequest("POST",
		f.Server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	return f.execute(t, req)
}

// Get retrieves unauthenticated the specified endpoint of the test forge.
func (f *Forge) Get(
	t *testing.T,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("GET", f.Server.URL+path, nil)
	if err != nil {
		t.Fatal(errors.Details(err))
	}

	return f.execute(t, req)
}

// Post posts to the specified endpoint of the account's forge, authenticated
// as the account.
func (a *ForgeAccount) Post(
	t *testing.T,
	path string,
	values url.Values,
) (int, svc.Resp) {
	req, err := http.NewRequest("POST",
		a.Forge.Server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(a.Name, a.Password)

	return a.Forge.execute(t, req)
}

// Get retrieves the specified endpoint of the account's forge, authenticated
// as the account.
func (a *ForgeAccount) Get(
	t *testing.T,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("GET", a.Forge.Server.URL+path, nil)
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	req.SetBasicAuth(a.Name, a.Password)

	return a.Forge.execute(t, req)
}

func (f *Forge) execute(
	t *testing.T,
	req *http.Request,
) (int, svc.Resp) {
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(errors.Details(err))
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		t.Fatal(errors.Details(err))
	}

	return r.StatusCode, raw
}

// CreateCollection creates a collection authored by the account.
func (a *ForgeAccount) CreateCollection(
	t *testing.T,
	royalty int64,
	metadata string,
) forge.CollectionResource {
	status, raw := a.Post(t, "/collections", url.Values{
		"royalty":  {fmt.Sprintf("%d", royalty)},
		"metadata": {metadata},
	})
	if status != 201 {
		t.Fatalf("Unexpected status creating collection: %d", status)
	}

	var collection forge.CollectionResource
	if err := raw.Extract("collection", &collection); err != nil {
		t.Fatal(errors.Details(err))
	}

	return collection
}

// CreateAssetType creates an asset type under the specified collection.
func (a *ForgeAccount) CreateAssetType(
	t *testing.T,
	collection int64,
	maxSupply int64,
	metadata string,
) forge.AssetTypeResource {
	status, raw := a.Post(t,
		fmt.Sprintf("/collections/%d/assets", collection),
		url.Values{
			"max_supply": {fmt.Sprintf("%d", maxSupply)},
			"metadata":   {metadata},
		})
	if status != 201 {
		t.Fatalf("Unexpected status creating asset type: %d", status)
	}

	var assetType forge.AssetTypeResource
	if err := raw.Extract("asset_type", &assetType); err != nil {
		t.Fatal(errors.Details(err))
	}

	return assetType
}
