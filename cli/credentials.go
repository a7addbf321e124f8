// OWNER stan

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spolu/forge/lib/env"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/out"
)

// Credentials represents the credentials of the currently logged in account.
type Credentials struct {
	Name     string `json:"name"`
	Forge    string `json:"forge"`
	Password string `json:"password"`
}

const (
	// credentialsKey the context.Context key to store the credentials
	credentialsKey ContextKey = "cli.credentials"
)

// WithCredentials stores the credentials in the provided context.
func WithCredentials(
	ctx context.Context,
	credentials *Credentials,
) context.Context {
	return context.WithValue(ctx, credentialsKey, credentials)
}

// GetCredentials returns the credentials currently stored in the context.
func GetCredentials(
	ctx context.Context,
) *Credentials {
	return ctx.Value(credentialsKey).(*Credentials)
}

// CredentialsPath returns the credentials path for the current environment.
func CredentialsPath(
	ctx context.Context,
) (*string, error) {
	path, err := homedir.Expand(
		fmt.Sprintf("~/.forge/credentials-%s.json", env.Get(ctx).Environment))
	if err != nil {
		return nil, errors.Trace(err)
	}

	err = os.MkdirAll(filepath.Dir(path), 0777)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &path, nil
}

// CurrentAccount retrieves the current account by reading CredentialsPath.
func CurrentAccount(
	ctx context.Context,
) (*Credentials, error) {
	path, err := CredentialsPath(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if _, err := os.Stat(*path); os.IsNotExist(err) {
		return nil, nil
	}

	raw, err := ioutil.ReadFile(*path)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var c Credentials
	err = json.Unmarshal(raw, &c)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return &c, nil
}

// Login logs the account in by storing its credentials after validation in
// CredentialsPath.
func Login(
	ctx context.Context,
	forge string,
	name string,
	password string,
) error {
	creds := &Credentials{
		Forge:    forge,
		Name:     name,
		Password: password,
	}

	// Check the credentials against the forge before storing them.
	s := &Session{
		Forge:       forge,
		Credentials: creds,
	}
	status, raw, err := s.Get(ctx, "/balances")
	if err != nil {
		return errors.Trace(err)
	}
	if *status != http.StatusOK {
		var e errors.ConcreteUserError
		if err := raw.Extract("error", &e); err != nil {
			return errors.Trace(err)
		}
		return errors.Trace(
			errors.Newf("Unable to authenticate: (%s) %s",
				e.Code, e.Message))
	}

	path, err := CredentialsPath(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	formatted, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return errors.Trace(err)
	}

	err = ioutil.WriteFile(*path, formatted, 0644)
	if err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Storing credentials] file=%s\n", *path)

	return nil
}

// Logout logs the account out by destroying its credentials at
// CredentialsPath.
func Logout(
	ctx context.Context,
) error {
	path, err := CredentialsPath(ctx)
	if err != nil {
		return errors.Trace(err)
	}

	err = os.Remove(*path)
	if err != nil {
		return errors.Trace(err)
	}

	out.Statf("[Erasing credentials] file=%s\n", *path)

	return nil
}
