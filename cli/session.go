// OWNER stan

package cli

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/spolu/forge/lib/env"
	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/svc"
)

var defaultHTTPClient = (*http.Client)(nil)

// getDefaultHTTPClient returns the default HTTP client to use (to avoid
// re-instantiating one for each request)
func getDefaultHTTPClient(
	ctx context.Context,
) *http.Client {
	if defaultHTTPClient == nil {
		switch env.Get(ctx).Environment {
		case env.Production:
			defaultHTTPClient = &http.Client{}
		case env.QA:
			// In QA we don't check TLS certificates for ease of setup.
			tr := &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
			defaultHTTPClient = &http.Client{Transport: tr}
		}
	}
	return defaultHTTPClient
}

// Session represents an authenticated session against a forge.
type Session struct {
	Forge       string
	Credentials *Credentials
}

// SessionFromContextCredentials returns a session object from the
// credentials stored in the current context.
func SessionFromContextCredentials(
	ctx context.Context,
) (*Session, error) {
	c := GetCredentials(ctx)
	if c == nil {
		return nil, errors.Trace(
			errors.Newf("Not logged in (see `forge-cli login`)"))
	}
	return &Session{
		Forge:       c.Forge,
		Credentials: c,
	}, nil
}

// fullURL constructs the full URL for a path on the session's forge. The
// forge is stored as a base URL (scheme included).
func (s *Session) fullURL(
	ctx context.Context,
	path string,
) string {
	return strings.TrimSuffix(s.Forge, "/") + path
}

// Post performs a POST request to the forge.
func (s *Session) Post(
	ctx context.Context,
	path string,
	params url.Values,
) (*int, *svc.Resp, error) {
	req, err := http.NewRequest("POST",
		s.fullURL(ctx, path),
		strings.NewReader(params.Encode()))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if s.Credentials != nil {
		req.SetBasicAuth(s.Credentials.Name, s.Credentials.Password)
	}

	r, err := getDefaultHTTPClient(ctx).Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, &raw, nil
}

// Get performs a GET request to the forge.
func (s *Session) Get(
	ctx context.Context,
	path string,
) (*int, *svc.Resp, error) {
	req, err := http.NewRequest("GET", s.fullURL(ctx, path), nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	if s.Credentials != nil {
		req.SetBasicAuth(s.Credentials.Name, s.Credentials.Password)
	}

	r, err := getDefaultHTTPClient(ctx).Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, &raw, nil
}
