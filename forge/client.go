package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"time"

	"github.com/spolu/forge/lib/errors"
	"github.com/spolu/forge/lib/svc"
)

// Client exposes an interface to push events to a remote indexer.
type Client struct {
	httpClient *http.Client
}

// Init initializes the client.
func (c *Client) Init(
	ctx context.Context,
) error {
	c.httpClient = &http.Client{
		Timeout: 10 * time.Second,
	}
	return nil
}

// PropagateEvent posts the provided event resource to the indexer configured
// in the current context.
func (c *Client) PropagateEvent(
	ctx context.Context,
	event *EventResource,
) (*EventResource, error) {
	indexer := GetIndexerURL(ctx)
	if indexer == "" {
		return nil, errors.Trace(errors.Newf("No indexer URL configured"))
	}

	u, err := url.Parse(fmt.Sprintf("%s/events", indexer))
	if err != nil {
		return nil, errors.Trace(err)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return nil, errors.Trace(err)
	}

	req, err := http.NewRequest("POST", u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.Trace(err)
	}
	req = req.WithContext(ctx)
	req.Header.Add("Content-Type", "application/json")

	r, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer func() {
		io.Copy(ioutil.Discard, r.Body)
		r.Body.Close()
	}()

	if r.StatusCode != http.StatusOK && r.StatusCode != http.StatusCreated {
		return nil, errors.Trace(errors.Newf(
			"Unexpected indexer status: %d", r.StatusCode))
	}

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		// Indexers are not required to echo the event back.
		return event, nil
	}

	if rawEvent, ok := raw["event"]; ok {
		var e EventResource
		if err := json.Unmarshal(*rawEvent, &e); err != nil {
			return nil, errors.Trace(err)
		}
		return &e, nil
	}

	return event, nil
}
