package functional

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/spolu/forge/forge"
	"github.com/spolu/forge/forge/async"
	"github.com/spolu/forge/forge/test"
	"github.com/stretchr/testify/assert"
)

// indexer is a stub indexer recording the events posted to it.
type indexer struct {
	Server *httptest.Server

	mutex  sync.Mutex
	events []forge.EventResource
}

func createIndexer(
	t *testing.T,
) *indexer {
	i := &indexer{}
	i.Server = httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var event forge.EventResource
			if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			i.mutex.Lock()
			i.events = append(i.events, event)
			i.mutex.Unlock()

			w.WriteHeader(http.StatusOK)
		}))
	return i
}

func (i *indexer) Events() []forge.EventResource {
	i.mutex.Lock()
	defer i.mutex.Unlock()
	return append([]forge.EventResource{}, i.events...)
}

func TestPropagateEventToIndexer(
	t *testing.T,
) {
	t.Parallel()

	f := test.CreateForge(t)
	defer f.Close()

	i := createIndexer(t)
	defer i.Server.Close()

	f.Env.Config[forge.EnvCfgIndexerURL] = i.Server.URL

	alice := f.CreateAccount(t, "alice")
	c := alice.CreateCollection(t, 0, "punks")
	at := alice.CreateAssetType(t, c.ID, 100, "punk")

	status, _ := alice.Post(t,
		fmt.Sprintf("/assets/%d/mint", at.ID),
		url.Values{
			"to":     {"alice"},
			"amount": {"10"},
			"memo":   {"indexed"},
		})
	assert.Equal(t, 200, status)

	// Run the queued propagation tasks synchronously: the collection and
	// asset type creations plus the mint.
	for k := 0; k < 3; k++ {
		async.TestRunOne(f.Ctx)
	}

	events := i.Events()
	assert.Equal(t, 3, len(events))

	kinds := map[string]int{}
	for _, e := range events {
		kinds[e.Kind]++
	}
	assert.Equal(t, 1, kinds["collection_created"])
	assert.Equal(t, 1, kinds["asset_type_created"])
	assert.Equal(t, 1, kinds["balance_changed"])
}
