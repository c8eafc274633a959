package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu      sync.Mutex
	indexed map[string]json.RawMessage
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		_, _ = io.WriteString(w, `{"name":"test","cluster_name":"test","version":{"number":"8.19.0","build_flavor":"default"},"tagline":"You Know, for Search"}`)
	case r.Method == http.MethodPut && r.URL.Path == "/products":
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":{"type":"resource_already_exists_exception"},"status":400}`)
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/products/_doc/"):
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.indexed[strings.TrimPrefix(r.URL.Path, "/products/_doc/")] = body
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"result":"not_found"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":1},"hits":[{"_id":"sencha","_source":{"id":"sencha","name":"Sencha"}}]}}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{}`)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeES) {
	t.Helper()
	fake := &fakeES{indexed: map[string]json.RawMessage{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(&Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return c, fake
}

func TestClient_IndexAndSearch(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.CreateIndex(ctx, "products", `{}`), "an existing index is not an error")
	require.NoError(t, c.Index(ctx, "products", "sencha", map[string]any{"name": "Sencha", "price_pence": 850}))
	assert.JSONEq(t, `{"name":"Sencha","price_pence":850}`, string(fake.indexed["sencha"]))

	require.NoError(t, c.Delete(ctx, "products", "missing"), "deleting a missing document is not an error")

	res, err := c.Search(ctx, "products", map[string]interface{}{"query": map[string]interface{}{"match_all": map[string]interface{}{}}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Hits.Total.Value)
	require.Len(t, res.Hits.Hits, 1)
	assert.Equal(t, "sencha", res.Hits.Hits[0].ID)
}
