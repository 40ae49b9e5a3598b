package partsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProvider(name string) Provider {
	return Provider{
		Name:        name,
		CatalogPath: "/api/test/catalog",
		LookupPath:  "/api/test/parts",
		PageParam:   "page",
		LimitParam:  "limit",
		IDParam:     "sku",
	}
}

// recordingServer tracks every request hit with its timestamp.
type recordingServer struct {
	mu    sync.Mutex
	hits  []time.Time
	serve func(w http.ResponseWriter, r *http.Request, hit int)
}

func (s *recordingServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits = append(s.hits, time.Now())
		hit := len(s.hits)
		s.mu.Unlock()
		s.serve(w, r, hit)
	}
}

func (s *recordingServer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hits)
}

func (s *recordingServer) timestamps() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]time.Time, len(s.hits))
	copy(out, s.hits)
	return out
}

func TestFetchCatalogSuccessFirstAttempt(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"parts":[]}`))
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, RetryDelay: time.Millisecond})
	res := client.FetchCatalog(context.Background(), testProvider("TestParts"), 1, 20)

	require.True(t, res.Success)
	assert.Equal(t, "TestParts", res.Provider)
	assert.Equal(t, 1, res.Attempts)
	assert.JSONEq(t, `{"parts":[]}`, string(res.Data))
	assert.Equal(t, 1, rec.count())
}

func TestFetchCatalogSendsProviderParamNames(t *testing.T) {
	var gotQuery map[string][]string
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{}`))
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	prov := testProvider("TestParts")
	prov.PageParam = "pagina"
	prov.LimitParam = "limite"

	client := NewClient(Config{BaseURL: srv.URL, RetryDelay: time.Millisecond})
	res := client.FetchCatalog(context.Background(), prov, 3, 50)

	require.True(t, res.Success)
	assert.Equal(t, []string{"3"}, gotQuery["pagina"])
	assert.Equal(t, []string{"50"}, gotQuery["limite"])
}

func TestLookupSKUSendsIdentifierParam(t *testing.T) {
	var gotSKU string
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		gotSKU = r.URL.Query().Get("partNumber")
		w.Write([]byte(`{}`))
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	prov := testProvider("TestParts")
	prov.IDParam = "partNumber"

	client := NewClient(Config{BaseURL: srv.URL, RetryDelay: time.Millisecond})
	res := client.LookupSKU(context.Background(), prov, "BRK-001")

	require.True(t, res.Success)
	assert.Equal(t, "BRK-001", gotSKU)
}

func TestCallRetriesServerErrorsWithLinearBackoff(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	baseDelay := 20 * time.Millisecond
	client := NewClient(Config{BaseURL: srv.URL, MaxRetries: 5, RetryDelay: baseDelay})
	res := client.FetchCatalog(context.Background(), testProvider("FlakyParts"), 1, 20)

	require.False(t, res.Success)
	assert.Equal(t, 5, res.Attempts)
	assert.Contains(t, res.Err, "503")

	hits := rec.timestamps()
	require.Len(t, hits, 5)
	// The wait before attempt n+1 is n x baseDelay: 1x, 2x, 3x, 4x.
	for i := 1; i < len(hits); i++ {
		gap := hits[i].Sub(hits[i-1])
		want := time.Duration(i) * baseDelay
		assert.GreaterOrEqual(t, gap, want, "gap before attempt %d", i+1)
	}
}

func TestCallDoesNotRetryNotFound(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		w.WriteHeader(http.StatusNotFound)
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxRetries: 5, RetryDelay: time.Millisecond})
	res := client.FetchCatalog(context.Background(), testProvider("TestParts"), 1, 20)

	require.False(t, res.Success)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 1, rec.count())
}

func TestCallDoesNotRetryBadRequest(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		w.WriteHeader(http.StatusBadRequest)
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxRetries: 5, RetryDelay: time.Millisecond})
	res := client.LookupSKU(context.Background(), testProvider("TestParts"), "X")

	require.False(t, res.Success)
	assert.Equal(t, 1, rec.count())
}

func TestCallShortCircuitsOnRecovery(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		if hit < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"parts":[]}`))
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, MaxRetries: 5, RetryDelay: time.Millisecond})
	res := client.FetchCatalog(context.Background(), testProvider("TestParts"), 1, 20)

	require.True(t, res.Success)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 3, rec.count())
}

func TestCallRetriesConnectionErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close() // nothing listens anymore

	client := NewClient(Config{BaseURL: baseURL, MaxRetries: 3, RetryDelay: time.Millisecond})
	res := client.FetchCatalog(context.Background(), testProvider("DownParts"), 1, 20)

	require.False(t, res.Success)
	assert.Equal(t, 3, res.Attempts)
	assert.NotEmpty(t, res.Err)
}

func TestCallStopsWhenContextCanceled(t *testing.T) {
	rec := &recordingServer{serve: func(w http.ResponseWriter, r *http.Request, hit int) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}}
	srv := httptest.NewServer(rec.handler())
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	client := NewClient(Config{BaseURL: srv.URL, MaxRetries: 5, RetryDelay: time.Second})
	start := time.Now()
	res := client.FetchCatalog(ctx, testProvider("SlowParts"), 1, 20)

	require.False(t, res.Success)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Less(t, res.Attempts, 5)
}
