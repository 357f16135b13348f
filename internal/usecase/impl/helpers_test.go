package impl

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"canopus/internal/api"
)

// testBackend is an httptest-backed stand-in for the catering API. It
// records every request so tests can assert on what was issued.
type testBackend struct {
	t       *testing.T
	server  *httptest.Server
	handler http.HandlerFunc

	mu       sync.Mutex
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   []byte
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *testBackend {
	t.Helper()

	backend := &testBackend{t: t, handler: handler}
	backend.server = httptest.NewServer(http.HandlerFunc(backend.serve))
	t.Cleanup(backend.server.Close)

	return backend
}

func (b *testBackend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Auth:   r.Header.Get("Authorization"),
		Body:   body,
	})
	b.mu.Unlock()

	b.handler(w, r)
}

// Requests returns a snapshot of the recorded requests.
func (b *testBackend) Requests() []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]recordedRequest, len(b.requests))
	copy(out, b.requests)

	return out
}

// Client builds an API client pointed at the backend.
func (b *testBackend) Client(token api.TokenSource) *api.Client {
	return api.New(b.server.URL, 5*time.Second, token, testLogger())
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// writeJSON responds with a JSON payload.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.Errorf("failed to encode response: %v", err)
	}
}
