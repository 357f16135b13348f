package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	domainerrors "canopus/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoPayload struct {
	Name string `json:"name"`
}

func newClientServer(t *testing.T, handler http.HandlerFunc, token TokenSource) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(server.URL, 5*time.Second, token, slog.New(slog.DiscardHandler))

	return client, server
}

func TestClient_Get_DecodesResponse(t *testing.T) {
	client, _ := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/items", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("page"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(echoPayload{Name: "hello"})
	}, nil)

	var out echoPayload
	query := url.Values{"page": []string{"7"}}
	require.NoError(t, client.Get(context.Background(), "/items", query, &out))
	assert.Equal(t, "hello", out.Name)
}

func TestClient_AuthorizationHeader(t *testing.T) {
	token := ""
	var seen []string
	client, _ := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}, func() string { return token })

	ctx := context.Background()
	require.NoError(t, client.Get(ctx, "/a", nil, nil))

	// The token source is consulted per request, so a rotation shows up
	// without rebuilding the client.
	token = "tok-1"
	require.NoError(t, client.Get(ctx, "/a", nil, nil))

	token = "tok-2"
	require.NoError(t, client.Get(ctx, "/a", nil, nil))

	require.Len(t, seen, 3)
	assert.Empty(t, seen[0])
	assert.Equal(t, "Bearer tok-1", seen[1])
	assert.Equal(t, "Bearer tok-2", seen[2])
}

func TestClient_Post_SendsBody(t *testing.T) {
	client, _ := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {
		var in echoPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "ping", in.Name)

		json.NewEncoder(w).Encode(echoPayload{Name: "pong"})
	}, nil)

	var out echoPayload
	require.NoError(t, client.Post(context.Background(), "/echo", echoPayload{Name: "ping"}, &out))
	assert.Equal(t, "pong", out.Name)
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		message string
		want    error
	}{
		{"unauthorized", http.StatusUnauthorized, "token expired", domainerrors.ErrUnauthorized},
		{"forbidden", http.StatusForbidden, "", domainerrors.ErrForbidden},
		{"not found", http.StatusNotFound, "no such work", domainerrors.ErrNotFound},
		{"conflict", http.StatusConflict, "duplicate", domainerrors.ErrConflict},
		{"server error", http.StatusInternalServerError, "boom", domainerrors.ErrServer},
		{"unexpected status", http.StatusTeapot, "", domainerrors.ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]string{"message": tt.message})
			}, nil)

			err := client.Get(context.Background(), "/x", nil, nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var appErr domainerrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Details())
		})
	}
}

func TestClient_NetworkError(t *testing.T) {
	client, server := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	server.Close()

	err := client.Get(context.Background(), "/x", nil, nil)
	require.Error(t, err)

	var netErr *domainerrors.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, http.StatusServiceUnavailable, netErr.HTTPCode())
	assert.NotEmpty(t, netErr.Details())
}

func TestClient_Delete_NilOutIgnoresBody(t *testing.T) {
	client, _ := newClientServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"message": "deleted"})
	}, nil)

	require.NoError(t, client.Delete(context.Background(), "/items/1", nil))
}

func TestClient_TrailingSlashJoin(t *testing.T) {
	var path string
	handler := func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}

	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)

	client := New(server.URL+"/", 5*time.Second, nil, slog.New(slog.DiscardHandler))
	require.NoError(t, client.Get(context.Background(), "items", nil, nil))
	assert.Equal(t, "/items", path)
}
