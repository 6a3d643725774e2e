package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"postsapi/app/observability"
	"postsapi/app/repositories"

	"github.com/stretchr/testify/require"
)

// storeFactories opens a fresh store per backend so route tests cover both.
var storeFactories = map[string]func(t *testing.T) *repositories.Store{
	"badger": func(t *testing.T) *repositories.Store {
		db, err := repositories.OpenBadger("", slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.NoError(t, err)
		return repositories.NewBadgerStore(db)
	},
	"sqlite": func(t *testing.T) *repositories.Store {
		store, err := repositories.Open(repositories.Options{
			Driver:    repositories.DriverSQLite,
			SQLiteDSN: ":memory:",
		})
		require.NoError(t, err)
		return store
	},
}

type testServer struct {
	handler http.Handler
	store   *repositories.Store
	logs    *bytes.Buffer
}

func setupTestServer(t *testing.T, open func(t *testing.T) *repositories.Store) *testServer {
	t.Helper()
	store := open(t)
	t.Cleanup(func() { store.Close() })

	logs := &bytes.Buffer{}
	logger, err := observability.NewLogger(logs, "info", "text")
	require.NoError(t, err)
	handler := SetupRoutes(store, logger, Options{MaxBodyBytes: 1024})
	return &testServer{handler: handler, store: store, logs: logs}
}

func (s *testServer) request(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func decodeInto(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}
