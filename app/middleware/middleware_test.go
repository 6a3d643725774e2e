package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"postsapi/app/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*slog.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := observability.NewLogger(&buf, "debug", "text")
	require.NoError(t, err)
	return logger, &buf
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = observability.RequestIDFromContext(r.Context())
	}))

	t.Run("generates an id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))

		assert.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("keeps the client id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, "client-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "client-id", seen)
		assert.Equal(t, "client-id", w.Header().Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	logger, buf := newTestLogger(t)
	handler := RequestID(Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	logOutput := buf.String()
	assert.Contains(t, logOutput, "method=GET")
	assert.Contains(t, logOutput, "path=/test")
	assert.Contains(t, logOutput, "status=418")
	assert.Contains(t, logOutput, "latency=")
	assert.Contains(t, logOutput, "request_id=rid-1")
}

func TestLogger_ImplicitStatus(t *testing.T) {
	logger, buf := newTestLogger(t)
	handler := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	assert.Contains(t, buf.String(), "status=200")
}

func TestRecoverer(t *testing.T) {
	logger, buf := newTestLogger(t)
	handler := Recoverer(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	assert.Contains(t, buf.String(), "test panic")
}

func TestContentTypeJSON(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedHeader string
	}{
		{
			name:           "API route",
			path:           "/api/posts",
			expectedHeader: "application/json",
		},
		{
			name:           "root route",
			path:           "/",
			expectedHeader: "",
		},
		{
			name:           "short path",
			path:           "/ap",
			expectedHeader: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", tt.path, nil))

			assert.Equal(t, tt.expectedHeader, w.Header().Get("Content-Type"))
		})
	}
}

func TestTrimSlash(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{path: "/", expected: "/"},
		{path: "/api/posts", expected: "/api/posts"},
		{path: "/api/posts/", expected: "/api/posts"},
		{path: "/api/posts/1//", expected: "/api/posts/1"},
		{path: "//", expected: "/"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var seen string
			handler := TrimSlash(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.URL.Path
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))

			assert.Equal(t, tt.expected, seen)
		})
	}
}
