package devproxy

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/micronotes/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seen struct {
	Service       string `json:"service"`
	Method        string `json:"method"`
	Path          string `json:"path"`
	Query         string `json:"query"`
	Authorization string `json:"authorization"`
	Body          string `json:"body"`
}

func upstream(t *testing.T, name string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
		}
		_ = json.NewEncoder(w).Encode(seen{
			Service:       name,
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
			Body:          string(b),
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	users := upstream(t, "users")
	notes := upstream(t, "notes")
	return NewServer("127.0.0.1:0", users.URL, notes.URL+"/", logging.Nop())
}

func do(t *testing.T, s *Server, req *http.Request) (*http.Response, seen) {
	t.Helper()
	resp, err := s.App().Test(req, 5000)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var got seen
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = json.Unmarshal(b, &got)
	return resp, got
}

func TestProxy_RoutesByPrefix(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name        string
		method      string
		target      string
		body        string
		wantService string
		wantPath    string
		wantQuery   string
	}{
		{name: "login", method: http.MethodPost, target: "/api/users/auth/login", body: `{"email":"a"}`, wantService: "users", wantPath: "/auth/login"},
		{name: "me", method: http.MethodGet, target: "/api/users/auth/me", wantService: "users", wantPath: "/auth/me"},
		{name: "list", method: http.MethodGet, target: "/api/notes/notes?limit=5", wantService: "notes", wantPath: "/notes", wantQuery: "limit=5"},
		{name: "update", method: http.MethodPut, target: "/api/notes/notes/7", body: `{"title":"x"}`, wantService: "notes", wantPath: "/notes/7"},
		{name: "delete", method: http.MethodDelete, target: "/api/notes/notes/7", wantService: "notes", wantPath: "/notes/7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.target, body)
			req.Header.Set("Authorization", "Bearer tok")

			resp, got := do(t, s, req)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantService, got.Service)
			assert.Equal(t, tt.method, got.Method)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantQuery, got.Query)
			assert.Equal(t, "Bearer tok", got.Authorization)
			assert.Equal(t, tt.body, got.Body)
		})
	}
}

func TestProxy_PassesUpstreamStatus(t *testing.T) {
	s := newTestServer(t)

	resp, got := do(t, s, httptest.NewRequest(http.MethodGet, "/api/notes/missing", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "notes", got.Service)
}

func TestProxy_UnknownPrefix(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/other/x", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProxy_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	addr := dead.URL
	dead.Close()

	s := NewServer("127.0.0.1:0", addr, addr, logging.Nop())
	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/api/users/auth/me", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(b))
}

func TestRun_ListenFailureReturnsAndReleasesWatcher(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	before := runtime.NumGoroutine()
	srv := NewServer(busy.Addr().String(), "http://127.0.0.1:1", "http://127.0.0.1:1", logging.Nop())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(context.Background()) }()

	select {
	case err := <-errCh:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return on a busy address")
	}

	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= before
	}, 2*time.Second, 10*time.Millisecond)
}
