package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/movieshub/movieshub/internal/config"
	"github.com/movieshub/movieshub/internal/testutil"
	"github.com/movieshub/movieshub/internal/websocket"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	tdb := testutil.NewTestDB(t)
	t.Cleanup(tdb.Close)

	cfg := config.Default()
	cfg.Auth.AdminPassword = "test-password"
	cfg.Auth.JWTSecret = "test-secret"

	hub := websocket.NewHub()
	go hub.Run()

	server, err := NewServer(tdb.Conn, hub, cfg, tdb.Logger)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return server
}

func (s *Server) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)
	return rec
}

func loginToken(t *testing.T, server *Server) string {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"password":"test-password"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := server.do(req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	return resp.Token
}

func TestServer_HealthCheck(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200", rec.Code)
	}
}

func TestServer_PublicMoviesList(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("movies status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestServer_AdminRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/movies"},
		{http.MethodDelete, "/api/v1/movies/1"},
		{http.MethodGet, "/api/v1/metadata/search?q=x"},
		{http.MethodPost, "/api/v1/import/bulk"},
		{http.MethodGet, "/api/v1/import/status"},
	}

	for _, p := range paths {
		rec := server.do(httptest.NewRequest(p.method, p.path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestServer_LoginRejectsWrongPassword(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := server.do(req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login status = %d, want 401", rec.Code)
	}
}

func TestServer_AdminFlow(t *testing.T) {
	server := newTestServer(t)
	token := loginToken(t, server)

	body := `{"title":"Manual","description":"Entered by hand.","releaseDate":"2020-01-01","category":"Drama"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	rec := server.do(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create movie status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var movie struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &movie); err != nil {
		t.Fatalf("failed to decode movie: %v", err)
	}

	// Public read sees the new entry
	rec = server.do(httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Manual"`) {
		t.Errorf("public list status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Status endpoint behind the gate
	req = httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = server.do(req)
	if rec.Code != http.StatusOK {
		t.Errorf("status endpoint = %d, want 200", rec.Code)
	}
}

func TestServer_Sitemap(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("sitemap status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Errorf("sitemap content type = %q, want application/xml", ct)
	}
	if !strings.Contains(rec.Body.String(), "<urlset") {
		t.Error("sitemap body missing urlset element")
	}
}

func TestServer_SecurityHeaders(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if !strings.Contains(rec.Header().Get("Cache-Control"), "no-store") {
		t.Error("API response should not be cacheable")
	}
}
