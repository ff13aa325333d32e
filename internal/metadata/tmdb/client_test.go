package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	cfg := config.TMDBConfig{
		APIKey:       "test-api-key",
		BaseURL:      server.URL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		Timeout:      5,
	}
	return NewClient(cfg, zerolog.Nop())
}

func TestClient_Search_NotConfigured(t *testing.T) {
	client := NewClient(config.TMDBConfig{}, zerolog.Nop())
	if _, err := client.Search(context.Background(), "Matrix", MediaTypeMovie); err != ErrAPIKeyMissing {
		t.Errorf("Search() error = %v, want ErrAPIKeyMissing", err)
	}
}

func TestClient_Search_Paths(t *testing.T) {
	tests := []struct {
		mediaType MediaType
		wantPath  string
	}{
		{MediaTypeMovie, "/search/movie"},
		{MediaTypeTV, "/search/tv"},
		{MediaTypeMulti, "/search/multi"},
		{"", "/search/multi"},
	}

	for _, tt := range tests {
		t.Run(tt.wantPath, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != tt.wantPath {
					t.Errorf("unexpected path: %s, want %s", r.URL.Path, tt.wantPath)
				}
				if r.URL.Query().Get("query") != "Matrix" {
					t.Errorf("unexpected query: %s", r.URL.Query().Get("query"))
				}
				if r.URL.Query().Get("include_adult") != "false" {
					t.Error("include_adult not set to false")
				}
				json.NewEncoder(w).Encode(SearchResponse{
					Page:    1,
					Results: []Item{{ID: 603, Title: "The Matrix"}},
				})
			}))
			defer server.Close()

			client := newTestClient(server)
			results, err := client.Search(context.Background(), "Matrix", tt.mediaType)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != 1 {
				t.Fatalf("Search() = %d results, want 1", len(results))
			}
		})
	}
}

func TestClient_Search_TagsMediaType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{
			Results: []Item{{ID: 1396, Name: "Breaking Bad"}},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Search(context.Background(), "Breaking Bad", MediaTypeTV)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if results[0].MediaType != "tv" {
		t.Errorf("MediaType = %q, want %q", results[0].MediaType, "tv")
	}
}

func TestClient_Search_EmptyResultsIsNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SearchResponse{Results: []Item{}})
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Search(context.Background(), "zzzzz", MediaTypeMulti)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search() = %d results, want 0", len(results))
	}
}

func TestClient_DiscoverByGenre_MergesAndSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("with_genres") != "878" {
			t.Errorf("unexpected with_genres: %s", r.URL.Query().Get("with_genres"))
		}
		if r.URL.Query().Get("sort_by") != "popularity.desc" {
			t.Errorf("unexpected sort_by: %s", r.URL.Query().Get("sort_by"))
		}

		switch r.URL.Path {
		case "/discover/movie":
			json.NewEncoder(w).Encode(SearchResponse{Results: []Item{
				{ID: 1, Title: "Movie A", Popularity: 50},
				{ID: 2, Title: "Movie B", Popularity: 10},
			}})
		case "/discover/tv":
			json.NewEncoder(w).Encode(SearchResponse{Results: []Item{
				{ID: 3, Name: "Show C", Popularity: 99},
			}})
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.DiscoverByGenre(context.Background(), 878, MediaTypeMulti, 1)
	if err != nil {
		t.Fatalf("DiscoverByGenre() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("DiscoverByGenre() = %d results, want 3", len(results))
	}
	if results[0].ID != 3 {
		t.Errorf("first result ID = %d, want most popular (3)", results[0].ID)
	}
	if results[0].MediaType != "tv" || results[1].MediaType != "movie" {
		t.Error("merged results are not tagged with their media type")
	}
}

func TestClient_DiscoverByGenre_TruncatesToOnePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var items []Item
		for i := 0; i < 20; i++ {
			items = append(items, Item{ID: i, Title: "x"})
		}
		json.NewEncoder(w).Encode(SearchResponse{Results: items})
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.DiscoverByGenre(context.Background(), 28, MediaTypeMulti, 1)
	if err != nil {
		t.Fatalf("DiscoverByGenre() error = %v", err)
	}
	if len(results) != 20 {
		t.Errorf("DiscoverByGenre() = %d results, want 20", len(results))
	}
}

func TestClient_DiscoverByGenre_SubRequestFailureFailsCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/discover/tv" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(SearchResponse{Results: []Item{{ID: 1, Title: "Movie"}}})
	}))
	defer server.Close()

	client := newTestClient(server)
	if _, err := client.DiscoverByGenre(context.Background(), 28, MediaTypeMulti, 1); err == nil {
		t.Error("DiscoverByGenre() error = nil, want error when one side fails")
	}
}

func TestClient_Popular(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var items []Item
		for i := 0; i < 20; i++ {
			items = append(items, Item{ID: i, Title: "x"})
		}
		json.NewEncoder(w).Encode(SearchResponse{Results: items})
	}))
	defer server.Close()

	client := newTestClient(server)
	results, err := client.Popular(context.Background(), MediaTypeMovie)
	if err != nil {
		t.Fatalf("Popular() error = %v", err)
	}
	if len(results) != 100 {
		t.Errorf("Popular() = %d results, want 100", len(results))
	}
}

func TestClient_Popular_RejectsMulti(t *testing.T) {
	client := NewClient(config.TMDBConfig{APIKey: "k"}, zerolog.Nop())
	if _, err := client.Popular(context.Background(), MediaTypeMulti); err == nil {
		t.Error("Popular() error = nil, want error for multi")
	}
}

func TestClient_Details_MovieNamespace(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("append_to_response") != "credits" {
			t.Error("append_to_response=credits not set")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":    603,
			"title": "The Matrix",
			"credits": map[string]any{
				"cast": []map[string]any{{"id": 6384, "name": "Keanu Reeves"}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server)
	details, err := client.Details(context.Background(), 603)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if details.MediaType != "movie" {
		t.Errorf("MediaType = %q, want movie", details.MediaType)
	}
	if len(details.Cast) != 1 || details.Cast[0].Name != "Keanu Reeves" {
		t.Errorf("Cast = %+v, want top-billed cast surfaced", details.Cast)
	}
}

func TestClient_Details_FallsBackToTV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/movie/") {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(ErrorResponse{StatusMessage: "not found"})
			return
		}
		if r.URL.Path != "/tv/1396" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1396, "name": "Breaking Bad"})
	}))
	defer server.Close()

	client := newTestClient(server)
	details, err := client.Details(context.Background(), 1396)
	if err != nil {
		t.Fatalf("Details() error = %v", err)
	}
	if details.MediaType != "tv" {
		t.Errorf("MediaType = %q, want tv", details.MediaType)
	}
}

func TestClient_Details_BothNamespacesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server)
	if _, err := client.Details(context.Background(), 999999); err != ErrNotFound {
		t.Errorf("Details() error = %v, want ErrNotFound", err)
	}
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{"not found", http.StatusNotFound, ErrNotFound},
		{"rate limited", http.StatusTooManyRequests, ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := newTestClient(server)
			if _, err := client.Search(context.Background(), "x", MediaTypeMovie); err != tt.wantErr {
				t.Errorf("Search() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestClient_ImageURL(t *testing.T) {
	client := NewClient(config.TMDBConfig{ImageBaseURL: "https://image.tmdb.org/t/p"}, zerolog.Nop())

	got := client.ImageURL("/abc.jpg", "w500")
	want := "https://image.tmdb.org/t/p/w500/abc.jpg"
	if got != want {
		t.Errorf("ImageURL() = %q, want %q", got, want)
	}

	if client.ImageURL("", "w500") != "" {
		t.Error("ImageURL() with empty path should be empty")
	}
}
