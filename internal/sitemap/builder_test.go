package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/movieshub/movieshub/internal/catalog"
)

var buildNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestBuild_URLCount(t *testing.T) {
	movies := []*catalog.Movie{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
		{ID: 3, Title: "Three"},
	}

	xml := Build("https://example.com", DefaultStaticRoutes(), movies, buildNow)

	want := len(DefaultStaticRoutes()) + 2*len(movies)
	if got := strings.Count(xml, "<url>"); got != want {
		t.Errorf("Build() has %d <url> entries, want %d", got, want)
	}
}

func TestBuild_StaticRoutes(t *testing.T) {
	xml := Build("https://example.com", DefaultStaticRoutes(), nil, buildNow)

	if !strings.Contains(xml, "<loc>https://example.com</loc>") {
		t.Error("Build() missing root URL without trailing slash")
	}
	if !strings.Contains(xml, "<loc>https://example.com/admin</loc>") {
		t.Error("Build() missing /admin URL")
	}
	if !strings.Contains(xml, "<changefreq>daily</changefreq>") {
		t.Error("Build() missing daily changefreq for root")
	}
	if !strings.Contains(xml, "<priority>0.3</priority>") {
		t.Error("Build() missing 0.3 priority for /admin")
	}
}

func TestBuild_MoviePages(t *testing.T) {
	movies := []*catalog.Movie{{
		ID:        42,
		Title:     "Answer",
		UpdatedAt: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}}

	xml := Build("https://example.com", nil, movies, buildNow)

	if !strings.Contains(xml, "<loc>https://example.com/movie/42</loc>") {
		t.Error("Build() missing movie detail URL")
	}
	if !strings.Contains(xml, "<loc>https://example.com/download/42</loc>") {
		t.Error("Build() missing download URL")
	}
	if !strings.Contains(xml, "<lastmod>2024-05-01</lastmod>") {
		t.Error("Build() lastmod should use the update time")
	}
	if !strings.Contains(xml, "<priority>0.8</priority>") || !strings.Contains(xml, "<priority>0.7</priority>") {
		t.Error("Build() missing movie page priorities")
	}
}

func TestBuild_LastModFallbacks(t *testing.T) {
	created := time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)

	xml := Build("https://example.com", nil, []*catalog.Movie{{ID: 1, CreatedAt: created}}, buildNow)
	if !strings.Contains(xml, "<lastmod>2024-04-02</lastmod>") {
		t.Error("Build() lastmod should fall back to creation time")
	}

	xml = Build("https://example.com", nil, []*catalog.Movie{{ID: 1}}, buildNow)
	if !strings.Contains(xml, "<lastmod>2024-06-15</lastmod>") {
		t.Error("Build() lastmod should fall back to today")
	}
}

func TestBuild_EscapesXML(t *testing.T) {
	xml := Build("https://example.com/?a=1&b=2", nil, nil, buildNow)

	if strings.Contains(xml, "a=1&b=2") {
		t.Error("Build() left a raw ampersand in a loc element")
	}
	if !strings.Contains(xml, "a=1&amp;b=2") {
		t.Error("Build() did not escape the ampersand")
	}
}

func TestBuild_TrimsTrailingSlash(t *testing.T) {
	xml := Build("https://example.com/", nil, []*catalog.Movie{{ID: 7}}, buildNow)
	if !strings.Contains(xml, "<loc>https://example.com/movie/7</loc>") {
		t.Error("Build() should not produce double slashes")
	}
}

func TestBuild_Declaration(t *testing.T) {
	xml := Build("https://example.com", nil, nil, buildNow)

	if !strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Build() missing XML declaration")
	}
	if !strings.Contains(xml, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`) {
		t.Error("Build() missing sitemap namespace")
	}
}
