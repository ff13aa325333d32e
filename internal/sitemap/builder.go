// Package sitemap assembles the XML sitemap from the static routes and the
// movie catalog, and serves it from a TTL cache.
package sitemap

import (
	"fmt"
	"strings"
	"time"

	"github.com/movieshub/movieshub/internal/catalog"
)

// Route is one static page in the sitemap.
type Route struct {
	Path       string
	ChangeFreq string
	Priority   string
}

// DefaultStaticRoutes returns the fixed static pages.
func DefaultStaticRoutes() []Route {
	return []Route{
		{Path: "/", ChangeFreq: "daily", Priority: "1.0"},
		{Path: "/admin", ChangeFreq: "monthly", Priority: "0.3"},
	}
}

// Build renders the sitemap XML. Each movie contributes two URLs: its detail
// page (weekly, 0.8) and its download page (weekly, 0.7), with lastmod taken
// from the update time, then the creation time, then today. All text is
// XML-escaped. The sitemap protocol's 50,000-URL cap is not enforced.
func Build(baseURL string, staticRoutes []Route, movies []*catalog.Movie, now time.Time) string {
	baseURL = strings.TrimRight(baseURL, "/")
	today := now.Format("2006-01-02")

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")

	for _, route := range staticRoutes {
		path := route.Path
		if path == "/" {
			path = ""
		}
		writeURL(&b, baseURL+path, today, route.ChangeFreq, route.Priority)
	}

	for _, movie := range movies {
		lastmod := lastModified(movie, today)
		writeURL(&b, fmt.Sprintf("%s/movie/%d", baseURL, movie.ID), lastmod, "weekly", "0.8")
		writeURL(&b, fmt.Sprintf("%s/download/%d", baseURL, movie.ID), lastmod, "weekly", "0.7")
	}

	b.WriteString("</urlset>\n")
	return b.String()
}

func lastModified(movie *catalog.Movie, today string) string {
	if !movie.UpdatedAt.IsZero() {
		return movie.UpdatedAt.Format("2006-01-02")
	}
	if !movie.CreatedAt.IsZero() {
		return movie.CreatedAt.Format("2006-01-02")
	}
	return today
}

func writeURL(b *strings.Builder, loc, lastmod, changefreq, priority string) {
	b.WriteString("  <url>\n")
	fmt.Fprintf(b, "    <loc>%s</loc>\n", escapeXML(loc))
	fmt.Fprintf(b, "    <lastmod>%s</lastmod>\n", escapeXML(lastmod))
	fmt.Fprintf(b, "    <changefreq>%s</changefreq>\n", changefreq)
	fmt.Fprintf(b, "    <priority>%s</priority>\n", priority)
	b.WriteString("  </url>\n")
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
