// Package catalog holds the movie/series catalog: the record shape, the
// genre classifier, the provider-result normalizer and the SQLite-backed
// store.
package catalog

import "time"

// Movie is one catalog entry, movie or series.
type Movie struct {
	ID          int64     `json:"id"`
	TMDBID      int       `json:"tmdbId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	ReleaseDate string    `json:"releaseDate"` // YYYY-MM-DD
	IsReleased  bool      `json:"isReleased"`
	Category    string    `json:"category"`
	Rating      *float64  `json:"rating,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MovieLink associates one catalog entry with one watch/download URL.
type MovieLink struct {
	ID          int64     `json:"id"`
	MovieID     int64     `json:"movieId"`
	DownloadURL string    `json:"downloadUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateMovieInput is the payload for manual admin entry.
type CreateMovieInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	ReleaseDate string   `json:"releaseDate"`
	Category    string   `json:"category"`
	Rating      *float64 `json:"rating,omitempty"`
}

// ListOptions filters and paginates the public movie listing.
type ListOptions struct {
	Query    string
	Category string
	Type     string // "movie", "series" or "anime"
	Page     int
	PageSize int
}
