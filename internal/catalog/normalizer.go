package catalog

import (
	"math"
	"time"

	"github.com/movieshub/movieshub/internal/metadata/tmdb"
)

const (
	// PosterBaseURL is the provider poster path prefix at the fixed w500 variant.
	PosterBaseURL = "https://image.tmdb.org/t/p/w500"

	// PlaceholderImage is used when the provider supplies no poster path.
	PlaceholderImage = "https://images.unsplash.com/photo-1518676590629-3dcbd9c5a5c9?w=500"

	// PlaceholderDescription is used when the provider supplies no overview.
	PlaceholderDescription = "No description available."
)

// Normalize maps a provider item into a catalog entry, with no ID assigned.
//
// Field precedence: title falls back from the movie title to the series name
// to the original query; the release date falls back from the movie release
// date to the series first-air date to today. IsReleased is computed once
// here and never re-evaluated.
func Normalize(item tmdb.Item, query string, now time.Time) Movie {
	title := item.DisplayTitle()
	if title == "" {
		title = query
	}
	if title == "" {
		title = "Unknown Title"
	}

	today := now.Format("2006-01-02")

	releaseDate := item.ReleaseDate
	if releaseDate == "" {
		releaseDate = item.FirstAirDate
	}
	if releaseDate == "" {
		releaseDate = today
	}

	image := PlaceholderImage
	if item.PosterPath != nil && *item.PosterPath != "" {
		image = PosterBaseURL + *item.PosterPath
	}

	description := item.Overview
	if description == "" {
		description = PlaceholderDescription
	}

	var rating *float64
	if item.VoteAverage > 0 {
		r := math.Round(item.VoteAverage*10) / 10
		rating = &r
	}

	return Movie{
		TMDBID:      item.ID,
		Title:       title,
		Description: description,
		Image:       image,
		ReleaseDate: releaseDate,
		IsReleased:  releaseDate <= today,
		Category:    Classify(item),
		Rating:      rating,
	}
}
