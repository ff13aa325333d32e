package catalog

import (
	"testing"
	"time"

	"github.com/movieshub/movieshub/internal/metadata/tmdb"
)

var normalizeNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestNormalize_MovieFields(t *testing.T) {
	poster := "/abc123.jpg"
	item := tmdb.Item{
		ID:          603,
		Title:       "The Matrix",
		Overview:    "A computer hacker learns about the true nature of reality.",
		PosterPath:  &poster,
		ReleaseDate: "1999-03-31",
		VoteAverage: 8.163,
		GenreIDs:    []int{28},
	}

	m := Normalize(item, "matrix", normalizeNow)

	if m.TMDBID != 603 {
		t.Errorf("TMDBID = %d, want 603", m.TMDBID)
	}
	if m.Title != "The Matrix" {
		t.Errorf("Title = %q, want %q", m.Title, "The Matrix")
	}
	if m.Image != PosterBaseURL+"/abc123.jpg" {
		t.Errorf("Image = %q, want poster URL", m.Image)
	}
	if m.ReleaseDate != "1999-03-31" {
		t.Errorf("ReleaseDate = %q, want 1999-03-31", m.ReleaseDate)
	}
	if !m.IsReleased {
		t.Error("IsReleased = false, want true for past date")
	}
	if m.Category != "Action" {
		t.Errorf("Category = %q, want Action", m.Category)
	}
	if m.Rating == nil || *m.Rating != 8.2 {
		t.Errorf("Rating = %v, want 8.2", m.Rating)
	}
}

func TestNormalize_TitleFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		item  tmdb.Item
		query string
		want  string
	}{
		{"series name", tmdb.Item{Name: "Breaking Bad"}, "breaking", "Breaking Bad"},
		{"query fallback", tmdb.Item{}, "some search", "some search"},
		{"last resort", tmdb.Item{}, "", "Unknown Title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Normalize(tt.item, tt.query, normalizeNow)
			if m.Title != tt.want {
				t.Errorf("Title = %q, want %q", m.Title, tt.want)
			}
		})
	}
}

func TestNormalize_ReleaseDateFallbacks(t *testing.T) {
	m := Normalize(tmdb.Item{Name: "Show", FirstAirDate: "2008-01-20"}, "", normalizeNow)
	if m.ReleaseDate != "2008-01-20" {
		t.Errorf("ReleaseDate = %q, want first-air date", m.ReleaseDate)
	}

	m = Normalize(tmdb.Item{Title: "Untitled"}, "", normalizeNow)
	if m.ReleaseDate != "2024-06-15" {
		t.Errorf("ReleaseDate = %q, want today", m.ReleaseDate)
	}
	if !m.IsReleased {
		t.Error("IsReleased = false, want true when defaulting to today")
	}
}

func TestNormalize_FutureDateNotReleased(t *testing.T) {
	m := Normalize(tmdb.Item{Title: "Upcoming", ReleaseDate: "2024-06-16"}, "", normalizeNow)
	if m.IsReleased {
		t.Error("IsReleased = true, want false for future date")
	}
}

func TestNormalize_Placeholders(t *testing.T) {
	m := Normalize(tmdb.Item{Title: "Bare"}, "", normalizeNow)

	if m.Image != PlaceholderImage {
		t.Errorf("Image = %q, want placeholder", m.Image)
	}
	if m.Description != PlaceholderDescription {
		t.Errorf("Description = %q, want placeholder", m.Description)
	}

	empty := ""
	m = Normalize(tmdb.Item{Title: "Bare", PosterPath: &empty}, "", normalizeNow)
	if m.Image != PlaceholderImage {
		t.Errorf("Image = %q, want placeholder for empty poster path", m.Image)
	}
}

func TestNormalize_ZeroVoteAverageHasNoRating(t *testing.T) {
	m := Normalize(tmdb.Item{Title: "Unrated"}, "", normalizeNow)
	if m.Rating != nil {
		t.Errorf("Rating = %v, want nil", *m.Rating)
	}
}
