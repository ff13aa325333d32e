package catalog

import (
	"strings"

	"github.com/movieshub/movieshub/internal/metadata/tmdb"
)

// DefaultCategory is assigned when no genre information is available or the
// first genre code is unknown.
const DefaultCategory = "Drama"

// genreNames maps TMDB genre codes to catalog category labels.
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// animeKeywords are known animated-franchise markers checked against title
// and overview before any genre-code mapping.
var animeKeywords = []string{
	"attack on titan",
	"death note",
	"demon slayer",
	"dragon ball",
	"fullmetal alchemist",
	"jujutsu kaisen",
	"my hero academia",
	"naruto",
	"one piece",
	"one punch man",
}

// Categories lists every label the classifier can produce, for the admin
// form's category picker.
func Categories() []string {
	return []string{
		"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
		"Drama", "Family", "Fantasy", "History", "Horror", "Music", "Mystery",
		"Romance", "Sci-Fi", "TV Movie", "Thriller", "War", "Western",
	}
}

// Classify maps a provider item to exactly one category label.
//
// Decision order, first match wins:
//  1. anime-franchise keyword in title/overview, or Japanese origin country,
//     forces "Animation" regardless of genre codes;
//  2. the first genre code is mapped through the fixed code table, unknown
//     codes fall back to "Drama";
//  3. no genre codes at all falls back to "Drama".
//
// The same genre-derived policy applies to movies and series alike; series
// are not collapsed into a generic "TV Series" bucket.
func Classify(item tmdb.Item) string {
	if isAnime(item) {
		return "Animation"
	}

	if len(item.GenreIDs) > 0 {
		if name, ok := genreNames[item.GenreIDs[0]]; ok {
			return name
		}
		return DefaultCategory
	}

	return DefaultCategory
}

func isAnime(item tmdb.Item) bool {
	for _, country := range item.OriginCountry {
		if country == "JP" {
			return true
		}
	}

	haystack := strings.ToLower(item.DisplayTitle() + " " + item.Overview)
	for _, keyword := range animeKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}

	return false
}
