package tmdb

// MediaType selects which TMDB namespace a request targets.
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
	MediaTypeMulti MediaType = "multi"
)

// SearchResponse is the response from TMDB search and discover endpoints.
// Movie and TV payloads share this shape; fields absent for one type are
// simply zero for the other.
type SearchResponse struct {
	Page         int    `json:"page"`
	Results      []Item `json:"results"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
}

// Item is a single movie or TV series from search, discover or popular
// results. Title/ReleaseDate are set for movies, Name/FirstAirDate for
// series.
type Item struct {
	ID            int      `json:"id"`
	Title         string   `json:"title,omitempty"`
	Name          string   `json:"name,omitempty"`
	Overview      string   `json:"overview"`
	PosterPath    *string  `json:"poster_path"`
	BackdropPath  *string  `json:"backdrop_path,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	FirstAirDate  string   `json:"first_air_date,omitempty"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	GenreIDs      []int    `json:"genre_ids"`
	OriginCountry []string `json:"origin_country,omitempty"`
	MediaType     string   `json:"media_type,omitempty"`
}

// DisplayTitle returns the movie title or series name, whichever is set.
func (i Item) DisplayTitle() string {
	if i.Title != "" {
		return i.Title
	}
	return i.Name
}

// IsTV reports whether the item is a TV series.
func (i Item) IsTV() bool {
	return i.MediaType == "tv" || (i.MediaType == "" && i.FirstAirDate != "")
}

// Genre is a TMDB genre with its display name.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a single credited cast entry.
type CastMember struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
	Order       int     `json:"order"`
}

// Credits holds the credited cast for a movie or series.
type Credits struct {
	Cast []CastMember `json:"cast"`
}

// Details is the extended record for a movie or TV series, fetched with
// credits appended. Movie and TV payloads are decoded into the same shape.
type Details struct {
	ID               int          `json:"id"`
	Title            string       `json:"title,omitempty"`
	Name             string       `json:"name,omitempty"`
	Overview         string       `json:"overview"`
	Tagline          string       `json:"tagline"`
	PosterPath       *string      `json:"poster_path"`
	BackdropPath     *string      `json:"backdrop_path"`
	ReleaseDate      string       `json:"release_date,omitempty"`
	FirstAirDate     string       `json:"first_air_date,omitempty"`
	Runtime          int          `json:"runtime,omitempty"`
	EpisodeRunTime   []int        `json:"episode_run_time,omitempty"`
	NumberOfSeasons  int          `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int          `json:"number_of_episodes,omitempty"`
	VoteAverage      float64      `json:"vote_average"`
	VoteCount        int          `json:"vote_count"`
	Popularity       float64      `json:"popularity"`
	Status           string       `json:"status"`
	Genres           []Genre      `json:"genres"`
	OriginCountry    []string     `json:"origin_country,omitempty"`
	Credits          *Credits     `json:"credits,omitempty"`
	Cast             []CastMember `json:"cast,omitempty"`
	MediaType        string       `json:"media_type,omitempty"`
}

// ErrorResponse is the error payload returned by the TMDB API.
type ErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}
