package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrLinkNotFound    = errors.New("movie link not found")
	ErrInvalidMovie    = errors.New("invalid movie data")
	ErrDuplicateTMDBID = errors.New("movie with this TMDB ID already exists")
)

// UpsertOutcome reports how an upsert resolved.
type UpsertOutcome string

const (
	OutcomeCreated   UpsertOutcome = "created"
	OutcomeDuplicate UpsertOutcome = "duplicate"
)

const timeLayout = "2006-01-02 15:04:05"

// Service provides catalog operations over the movies and movie_links tables.
type Service struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewService creates a new catalog service.
func NewService(db *sql.DB, logger zerolog.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// Upsert inserts a normalized entry, delegating uniqueness on the TMDB id to
// the store. A unique-constraint violation resolves to OutcomeDuplicate;
// everything else is an error.
func (s *Service) Upsert(ctx context.Context, m Movie) (UpsertOutcome, error) {
	if m.Title == "" {
		return "", ErrInvalidMovie
	}

	if m.TMDBID > 0 {
		_, err := s.GetByTMDBID(ctx, m.TMDBID)
		if err == nil {
			return OutcomeDuplicate, nil
		}
		if !errors.Is(err, ErrMovieNotFound) {
			return "", err
		}
	}

	_, err := s.insert(ctx, m)
	if err != nil {
		if isUniqueViolation(err) {
			return OutcomeDuplicate, nil
		}
		return "", fmt.Errorf("failed to insert movie: %w", err)
	}

	return OutcomeCreated, nil
}

// Create adds a manually entered movie. Title, description, category and
// release date are required; the released flag is computed from the release
// date at creation time.
func (s *Service) Create(ctx context.Context, input CreateMovieInput) (*Movie, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" || input.ReleaseDate == "" {
		return nil, ErrInvalidMovie
	}
	if _, err := time.Parse("2006-01-02", input.ReleaseDate); err != nil {
		return nil, fmt.Errorf("%w: bad release date %q", ErrInvalidMovie, input.ReleaseDate)
	}

	image := input.Image
	if image == "" {
		image = PlaceholderImage
	}

	m := Movie{
		Title:       input.Title,
		Description: input.Description,
		Image:       image,
		ReleaseDate: input.ReleaseDate,
		IsReleased:  input.ReleaseDate <= time.Now().Format("2006-01-02"),
		Category:    input.Category,
		Rating:      input.Rating,
	}

	id, err := s.insert(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}

	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", movie.ID).Str("title", movie.Title).Msg("Created movie")
	return movie, nil
}

func (s *Service) insert(ctx context.Context, m Movie) (int64, error) {
	var tmdbID sql.NullInt64
	if m.TMDBID > 0 {
		tmdbID = sql.NullInt64{Int64: int64(m.TMDBID), Valid: true}
	}
	var rating sql.NullFloat64
	if m.Rating != nil {
		rating = sql.NullFloat64{Float64: *m.Rating, Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (tmdb_id, title, description, image, release_date, is_released, category, rating)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		tmdbID, m.Title, m.Description, m.Image, m.ReleaseDate, boolToInt(m.IsReleased), m.Category, rating,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Get retrieves a movie by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, selectMovie+" WHERE id = ?", id)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// GetByTMDBID retrieves a movie by its provider id.
func (s *Service) GetByTMDBID(ctx context.Context, tmdbID int) (*Movie, error) {
	row := s.db.QueryRowContext(ctx, selectMovie+" WHERE tmdb_id = ?", tmdbID)
	movie, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// List returns a page of movies plus the total match count.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*Movie, int, error) {
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}

	var conds []string
	var args []any

	if opts.Query != "" {
		term := "%" + opts.Query + "%"
		conds = append(conds, "(title LIKE ? OR description LIKE ?)")
		args = append(args, term, term)
	}
	if opts.Category != "" && opts.Category != "All" {
		conds = append(conds, "category = ?")
		args = append(args, opts.Category)
	}
	if strings.EqualFold(opts.Type, "anime") {
		conds = append(conds, "(category = 'Animation' OR title LIKE '%anime%' OR description LIKE '%anime%')")
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	query := selectMovie + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, opts.PageSize, (opts.Page-1)*opts.PageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, total, rows.Err()
}

// All returns every movie ordered by most recently updated, for the sitemap.
func (s *Service) All(ctx context.Context) ([]*Movie, error) {
	rows, err := s.db.QueryContext(ctx, selectMovie+" ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []*Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// Delete removes a movie. Links are left alone; dangling links are allowed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMovieNotFound
	}

	s.logger.Info().Int64("id", id).Msg("Deleted movie")
	return nil
}

// Categories returns the distinct category labels present in the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT category FROM movies ORDER BY category")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// AddLink attaches a watch/download URL to a movie.
func (s *Service) AddLink(ctx context.Context, movieID int64, downloadURL string) (*MovieLink, error) {
	if downloadURL == "" {
		return nil, fmt.Errorf("%w: empty url", ErrInvalidMovie)
	}
	if _, err := s.Get(ctx, movieID); err != nil {
		return nil, err
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO movie_links (movie_id, download_url) VALUES (?, ?)",
		movieID, downloadURL,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add link: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	link := &MovieLink{ID: id, MovieID: movieID, DownloadURL: downloadURL, CreatedAt: time.Now()}
	s.logger.Info().Int64("movieId", movieID).Int64("linkId", id).Msg("Added movie link")
	return link, nil
}

// ListLinks returns the links for a movie, newest first.
func (s *Service) ListLinks(ctx context.Context, movieID int64) ([]*MovieLink, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, movie_id, download_url, created_at FROM movie_links WHERE movie_id = ? ORDER BY created_at DESC, id DESC",
		movieID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []*MovieLink
	for rows.Next() {
		var link MovieLink
		var createdAt string
		if err := rows.Scan(&link.ID, &link.MovieID, &link.DownloadURL, &createdAt); err != nil {
			return nil, err
		}
		link.CreatedAt = parseTime(createdAt)
		links = append(links, &link)
	}
	return links, rows.Err()
}

// DeleteLink removes a single link from a movie.
func (s *Service) DeleteLink(ctx context.Context, movieID, linkID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM movie_links WHERE id = ? AND movie_id = ?", linkID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

const selectMovie = `SELECT id, tmdb_id, title, description, image, release_date, is_released, category, rating, created_at, updated_at FROM movies`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMovie(row rowScanner) (*Movie, error) {
	var (
		m          Movie
		tmdbID     sql.NullInt64
		isReleased int64
		rating     sql.NullFloat64
		createdAt  string
		updatedAt  string
	)
	err := row.Scan(&m.ID, &tmdbID, &m.Title, &m.Description, &m.Image,
		&m.ReleaseDate, &isReleased, &m.Category, &rating, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if tmdbID.Valid {
		m.TMDBID = int(tmdbID.Int64)
	}
	m.IsReleased = isReleased != 0
	if rating.Valid {
		r := rating.Float64
		m.Rating = &r
	}
	m.CreatedAt = parseTime(createdAt)
	m.UpdatedAt = parseTime(updatedAt)

	return &m, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// violation, decided on the driver's typed error code rather than the error
// message text.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		code := serr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
