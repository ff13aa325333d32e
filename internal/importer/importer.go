// Package importer drives titles through the metadata gateway, the
// normalizer and the catalog store: search, take the first candidate,
// classify, upsert, pace, report.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/catalog"
	"github.com/movieshub/movieshub/internal/metadata/tmdb"
	"github.com/movieshub/movieshub/internal/progress"
)

// ErrImportInProgress is returned when a run is requested while another run
// is still active. Only one import runs at a time.
var ErrImportInProgress = errors.New("an import is already in progress")

// defaultDelay paces requests between items to stay under the provider's
// implicit rate limits.
const defaultDelay = 300 * time.Millisecond

// Gateway is the provider surface the orchestrator needs.
type Gateway interface {
	Search(ctx context.Context, query string, mediaType tmdb.MediaType) ([]tmdb.Item, error)
}

// Store is the persistence surface the orchestrator needs.
type Store interface {
	Upsert(ctx context.Context, m catalog.Movie) (catalog.UpsertOutcome, error)
}

// WorkItem is one title to search and import.
type WorkItem struct {
	Title     string         `json:"title"`
	MediaType tmdb.MediaType `json:"type"`
}

// Report summarizes one completed run. Duplicates count as succeeded;
// not-found titles are skipped, not failed.
type Report struct {
	Total     int  `json:"total"`
	Succeeded int  `json:"succeeded"`
	Skipped   int  `json:"skipped"`
	Failed    int  `json:"failed"`
	Cancelled bool `json:"cancelled"`
}

// Summary renders the run outcome the way the admin sees it.
func (r Report) Summary() string {
	return fmt.Sprintf("%d of %d succeeded", r.Succeeded, r.Total)
}

// Status is a snapshot of the orchestrator for the admin panel.
type Status struct {
	Running    bool               `json:"running"`
	Activity   *progress.Activity `json:"activity,omitempty"`
	LastReport *Report            `json:"lastReport,omitempty"`
}

// Service is the import orchestrator. Runs are strictly sequential: one item
// at a time, one run at a time.
type Service struct {
	gateway  Gateway
	store    Store
	progress *progress.Manager
	logger   zerolog.Logger
	delay    time.Duration

	mu         sync.Mutex
	running    bool
	cancel     context.CancelFunc
	lastRunID  string
	lastReport *Report
}

// NewService creates a new import orchestrator. A delay of zero selects the
// default inter-item pacing.
func NewService(gateway Gateway, store Store, pm *progress.Manager, logger zerolog.Logger, delay time.Duration) *Service {
	if delay <= 0 {
		delay = defaultDelay
	}
	return &Service{
		gateway:  gateway,
		store:    store,
		progress: pm,
		logger:   logger.With().Str("component", "importer").Logger(),
		delay:    delay,
	}
}

// Run searches and imports the given titles in order, synchronously.
// Per-item failures never abort the run; cancellation via ctx stops cleanly
// between items and reports partial progress.
func (s *Service) Run(ctx context.Context, items []WorkItem) (Report, error) {
	runID, err := s.begin(nil)
	if err != nil {
		return Report{}, err
	}
	defer s.end()

	report := s.loop(ctx, runID, "Bulk import", len(items), func(ctx context.Context, i int) itemOutcome {
		return s.importTitle(ctx, items[i])
	})
	return report, nil
}

// RunItems imports pre-fetched provider items (a discovery selection) in
// order, skipping the search step.
func (s *Service) RunItems(ctx context.Context, items []tmdb.Item) (Report, error) {
	runID, err := s.begin(nil)
	if err != nil {
		return Report{}, err
	}
	defer s.end()

	report := s.loop(ctx, runID, "Discovery import", len(items), func(ctx context.Context, i int) itemOutcome {
		return s.importItem(ctx, items[i])
	})
	return report, nil
}

// StartTitles launches Run on a background goroutine.
func (s *Service) StartTitles(items []WorkItem) error {
	return s.start(func(ctx context.Context, runID string) Report {
		return s.loop(ctx, runID, "Bulk import", len(items), func(ctx context.Context, i int) itemOutcome {
			return s.importTitle(ctx, items[i])
		})
	})
}

// StartItems launches RunItems on a background goroutine.
func (s *Service) StartItems(items []tmdb.Item) error {
	return s.start(func(ctx context.Context, runID string) Report {
		return s.loop(ctx, runID, "Discovery import", len(items), func(ctx context.Context, i int) itemOutcome {
			return s.importItem(ctx, items[i])
		})
	})
}

// CancelRun cancels the active background run, if any.
func (s *Service) CancelRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || s.cancel == nil {
		return false
	}
	s.cancel()
	return true
}

// Status returns the current orchestrator state.
func (s *Service) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Running: s.running, LastReport: s.lastReport}
	if s.lastRunID != "" && s.progress != nil {
		st.Activity = s.progress.Get(s.lastRunID)
	}
	return st
}

func (s *Service) begin(cancel context.CancelFunc) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return "", ErrImportInProgress
	}
	s.running = true
	s.cancel = cancel
	runID := uuid.NewString()
	s.lastRunID = runID
	return runID, nil
}

func (s *Service) end() {
	s.mu.Lock()
	s.running = false
	s.cancel = nil
	s.mu.Unlock()
}

func (s *Service) start(run func(ctx context.Context, runID string) Report) error {
	ctx, cancel := context.WithCancel(context.Background())

	runID, err := s.begin(cancel)
	if err != nil {
		cancel()
		return err
	}

	go func() {
		defer s.end()
		defer cancel()
		run(ctx, runID)
	}()

	return nil
}

type itemOutcome int

const (
	outcomeSucceeded itemOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// loop is the single linear pass shared by every import path.
func (s *Service) loop(ctx context.Context, runID, title string, total int, step func(ctx context.Context, i int) itemOutcome) Report {
	report := Report{Total: total}

	if s.progress != nil {
		s.progress.Start(runID, progress.ActivityTypeImport, title)
	}

	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			report.Cancelled = true
			break
		}

		switch step(ctx, i) {
		case outcomeSucceeded:
			report.Succeeded++
		case outcomeSkipped:
			report.Skipped++
		case outcomeFailed:
			report.Failed++
		}

		if s.progress != nil {
			subtitle := fmt.Sprintf("%d/%d processed", i+1, total)
			s.progress.Update(runID, subtitle, (i+1)*100/total)
		}

		// Pace the provider between items, but never after the last one.
		if i < total-1 {
			select {
			case <-ctx.Done():
				report.Cancelled = true
			case <-time.After(s.delay):
			}
			if report.Cancelled {
				break
			}
		}
	}

	s.finish(runID, report)
	return report
}

func (s *Service) finish(runID string, report Report) {
	s.mu.Lock()
	r := report
	s.lastReport = &r
	s.mu.Unlock()

	s.logger.Info().
		Int("total", report.Total).
		Int("succeeded", report.Succeeded).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Bool("cancelled", report.Cancelled).
		Msg("Import run finished")

	if s.progress == nil {
		return
	}
	switch {
	case report.Cancelled:
		s.progress.Cancel(runID, report.Summary())
	case report.Failed > 0:
		s.progress.Fail(runID, report.Summary())
	default:
		s.progress.Complete(runID, report.Summary())
	}
}

// importTitle runs one work item through search, normalize and upsert.
func (s *Service) importTitle(ctx context.Context, item WorkItem) itemOutcome {
	results, err := s.gateway.Search(ctx, item.Title, item.MediaType)
	if err != nil {
		s.logger.Error().Err(err).Str("title", item.Title).Msg("Provider search failed")
		return outcomeFailed
	}
	if len(results) == 0 {
		s.logger.Debug().Str("title", item.Title).Msg("No results, skipping")
		return outcomeSkipped
	}

	// First result only; provider order stands in for ranking.
	return s.persist(ctx, catalog.Normalize(results[0], item.Title, time.Now()))
}

// importItem persists one pre-fetched provider item.
func (s *Service) importItem(ctx context.Context, item tmdb.Item) itemOutcome {
	return s.persist(ctx, catalog.Normalize(item, item.DisplayTitle(), time.Now()))
}

func (s *Service) persist(ctx context.Context, movie catalog.Movie) itemOutcome {
	outcome, err := s.store.Upsert(ctx, movie)
	if err != nil {
		s.logger.Error().Err(err).Str("title", movie.Title).Msg("Failed to persist movie")
		return outcomeFailed
	}
	if outcome == catalog.OutcomeDuplicate {
		s.logger.Debug().Str("title", movie.Title).Msg("Already in catalog")
	}
	return outcomeSucceeded
}
