// Package progress provides a standardized way to broadcast progress events
// for long-running activities (bulk imports, sitemap refreshes) to connected
// WebSocket clients.
package progress

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Broadcaster sends typed payloads to connected clients. The websocket hub
// implements it; tests pass nil or a recorder.
type Broadcaster interface {
	Broadcast(msgType string, payload interface{}) error
}

// ActivityType identifies the type of activity being tracked.
type ActivityType string

const (
	ActivityTypeImport  ActivityType = "import"
	ActivityTypeSitemap ActivityType = "sitemap"
)

// Status represents the current state of an activity.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
)

// Activity represents a trackable activity with progress.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Progress    int          `json:"progress"` // 0-100, -1 for indeterminate
	Status      Status       `json:"status"`
	StartedAt   time.Time    `json:"startedAt"`
	CompletedAt *time.Time   `json:"completedAt"`
}

// EventType identifies the type of progress event.
type EventType string

const (
	EventTypeStarted   EventType = "progress:started"
	EventTypeUpdate    EventType = "progress:update"
	EventTypeCompleted EventType = "progress:completed"
	EventTypeError     EventType = "progress:error"
	EventTypeCancelled EventType = "progress:cancelled"
)

// Manager tracks and broadcasts progress for all activities.
type Manager struct {
	hub        Broadcaster
	activities map[string]*Activity
	mu         sync.RWMutex
	logger     zerolog.Logger
}

// NewManager creates a new progress manager. hub may be nil.
func NewManager(hub Broadcaster, logger zerolog.Logger) *Manager {
	return &Manager{
		hub:        hub,
		activities: make(map[string]*Activity),
		logger:     logger.With().Str("component", "progress").Logger(),
	}
}

// Start creates and starts tracking a new activity.
func (m *Manager) Start(id string, activityType ActivityType, title string) *Activity {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity := &Activity{
		ID:        id,
		Type:      activityType,
		Title:     title,
		Subtitle:  "Starting...",
		Progress:  0,
		Status:    StatusInProgress,
		StartedAt: time.Now(),
	}

	m.activities[id] = activity
	m.broadcastLocked(EventTypeStarted, activity)

	m.logger.Debug().
		Str("id", id).
		Str("type", string(activityType)).
		Str("title", title).
		Msg("Activity started")

	return activity
}

// Update updates an existing activity's progress.
func (m *Manager) Update(id string, subtitle string, progress int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, exists := m.activities[id]
	if !exists {
		return
	}

	activity.Subtitle = subtitle
	activity.Progress = progress
	m.broadcastLocked(EventTypeUpdate, activity)
}

// Complete marks an activity as completed.
func (m *Manager) Complete(id string, subtitle string) {
	m.finish(id, StatusCompleted, EventTypeCompleted, subtitle)
}

// Fail marks an activity as failed.
func (m *Manager) Fail(id string, subtitle string) {
	m.finish(id, StatusFailed, EventTypeError, subtitle)
}

// Cancel marks an activity as cancelled.
func (m *Manager) Cancel(id string, subtitle string) {
	m.finish(id, StatusCancelled, EventTypeCancelled, subtitle)
}

func (m *Manager) finish(id string, status Status, event EventType, subtitle string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity, exists := m.activities[id]
	if !exists {
		return
	}

	now := time.Now()
	activity.Status = status
	activity.Subtitle = subtitle
	activity.CompletedAt = &now
	if status == StatusCompleted {
		activity.Progress = 100
	}
	m.broadcastLocked(event, activity)

	m.logger.Debug().
		Str("id", id).
		Str("status", string(status)).
		Str("subtitle", subtitle).
		Msg("Activity finished")
}

// Get returns a snapshot of an activity, or nil if unknown.
func (m *Manager) Get(id string) *Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activity, exists := m.activities[id]
	if !exists {
		return nil
	}
	snapshot := *activity
	return &snapshot
}

// Active returns snapshots of all in-progress activities.
func (m *Manager) Active() []*Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []*Activity
	for _, activity := range m.activities {
		if activity.Status == StatusInProgress {
			snapshot := *activity
			active = append(active, &snapshot)
		}
	}
	return active
}

func (m *Manager) broadcastLocked(event EventType, activity *Activity) {
	if m.hub == nil {
		return
	}
	snapshot := *activity
	if err := m.hub.Broadcast(string(event), &snapshot); err != nil {
		m.logger.Warn().Err(err).Str("id", activity.ID).Msg("Failed to broadcast progress")
	}
}
