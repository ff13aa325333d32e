// Package testutil provides shared helpers for tests.
package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/movieshub/movieshub/internal/database"
)

// TestDB bundles a migrated temp-dir SQLite database with a silent logger.
type TestDB struct {
	DB     *database.DB
	Conn   *sql.DB
	Logger zerolog.Logger
}

// NewTestDB creates a migrated SQLite database in a temp directory. The
// database is removed with the test's temp dir.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDB{
		DB:     db,
		Conn:   db.Conn(),
		Logger: zerolog.Nop(),
	}
}

// Close closes the underlying database.
func (tdb *TestDB) Close() {
	tdb.DB.Close()
}
