// Package repotest opens throwaway SQLite databases with the production schema.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/jobboard/jobboard-go/internal/repository"
)

// NewDB returns a migrated SQLite database stored under t.TempDir().
func NewDB(t testing.TB) *sql.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "jobboard.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := repository.NewDB(repository.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.Migrate(context.Background(), db, repository.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
