package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// NewDB opens a connection pool for the given driver ("mysql" or "sqlite").
func NewDB(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	switch driver {
	case DriverSQLite:
		// SQLite allows a single writer; one connection keeps writes serialized
		// instead of surfacing SQLITE_BUSY to callers.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		slog.Warn("database ping failed", "driver", driver, "error", err)
	}

	return db, nil
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role ENUM('candidate','employer') NOT NULL,
		created_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		job_title VARCHAR(255) NOT NULL,
		job_description TEXT NOT NULL,
		company_name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		salary_range VARCHAR(255) NOT NULL,
		posted_by BIGINT NOT NULL,
		created_at DATETIME(6) NOT NULL,
		KEY idx_jobs_created_at (created_at),
		CONSTRAINT fk_jobs_posted_by FOREIGN KEY (posted_by) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		job_id BIGINT NOT NULL,
		candidate_id BIGINT NOT NULL,
		applicant_name VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL DEFAULT '',
		address VARCHAR(512) NOT NULL DEFAULT '',
		resume_url VARCHAR(1024) NOT NULL,
		application_status ENUM('pending','reviewed','accepted','rejected') NOT NULL DEFAULT 'pending',
		applied_at DATETIME(6) NOT NULL,
		UNIQUE KEY uq_applications_job_candidate (job_id, candidate_id),
		CONSTRAINT fk_applications_job FOREIGN KEY (job_id) REFERENCES jobs(id),
		CONSTRAINT fk_applications_candidate FOREIGN KEY (candidate_id) REFERENCES users(id)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL CHECK (role IN ('candidate','employer')),
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_title TEXT NOT NULL,
		job_description TEXT NOT NULL,
		company_name TEXT NOT NULL,
		location TEXT NOT NULL,
		salary_range TEXT NOT NULL,
		posted_by INTEGER NOT NULL REFERENCES users(id),
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL REFERENCES jobs(id),
		candidate_id INTEGER NOT NULL REFERENCES users(id),
		applicant_name TEXT NOT NULL,
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		resume_url TEXT NOT NULL,
		application_status TEXT NOT NULL DEFAULT 'pending'
			CHECK (application_status IN ('pending','reviewed','accepted','rejected')),
		applied_at DATETIME NOT NULL,
		UNIQUE (job_id, candidate_id)
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	schema := mysqlSchema
	if driver == DriverSQLite {
		schema = sqliteSchema
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isDuplicateEntryError reports whether err is a unique-constraint violation
// (MySQL error 1062 or SQLite SQLITE_CONSTRAINT_UNIQUE).
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}

	return strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
