package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DB wraps the SQLite handle shared by all handlers.
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the SQLite database and runs migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer; keeping one connection avoids
	// SQLITE_BUSY churn under the web workload.
	sqlDB.SetMaxOpenConns(1)

	db := &DB{DB: sqlDB}
	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS staff (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS slots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL UNIQUE,
		label TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0,
		allow_block INTEGER NOT NULL DEFAULT 0,
		bg_type TEXT NOT NULL DEFAULT 'solid',
		bg_color1 TEXT NOT NULL DEFAULT '#ffffff',
		bg_color2 TEXT NOT NULL DEFAULT '#ffffff',
		text_color TEXT NOT NULL DEFAULT '#111827',
		pt_default_time TEXT NOT NULL DEFAULT '7-11'
	);

	CREATE TABLE IF NOT EXISTS themes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		header_bg_type TEXT NOT NULL DEFAULT 'gradient',
		header_bg_color1 TEXT NOT NULL DEFAULT '#0f172a',
		header_bg_color2 TEXT NOT NULL DEFAULT '#2563eb',
		header_text_color TEXT NOT NULL DEFAULT '#ffffff',
		table_header_bg TEXT NOT NULL DEFAULT '#f3f4f6',
		table_header_text TEXT NOT NULL DEFAULT '#111827',
		weekend_bg TEXT NOT NULL DEFAULT '#fafafa',
		blocked_bg TEXT NOT NULL DEFAULT '#fda4af',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS schedule_weeks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		week_start TEXT NOT NULL UNIQUE,
		cells TEXT NOT NULL DEFAULT '{}',
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_schedule_weeks_start ON schedule_weeks(week_start);
	`

	_, err := db.Exec(schema)
	return err
}

// Ping verifies the database is reachable within the timeout.
func (db *DB) Ping(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return db.PingContext(ctx)
}
