package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/naembfh/staff-schedule/internal/models"
)

func scanWeek(row interface{ Scan(...any) error }) (*models.ScheduleWeek, error) {
	var (
		week                 models.ScheduleWeek
		startStr             string
		cellsJSON            []byte
		createdAt, updatedAt string
	)
	err := row.Scan(&week.ID, &startStr, &cellsJSON, &week.Notes, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan week: %w", err)
	}

	week.CreatedAt = parseTimestamp(createdAt)
	week.UpdatedAt = parseTimestamp(updatedAt)

	week.WeekStart, err = time.ParseInLocation(models.DateLayout, startStr, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("parse week_start %q: %w", startStr, err)
	}

	week.Cells = models.Cells{}
	if len(cellsJSON) > 0 {
		if err := json.Unmarshal(cellsJSON, &week.Cells); err != nil {
			return nil, fmt.Errorf("unmarshal cells for %s: %w", startStr, err)
		}
	}
	return &week, nil
}

const weekColumns = "id, week_start, cells, notes, created_at, updated_at"

// GetWeek loads the week starting at the given Monday.
func (db *DB) GetWeek(ctx context.Context, monday time.Time) (*models.ScheduleWeek, error) {
	row := db.QueryRowContext(ctx,
		"SELECT "+weekColumns+" FROM schedule_weeks WHERE week_start = ?",
		monday.Format(models.DateLayout))
	return scanWeek(row)
}

// GetOrCreateWeek loads the week starting at the given Monday, creating an
// empty one if it does not exist yet.
func (db *DB) GetOrCreateWeek(ctx context.Context, monday time.Time) (*models.ScheduleWeek, error) {
	week, err := db.GetWeek(ctx, monday)
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		"INSERT INTO schedule_weeks (week_start, cells, notes) VALUES (?, '{}', '') ON CONFLICT(week_start) DO NOTHING",
		monday.Format(models.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("create week %s: %w", monday.Format(models.DateLayout), err)
	}
	return db.GetWeek(ctx, monday)
}

// SaveCells persists the cells grid of a week.
func (db *DB) SaveCells(ctx context.Context, weekID int64, cells models.Cells) error {
	raw, err := json.Marshal(cells)
	if err != nil {
		return fmt.Errorf("marshal cells: %w", err)
	}
	_, err = db.ExecContext(ctx,
		"UPDATE schedule_weeks SET cells = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		string(raw), weekID)
	if err != nil {
		return fmt.Errorf("save cells: %w", err)
	}
	return nil
}

// SaveNotes persists the free-form notes of a week.
func (db *DB) SaveNotes(ctx context.Context, weekID int64, notes string) error {
	_, err := db.ExecContext(ctx,
		"UPDATE schedule_weeks SET notes = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		notes, weekID)
	if err != nil {
		return fmt.Errorf("save notes: %w", err)
	}
	return nil
}

// ListRecentWeeks returns the newest weeks first.
func (db *DB) ListRecentWeeks(ctx context.Context, limit int) ([]models.ScheduleWeek, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+weekColumns+" FROM schedule_weeks ORDER BY week_start DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	defer rows.Close()

	weeks := []models.ScheduleWeek{}
	for rows.Next() {
		week, err := scanWeek(rows)
		if err != nil {
			return nil, err
		}
		weeks = append(weeks, *week)
	}
	return weeks, rows.Err()
}

// ScrubStaffFromAllWeeks removes a staff id from every stored week grid.
// Runs when a staff row is deleted so no week keeps a dangling assignment.
func (db *DB) ScrubStaffFromAllWeeks(ctx context.Context, staffID int64) error {
	rows, err := db.QueryContext(ctx, "SELECT id, cells FROM schedule_weeks")
	if err != nil {
		return fmt.Errorf("list weeks for scrub: %w", err)
	}
	defer rows.Close()

	type pending struct {
		id    int64
		cells models.Cells
	}
	var updates []pending

	for rows.Next() {
		var (
			id        int64
			cellsJSON []byte
		)
		if err := rows.Scan(&id, &cellsJSON); err != nil {
			return fmt.Errorf("scan week for scrub: %w", err)
		}
		cells := models.Cells{}
		if len(cellsJSON) > 0 {
			if err := json.Unmarshal(cellsJSON, &cells); err != nil {
				// A malformed grid should not block staff deletion.
				continue
			}
		}
		if cells.ScrubStaff(staffID) {
			updates = append(updates, pending{id: id, cells: cells})
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, u := range updates {
		if err := db.SaveCells(ctx, u.id, u.cells); err != nil {
			return err
		}
	}
	return nil
}
