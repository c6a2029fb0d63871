package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/naembfh/staff-schedule/internal/models"
)

// ErrDuplicateName is returned when a staff name collides after
// title-case normalisation.
var ErrDuplicateName = errors.New("staff name already exists")

// ListStaff returns all staff ordered by name.
func (db *DB) ListStaff(ctx context.Context) ([]models.Staff, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM staff ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	staff := []models.Staff{}
	for rows.Next() {
		var (
			s                    models.Staff
			createdAt, updatedAt string
		)
		if err := rows.Scan(&s.ID, &s.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		s.CreatedAt = parseTimestamp(createdAt)
		s.UpdatedAt = parseTimestamp(updatedAt)
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// StaffMap returns id -> name for every staff member.
func (db *DB) StaffMap(ctx context.Context) (map[int64]string, error) {
	staff, err := db.ListStaff(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[int64]string, len(staff))
	for _, s := range staff {
		m[s.ID] = s.Name
	}
	return m, nil
}

// StaffExists reports whether a staff id is present.
func (db *DB) StaffExists(ctx context.Context, id int64) (bool, error) {
	var one int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM staff WHERE id = ?", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("staff exists: %w", err)
	}
	return true, nil
}

// CreateStaff inserts a staff member with the name title-cased.
func (db *DB) CreateStaff(ctx context.Context, name string) (*models.Staff, error) {
	name = models.TitleCase(name)
	if name == "" {
		return nil, errors.New("name is required")
	}

	res, err := db.ExecContext(ctx, "INSERT INTO staff (name) VALUES (?)", name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("create staff: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	return &models.Staff{ID: id, Name: name}, nil
}

// DeleteStaff removes a staff member after scrubbing them from every week.
func (db *DB) DeleteStaff(ctx context.Context, id int64) error {
	if err := db.ScrubStaffFromAllWeeks(ctx, id); err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, "DELETE FROM staff WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
