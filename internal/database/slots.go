package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/naembfh/staff-schedule/internal/models"
)

// ErrDuplicateKey is returned when a slot key collides.
var ErrDuplicateKey = errors.New("slot key already exists")

const slotColumns = "id, key, label, sort_order, allow_block, bg_type, bg_color1, bg_color2, text_color, pt_default_time"

func scanSlot(row interface{ Scan(...any) error }) (models.Slot, error) {
	var s models.Slot
	err := row.Scan(&s.ID, &s.Key, &s.Label, &s.SortOrder, &s.AllowBlock,
		&s.BGType, &s.BGColor1, &s.BGColor2, &s.TextColor, &s.PTDefaultTime)
	return s, err
}

// ListSlots returns all slots in display order.
func (db *DB) ListSlots(ctx context.Context) ([]models.Slot, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+slotColumns+" FROM slots ORDER BY sort_order ASC, label ASC")
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	slots := []models.Slot{}
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// GetSlotByKey loads one slot by its key.
func (db *DB) GetSlotByKey(ctx context.Context, key string) (*models.Slot, error) {
	row := db.QueryRowContext(ctx, "SELECT "+slotColumns+" FROM slots WHERE key = ?", key)
	s, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %q: %w", key, err)
	}
	return &s, nil
}

// GetSlot loads one slot by id.
func (db *DB) GetSlot(ctx context.Context, id int64) (*models.Slot, error) {
	row := db.QueryRowContext(ctx, "SELECT "+slotColumns+" FROM slots WHERE id = ?", id)
	s, err := scanSlot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get slot %d: %w", id, err)
	}
	return &s, nil
}

// CreateSlot inserts a roster row.
func (db *DB) CreateSlot(ctx context.Context, s models.Slot) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO slots (key, label, sort_order, allow_block, bg_type, bg_color1, bg_color2, text_color, pt_default_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.Key, s.Label, s.SortOrder, s.AllowBlock, s.BGType, s.BGColor1, s.BGColor2, s.TextColor, s.PTDefaultTime)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateKey
		}
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// UpdateSlot rewrites the editable fields of a slot. The key is immutable.
func (db *DB) UpdateSlot(ctx context.Context, s models.Slot) error {
	_, err := db.ExecContext(ctx, `
		UPDATE slots
		SET label = ?, sort_order = ?, allow_block = ?,
			bg_type = ?, bg_color1 = ?, bg_color2 = ?, text_color = ?,
			pt_default_time = ?
		WHERE id = ?
	`, s.Label, s.SortOrder, s.AllowBlock, s.BGType, s.BGColor1, s.BGColor2, s.TextColor, s.PTDefaultTime, s.ID)
	if err != nil {
		return fmt.Errorf("update slot: %w", err)
	}
	return nil
}

// DeleteSlot removes a roster row.
func (db *DB) DeleteSlot(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx, "DELETE FROM slots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrNotFound
	}
	return err
}
