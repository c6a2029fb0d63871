package database

import (
	"context"
	"fmt"

	"github.com/naembfh/staff-schedule/internal/models"
)

// GetTheme returns the singleton theme row, creating the default if the
// table is empty.
func (db *DB) GetTheme(ctx context.Context) (*models.Theme, error) {
	const query = `
		SELECT id, header_bg_type, header_bg_color1, header_bg_color2, header_text_color,
			table_header_bg, table_header_text, weekend_bg, blocked_bg, created_at, updated_at
		FROM themes ORDER BY id ASC LIMIT 1
	`

	scan := func() (*models.Theme, error) {
		var (
			t                    models.Theme
			createdAt, updatedAt string
		)
		err := db.QueryRowContext(ctx, query).Scan(
			&t.ID, &t.HeaderBGType, &t.HeaderBGColor1, &t.HeaderBGColor2, &t.HeaderTextColor,
			&t.TableHeaderBG, &t.TableHeaderText, &t.WeekendBG, &t.BlockedBG,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		t.CreatedAt = parseTimestamp(createdAt)
		t.UpdatedAt = parseTimestamp(updatedAt)
		return &t, nil
	}

	if t, err := scan(); err == nil {
		return t, nil
	}

	def := models.DefaultTheme()
	_, err := db.ExecContext(ctx, `
		INSERT INTO themes (header_bg_type, header_bg_color1, header_bg_color2, header_text_color,
			table_header_bg, table_header_text, weekend_bg, blocked_bg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, def.HeaderBGType, def.HeaderBGColor1, def.HeaderBGColor2, def.HeaderTextColor,
		def.TableHeaderBG, def.TableHeaderText, def.WeekendBG, def.BlockedBG)
	if err != nil {
		return nil, fmt.Errorf("create default theme: %w", err)
	}

	t, err := scan()
	if err != nil {
		return nil, fmt.Errorf("get theme: %w", err)
	}
	return t, nil
}

// SaveTheme rewrites the singleton theme row.
func (db *DB) SaveTheme(ctx context.Context, t *models.Theme) error {
	_, err := db.ExecContext(ctx, `
		UPDATE themes
		SET header_bg_type = ?, header_bg_color1 = ?, header_bg_color2 = ?, header_text_color = ?,
			table_header_bg = ?, table_header_text = ?, weekend_bg = ?, blocked_bg = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, t.HeaderBGType, t.HeaderBGColor1, t.HeaderBGColor2, t.HeaderTextColor,
		t.TableHeaderBG, t.TableHeaderText, t.WeekendBG, t.BlockedBG, t.ID)
	if err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}
