package models

import "time"

// Theme holds the colours used by the editor pages and the exports. A
// single row exists; it is seeded on first run and edited in place.
type Theme struct {
	ID int64 `json:"id" db:"id"`

	HeaderBGType    string `json:"header_bg_type" db:"header_bg_type"`
	HeaderBGColor1  string `json:"header_bg_color1" db:"header_bg_color1"`
	HeaderBGColor2  string `json:"header_bg_color2" db:"header_bg_color2"`
	HeaderTextColor string `json:"header_text_color" db:"header_text_color"`
	TableHeaderBG   string `json:"table_header_bg" db:"table_header_bg"`
	TableHeaderText string `json:"table_header_text" db:"table_header_text"`
	WeekendBG       string `json:"weekend_bg" db:"weekend_bg"`
	BlockedBG       string `json:"blocked_bg" db:"blocked_bg"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultTheme returns the seeded colour scheme.
func DefaultTheme() Theme {
	return Theme{
		HeaderBGType:    BGGradient,
		HeaderBGColor1:  "#0f172a",
		HeaderBGColor2:  "#2563eb",
		HeaderTextColor: "#ffffff",
		TableHeaderBG:   "#f3f4f6",
		TableHeaderText: "#111827",
		WeekendBG:       "#fafafa",
		BlockedBG:       "#fda4af",
	}
}
