package models

import "html/template"

// Background fill types shared by slots and the theme.
const (
	BGSolid    = "solid"
	BGGradient = "gradient"
)

// Slot is one row of the roster grid (Off Day, PT, PH*/AL@, 10am, ...).
type Slot struct {
	ID        int64  `json:"id" db:"id"`
	Key       string `json:"key" db:"key"`
	Label     string `json:"label" db:"label"`
	SortOrder int    `json:"sort_order" db:"sort_order"`

	// AllowBlock marks rows whose cells can be blocked out; only the PT
	// row uses this.
	AllowBlock bool `json:"allow_block" db:"allow_block"`

	BGType    string `json:"bg_type" db:"bg_type"`
	BGColor1  string `json:"bg_color1" db:"bg_color1"`
	BGColor2  string `json:"bg_color2" db:"bg_color2"`
	TextColor string `json:"text_color" db:"text_color"`

	PTDefaultTime string `json:"pt_default_time" db:"pt_default_time"`
}

// StyleBG returns the inline CSS for the slot's row header, mirroring how
// the editor paints gradient and solid rows. The declarations are built
// from stored colour columns only, so the value is typed as trusted CSS;
// a plain string fills the whole style attribute and gets rejected by the
// template sanitiser.
func (s Slot) StyleBG() template.CSS {
	if s.BGType == BGGradient {
		return template.CSS("background-image: linear-gradient(90deg, " + s.BGColor1 + ", " + s.BGColor2 + "); color: " + s.TextColor + ";")
	}
	return template.CSS("background-color: " + s.BGColor1 + "; color: " + s.TextColor + ";")
}
