package export

import (
	"fmt"
	"strings"
)

// RGB holds channel values in [0,1].
type RGB struct {
	R, G, B float64
}

// Bytes returns the 0-255 channel values.
func (c RGB) Bytes() (int, int, int) {
	return int(c.R*255 + 0.5), int(c.G*255 + 0.5), int(c.B*255 + 0.5)
}

// HexToRGB parses "#rgb" or "#rrggbb"; white on garbage so a bad colour
// never aborts an export.
func HexToRGB(h string) RGB {
	h = strings.TrimPrefix(strings.TrimSpace(h), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return RGB{1, 1, 1}
	}
	var r, g, b int
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGB{1, 1, 1}
	}
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// BlendHex mixes src toward dst by t and returns the hex colour.
func BlendHex(src, dst string, t float64) string {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	s := HexToRGB(src)
	d := HexToRGB(dst)
	out := RGB{
		R: s.R + (d.R-s.R)*t,
		G: s.G + (d.G-s.G)*t,
		B: s.B + (d.B-s.B)*t,
	}
	r, g, b := out.Bytes()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Palette is the export colour scheme, derived once per render.
type Palette struct {
	HeaderTop    string
	HeaderBottom string
	HeaderText   string

	HeaderRowBG   string
	HeaderRowText string
	TableText     string
	Subtext       string

	Border  string
	Divider string

	WeekendBG string
	StripeA   string
	StripeB   string

	OffBG   string
	LeaveBG string
	PTBG    string

	EmptyBG   string
	PTEmptyBG string
}

// newPalette builds the soft print palette used by both PDF and PNG.
func newPalette() Palette {
	const baseHeader = "#611B29"
	return Palette{
		HeaderTop:    BlendHex(baseHeader, "#FFFFFF", 0.20),
		HeaderBottom: BlendHex(baseHeader, "#000000", 0.20),
		HeaderText:   "#F8FAFC",

		HeaderRowBG:   BlendHex("#FFF3E8", "#FFFFFF", 0.10),
		HeaderRowText: "#0F172A",
		TableText:     "#0F172A",
		Subtext:       "#64748B",

		Border:  "#D7DEE8",
		Divider: "#C6CFDB",

		WeekendBG: BlendHex("#F3F6FB", "#FFFFFF", 0.08),
		StripeA:   "#FFFFFF",
		StripeB:   BlendHex("#FAFCFF", "#FFFFFF", 0.06),

		OffBG:   BlendHex("#F2BFC4", "#FFFFFF", 0.05),
		LeaveBG: BlendHex("#EFCF86", "#FFFFFF", 0.05),
		PTBG:    BlendHex("#CBE8D4", "#FFFFFF", 0.05),

		EmptyBG:   BlendHex(baseHeader, "#FFFFFF", 0.92),
		PTEmptyBG: BlendHex("#D14B57", "#FFFFFF", 0.72),
	}
}
