package export

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/naembfh/staff-schedule/internal/models"
)

// DPI bounds for PNG export; requests outside the range are clamped.
const (
	MinDPI = 200
	MaxDPI = 900

	maxPixels = 26_000_000
	pngPad    = 14.0
)

var (
	fontsOnce   sync.Once
	fontRegular *opentype.Font
	fontBold    *opentype.Font
	fontLoadErr error
)

func loadFonts() error {
	fontsOnce.Do(func() {
		fontRegular, fontLoadErr = opentype.Parse(goregular.TTF)
		if fontLoadErr != nil {
			return
		}
		fontBold, fontLoadErr = opentype.Parse(gobold.TTF)
	})
	return fontLoadErr
}

// ClampDPI bounds a requested export resolution.
func ClampDPI(dpi int) int {
	if dpi < MinDPI {
		return MinDPI
	}
	if dpi > MaxDPI {
		return MaxDPI
	}
	return dpi
}

type faceKey struct {
	bold bool
	size float64
}

// faceSet lazily builds font faces at one resolution.
type faceSet struct {
	dpi   float64
	cache map[faceKey]font.Face
	err   error
}

func newFaceSet(dpi float64) *faceSet {
	return &faceSet{dpi: dpi, cache: make(map[faceKey]font.Face)}
}

func (fs *faceSet) face(bold bool, size float64) font.Face {
	key := faceKey{bold: bold, size: size}
	if f, ok := fs.cache[key]; ok {
		return f
	}
	src := fontRegular
	if bold {
		src = fontBold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     fs.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		if fs.err == nil {
			fs.err = err
		}
		return nil
	}
	fs.cache[key] = f
	return f
}

// BuildPNG renders the week as a PNG image at the given resolution. The
// image width matches the A4 landscape page; the height is trimmed to the
// content so the picture shares cleanly.
func BuildPNG(week *models.ScheduleWeek, slots []models.Slot, staffMap map[int64]string, title string, style, dpi int) ([]byte, error) {
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("load fonts: %w", err)
	}
	dpi = ClampDPI(dpi)

	// Layout measurement happens in points, so measure at 72 dpi.
	meas := newFaceSet(72)
	measure := func(text string, bold bool, size float64) float64 {
		f := meas.face(bold, size)
		if f == nil {
			return 0
		}
		return float64(font.MeasureString(f, text)) / 64
	}

	lay := Compute(week, slots, staffMap, title, style, measure)
	if meas.err != nil {
		return nil, fmt.Errorf("measure text: %w", meas.err)
	}

	contentH := lay.ContentH() + pngPad*2
	s := float64(dpi) / 72
	w := int(math.Ceil(PageW * s))
	h := int(math.Ceil(contentH * s))

	// Keep the raster within the pixel budget at extreme resolutions.
	if w*h > maxPixels {
		shrink := math.Sqrt(float64(maxPixels) / float64(w*h))
		dpi = int(float64(dpi) * shrink)
		s = float64(dpi) / 72
		w = int(math.Ceil(PageW * s))
		h = int(math.Ceil(contentH * s))
	}

	faces := newFaceSet(float64(dpi))

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	r := pngRenderer{dc: dc, lay: lay, s: s, faces: faces}

	topY := pngPad
	x0 := (PageW - lay.TableW) / 2

	r.headerBand(x0, topY)

	tableY := topY + lay.BandH + headerGap
	r.table(x0, tableY)

	if lay.Notes != "" {
		r.notes(x0, tableY+lay.TableH+notesGap)
	}

	if faces.err != nil {
		return nil, fmt.Errorf("render text: %w", faces.err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// pngRenderer draws a computed layout onto a gg context. All geometry is in
// points and multiplied by the pixel scale at the edge.
type pngRenderer struct {
	dc    *gg.Context
	lay   *Layout
	s     float64
	faces *faceSet
}

func (r *pngRenderer) setHex(hex string) {
	c := HexToRGB(hex)
	r.dc.SetRGB(c.R, c.G, c.B)
}

func (r *pngRenderer) fillRect(x, y, w, h float64, hex string) {
	r.setHex(hex)
	r.dc.DrawRectangle(x*r.s, y*r.s, w*r.s, h*r.s)
	r.dc.Fill()
}

func (r *pngRenderer) text(str string, x, y float64, bold bool, size float64, hex string) {
	f := r.faces.face(bold, size)
	if f == nil {
		return
	}
	r.dc.SetFontFace(f)
	r.setHex(hex)
	r.dc.DrawString(str, x*r.s, y*r.s)
}

func (r *pngRenderer) textWidth(str string, bold bool, size float64) float64 {
	f := r.faces.face(bold, size)
	if f == nil {
		return 0
	}
	return float64(font.MeasureString(f, str)) / 64 / r.s
}

func (r *pngRenderer) line(x1, y1, x2, y2, width float64, hex string) {
	r.setHex(hex)
	r.dc.SetLineWidth(width * r.s)
	r.dc.DrawLine(x1*r.s, y1*r.s, x2*r.s, y2*r.s)
	r.dc.Stroke()
}

func rgbColor(hex string) color.Color {
	c := HexToRGB(hex)
	cr, cg, cb := c.Bytes()
	return color.NRGBA{R: uint8(cr), G: uint8(cg), B: uint8(cb), A: 255}
}

func (r *pngRenderer) headerBand(x, y float64) {
	lay := r.lay
	if lay.Style == 1 {
		grad := gg.NewLinearGradient(x*r.s, y*r.s, x*r.s, (y+lay.BandH)*r.s)
		grad.AddColorStop(0, rgbColor(lay.Palette.HeaderTop))
		grad.AddColorStop(1, rgbColor(lay.Palette.HeaderBottom))
		r.dc.SetFillStyle(grad)
		r.dc.DrawRoundedRectangle(x*r.s, y*r.s, lay.TableW*r.s, lay.BandH*r.s, radius*r.s)
		r.dc.Fill()
	} else {
		r.setHex(lay.Palette.HeaderBottom)
		r.dc.DrawRoundedRectangle(x*r.s, y*r.s, lay.TableW*r.s, lay.BandH*r.s, radius*r.s)
		r.dc.Fill()
	}

	baseline := y + lay.BandH/2 + sizeTitle*0.35
	titleW := r.textWidth(lay.Title, true, sizeTitle)
	r.text(lay.Title, x+(lay.TableW-titleW)/2, baseline, true, sizeTitle, lay.Palette.HeaderText)

	rangeW := r.textWidth(lay.WeekTitle, true, sizeTitle)
	r.text(lay.WeekTitle, x+lay.TableW-rangeW-10, baseline, true, sizeTitle, lay.Palette.HeaderText)
}

func (r *pngRenderer) table(x, y float64) {
	lay := r.lay
	if lay.Style == 1 {
		r.dc.SetRGBA(0, 0, 0, 0.10)
		r.dc.DrawRoundedRectangle((x+2.2)*r.s, (y+2.2)*r.s, lay.TableW*r.s, lay.TableH*r.s, radius*r.s)
		r.dc.Fill()

		r.dc.SetRGB(1, 1, 1)
		r.dc.DrawRoundedRectangle(x*r.s, y*r.s, lay.TableW*r.s, lay.TableH*r.s, radius*r.s)
		r.dc.FillPreserve()
		r.setHex(lay.Palette.Border)
		r.dc.SetLineWidth(0.9 * r.s)
		r.dc.Stroke()
	}

	// Header row.
	r.fillRect(x, y, lay.TableW, lay.HeaderRowH, lay.Palette.HeaderRowBG)

	headBase := y + cellPadY + sizeTH*0.8
	r.text("Shift", x+shiftLeftPad, headBase, true, sizeTH, lay.Palette.HeaderRowText)

	for i, head := range lay.Days {
		cx := x + lay.ShiftW + float64(i)*lay.DayW
		r.text(head.Day, cx+3, headBase, true, sizeTH, lay.Palette.HeaderRowText)

		dw := r.textWidth(head.Date, true, sizeTHDate)
		r.text(head.Date, cx+lay.DayW-dw-3, headBase, true, sizeTHDate, lay.Palette.Subtext)
	}

	// Body rows.
	rowY := y + lay.HeaderRowH
	for _, row := range lay.Rows {
		r.fillRect(x, rowY, lay.ShiftW, row.Height, row.LabelFill)

		for i, cell := range row.Cells {
			cx := x + lay.ShiftW + float64(i)*lay.DayW
			r.fillRect(cx, rowY, lay.DayW, row.Height, cell.Fill)

			if cell.Empty {
				continue
			}

			lineY := rowY + cellPadY + row.TextSize*0.8
			for _, line := range cell.Lines {
				r.text(line, cx+cellPadX+bodyInset, lineY, true, row.TextSize, lay.Palette.TableText)
				lineY += lineHeight(row.TextSize)
			}
		}

		r.text(row.Label, x+shiftLeftPad, rowY+cellPadY+row.LabelSize*0.8, true, row.LabelSize, lay.Palette.HeaderRowText)

		rowY += row.Height
	}

	// Inner grid.
	colX := x + lay.ShiftW
	for i := 0; i <= 7; i++ {
		r.line(colX, y, colX, y+lay.TableH, 0.45, lay.Palette.Border)
		colX += lay.DayW
	}
	rowY = y + lay.HeaderRowH
	for _, row := range lay.Rows {
		r.line(x, rowY, x+lay.TableW, rowY, 0.45, lay.Palette.Border)
		rowY += row.Height
	}

	r.line(x, y+lay.HeaderRowH, x+lay.TableW, y+lay.HeaderRowH, 0.9, lay.Palette.Divider)

	if lay.Style == 2 {
		r.setHex(lay.Palette.Border)
		r.dc.SetLineWidth(0.9 * r.s)
		r.dc.DrawRectangle(x*r.s, y*r.s, lay.TableW*r.s, lay.TableH*r.s)
		r.dc.Stroke()
	}
}

func (r *pngRenderer) notes(x, y float64) {
	lay := r.lay
	baseline := y + sizeNotesTitle
	r.text("Notes", x, baseline, true, sizeNotesTitle, lay.Palette.TableText)
	baseline += lineHeight(sizeNotesTitle) + 2

	for _, line := range splitLines(lay.Notes) {
		r.text(line, x, baseline, false, sizeNotes, lay.Palette.TableText)
		baseline += lineHeight(sizeNotes + 2.8)
	}
}
