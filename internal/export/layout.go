package export

import (
	"strings"

	"github.com/naembfh/staff-schedule/internal/models"
)

// Page geometry in PostScript points (A4 landscape).
const (
	PageW  = 841.89
	PageH  = 595.28
	Margin = 45.35 // 16mm

	cellPadX     = 2.0
	cellPadY     = 10.0
	shiftLeftPad = 5.0
	bodyInset    = 4.0
	headerGap    = 16.0
	notesGap     = 6.0
)

// Column width clamps.
const (
	minDayW   = 82.0
	maxDayW   = 135.0
	minShiftW = 92.0
	maxShiftW = 160.0
)

// Font sizes (points), tuned against the print layout.
const (
	sizeTitle      = 12.8
	sizeTH         = 11.5
	sizeTHDate     = 11.2
	sizeTD         = 12.1
	sizeTDPT       = 11.1
	sizePTLabel    = 10.5
	sizeNotesTitle = 10.5
	sizeNotes      = 10.0
)

// Row kinds drive the row tint and the PT-specific rendering.
const (
	KindWork  = "work"
	KindPT    = "pt"
	KindOff   = "off"
	KindLeave = "leave"
)

// Measurer returns the rendered width of text at a font size; each output
// format measures with its own fonts.
type Measurer func(text string, bold bool, size float64) float64

// CellBox is one rendered table cell.
type CellBox struct {
	Lines []string
	Fill  string
	Empty bool
}

// RowBox is one rendered table row with its 7 day cells.
type RowBox struct {
	Label     string
	Kind      string
	LabelSize float64
	TextSize  float64
	Cells     [7]CellBox
	Height    float64
	LabelFill string
}

// DayHead is a rendered day column header.
type DayHead struct {
	Day     string
	Date    string
	Weekend bool
}

// Layout is everything both renderers need, computed once.
type Layout struct {
	Style     int
	Title     string
	WeekTitle string
	Notes     string

	Days    [7]DayHead
	Rows    []RowBox
	Palette Palette

	ShiftW     float64
	DayW       float64
	TableW     float64
	BandH      float64
	HeaderRowH float64
	TableH     float64
}

// SlotKind classifies a roster row for export rendering.
func SlotKind(slot models.Slot) string {
	k := strings.ToLower(strings.TrimSpace(slot.Key))
	l := strings.ToLower(strings.TrimSpace(slot.Label))
	switch {
	case k == models.PTSlotKey || l == "pt" || strings.HasPrefix(l, "pt "):
		return KindPT
	case strings.Contains(k, "off") || strings.Contains(l, "off"):
		return KindOff
	case strings.Contains(k, "ph") || strings.Contains(k, "al") ||
		strings.Contains(l, "ph") || strings.Contains(l, "al"):
		return KindLeave
	default:
		return KindWork
	}
}

// cleanLabel rewrites internal row labels to their print names.
func cleanLabel(s string) string {
	switch strings.TrimSpace(s) {
	case "PH*/AL@":
		return "PH/AL"
	case "Off Day":
		return "Rest Day"
	default:
		return strings.TrimSpace(s)
	}
}

// cellLines formats the staff names of a cell, one per line; PT cells get
// the time window appended.
func cellLines(cell *models.Cell, staffMap map[int64]string, kind string) []string {
	var lines []string
	for _, id := range cell.Staff {
		name := staffMap[id]
		if name == "" {
			continue
		}
		if kind == KindPT && strings.TrimSpace(cell.PTTime) != "" {
			name += " (" + strings.TrimSpace(cell.PTTime) + ")"
		}
		lines = append(lines, name)
	}
	return lines
}

// rowHasAny reports whether the slot row has any assignment in the week.
func rowHasAny(week *models.ScheduleWeek, slotKey string) bool {
	for _, day := range models.Days {
		if len(week.Cells.Cell(slotKey, day.Key).Staff) > 0 {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func lineHeight(size float64) float64 { return size + 0.6 }

// Compute builds the shared layout for a week export. Rows with no
// assignment anywhere in the week are omitted.
func Compute(week *models.ScheduleWeek, slots []models.Slot, staffMap map[int64]string, title string, style int, measure Measurer) *Layout {
	if style != 2 {
		style = 1
	}

	lay := &Layout{
		Style:   style,
		Title:   title,
		Palette: newPalette(),
		Notes:   strings.TrimSpace(week.Notes),
	}
	lay.WeekTitle = week.WeekStart.Format("02 Jan 2006") + " – " + week.WeekEnd().Format("02 Jan 2006")

	for i, day := range models.Days {
		lay.Days[i] = DayHead{
			Day:     day.Label,
			Date:    week.DateForDay(day.Key).Format("02 Jan"),
			Weekend: i >= 5,
		}
	}

	// Visible rows only: a row empty across all seven days is not printed.
	var visible []models.Slot
	for _, slot := range slots {
		if rowHasAny(week, slot.Key) {
			visible = append(visible, slot)
		}
	}

	// Shift column width from the widest row label.
	shiftMax := measure("Shift", true, sizeTH)
	for _, slot := range visible {
		if w := measure(cleanLabel(slot.Label), true, sizeTH); w > shiftMax {
			shiftMax = w
		}
	}
	lay.ShiftW = clamp(shiftMax+cellPadX*2+6, minShiftW, maxShiftW)

	// Day column width from headers and the widest cell line.
	dayMax := 0.0
	for _, h := range lay.Days {
		need := measure(h.Day, true, sizeTH) + measure(h.Date, true, sizeTHDate) + 12
		if need > dayMax {
			dayMax = need
		}
	}

	rowIndex := 0
	for _, slot := range visible {
		kind := SlotKind(slot)

		row := RowBox{
			Label:     cleanLabel(slot.Label),
			Kind:      kind,
			LabelSize: sizeTH,
			TextSize:  sizeTD,
		}
		if kind == KindPT {
			row.LabelSize = sizePTLabel
			row.TextSize = sizeTDPT
		}

		stripe := lay.Palette.StripeA
		if rowIndex%2 == 1 {
			stripe = lay.Palette.StripeB
		}
		rowBG := ""
		switch kind {
		case KindOff:
			rowBG = lay.Palette.OffBG
		case KindLeave:
			rowBG = lay.Palette.LeaveBG
		case KindPT:
			rowBG = lay.Palette.PTBG
		}

		row.LabelFill = stripe
		if rowBG != "" {
			row.LabelFill = rowBG
		}

		maxLines := 1
		for i, day := range models.Days {
			cell := week.Cells.Cell(slot.Key, day.Key)

			box := CellBox{Fill: stripe}
			if lay.Days[i].Weekend {
				box.Fill = lay.Palette.WeekendBG
			}
			if rowBG != "" {
				box.Fill = rowBG
			}

			if slot.AllowBlock && cell.Blocked {
				// Blocked cells print as empty space on the row tint.
				box.Empty = true
				if rowBG != "" {
					box.Fill = rowBG
				} else {
					box.Fill = lay.Palette.EmptyBG
				}
				row.Cells[i] = box
				continue
			}

			lines := cellLines(cell, staffMap, kind)
			if len(lines) == 0 {
				box.Empty = true
				if kind == KindPT {
					box.Fill = lay.Palette.PTEmptyBG
				} else {
					box.Fill = lay.Palette.EmptyBG
				}
				row.Cells[i] = box
				continue
			}

			box.Lines = lines
			for _, line := range lines {
				if w := measure(line, true, row.TextSize); w > dayMax {
					dayMax = w
				}
			}
			if len(lines) > maxLines {
				maxLines = len(lines)
			}
			row.Cells[i] = box
		}

		row.Height = float64(maxLines)*lineHeight(row.TextSize) + cellPadY*2
		lay.Rows = append(lay.Rows, row)
		rowIndex++
	}

	lay.DayW = clamp(dayMax+cellPadX*2+8, minDayW, maxDayW)
	lay.TableW = lay.ShiftW + lay.DayW*7

	// Fit to the printable width.
	availW := PageW - Margin*2
	if lay.TableW > availW {
		fit := (availW - lay.ShiftW) / 7
		if fit < minDayW {
			lay.DayW = clamp(fit, 70, maxDayW)
		} else if fit < lay.DayW {
			lay.DayW = fit
		}
		lay.TableW = lay.ShiftW + lay.DayW*7
		if lay.TableW > availW {
			scale := availW / lay.TableW
			lay.ShiftW = clamp(lay.ShiftW*scale, 78, maxShiftW)
			lay.DayW = clamp(lay.DayW*scale, 70, maxDayW)
			lay.TableW = lay.ShiftW + lay.DayW*7
		}
	}

	lay.BandH = lineHeight(sizeTitle) + 20
	lay.HeaderRowH = lineHeight(sizeTH) + cellPadY*2

	lay.TableH = lay.HeaderRowH
	for _, row := range lay.Rows {
		lay.TableH += row.Height
	}

	return lay
}

// ContentH is the total height of band, gap, table and notes.
func (l *Layout) ContentH() float64 {
	h := l.BandH + headerGap + l.TableH
	if l.Notes != "" {
		h += notesGap + lineHeight(sizeNotesTitle) + notesLineCount(l.Notes)*lineHeight(sizeNotes+2.8)
	}
	return h
}

func notesLineCount(notes string) float64 {
	return float64(len(splitLines(notes)))
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return lines
}
