package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/naembfh/staff-schedule/internal/models"
)

const (
	fontBody = "Helvetica"
	radius   = 5.0
)

func fontStyle(bold bool) string {
	if bold {
		return "B"
	}
	return ""
}

func setFillHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := HexToRGB(hex).Bytes()
	pdf.SetFillColor(r, g, b)
}

func setTextHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := HexToRGB(hex).Bytes()
	pdf.SetTextColor(r, g, b)
}

func setDrawHex(pdf *fpdf.Fpdf, hex string) {
	r, g, b := HexToRGB(hex).Bytes()
	pdf.SetDrawColor(r, g, b)
}

// BuildPDF renders the week as a landscape A4 PDF. Style 1 is the card
// layout with a gradient header band; style 2 is the flat layout.
func BuildPDF(week *models.ScheduleWeek, slots []models.Slot, staffMap map[int64]string, title string, style int) ([]byte, error) {
	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	measure := func(text string, bold bool, size float64) float64 {
		pdf.SetFont(fontBody, fontStyle(bold), size)
		return pdf.GetStringWidth(text)
	}

	lay := Compute(week, slots, staffMap, title, style, measure)

	availH := PageH - Margin*2
	topY := Margin
	if extra := availH - lay.ContentH(); extra > 2 {
		// Equal empty space above and below.
		topY += extra / 2
	}
	x0 := (PageW - lay.TableW) / 2

	drawPDFHeaderBand(pdf, lay, x0, topY)

	tableY := topY + lay.BandH + headerGap
	drawPDFTable(pdf, lay, x0, tableY)

	if lay.Notes != "" {
		drawPDFNotes(pdf, lay, x0, tableY+lay.TableH+notesGap)
	}

	if pdf.Err() {
		return nil, fmt.Errorf("render pdf: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPDFHeaderBand(pdf *fpdf.Fpdf, lay *Layout, x, y float64) {
	if lay.Style == 1 {
		pdf.ClipRoundedRect(x, y, lay.TableW, lay.BandH, radius, false)
		top := HexToRGB(lay.Palette.HeaderTop)
		bottom := HexToRGB(lay.Palette.HeaderBottom)
		tr, tg, tb := top.Bytes()
		br, bg, bb := bottom.Bytes()
		pdf.LinearGradient(x, y, lay.TableW, lay.BandH, tr, tg, tb, br, bg, bb, 0, 0, 0, 1)
		pdf.ClipEnd()
	} else {
		setFillHex(pdf, lay.Palette.HeaderBottom)
		pdf.RoundedRect(x, y, lay.TableW, lay.BandH, radius, "1234", "F")
	}

	setTextHex(pdf, lay.Palette.HeaderText)
	pdf.SetFont(fontBody, "B", sizeTitle)
	baseline := y + lay.BandH/2 + sizeTitle*0.35

	titleW := pdf.GetStringWidth(lay.Title)
	pdf.Text(x+(lay.TableW-titleW)/2, baseline, lay.Title)

	rangeW := pdf.GetStringWidth(lay.WeekTitle)
	pdf.Text(x+lay.TableW-rangeW-10, baseline, lay.WeekTitle)
}

func drawPDFTable(pdf *fpdf.Fpdf, lay *Layout, x, y float64) {
	if lay.Style == 1 {
		// Soft shadow behind the card.
		pdf.SetAlpha(0.10, "Normal")
		pdf.SetFillColor(0, 0, 0)
		pdf.RoundedRect(x+2.2, y+2.2, lay.TableW, lay.TableH, radius, "1234", "F")
		pdf.SetAlpha(1.0, "Normal")

		pdf.SetFillColor(255, 255, 255)
		setDrawHex(pdf, lay.Palette.Border)
		pdf.SetLineWidth(0.9)
		pdf.RoundedRect(x, y, lay.TableW, lay.TableH, radius, "1234", "FD")
	}

	// Header row.
	setFillHex(pdf, lay.Palette.HeaderRowBG)
	pdf.Rect(x, y, lay.TableW, lay.HeaderRowH, "F")

	setTextHex(pdf, lay.Palette.HeaderRowText)
	pdf.SetFont(fontBody, "B", sizeTH)
	headBase := y + cellPadY + sizeTH*0.8
	pdf.Text(x+shiftLeftPad, headBase, "Shift")

	for i, head := range lay.Days {
		cx := x + lay.ShiftW + float64(i)*lay.DayW
		setTextHex(pdf, lay.Palette.HeaderRowText)
		pdf.SetFont(fontBody, "B", sizeTH)
		pdf.Text(cx+3, headBase, head.Day)

		setTextHex(pdf, lay.Palette.Subtext)
		pdf.SetFont(fontBody, "B", sizeTHDate)
		dw := pdf.GetStringWidth(head.Date)
		pdf.Text(cx+lay.DayW-dw-3, headBase, head.Date)
	}

	// Body rows.
	rowY := y + lay.HeaderRowH
	for _, row := range lay.Rows {
		setFillHex(pdf, row.LabelFill)
		pdf.Rect(x, rowY, lay.ShiftW, row.Height, "F")

		for i, cell := range row.Cells {
			cx := x + lay.ShiftW + float64(i)*lay.DayW
			setFillHex(pdf, cell.Fill)
			pdf.Rect(cx, rowY, lay.DayW, row.Height, "F")

			if cell.Empty {
				continue
			}

			setTextHex(pdf, lay.Palette.TableText)
			pdf.SetFont(fontBody, "B", row.TextSize)
			lineY := rowY + cellPadY + row.TextSize*0.8
			for _, line := range cell.Lines {
				pdf.Text(cx+cellPadX+bodyInset, lineY, line)
				lineY += lineHeight(row.TextSize)
			}
		}

		setTextHex(pdf, lay.Palette.HeaderRowText)
		pdf.SetFont(fontBody, "B", row.LabelSize)
		pdf.Text(x+shiftLeftPad, rowY+cellPadY+row.LabelSize*0.8, row.Label)

		rowY += row.Height
	}

	// Inner grid.
	setDrawHex(pdf, lay.Palette.Border)
	pdf.SetLineWidth(0.45)
	colX := x + lay.ShiftW
	for i := 0; i <= 7; i++ {
		pdf.Line(colX, y, colX, y+lay.TableH)
		colX += lay.DayW
	}
	rowY = y + lay.HeaderRowH
	for _, row := range lay.Rows {
		pdf.Line(x, rowY, x+lay.TableW, rowY)
		rowY += row.Height
	}

	// Heavier divider under the header row.
	setDrawHex(pdf, lay.Palette.Divider)
	pdf.SetLineWidth(0.9)
	pdf.Line(x, y+lay.HeaderRowH, x+lay.TableW, y+lay.HeaderRowH)

	if lay.Style == 2 {
		setDrawHex(pdf, lay.Palette.Border)
		pdf.SetLineWidth(0.9)
		pdf.Rect(x, y, lay.TableW, lay.TableH, "D")
	}
}

func drawPDFNotes(pdf *fpdf.Fpdf, lay *Layout, x, y float64) {
	setTextHex(pdf, lay.Palette.TableText)
	pdf.SetFont(fontBody, "B", sizeNotesTitle)
	baseline := y + sizeNotesTitle
	pdf.Text(x, baseline, "Notes")
	baseline += lineHeight(sizeNotesTitle) + 2

	pdf.SetFont(fontBody, "", sizeNotes)
	for _, line := range splitLines(lay.Notes) {
		pdf.Text(x, baseline, line)
		baseline += lineHeight(sizeNotes + 2.8)
	}
}
