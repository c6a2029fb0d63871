package models

import (
	"time"
)

// DateLayout is the wire and storage format for week start dates.
const DateLayout = "2006-01-02"

// Cell is one (slot, day) entry of the grid.
type Cell struct {
	Staff   []int64 `json:"staff"`
	Blocked bool    `json:"blocked"`
	// PTTime is only meaningful on the PT row.
	PTTime string `json:"pt_time,omitempty"`
}

// Cells is the stored grid: slot key -> day key -> cell.
type Cells map[string]map[string]*Cell

// ScheduleWeek is one Monday-to-Sunday roster.
type ScheduleWeek struct {
	ID        int64     `json:"id" db:"id"`
	WeekStart time.Time `json:"week_start" db:"week_start"`
	Cells     Cells     `json:"cells" db:"cells"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Monday normalises a date to the Monday of its week.
func Monday(d time.Time) time.Time {
	d = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week.
func (w *ScheduleWeek) WeekEnd() time.Time {
	return w.WeekStart.AddDate(0, 0, 6)
}

// DateForDay returns the calendar date of a day column.
func (w *ScheduleWeek) DateForDay(dayKey string) time.Time {
	for i, d := range Days {
		if d.Key == dayKey {
			return w.WeekStart.AddDate(0, 0, i)
		}
	}
	return w.WeekStart
}

// Cell returns the stored cell for (slotKey, dayKey), or an empty cell when
// the grid has not been materialised there yet.
func (c Cells) Cell(slotKey, dayKey string) *Cell {
	if dayMap, ok := c[slotKey]; ok {
		if cell, ok := dayMap[dayKey]; ok && cell != nil {
			return cell
		}
	}
	return &Cell{Staff: []int64{}}
}

// EnsureDefaults materialises a well-formed cell for every (slot, day) pair
// so handlers and exports never have to nil-check the grid. PT cells inherit
// the slot's default time window.
func (w *ScheduleWeek) EnsureDefaults(slots []Slot) {
	if w.Cells == nil {
		w.Cells = Cells{}
	}
	for _, slot := range slots {
		dayMap := w.Cells[slot.Key]
		if dayMap == nil {
			dayMap = map[string]*Cell{}
			w.Cells[slot.Key] = dayMap
		}
		for _, day := range Days {
			cell := dayMap[day.Key]
			if cell == nil {
				cell = &Cell{}
			}
			if cell.Staff == nil {
				cell.Staff = []int64{}
			}
			if slot.Key == PTSlotKey && cell.PTTime == "" {
				cell.PTTime = slot.PTDefaultTime
				if cell.PTTime == "" {
					cell.PTTime = "7-11"
				}
			}
			dayMap[day.Key] = cell
		}
	}
}

// AssignedAnywhere reports whether the staff member already appears in any
// non-exclusive row on the given day.
func (c Cells) AssignedAnywhere(dayKey string, staffID int64) bool {
	for slotKey, dayMap := range c {
		if IsExclusiveSlot(slotKey) {
			continue
		}
		cell := dayMap[dayKey]
		if cell == nil {
			continue
		}
		for _, id := range cell.Staff {
			if id == staffID {
				return true
			}
		}
	}
	return false
}

// InExclusive reports whether the staff member sits in an Off Day / PH-AL
// cell on the given day.
func (c Cells) InExclusive(dayKey string, staffID int64) bool {
	for _, exKey := range ExclusiveSlotKeys {
		cell := c.Cell(exKey, dayKey)
		for _, id := range cell.Staff {
			if id == staffID {
				return true
			}
		}
	}
	return false
}

// AddStaff appends the staff member to the cell, keeping the list unique.
func (cell *Cell) AddStaff(staffID int64) {
	for _, id := range cell.Staff {
		if id == staffID {
			return
		}
	}
	cell.Staff = append(cell.Staff, staffID)
}

// RemoveStaff drops the staff member from the cell.
func (cell *Cell) RemoveStaff(staffID int64) {
	out := cell.Staff[:0]
	for _, id := range cell.Staff {
		if id != staffID {
			out = append(out, id)
		}
	}
	cell.Staff = out
}

// EvictFromOtherSlots removes the staff member from every row other than
// keepSlotKey on the given day. Used when assigning to an exclusive row.
func (c Cells) EvictFromOtherSlots(dayKey, keepSlotKey string, staffID int64) {
	for slotKey, dayMap := range c {
		if slotKey == keepSlotKey {
			continue
		}
		if cell := dayMap[dayKey]; cell != nil {
			cell.RemoveStaff(staffID)
		}
	}
}

// ScrubStaff removes the staff member from every cell of the grid and
// reports whether anything changed. Used when a staff row is deleted.
func (c Cells) ScrubStaff(staffID int64) bool {
	changed := false
	for _, dayMap := range c {
		for _, cell := range dayMap {
			if cell == nil {
				continue
			}
			before := len(cell.Staff)
			cell.RemoveStaff(staffID)
			if len(cell.Staff) != before {
				changed = true
			}
		}
	}
	return changed
}
