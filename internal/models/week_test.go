package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonday(t *testing.T) {
	monday := date(2025, time.June, 2)

	tests := []struct {
		name string
		in   time.Time
	}{
		{"monday itself", date(2025, time.June, 2)},
		{"midweek", date(2025, time.June, 4)},
		{"saturday", date(2025, time.June, 7)},
		{"sunday rolls back", date(2025, time.June, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, monday, Monday(tt.in))
		})
	}

	// Time-of-day is stripped.
	noon := time.Date(2025, time.June, 4, 12, 30, 0, 0, time.UTC)
	assert.Equal(t, monday, Monday(noon))
}

func TestWeekEndAndDateForDay(t *testing.T) {
	w := &ScheduleWeek{WeekStart: date(2025, time.June, 2)}

	assert.Equal(t, date(2025, time.June, 8), w.WeekEnd())
	assert.Equal(t, date(2025, time.June, 2), w.DateForDay("mon"))
	assert.Equal(t, date(2025, time.June, 6), w.DateForDay("fri"))
	assert.Equal(t, date(2025, time.June, 8), w.DateForDay("sun"))
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"anna", "Anna"},
		{"aNNa lee", "Anna Lee"},
		{"  spaced   out  ", "Spaced Out"},
		{"MARY-JANE", "Mary-jane"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), "input %q", tt.in)
	}
}

func TestEnsureDefaults(t *testing.T) {
	slots := []Slot{
		{Key: "off_day", Label: "Off Day"},
		{Key: PTSlotKey, Label: "PT", PTDefaultTime: "8-12"},
		{Key: "10am", Label: "10am"},
	}

	w := &ScheduleWeek{WeekStart: date(2025, time.June, 2)}
	w.EnsureDefaults(slots)

	for _, slot := range slots {
		for _, day := range Days {
			cell := w.Cells[slot.Key][day.Key]
			require.NotNil(t, cell, "%s/%s", slot.Key, day.Key)
			assert.NotNil(t, cell.Staff)
		}
	}

	assert.Equal(t, "8-12", w.Cells[PTSlotKey]["mon"].PTTime)
	assert.Empty(t, w.Cells["10am"]["mon"].PTTime)

	// Existing cells survive a re-run.
	w.Cells["10am"]["tue"].AddStaff(7)
	w.Cells[PTSlotKey]["wed"].PTTime = "9-1"
	w.EnsureDefaults(slots)
	assert.Equal(t, []int64{7}, w.Cells["10am"]["tue"].Staff)
	assert.Equal(t, "9-1", w.Cells[PTSlotKey]["wed"].PTTime)
}

func TestCellAddRemoveStaff(t *testing.T) {
	cell := &Cell{Staff: []int64{}}

	cell.AddStaff(1)
	cell.AddStaff(2)
	cell.AddStaff(1) // duplicate is a no-op
	assert.Equal(t, []int64{1, 2}, cell.Staff)

	cell.RemoveStaff(1)
	assert.Equal(t, []int64{2}, cell.Staff)

	cell.RemoveStaff(99) // absent is a no-op
	assert.Equal(t, []int64{2}, cell.Staff)
}

func newGrid(t *testing.T) *ScheduleWeek {
	t.Helper()
	slots := []Slot{
		{Key: "off_day"}, {Key: "ph_al"}, {Key: PTSlotKey}, {Key: "10am"}, {Key: "11am"},
	}
	w := &ScheduleWeek{WeekStart: date(2025, time.June, 2)}
	w.EnsureDefaults(slots)
	return w
}

func TestAssignedAnywhereSkipsExclusiveRows(t *testing.T) {
	w := newGrid(t)

	w.Cells["off_day"]["mon"].AddStaff(1)
	assert.False(t, w.Cells.AssignedAnywhere("mon", 1))

	w.Cells["10am"]["mon"].AddStaff(1)
	assert.True(t, w.Cells.AssignedAnywhere("mon", 1))
	assert.False(t, w.Cells.AssignedAnywhere("tue", 1))
}

func TestInExclusive(t *testing.T) {
	w := newGrid(t)

	assert.False(t, w.Cells.InExclusive("mon", 1))
	w.Cells["ph_al"]["mon"].AddStaff(1)
	assert.True(t, w.Cells.InExclusive("mon", 1))
	assert.False(t, w.Cells.InExclusive("tue", 1))
}

func TestEvictFromOtherSlots(t *testing.T) {
	w := newGrid(t)

	w.Cells["10am"]["mon"].AddStaff(1)
	w.Cells["11am"]["mon"].AddStaff(1)
	w.Cells["10am"]["tue"].AddStaff(1)
	w.Cells["off_day"]["mon"].AddStaff(1)

	w.Cells.EvictFromOtherSlots("mon", "off_day", 1)

	assert.Empty(t, w.Cells["10am"]["mon"].Staff)
	assert.Empty(t, w.Cells["11am"]["mon"].Staff)
	assert.Equal(t, []int64{1}, w.Cells["off_day"]["mon"].Staff)
	// Other days untouched.
	assert.Equal(t, []int64{1}, w.Cells["10am"]["tue"].Staff)
}

func TestScrubStaff(t *testing.T) {
	w := newGrid(t)

	w.Cells["10am"]["mon"].AddStaff(1)
	w.Cells["off_day"]["fri"].AddStaff(1)
	w.Cells["10am"]["mon"].AddStaff(2)

	assert.True(t, w.Cells.ScrubStaff(1))
	assert.False(t, w.Cells.ScrubStaff(1), "second scrub changes nothing")

	assert.Equal(t, []int64{2}, w.Cells["10am"]["mon"].Staff)
	assert.Empty(t, w.Cells["off_day"]["fri"].Staff)
}

func TestIsExclusiveSlot(t *testing.T) {
	assert.True(t, IsExclusiveSlot("off_day"))
	assert.True(t, IsExclusiveSlot("ph_al"))
	assert.False(t, IsExclusiveSlot(PTSlotKey))
	assert.False(t, IsExclusiveSlot("10am"))
}

func TestValidDayKey(t *testing.T) {
	assert.True(t, ValidDayKey("mon"))
	assert.True(t, ValidDayKey("sun"))
	assert.False(t, ValidDayKey("monday"))
	assert.False(t, ValidDayKey(""))
}
