package models

// Day is one column of the Monday-to-Sunday grid.
type Day struct {
	Key   string
	Label string
}

// Days lists the week columns in render order. Keys are stable and appear
// inside stored cell grids, so they must never change.
var Days = []Day{
	{Key: "mon", Label: "Monday"},
	{Key: "tue", Label: "Tuesday"},
	{Key: "wed", Label: "Wednesday"},
	{Key: "thu", Label: "Thursday"},
	{Key: "fri", Label: "Friday"},
	{Key: "sat", Label: "Saturday"},
	{Key: "sun", Label: "Sunday"},
}

// PTSlotKey identifies the part-time row, the only row with an editable
// per-day time window and block toggle.
const PTSlotKey = "pt"

// ExclusiveSlotKeys are the rows that exclude all other assignments for a
// staff member on a given day (Off Day and PH*/AL@).
var ExclusiveSlotKeys = []string{"off_day", "ph_al"}

// IsExclusiveSlot reports whether the slot key is one of the exclusive rows.
func IsExclusiveSlot(key string) bool {
	for _, k := range ExclusiveSlotKeys {
		if k == key {
			return true
		}
	}
	return false
}

// ValidDayKey reports whether key names one of the seven day columns.
func ValidDayKey(key string) bool {
	for _, d := range Days {
		if d.Key == key {
			return true
		}
	}
	return false
}
