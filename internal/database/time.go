package database

import "time"

// timestampLayouts covers the formats SQLite hands back for DATETIME
// columns (CURRENT_TIMESTAMP writes the first form).
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
}

// parseTimestamp converts a stored DATETIME string to time.Time; zero on
// anything unparseable.
func parseTimestamp(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t
		}
	}
	return time.Time{}
}
