package models

import (
	"strings"
	"time"
)

// Staff is a member of the duty roster.
type Staff struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TitleCase normalises a staff name the way it is persisted: trimmed,
// single-spaced, each word capitalised ("aNNa lee" -> "Anna Lee").
func TitleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		r := []rune(w)
		head := strings.ToUpper(string(r[:1]))
		tail := strings.ToLower(string(r[1:]))
		words[i] = head + tail
	}
	return strings.Join(words, " ")
}
