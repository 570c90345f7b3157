package persistence

import "time"

// Event represents a calendar event row. Recurring events carry the raw
// RRULE text and an optional list of exception timestamps; occurrences are
// never persisted, only base events.
type Event struct {
	ID                   int64
	Title                string
	Description          *string
	Location             *string
	Start                time.Time
	End                  time.Time
	AllDay               bool
	Category             *string
	Color                *string
	RecurrenceRule       *string
	RecurrenceExceptions []time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Category represents an event category row. System categories are seeded
// on first run and cannot be deleted.
type Category struct {
	ID        int64
	Name      string
	Color     string
	Icon      *string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
