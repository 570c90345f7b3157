package application

import "time"

// EventInput captures caller provided event fields.
type EventInput struct {
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
}

// Event represents a persisted calendar event.
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

// IsRecurring reports whether the event carries a recurrence rule.
func (e Event) IsRecurring() bool {
	return e.RecurrenceRule != nil && *e.RecurrenceRule != "" && *e.RecurrenceRule != "None"
}

// Occurrence is a single rendered instance of an event inside an agenda
// window. Recurring events yield one occurrence per expansion hit; plain
// events yield exactly one.
type Occurrence struct {
	Event Event
	Start time.Time
	End   time.Time
}

// OverlapWarning flags two occurrences that share time on the calendar.
type OverlapWarning struct {
	FirstEventID  int64
	SecondEventID int64
	FirstTitle    string
	SecondTitle   string
	Start         time.Time
	End           time.Time
}

// AgendaParams bounds an agenda request.
type AgendaParams struct {
	Start time.Time
	End   time.Time
}

// Agenda is the expanded view of a window: occurrences in chronological
// order plus any overlap warnings among them.
type Agenda struct {
	Occurrences []Occurrence
	Warnings    []OverlapWarning
}

// CategoryInput captures caller provided category fields.
type CategoryInput struct {
	Name  string
	Color string
	Icon  *string
}

// Category represents an event category.
type Category struct {
	ID        int64
	Name      string
	Color     string
	Icon      *string
	IsSystem  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
