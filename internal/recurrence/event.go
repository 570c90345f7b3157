package recurrence

import "time"

// RuleNone is the sentinel rule value meaning "not recurring". Legacy rows
// store the literal string instead of NULL, so it is part of the contract.
const RuleNone = "None"

// Event is the engine's view of a calendar event. Recurring events carry a
// rule string and optional exception timestamps; occurrences produced by the
// engine are full clones with shifted start and end times.
type Event struct {
	ID          *int64
	Title       string
	Description *string
	Location    *string
	Start       time.Time
	End         time.Time
	AllDay      bool
	Category    *string
	Color       *string
	Rule        string
	Exceptions  []time.Time
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
}

// IsRecurring reports whether the event carries an effective recurrence rule.
// An empty rule and the RuleNone sentinel both mean "not recurring".
func (e Event) IsRecurring() bool {
	return e.Rule != "" && e.Rule != RuleNone
}

// Duration returns the span between the event's start and end.
func (e Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// clone returns a deep copy so occurrences never alias the base event's
// pointer fields or exception slice.
func (e Event) clone() Event {
	out := e
	out.ID = cloneInt64(e.ID)
	out.Description = cloneString(e.Description)
	out.Location = cloneString(e.Location)
	out.Category = cloneString(e.Category)
	out.Color = cloneString(e.Color)
	out.CreatedAt = cloneTime(e.CreatedAt)
	out.UpdatedAt = cloneTime(e.UpdatedAt)
	if e.Exceptions != nil {
		out.Exceptions = make([]time.Time, len(e.Exceptions))
		copy(out.Exceptions, e.Exceptions)
	}
	return out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
