package recurrence

import (
	"sort"
	"time"
)

// Expander expands recurrence rules into concrete event occurrences.
// Expansion is a pure function of its arguments: the Expander holds no
// mutable state, so a single instance may be shared across goroutines.
type Expander struct {
	location *time.Location
	horizon  time.Duration
}

// NewExpander constructs an Expander that projects occurrence wall-clock
// times in the provided location. If loc is nil, the process-local
// timezone is used.
func NewExpander(loc *time.Location) *Expander {
	if loc == nil {
		loc = time.Local
	}
	return &Expander{location: loc, horizon: DefaultSafetyHorizon}
}

// SetSafetyHorizon overrides how far past the range end generators may
// walk before terminating. Non-positive values restore the default.
func (e *Expander) SetSafetyHorizon(horizon time.Duration) {
	if horizon <= 0 {
		horizon = DefaultSafetyHorizon
	}
	e.horizon = horizon
}

// Expand materializes every occurrence of the given base events whose
// start falls inside [rangeStart, rangeEnd]. Non-recurring events pass
// through unchanged; recurring events are replaced by their in-window
// occurrences. The result is ordered by start time, stable across events
// that share a timestamp.
func (e *Expander) Expand(events []Event, rangeStart, rangeEnd time.Time) []Event {
	expanded := make([]Event, 0, len(events))
	for _, event := range events {
		if event.IsRecurring() {
			expanded = append(expanded, e.Occurrences(event, rangeStart, rangeEnd)...)
			continue
		}
		expanded = append(expanded, event)
	}

	sort.SliceStable(expanded, func(i, j int) bool {
		return expanded[i].Start.Before(expanded[j].Start)
	})
	return expanded
}

// Occurrences generates the occurrences of a single recurring event inside
// the window. COUNT and UNTIL are parsed once here; frequency-specific
// selectors are handled by the dispatched generator.
func (e *Expander) Occurrences(event Event, rangeStart, rangeEnd time.Time) []Event {
	if event.Rule == "" {
		return nil
	}

	maxCount, hasCount := ParseCount(event.Rule)
	until, hasUntil := ParseUntil(event.Rule)

	in := generatorInput{
		event:      event,
		rangeStart: rangeStart,
		rangeEnd:   rangeEnd,
		duration:   event.Duration(),
		maxCount:   maxCount,
		hasCount:   hasCount,
		until:      until,
		hasUntil:   hasUntil,
		horizon:    e.horizon,
		loc:        e.location,
	}

	switch DetectFrequency(event.Rule) {
	case FrequencyWeekly:
		return generateWeekly(in)
	case FrequencyMonthly:
		return generateMonthly(in)
	case FrequencyYearly:
		return generateYearly(in)
	default:
		return generateDaily(in)
	}
}

// generatorInput carries the shared per-expansion parameters into the
// frequency-specific generators. until is a UTC-midnight date.
type generatorInput struct {
	event      Event
	rangeStart time.Time
	rangeEnd   time.Time
	duration   time.Duration
	maxCount   int
	hasCount   bool
	until      time.Time
	hasUntil   bool
	horizon    time.Duration
	loc        *time.Location
}
