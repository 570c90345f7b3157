package recurrence

import "time"

// DefaultSafetyHorizon is how far past the requested range end a generator
// will keep walking before giving up. It exists purely as a termination
// guard for degenerate rules; window filtering already discards anything
// past the range end.
const DefaultSafetyHorizon = 365 * 24 * time.Hour

const day = 24 * time.Hour

// dateOf truncates a timestamp to its calendar date, represented as a
// UTC midnight so date arithmetic and comparisons stay timezone-free.
func dateOf(t time.Time) time.Time {
	year, month, d := t.Date()
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// makeDate builds a UTC-midnight date and reports whether the components
// describe a real calendar day. time.Date silently normalizes out-of-range
// values (Feb 30 becomes Mar 2), so the components are verified after
// construction.
func makeDate(year int, month time.Month, d int) (time.Time, bool) {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	y2, m2, d2 := t.Date()
	if y2 != year || m2 != month || d2 != d {
		return time.Time{}, false
	}
	return t, true
}

// combineDateTime projects the clock time of template onto the given
// calendar date in loc. The result is rejected when the local timestamp
// does not survive round-trip construction, which is how nonexistent
// wall-clock times inside a DST gap surface in Go.
func combineDateTime(date time.Time, template time.Time, loc *time.Location) (time.Time, bool) {
	year, month, d := date.Date()
	hour, minute, sec := template.Clock()
	t := time.Date(year, month, d, hour, minute, sec, template.Nanosecond(), loc)
	y2, m2, d2 := t.Date()
	h2, min2, s2 := t.Clock()
	if y2 != year || m2 != month || d2 != d || h2 != hour || min2 != minute || s2 != sec {
		return time.Time{}, false
	}
	return t, true
}

// isValidOccurrence rejects candidates that precede the base event's
// original start or whose calendar date matches an exception date.
func isValidOccurrence(event Event, start time.Time) bool {
	if start.Before(event.Start) {
		return false
	}
	startDate := dateOf(start)
	for _, exception := range event.Exceptions {
		if dateOf(exception).Equal(startDate) {
			return false
		}
	}
	return true
}

// appendIfInRange clones the base event onto the candidate start when it
// falls inside the caller's window. The clone keeps the base duration, so
// end-start is invariant across every occurrence of a rule.
func appendIfInRange(occurrences []Event, event Event, start time.Time, duration time.Duration, rangeStart, rangeEnd time.Time) []Event {
	if start.Before(rangeStart) || start.After(rangeEnd) {
		return occurrences
	}
	occurrence := event.clone()
	occurrence.Start = start
	occurrence.End = start.Add(duration)
	return append(occurrences, occurrence)
}

// advanceMonth moves a date forward by interval months using explicit
// carry arithmetic. The day is clamped to 28 before reconstruction so no
// intermediate step lands on an invalid day-of-month; the 30-day fallback
// only fires when the carried month itself is out of range.
func advanceMonth(date time.Time, interval int) time.Time {
	newMonth := int(date.Month()) + interval
	yearsToAdd := (newMonth - 1) / 12
	finalMonth := (newMonth-1)%12 + 1
	finalYear := date.Year() + yearsToAdd

	d := date.Day()
	if d > 28 {
		d = 28
	}
	if next, ok := makeDate(finalYear, time.Month(finalMonth), d); ok {
		return next
	}
	return date.Add(30 * day)
}

// selectMonthBoundary resolves a literal BYMONTHDAY selector against the
// iteration date: 1 selects the first day of the month, -1 the day before
// the next iteration month, and anything else passes the date through.
func selectMonthBoundary(date time.Time, flag int) (time.Time, bool) {
	switch flag {
	case 1:
		return makeDate(date.Year(), date.Month(), 1)
	case -1:
		return advanceMonth(date, 1).Add(-day), true
	default:
		return date, true
	}
}

// selectPositionalWeekday resolves a positional BYDAY selector. Only the
// first (+1) and last (-1) positions are supported; other positions yield
// no date for the month.
func selectPositionalWeekday(date time.Time, position int, weekday time.Weekday) (time.Time, bool) {
	switch position {
	case 1:
		first, ok := makeDate(date.Year(), date.Month(), 1)
		if !ok {
			return time.Time{}, false
		}
		offset := (daysFromMonday(weekday) - daysFromMonday(first.Weekday()) + 7) % 7
		return first.Add(time.Duration(offset) * day), true
	case -1:
		last := advanceMonth(date, 1).Add(-day)
		back := (daysFromMonday(last.Weekday()) - daysFromMonday(weekday) + 7) % 7
		return last.Add(-time.Duration(back) * day), true
	default:
		return time.Time{}, false
	}
}

// daysFromMonday maps a weekday onto the Monday-based index used for
// week-relative arithmetic.
func daysFromMonday(weekday time.Weekday) int {
	return (int(weekday) + 6) % 7
}
