package recurrence

import "time"

// generateYearly advances the base start by interval calendar years per
// step. When the substituted year/month/day is not a real date (a leap-day
// anniversary in a non-leap year), the cursor falls back to advancing by
// 365*interval literal days. The drift that fallback introduces is part of
// the contract; see the package tests.
func generateYearly(in generatorInput) []Event {
	var occurrences []Event
	interval := ParseInterval(in.event.Rule, 1)
	current := in.event.Start
	count := 0

	for {
		if in.hasCount && count >= in.maxCount {
			break
		}
		if in.hasUntil && dateOf(current).After(in.until) {
			break
		}

		if isValidOccurrence(in.event, current) {
			count++
			occurrences = appendIfInRange(occurrences, in.event, current, in.duration, in.rangeStart, in.rangeEnd)
		}

		next, ok := withYear(current, current.Year()+interval)
		if !ok {
			next = current.Add(time.Duration(365*interval) * day)
		}
		if !next.After(current) {
			break
		}
		current = next

		if current.After(in.rangeEnd.Add(in.horizon)) {
			break
		}
	}

	return occurrences
}

// withYear substitutes the year of a timestamp, reporting failure when the
// resulting local time does not exist (invalid day-of-month for the target
// year, or a wall-clock time inside a DST gap).
func withYear(t time.Time, year int) (time.Time, bool) {
	_, month, d := t.Date()
	hour, minute, sec := t.Clock()
	out := time.Date(year, month, d, hour, minute, sec, t.Nanosecond(), t.Location())
	y2, m2, d2 := out.Date()
	h2, min2, s2 := out.Clock()
	if y2 != year || m2 != month || d2 != d || h2 != hour || min2 != minute || s2 != sec {
		return time.Time{}, false
	}
	return out, true
}
