package recurrence

import "time"

// generateMonthly iterates month by month from the base start's date.
// Each month resolves a single target day by selector priority: a literal
// BYMONTHDAY, then a positional BYDAY, then the iteration date itself
// (the base day projected through advanceMonth's clamp).
func generateMonthly(in generatorInput) []Event {
	var occurrences []Event
	interval := ParseInterval(in.event.Rule, 1)
	monthDay, hasMonthDay := ParseByMonthDay(in.event.Rule)
	position, posWeekday, hasPositional := ParsePositionalByDay(in.event.Rule)

	current := dateOf(in.event.Start)
	count := 0

	for {
		if in.hasCount && count >= in.maxCount {
			break
		}
		if in.hasUntil && current.After(in.until) {
			break
		}

		var occurrenceDate time.Time
		ok := false
		switch {
		case hasMonthDay:
			occurrenceDate, ok = selectMonthBoundary(current, monthDay)
		case hasPositional:
			occurrenceDate, ok = selectPositionalWeekday(current, position, posWeekday)
		default:
			occurrenceDate, ok = current, true
		}

		if ok {
			if in.hasUntil && occurrenceDate.After(in.until) {
				break
			}

			if start, valid := combineDateTime(occurrenceDate, in.event.Start, in.loc); valid {
				if isValidOccurrence(in.event, start) {
					count++
					occurrences = appendIfInRange(occurrences, in.event, start, in.duration, in.rangeStart, in.rangeEnd)
				}
			}
		}

		next := advanceMonth(current, interval)
		if !next.After(current) {
			break
		}
		current = next

		if current.After(dateOf(in.rangeEnd).Add(in.horizon)) {
			break
		}
	}

	return occurrences
}
