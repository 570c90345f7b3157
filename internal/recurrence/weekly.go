package recurrence

import "time"

// generateWeekly iterates Monday-aligned weeks from the week containing
// the base start, stepping interval weeks at a time. Every selected
// weekday in a week is evaluated independently; the week counts toward
// COUNT only when at least one of its days produced a valid occurrence.
func generateWeekly(in generatorInput) []Event {
	var occurrences []Event
	interval := ParseInterval(in.event.Rule, 1)
	selected := ParseWeeklyByDay(in.event.Rule, in.event.Start.Weekday())
	if len(selected) == 0 {
		return occurrences
	}

	weekStart := dateOf(in.event.Start).Add(-time.Duration(daysFromMonday(in.event.Start.Weekday())) * day)
	weekCount := 0

	for {
		if in.hasCount && weekCount >= in.maxCount {
			break
		}
		if in.hasUntil && weekStart.After(in.until) {
			break
		}

		weekHasValidOccurrence := false

		for _, weekday := range selected {
			occurrenceDate := weekStart.Add(time.Duration(daysFromMonday(weekday)) * day)
			if in.hasUntil && occurrenceDate.After(in.until) {
				continue
			}

			start, ok := combineDateTime(occurrenceDate, in.event.Start, in.loc)
			if !ok {
				continue
			}
			if !isValidOccurrence(in.event, start) {
				continue
			}

			weekHasValidOccurrence = true
			occurrences = appendIfInRange(occurrences, in.event, start, in.duration, in.rangeStart, in.rangeEnd)
		}

		if weekHasValidOccurrence {
			weekCount++
		}

		next := weekStart.Add(time.Duration(interval) * 7 * day)
		if !next.After(weekStart) {
			break
		}
		weekStart = next

		if weekStart.After(dateOf(in.rangeEnd).Add(in.horizon)) {
			break
		}
	}

	return occurrences
}
