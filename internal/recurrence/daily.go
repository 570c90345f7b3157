package recurrence

import "time"

// generateDaily walks forward from the base start in interval-day steps.
// The loop runs while the cursor is at or before max(base end, range end)
// so long-running base events are still evaluated, and is additionally
// capped by the safety horizon.
func generateDaily(in generatorInput) []Event {
	var occurrences []Event
	interval := ParseInterval(in.event.Rule, 1)
	current := in.event.Start
	count := 0

	limit := in.event.End
	if in.rangeEnd.After(limit) {
		limit = in.rangeEnd
	}

	for !current.After(limit) {
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

		next := current.Add(time.Duration(interval) * day)
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
