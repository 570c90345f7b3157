package overlap

import (
	"sort"
	"time"
)

// Interval is an occupied span on the calendar, tagged with the event it
// came from.
type Interval struct {
	EventID int64
	Title   string
	Start   time.Time
	End     time.Time
}

// Overlap details a pair of intervals that share time. Start and End bound
// the shared span.
type Overlap struct {
	FirstEventID  int64
	SecondEventID int64
	FirstTitle    string
	SecondTitle   string
	Start         time.Time
	End           time.Time
}

// Detect returns every pairwise overlap among the intervals. Intervals are
// half-open for this purpose: one ending exactly when another starts does
// not overlap. Pairs belonging to the same event are skipped, so adjacent
// occurrences of a long recurring event do not warn against themselves.
func Detect(intervals []Interval) []Overlap {
	if len(intervals) <= 1 {
		return nil
	}

	ordered := make([]Interval, len(intervals))
	copy(ordered, intervals)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start.Before(ordered[j].Start)
	})

	var overlaps []Overlap
	for i, current := range ordered {
		for _, other := range ordered[i+1:] {
			if !other.Start.Before(current.End) {
				break
			}
			if current.EventID != 0 && current.EventID == other.EventID {
				continue
			}
			overlaps = append(overlaps, Overlap{
				FirstEventID:  current.EventID,
				SecondEventID: other.EventID,
				FirstTitle:    current.Title,
				SecondTitle:   other.Title,
				Start:         other.Start,
				End:           minTime(current.End, other.End),
			})
		}
	}
	return overlaps
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
