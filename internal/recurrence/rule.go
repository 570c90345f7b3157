package recurrence

import (
	"strconv"
	"strings"
	"time"
)

// Frequency classifies how often a rule repeats.
type Frequency int

const (
	// FrequencyDaily repeats every N days. It is also the fallback for
	// absent or unrecognized FREQ values; downstream behavior relies on
	// malformed rules degrading to a daily walk rather than failing.
	FrequencyDaily Frequency = iota
	// FrequencyWeekly repeats on selected weekdays every N weeks.
	FrequencyWeekly
	// FrequencyMonthly repeats monthly on a literal day, a positional
	// weekday, or the projected base day.
	FrequencyMonthly
	// FrequencyYearly repeats on the anniversary date every N years.
	FrequencyYearly
)

// String returns the RRULE token for the frequency.
func (f Frequency) String() string {
	switch f {
	case FrequencyWeekly:
		return "WEEKLY"
	case FrequencyMonthly:
		return "MONTHLY"
	case FrequencyYearly:
		return "YEARLY"
	default:
		return "DAILY"
	}
}

// DetectFrequency classifies a rule string. Every parser in this file is
// total: malformed input falls back to a documented default instead of
// returning an error.
func DetectFrequency(rule string) Frequency {
	switch {
	case strings.Contains(rule, "FREQ=WEEKLY"):
		return FrequencyWeekly
	case strings.Contains(rule, "FREQ=MONTHLY"):
		return FrequencyMonthly
	case strings.Contains(rule, "FREQ=YEARLY"):
		return FrequencyYearly
	default:
		return FrequencyDaily
	}
}

// ParseInterval extracts the INTERVAL value, or def when absent or
// unparsable. The sign is deliberately not validated; generators guard
// against non-advancing steps themselves.
func ParseInterval(rule string, def int) int {
	value, ok := ruleValue(rule, "INTERVAL=")
	if !ok {
		return def
	}
	interval, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return interval
}

// ParseCount extracts the COUNT value. The second result is false when no
// usable maximum is present.
func ParseCount(rule string) (int, bool) {
	value, ok := ruleValue(rule, "COUNT=")
	if !ok {
		return 0, false
	}
	count, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(count), true
}

// ParseUntil extracts the UNTIL date. Both the bare YYYYMMDD form and the
// date-time form (with or without a trailing Z) are accepted; only the
// leading eight digits are used. The returned time is a UTC-midnight date.
func ParseUntil(rule string) (time.Time, bool) {
	value, ok := ruleValue(rule, "UNTIL=")
	if !ok || len(value) < 8 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(value[0:4])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(value[4:6])
	if err != nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(value[6:8])
	if err != nil {
		return time.Time{}, false
	}
	return makeDate(year, time.Month(month), day)
}

// ParseWeeklyByDay extracts the weekday set from a weekly BYDAY list.
// Unknown codes are dropped; an absent key or a list with no valid codes
// yields a single-element set holding the fallback weekday.
func ParseWeeklyByDay(rule string, fallback time.Weekday) []time.Weekday {
	value, ok := ruleValue(rule, "BYDAY=")
	if !ok {
		return []time.Weekday{fallback}
	}
	days := make([]time.Weekday, 0, 7)
	for _, code := range strings.Split(value, ",") {
		if day, ok := weekdayFromCode(strings.TrimSpace(code)); ok {
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return []time.Weekday{fallback}
	}
	return days
}

// ParseByMonthDay extracts the signed BYMONTHDAY value.
func ParseByMonthDay(rule string) (int, bool) {
	value, ok := ruleValue(rule, "BYMONTHDAY=")
	if !ok {
		return 0, false
	}
	day, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return day, true
}

// ParsePositionalByDay extracts a BYDAY value of the shape
// <signed-int><2-letter-code>, e.g. "2SA" or "-1FR". A bare weekday code
// does not match this form.
func ParsePositionalByDay(rule string) (int, time.Weekday, bool) {
	value, ok := ruleValue(rule, "BYDAY=")
	if !ok || len(value) <= 2 {
		return 0, time.Sunday, false
	}
	day, ok := weekdayFromCode(value[len(value)-2:])
	if !ok {
		return 0, time.Sunday, false
	}
	position, err := strconv.Atoi(value[:len(value)-2])
	if err != nil {
		return 0, time.Sunday, false
	}
	return position, day, true
}

// ruleValue returns the text following the first occurrence of key up to
// the next semicolon.
func ruleValue(rule, key string) (string, bool) {
	idx := strings.Index(rule, key)
	if idx < 0 {
		return "", false
	}
	value := rule[idx+len(key):]
	if end := strings.IndexByte(value, ';'); end >= 0 {
		value = value[:end]
	}
	return value, true
}

func weekdayFromCode(code string) (time.Weekday, bool) {
	switch code {
	case "SU":
		return time.Sunday, true
	case "MO":
		return time.Monday, true
	case "TU":
		return time.Tuesday, true
	case "WE":
		return time.Wednesday, true
	case "TH":
		return time.Thursday, true
	case "FR":
		return time.Friday, true
	case "SA":
		return time.Saturday, true
	default:
		return time.Sunday, false
	}
}
