package recurrence

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		date     time.Time
		interval int
		want     time.Time
	}{
		{name: "single step", date: date(2026, time.January, 15), interval: 1, want: date(2026, time.February, 15)},
		{name: "clamps day to 28", date: date(2026, time.January, 31), interval: 1, want: date(2026, time.February, 28)},
		{name: "year rollover", date: date(2026, time.December, 15), interval: 1, want: date(2027, time.January, 15)},
		{name: "multi month carry", date: date(2026, time.January, 15), interval: 13, want: date(2027, time.February, 15)},
		{name: "quarterly", date: date(2026, time.November, 10), interval: 3, want: date(2027, time.February, 10)},
		// Month zero is unconstructible, so the 30-day fallback fires.
		{name: "negative interval falls back", date: date(2026, time.January, 15), interval: -1, want: date(2026, time.February, 14)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := advanceMonth(tc.date, tc.interval); !got.Equal(tc.want) {
				t.Fatalf("advanceMonth(%v, %d) = %v, want %v", tc.date, tc.interval, got, tc.want)
			}
		})
	}
}

func TestSelectMonthBoundary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		date   time.Time
		flag   int
		want   time.Time
		wantOK bool
	}{
		{name: "first day", date: date(2026, time.January, 15), flag: 1, want: date(2026, time.January, 1), wantOK: true},
		{name: "last day from first", date: date(2026, time.January, 1), flag: -1, want: date(2026, time.January, 31), wantOK: true},
		{name: "last day of february", date: date(2026, time.February, 1), flag: -1, want: date(2026, time.February, 28), wantOK: true},
		{name: "leap february", date: date(2024, time.February, 1), flag: -1, want: date(2024, time.February, 29), wantOK: true},
		{name: "other flags pass the date through", date: date(2026, time.January, 15), flag: 15, want: date(2026, time.January, 15), wantOK: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := selectMonthBoundary(tc.date, tc.flag)
			if ok != tc.wantOK {
				t.Fatalf("selectMonthBoundary(%v, %d) ok = %v, want %v", tc.date, tc.flag, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("selectMonthBoundary(%v, %d) = %v, want %v", tc.date, tc.flag, got, tc.want)
			}
		})
	}
}

func TestSelectPositionalWeekday(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		date     time.Time
		position int
		weekday  time.Weekday
		want     time.Time
		wantOK   bool
	}{
		{
			name:     "first friday",
			date:     date(2026, time.January, 2),
			position: 1,
			weekday:  time.Friday,
			want:     date(2026, time.January, 2),
			wantOK:   true,
		},
		{
			name:     "first monday",
			date:     date(2026, time.January, 2),
			position: 1,
			weekday:  time.Monday,
			want:     date(2026, time.January, 5),
			wantOK:   true,
		},
		{
			name:     "last friday",
			date:     date(2026, time.January, 2),
			position: -1,
			weekday:  time.Friday,
			want:     date(2026, time.January, 30),
			wantOK:   true,
		},
		{
			name:     "last sunday of february",
			date:     date(2026, time.February, 1),
			position: -1,
			weekday:  time.Sunday,
			want:     date(2026, time.February, 22),
			wantOK:   true,
		},
		{
			name:     "second position is unsupported",
			date:     date(2026, time.January, 2),
			position: 2,
			weekday:  time.Saturday,
			wantOK:   false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := selectPositionalWeekday(tc.date, tc.position, tc.weekday)
			if ok != tc.wantOK {
				t.Fatalf("selectPositionalWeekday(%v, %d, %v) ok = %v, want %v", tc.date, tc.position, tc.weekday, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("selectPositionalWeekday(%v, %d, %v) = %v, want %v", tc.date, tc.position, tc.weekday, got, tc.want)
			}
		})
	}
}

func TestMakeDate(t *testing.T) {
	t.Parallel()

	if _, ok := makeDate(2024, time.February, 29); !ok {
		t.Fatal("expected Feb 29 2024 to be valid")
	}
	if _, ok := makeDate(2026, time.February, 29); ok {
		t.Fatal("expected Feb 29 2026 to be invalid")
	}
	if _, ok := makeDate(2026, time.Month(0), 15); ok {
		t.Fatal("expected month zero to be invalid")
	}
	if _, ok := makeDate(2026, time.April, 31); ok {
		t.Fatal("expected Apr 31 to be invalid")
	}
}

func TestCombineDateTimeRejectsDSTGap(t *testing.T) {
	t.Parallel()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 02:30 does not exist on the spring-forward date.
	template := time.Date(2026, time.January, 1, 2, 30, 0, 0, loc)
	if _, ok := combineDateTime(date(2026, time.March, 8), template, loc); ok {
		t.Fatal("expected 2026-03-08 02:30 America/New_York to be rejected")
	}

	got, ok := combineDateTime(date(2026, time.March, 9), template, loc)
	if !ok {
		t.Fatal("expected 2026-03-09 02:30 America/New_York to be valid")
	}
	if got.Hour() != 2 || got.Minute() != 30 {
		t.Fatalf("unexpected wall clock %v", got)
	}
}

func TestIsValidOccurrence(t *testing.T) {
	t.Parallel()

	loc := time.UTC
	event := Event{
		Title: "standup",
		Start: time.Date(2026, time.January, 5, 9, 0, 0, 0, loc),
		End:   time.Date(2026, time.January, 5, 9, 30, 0, 0, loc),
		Exceptions: []time.Time{
			time.Date(2026, time.January, 7, 0, 0, 0, 0, loc),
		},
	}

	if isValidOccurrence(event, time.Date(2026, time.January, 4, 9, 0, 0, 0, loc)) {
		t.Fatal("occurrence before the original start must be invalid")
	}
	if isValidOccurrence(event, time.Date(2026, time.January, 7, 9, 0, 0, 0, loc)) {
		t.Fatal("occurrence on an exception date must be invalid")
	}
	if !isValidOccurrence(event, time.Date(2026, time.January, 6, 9, 0, 0, 0, loc)) {
		t.Fatal("expected occurrence to be valid")
	}
}
