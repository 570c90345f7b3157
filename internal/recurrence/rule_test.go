package recurrence

import (
	"testing"
	"time"
)

func TestDetectFrequency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rule string
		want Frequency
	}{
		{name: "weekly", rule: "FREQ=WEEKLY;BYDAY=MO", want: FrequencyWeekly},
		{name: "monthly", rule: "FREQ=MONTHLY;BYMONTHDAY=1", want: FrequencyMonthly},
		{name: "yearly", rule: "FREQ=YEARLY", want: FrequencyYearly},
		{name: "daily", rule: "FREQ=DAILY;INTERVAL=2", want: FrequencyDaily},
		{name: "empty falls back to daily", rule: "", want: FrequencyDaily},
		{name: "unknown token falls back to daily", rule: "FREQ=FORTNIGHTLY", want: FrequencyDaily},
		{name: "missing FREQ falls back to daily", rule: "INTERVAL=3;COUNT=2", want: FrequencyDaily},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectFrequency(tc.rule); got != tc.want {
				t.Fatalf("DetectFrequency(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestParseInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		rule string
		def  int
		want int
	}{
		{name: "present", rule: "FREQ=DAILY;INTERVAL=3", def: 1, want: 3},
		{name: "terminated by semicolon", rule: "INTERVAL=4;COUNT=2", def: 1, want: 4},
		{name: "absent uses default", rule: "FREQ=DAILY", def: 1, want: 1},
		{name: "unparsable uses default", rule: "INTERVAL=abc", def: 1, want: 1},
		{name: "zero is not validated", rule: "INTERVAL=0", def: 1, want: 0},
		{name: "negative is not validated", rule: "INTERVAL=-2", def: 1, want: -2},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ParseInterval(tc.rule, tc.def); got != tc.want {
				t.Fatalf("ParseInterval(%q, %d) = %d, want %d", tc.rule, tc.def, got, tc.want)
			}
		})
	}
}

func TestParseCount(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		rule    string
		want    int
		wantOK  bool
	}{
		{name: "present", rule: "FREQ=DAILY;COUNT=5", want: 5, wantOK: true},
		{name: "terminated by semicolon", rule: "COUNT=7;UNTIL=20261231", want: 7, wantOK: true},
		{name: "absent", rule: "FREQ=DAILY", wantOK: false},
		{name: "unparsable", rule: "COUNT=abc", wantOK: false},
		{name: "negative rejected", rule: "COUNT=-1", wantOK: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseCount(tc.rule)
			if ok != tc.wantOK {
				t.Fatalf("ParseCount(%q) ok = %v, want %v", tc.rule, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseCount(%q) = %d, want %d", tc.rule, got, tc.want)
			}
		})
	}
}

func TestParseUntil(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rule   string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "bare date",
			rule:   "FREQ=DAILY;UNTIL=20261231",
			want:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date-time with zulu suffix",
			rule:   "UNTIL=20261231T235959Z",
			want:   time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "date-time without suffix",
			rule:   "UNTIL=20260415T090000",
			want:   time.Date(2026, time.April, 15, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "absent", rule: "FREQ=DAILY", wantOK: false},
		{name: "too short", rule: "UNTIL=2026", wantOK: false},
		{name: "invalid calendar day", rule: "UNTIL=20261331", wantOK: false},
		{name: "non-numeric", rule: "UNTIL=26th-dec", wantOK: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseUntil(tc.rule)
			if ok != tc.wantOK {
				t.Fatalf("ParseUntil(%q) ok = %v, want %v", tc.rule, ok, tc.wantOK)
			}
			if ok && !got.Equal(tc.want) {
				t.Fatalf("ParseUntil(%q) = %v, want %v", tc.rule, got, tc.want)
			}
		})
	}
}

func TestParseWeeklyByDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		rule     string
		fallback time.Weekday
		want     []time.Weekday
	}{
		{
			name:     "multiple days",
			rule:     "FREQ=WEEKLY;BYDAY=MO,WE,FR",
			fallback: time.Sunday,
			want:     []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		{
			name:     "absent falls back to event weekday",
			rule:     "FREQ=WEEKLY",
			fallback: time.Tuesday,
			want:     []time.Weekday{time.Tuesday},
		},
		{
			name:     "only invalid codes falls back",
			rule:     "BYDAY=XX,YY",
			fallback: time.Thursday,
			want:     []time.Weekday{time.Thursday},
		},
		{
			name:     "invalid codes are dropped",
			rule:     "BYDAY=MO,XX,SA",
			fallback: time.Sunday,
			want:     []time.Weekday{time.Monday, time.Saturday},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ParseWeeklyByDay(tc.rule, tc.fallback)
			if len(got) != len(tc.want) {
				t.Fatalf("ParseWeeklyByDay(%q) = %v, want %v", tc.rule, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("ParseWeeklyByDay(%q) = %v, want %v", tc.rule, got, tc.want)
				}
			}
		})
	}
}

func TestParseByMonthDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		rule   string
		want   int
		wantOK bool
	}{
		{name: "positive", rule: "FREQ=MONTHLY;BYMONTHDAY=15", want: 15, wantOK: true},
		{name: "negative", rule: "BYMONTHDAY=-1", want: -1, wantOK: true},
		{name: "absent", rule: "FREQ=MONTHLY", wantOK: false},
		{name: "unparsable", rule: "BYMONTHDAY=last", wantOK: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseByMonthDay(tc.rule)
			if ok != tc.wantOK {
				t.Fatalf("ParseByMonthDay(%q) ok = %v, want %v", tc.rule, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseByMonthDay(%q) = %d, want %d", tc.rule, got, tc.want)
			}
		})
	}
}

func TestParsePositionalByDay(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		rule     string
		wantPos  int
		wantDay  time.Weekday
		wantOK   bool
	}{
		{name: "second saturday", rule: "FREQ=MONTHLY;BYDAY=2SA", wantPos: 2, wantDay: time.Saturday, wantOK: true},
		{name: "last friday", rule: "BYDAY=-1FR", wantPos: -1, wantDay: time.Friday, wantOK: true},
		{name: "bare code does not match", rule: "BYDAY=MO", wantOK: false},
		{name: "weekly list does not match", rule: "BYDAY=MO,WE", wantOK: false},
		{name: "absent", rule: "FREQ=MONTHLY", wantOK: false},
		{name: "unknown code", rule: "BYDAY=2XX", wantOK: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pos, day, ok := ParsePositionalByDay(tc.rule)
			if ok != tc.wantOK {
				t.Fatalf("ParsePositionalByDay(%q) ok = %v, want %v", tc.rule, ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if pos != tc.wantPos || day != tc.wantDay {
				t.Fatalf("ParsePositionalByDay(%q) = (%d, %v), want (%d, %v)", tc.rule, pos, day, tc.wantPos, tc.wantDay)
			}
		})
	}
}
