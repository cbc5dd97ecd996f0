package stockmentor

import (
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		token     string
		wantStart time.Time
		wantRes   Resolution
	}{
		{"1D", now.AddDate(0, 0, -1), ResolutionIntraday},
		{"1W", now.AddDate(0, 0, -7), ResolutionDaily},
		{"1M", now.AddDate(0, -1, 0), ResolutionDaily},
		{"3M", now.AddDate(0, -3, 0), ResolutionDaily},
		{"1Y", now.AddDate(-1, 0, 0), ResolutionWeekly},
		{"5Y", now.AddDate(-5, 0, 0), ResolutionWeekly},
		{"1m", now.AddDate(0, -1, 0), ResolutionDaily},
		{" 1y ", now.AddDate(-1, 0, 0), ResolutionWeekly},
		{"bogus", now.AddDate(0, -1, 0), ResolutionDaily},
		{"", now.AddDate(0, -1, 0), ResolutionDaily},
	}

	for _, tc := range cases {
		pr := resolvePeriod(tc.token, now)
		if !pr.Start.Equal(tc.wantStart) {
			t.Errorf("resolvePeriod(%q) start = %v, want %v", tc.token, pr.Start, tc.wantStart)
		}
		if !pr.End.Equal(now) {
			t.Errorf("resolvePeriod(%q) end = %v, want %v", tc.token, pr.End, now)
		}
		if pr.Resolution != tc.wantRes {
			t.Errorf("resolvePeriod(%q) resolution = %s, want %s", tc.token, pr.Resolution, tc.wantRes)
		}
	}
}

func TestResolvePeriodCalendarArithmetic(t *testing.T) {
	// A month back from March 31 lands on March 3 via Go's date
	// normalization, not on a fixed 30-day offset.
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	pr := resolvePeriod("1M", now)
	want := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	if !pr.Start.Equal(want) {
		t.Errorf("1M from Mar 31 start = %v, want %v", pr.Start, want)
	}
}

func TestNormalizePeriod(t *testing.T) {
	cases := map[string]string{
		"1D":       "1D",
		"1d":       "1D",
		" 5y ":     "5Y",
		"":         "1M",
		"6M":       "1M",
		"nonsense": "1M",
	}
	for input, want := range cases {
		if got := normalizePeriod(input); got != want {
			t.Errorf("normalizePeriod(%q) = %q, want %q", input, got, want)
		}
	}
}
