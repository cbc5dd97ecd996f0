package stockmentor

import (
	"strings"
	"time"
)

// Resolution is the sampling granularity of a price series.
type Resolution string

const (
	ResolutionIntraday Resolution = "intraday"
	ResolutionDaily    Resolution = "daily"
	ResolutionWeekly   Resolution = "weekly"
)

// DefaultPeriod is used when a request omits or mangles the period token.
const DefaultPeriod = "1M"

// periodRange is a resolved time period: concrete dates plus sampling frequency.
type periodRange struct {
	Start      time.Time
	End        time.Time
	Resolution Resolution
}

// resolvePeriod maps a symbolic period token to a concrete date range and
// resolution. Unrecognized tokens resolve identically to "1M". Month and year
// offsets use calendar arithmetic, not fixed day counts.
func resolvePeriod(token string, now time.Time) periodRange {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "1D":
		return periodRange{Start: now.AddDate(0, 0, -1), End: now, Resolution: ResolutionIntraday}
	case "1W":
		return periodRange{Start: now.AddDate(0, 0, -7), End: now, Resolution: ResolutionDaily}
	case "1M":
		return periodRange{Start: now.AddDate(0, -1, 0), End: now, Resolution: ResolutionDaily}
	case "3M":
		return periodRange{Start: now.AddDate(0, -3, 0), End: now, Resolution: ResolutionDaily}
	case "1Y":
		return periodRange{Start: now.AddDate(-1, 0, 0), End: now, Resolution: ResolutionWeekly}
	case "5Y":
		return periodRange{Start: now.AddDate(-5, 0, 0), End: now, Resolution: ResolutionWeekly}
	default:
		return resolvePeriod(DefaultPeriod, now)
	}
}

// normalizePeriod collapses a raw period token onto the closed supported set.
func normalizePeriod(token string) string {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "1D", "1W", "1M", "3M", "1Y", "5Y":
		return strings.ToUpper(strings.TrimSpace(token))
	default:
		return DefaultPeriod
	}
}
