package trends

import (
	"time"

	"github.com/ikrystian/kluska/internal/apperr"
)

type Period string

const (
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
	Period90Days Period = "90d"
	PeriodYear   Period = "1y"
	PeriodAll    Period = "all"

	DefaultPeriod = Period30Days
)

var Periods = []Period{Period7Days, Period30Days, Period90Days, PeriodYear, PeriodAll}

// ParsePeriod accepts one of the named periods; empty means the default 30 days.
func ParsePeriod(value string) (Period, error) {
	if value == "" {
		return DefaultPeriod, nil
	}
	for _, p := range Periods {
		if string(p) == value {
			return p, nil
		}
	}
	return "", apperr.Validation("period must be one of 7d, 30d, 90d, 1y, all")
}

// Window resolves the period into [start, now].
func (p Period) Window(now time.Time) (time.Time, time.Time) {
	switch p {
	case Period7Days:
		return now.AddDate(0, 0, -7), now
	case Period90Days:
		return now.AddDate(0, 0, -90), now
	case PeriodYear:
		return now.AddDate(-1, 0, 0), now
	case PeriodAll:
		return time.Unix(0, 0).UTC(), now
	default:
		return now.AddDate(0, 0, -30), now
	}
}
