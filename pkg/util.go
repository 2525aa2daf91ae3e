package pkg

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

const DateLayout = "2006-01-02"

// PathExists returns whether the given file or directory exists
func PathExists(path string, isDir bool) (bool, error) {
	stat, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return isDir == stat.IsDir(), nil
}

// ParseTime accepts either a full RFC3339 timestamp or a plain YYYY-MM-DD date (UTC midnight).
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time [%s]: use RFC3339 or YYYY-MM-DD", value)
	}
	return t, nil
}

// TimeRangeFromQuery reads optional "from" and "to" query params. A plain date in "to"
// is treated as the end of that day.
func TimeRangeFromQuery(query url.Values) (from, to *time.Time, err error) {
	if v := query.Get("from"); v != "" {
		t, err := ParseTime(v)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if v := query.Get("to"); v != "" {
		t, err := ParseTime(v)
		if err != nil {
			return nil, nil, err
		}
		if len(v) == len(DateLayout) {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("invalid time range: to is before from")
	}
	return from, to, nil
}
