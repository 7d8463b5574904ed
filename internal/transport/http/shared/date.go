package shared

import (
	"strconv"
	"time"
)

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParseYearMonth reads year and month query values, falling back to now for
// anything missing or unparseable.
func ParseYearMonth(yearRaw, monthRaw string, now time.Time) (int, time.Month) {
	year := now.Year()
	month := now.Month()
	if v, err := strconv.Atoi(yearRaw); err == nil && v >= 1900 && v <= 9999 {
		year = v
	}
	if v, err := strconv.Atoi(monthRaw); err == nil && v >= 1 && v <= 12 {
		month = time.Month(v)
	}
	return year, month
}

// ParseYear reads a year query value with a fallback to now.
func ParseYear(yearRaw string, now time.Time) int {
	if v, err := strconv.Atoi(yearRaw); err == nil && v >= 1900 && v <= 9999 {
		return v
	}
	return now.Year()
}
