package utils

import (
	"strings"
	"time"
)

// DateLayouts are the layouts ParseDate tries, in priority order.
// Month-first comes before day-first, so "03/04/2021" is read as March 4th.
var DateLayouts = []string{
	"1/2/2006",         // 11/29/2021
	"1/2/2006 3:04 PM", // 11/29/2021 11:28 AM
	"2006-1-2",
	"2/1/2006",
	"2006/1/2",
	"1-2-2006",
	"2-1-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

const (
	MonthKeyFormat = "2006-01"
	YearKeyFormat  = "2006"
)

// ParseDate parses a date cell against DateLayouts and returns the first successful parse.
// The boolean is false for empty or unrecognised input.
func ParseDate(dateStr string) (time.Time, bool) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, false
	}
	// Go only accepts upper-case AM/PM; month names match case-insensitively either way.
	s = strings.ToUpper(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// MonthKey returns the YYYY-MM bucket key of t.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyFormat)
}

// YearKey returns the YYYY bucket key of t.
func YearKey(t time.Time) string {
	return t.Format(YearKeyFormat)
}
