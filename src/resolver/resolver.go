// Package resolver locates the column of a schemaless row that carries a given field.
package resolver

import (
	"strings"
	"time"

	"github.com/username/sheetfolio/src/models"
	"github.com/username/sheetfolio/src/utils"
)

// Filter decides whether a matched cell value is acceptable.
// A rejected value does not end the scan; the next matching header is tried.
type Filter func(value string) bool

// Field describes how to find one semantic field in a row.
type Field struct {
	Name     string
	Keywords []string // lowercase substrings, any of which qualifies a header
	Exclude  []string // lowercase substrings that disqualify a header
	Filter   Filter   // optional
}

// Matches reports whether header is a candidate column for the field.
func (f Field) Matches(header string) bool {
	h := strings.ToLower(header)
	for _, ex := range f.Exclude {
		if strings.Contains(h, ex) {
			return false
		}
	}
	for _, kw := range f.Keywords {
		if strings.Contains(h, kw) {
			return true
		}
	}
	return false
}

// Lookup scans the row in source order and returns the first header that matches
// the field and whose value passes the field's filter.
func Lookup(row models.Row, f Field) (header, value string, ok bool) {
	for _, c := range row {
		if !f.Matches(c.Header) {
			continue
		}
		if f.Filter != nil && !f.Filter(c.Value) {
			continue
		}
		return c.Header, c.Value, true
	}
	return "", "", false
}

// String returns the trimmed value of the field, or def when nothing resolves.
func String(row models.Row, f Field, def string) string {
	if _, v, ok := Lookup(row, f); ok {
		return strings.TrimSpace(v)
	}
	return def
}

// Amount returns the coerced numeric value of the field, or def when nothing resolves.
func Amount(row models.Row, f Field, def float64) float64 {
	if _, v, ok := Lookup(row, f); ok {
		return utils.ParseAmount(v)
	}
	return def
}

// Date returns the parsed date of the field. The boolean is false when no column
// resolves or the resolved value is not a recognised date.
func Date(row models.Row, f Field) (time.Time, bool) {
	if _, v, ok := Lookup(row, f); ok {
		return utils.ParseDate(v)
	}
	return time.Time{}, false
}

// First tries fields in priority order and returns the first resolved raw value.
func First(row models.Row, def string, fields ...Field) string {
	for _, f := range fields {
		if _, v, ok := Lookup(row, f); ok {
			return v
		}
	}
	return def
}

// Exact returns the trimmed value of the first literal header present in the row.
func Exact(row models.Row, def string, headers ...string) string {
	for _, h := range headers {
		if v, ok := row.Get(h); ok {
			return strings.TrimSpace(v)
		}
	}
	return def
}

// NonEmpty accepts values that are not blank.
func NonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// NonZero accepts values that coerce to a non-zero amount.
func NonZero(value string) bool {
	return utils.ParseAmount(value) != 0
}

// NotIn returns a filter rejecting blank values and any of the given values.
func NotIn(values ...string) Filter {
	return func(value string) bool {
		v := strings.TrimSpace(value)
		if v == "" {
			return false
		}
		for _, x := range values {
			if v == x {
				return false
			}
		}
		return true
	}
}
