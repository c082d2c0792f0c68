// Package core holds the domain model and the pure computations of the
// tracker: amount and date parsing, budget statistics, and category
// aggregation types. Nothing in here touches storage or I/O.
package core

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for user-supplied dates.
const DateLayout = "2006-01-02"

// ParseAmount converts a decimal string to a float64 amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted.
// Negative amounts are allowed; an empty or non-numeric string is not.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,34")  -> 12.34, nil
//	ParseAmount("-5")     -> -5.0, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseDate parses a YYYY-MM-DD string into a UTC midnight timestamp.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// EndOfDay pushes a date to 23:59 of the same day so that a closed range
// built from two YYYY-MM-DD inputs includes the whole end day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 0, 0, t.Location())
}
