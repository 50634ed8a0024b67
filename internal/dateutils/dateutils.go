// Package dateutils parses and formats the timestamps found in broker exports.
package dateutils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// DateLayoutFullNano renders a timestamp to the second and appends the
// fractional part only when it is non-zero, without trailing zeros.
const DateLayoutFullNano = "2006-01-02 15:04:05.999999999"

// ErrEmptyTimestamp is returned for blank input.
var ErrEmptyTimestamp = errors.New("empty timestamp")

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims s and collapses internal runs of whitespace.
func CleanDateString(s string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseTimestamp parses s with a lenient, mixed-format grammar: ISO 8601 and
// RFC 3339 (with or without fractional seconds or zone), "YYYY-MM-DD HH:MM:SS",
// "YYYY/MM/DD", textual months and unix epochs are all accepted. Strings without
// a zone are read as UTC and the result is always in UTC.
//
// Purely numeric day/month forms such as "03/04/2024" are rejected: whether the
// first field is a day or a month cannot be known from one value.
func ParseTimestamp(s string) (time.Time, error) {
	s = CleanDateString(s)
	if s == "" {
		return time.Time{}, ErrEmptyTimestamp
	}
	t, err := dateparse.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// ParseTimestamps parses every value in order. On failure it returns the
// index of the offending value alongside the error.
func ParseTimestamps(values []string) ([]time.Time, int, error) {
	times := make([]time.Time, len(values))
	for i, v := range values {
		t, err := ParseTimestamp(v)
		if err != nil {
			return nil, i, err
		}
		times[i] = t
	}
	return times, -1, nil
}

// FormatTimestamp formats t with layout, defaulting to DateLayoutFullNano.
func FormatTimestamp(t time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutFullNano
	}
	return t.Format(layout)
}
