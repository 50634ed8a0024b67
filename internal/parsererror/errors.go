// Package parsererror holds the typed errors raised while ingesting and
// analysing a broker history file. Every error here is fatal for the run.
package parsererror

import (
	"fmt"
	"sort"
	"strings"
)

// MissingColumnError reports a required column absent from the input.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s column is missing", e.Column)
}

// UnknownActionTypeError reports an Action value outside the known set.
type UnknownActionTypeError struct {
	Value   string
	Allowed []string
}

func (e *UnknownActionTypeError) Error() string {
	allowed := append([]string(nil), e.Allowed...)
	sort.Strings(allowed)
	return fmt.Sprintf("invalid action type: %q, should be within [%s]", e.Value, strings.Join(allowed, ", "))
}

// InvalidDateFormatError reports a timestamp that could not be parsed.
type InvalidDateFormatError struct {
	Column string
	Row    int // 1-based data row, header excluded
	Value  string
	Err    error
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format in %s at row %d: %q: %v", e.Column, e.Row, e.Value, e.Err)
}

func (e *InvalidDateFormatError) Unwrap() error {
	return e.Err
}

// UnsupportedHistoryTypeError is raised when no extractor exists for a category.
type UnsupportedHistoryTypeError struct {
	HistoryType string
}

func (e *UnsupportedHistoryTypeError) Error() string {
	return fmt.Sprintf("unexpected history type: %s", e.HistoryType)
}

// SchemaMismatchError reports extractor schema columns missing from the input.
type SchemaMismatchError struct {
	HistoryType string
	Missing     []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("input does not match %s schema: missing columns %s",
		e.HistoryType, strings.Join(e.Missing, ", "))
}

// PartitionInvariantError reports that the category extractions did not add up
// to the validated input.
type PartitionInvariantError struct {
	Expected int
	Actual   int
	Counts   map[string]int
}

func (e *PartitionInvariantError) Error() string {
	keys := make([]string, 0, len(e.Counts))
	for k := range e.Counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, e.Counts[k])
	}
	return fmt.Sprintf("partition invariant violated: extracted %d rows (%s) from %d input rows",
		e.Actual, strings.Join(parts, ", "), e.Expected)
}

// ConsistencyError reports a broken invariant on analysed output.
type ConsistencyError struct {
	FilePath string
	Reason   string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency check failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError reports a file that cannot be read as the expected format.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s: %v",
			e.FilePath, e.Msg, e.ExpectedFormat, e.Err)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}
