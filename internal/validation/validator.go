// Package validation checks a loaded history table before it is categorized.
package validation

import (
	"fmt"

	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
)

// Validator checks a table and fails on the first structural problem found.
// A validator may normalize the table in place (see DateValidator).
type Validator interface {
	Name() string
	Validate(table *models.Table) error
}

// DefaultValidators returns the validators every ingestion runs, in order:
// action types first, then timestamps.
func DefaultValidators(logger logging.Logger) []Validator {
	return []Validator{
		NewActionTypeValidator(logger),
		NewDateValidator(logger),
	}
}

// Run applies validators in sequence and stops at the first failure.
func Run(table *models.Table, validators ...Validator) error {
	if table == nil {
		return fmt.Errorf("cannot validate a nil table")
	}
	for _, v := range validators {
		if err := v.Validate(table); err != nil {
			return fmt.Errorf("%s: %w", v.Name(), err)
		}
	}
	return nil
}

func orDiscard(logger logging.Logger) logging.Logger {
	if logger == nil {
		return logging.NewDiscardLogger()
	}
	return logger
}
