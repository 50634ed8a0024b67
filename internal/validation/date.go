package validation

import (
	"fjacquet/history-csv/internal/dateutils"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
)

// DateValidator requires the Time column and parses every value in it. On
// success the parsed timestamps are attached to the table, so later stages see
// typed times instead of raw strings.
type DateValidator struct {
	logger logging.Logger
	column string
}

// NewDateValidator creates a DateValidator for the Time column.
func NewDateValidator(logger logging.Logger) *DateValidator {
	return &DateValidator{logger: orDiscard(logger), column: models.ColumnTime}
}

func (v *DateValidator) Name() string {
	return "date validator"
}

func (v *DateValidator) Validate(table *models.Table) error {
	values, err := table.Column(v.column)
	if err != nil {
		return &parsererror.MissingColumnError{Column: v.column}
	}

	times, idx, err := dateutils.ParseTimestamps(values)
	if err != nil {
		return &parsererror.InvalidDateFormatError{
			Column: v.column,
			Row:    idx + 1,
			Value:  values[idx],
			Err:    err,
		}
	}

	if err := table.SetTimes(v.column, times); err != nil {
		return err
	}

	v.logger.Info("All dates are valid.",
		logging.F(logging.FieldValidator, v.Name()),
		logging.F(logging.FieldColumn, v.column),
		logging.F(logging.FieldCount, len(times)))
	return nil
}
