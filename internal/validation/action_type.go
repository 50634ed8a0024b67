package validation

import (
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
)

// ActionTypeValidator rejects tables whose Action column holds a value outside
// the known action types. It never modifies the table.
type ActionTypeValidator struct {
	logger logging.Logger
}

// NewActionTypeValidator creates an ActionTypeValidator.
func NewActionTypeValidator(logger logging.Logger) *ActionTypeValidator {
	return &ActionTypeValidator{logger: orDiscard(logger)}
}

func (v *ActionTypeValidator) Name() string {
	return "action type validator"
}

func (v *ActionTypeValidator) Validate(table *models.Table) error {
	observed, err := table.DistinctValues(models.ColumnAction)
	if err != nil {
		return &parsererror.MissingColumnError{Column: models.ColumnAction}
	}

	for _, value := range observed {
		if !models.ActionType(value).IsValid() {
			return &parsererror.UnknownActionTypeError{
				Value:   value,
				Allowed: models.ActionTypeValues(),
			}
		}
	}

	v.logger.Info("All action types are valid.",
		logging.F(logging.FieldValidator, v.Name()),
		logging.F(logging.FieldCount, len(observed)))
	return nil
}
