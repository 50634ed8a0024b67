// Package extractor splits a validated history table into its four categories.
// Each extractor keeps the rows whose Action belongs to its category and
// projects them onto the category schema.
package extractor

import (
	"fmt"

	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
)

// Extractor derives one category sub-table from a validated table.
type Extractor interface {
	// Type is the category this extractor produces.
	Type() models.HistoryType
	// Schema is the ordered list of columns kept in the output.
	Schema() []string
	// Extract returns the category rows of table projected onto Schema. The
	// input table is not modified.
	Extract(table *models.Table) (*models.Table, error)
}

func extractByAction(table *models.Table, history models.HistoryType, schema []string) (*models.Table, error) {
	if table == nil {
		return nil, fmt.Errorf("cannot extract %s rows from a nil table", history)
	}
	if missing := table.MissingColumns(schema); len(missing) > 0 {
		return nil, &parsererror.SchemaMismatchError{HistoryType: history.String(), Missing: missing}
	}

	selected := table.Filter(func(i int) bool {
		return history.Contains(table.Action(i))
	})
	return selected.Project(schema)
}

func copySchema(schema []string) []string {
	return append([]string(nil), schema...)
}
