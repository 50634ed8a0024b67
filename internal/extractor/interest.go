package extractor

import "fjacquet/history-csv/internal/models"

var interestSchema = []string{
	models.ColumnAction,
	models.ColumnTime,
	models.ColumnNotes,
	models.ColumnID,
	models.ColumnTotal,
	models.ColumnCurrencyTotal,
}

// InterestExtractor keeps interest paid on uninvested cash.
type InterestExtractor struct{}

func (InterestExtractor) Type() models.HistoryType { return models.HistoryInterest }

func (InterestExtractor) Schema() []string { return copySchema(interestSchema) }

func (e InterestExtractor) Extract(table *models.Table) (*models.Table, error) {
	return extractByAction(table, e.Type(), interestSchema)
}
