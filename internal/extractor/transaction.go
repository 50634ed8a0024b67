package extractor

import "fjacquet/history-csv/internal/models"

var transactionSchema = []string{
	models.ColumnAction,
	models.ColumnTime,
	models.ColumnNotes,
	models.ColumnID,
	models.ColumnTotal,
	models.ColumnCurrencyTotal,
}

// TransactionExtractor keeps deposits and withdrawals.
type TransactionExtractor struct{}

func (TransactionExtractor) Type() models.HistoryType { return models.HistoryTransaction }

func (TransactionExtractor) Schema() []string { return copySchema(transactionSchema) }

func (e TransactionExtractor) Extract(table *models.Table) (*models.Table, error) {
	return extractByAction(table, e.Type(), transactionSchema)
}
