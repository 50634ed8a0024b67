package extractor

import "fjacquet/history-csv/internal/models"

var dividendSchema = []string{
	models.ColumnAction,
	models.ColumnTime,
	models.ColumnISIN,
	models.ColumnTicker,
	models.ColumnName,
	models.ColumnShares,
	models.ColumnPricePerShare,
	models.ColumnCurrencyPricePerShare,
	models.ColumnExchangeRate,
	models.ColumnTotal,
	models.ColumnCurrencyTotal,
	models.ColumnWithholdingTax,
	models.ColumnCurrencyWithholdingTax,
}

// DividendExtractor keeps dividend payouts along with their withholding tax.
type DividendExtractor struct{}

func (DividendExtractor) Type() models.HistoryType { return models.HistoryDividend }

func (DividendExtractor) Schema() []string { return copySchema(dividendSchema) }

func (e DividendExtractor) Extract(table *models.Table) (*models.Table, error) {
	return extractByAction(table, e.Type(), dividendSchema)
}
