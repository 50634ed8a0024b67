package extractor

import "fjacquet/history-csv/internal/models"

var orderSchema = []string{
	models.ColumnAction,
	models.ColumnTime,
	models.ColumnISIN,
	models.ColumnTicker,
	models.ColumnName,
	models.ColumnID,
	models.ColumnShares,
	models.ColumnPricePerShare,
	models.ColumnCurrencyPricePerShare,
	models.ColumnExchangeRate,
	models.ColumnTotal,
	models.ColumnCurrencyTotal,
	models.ColumnCurrencyConversionFee,
	models.ColumnCurrencyCurrencyConversionFee,
}

// OrderExtractor keeps every market, limit, stop and stop-limit order.
type OrderExtractor struct{}

func (OrderExtractor) Type() models.HistoryType { return models.HistoryOrder }

func (OrderExtractor) Schema() []string { return copySchema(orderSchema) }

func (e OrderExtractor) Extract(table *models.Table) (*models.Table, error) {
	return extractByAction(table, e.Type(), orderSchema)
}
