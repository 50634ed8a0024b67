package models

// Column headers of the broker history export. Spelling and spacing follow the
// export exactly since they double as output headers.
const (
	ColumnAction                        = "Action"
	ColumnTime                          = "Time"
	ColumnISIN                          = "ISIN"
	ColumnTicker                        = "Ticker"
	ColumnName                          = "Name"
	ColumnNotes                         = "Notes"
	ColumnID                            = "ID"
	ColumnShares                        = "No. of shares"
	ColumnPricePerShare                 = "Price / share"
	ColumnCurrencyPricePerShare         = "Currency (Price / share)"
	ColumnExchangeRate                  = "Exchange rate"
	ColumnTotal                         = "Total"
	ColumnCurrencyTotal                 = "Currency (Total)"
	ColumnWithholdingTax                = "Withholding tax"
	ColumnCurrencyWithholdingTax        = "Currency (Withholding tax)"
	ColumnCurrencyConversionFee         = "Currency conversion fee"
	ColumnCurrencyCurrencyConversionFee = "Currency (Currency conversion fee)"
)

