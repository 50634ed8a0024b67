// Package historytest provides broker export fixtures shared by tests.
package historytest

import (
	"strings"
	"testing"

	"fjacquet/history-csv/internal/models"
)

// ExportHeader is the full header of a broker history export, in export order.
var ExportHeader = []string{
	models.ColumnAction,
	models.ColumnTime,
	models.ColumnISIN,
	models.ColumnTicker,
	models.ColumnName,
	models.ColumnNotes,
	models.ColumnID,
	models.ColumnShares,
	models.ColumnPricePerShare,
	models.ColumnCurrencyPricePerShare,
	models.ColumnExchangeRate,
	models.ColumnTotal,
	models.ColumnCurrencyTotal,
	models.ColumnWithholdingTax,
	models.ColumnCurrencyWithholdingTax,
	models.ColumnCurrencyConversionFee,
	models.ColumnCurrencyCurrencyConversionFee,
}

// Row builds an export record for action at ts. cells overrides individual
// columns by name; every other column is left blank.
func Row(action models.ActionType, ts string, cells map[string]string) []string {
	record := make([]string, len(ExportHeader))
	for i, col := range ExportHeader {
		switch col {
		case models.ColumnAction:
			record[i] = string(action)
		case models.ColumnTime:
			record[i] = ts
		default:
			record[i] = cells[col]
		}
	}
	return record
}

// MixedRows returns one row per known action type, so every category is hit.
func MixedRows() [][]string {
	return [][]string{
		Row(models.ActionDeposit, "2024-03-24 10:00:00", map[string]string{
			models.ColumnNotes: "Bank Transfer", models.ColumnID: "dep-1",
			models.ColumnTotal: "1000.00", models.ColumnCurrencyTotal: "EUR",
		}),
		Row(models.ActionMarketBuy, "2024-03-25 14:31:02.125", map[string]string{
			models.ColumnISIN: "US0378331005", models.ColumnTicker: "AAPL", models.ColumnName: "Apple",
			models.ColumnID: "EOF1", models.ColumnShares: "2.5", models.ColumnPricePerShare: "170.10",
			models.ColumnCurrencyPricePerShare: "USD", models.ColumnExchangeRate: "1.08",
			models.ColumnTotal: "394.00", models.ColumnCurrencyTotal: "EUR",
			models.ColumnCurrencyConversionFee: "0.59", models.ColumnCurrencyCurrencyConversionFee: "EUR",
		}),
		Row(models.ActionDividend, "2024-04-02 09:00:00", map[string]string{
			models.ColumnISIN: "US0378331005", models.ColumnTicker: "AAPL", models.ColumnName: "Apple",
			models.ColumnShares: "2.5", models.ColumnPricePerShare: "0.24",
			models.ColumnCurrencyPricePerShare: "USD", models.ColumnExchangeRate: "1.08",
			models.ColumnTotal: "0.47", models.ColumnCurrencyTotal: "EUR",
			models.ColumnWithholdingTax: "0.09", models.ColumnCurrencyWithholdingTax: "USD",
		}),
		Row(models.ActionInterestOnCash, "2024-04-03 00:05:00", map[string]string{
			models.ColumnNotes: "Interest", models.ColumnID: "int-1",
			models.ColumnTotal: "0.12", models.ColumnCurrencyTotal: "EUR",
		}),
		Row(models.ActionWithdrawal, "2024-04-05 16:00:00", map[string]string{
			models.ColumnNotes: "Sent to bank", models.ColumnID: "wd-1",
			models.ColumnTotal: "-200.00", models.ColumnCurrencyTotal: "EUR",
		}),
		Row(models.ActionLimitSell, "2024-04-06 10:11:12", map[string]string{
			models.ColumnISIN: "US0378331005", models.ColumnTicker: "AAPL", models.ColumnName: "Apple",
			models.ColumnID: "EOF2", models.ColumnShares: "1", models.ColumnPricePerShare: "180",
			models.ColumnCurrencyPricePerShare: "USD", models.ColumnExchangeRate: "1.09",
			models.ColumnTotal: "165.14", models.ColumnCurrencyTotal: "EUR",
		}),
	}
}

// NewTable builds a table with ExportHeader from rows, failing the test on error.
func NewTable(t testing.TB, rows [][]string) *models.Table {
	t.Helper()
	table, err := models.NewTable(ExportHeader, rows)
	if err != nil {
		t.Fatalf("building fixture table: %v", err)
	}
	return table
}

// CSV renders header and rows as comma separated text with a trailing newline.
// Cells containing a comma or quote are quoted.
func CSV(header []string, rows [][]string) string {
	var b strings.Builder
	writeLine := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(',')
			}
			if strings.ContainsAny(c, ",\"\n") {
				c = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
			}
			b.WriteString(c)
		}
		b.WriteByte('\n')
	}
	writeLine(header)
	for _, r := range rows {
		writeLine(r)
	}
	return b.String()
}
