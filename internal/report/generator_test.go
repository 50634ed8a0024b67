package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/history-csv/internal/analyser"
	"fjacquet/history-csv/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary(currency string) *analyser.Summary {
	return &analyser.Summary{
		File:                  "output/transactions.csv",
		Rows:                  3,
		TotalAmount:           decimal.NewFromInt(85),
		TotalDepositAmount:    decimal.NewFromInt(125),
		TotalWithdrawalAmount: decimal.NewFromInt(-40),
		Currency:              currency,
	}
}

func TestReportGenerator_GenerateReport_Text(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())

	out, err := generator.GenerateReport(sampleSummary("USD"), "text")
	require.NoError(t, err)

	assert.Equal(t, "Total Amount: $85.00\n"+
		"Total Deposit Amount: $125.00\n"+
		"Total Withdrawal Amount: -$40.00\n"+
		"Transactions: 3\n", string(out))
}

func TestReportGenerator_GenerateReport_TextWithoutCurrency(t *testing.T) {
	out, err := NewReportGenerator(nil).GenerateReport(sampleSummary(""), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "Total Amount: 85\n"), string(out))
	assert.Contains(t, string(out), "Total Withdrawal Amount: -40\n")
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	out, err := NewReportGenerator(nil).GenerateReport(sampleSummary("EUR"), "json")
	require.NoError(t, err)

	var decoded analyser.Summary
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 3, decoded.Rows)
	assert.Equal(t, "EUR", decoded.Currency)
	assert.True(t, decimal.NewFromInt(85).Equal(decoded.TotalAmount))
	assert.True(t, decimal.NewFromInt(-40).Equal(decoded.TotalWithdrawalAmount))
}

func TestReportGenerator_GenerateReport_XML(t *testing.T) {
	out, err := NewReportGenerator(nil).GenerateReport(sampleSummary("EUR"), "XML")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(out), "<?xml"))
	assert.Contains(t, string(out), "<total_deposit_amount>125</total_deposit_amount>")
	assert.Contains(t, string(out), "<currency>EUR</currency>")
}

func TestReportGenerator_GenerateReport_Errors(t *testing.T) {
	generator := NewReportGenerator(nil)

	_, err := generator.GenerateReport(sampleSummary(""), "yaml")
	assert.EqualError(t, err, "unsupported report format: yaml")

	_, err = generator.GenerateReport(nil, "text")
	assert.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency string
		want     string
	}{
		{"known currency", decimal.RequireFromString("1234.5"), "USD", "$1,234.50"},
		{"rounded to minor unit", decimal.RequireFromString("0.125"), "USD", "$0.13"},
		{"unknown currency", decimal.RequireFromString("12.5"), "QQQ", "12.5 QQQ"},
		{"no currency", decimal.RequireFromString("-3"), "", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount, tt.currency))
		})
	}
}
