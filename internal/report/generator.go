// Package report renders analysis summaries for the command line.
package report

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"strings"

	"fjacquet/history-csv/internal/analyser"
	"fjacquet/history-csv/internal/logging"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatXML  = "xml"
)

// ReportGenerator renders an analyser.Summary in one of the supported formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ReportGenerator{
		logger: logger.WithField(logging.FieldComponent, "ReportGenerator"),
	}
}

// GenerateReport renders summary as text, json or xml.
func (g *ReportGenerator) GenerateReport(summary *analyser.Summary, format string) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("cannot render nil summary")
	}
	switch strings.ToLower(format) {
	case FormatText, "":
		return g.generateTextReport(summary), nil
	case FormatJSON:
		return g.generateJSONReport(summary)
	case FormatXML:
		return g.generateXMLReport(summary)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *ReportGenerator) generateTextReport(summary *analyser.Summary) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Amount: %s\n", FormatAmount(summary.TotalAmount, summary.Currency))
	fmt.Fprintf(&b, "Total Deposit Amount: %s\n", FormatAmount(summary.TotalDepositAmount, summary.Currency))
	fmt.Fprintf(&b, "Total Withdrawal Amount: %s\n", FormatAmount(summary.TotalWithdrawalAmount, summary.Currency))
	fmt.Fprintf(&b, "Transactions: %d\n", summary.Rows)
	return []byte(b.String())
}

// generateJSONReport generates the summary in JSON format.
func (g *ReportGenerator) generateJSONReport(summary *analyser.Summary) ([]byte, error) {
	jsonReport, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(jsonReport, '\n'), nil
}

type xmlSummary struct {
	XMLName               xml.Name `xml:"summary"`
	File                  string   `xml:"file"`
	Rows                  int      `xml:"rows"`
	TotalAmount           string   `xml:"total_amount"`
	TotalDepositAmount    string   `xml:"total_deposit_amount"`
	TotalWithdrawalAmount string   `xml:"total_withdrawal_amount"`
	Currency              string   `xml:"currency,omitempty"`
}

// generateXMLReport generates the summary in XML format.
func (g *ReportGenerator) generateXMLReport(summary *analyser.Summary) ([]byte, error) {
	xmlReport, err := xml.MarshalIndent(xmlSummary{
		File:                  summary.File,
		Rows:                  summary.Rows,
		TotalAmount:           summary.TotalAmount.String(),
		TotalDepositAmount:    summary.TotalDepositAmount.String(),
		TotalWithdrawalAmount: summary.TotalWithdrawalAmount.String(),
		Currency:              summary.Currency,
	}, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal XML report")
		return nil, fmt.Errorf("failed to marshal XML report: %w", err)
	}
	return []byte(xml.Header + string(xmlReport) + "\n"), nil
}

// FormatAmount displays amount in currency when the code is known, and as a
// plain decimal otherwise.
func FormatAmount(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if currency == "" || cur == nil {
		if currency != "" {
			return amount.String() + " " + currency
		}
		return amount.String()
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
