// Package analyser computes totals over the transaction category produced by
// an ingest run.
package analyser

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/history-csv/internal/common"
	"fjacquet/history-csv/internal/currencyutils"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// TransactionRow is one record of the transaction category file.
type TransactionRow struct {
	Action        string `csv:"Action"`
	Time          string `csv:"Time"`
	Notes         string `csv:"Notes"`
	ID            string `csv:"ID"`
	Total         string `csv:"Total"`
	CurrencyTotal string `csv:"Currency (Total)"`
}

// TransactionAnalyser sums deposits and withdrawals of a transaction file.
type TransactionAnalyser struct {
	path        string
	rows        []TransactionRow
	deposits    decimal.Decimal
	withdrawals decimal.Decimal
	currencies  []string
}

// NewTransactionAnalyser loads the transaction file at path. The file must
// carry Action and Total columns. A Total that is blank counts as zero.
// Thousands separators and currency marks are accepted; any other value that
// is not a number is an error.
func NewTransactionAnalyser(logger logging.Logger, path string, delimiter rune) (*TransactionAnalyser, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	rows, err := common.ReadCSVFile[TransactionRow](path, delimiter, models.ColumnAction, models.ColumnTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	a := &TransactionAnalyser{path: path, rows: rows}
	seen := make(map[string]bool)
	for i, row := range rows {
		if strings.TrimSpace(row.Action) == "" {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       path,
				ExpectedFormat: "transaction category CSV",
				Msg:            fmt.Sprintf("row %d has no Action", i+1),
			}
		}

		amount, err := currencyutils.ParseAmount(row.Total)
		if err != nil {
			return nil, &parsererror.InvalidFormatError{
				FilePath:       path,
				ExpectedFormat: "transaction category CSV",
				Msg:            fmt.Sprintf("row %d has an invalid Total %q", i+1, row.Total),
				Err:            err,
			}
		}

		switch models.ActionType(row.Action) {
		case models.ActionDeposit:
			a.deposits = a.deposits.Add(amount)
		case models.ActionWithdrawal:
			a.withdrawals = a.withdrawals.Add(amount)
		}

		if c := strings.TrimSpace(row.CurrencyTotal); c != "" && !seen[c] {
			seen[c] = true
			a.currencies = append(a.currencies, c)
		}
	}
	sort.Strings(a.currencies)

	logger.Info("Loaded transactions",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(rows)))
	return a, nil
}

// TotalRowCount is the number of transaction rows.
func (a *TransactionAnalyser) TotalRowCount() int {
	return len(a.rows)
}

// TotalDepositAmount sums Total over Deposit rows.
func (a *TransactionAnalyser) TotalDepositAmount() decimal.Decimal {
	return a.deposits
}

// TotalWithdrawalAmount sums Total over Withdrawal rows. Withdrawals are
// recorded as negative amounts, so the result is normally not positive.
func (a *TransactionAnalyser) TotalWithdrawalAmount() decimal.Decimal {
	return a.withdrawals
}

// TotalAmount is deposits plus withdrawals. More money withdrawn than
// deposited is reported as a ConsistencyError.
func (a *TransactionAnalyser) TotalAmount() (decimal.Decimal, error) {
	total := a.deposits.Add(a.withdrawals)
	if total.IsNegative() {
		return decimal.Zero, &parsererror.ConsistencyError{
			FilePath: a.path,
			Reason: fmt.Sprintf("total deposit amount %s is smaller than total withdrawal amount %s",
				a.deposits.String(), a.withdrawals.Neg().String()),
		}
	}
	return total, nil
}

// Currencies returns the distinct non-blank Currency (Total) values, sorted.
func (a *TransactionAnalyser) Currencies() []string {
	return append([]string(nil), a.currencies...)
}

// CheckManifest compares the loaded row count with the transaction count
// recorded by the ingest run.
func (a *TransactionAnalyser) CheckManifest(manifest *models.Manifest) error {
	category, ok := manifest.Category(models.HistoryTransaction)
	if !ok {
		return &parsererror.ConsistencyError{
			FilePath: a.path,
			Reason:   fmt.Sprintf("manifest of run %s has no transaction category", manifest.RunID),
		}
	}
	if category.Rows != a.TotalRowCount() {
		return &parsererror.ConsistencyError{
			FilePath: a.path,
			Reason: fmt.Sprintf("manifest of run %s records %d transactions, file has %d",
				manifest.RunID, category.Rows, a.TotalRowCount()),
		}
	}
	return nil
}

// Summary is the result of an analysis.
type Summary struct {
	File                  string          `json:"file"`
	Rows                  int             `json:"rows"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	TotalDepositAmount    decimal.Decimal `json:"total_deposit_amount"`
	TotalWithdrawalAmount decimal.Decimal `json:"total_withdrawal_amount"`
	// Currency is set when every row shares one Currency (Total).
	Currency string `json:"currency,omitempty"`
}

// Summarize computes every total at once.
func (a *TransactionAnalyser) Summarize() (*Summary, error) {
	total, err := a.TotalAmount()
	if err != nil {
		return nil, err
	}
	summary := &Summary{
		File:                  a.path,
		Rows:                  a.TotalRowCount(),
		TotalAmount:           total,
		TotalDepositAmount:    a.deposits,
		TotalWithdrawalAmount: a.withdrawals,
	}
	if len(a.currencies) == 1 {
		summary.Currency = a.currencies[0]
	}
	return summary, nil
}
