// Package factory maps each history category to its extractor.
package factory

import (
	"fjacquet/history-csv/internal/extractor"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
)

// ExtractorFactory hands out the extractor for a history category.
type ExtractorFactory struct{}

// NewExtractorFactory creates an ExtractorFactory.
func NewExtractorFactory() *ExtractorFactory {
	return &ExtractorFactory{}
}

// GetExtractor returns the extractor for historyType. The mapping is total over
// the four defined categories; any other value is a programming error.
func (f *ExtractorFactory) GetExtractor(historyType models.HistoryType) (extractor.Extractor, error) {
	switch historyType {
	case models.HistoryOrder:
		return extractor.OrderExtractor{}, nil
	case models.HistoryDividend:
		return extractor.DividendExtractor{}, nil
	case models.HistoryTransaction:
		return extractor.TransactionExtractor{}, nil
	case models.HistoryInterest:
		return extractor.InterestExtractor{}, nil
	default:
		return nil, &parsererror.UnsupportedHistoryTypeError{HistoryType: historyType.String()}
	}
}
