package models

import (
	"fmt"
	"strings"
)

// HistoryType is one of the four output categories of an ingestion run.
type HistoryType int

const (
	HistoryOrder HistoryType = iota + 1
	HistoryDividend
	HistoryTransaction
	HistoryInterest
)

// AllHistoryTypes lists the categories in the order their outputs are written.
func AllHistoryTypes() []HistoryType {
	return []HistoryType{HistoryTransaction, HistoryDividend, HistoryInterest, HistoryOrder}
}

// Actions returns the action types that make up h.
func (h HistoryType) Actions() []ActionType {
	var actions []ActionType
	for _, a := range allActionTypes {
		if ht, err := a.HistoryType(); err == nil && ht == h {
			actions = append(actions, a)
		}
	}
	return actions
}

// Contains reports whether action belongs to h.
func (h HistoryType) Contains(action ActionType) bool {
	ht, err := action.HistoryType()
	return err == nil && ht == h
}

// IsValid reports whether h is one of the four defined categories.
func (h HistoryType) IsValid() bool {
	switch h {
	case HistoryOrder, HistoryDividend, HistoryTransaction, HistoryInterest:
		return true
	}
	return false
}

// FileName is the name of the CSV file the category is persisted to.
func (h HistoryType) FileName() string {
	switch h {
	case HistoryOrder:
		return FileOrders
	case HistoryDividend:
		return FileDividends
	case HistoryTransaction:
		return FileTransactions
	case HistoryInterest:
		return FileInterest
	}
	return ""
}

func (h HistoryType) String() string {
	switch h {
	case HistoryOrder:
		return "order"
	case HistoryDividend:
		return "dividend"
	case HistoryTransaction:
		return "transaction"
	case HistoryInterest:
		return "interest"
	}
	return fmt.Sprintf("HistoryType(%d)", int(h))
}

// ParseHistoryType accepts the lower-case category names produced by String.
func ParseHistoryType(s string) (HistoryType, error) {
	for _, h := range AllHistoryTypes() {
		if strings.EqualFold(strings.TrimSpace(s), h.String()) {
			return h, nil
		}
	}
	return 0, fmt.Errorf("unknown history type %q", s)
}
