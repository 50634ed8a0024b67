package models

import (
	"fmt"
	"sort"
)

// ActionType is the raw label in the Action column of a broker history export.
// The set is closed: a row carrying any other label is rejected at validation.
type ActionType string

const (
	ActionDeposit        ActionType = "Deposit"
	ActionWithdrawal     ActionType = "Withdrawal"
	ActionDividend       ActionType = "Dividend (Dividend)"
	ActionInterestOnCash ActionType = "Interest on cash"
	ActionMarketBuy      ActionType = "Market buy"
	ActionMarketSell     ActionType = "Market sell"
	ActionLimitBuy       ActionType = "Limit buy"
	ActionLimitSell      ActionType = "Limit sell"
	ActionStopSell       ActionType = "Stop sell"
	ActionStopBuy        ActionType = "Stop buy"
	ActionStopLimitBuy   ActionType = "Stop limit buy"
	ActionStopLimitSell  ActionType = "Stop limit sell"
)

var allActionTypes = []ActionType{
	ActionDeposit,
	ActionWithdrawal,
	ActionDividend,
	ActionInterestOnCash,
	ActionMarketBuy,
	ActionMarketSell,
	ActionLimitBuy,
	ActionLimitSell,
	ActionStopSell,
	ActionStopBuy,
	ActionStopLimitBuy,
	ActionStopLimitSell,
}

// AllActionTypes returns every known action type in declaration order.
func AllActionTypes() []ActionType {
	out := make([]ActionType, len(allActionTypes))
	copy(out, allActionTypes)
	return out
}

// ActionTypeValues returns the raw labels of every known action, sorted.
func ActionTypeValues() []string {
	values := make([]string, len(allActionTypes))
	for i, a := range allActionTypes {
		values[i] = string(a)
	}
	sort.Strings(values)
	return values
}

// ParseActionType maps a raw label to its ActionType. Matching is exact; the
// export never varies case or spacing for a given action.
func ParseActionType(raw string) (ActionType, error) {
	a := ActionType(raw)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action type %q", raw)
	}
	return a, nil
}

// IsValid reports whether a is one of the known action types.
func (a ActionType) IsValid() bool {
	_, err := a.HistoryType()
	return err == nil
}

// HistoryType returns the output category a belongs to. Every known action
// belongs to exactly one category.
func (a ActionType) HistoryType() (HistoryType, error) {
	switch a {
	case ActionDeposit, ActionWithdrawal:
		return HistoryTransaction, nil
	case ActionDividend:
		return HistoryDividend, nil
	case ActionInterestOnCash:
		return HistoryInterest, nil
	case ActionMarketBuy, ActionMarketSell, ActionLimitBuy, ActionLimitSell,
		ActionStopSell, ActionStopBuy, ActionStopLimitBuy, ActionStopLimitSell:
		return HistoryOrder, nil
	}
	return 0, fmt.Errorf("unknown action type %q", string(a))
}

func (a ActionType) String() string {
	return string(a)
}
