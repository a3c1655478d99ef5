package model

import (
	"github.com/shopspring/decimal"

	"github.com/grossbook-dev/grossbook/internal/currency"
)

// Reserved purposes that exist outside the configured expense categories.
// Pocket money and savings targets are excluded from duty accounting.
const (
	PurposePocketMoney = "pocket_money"
	PurposeTargets     = "targets"
	PurposeGroceries   = "groceries"
)

// Role identifies a household member, as declared in the budget plan.
type Role string

// Record is a single row in grossbook.csv. Records are immutable once
// appended; the grossbook is append-only.
type Record struct {
	Date        string // dd.mm.yyyy
	Time        string // hh:mm
	Purpose     string // lowercase expense category, pocket_money or targets
	Role        Role
	Amount      decimal.Decimal // positive = charge, negative = payment/offset
	Currency    currency.Code
	Description string
}

// IsDuty reports whether the record counts toward shared duty spending.
func (r Record) IsDuty() bool {
	return r.Purpose != PurposePocketMoney && r.Purpose != PurposeTargets
}
