package model

import (
	"github.com/shopspring/decimal"

	"github.com/grossbook-dev/grossbook/internal/currency"
)

// CategoryEntry is a single budget-plan line item from one of the
// expenses, incomes or pocket_money sections.
type CategoryEntry struct {
	Purpose  string
	Role     Role
	Amount   decimal.Decimal
	Currency currency.Code
	DueDay   int // day of month a planned expense falls due, 0 if none
}
