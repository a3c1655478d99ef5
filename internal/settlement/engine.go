package settlement

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"k8s.io/klog"

	"github.com/grossbook-dev/grossbook/internal/budget"
	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/ledger"
	"github.com/grossbook-dev/grossbook/internal/model"
)

// Engine validates and records purchases and computes the monthly
// settlement reports. Every report recomputes from the full grossbook on
// each call; the only side effect anywhere is the append in
// RecordPurchase.
type Engine struct {
	book      *ledger.Store
	plan      *budget.Plan
	conv      *currency.Converter
	operating currency.Code
}

// NewEngine creates an Engine over a grossbook store and a loaded budget
// plan. Conversions use the plan's own rate table.
func NewEngine(book *ledger.Store, plan *budget.Plan, operating currency.Code) *Engine {
	return &Engine{
		book:      book,
		plan:      plan,
		conv:      plan.Converter(),
		operating: operating,
	}
}

// amountPattern matches the last line of a purchase message: an optional
// sign, digits/decimal point, optional whitespace, then a currency symbol
// or 3-letter code.
var amountPattern = regexp.MustCompile(`^([+-]?[0-9.]+)\s*([$€₽]|rub|eur|usd|RUB|EUR|USD)`)

// RecordPurchase validates a raw multi-line purchase message and appends
// the resulting record to the grossbook. The expected shape is
//
//	#purpose
//	description
//	+-amount currency
//
// Validation failures come back as *ValidationError; a storage failure is
// propagated unchanged and means the purchase was not recorded.
func (e *Engine) RecordPurchase(rawText string, role model.Role, now time.Time) (model.Record, error) {
	lines := strings.Split(rawText, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	if len(lines) < 2 {
		return model.Record{}, &ValidationError{
			Kind:   MalformedMessage,
			Detail: "need #purpose, description and amount lines",
		}
	}

	hash := strings.Index(lines[0], "#")
	if hash < 0 {
		return model.Record{}, &ValidationError{
			Kind:   UnknownCategory,
			Detail: "first line must start with #purpose",
		}
	}
	purpose := strings.ToLower(lines[0][hash+1:])
	if !e.knownPurpose(purpose) {
		return model.Record{}, &ValidationError{
			Kind:   UnknownCategory,
			Detail: "category " + purpose + " is not configured",
		}
	}

	last := lines[len(lines)-1]
	m := amountPattern.FindStringSubmatch(last)
	if m == nil {
		return model.Record{}, &ValidationError{
			Kind:   UnrecognizedAmount,
			Detail: "last line must be a number followed by a currency symbol",
		}
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return model.Record{}, &ValidationError{
			Kind:   UnrecognizedAmount,
			Detail: "cannot parse amount " + m[1],
		}
	}

	code, err := currency.Canonicalize(m[2])
	if err != nil {
		return model.Record{}, &ValidationError{
			Kind:   UnknownCurrency,
			Detail: "cannot parse currency " + m[2],
		}
	}

	description := strings.Join(lines[1:len(lines)-1], "\n")
	description = strings.ReplaceAll(description, ",", ".")

	rec := model.Record{
		Date:        ledger.FormatDate(now),
		Time:        ledger.FormatClock(now),
		Purpose:     purpose,
		Role:        role,
		Amount:      amount,
		Currency:    code,
		Description: description,
	}

	if err := e.book.Append(rec); err != nil {
		return model.Record{}, err
	}

	klog.Infof("recorded %s %s %s by %s", rec.Purpose, rec.Amount, rec.Currency, rec.Role)
	return rec, nil
}

func (e *Engine) knownPurpose(purpose string) bool {
	if purpose == model.PurposePocketMoney || purpose == model.PurposeTargets {
		return true
	}
	for _, p := range e.plan.ExpensePurposes() {
		if p == purpose {
			return true
		}
	}
	return false
}

// Categories returns the declared expense purposes plus the two reserved
// purposes, for user-facing category discovery.
func (e *Engine) Categories() []string {
	purposes := append([]string{}, e.plan.ExpensePurposes()...)
	return append(purposes, model.PurposePocketMoney, model.PurposeTargets)
}

// MonthlyDutySettlement reports, per purpose, how much of the planned duty
// spending remains for the current month. It starts from the planned
// per-purpose expense totals and adds the month's actual duty entries onto
// them. Actual duty spending is conventionally recorded with a negative
// amount, offsetting the planned liability; the engine does not enforce
// the sign. hasData reflects whether any duty rows existed.
func (e *Engine) MonthlyDutySettlement(now time.Time, operating currency.Code) (bool, map[string]decimal.Decimal, error) {
	hasData, rows, err := e.book.QueryDutyEntries(ledger.FormatDate(now))
	if err != nil {
		return false, nil, err
	}

	actual, err := e.sumByPurpose(rows, operating)
	if err != nil {
		return false, nil, err
	}

	result := make(map[string]decimal.Decimal, len(e.plan.PlannedExpensesByPurpose()))
	for purpose, planned := range e.plan.PlannedExpensesByPurpose() {
		amount, err := e.conv.Convert(planned, e.plan.Operating(), operating)
		if err != nil {
			return false, nil, err
		}
		if spent, ok := actual[purpose]; ok {
			amount = amount.Add(spent)
		}
		result[purpose] = amount
	}
	return hasData, result, nil
}

// MonthlyDebtSettlement reports each member's outstanding debt for the
// current month: the planned debt (income - expenses - pocket money) plus
// the member's actual duty spending, which reduces what is still owed.
// With an empty grossbook the result is exactly the planned debt per role.
func (e *Engine) MonthlyDebtSettlement(now time.Time, operating currency.Code) (bool, map[model.Role]decimal.Decimal, error) {
	hasData, rows, err := e.book.QueryDutyEntries(ledger.FormatDate(now))
	if err != nil {
		return false, nil, err
	}

	actual, err := e.sumByRole(rows, operating)
	if err != nil {
		return false, nil, err
	}

	result := make(map[model.Role]decimal.Decimal, len(e.plan.Roles()))
	for _, role := range e.plan.Roles() {
		amount, err := e.conv.Convert(e.plan.DebtByRole()[role], e.plan.Operating(), operating)
		if err != nil {
			return false, nil, err
		}
		if spent, ok := actual[role]; ok {
			amount = amount.Add(spent)
		}
		result[role] = amount
	}
	return hasData, result, nil
}

// PocketMoneySummary reports, per member, the month's pocket-money
// spending converted to cur.
func (e *Engine) PocketMoneySummary(now time.Time, cur currency.Code) (bool, map[model.Role]decimal.Decimal, error) {
	hasData, rows, err := e.book.QueryPocketMoney(ledger.FormatDate(now))
	if err != nil {
		return false, nil, err
	}

	sums, err := e.sumByRole(rows, cur)
	if err != nil {
		return false, nil, err
	}
	return hasData, sums, nil
}

// GroceriesSummary reports the month's total groceries spending converted
// to cur.
func (e *Engine) GroceriesSummary(now time.Time, cur currency.Code) (bool, decimal.Decimal, error) {
	hasData, rows, err := e.book.QueryGroceries(ledger.FormatDate(now))
	if err != nil {
		return false, decimal.Zero, err
	}

	total := decimal.Zero
	for _, rec := range rows {
		amount, err := e.conv.Convert(rec.Amount, rec.Currency, cur)
		if err != nil {
			return false, decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return hasData, total, nil
}

// DailyStatement returns the records appended on now's date.
func (e *Engine) DailyStatement(now time.Time) (bool, []model.Record, error) {
	return e.book.QueryByDate(ledger.FormatDate(now))
}

// ScheduledReminderPayments returns the planned expenses falling due on
// the given day of month, re-read from the raw budget plan.
func (e *Engine) ScheduledReminderPayments(day int) ([]model.CategoryEntry, error) {
	return e.plan.ScheduledPaymentsForDay(day)
}

func (e *Engine) sumByPurpose(rows []model.Record, cur currency.Code) (map[string]decimal.Decimal, error) {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range rows {
		amount, err := e.conv.Convert(rec.Amount, rec.Currency, cur)
		if err != nil {
			return nil, err
		}
		sums[rec.Purpose] = sums[rec.Purpose].Add(amount)
	}
	return sums, nil
}

func (e *Engine) sumByRole(rows []model.Record, cur currency.Code) (map[model.Role]decimal.Decimal, error) {
	sums := make(map[model.Role]decimal.Decimal)
	for _, rec := range rows {
		amount, err := e.conv.Convert(rec.Amount, rec.Currency, cur)
		if err != nil {
			return nil, err
		}
		sums[rec.Role] = sums[rec.Role].Add(amount)
	}
	return sums, nil
}
