package budget

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/model"
)

// rawEntry is one line item of a budget.yaml section, before currency
// canonicalization and conversion. Amounts stay strings so decimal parsing
// owns the precision.
type rawEntry struct {
	Purpose  string `yaml:"purpose"`
	Role     string `yaml:"role"`
	Amount   string `yaml:"amount"`
	Currency string `yaml:"currency"`
	DueDay   int    `yaml:"due_day,omitempty"`
}

// rawPlan is the on-disk shape of budget.yaml.
type rawPlan struct {
	Course      map[string]map[string]string `yaml:"course"`
	Expenses    []rawEntry                   `yaml:"expenses"`
	Incomes     []rawEntry                   `yaml:"incomes"`
	PocketMoney []rawEntry                   `yaml:"pocket_money"`
}

// Plan holds a household's budget with every amount converted to the
// operating currency at load time. A Plan is immutable for the process
// lifetime; only ScheduledPaymentsForDay re-reads the raw file.
type Plan struct {
	path      string
	operating currency.Code
	conv      *currency.Converter

	expenses    []model.CategoryEntry
	incomes     []model.CategoryEntry
	pocketMoney []model.CategoryEntry

	roles            []model.Role
	expensesByRole   map[model.Role]decimal.Decimal
	incomesByRole    map[model.Role]decimal.Decimal
	pocketByRole     map[model.Role]decimal.Decimal
	debtByRole       map[model.Role]decimal.Decimal
	plannedByPurpose map[string]decimal.Decimal
	purposes         []string
}

// Load reads budget.yaml from path, converts every entry to operating via
// the file's own rate table, and derives the per-role aggregates. An
// unknown currency token anywhere in the file is fatal: a household cannot
// operate with an unparseable budget.
func Load(path string, operating currency.Code) (*Plan, error) {
	raw, err := readRaw(path)
	if err != nil {
		return nil, err
	}

	rates, err := parseRates(raw.Course)
	if err != nil {
		return nil, err
	}
	conv, err := currency.NewConverter(rates)
	if err != nil {
		return nil, err
	}

	p := &Plan{path: path, operating: operating, conv: conv}

	if p.expenses, err = convertEntries(raw.Expenses, conv, operating); err != nil {
		return nil, fmt.Errorf("expenses: %w", err)
	}
	if p.incomes, err = convertEntries(raw.Incomes, conv, operating); err != nil {
		return nil, fmt.Errorf("incomes: %w", err)
	}
	if p.pocketMoney, err = convertEntries(raw.PocketMoney, conv, operating); err != nil {
		return nil, fmt.Errorf("pocket_money: %w", err)
	}

	p.derive()
	return p, nil
}

func readRaw(path string) (*rawPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading budget plan: %w", err)
	}
	var raw rawPlan
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing budget plan: %w", err)
	}
	return &raw, nil
}

func parseRates(course map[string]map[string]string) (currency.RateTable, error) {
	rates := make(currency.RateTable, len(course))
	for fromTok, row := range course {
		from, err := currency.Canonicalize(fromTok)
		if err != nil {
			return nil, fmt.Errorf("course: %w", err)
		}
		rates[from] = make(map[currency.Code]decimal.Decimal, len(row))
		for toTok, val := range row {
			to, err := currency.Canonicalize(toTok)
			if err != nil {
				return nil, fmt.Errorf("course: %w", err)
			}
			rate, err := decimal.NewFromString(val)
			if err != nil {
				return nil, fmt.Errorf("course: parsing rate %s->%s %q: %w", from, to, val, err)
			}
			rates[from][to] = rate
		}
	}
	return rates, nil
}

func convertEntries(raw []rawEntry, conv *currency.Converter, operating currency.Code) ([]model.CategoryEntry, error) {
	var entries []model.CategoryEntry
	for _, re := range raw {
		entry, err := parseEntry(re)
		if err != nil {
			return nil, err
		}
		entry.Amount, err = conv.Convert(entry.Amount, entry.Currency, operating)
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", re.Purpose, err)
		}
		entry.Currency = operating
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseEntry(re rawEntry) (model.CategoryEntry, error) {
	code, err := currency.Canonicalize(re.Currency)
	if err != nil {
		return model.CategoryEntry{}, fmt.Errorf("entry %q: %w", re.Purpose, err)
	}
	amount, err := decimal.NewFromString(re.Amount)
	if err != nil {
		return model.CategoryEntry{}, fmt.Errorf("entry %q: parsing amount %q: %w", re.Purpose, re.Amount, err)
	}
	return model.CategoryEntry{
		Purpose:  re.Purpose,
		Role:     model.Role(re.Role),
		Amount:   amount,
		Currency: code,
		DueDay:   re.DueDay,
	}, nil
}

// derive computes the per-role sums, the planned per-purpose expense
// totals, and the category whitelist. Roles are the distinct non-blank
// role values across all three sections, in first-appearance order.
func (p *Plan) derive() {
	p.expensesByRole = make(map[model.Role]decimal.Decimal)
	p.incomesByRole = make(map[model.Role]decimal.Decimal)
	p.pocketByRole = make(map[model.Role]decimal.Decimal)
	p.debtByRole = make(map[model.Role]decimal.Decimal)
	p.plannedByPurpose = make(map[string]decimal.Decimal)

	seen := make(map[model.Role]bool)
	for _, entry := range p.allEntries() {
		if entry.Role == "" || seen[entry.Role] {
			continue
		}
		seen[entry.Role] = true
		p.roles = append(p.roles, entry.Role)
	}

	sumByRole := func(entries []model.CategoryEntry, into map[model.Role]decimal.Decimal) {
		for _, role := range p.roles {
			into[role] = decimal.Zero
		}
		for _, entry := range entries {
			if entry.Role == "" {
				continue
			}
			into[entry.Role] = into[entry.Role].Add(entry.Amount)
		}
	}
	sumByRole(p.expenses, p.expensesByRole)
	sumByRole(p.incomes, p.incomesByRole)
	sumByRole(p.pocketMoney, p.pocketByRole)

	for _, role := range p.roles {
		p.debtByRole[role] = p.incomesByRole[role].
			Sub(p.expensesByRole[role]).
			Sub(p.pocketByRole[role])
	}

	seenPurpose := make(map[string]bool)
	for _, entry := range p.expenses {
		purpose := strings.ToLower(entry.Purpose)
		p.plannedByPurpose[purpose] = p.plannedByPurpose[purpose].Add(entry.Amount)
		if !seenPurpose[purpose] {
			seenPurpose[purpose] = true
			p.purposes = append(p.purposes, purpose)
		}
	}
}

func (p *Plan) allEntries() []model.CategoryEntry {
	all := make([]model.CategoryEntry, 0, len(p.expenses)+len(p.incomes)+len(p.pocketMoney))
	all = append(all, p.expenses...)
	all = append(all, p.incomes...)
	all = append(all, p.pocketMoney...)
	return all
}

// Converter returns the converter built from the plan's rate table.
func (p *Plan) Converter() *currency.Converter {
	return p.conv
}

// Operating returns the currency every cached amount was converted to.
func (p *Plan) Operating() currency.Code {
	return p.operating
}

// Roles returns the household members declared anywhere in the plan.
func (p *Plan) Roles() []model.Role {
	return p.roles
}

// ExpensePurposes returns the declared expense categories, lowercased, in
// first-appearance order.
func (p *Plan) ExpensePurposes() []string {
	return p.purposes
}

// DebtByRole returns each member's planned debt:
// income - expenses - pocket money, in the operating currency.
func (p *Plan) DebtByRole() map[model.Role]decimal.Decimal {
	return p.debtByRole
}

// IncomesByRole returns each member's planned income sum.
func (p *Plan) IncomesByRole() map[model.Role]decimal.Decimal {
	return p.incomesByRole
}

// ExpensesByRole returns each member's planned expense sum.
func (p *Plan) ExpensesByRole() map[model.Role]decimal.Decimal {
	return p.expensesByRole
}

// PocketMoneyByRole returns each member's planned pocket-money sum.
func (p *Plan) PocketMoneyByRole() map[model.Role]decimal.Decimal {
	return p.pocketByRole
}

// PlannedExpensesByPurpose returns the planned expense total per lowercased
// purpose, in the operating currency.
func (p *Plan) PlannedExpensesByPurpose() map[string]decimal.Decimal {
	return p.plannedByPurpose
}
