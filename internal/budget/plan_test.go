package budget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/model"
)

const testPlan = `course:
  usd: {usd: "1", eur: "0.5"}
  eur: {usd: "2", eur: "1"}
expenses:
  - {purpose: Rent, role: alice, amount: "700", currency: usd, due_day: 1}
  - {purpose: groceries, role: bob, amount: "200", currency: eur}
  - {purpose: communal, role: "", amount: "50", currency: usd, due_day: 10}
incomes:
  - {purpose: salary, role: alice, amount: "2000", currency: usd}
  - {purpose: salary, role: bob, amount: "900", currency: eur}
pocket_money:
  - {purpose: pocket, role: alice, amount: "200", currency: usd}
  - {purpose: pocket, role: bob, amount: "100", currency: eur}
`

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func writePlan(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "budget.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	plan, err := Load(writePlan(t, testPlan), currency.USD)
	require.NoError(t, err)

	assert.Equal(t, currency.USD, plan.Operating())

	// Blank roles are excluded.
	assert.Equal(t, []model.Role{"alice", "bob"}, plan.Roles())

	// Every amount converted to usd at load: bob's eur entries double.
	assert.True(t, plan.ExpensesByRole()["alice"].Equal(dec("700")))
	assert.True(t, plan.ExpensesByRole()["bob"].Equal(dec("400")))
	assert.True(t, plan.IncomesByRole()["alice"].Equal(dec("2000")))
	assert.True(t, plan.IncomesByRole()["bob"].Equal(dec("1800")))
	assert.True(t, plan.PocketMoneyByRole()["alice"].Equal(dec("200")))
	assert.True(t, plan.PocketMoneyByRole()["bob"].Equal(dec("200")))

	// debt = income - expenses - pocket money.
	assert.True(t, plan.DebtByRole()["alice"].Equal(dec("1100")))
	assert.True(t, plan.DebtByRole()["bob"].Equal(dec("1200")))
}

func TestLoadPlannedExpensesByPurpose(t *testing.T) {
	plan, err := Load(writePlan(t, testPlan), currency.USD)
	require.NoError(t, err)

	// Purposes are lowercased; amounts are in the operating currency.
	planned := plan.PlannedExpensesByPurpose()
	require.Len(t, planned, 3)
	assert.True(t, planned["rent"].Equal(dec("700")))
	assert.True(t, planned["groceries"].Equal(dec("400")))
	assert.True(t, planned["communal"].Equal(dec("50")))

	assert.Equal(t, []string{"rent", "groceries", "communal"}, plan.ExpensePurposes())
}

func TestLoadUnknownCurrencyFatal(t *testing.T) {
	bad := `course:
  usd: {usd: "1"}
expenses:
  - {purpose: rent, role: alice, amount: "700", currency: doubloons}
`
	_, err := Load(writePlan(t, bad), currency.USD)
	require.Error(t, err)
	assert.ErrorIs(t, err, currency.ErrUnknownCurrency)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"), currency.USD)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScheduledPaymentsForDay(t *testing.T) {
	plan, err := Load(writePlan(t, testPlan), currency.USD)
	require.NoError(t, err)

	due, err := plan.ScheduledPaymentsForDay(1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Rent", due[0].Purpose)
	// Scheduled payments are raw entries, not converted copies.
	assert.True(t, due[0].Amount.Equal(dec("700")))
	assert.Equal(t, currency.USD, due[0].Currency)

	due, err = plan.ScheduledPaymentsForDay(15)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestScheduledPaymentsRereadsFile(t *testing.T) {
	path := writePlan(t, testPlan)
	plan, err := Load(path, currency.USD)
	require.NoError(t, err)

	// Edit the plan after load; the reminder must see the edit while the
	// cached aggregates stay fixed.
	edited := `course:
  usd: {usd: "1"}
expenses:
  - {purpose: internet, role: bob, amount: "30", currency: usd, due_day: 15}
incomes: []
pocket_money: []
`
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	due, err := plan.ScheduledPaymentsForDay(15)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "internet", due[0].Purpose)

	assert.True(t, plan.ExpensesByRole()["bob"].Equal(dec("400")))
}

func TestScheduledPaymentsUnavailable(t *testing.T) {
	path := writePlan(t, testPlan)
	plan, err := Load(path, currency.USD)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))

	_, err = plan.ScheduledPaymentsForDay(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigUnavailable)
}
