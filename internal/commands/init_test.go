package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grossbook-dev/grossbook/internal/budget"
	"github.com/grossbook-dev/grossbook/internal/config"
	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/ledger"
	"github.com/grossbook-dev/grossbook/internal/model"
	"github.com/grossbook-dev/grossbook/internal/settlement"
)

func TestInitScaffold(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	cfg, err := config.Load(filepath.Join(dir, "grossbook.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "grossbook.csv", cfg.LedgerPath)

	// The scaffolded grossbook is a bare header.
	data, err := os.ReadFile(filepath.Join(dir, cfg.LedgerPath))
	require.NoError(t, err)
	assert.Equal(t, ledger.Header+"\n", string(data))

	// The starter budget plan loads in every supported currency.
	for _, code := range []currency.Code{currency.USD, currency.EUR, currency.RUB} {
		plan, err := budget.Load(filepath.Join(dir, cfg.BudgetPath), code)
		require.NoError(t, err, "operating currency %s", code)
		assert.Equal(t, []model.Role{"alice", "bob"}, plan.Roles())
	}
}

func TestInitScaffoldUsable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	plan, err := budget.Load(filepath.Join(dir, "budget.yaml"), currency.EUR)
	require.NoError(t, err)

	book := ledger.NewStore(filepath.Join(dir, "grossbook.csv"))
	engine := settlement.NewEngine(book, plan, currency.EUR)

	now := time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC)
	require.NoError(t, runBuy(engine, "#groceries\nmilk\n-10 €", "alice", now))

	hasData, rows, err := book.QueryGroceries("01.06.2024")
	require.NoError(t, err)
	assert.True(t, hasData)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Role("alice"), rows[0].Role)

	categories := engine.Categories()
	assert.Contains(t, categories, model.PurposePocketMoney)
	assert.Contains(t, categories, model.PurposeTargets)
	assert.True(t, strings.Contains(strings.Join(categories, " "), "groceries"))
}

func TestRunBuyRejectionIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(dir))

	plan, err := budget.Load(filepath.Join(dir, "budget.yaml"), currency.EUR)
	require.NoError(t, err)
	engine := settlement.NewEngine(ledger.NewStore(filepath.Join(dir, "grossbook.csv")), plan, currency.EUR)

	// A rejected message reports back to the submitter, it does not fail
	// the command.
	err = runBuy(engine, "#nonsense\nitem\n5usd", "alice", time.Now())
	require.NoError(t, err)
}
