package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "grossbook.csv", cfg.LedgerPath)
	assert.Equal(t, "budget.yaml", cfg.BudgetPath)
	assert.Equal(t, "rub", cfg.OperatingCurrency)
	assert.Equal(t, "eur", cfg.ReportCurrency)
	assert.Equal(t, "0 0 10 * * *", cfg.RemindCron)
}

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.LedgerPath = "/data/grossbook.csv"
	cfg.OperatingCurrency = "eur"

	path := filepath.Join(t.TempDir(), "grossbook.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.LedgerPath, got.LedgerPath)
	assert.Equal(t, cfg.BudgetPath, got.BudgetPath)
	assert.Equal(t, cfg.OperatingCurrency, got.OperatingCurrency)
	assert.Equal(t, cfg.ReportCurrency, got.ReportCurrency)
	assert.Equal(t, cfg.RemindCron, got.RemindCron)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grossbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger: book.csv\n"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "book.csv", got.LedgerPath)
	assert.Equal(t, "budget.yaml", got.BudgetPath)
	assert.Equal(t, "rub", got.OperatingCurrency)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grossbook.yaml")
	require.NoError(t, Save(path, Default()))

	t.Setenv("GROSSBOOK_CURRENCY", "usd")
	t.Setenv("GROSSBOOK_LEDGER", "/mnt/ledger.csv")

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "usd", got.OperatingCurrency)
	assert.Equal(t, "/mnt/ledger.csv", got.LedgerPath)
	assert.Equal(t, "budget.yaml", got.BudgetPath)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
