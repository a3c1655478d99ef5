package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/budget"
	"github.com/grossbook-dev/grossbook/internal/config"
	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/ledger"
	"github.com/grossbook-dev/grossbook/internal/settlement"
)

// loadEngine wires the grossbook store, the budget plan and the settlement
// engine from the configuration file named by the command's --config flag.
func loadEngine(cmd *cobra.Command) (*settlement.Engine, *config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	operating, err := currency.Canonicalize(cfg.OperatingCurrency)
	if err != nil {
		return nil, nil, fmt.Errorf("operating_currency: %w", err)
	}

	plan, err := budget.Load(cfg.BudgetPath, operating)
	if err != nil {
		return nil, nil, fmt.Errorf("loading budget plan: %w", err)
	}

	book := ledger.NewStore(cfg.LedgerPath)
	return settlement.NewEngine(book, plan, operating), cfg, nil
}

// reportCurrency resolves the configured pocket-money/groceries report
// currency.
func reportCurrency(cfg *config.Config) (currency.Code, error) {
	code, err := currency.Canonicalize(cfg.ReportCurrency)
	if err != nil {
		return "", fmt.Errorf("report_currency: %w", err)
	}
	return code, nil
}
