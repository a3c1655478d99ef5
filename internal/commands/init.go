package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/config"
	"github.com/grossbook-dev/grossbook/internal/ledger"
)

// starterBudget is the budget.yaml scaffold written by init. Amounts are
// strings so the decimal parser owns precision.
const starterBudget = `course:
  rub: {rub: "1", usd: "0.011", eur: "0.01"}
  usd: {rub: "92", usd: "1", eur: "0.92"}
  eur: {rub: "99", usd: "1.09", eur: "1"}
expenses:
  - {purpose: rent, role: alice, amount: "700", currency: eur, due_day: 1}
  - {purpose: groceries, role: bob, amount: "400", currency: eur}
  - {purpose: communal, role: alice, amount: "120", currency: eur, due_day: 10}
incomes:
  - {purpose: salary, role: alice, amount: "2000", currency: eur}
  - {purpose: salary, role: bob, amount: "1800", currency: eur}
pocket_money:
  - {purpose: pocket, role: alice, amount: "200", currency: eur}
  - {purpose: pocket, role: bob, amount: "200", currency: eur}
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new grossbook household",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir)
		},
	}

	return cmd
}

func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	// Write grossbook.yaml.
	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, "grossbook.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the starter budget plan.
	if err := os.WriteFile(filepath.Join(dir, cfg.BudgetPath), []byte(starterBudget), 0o644); err != nil {
		return fmt.Errorf("writing budget plan: %w", err)
	}

	// Write an empty grossbook with its header row.
	if err := os.WriteFile(filepath.Join(dir, cfg.LedgerPath), []byte(ledger.Header+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing grossbook: %w", err)
	}

	fmt.Printf("Initialized grossbook household in %s\n", dir)
	return nil
}
