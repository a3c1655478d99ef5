package commands

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/config"
	"github.com/grossbook-dev/grossbook/internal/currency"
	"github.com/grossbook-dev/grossbook/internal/model"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Monthly and daily settlement reports",
	}
	reportCmd.AddCommand(newReportDutyCommand())
	reportCmd.AddCommand(newReportDebtCommand())
	reportCmd.AddCommand(newReportPocketCommand())
	reportCmd.AddCommand(newReportGroceriesCommand())
	reportCmd.AddCommand(newReportDayCommand())
	return reportCmd
}

func newReportDutyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "duty",
		Short: "Remaining duty spending per purpose this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			operating, err := operatingCurrency(cfg)
			if err != nil {
				return err
			}

			hasData, perPurpose, err := engine.MonthlyDutySettlement(time.Now(), operating)
			if err != nil {
				return err
			}
			if !hasData {
				// No duty rows this month; nothing to render.
				return nil
			}

			printAmounts(stringKeys(perPurpose), func(k string) decimal.Decimal { return perPurpose[k] }, operating)
			return nil
		},
	}
}

func newReportDebtCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "debt",
		Short: "Outstanding debt per household member this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			operating, err := operatingCurrency(cfg)
			if err != nil {
				return err
			}

			hasData, perRole, err := engine.MonthlyDebtSettlement(time.Now(), operating)
			if err != nil {
				return err
			}
			if !hasData {
				return nil
			}

			printAmounts(roleKeys(perRole), func(k string) decimal.Decimal { return perRole[model.Role(k)] }, operating)
			return nil
		},
	}
}

func newReportPocketCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pocket",
		Short: "Pocket-money spending per household member this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			cur, err := reportCurrency(cfg)
			if err != nil {
				return err
			}

			hasData, perRole, err := engine.PocketMoneySummary(time.Now(), cur)
			if err != nil {
				return err
			}
			if !hasData {
				return nil
			}

			printAmounts(roleKeys(perRole), func(k string) decimal.Decimal { return perRole[model.Role(k)] }, cur)
			return nil
		},
	}
}

func newReportGroceriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "groceries",
		Short: "Total groceries spending this month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(cmd)
			if err != nil {
				return err
			}
			cur, err := reportCurrency(cfg)
			if err != nil {
				return err
			}

			hasData, total, err := engine.GroceriesSummary(time.Now(), cur)
			if err != nil {
				return err
			}
			if !hasData {
				return nil
			}

			fmt.Printf("Spent on groceries: %s %s\n", total.StringFixed(2), cur)
			return nil
		},
	}
}

func newReportDayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "day",
		Short: "Purchases recorded today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			hasData, rows, err := engine.DailyStatement(time.Now())
			if err != nil {
				return err
			}
			if !hasData {
				return nil
			}

			for _, rec := range rows {
				fmt.Printf("%s  %-16s %10s %s  %s\n",
					rec.Time, rec.Purpose, rec.Amount.StringFixed(2), rec.Currency, rec.Description)
			}
			return nil
		},
	}
}

func operatingCurrency(cfg *config.Config) (currency.Code, error) {
	code, err := currency.Canonicalize(cfg.OperatingCurrency)
	if err != nil {
		return "", fmt.Errorf("operating_currency: %w", err)
	}
	return code, nil
}

func stringKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func roleKeys(m map[model.Role]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

func printAmounts(keys []string, amount func(string) decimal.Decimal, cur currency.Code) {
	for _, k := range keys {
		fmt.Printf("%-16s %12s %s\n", k, amount(k).StringFixed(2), cur)
	}
}
