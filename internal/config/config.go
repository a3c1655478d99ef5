package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"
)

// Config represents the grossbook.yaml runtime configuration. Environment
// variables override file values.
type Config struct {
	// LedgerPath is the grossbook CSV file.
	LedgerPath string `yaml:"ledger" env:"GROSSBOOK_LEDGER"`
	// BudgetPath is the budget plan file.
	BudgetPath string `yaml:"budget" env:"GROSSBOOK_BUDGET"`
	// OperatingCurrency is the currency debts are settled in.
	OperatingCurrency string `yaml:"operating_currency" env:"GROSSBOOK_CURRENCY"`
	// ReportCurrency is the currency of the pocket-money and groceries
	// summaries.
	ReportCurrency string `yaml:"report_currency" env:"GROSSBOOK_REPORT_CURRENCY"`
	// RemindCron schedules the daily payment reminder in watch mode.
	RemindCron string `yaml:"remind_cron" env:"GROSSBOOK_REMIND_CRON"`
}

// Default returns a Config with sensible defaults for a new household.
func Default() *Config {
	return &Config{
		LedgerPath:        "grossbook.csv",
		BudgetPath:        "budget.yaml",
		OperatingCurrency: "rub",
		ReportCurrency:    "eur",
		RemindCron:        "0 0 10 * * *",
	}
}

// Load reads a grossbook.yaml file from disk and applies environment
// overrides on top of it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("applying env overrides: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
