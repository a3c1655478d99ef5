package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/settlement"
)

func newRemindCommand() *cobra.Command {
	var day int

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "List planned payments falling due on a day of month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			if day == 0 {
				day = time.Now().Day()
			}
			return runRemind(engine, day)
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "day of month (defaults to today)")

	return cmd
}

func runRemind(engine *settlement.Engine, day int) error {
	payments, err := engine.ScheduledReminderPayments(day)
	if err != nil {
		return err
	}
	if len(payments) == 0 {
		return nil
	}

	for _, entry := range payments {
		fmt.Printf("%-16s %-10s %12s %s\n",
			entry.Purpose, entry.Role, entry.Amount.StringFixed(2), entry.Currency)
	}
	return nil
}
