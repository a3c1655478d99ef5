package commands

import (
	"fmt"
	"time"

	"github.com/robfig/cron"
	"github.com/spf13/cobra"
	"k8s.io/klog"

	"github.com/grossbook-dev/grossbook/internal/settlement"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the daily scheduled-payment reminder job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cfg, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			c := cron.New()
			if err := c.AddFunc(cfg.RemindCron, func() { remindJob(engine) }); err != nil {
				return fmt.Errorf("scheduling reminder: %w", err)
			}
			klog.Infof("reminder scheduled: %s", cfg.RemindCron)
			c.Start()

			select {}
		},
	}
}

func remindJob(engine *settlement.Engine) {
	day := time.Now().Day()
	payments, err := engine.ScheduledReminderPayments(day)
	if err != nil {
		klog.Errorf("reminder job: %v", err)
		return
	}
	if len(payments) == 0 {
		return
	}

	klog.Infof("reminder job: %d payments due on day %d", len(payments), day)
	for _, entry := range payments {
		fmt.Printf("%-16s %-10s %12s %s\n",
			entry.Purpose, entry.Role, entry.Amount.StringFixed(2), entry.Currency)
	}
}
