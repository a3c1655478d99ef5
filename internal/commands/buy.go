package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/grossbook-dev/grossbook/internal/model"
	"github.com/grossbook-dev/grossbook/internal/settlement"
)

func newBuyCommand() *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "buy [message]",
		Short: "Record a purchase from a multi-line message",
		Long: `Record a purchase. The message has the shape:

  #purpose
  description
  +-amount currency

and is read from the arguments (joined by newlines) or, with no
arguments, from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			var rawText string
			if len(args) > 0 {
				rawText = strings.Join(args, "\n")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("reading message: %w", err)
				}
				rawText = string(data)
			}

			return runBuy(engine, rawText, model.Role(role), time.Now())
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "household member recording the purchase (required)")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func runBuy(engine *settlement.Engine, rawText string, role model.Role, now time.Time) error {
	rec, err := engine.RecordPurchase(rawText, role, now)
	if verr, ok := settlement.AsValidation(err); ok {
		// User input rejection, not a failure of the tool.
		fmt.Printf("buy rejected: %s\n", verr.Detail)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("buy ok: %s %s %s\n", rec.Purpose, rec.Amount, rec.Currency)
	return nil
}
