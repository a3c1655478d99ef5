package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the purposes a purchase may be recorded under",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := loadEngine(cmd)
			if err != nil {
				return err
			}

			for _, purpose := range engine.Categories() {
				fmt.Println(purpose)
			}
			return nil
		},
	}
}
