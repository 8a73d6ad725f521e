package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xkilldash9x/climarisk-cli/internal/scenarios"
)

// newScenariosCmd lists the named scenario bundles risks are evaluated under.
func newScenariosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "Lists the predefined climate scenario bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range scenarios.Names() {
				s, _ := scenarios.Get(name)
				fmt.Fprintf(out, "%s\n", name)
				fmt.Fprintf(out, "  temperature increase: %.1f°C, carbon price: $%.0f/ton\n", s.TempIncrease, s.CarbonPrice)
				fmt.Fprintf(out, "  renewables: %.0f%%, policy stringency: %.0f%%, financial stability: %.0f%%\n",
					s.RenewableEnergy*100, s.PolicyStringency*100, s.FinancialStability*100)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newScenariosCmd())
}
