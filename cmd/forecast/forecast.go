// Package forecast provides the forecast workbook generator command.
package forecast

import (
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/prompt"
	"github.com/klytics/finrep/internal/workflow"
)

// NewCommand returns the forecast subcommand.
func NewCommand() *cobra.Command {
	var version string
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Regenerate per-sub-owner forecast workbooks",
		Long: `Regenerate one forecast workbook per sub-owner from the statements
source: the expense block pivots net balances by month, the headcount
block pivots distinct employees by month, and the template's summary
formula columns are extended down the data rows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			v, err := prompt.Resolve(version, "forecasting version (e.g. '6+6', 'Q3')")
			if err != nil {
				return err
			}
			return workflow.NewEnv(cfg).Forecast(cmd.Context(), v)
		},
	}
	cmd.Flags().StringVar(&version, "version-label", "", "Forecast version used in the output names (prompted when omitted)")
	return cmd
}
