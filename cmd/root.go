// Package cmd contains all CLI commands for the finrep binary.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/cmd/clients"
	"github.com/klytics/finrep/cmd/completion"
	cmdconfig "github.com/klytics/finrep/cmd/config"
	"github.com/klytics/finrep/cmd/expense"
	"github.com/klytics/finrep/cmd/forecast"
	"github.com/klytics/finrep/cmd/sales"
	"github.com/klytics/finrep/cmd/version"
	cmdwatch "github.com/klytics/finrep/cmd/watch"
)

var (
	configPath string
	jsonOutput bool
	verbose    bool
	noColor    bool
)

// NewRootCommand creates and returns the root cobra command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finrep",
		Short: "Recurring financial-reporting workflows from the terminal",
		Long: `finrep — recurring financial reporting, automated.

Splits the master expense ledger by owner, consolidates per-company sales
extracts into a period report, regenerates per-department forecast
workbooks and rebuilds the client-status/alerts workbook, all from fixed
.xlsx templates.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to finrep.yaml (default: ./finrep.yaml, ~/.finrep/finrep.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as machine-readable JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")

	// Register subcommands
	rootCmd.AddCommand(expense.NewCommand())
	rootCmd.AddCommand(sales.NewCommand())
	rootCmd.AddCommand(forecast.NewCommand())
	rootCmd.AddCommand(clients.NewCommand())
	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(cmdconfig.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))
	rootCmd.AddCommand(version.NewCommand())

	return rootCmd
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
