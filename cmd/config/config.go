// Package config provides CLI commands for configuration management.
package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/output"
)

// NewCommand returns the config command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the finrep configuration",
		Long:  "View and validate the paths, recalculation and run-log settings.",
	}

	cmd.AddCommand(newShowCommand())
	cmd.AddCommand(newValidateCommand())

	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("config show", cfg)
			}

			fmt.Println("Paths:")
			for _, key := range sortedKeys(cfg.Paths) {
				fmt.Printf("  %-26s %s\n", key, cfg.Paths[key])
			}
			if cfg.Recalc.Command != "" {
				fmt.Printf("Recalc: %s (timeout %ds)\n", cfg.Recalc.Command, cfg.Recalc.TimeoutSeconds)
			} else {
				fmt.Println("Recalc: not configured (generated workbooks keep unevaluated formulas)")
			}
			if cfg.RunLog.Enabled {
				fmt.Printf("Run log: %s\n", cfg.RunLog.Path)
			} else {
				fmt.Println("Run log: disabled")
			}
			return nil
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that every configured path exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			problems := 0
			for _, key := range sortedKeys(cfg.Paths) {
				if _, err := os.Stat(cfg.Paths[key]); err != nil {
					color.New(color.FgRed).Printf("  %s: %s does not exist\n", key, cfg.Paths[key])
					problems++
				}
			}
			if problems == 0 {
				color.New(color.FgGreen).Println("Configuration is valid")
				return nil
			}
			return fmt.Errorf("%d configured path(s) do not exist", problems)
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
