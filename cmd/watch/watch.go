// Package watch provides the landing-folder watcher command.
package watch

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/prompt"
	"github.com/klytics/finrep/internal/watch"
	"github.com/klytics/finrep/internal/workflow"
)

// NewCommand returns the watch subcommand.
func NewCommand() *cobra.Command {
	var (
		period     string
		debounceMs int
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-run the sales consolidation when new extracts land",
		Long: `Watch the sales input folder and re-run the consolidation whenever a
new .xlsx extract settles there. Events are debounced so a file still
being copied is processed once. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			inDir, err := cfg.Path("salesDataActual")
			if err != nil {
				return err
			}
			p, err := prompt.Resolve(period, "period (e.g. '2023-12')")
			if err != nil {
				return err
			}

			env := workflow.NewEnv(cfg)
			w, err := watch.New(inDir, nil, time.Duration(debounceMs)*time.Millisecond)
			if err != nil {
				return err
			}
			w.Handler = func(path string) error {
				return env.Sales(p)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return w.Start(ctx)
		},
	}
	cmd.Flags().StringVar(&period, "period", "", "Reporting period for the re-runs (prompted when omitted)")
	cmd.Flags().IntVar(&debounceMs, "debounce", 2000, "Milliseconds to wait for a dropped file to settle")
	return cmd
}
