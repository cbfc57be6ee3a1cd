// Package workflow wires the reporting pipelines: load, normalize,
// transform, split by key, project into templates, hand off for external
// recalculation. Each workflow is independent and runs to completion; a
// failure on one partition never aborts the others.
package workflow

import (
	"fmt"
	"os"
	"time"

	"github.com/klytics/finrep/internal/config"
	"github.com/klytics/finrep/internal/recalc"
	"github.com/klytics/finrep/internal/rules"
	"github.com/klytics/finrep/internal/runlog"
)

// Env carries the per-run collaborators shared by every workflow.
type Env struct {
	Config *config.Config
	Log    *runlog.Logger
	Recalc recalc.Service
}

// NewEnv builds the run environment from the loaded configuration: the
// run log and the recalculation service (the configured external command,
// or a no-op when none is set).
func NewEnv(cfg *config.Config) *Env {
	var svc recalc.Service = recalc.Noop{}
	if cfg.Recalc.Command != "" {
		svc = recalc.CommandService{
			Command: cfg.Recalc.Command,
			Args:    cfg.Recalc.Args,
			Timeout: time.Duration(cfg.Recalc.TimeoutSeconds) * time.Second,
		}
	}
	return &Env{
		Config: cfg,
		Log:    runlog.New(cfg.RunLog.Path, cfg.RunLog.Enabled),
		Recalc: svc,
	}
}

// bundle resolves a workflow's rule bundle, honoring a configured YAML
// override.
func (e *Env) bundle(workflow string) (*rules.Bundle, error) {
	b, err := rules.ForWorkflow(workflow, e.Config.RulesFile(workflow))
	if err != nil {
		return nil, fmt.Errorf("could not load rules for %s: %w", workflow, err)
	}
	return b, nil
}

func warnf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Warning: "+format+"\n", args...)
}
