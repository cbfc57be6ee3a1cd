// Package recalc models the external spreadsheet-recalculation service.
// The host application owns formula evaluation; this package only hands a
// persisted artifact over and waits for completion. A recalculation
// failure is never fatal to the overall run.
package recalc

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Service recomputes all dependent/formula cells of the workbook at path,
// in place, and persists the file. It may take several seconds; callers
// must not assume formula-derived cells are consistent until it returns.
type Service interface {
	Recalculate(ctx context.Context, path string) error
}

// Noop satisfies Service without touching the file. Used when no
// recalculation command is configured and in tests.
type Noop struct{}

// Recalculate does nothing.
func (Noop) Recalculate(context.Context, string) error { return nil }

// CommandService invokes a configured external command per artifact. The
// literal {path} in any argument is replaced with the artifact path. Each
// invocation is independent: no handle is shared across partitions, so a
// failure on one artifact cannot corrupt another.
type CommandService struct {
	Command string
	Args    []string
	Timeout time.Duration
}

// Recalculate runs the command and waits for it to exit, bounded by the
// service timeout.
func (s CommandService) Recalculate(ctx context.Context, path string) error {
	if s.Command == "" {
		return fmt.Errorf("no recalculation command configured")
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := ExpandArgs(s.Args, path)
	cmd := exec.CommandContext(ctx, s.Command, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("recalculation of %s failed: %w: %s", path, err, msg)
		}
		return fmt.Errorf("recalculation of %s failed: %w", path, err)
	}
	return nil
}

// ExpandArgs substitutes the {path} placeholder in each argument. An
// argument list without the placeholder gets the path appended.
func ExpandArgs(args []string, path string) []string {
	out := make([]string, len(args))
	found := false
	for i, a := range args {
		if strings.Contains(a, "{path}") {
			found = true
			out[i] = strings.ReplaceAll(a, "{path}", path)
		} else {
			out[i] = a
		}
	}
	if !found {
		out = append(out, path)
	}
	return out
}
