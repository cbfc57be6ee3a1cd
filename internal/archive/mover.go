// Package archive moves a prior run's generated artifacts out of the
// working folder before a new cycle starts, so stale same-named outputs
// can never be confused with the current run's.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MoveOutputs moves every eligible output file from workDir to archiveDir,
// excluding exactly the template's file name. Returns how many files moved;
// zero moved is a normal outcome, not an error. A single file that fails to
// move is logged and skipped.
func MoveOutputs(workDir, archiveDir, templateName string, extensions []string) (int, error) {
	if len(extensions) == 0 {
		extensions = []string{".xlsx"}
	}
	allow := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		allow[strings.ToLower(e)] = true
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return 0, fmt.Errorf("could not read working folder %s: %w", workDir, err)
	}
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return 0, fmt.Errorf("could not create archive folder %s: %w", archiveDir, err)
	}

	moved := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !allow[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		if templateName != "" && name == templateName {
			continue
		}
		src := filepath.Join(workDir, name)
		dst := filepath.Join(archiveDir, name)
		if err := os.Rename(src, dst); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not archive %s: %v\n", name, err)
			continue
		}
		moved++
	}
	return moved, nil
}
