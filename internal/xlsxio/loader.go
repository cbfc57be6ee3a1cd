// Package xlsxio loads spreadsheet-shaped data into tables and writes
// tables back out as workbooks.
package xlsxio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/klytics/finrep/internal/table"
)

// ErrNoData is returned when a folder scan yields zero readable tables.
// Workflows treat it as a batch-empty condition: abort the workflow, not
// the process.
var ErrNoData = fmt.Errorf("no input data")

// FolderOptions configures a folder load.
type FolderOptions struct {
	// Extensions is the allow-list; defaults to .xlsx only.
	Extensions []string
	// Provenance names the derived column tagged onto every row from the
	// source file name. Empty disables tagging.
	Provenance string
	// Delimiter splits the file name (extension stripped) into segments.
	Delimiter string
	// MinSegments is the minimum segment count for the name to carry a
	// provenance value; shorter names get Sentinel.
	MinSegments int
	// Sentinel is used when the name has too few segments. Defaults to
	// "UNKNOWN".
	Sentinel string
}

// LoadFile reads the first sheet of a workbook into a Text-typed table.
// The first row is the header; missing trailing cells are nil.
func LoadFile(path string) (*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %s — is this a valid .xlsx file? %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", path)
	}
	return LoadSheet(f, sheets[0])
}

// LoadSheet reads one sheet of an open workbook into a Text-typed table.
func LoadSheet(f *excelize.File, sheet string) (*table.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return table.New(), nil
	}

	t := table.New(rows[0]...)
	for _, row := range rows[1:] {
		cells := make([]any, len(t.Columns))
		for i := range cells {
			if i < len(row) && row[i] != "" {
				cells[i] = row[i]
			}
		}
		t.AppendRow(cells)
	}
	return t, nil
}

// LoadFolder enumerates eligible workbooks in dir, reads each independently,
// and tags every row with a provenance value derived from the file name.
// One unreadable file is logged and skipped; zero loaded tables returns
// ErrNoData.
func LoadFolder(dir string, opts FolderOptions) ([]*table.Table, error) {
	exts := opts.Extensions
	if len(exts) == 0 {
		exts = []string{".xlsx"}
	}
	allow := make(map[string]bool, len(exts))
	for _, e := range exts {
		allow[strings.ToLower(e)] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read input folder %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if Hidden(name) {
			continue
		}
		if !allow[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var tables []*table.Table
	for _, name := range names {
		t, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", name, err)
			continue
		}
		if opts.Provenance != "" {
			tag := Provenance(name, opts)
			i := t.AddColumn(opts.Provenance, table.Text)
			for _, row := range t.Rows {
				row[i] = tag
			}
		}
		tables = append(tables, t)
	}
	if len(tables) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoData, dir)
	}
	return tables, nil
}

// Hidden reports whether a file name is treated as hidden: dot-prefixed
// names and Office owner lock files (~$...).
func Hidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$")
}

// Provenance derives the provenance value from a file name: strip the
// extension, split on the delimiter, and take the last segment when the
// name has at least MinSegments segments; otherwise the sentinel.
func Provenance(name string, opts FolderOptions) string {
	sentinel := opts.Sentinel
	if sentinel == "" {
		sentinel = "UNKNOWN"
	}
	delim := opts.Delimiter
	if delim == "" {
		delim = "-"
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(base, delim)
	if len(parts) < opts.MinSegments {
		return sentinel
	}
	return parts[len(parts)-1]
}
