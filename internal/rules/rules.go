// Package rules holds the per-workflow normalization rule bundles:
// replacement maps, strip chains, column type rules, canonical
// vocabularies and account-prefix predicates. Each workflow ships a
// compiled-in default bundle; a YAML file can override it.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/klytics/finrep/internal/table"
)

// PrefixFilter is an account-code prefix predicate with explicit polarity.
// The sales consolidation keeps prefix "70"; the forecast drops prefix
// "62". The polarity is part of the rule, never a default.
type PrefixFilter struct {
	Column  string `yaml:"column"`
	Prefix  string `yaml:"prefix"`
	Exclude bool   `yaml:"exclude"`
}

// Apply runs the predicate over a table.
func (p PrefixFilter) Apply(t *table.Table) *table.Table {
	if p.Exclude {
		return table.DropPrefix(t, p.Column, p.Prefix)
	}
	return table.KeepPrefix(t, p.Column, p.Prefix)
}

// Bundle is one workflow's rule set.
type Bundle struct {
	Replacements []table.Replacement `yaml:"replacements"`
	Strips       []table.Strip       `yaml:"strips"`
	Types        []table.TypeRule    `yaml:"types"`
	// Vocabularies maps a dimension name to its explicit sort precedence
	// list; values outside the list sort lexicographically after it.
	Vocabularies map[string][]string `yaml:"vocabularies"`
	Prefixes     []PrefixFilter      `yaml:"prefixes"`
	// DropColumns lists columns discarded from the workflow's output.
	DropColumns []string `yaml:"drop_columns"`
	// Sets holds named value lists used by workflow filters (exclusion
	// sets, contract-template lists).
	Sets map[string][]string `yaml:"sets"`
}

// Load reads a bundle from a YAML file and validates it.
func Load(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("rules file not found: %s — check that the path is correct", path)
		}
		return nil, fmt.Errorf("could not read rules file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses a bundle from YAML bytes and validates it.
func Parse(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("invalid rules YAML: %w", err)
	}
	if err := b.validate(); err != nil {
		return nil, err
	}
	b.resolveKinds()
	return &b, nil
}

func (b *Bundle) validate() error {
	for i, r := range b.Replacements {
		if r.Column == "" {
			return fmt.Errorf("replacement %d is missing a 'column' field", i+1)
		}
		if len(r.Values) == 0 {
			return fmt.Errorf("replacement for column %q has no values", r.Column)
		}
	}
	for i, s := range b.Strips {
		if s.Column == "" {
			return fmt.Errorf("strip %d is missing a 'column' field", i+1)
		}
	}
	for i, tr := range b.Types {
		if tr.Column == "" {
			return fmt.Errorf("type rule %d is missing a 'column' field", i+1)
		}
	}
	for i, p := range b.Prefixes {
		if p.Column == "" || p.Prefix == "" {
			return fmt.Errorf("prefix filter %d needs both 'column' and 'prefix'", i+1)
		}
	}
	return nil
}

// resolveKinds maps YAML kind names onto table kinds after parsing.
func (b *Bundle) resolveKinds() {
	for i := range b.Types {
		b.Types[i].Kind = table.KindFromName(b.Types[i].KindName)
	}
}

// Normalize applies the bundle's type, replacement and strip rules to a
// table in place, in that order. Applying the same bundle twice is a no-op.
func (b *Bundle) Normalize(t *table.Table) {
	table.ApplyTypes(t, b.Types)
	table.ApplyReplacements(t, b.Replacements)
	table.ApplyStrips(t, b.Strips)
}

// Vocabulary returns a dimension's priority list, or nil when undeclared.
func (b *Bundle) Vocabulary(dim string) []string {
	if b == nil || b.Vocabularies == nil {
		return nil
	}
	return b.Vocabularies[dim]
}

// Set returns a named value list, or nil when undeclared.
func (b *Bundle) Set(name string) []string {
	if b == nil || b.Sets == nil {
		return nil
	}
	return b.Sets[name]
}

// ForWorkflow returns the workflow's rule bundle: the YAML override at
// path when given, otherwise the compiled-in defaults.
func ForWorkflow(workflow, path string) (*Bundle, error) {
	if path != "" {
		return Load(path)
	}
	switch workflow {
	case "expense":
		return ExpenseDefaults(), nil
	case "sales":
		return SalesDefaults(), nil
	case "forecast":
		return ForecastDefaults(), nil
	case "clients":
		return ClientsDefaults(), nil
	}
	return nil, fmt.Errorf("no rule bundle for workflow %q", workflow)
}
