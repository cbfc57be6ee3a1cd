package table

import (
	"strconv"
	"strings"
	"time"
)

// TypeRule maps a column to a target kind and coercion policy. Applying a
// rule to an already-coerced column is a no-op.
type TypeRule struct {
	Column string `yaml:"column"`
	Kind   Kind   `yaml:"-"`
	// KindName is the YAML spelling of Kind: text, decimal, date, integer.
	KindName string `yaml:"kind"`
	// MonthEnd projects a parsed date to the last calendar day of its month.
	// This is the canonical period key used for month bucketing.
	MonthEnd bool `yaml:"monthEnd"`
}

// Replacement is an exact-match, column-scoped value substitution map.
// Rules are disjoint in practice, so application order does not matter.
type Replacement struct {
	Column string            `yaml:"column"`
	Values map[string]string `yaml:"values"`
}

// Strip removes each listed substring, in order, from a text column.
type Strip struct {
	Column     string   `yaml:"column"`
	Substrings []string `yaml:"substrings"`
}

// dateLayouts are accepted input date forms, most specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
	"2006/01/02",
	time.RFC3339,
}

// ApplyTypes coerces the rule's columns in place. Non-parseable numeric and
// date cells become nil, never an error. Columns a rule names that are not
// declared are skipped (the caller decides whether that is worth a warning).
func ApplyTypes(t *Table, rules []TypeRule) {
	for _, rule := range rules {
		i := t.ColumnIndex(rule.Column)
		if i < 0 {
			continue
		}
		kind := rule.Kind
		t.Columns[i].Kind = kind
		for _, row := range t.Rows {
			row[i] = coerce(row[i], kind, rule.MonthEnd)
		}
	}
}

func coerce(v any, kind Kind, monthEnd bool) any {
	if v == nil {
		return nil
	}
	switch kind {
	case Decimal:
		switch x := v.(type) {
		case float64:
			return x
		case int64:
			return float64(x)
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil
			}
			return f
		}
		return nil
	case Integer:
		switch x := v.(type) {
		case int64:
			return x
		case float64:
			return int64(x)
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil
			}
			return n
		}
		return nil
	case Date:
		var d time.Time
		switch x := v.(type) {
		case time.Time:
			d = x
		case string:
			parsed, ok := parseDate(strings.TrimSpace(x))
			if !ok {
				return nil
			}
			d = parsed
		default:
			return nil
		}
		if monthEnd {
			d = MonthEnd(d)
		}
		return d
	default:
		return CellText(v)
	}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// MonthEnd returns the last calendar day of d's month.
func MonthEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

// MonthName returns the English month name of a date cell, or "" for a
// cell that is not a date.
func MonthName(v any) string {
	d, ok := v.(time.Time)
	if !ok {
		return ""
	}
	return d.Month().String()
}

// ApplyReplacements substitutes exact matches in place. Returns the number
// of cells changed, so callers can report replacement activity.
func ApplyReplacements(t *Table, rules []Replacement) int {
	changed := 0
	for _, rule := range rules {
		i := t.ColumnIndex(rule.Column)
		if i < 0 {
			continue
		}
		for _, row := range t.Rows {
			s, ok := row[i].(string)
			if !ok {
				continue
			}
			if repl, hit := rule.Values[s]; hit {
				row[i] = repl
				changed++
			}
		}
	}
	return changed
}

// ApplyStrips removes substrings from text cells in place, in rule order.
func ApplyStrips(t *Table, rules []Strip) {
	for _, rule := range rules {
		i := t.ColumnIndex(rule.Column)
		if i < 0 {
			continue
		}
		for _, row := range t.Rows {
			s := CellText(row[i])
			for _, sub := range rule.Substrings {
				s = strings.ReplaceAll(s, sub, "")
			}
			row[i] = s
		}
	}
}

// DeriveDifference adds (or overwrites) a Decimal column holding
// plus − minus per row, with nil operands treated as zero.
func DeriveDifference(t *Table, name, plus, minus string) {
	pi := t.ColumnIndex(plus)
	mi := t.ColumnIndex(minus)
	di := t.ColumnIndex(name)
	if di < 0 {
		di = t.AddColumn(name, Decimal)
	}
	for _, row := range t.Rows {
		var p, m float64
		if pi >= 0 {
			p = CellNumber(row[pi])
		}
		if mi >= 0 {
			m = CellNumber(row[mi])
		}
		row[di] = p - m
	}
}

// KindFromName resolves the YAML spelling of a kind. Unknown names are Text.
func KindFromName(name string) Kind {
	switch strings.ToLower(name) {
	case "decimal", "number", "float":
		return Decimal
	case "date":
		return Date
	case "integer", "int":
		return Integer
	default:
		return Text
	}
}
