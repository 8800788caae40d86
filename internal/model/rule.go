package model

import (
	"fmt"
	"strings"
)

// MatchedLabelColumn is the annotation column added to every output row when
// rules are not grouped by attribute.
const MatchedLabelColumn = "matched_label"

// Rule represents one pattern-to-label mapping from the rules table.
// A rule matches a row when any of its patterns matches the row's
// description; rules are evaluated in input order.
type Rule struct {
	Attribute string   // optional output-column grouping; empty means MatchedLabelColumn
	Label     string   // value assigned on match
	Patterns  []string // alternatives; any one matching is enough
	Regex     bool     // patterns are regular expressions rather than substrings
	Line      int      // 1-based position within the rules source, for error reporting
}

// Validate ensures the rule has enough data to match anything.
func (r *Rule) Validate() error {
	if r.Label == "" {
		return fmt.Errorf("rule at line %d: label is required", r.Line)
	}
	if len(r.Patterns) == 0 {
		return fmt.Errorf("rule %q at line %d: at least one pattern is required", r.Label, r.Line)
	}
	for _, p := range r.Patterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("rule %q at line %d: empty pattern", r.Label, r.Line)
		}
	}
	return nil
}

// Column returns the output column this rule writes to.
func (r *Rule) Column() string {
	if r.Attribute != "" {
		return r.Attribute
	}
	return MatchedLabelColumn
}

// SplitPatterns parses a comma-separated pattern list as found in the rules
// spreadsheet, trimming whitespace and dropping empty entries.
func SplitPatterns(s string) []string {
	parts := strings.Split(s, ",")
	patterns := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}
