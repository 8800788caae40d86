// Package pattern provides rule matching against row description text.
package pattern

import (
	"regexp"
	"strings"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
)

// Options configures how plain (non-regex) patterns are interpreted.
type Options struct {
	// WholeWord restricts plain patterns to whole-word occurrences instead
	// of bare substrings.
	WholeWord bool
}

// Matcher evaluates description text against an ordered rule list. All
// patterns are validated and compiled at construction time; matching itself
// cannot fail.
type Matcher struct {
	rules    []model.Rule
	compiled [][]matchFn
}

// matchFn reports whether a single pattern matches the lowercased description.
type matchFn func(desc string) bool

// NewMatcher validates every rule and pre-compiles its patterns. A pattern
// that fails to compile yields a common.InvalidRuleError before any row is
// processed.
func NewMatcher(rules []model.Rule, opts Options) (*Matcher, error) {
	m := &Matcher{
		rules:    rules,
		compiled: make([][]matchFn, len(rules)),
	}

	for i := range rules {
		rule := &rules[i]
		if err := rule.Validate(); err != nil {
			return nil, &common.InvalidRuleError{Pattern: strings.Join(rule.Patterns, ","), Line: rule.Line, Err: err}
		}

		fns := make([]matchFn, 0, len(rule.Patterns))
		for _, p := range rule.Patterns {
			fn, err := compilePattern(p, rule.Regex, opts)
			if err != nil {
				return nil, &common.InvalidRuleError{Pattern: p, Line: rule.Line, Err: err}
			}
			fns = append(fns, fn)
		}
		m.compiled[i] = fns
	}

	return m, nil
}

// compilePattern builds the match function for one pattern. Plain patterns
// match case-insensitively as substrings, or as whole words when requested.
// Regex patterns compile with case folding enabled.
func compilePattern(p string, isRegex bool, opts Options) (matchFn, error) {
	if isRegex {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}

	if opts.WholeWord {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(p) + `\b`)
		if err != nil {
			return nil, err
		}
		return re.MatchString, nil
	}

	lowered := strings.ToLower(p)
	return func(desc string) bool {
		return strings.Contains(strings.ToLower(desc), lowered)
	}, nil
}

// Rules returns the matcher's rule list in evaluation order.
func (m *Matcher) Rules() []model.Rule {
	return m.rules
}

// First returns the first rule in input order whose patterns match the
// description. The boolean is false when no rule matches.
func (m *Matcher) First(desc string) (model.Rule, bool) {
	for i, rule := range m.rules {
		if m.matches(i, desc) {
			return rule, true
		}
	}
	return model.Rule{}, false
}

// All returns every rule matching the description, in rule order,
// deduplicated by output column and label.
func (m *Matcher) All(desc string) []model.Rule {
	var matches []model.Rule
	seen := make(map[[2]string]bool)

	for i, rule := range m.rules {
		if !m.matches(i, desc) {
			continue
		}
		key := [2]string{rule.Column(), rule.Label}
		if seen[key] {
			continue
		}
		seen[key] = true
		matches = append(matches, rule)
	}

	return matches
}

func (m *Matcher) matches(i int, desc string) bool {
	for _, fn := range m.compiled[i] {
		if fn(desc) {
			return true
		}
	}
	return false
}
