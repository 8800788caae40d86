// Package engine implements batch classification of tabular rows against
// pattern rules.
package engine

import (
	"fmt"
	"time"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
	"github.com/sheetwise/sheetwise/internal/pattern"
)

// Options configures classification behavior.
type Options struct {
	Progress    func(processed int) // called after each batch with the running row count
	BatchSize   int                 // rows held in memory at a time
	AllMatches  bool                // collect every matching label instead of first match wins
	ByAttribute bool                // one output column per rule attribute
	WholeWord   bool                // plain patterns match whole words only
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize: 500,
	}
}

// Summary contains statistics about one classification run.
type Summary struct {
	Rows      int
	Matched   int
	Unmatched int
	Batches   int
	Elapsed   time.Duration
}

// Classifier annotates rows by evaluating their description field against an
// ordered rule list. It is stateless across rows apart from the read-only
// compiled rules, so re-running it over the same input yields identical
// output.
type Classifier struct {
	matcher    *pattern.Matcher
	descColumn string
	annotation []string
	opts       Options
}

// New builds a Classifier. Every rule is validated and compiled up front; a
// bad pattern returns common.InvalidRuleError before any row is touched. An
// empty rule list is legal and leaves every row unmatched.
func New(rules []model.Rule, descColumn string, opts Options) (*Classifier, error) {
	if descColumn == "" {
		return nil, fmt.Errorf("%w: description column is required", common.ErrInvalidConfig)
	}
	if opts.BatchSize <= 0 {
		return nil, fmt.Errorf("%w: batch size must be positive, got %d", common.ErrInvalidConfig, opts.BatchSize)
	}

	matcher, err := pattern.NewMatcher(rules, pattern.Options{WholeWord: opts.WholeWord})
	if err != nil {
		return nil, err
	}

	return &Classifier{
		matcher:    matcher,
		descColumn: descColumn,
		annotation: annotationColumns(rules, opts.ByAttribute),
		opts:       opts,
	}, nil
}

// annotationColumns determines the output columns added by classification:
// the single matched_label column, or one column per rule attribute in
// first-appearance order.
func annotationColumns(rules []model.Rule, byAttribute bool) []string {
	if !byAttribute {
		return []string{model.MatchedLabelColumn}
	}

	var cols []string
	seen := make(map[string]bool)
	for i := range rules {
		col := rules[i].Column()
		if !seen[col] {
			seen[col] = true
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		cols = []string{model.MatchedLabelColumn}
	}
	return cols
}

// AnnotationColumns returns the columns this classifier appends to each row.
func (c *Classifier) AnnotationColumns() []string {
	return c.annotation
}

// OutputColumns returns the full output header: the source header followed by
// any annotation columns it does not already carry.
func (c *Classifier) OutputColumns(source []string) []string {
	out := make([]string, len(source), len(source)+len(c.annotation))
	copy(out, source)

	present := make(map[string]bool, len(source))
	for _, col := range source {
		present[col] = true
	}
	for _, col := range c.annotation {
		if !present[col] {
			out = append(out, col)
		}
	}
	return out
}

// annotate classifies a single row. Annotation values are deterministic: the
// first matching rule's label, or in all-matches mode every matching label
// joined with ", " in rule order.
func (c *Classifier) annotate(row model.Row) (model.AnnotatedRow, error) {
	desc, ok := row.Description(c.descColumn)
	if !ok {
		return model.AnnotatedRow{}, &common.MissingFieldError{Field: c.descColumn, Line: row.Line}
	}

	labels := make(map[string]string, len(c.annotation))
	for _, col := range c.annotation {
		labels[col] = ""
	}

	if c.opts.AllMatches || c.opts.ByAttribute {
		// Deduplicate on the resolved destination column: rules from
		// different attributes collapse into matched_label when
		// attributes are not expanded.
		seen := make(map[[2]string]bool)
		for _, rule := range c.matcher.All(desc) {
			col := model.MatchedLabelColumn
			if c.opts.ByAttribute {
				col = rule.Column()
			}
			key := [2]string{col, rule.Label}
			if seen[key] {
				continue
			}
			seen[key] = true
			if labels[col] == "" {
				labels[col] = rule.Label
			} else {
				labels[col] += ", " + rule.Label
			}
		}
	} else if rule, matched := c.matcher.First(desc); matched {
		labels[model.MatchedLabelColumn] = rule.Label
	}

	return model.AnnotatedRow{Row: row, Labels: labels}, nil
}
