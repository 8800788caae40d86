package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/sheetwise/sheetwise/internal/engine"
	"github.com/sheetwise/sheetwise/internal/model"
)

// Rules-sheet headers are matched case-insensitively, with a few synonyms so
// existing configuration spreadsheets keep working.
var (
	patternHeaders   = []string{"pattern", "patterns", "recognition pattern", "recognition patterns"}
	labelHeaders     = []string{"label", "variation"}
	attributeHeaders = []string{"attribute"}
	regexHeaders     = []string{"regex", "is_regex"}
)

// ParseRules reads a rules table from src. Each row yields one rule; the
// pattern cell may hold several comma-separated alternatives. Blank rows are
// skipped.
func ParseRules(ctx context.Context, src engine.RowSource) ([]model.Rule, error) {
	patternCol, err := requiredColumn(src.Columns(), patternHeaders)
	if err != nil {
		return nil, err
	}
	labelCol, err := requiredColumn(src.Columns(), labelHeaders)
	if err != nil {
		return nil, err
	}
	attributeCol := optionalColumn(src.Columns(), attributeHeaders)
	regexCol := optionalColumn(src.Columns(), regexHeaders)

	var rules []model.Rule
	for {
		row, ok, err := src.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		patterns := model.SplitPatterns(row.Values[patternCol])
		label := strings.TrimSpace(row.Values[labelCol])
		if len(patterns) == 0 && label == "" {
			continue
		}

		rule := model.Rule{
			Label:    label,
			Patterns: patterns,
			Line:     row.Line,
		}
		if attributeCol != "" {
			rule.Attribute = strings.TrimSpace(row.Values[attributeCol])
		}
		if regexCol != "" {
			rule.Regex = parseBool(row.Values[regexCol])
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func requiredColumn(columns, names []string) (string, error) {
	if col := optionalColumn(columns, names); col != "" {
		return col, nil
	}
	return "", fmt.Errorf("rules table must contain a %q column", names[0])
}

func optionalColumn(columns, names []string) string {
	for _, col := range columns {
		lowered := strings.ToLower(strings.TrimSpace(col))
		for _, name := range names {
			if lowered == name {
				return col
			}
		}
	}
	return ""
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1":
		return true
	default:
		return false
	}
}
