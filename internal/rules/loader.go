// Package rules loads rule tables from spreadsheet or yaml files.
package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sheetwise/sheetwise/internal/model"
	"github.com/sheetwise/sheetwise/internal/sheet"
)

// ruleFile is the yaml form of a rules table.
type ruleFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Pattern   string   `yaml:"pattern"`
	Patterns  []string `yaml:"patterns"`
	Label     string   `yaml:"label"`
	Attribute string   `yaml:"attribute"`
	Regex     bool     `yaml:"regex"`
}

// Load reads rules from path, dispatching on the file extension: yaml files
// are decoded directly, anything else goes through the spreadsheet reader.
// sheetName only applies to xlsx workbooks.
func Load(ctx context.Context, path, sheetName string) ([]model.Rule, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return loadYAML(path)
	default:
		return loadSheet(ctx, path, sheetName)
	}
}

func loadYAML(path string) ([]model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file %s: %w", path, err)
	}

	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	rules := make([]model.Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		patterns := entry.Patterns
		if len(patterns) == 0 && entry.Pattern != "" {
			patterns = model.SplitPatterns(entry.Pattern)
		}

		rule := model.Rule{
			Attribute: entry.Attribute,
			Label:     entry.Label,
			Patterns:  patterns,
			Regex:     entry.Regex,
			Line:      i + 1,
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	return rules, nil
}

func loadSheet(ctx context.Context, path, sheetName string) ([]model.Rule, error) {
	src, err := sheet.Open(path, sheetName)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = src.Close()
	}()

	return sheet.ParseRules(ctx, src)
}
