package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sheetwise/sheetwise/internal/cli"
	"github.com/sheetwise/sheetwise/internal/config"
	"github.com/sheetwise/sheetwise/internal/pattern"
	"github.com/sheetwise/sheetwise/internal/rules"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and validate rules tables",
	}

	check := &cobra.Command{
		Use:   "check [file]",
		Short: "Validate a rules table and list its rules",
		Long: `Load a rules table, compile every pattern, and print the parsed rules.
Fails with the offending line when a pattern does not compile.

Examples:
  sheetwise rules check rules.xlsx
  sheetwise rules check rules.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: runRulesCheck,
	}
	check.Flags().String("rules-sheet", "", "rules sheet name (default: first sheet)")
	_ = viper.BindPFlag("rules.sheet", check.Flags().Lookup("rules-sheet"))

	cmd.AddCommand(check)
	return cmd
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])

	ruleList, err := rules.Load(ctx, path, viper.GetString("rules.sheet"))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}

	// Compiling proves every pattern is usable before a real run.
	m, err := pattern.NewMatcher(ruleList, pattern.Options{})
	if err != nil {
		return err
	}

	compiled := m.Rules()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%d rules OK", len(compiled))))
	if len(compiled) == 0 {
		fmt.Println(cli.WarningStyle.Render("Rules table is empty; classification would leave every row unmatched."))
		return nil
	}

	header := fmt.Sprintf("%-16s %-20s %s", "ATTRIBUTE", "LABEL", "PATTERNS")
	fmt.Println(cli.TableHeaderStyle.Render(header))
	for i := range compiled {
		rule := &compiled[i]
		patterns := strings.Join(rule.Patterns, ", ")
		if rule.Regex {
			patterns += cli.SubtleStyle.Render("  (regex)")
		}
		fmt.Println(cli.TableCellStyle.Render(fmt.Sprintf("%-16s %-20s %s", rule.Attribute, rule.Label, patterns)))
	}

	return nil
}
