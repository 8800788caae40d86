package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sheetwise/sheetwise/internal/cli"
	"github.com/sheetwise/sheetwise/internal/config"
	"github.com/sheetwise/sheetwise/internal/engine"
	"github.com/sheetwise/sheetwise/internal/rules"
	"github.com/sheetwise/sheetwise/internal/sheet"
)

// summaryRounding keeps elapsed times readable in the run summary.
const summaryRounding = time.Millisecond

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Annotate a data table using pattern rules",
		Long: `Classify rows of a data table by matching the description column against a
rules table, and write the annotated result.

Rows are processed in fixed-size batches, so memory use stays flat no matter
how large the input file is. By default the first matching rule wins and its
label lands in a matched_label column.

Examples:
  sheetwise classify --data products.xlsx --rules rules.xlsx
  sheetwise classify -d products.csv -r rules.yaml -o report.csv
  sheetwise classify -d products.xlsx -r rules.xlsx --by-attribute --whole-word
  sheetwise classify -d big.xlsx -r rules.xlsx --batch-size 2000`,
		RunE: runClassify,
	}

	// Flags
	cmd.Flags().StringP("data", "d", "", "data table to classify (xlsx or csv)")
	cmd.Flags().StringP("rules", "r", "", "rules table (xlsx, csv, or yaml)")
	cmd.Flags().StringP("output", "o", "report.xlsx", "annotated output file (xlsx or csv)")
	cmd.Flags().IntP("batch-size", "b", 500, "rows processed per batch")
	cmd.Flags().String("sheet", "", "data sheet name (default: first sheet)")
	cmd.Flags().String("rules-sheet", "", "rules sheet name (default: first sheet)")
	cmd.Flags().String("description-column", "Description", "column matched against rule patterns")
	cmd.Flags().Bool("all-matches", false, "collect every matching label instead of first match wins")
	cmd.Flags().Bool("by-attribute", false, "write one output column per rule attribute")
	cmd.Flags().Bool("whole-word", false, "match plain patterns as whole words only")

	// Bind to viper (errors are rare and can be ignored in practice)
	_ = viper.BindPFlag("classify.data", cmd.Flags().Lookup("data"))
	_ = viper.BindPFlag("classify.rules", cmd.Flags().Lookup("rules"))
	_ = viper.BindPFlag("classify.output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("classify.batch_size", cmd.Flags().Lookup("batch-size"))
	_ = viper.BindPFlag("classify.sheet", cmd.Flags().Lookup("sheet"))
	_ = viper.BindPFlag("classify.rules_sheet", cmd.Flags().Lookup("rules-sheet"))
	_ = viper.BindPFlag("classify.description_column", cmd.Flags().Lookup("description-column"))
	_ = viper.BindPFlag("classify.all_matches", cmd.Flags().Lookup("all-matches"))
	_ = viper.BindPFlag("classify.by_attribute", cmd.Flags().Lookup("by-attribute"))
	_ = viper.BindPFlag("classify.whole_word", cmd.Flags().Lookup("whole-word"))

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dataPath := config.ExpandPath(viper.GetString("classify.data"))
	rulesPath := config.ExpandPath(viper.GetString("classify.rules"))
	outputPath := config.ExpandPath(viper.GetString("classify.output"))

	if dataPath == "" {
		return fmt.Errorf("--data is required")
	}
	if rulesPath == "" {
		return fmt.Errorf("--rules is required")
	}

	slog.Info("Starting classification",
		"data", dataPath,
		"rules", rulesPath,
		"output", outputPath)

	ruleList, err := rules.Load(ctx, rulesPath, viper.GetString("classify.rules_sheet"))
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	if len(ruleList) == 0 {
		slog.Warn("Rules table is empty; every row will be left unmatched")
	}
	slog.Info("Loaded rules", "count", len(ruleList))

	bar := cli.NewProgressBar(os.Stderr, -1, "Classifying rows...")
	opts := engine.Options{
		BatchSize:   viper.GetInt("classify.batch_size"),
		AllMatches:  viper.GetBool("classify.all_matches"),
		ByAttribute: viper.GetBool("classify.by_attribute"),
		WholeWord:   viper.GetBool("classify.whole_word"),
		Progress: func(processed int) {
			_ = bar.Set(processed)
		},
	}

	classifier, err := engine.New(ruleList, viper.GetString("classify.description_column"), opts)
	if err != nil {
		return err
	}

	src, err := sheet.Open(dataPath, viper.GetString("classify.sheet"))
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			slog.Error("Failed to close data file", "error", closeErr)
		}
	}()

	sink, err := sheet.Create(outputPath, viper.GetString("classify.sheet"))
	if err != nil {
		return err
	}

	summary, runErr := classifier.Run(ctx, src, sink)

	// Batches written before a failure are kept; close the sink either way.
	if closeErr := sink.Close(); closeErr != nil {
		if runErr == nil {
			runErr = closeErr
		} else {
			slog.Error("Failed to close output file", "error", closeErr)
		}
	}
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)

	if runErr != nil {
		return runErr
	}

	printSummary(summary, outputPath)
	return nil
}

func printSummary(summary *engine.Summary, outputPath string) {
	fmt.Println(cli.TitleStyle.Render("Classification complete"))
	fmt.Printf("  %s %d\n", cli.BoldStyle.Render("Rows:"), summary.Rows)
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Matched:"), cli.SuccessStyle.Render(fmt.Sprintf("%d", summary.Matched)))
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Unmatched:"), cli.WarningStyle.Render(fmt.Sprintf("%d", summary.Unmatched)))
	fmt.Printf("  %s %d\n", cli.BoldStyle.Render("Batches:"), summary.Batches)
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Elapsed:"), summary.Elapsed.Round(summaryRounding))
	fmt.Printf("  %s %s\n", cli.BoldStyle.Render("Report:"), cli.SubtleStyle.Render(outputPath))
}
