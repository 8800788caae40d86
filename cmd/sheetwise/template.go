package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetwise/sheetwise/internal/cli"
	"github.com/sheetwise/sheetwise/internal/config"
	"github.com/sheetwise/sheetwise/internal/sheet"
)

func templateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write example data and rules workbooks",
	}

	data := &cobra.Command{
		Use:   "data [path]",
		Short: "Write an example data workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			if err := sheet.WriteDataTemplate(path); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Wrote data template to " + path))
			return nil
		},
	}

	rules := &cobra.Command{
		Use:   "rules [path]",
		Short: "Write an example rules workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			if err := sheet.WriteRulesTemplate(path); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Wrote rules template to " + path))
			return nil
		},
	}

	cmd.AddCommand(data)
	cmd.AddCommand(rules)
	return cmd
}
