package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteDataTemplate writes an example data workbook showing the expected
// layout: an identifier column plus the description column that rules are
// matched against.
func WriteDataTemplate(path string) error {
	return writeTemplate(path, [][]any{
		{"ID", "Description"},
		{1414, "Ceiling fan 110 yellow bivolt"},
		{2525, "LED lamp 220v white"},
	})
}

// WriteRulesTemplate writes an example rules workbook: one rule per row, with
// comma-separated recognition patterns and an optional attribute grouping.
func WriteRulesTemplate(path string) error {
	return writeTemplate(path, [][]any{
		{"Attribute", "Label", "Patterns"},
		{"Voltage", "110v", "110,110v,127"},
		{"Voltage", "220v", "220,220v,227"},
		{"Voltage", "Bivolt", "bivolt,biv"},
		{"Color", "Yellow", "yellow,amarelo"},
		{"Color", "White", "white,branca"},
	})
}

func writeTemplate(path string, rows [][]any) error {
	f := excelize.NewFile()
	sheetName := f.GetSheetName(0)

	for i, row := range rows {
		ref, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, ref, &row); err != nil {
			return fmt.Errorf("failed to write template row: %w", err)
		}
	}

	for i := range rows[0] {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, name, name, 24); err != nil {
			return fmt.Errorf("failed to size template column: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to save template %s: %w", path, err)
	}
	return f.Close()
}
