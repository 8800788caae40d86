// Package sheet reads and writes tabular files (xlsx and csv) behind the
// engine's RowSource and RowSink interfaces.
package sheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
)

// Column widths in the output workbook are sized from the header text and
// clamped to this range.
const (
	minColWidth = 10
	maxColWidth = 50
)

// XLSXSource streams rows from one sheet of an xlsx workbook. Rows are
// pulled from the file as requested, so memory stays bounded for large
// workbooks.
type XLSXSource struct {
	file    *excelize.File
	rows    *excelize.Rows
	columns []string
	line    int
}

// NewXLSXSource opens the named sheet of the workbook at path. An empty
// sheet name selects the first sheet. The first row is consumed as the
// header.
func NewXLSXSource(path, sheetName string) (*XLSXSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	if !rows.Next() {
		_ = rows.Close()
		_ = f.Close()
		return nil, fmt.Errorf("sheet %q: %w", sheetName, common.ErrEmptySheet)
	}

	header, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		_ = f.Close()
		return nil, fmt.Errorf("failed to read header of sheet %q: %w", sheetName, err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	return &XLSXSource{file: f, rows: rows, columns: header}, nil
}

// Columns returns the header row.
func (s *XLSXSource) Columns() []string {
	return s.columns
}

// Next returns the next data row. Cells beyond the end of a short row are
// filled with empty strings so every row carries the full header.
func (s *XLSXSource) Next(_ context.Context) (model.Row, bool, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return model.Row{}, false, fmt.Errorf("failed to advance row: %w", err)
		}
		return model.Row{}, false, nil
	}

	cells, err := s.rows.Columns()
	if err != nil {
		return model.Row{}, false, fmt.Errorf("failed to read row: %w", err)
	}

	s.line++
	values := make(map[string]string, len(s.columns))
	for i, col := range s.columns {
		if i < len(cells) {
			values[col] = cells[i]
		} else {
			values[col] = ""
		}
	}

	return model.Row{Values: values, Line: s.line}, true, nil
}

// Close releases the row iterator and the workbook.
func (s *XLSXSource) Close() error {
	if err := s.rows.Close(); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}

// XLSXSink writes annotated rows to a new xlsx workbook using the stream
// writer, holding only the current batch in memory.
type XLSXSink struct {
	file      *excelize.File
	writer    *excelize.StreamWriter
	columns   []string
	path      string
	sheetName string
	nextRow   int
}

// NewXLSXSink prepares a workbook that will be saved to path on Close.
func NewXLSXSink(path, sheetName string) (*XLSXSink, error) {
	f := excelize.NewFile()
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	} else if sheetName != f.GetSheetName(0) {
		if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to name sheet %q: %w", sheetName, err)
		}
	}

	return &XLSXSink{file: f, path: path, sheetName: sheetName}, nil
}

// Begin writes the header row and sizes columns from the header text.
func (s *XLSXSink) Begin(columns []string) error {
	sw, err := s.file.NewStreamWriter(s.sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}
	s.writer = sw
	s.columns = columns

	// Stream writing requires widths before the first row.
	for i, col := range columns {
		width := float64(len(col) + 2)
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := s.writeRow(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Write appends a batch of annotated rows. Annotation values win over source
// values when a column name collides.
func (s *XLSXSink) Write(ctx context.Context, batch []model.AnnotatedRow) error {
	for _, row := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		cells := make([]any, len(s.columns))
		for i, col := range s.columns {
			cells[i] = cellValue(row, col)
		}
		if err := s.writeRow(cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Line, err)
		}
	}
	return nil
}

func (s *XLSXSink) writeRow(cells []any) error {
	s.nextRow++
	ref, err := excelize.CoordinatesToCellName(1, s.nextRow)
	if err != nil {
		return err
	}
	return s.writer.SetRow(ref, cells)
}

// Close flushes the stream writer and saves the workbook.
func (s *XLSXSink) Close() error {
	if s.writer != nil {
		if err := s.writer.Flush(); err != nil {
			_ = s.file.Close()
			return fmt.Errorf("failed to flush workbook: %w", err)
		}
	}
	if err := s.file.SaveAs(s.path); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("failed to save workbook %s: %w", s.path, err)
	}
	return s.file.Close()
}

// cellValue resolves a single output cell: annotation columns take
// precedence over source columns of the same name.
func cellValue(row model.AnnotatedRow, col string) string {
	if v, ok := row.Labels[col]; ok {
		return v
	}
	return row.Values[col]
}
