package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
)

// CSVSource streams rows from a csv file with a header row.
type CSVSource struct {
	file    *os.File
	reader  *csv.Reader
	columns []string
	line    int
}

// NewCSVSource opens a csv file and consumes its header row.
func NewCSVSource(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are normalized against the header

	header, err := r.Read()
	if err != nil {
		_ = f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", path, common.ErrEmptySheet)
		}
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	for i, col := range header {
		header[i] = strings.TrimSpace(col)
	}

	return &CSVSource{file: f, reader: r, columns: header}, nil
}

// Columns returns the header row.
func (s *CSVSource) Columns() []string {
	return s.columns
}

// Next returns the next data row.
func (s *CSVSource) Next(_ context.Context) (model.Row, bool, error) {
	record, err := s.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Row{}, false, nil
		}
		return model.Row{}, false, fmt.Errorf("failed to read row: %w", err)
	}

	s.line++
	values := make(map[string]string, len(s.columns))
	for i, col := range s.columns {
		if i < len(record) {
			values[col] = record[i]
		} else {
			values[col] = ""
		}
	}

	return model.Row{Values: values, Line: s.line}, true, nil
}

// Close closes the underlying file.
func (s *CSVSource) Close() error {
	return s.file.Close()
}

// CSVSink writes annotated rows to a csv file.
type CSVSink struct {
	file    *os.File
	writer  *csv.Writer
	columns []string
}

// NewCSVSink creates the output file at path.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}
	return &CSVSink{file: f, writer: csv.NewWriter(f)}, nil
}

// Begin writes the header row.
func (s *CSVSink) Begin(columns []string) error {
	s.columns = columns
	if err := s.writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	return nil
}

// Write appends a batch of annotated rows.
func (s *CSVSink) Write(ctx context.Context, batch []model.AnnotatedRow) error {
	for _, row := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := make([]string, len(s.columns))
		for i, col := range s.columns {
			record[i] = cellValue(row, col)
		}
		if err := s.writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.Line, err)
		}
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (s *CSVSink) Close() error {
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return s.file.Close()
}
