package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/engine"
)

// Open returns a streaming row source for the file at path, dispatching on
// the file extension. sheetName only applies to xlsx workbooks.
func Open(path, sheetName string) (engine.RowSource, error) {
	switch ext(path) {
	case ".xlsx":
		return NewXLSXSource(path, sheetName)
	case ".csv":
		return NewCSVSource(path)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, path)
	}
}

// Create returns a row sink writing to path, dispatching on the file
// extension. sheetName only applies to xlsx workbooks.
func Create(path, sheetName string) (engine.RowSink, error) {
	switch ext(path) {
	case ".xlsx":
		return NewXLSXSink(path, sheetName)
	case ".csv":
		return NewCSVSink(path)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, path)
	}
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
