package engine

import (
	"context"

	"github.com/sheetwise/sheetwise/internal/model"
)

// RowSource supplies input rows one at a time. Implementations stream from
// their backing file so that memory stays bounded regardless of table size.
type RowSource interface {
	// Columns returns the header of the table, in column order. A nil
	// header means the source cannot report one; the engine then falls
	// back to per-row field checks.
	Columns() []string
	// Next returns the next row. The boolean is false once the source is
	// exhausted. A source is consumed exactly once and is not restartable.
	Next(ctx context.Context) (model.Row, bool, error)
	Close() error
}

// RowSink consumes annotated rows. Begin is called once with the full output
// header before any Write; Close flushes and releases the destination.
type RowSink interface {
	Begin(columns []string) error
	Write(ctx context.Context, batch []model.AnnotatedRow) error
	Close() error
}
