package engine

import (
	"context"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
)

// Stream yields annotated rows in batches, pulling from the source only as
// the caller advances. At most one batch is held in memory at a time.
//
// Usage follows the sql.Rows shape:
//
//	st := c.Stream(src)
//	for st.Next(ctx) {
//	    handle(st.Batch())
//	}
//	if err := st.Err(); err != nil { ... }
type Stream struct {
	c         *Classifier
	src       RowSource
	batch     []model.AnnotatedRow
	err       error
	processed int
	started   bool
	done      bool
}

// Stream begins a lazy classification pass over src. No rows are read until
// the first call to Next.
func (c *Classifier) Stream(src RowSource) *Stream {
	return &Stream{c: c, src: src}
}

// Next advances to the next batch. It returns false when the source is
// exhausted or an error occurred; a failed batch is never partially emitted,
// and batches already returned are unaffected.
func (s *Stream) Next(ctx context.Context) bool {
	if s.done || s.err != nil {
		return false
	}

	if !s.started {
		s.started = true
		if err := s.checkHeader(); err != nil {
			s.err = err
			return false
		}
	}

	batch := make([]model.AnnotatedRow, 0, s.c.opts.BatchSize)
	for len(batch) < s.c.opts.BatchSize {
		if err := ctx.Err(); err != nil {
			s.err = err
			return false
		}

		row, ok, err := s.src.Next(ctx)
		if err != nil {
			s.err = err
			return false
		}
		if !ok {
			s.done = true
			break
		}

		annotated, err := s.c.annotate(row)
		if err != nil {
			s.err = err
			return false
		}
		batch = append(batch, annotated)
	}

	if len(batch) == 0 {
		return false
	}

	s.batch = batch
	s.processed += len(batch)
	if s.c.opts.Progress != nil {
		s.c.opts.Progress(s.processed)
	}
	return true
}

// checkHeader fails fast when the source reports a header without the
// description column. Sources with no header defer the check to each row.
func (s *Stream) checkHeader() error {
	cols := s.src.Columns()
	if cols == nil {
		return nil
	}
	for _, col := range cols {
		if col == s.c.descColumn {
			return nil
		}
	}
	return &common.MissingFieldError{Field: s.c.descColumn}
}

// Batch returns the rows produced by the last successful call to Next. The
// slice is only valid until the next call to Next.
func (s *Stream) Batch() []model.AnnotatedRow {
	return s.batch
}

// Err returns the first error encountered while streaming, if any.
func (s *Stream) Err() error {
	return s.err
}

// Processed returns the number of rows emitted so far.
func (s *Stream) Processed() int {
	return s.processed
}
