package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Run drives a full classification pass from src to sink and reports summary
// statistics. A row counts as matched when any of its annotation columns is
// non-empty.
func (c *Classifier) Run(ctx context.Context, src RowSource, sink RowSink) (*Summary, error) {
	start := time.Now()

	if err := sink.Begin(c.OutputColumns(src.Columns())); err != nil {
		return nil, fmt.Errorf("failed to start output: %w", err)
	}

	summary := &Summary{}
	stream := c.Stream(src)

	for stream.Next(ctx) {
		batch := stream.Batch()
		if err := sink.Write(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to write batch: %w", err)
		}

		summary.Batches++
		summary.Rows += len(batch)
		for _, row := range batch {
			if rowMatched(row.Labels) {
				summary.Matched++
			} else {
				summary.Unmatched++
			}
		}

		slog.Debug("Processed batch",
			"batch", summary.Batches,
			"rows", summary.Rows)
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}

	summary.Elapsed = time.Since(start)
	return summary, nil
}

func rowMatched(labels map[string]string) bool {
	for _, v := range labels {
		if v != "" {
			return true
		}
	}
	return false
}
