// Package model defines the core data structures for the sheetwise application.
package model

// Row represents one record of an input table. Values maps column names to
// cell values; the table's column order lives with the source that produced
// the row, not with the row itself.
type Row struct {
	Values map[string]string
	Line   int // 1-based position within the source, excluding the header
}

// Description returns the value of the designated description column and
// whether the row carries that column at all.
func (r Row) Description(column string) (string, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// AnnotatedRow is a Row extended with the annotation columns produced by
// classification. Labels always contains every annotation column, with an
// empty string when no rule matched.
type AnnotatedRow struct {
	Row
	Labels map[string]string
}

// Label returns the value of a single annotation column.
func (r AnnotatedRow) Label(column string) string {
	return r.Labels[column]
}
