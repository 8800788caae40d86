package sheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetwise/sheetwise/internal/common"
	"github.com/sheetwise/sheetwise/internal/model"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestCSVSource(t *testing.T) {
	ctx := context.Background()
	path := writeTempCSV(t, "ID,Description\n1,red shirt\n2,blue hat\n")

	src, err := NewCSVSource(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, src.Close())
	}()

	assert.Equal(t, []string{"ID", "Description"}, src.Columns())

	row, ok, err := src.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, row.Line)
	assert.Equal(t, "red shirt", row.Values["Description"])

	row, ok, err = src.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "blue hat", row.Values["Description"])

	_, ok, err = src.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCSVSource_RaggedRow(t *testing.T) {
	ctx := context.Background()
	path := writeTempCSV(t, "ID,Description\n1\n")

	src, err := NewCSVSource(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, src.Close())
	}()

	row, ok, err := src.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// Short rows still carry every header column.
	desc, present := row.Description("Description")
	assert.True(t, present)
	assert.Equal(t, "", desc)
}

func TestCSVSource_EmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := NewCSVSource(path)
	assert.ErrorIs(t, err, common.ErrEmptySheet)
}

func TestCSVSink_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "out.csv")

	sink, err := NewCSVSink(path)
	require.NoError(t, err)

	require.NoError(t, sink.Begin([]string{"ID", "Description", "matched_label"}))
	require.NoError(t, sink.Write(ctx, []model.AnnotatedRow{
		{
			Row:    model.Row{Values: map[string]string{"ID": "1", "Description": "red shirt"}, Line: 1},
			Labels: map[string]string{"matched_label": "Apparel"},
		},
		{
			Row:    model.Row{Values: map[string]string{"ID": "2", "Description": "mystery"}, Line: 2},
			Labels: map[string]string{"matched_label": ""},
		},
	}))
	require.NoError(t, sink.Close())

	src, err := NewCSVSource(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, src.Close())
	}()

	assert.Equal(t, []string{"ID", "Description", "matched_label"}, src.Columns())

	row, ok, err := src.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Apparel", row.Values["matched_label"])

	row, ok, err = src.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "", row.Values["matched_label"])
}

func TestOpen_UnsupportedFormat(t *testing.T) {
	_, err := Open("table.ods", "")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)

	_, err = Create("report.pdf", "")
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}
