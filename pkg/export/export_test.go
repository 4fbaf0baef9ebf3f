package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Spark Programs",
		Headers: []string{"ID", "Title", "State"},
		Rows: []map[string]string{
			{"ID": "1", "Title": "MIT Launch, Entrepreneurship", "State": "Massachusetts"},
			{"ID": "2", "Title": "Coding Camp", "State": "All States"},
		},
	}
}

func TestForFormat(t *testing.T) {
	for format, ext := range map[string]string{"": "csv", "CSV": "csv", "pdf": "pdf", " xlsx ": "xlsx"} {
		exp, err := ForFormat(format)
		require.NoError(t, err, format)
		assert.Equal(t, ext, exp.Extension())
		assert.NotEmpty(t, exp.ContentType())
	}

	_, err := ForFormat("docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"ID", "Title", "State"},
		{"1", "MIT Launch, Entrepreneurship", "Massachusetts"},
		{"2", "Coding Camp", "All States"},
	}, records)
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Spark Programs")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Title", "State"}, rows[0])
	assert.Equal(t, "All States", rows[2][2])
}

func TestExportersRequireHeaders(t *testing.T) {
	for _, exp := range []Exporter{NewCSVExporter(), NewPDFExporter(), NewXLSXExporter()} {
		_, err := exp.Render(Dataset{})
		assert.Error(t, err, exp.Extension())
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "Programs 2025", sheetName("Programs: 2025"))
	assert.Equal(t, xlsxDefaultSheet, sheetName("///"))
	assert.Len(t, []rune(sheetName("a very long workbook title that keeps going")), 31)
}
