package tabular

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	in := "question,answer,gt\n2+2?,4,Correct\ncapital of France?,Berlin,Incorrect\n"
	table, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"question", "answer", "gt"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"2+2?", "4", "Correct"}, table.Rows[0])
}

func TestParseCSVRaggedRows(t *testing.T) {
	in := "a,b\n1\n1,2,3\n"
	table, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1", ""}, table.Rows[0])
	assert.Equal(t, []string{"1", "2"}, table.Rows[1])
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty csv")
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"question", "answer"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"2+2?", "4"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"3+3?", "6"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	table, err := ParseXLSX(buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"question", "answer"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"3+3?", "6"}, table.Rows[1])
}

func TestParsePicksByExtension(t *testing.T) {
	table, err := Parse("data.CSV", strings.NewReader("a\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, table.Columns)

	_, err = Parse("data.pdf", strings.NewReader(""))
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestSample(t *testing.T) {
	table := &Table{Columns: []string{"a"}, Rows: [][]string{{"1"}, {"2"}, {"3"}}}

	assert.Len(t, table.Sample(2).Rows, 2)
	assert.Len(t, table.Sample(0).Rows, 3)
	assert.Len(t, table.Sample(10).Rows, 3)
}

func TestMapRow(t *testing.T) {
	table := &Table{Columns: []string{"q", "a", "ignored"}}
	mapping := map[string]string{"q": "question", "a": "answer"}

	values := table.MapRow([]string{"2+2?", "4", "x"}, mapping)
	assert.Equal(t, map[string]string{"question": "2+2?", "answer": "4"}, values)
}

func TestMapRowShortRow(t *testing.T) {
	table := &Table{Columns: []string{"q", "a"}}
	mapping := map[string]string{"q": "question", "a": "answer"}

	values := table.MapRow([]string{"only"}, mapping)
	assert.Equal(t, map[string]string{"question": "only", "answer": ""}, values)
}
