package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invcli/internal/classify"
)

func sampleABCTable() *Table {
	rows := []classify.Row{
		{SKU: "AAA", Period: "2024-01", Quantity: 10},
		{SKU: "BBB", Period: "2024-01", Quantity: 3},
		{SKU: "AAA", Period: "2024-02", Quantity: 7},
	}
	result := &classify.ABCResult{
		Items: []classify.ABCItem{
			{SKU: "AAA", TotalValue: 170, CumulativeShare: 0.9, Group: classify.GroupA},
			{SKU: "BBB", TotalValue: 12, CumulativeShare: 1.0, Group: classify.GroupC},
		},
		Counts: map[classify.ABCGroup]int{classify.GroupA: 1, classify.GroupC: 1},
	}
	return BuildABCTable(rows, result, defaultColumns())
}

func TestWriteWorkbook(t *testing.T) {
	table := sampleABCTable()
	path := filepath.Join(t.TempDir(), "out", "abc_analysis_output.xlsx")

	writer := NewWriter(nil)
	require.NoError(t, writer.WriteWorkbook(path, ABCSheetName, table))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ABCSheetName}, f.GetSheetList())

	rows, err := f.GetRows(ABCSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"SKU", "Period", "Stock", "ABC_Group", "Flag"}, rows[0])
	assert.Equal(t, "AAA", rows[1][0])
	assert.Equal(t, "A", rows[1][3])
	assert.Equal(t, "C", rows[2][3])
}

func TestWriteWorkbookCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "out.xlsx")
	require.NoError(t, NewWriter(nil).WriteWorkbook(path, XYZSheetName, sampleABCTable()))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteTableCSV(t *testing.T) {
	table := sampleABCTable()
	path := filepath.Join(t.TempDir(), "abc_analysis_output.csv")

	require.NoError(t, WriteTableCSV(path, table, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM for Excel, then the headers.
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
	assert.Contains(t, string(data), "SKU,Period,Stock,ABC_Group,Flag")
	assert.Contains(t, string(data), "AAA,2024-01,10,A,")
}

func TestWriteCSVWithoutBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.csv")
	err := WriteCSV(path, WriteOptions{
		Headers: []string{"a", "b"},
		Records: [][]string{{"1", "2"}},
	}, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))
}
