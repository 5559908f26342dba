package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"invcli/internal/classify"
	"invcli/internal/config"
	apperrors "invcli/internal/errors"
)

func defaultColumns() config.ColumnsConfig {
	return config.ColumnsConfig{Date: "Date", SKU: "SKU", Quantity: "Stock", Cost: "COGS"}
}

// writeTestWorkbook creates a single-sheet workbook from raw rows.
func writeTestWorkbook(t *testing.T, name string, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadStock(t *testing.T) {
	path := writeTestWorkbook(t, "Stock.xlsx", [][]interface{}{
		{"Date", "SKU", "Stock"},
		{"2024-01-15", "AAA", "10"},
		{"2024-01-20", "BBB", "3.5"},
		{"2024-02-01", "AAA", "7"},
	})

	reader := NewReader(defaultColumns(), nil)
	rows, err := reader.ReadStock(path)
	require.NoError(t, err)

	assert.Equal(t, []classify.Row{
		{SKU: "AAA", Period: "2024-01", Quantity: 10},
		{SKU: "BBB", Period: "2024-01", Quantity: 3.5},
		{SKU: "AAA", Period: "2024-02", Quantity: 7},
	}, rows)
}

func TestReadStockHeaderNotFirstRow(t *testing.T) {
	path := writeTestWorkbook(t, "Stock.xlsx", [][]interface{}{
		{"Warehouse stock export"},
		{},
		{"Date", "SKU", "Stock"},
		{"2024-03-02", "CCC", "4"},
	})

	rows, err := NewReader(defaultColumns(), nil).ReadStock(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, classify.Row{SKU: "CCC", Period: "2024-03", Quantity: 4}, rows[0])
}

func TestReadStockCaseInsensitiveHeaders(t *testing.T) {
	path := writeTestWorkbook(t, "Stock.xlsx", [][]interface{}{
		{"date", "sku", "stock"},
		{"2024-05-09", "DDD", "2"},
	})

	rows, err := NewReader(defaultColumns(), nil).ReadStock(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "DDD", rows[0].SKU)
}

func TestReadStockDateFormats(t *testing.T) {
	tests := []struct {
		name string
		cell string
		want string
	}{
		{"iso date", "2024-01-15", "2024-01"},
		{"slash date", "1/31/2024", "2024-01"},
		{"datetime", "2024-12-05 10:30:00", "2024-12"},
		{"already a period", "2024-07", "2024-07"},
		{"excel serial", "45306", "2024-01"}, // 2024-01-15
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestWorkbook(t, "Stock.xlsx", [][]interface{}{
				{"Date", "SKU", "Stock"},
				{tt.cell, "AAA", "1"},
			})
			rows, err := NewReader(defaultColumns(), nil).ReadStock(path)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Period)
		})
	}
}

func TestReadStockEmptyQuantityIsZero(t *testing.T) {
	path := writeTestWorkbook(t, "Stock.xlsx", [][]interface{}{
		{"Date", "SKU", "Stock"},
		{"2024-01-02", "AAA", ""},
	})
	rows, err := NewReader(defaultColumns(), nil).ReadStock(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Quantity)
}

func TestReadStockSchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]interface{}
		column  string
		wantRow int
	}{
		{
			name: "missing required column",
			rows: [][]interface{}{
				{"Date", "SKU"},
				{"2024-01-02", "AAA"},
			},
		},
		{
			name: "unparsable quantity",
			rows: [][]interface{}{
				{"Date", "SKU", "Stock"},
				{"2024-01-02", "AAA", "5"},
				{"2024-01-03", "BBB", "lots"},
			},
			column:  "Stock",
			wantRow: 3,
		},
		{
			name: "non-finite quantity",
			rows: [][]interface{}{
				{"Date", "SKU", "Stock"},
				{"2024-01-02", "AAA", "NaN"},
			},
			column:  "Stock",
			wantRow: 2,
		},
		{
			name: "infinite quantity",
			rows: [][]interface{}{
				{"Date", "SKU", "Stock"},
				{"2024-01-02", "AAA", "+Inf"},
			},
			column:  "Stock",
			wantRow: 2,
		},
		{
			name: "unparsable date",
			rows: [][]interface{}{
				{"Date", "SKU", "Stock"},
				{"yesterday", "AAA", "5"},
			},
			column:  "Date",
			wantRow: 2,
		},
		{
			name: "empty sku cell",
			rows: [][]interface{}{
				{"Date", "SKU", "Stock"},
				{"2024-01-02", "", "5"},
			},
			column:  "SKU",
			wantRow: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestWorkbook(t, "Stock.xlsx", tt.rows)
			_, err := NewReader(defaultColumns(), nil).ReadStock(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrSchema)

			if tt.column != "" {
				var e *apperrors.Error
				require.True(t, errors.As(err, &e))
				ctx, ok := e.Details.(apperrors.SchemaContext)
				require.True(t, ok)
				assert.Equal(t, path, ctx.File)
				assert.Equal(t, tt.column, ctx.Column)
				assert.Equal(t, tt.wantRow, ctx.Row)
			}
		})
	}
}

func TestReadCosts(t *testing.T) {
	path := writeTestWorkbook(t, "COGS.xlsx", [][]interface{}{
		{"SKU", "COGS"},
		{"AAA", "12.5"},
		{"BBB", "4"},
	})

	costs, err := NewReader(defaultColumns(), nil).ReadCosts(path)
	require.NoError(t, err)
	assert.Equal(t, classify.CostTable{"AAA": 12.5, "BBB": 4}, costs)
}

func TestReadCostsDuplicateKeepsLast(t *testing.T) {
	path := writeTestWorkbook(t, "COGS.xlsx", [][]interface{}{
		{"SKU", "COGS"},
		{"AAA", "10"},
		{"AAA", "20"},
	})

	costs, err := NewReader(defaultColumns(), nil).ReadCosts(path)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, costs["AAA"], 1e-12)
}

func TestReadCostsSchemaError(t *testing.T) {
	path := writeTestWorkbook(t, "COGS.xlsx", [][]interface{}{
		{"SKU", "Price"},
		{"AAA", "10"},
	})
	_, err := NewReader(defaultColumns(), nil).ReadCosts(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSchema)
}

func TestReadStockMissingFile(t *testing.T) {
	_, err := NewReader(defaultColumns(), nil).ReadStock(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
