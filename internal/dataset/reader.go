package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"invcli/internal/classify"
	"invcli/internal/config"
	apperrors "invcli/internal/errors"
)

// PeriodLayout is the normalized period granularity. All dates collapse to
// year-month before aggregation.
const PeriodLayout = "2006-01"

// Date layouts accepted in the date column, tried in order. Excel serial
// numbers are handled separately.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"01-02-06",
	"1/2/2006",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01",
	"Jan-06",
	time.RFC3339,
}

// Reader loads tabular inputs from Excel workbooks.
type Reader struct {
	columns config.ColumnsConfig
	logger  *slog.Logger
}

// NewReader creates a Reader that maps logical fields onto the configured
// column headers.
func NewReader(columns config.ColumnsConfig, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{columns: columns, logger: logger}
}

// ReadStock reads the stock workbook into normalized rows. It locates the
// first sheet carrying the mapped headers, parses the date column down to
// year-month periods, and coerces quantities to numbers. Any cell that
// cannot be coerced fails the whole read with a SCHEMA error naming the
// file, column and spreadsheet row.
func (r *Reader) ReadStock(path string) ([]classify.Row, error) {
	sheet, rows, err := openSheet(path, []string{r.columns.Date, r.columns.SKU, r.columns.Quantity})
	if err != nil {
		return nil, err
	}
	r.logger.Info("reading stock data",
		"path", path,
		"sheet", sheet.name,
		"data_rows", len(rows)-sheet.headerRow-1,
	)

	dateIdx := sheet.columnIndex(r.columns.Date)
	skuIdx := sheet.columnIndex(r.columns.SKU)
	qtyIdx := sheet.columnIndex(r.columns.Quantity)

	var out []classify.Row
	for i := sheet.headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		// 1-based row number as shown in a spreadsheet application.
		rowNum := i + 1

		sku := strings.TrimSpace(cellAt(row, skuIdx))
		if sku == "" {
			return nil, apperrors.Schema("item identifier is empty", path, r.columns.SKU, rowNum)
		}

		period, err := normalizePeriod(cellAt(row, dateIdx))
		if err != nil {
			return nil, apperrors.Schema(err.Error(), path, r.columns.Date, rowNum)
		}

		qty, err := parseNumeric(cellAt(row, qtyIdx))
		if err != nil {
			return nil, apperrors.Schema(err.Error(), path, r.columns.Quantity, rowNum)
		}

		out = append(out, classify.Row{SKU: sku, Period: period, Quantity: qty})
	}

	if len(out) == 0 {
		return nil, apperrors.Schema("no data rows found", path, "", 0)
	}
	return out, nil
}

// ReadCosts reads the cost workbook into a SKU to unit-cost lookup. A SKU
// appearing more than once keeps its last cost; duplicates are logged.
func (r *Reader) ReadCosts(path string) (classify.CostTable, error) {
	sheet, rows, err := openSheet(path, []string{r.columns.SKU, r.columns.Cost})
	if err != nil {
		return nil, err
	}
	r.logger.Info("reading cost data",
		"path", path,
		"sheet", sheet.name,
		"data_rows", len(rows)-sheet.headerRow-1,
	)

	skuIdx := sheet.columnIndex(r.columns.SKU)
	costIdx := sheet.columnIndex(r.columns.Cost)

	costs := make(classify.CostTable)
	for i := sheet.headerRow + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowNum := i + 1

		sku := strings.TrimSpace(cellAt(row, skuIdx))
		if sku == "" {
			return nil, apperrors.Schema("item identifier is empty", path, r.columns.SKU, rowNum)
		}

		cost, err := parseNumeric(cellAt(row, costIdx))
		if err != nil {
			return nil, apperrors.Schema(err.Error(), path, r.columns.Cost, rowNum)
		}

		if _, dup := costs[sku]; dup {
			r.logger.Warn("duplicate cost record, keeping last", "sku", sku, "row", rowNum)
		}
		costs[sku] = cost
	}

	if len(costs) == 0 {
		return nil, apperrors.Schema("no cost rows found", path, "", 0)
	}
	return costs, nil
}

// sheetData describes the located data sheet: its name, raw rows, header row
// index and the header to column-index map.
type sheetData struct {
	name      string
	headerRow int
	columns   map[string]int
}

func (s *sheetData) columnIndex(header string) int {
	return s.columns[strings.ToLower(strings.TrimSpace(header))]
}

// openSheet opens the workbook and finds the first sheet whose leading rows
// contain all required headers (case-insensitive). The header row may be
// preceded by title rows, so the first few rows of each sheet are probed.
func openSheet(path string, required []string) (*sheetData, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	const probeRows = 10
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i := 0; i < len(rows) && i < probeRows; i++ {
			columns := headerMap(rows[i])
			if containsAll(columns, required) {
				return &sheetData{name: name, headerRow: i, columns: columns}, rows, nil
			}
		}
	}

	return nil, nil, apperrors.Schema(
		fmt.Sprintf("no sheet contains required columns %v", required),
		path, strings.Join(required, ","), 0)
}

func headerMap(row []string) map[string]int {
	m := make(map[string]int, len(row))
	for i, cell := range row {
		header := strings.ToLower(strings.TrimSpace(cell))
		if header == "" {
			continue
		}
		if _, exists := m[header]; !exists {
			m[header] = i
		}
	}
	return m
}

func containsAll(columns map[string]int, required []string) bool {
	for _, col := range required {
		if _, ok := columns[strings.ToLower(strings.TrimSpace(col))]; !ok {
			return false
		}
	}
	return true
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// normalizePeriod parses a date cell and collapses it to YYYY-MM. Both
// formatted date strings and raw Excel serial numbers are accepted.
func normalizePeriod(cell string) (string, error) {
	v := strings.TrimSpace(cell)
	if v == "" {
		return "", fmt.Errorf("date cell is empty")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(PeriodLayout), nil
		}
	}

	// Excel stores dates as day serial numbers; an unformatted cell surfaces
	// as the raw number.
	if serial, err := strconv.ParseFloat(v, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(PeriodLayout), nil
		}
	}

	return "", fmt.Errorf("cannot parse %q as a date", v)
}

// parseNumeric coerces a cell to float64. Empty cells count as zero, matching
// the fill-with-zero convention for absent stock. Thousands separators are
// tolerated. ParseFloat accepts "NaN" and "Inf" spellings, which would poison
// every downstream sum, so non-finite values are rejected here.
func parseNumeric(cell string) (float64, error) {
	v := strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a number", cell)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %q is not finite", cell)
	}
	return f, nil
}
