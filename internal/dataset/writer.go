package dataset

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the output workbooks.
const (
	ABCSheetName = "ABC_Result"
	XYZSheetName = "XYZ_Analysis"
)

// Writer persists annotated tables as Excel workbooks.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a workbook writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// WriteWorkbook writes the table to a single-sheet workbook at path. The
// workbook is assembled fully in memory and saved once, so a failed run never
// leaves a partial file behind.
func (w *Writer) WriteWorkbook(path, sheetName string, table *Table) error {
	w.logger.Info("writing workbook",
		"path", path,
		"sheet", sheetName,
		"record_count", len(table.Records),
	)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheetName, err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := setStringRow(f, sheetName, 1, table.Headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	for i, record := range table.Records {
		if err := setStringRow(f, sheetName, i+2, record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func setStringRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return f.SetSheetRow(sheet, cell, &row)
}
