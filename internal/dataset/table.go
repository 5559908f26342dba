package dataset

import (
	"strconv"

	"invcli/internal/classify"
	"invcli/internal/config"
)

// PeriodHeader names the normalized period column in every output table.
// The input's date column (config.ColumnsConfig.Date, whatever it is called)
// is collapsed to YYYY-MM during reading, so outputs intentionally carry
// "Period" in its place rather than echoing the configured date header.
const PeriodHeader = "Period"

// Annotation column headers appended to the original row set.
const (
	ABCGroupHeader = "ABC_Group"
	XYZGroupHeader = "XYZ_Group"
	FlagHeader     = "Flag"
	CVHeader       = "CV"
	XThreshHeader  = "x_threshold_33"
	YThreshHeader  = "y_threshold_66"
)

// Table is an in-memory annotated table, ready for any tabular sink.
type Table struct {
	Headers []string
	Records [][]string
}

// BuildABCTable annotates the original rows with each SKU's assigned ABC
// group and flag. Every input row appears exactly once in the output.
func BuildABCTable(rows []classify.Row, result *classify.ABCResult, columns config.ColumnsConfig) *Table {
	groups := make(map[string]classify.ABCItem)
	for _, it := range result.Items {
		groups[it.SKU] = it
	}
	for _, it := range result.Excluded {
		groups[it.SKU] = it
	}

	t := &Table{
		Headers: []string{columns.SKU, PeriodHeader, columns.Quantity, ABCGroupHeader, FlagHeader},
		Records: make([][]string, len(rows)),
	}
	for i, row := range rows {
		it := groups[row.SKU]
		t.Records[i] = []string{
			row.SKU,
			row.Period,
			formatFloat(row.Quantity),
			it.Group.String(),
			string(it.Flag),
		}
	}
	return t
}

// BuildXYZTable annotates the original rows with each SKU's assigned XYZ
// group, flag and CV, plus the run's two thresholds as reference columns.
// Rows whose SKU was excluded by policy keep empty annotation cells.
func BuildXYZTable(rows []classify.Row, result *classify.XYZResult, columns config.ColumnsConfig) *Table {
	items := make(map[string]classify.XYZItem)
	for _, it := range result.Items {
		items[it.SKU] = it
	}

	xThresh := formatFloat(result.XThreshold)
	yThresh := formatFloat(result.YThreshold)

	t := &Table{
		Headers: []string{columns.SKU, PeriodHeader, columns.Quantity,
			XYZGroupHeader, FlagHeader, CVHeader, XThreshHeader, YThreshHeader},
		Records: make([][]string, len(rows)),
	}
	for i, row := range rows {
		var group, flag, cv string
		if it, ok := items[row.SKU]; ok {
			group = it.Group.String()
			flag = string(it.Flag)
			if it.CVDefined {
				cv = formatFloat(it.CV)
			}
		}
		t.Records[i] = []string{
			row.SKU,
			row.Period,
			formatFloat(row.Quantity),
			group,
			flag,
			cv,
			xThresh,
			yThresh,
		}
	}
	return t
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
