// Package dataset is the tabular I/O layer around the classifiers: it reads
// stock and cost workbooks into normalized rows, and writes the annotated
// results back out as Excel workbooks with optional CSV mirrors.
//
// The classifiers never see a spreadsheet; they operate on classify.Row and
// classify.CostTable. All schema concerns (sheet discovery, header mapping,
// date and numeric coercion) live here, and any coercion failure is reported
// as a SCHEMA error naming the offending file, column and row.
package dataset
