// Package files handles input file discovery. Expected workbooks are located
// case-insensitively, and a missing workbook produces an error naming the
// Excel files actually present so the user can spot a misnamed file.
package files
