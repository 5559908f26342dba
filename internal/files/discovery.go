package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileInfo describes a discovered input file.
type FileInfo struct {
	Path string
	Name string
	Size int64
}

// Discovery provides file discovery over the input directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExcelFiles lists the Excel files in the base directory, sorted by name.
// Used to build helpful error messages when an expected workbook is missing.
func (d *Discovery) FindExcelFiles() ([]FileInfo, error) {
	entries, err := os.ReadDir(d.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.basePath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path: filepath.Join(d.basePath, name),
			Name: name,
			Size: info.Size(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// Locate resolves name inside the base directory, matching case-insensitively
// so `stock.xlsx` finds `Stock.xlsx`. It returns an error listing the Excel
// files actually present when no match exists.
func (d *Discovery) Locate(name string) (string, error) {
	exact := filepath.Join(d.basePath, name)
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}

	candidates, err := d.FindExcelFiles()
	if err != nil {
		return "", err
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Name, name) {
			return c.Path, nil
		}
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		names[i] = c.Name
	}
	return "", fmt.Errorf("file %s not found in %s (Excel files present: %v)", name, d.basePath, names)
}
