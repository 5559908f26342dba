package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Well-known output file names, matching the original analyst workflow.
const (
	ABCOutputName = "abc_analysis_output"
	XYZOutputName = "xyz_analysis_output"
)

// Paths is the single source of truth for every file path one analysis run
// touches.
type Paths struct {
	InputDir  string
	OutputDir string

	StockFile string
	CostFile  string

	ABCWorkbook string
	ABCCSV      string
	XYZWorkbook string
	XYZCSV      string
}

// NewPaths resolves the run's paths from configuration. Relative directories
// are taken relative to the current working directory, which is where
// analysts keep the data/ tree.
func NewPaths(cfg *Config) *Paths {
	return &Paths{
		InputDir:    cfg.Input.Dir,
		OutputDir:   cfg.Output.Dir,
		StockFile:   filepath.Join(cfg.Input.Dir, cfg.Input.StockFile),
		CostFile:    filepath.Join(cfg.Input.Dir, cfg.Input.CostFile),
		ABCWorkbook: filepath.Join(cfg.Output.Dir, ABCOutputName+".xlsx"),
		ABCCSV:      filepath.Join(cfg.Output.Dir, ABCOutputName+".csv"),
		XYZWorkbook: filepath.Join(cfg.Output.Dir, XYZOutputName+".xlsx"),
		XYZCSV:      filepath.Join(cfg.Output.Dir, XYZOutputName+".csv"),
	}
}

// EnsureOutputDir creates the output directory if it does not exist.
func (p *Paths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}
