// Command xyz runs the XYZ demand-stability analysis: it loads the stock
// workbook, aggregates quantities per SKU and period, classifies SKUs by
// coefficient of variation and writes the annotated result to the output
// directory.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"invcli/internal/app"
	"invcli/internal/classify"
	"invcli/internal/config"
	"invcli/internal/dataset"
	"invcli/internal/files"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	inputDir := flag.String("in", "", "input directory (overrides config)")
	outputDir := flag.String("out", "", "output directory (overrides config)")
	dense := flag.Bool("dense", true, "zero-fill periods with no stock rows before computing CV")
	minPeriods := flag.Int("min-periods", 0, "minimum periods for a defined CV (overrides config)")
	flag.Parse()

	run, err := app.Bootstrap(*configPath)
	if err != nil {
		slog.Error("startup failed", "error", err)
		os.Exit(1)
	}
	logger := run.Logger

	cfg := run.Config
	if *inputDir != "" {
		cfg.Input.Dir = *inputDir
	}
	if *outputDir != "" {
		cfg.Output.Dir = *outputDir
	}
	if *minPeriods != 0 {
		cfg.XYZ.MinPeriods = *minPeriods
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "dense" {
			cfg.XYZ.Dense = *dense
		}
	})
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	paths := config.NewPaths(cfg)
	if err := paths.EnsureOutputDir(); err != nil {
		logger.Error("cannot create output directory", "error", err)
		os.Exit(1)
	}

	logger.Info("starting XYZ analysis",
		"input_dir", paths.InputDir,
		"output_dir", paths.OutputDir,
		"x_quantile", cfg.XYZ.XQuantile,
		"y_quantile", cfg.XYZ.YQuantile,
		"min_periods", cfg.XYZ.MinPeriods,
		"dense", cfg.XYZ.Dense,
	)

	discovery := files.NewDiscovery(paths.InputDir)
	stockPath, err := discovery.Locate(filepath.Base(paths.StockFile))
	if err != nil {
		logger.Error("stock workbook not found", "error", err)
		os.Exit(1)
	}

	reader := dataset.NewReader(cfg.Columns, logger)
	rows, err := reader.ReadStock(stockPath)
	if err != nil {
		logger.Error("failed to read stock data", "error", err)
		os.Exit(1)
	}
	if err := classify.ValidateRows(rows); err != nil {
		logger.Error("invalid stock data", "error", err)
		os.Exit(1)
	}

	aggs := classify.AggregatePeriods(rows)
	if cfg.XYZ.Dense {
		aggs = classify.Densify(aggs)
	}

	classifier, err := classify.NewXYZClassifier(logger,
		classify.WithQuantiles(cfg.XYZ.XQuantile, cfg.XYZ.YQuantile),
		classify.WithMinPeriods(cfg.XYZ.MinPeriods),
		classify.WithSinglePeriodPolicy(classify.UndefinedCVPolicy(cfg.XYZ.SinglePeriodPolicy)),
		classify.WithZeroMeanPolicy(classify.UndefinedCVPolicy(cfg.XYZ.ZeroMeanPolicy)),
	)
	if err != nil {
		logger.Error("invalid classifier parameters", "error", err)
		os.Exit(1)
	}
	result, err := classifier.Classify(aggs)
	if err != nil {
		logger.Error("XYZ classification failed", "error", err)
		os.Exit(1)
	}

	table := dataset.BuildXYZTable(rows, result, cfg.Columns)
	writer := dataset.NewWriter(logger)
	if err := writer.WriteWorkbook(paths.XYZWorkbook, dataset.XYZSheetName, table); err != nil {
		logger.Error("failed to write workbook", "error", err)
		os.Exit(1)
	}
	if cfg.Output.CSVMirror {
		if err := dataset.WriteTableCSV(paths.XYZCSV, table, logger); err != nil {
			logger.Error("failed to write CSV mirror", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("XYZ analysis complete",
		"workbook", paths.XYZWorkbook,
		"items", len(result.Items),
		"x_threshold", result.XThreshold,
		"y_threshold", result.YThreshold,
		"group_x", result.Counts[classify.GroupX],
		"group_y", result.Counts[classify.GroupY],
		"group_z", result.Counts[classify.GroupZ],
	)
}
