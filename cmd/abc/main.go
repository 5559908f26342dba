// Command abc runs the ABC value-contribution analysis: it loads the stock
// and cost workbooks, aggregates value per SKU, classifies SKUs by cumulative
// value share and writes the annotated result to the output directory.
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
	aThreshold := flag.Float64("a-threshold", 0, "cumulative share bound for group A (overrides config)")
	bThreshold := flag.Float64("b-threshold", 0, "cumulative share bound for group B (overrides config)")
	missingCost := flag.String("missing-cost", "", "policy for SKUs without a cost record: fail or exclude (overrides config)")
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
	if *aThreshold != 0 {
		cfg.ABC.AThreshold = *aThreshold
	}
	if *bThreshold != 0 {
		cfg.ABC.BThreshold = *bThreshold
	}
	if *missingCost != "" {
		cfg.ABC.MissingCostPolicy = *missingCost
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	paths := config.NewPaths(cfg)
	if err := paths.EnsureOutputDir(); err != nil {
		logger.Error("cannot create output directory", "error", err)
		os.Exit(1)
	}

	logger.Info("starting ABC analysis",
		"input_dir", paths.InputDir,
		"output_dir", paths.OutputDir,
		"a_threshold", cfg.ABC.AThreshold,
		"b_threshold", cfg.ABC.BThreshold,
		"missing_cost_policy", cfg.ABC.MissingCostPolicy,
	)

	discovery := files.NewDiscovery(paths.InputDir)
	stockPath, err := discovery.Locate(filepath.Base(paths.StockFile))
	if err != nil {
		logger.Error("stock workbook not found", "error", err)
		os.Exit(1)
	}
	costPath, err := discovery.Locate(filepath.Base(paths.CostFile))
	if err != nil {
		logger.Error("cost workbook not found", "error", err)
		os.Exit(1)
	}

	reader := dataset.NewReader(cfg.Columns, logger)
	rows, err := reader.ReadStock(stockPath)
	if err != nil {
		logger.Error("failed to read stock data", "error", err)
		os.Exit(1)
	}
	costs, err := reader.ReadCosts(costPath)
	if err != nil {
		logger.Error("failed to read cost data", "error", err)
		os.Exit(1)
	}

	if err := classify.ValidateRows(rows); err != nil {
		logger.Error("invalid stock data", "error", err)
		os.Exit(1)
	}

	aggs, missing := classify.AggregateValues(rows, costs)
	excluded, err := classify.ResolveMissingCosts(missing,
		classify.MissingCostPolicy(cfg.ABC.MissingCostPolicy), logger)
	if err != nil {
		logger.Error("cost reference check failed", "error", err)
		os.Exit(1)
	}

	classifier, err := classify.NewABCClassifier(cfg.ABC.AThreshold, cfg.ABC.BThreshold, logger)
	if err != nil {
		logger.Error("invalid classifier parameters", "error", err)
		os.Exit(1)
	}
	result, err := classifier.Classify(aggs)
	if err != nil {
		logger.Error("ABC classification failed", "error", err)
		os.Exit(1)
	}
	result.Excluded = append(result.Excluded, excluded...)
	for _, it := range excluded {
		result.Counts[it.Group]++
	}

	table := dataset.BuildABCTable(rows, result, cfg.Columns)
	writer := dataset.NewWriter(logger)
	if err := writer.WriteWorkbook(paths.ABCWorkbook, dataset.ABCSheetName, table); err != nil {
		logger.Error("failed to write workbook", "error", err)
		os.Exit(1)
	}
	if cfg.Output.CSVMirror {
		if err := dataset.WriteTableCSV(paths.ABCCSV, table, logger); err != nil {
			logger.Error("failed to write CSV mirror", "error", err)
			os.Exit(1)
		}
	}

	logger.Info("ABC analysis complete",
		"workbook", paths.ABCWorkbook,
		"items", len(result.Items),
		"excluded", len(result.Excluded),
		"group_a", result.Counts[classify.GroupA],
		"group_b", result.Counts[classify.GroupB],
		"group_c", result.Counts[classify.GroupC],
	)
}
