package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	yaml "gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Columns ColumnsConfig `yaml:"columns" envconfig:"COLUMNS"`
	ABC     ABCConfig     `yaml:"abc" envconfig:"ABC"`
	XYZ     XYZConfig     `yaml:"xyz" envconfig:"XYZ"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig locates the source workbooks.
type InputConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" validate:"required"`
	StockFile string `yaml:"stock_file" envconfig:"STOCK_FILE" validate:"required"`
	CostFile  string `yaml:"cost_file" envconfig:"COST_FILE" validate:"required"`
}

// OutputConfig locates the annotated results.
type OutputConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR" validate:"required"`
	// CSVMirror also writes each workbook as a UTF-8 BOM CSV next to it.
	// Default true.
	CSVMirror bool `yaml:"csv_mirror" envconfig:"CSV_MIRROR"`
}

// ColumnsConfig maps the logical fields onto spreadsheet column headers.
// Header matching is case-insensitive. The date column is consumed during
// period normalization; the output always carries a "Period" column in its
// place, whatever the input header is called.
type ColumnsConfig struct {
	Date     string `yaml:"date" envconfig:"DATE" validate:"required"`
	SKU      string `yaml:"sku" envconfig:"SKU" validate:"required"`
	Quantity string `yaml:"quantity" envconfig:"QUANTITY" validate:"required"`
	Cost     string `yaml:"cost" envconfig:"COST" validate:"required"`
}

// ABCConfig holds the ABC classification parameters.
//
// AThreshold and BThreshold are inclusive upper bounds on cumulative value
// share: items up to AThreshold are group A, up to BThreshold group B, the
// rest group C. Raising AThreshold grows A at B's expense; raising BThreshold
// grows B at C's expense. Defaults 0.80 and 0.95.
type ABCConfig struct {
	AThreshold float64 `yaml:"a_threshold" envconfig:"A_THRESHOLD" validate:"gt=0,lt=1"`
	BThreshold float64 `yaml:"b_threshold" envconfig:"B_THRESHOLD" validate:"gt=0,lt=1,gtfield=AThreshold"`
	// MissingCostPolicy controls SKUs present in stock data but absent from
	// the cost file: "fail" aborts the run, "exclude" drops and reports them.
	MissingCostPolicy string `yaml:"missing_cost_policy" envconfig:"MISSING_COST_POLICY" validate:"oneof=fail exclude"`
}

// XYZConfig holds the XYZ classification parameters.
//
// XQuantile and YQuantile are quantiles of the run's own CV distribution, so
// the actual cutoff values are recomputed every run; defaults 0.33 and 0.66.
// MinPeriods is the smallest number of periods for which a sample standard
// deviation is defined. Dense (default true) zero-fills periods an item has
// no rows for before computing statistics; a month with no stock is a real
// zero observation.
type XYZConfig struct {
	XQuantile  float64 `yaml:"x_quantile" envconfig:"X_QUANTILE" validate:"gt=0,lt=1"`
	YQuantile  float64 `yaml:"y_quantile" envconfig:"Y_QUANTILE" validate:"gt=0,lt=1,gtfield=XQuantile"`
	MinPeriods int     `yaml:"min_periods" envconfig:"MIN_PERIODS" validate:"gte=2"`
	Dense      bool    `yaml:"dense" envconfig:"DENSE"`
	// SinglePeriodPolicy and ZeroMeanPolicy handle items whose CV is
	// undefined: "flag" assigns group Z and marks the item, "exclude" drops
	// it from the classified set.
	SinglePeriodPolicy string `yaml:"single_period_policy" envconfig:"SINGLE_PERIOD_POLICY" validate:"oneof=flag exclude"`
	ZeroMeanPolicy     string `yaml:"zero_mean_policy" envconfig:"ZERO_MEAN_POLICY" validate:"oneof=flag exclude"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=text json"`
}

// DefaultConfig returns the documented defaults. Defaults live here rather
// than in envconfig `default` tags: tag defaults are re-applied on every
// Process call, which would clobber values a YAML file set in between.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Dir:       "data/input",
			StockFile: "Stock.xlsx",
			CostFile:  "COGS.xlsx",
		},
		Output: OutputConfig{
			Dir:       "data/output",
			CSVMirror: true,
		},
		Columns: ColumnsConfig{
			Date:     "Date",
			SKU:      "SKU",
			Quantity: "Stock",
			Cost:     "COGS",
		},
		ABC: ABCConfig{
			AThreshold:        0.80,
			BThreshold:        0.95,
			MissingCostPolicy: "fail",
		},
		XYZ: XYZConfig{
			XQuantile:          0.33,
			YQuantile:          0.66,
			MinPeriods:         2,
			Dense:              true,
			SinglePeriodPolicy: "flag",
			ZeroMeanPolicy:     "flag",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration in layers: documented defaults, then the
// YAML file at configPath (skipped when empty or absent), then INV_*
// environment variables on top, then validation. The YAML overlay only
// touches keys present in the file, so setting a boolean to false works; the
// env overlay only touches variables that are actually set. An invalid
// configuration fails before any input file is touched.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := loadFromFile(configPath, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
		}
	}

	if err := envconfig.Process("INV", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// loadFromFile overlays the YAML file onto cfg in place. yaml.Unmarshal only
// assigns fields whose keys appear in the document, so absent keys keep their
// current (default) values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
