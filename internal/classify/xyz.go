package classify

import (
	"log/slog"

	apperrors "invcli/internal/errors"
)

// Defaults for XYZ classification. Quantiles are taken over the run's own CV
// distribution, so group sizes stay roughly balanced regardless of how
// volatile the assortment is overall.
const (
	DefaultXQuantile  = 0.33
	DefaultYQuantile  = 0.66
	DefaultMinPeriods = 2
)

// XYZClassifier assigns X/Y/Z groups by coefficient of variation.
type XYZClassifier struct {
	xQuantile    float64
	yQuantile    float64
	minPeriods   int
	singlePolicy UndefinedCVPolicy
	zeroPolicy   UndefinedCVPolicy
	logger       *slog.Logger
}

// XYZOption configures an XYZClassifier.
type XYZOption func(*XYZClassifier)

// WithQuantiles overrides the X/Y quantile cutoffs.
func WithQuantiles(x, y float64) XYZOption {
	return func(c *XYZClassifier) {
		c.xQuantile = x
		c.yQuantile = y
	}
}

// WithMinPeriods overrides the minimum number of periods an item needs for a
// defined CV.
func WithMinPeriods(n int) XYZOption {
	return func(c *XYZClassifier) { c.minPeriods = n }
}

// WithSinglePeriodPolicy sets how items with too few periods are handled.
func WithSinglePeriodPolicy(p UndefinedCVPolicy) XYZOption {
	return func(c *XYZClassifier) { c.singlePolicy = p }
}

// WithZeroMeanPolicy sets how zero-mean items are handled.
func WithZeroMeanPolicy(p UndefinedCVPolicy) XYZOption {
	return func(c *XYZClassifier) { c.zeroPolicy = p }
}

// NewXYZClassifier creates a classifier with the default quantiles, minimum
// period count and policies, then applies any options.
func NewXYZClassifier(logger *slog.Logger, opts ...XYZOption) (*XYZClassifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &XYZClassifier{
		xQuantile:    DefaultXQuantile,
		yQuantile:    DefaultYQuantile,
		minPeriods:   DefaultMinPeriods,
		singlePolicy: UndefinedCVFlag,
		zeroPolicy:   UndefinedCVFlag,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validateShare("xQuantile", c.xQuantile); err != nil {
		return nil, err
	}
	if err := validateShare("yQuantile", c.yQuantile); err != nil {
		return nil, err
	}
	if c.xQuantile >= c.yQuantile {
		return nil, &ValidationError{
			Field:   "quantiles",
			Message: "xQuantile must be less than yQuantile",
		}
	}
	if c.minPeriods < 2 {
		return nil, &ValidationError{
			Field:   "minPeriods",
			Message: "at least 2 periods are required for a sample standard deviation",
			Value:   c.minPeriods,
		}
	}
	return c, nil
}

// Classify computes each item's coefficient of variation (sample standard
// deviation over mean, ddof=1), takes the x/y quantiles of the defined CVs as
// this run's thresholds, and assigns groups with inclusive upper bounds:
// CV <= p33 is X, <= p66 is Y, else Z.
//
// Items whose CV is undefined never abort the run. An item with fewer than
// minPeriods periods, or with zero mean, is handled by its policy: the
// default assigns Z (conservative for stocking purposes) and flags it; the
// exclude policy drops it from the result. Undefined-CV items never
// contribute to the threshold quantiles either way. Fewer than 2 defined CVs
// leave no distribution to threshold and return a DEGENERATE_INPUT error.
func (c *XYZClassifier) Classify(aggs []PeriodAggregate) (*XYZResult, error) {
	items := make([]XYZItem, 0, len(aggs))
	var definedCVs []float64

	for _, a := range aggs {
		item := XYZItem{SKU: a.SKU, Values: a.Values}

		if len(a.Values) < c.minPeriods {
			item.Flag = FlagInsufficientData
			item.Group = GroupZ
			items = append(items, item)
			continue
		}

		item.Mean = Mean(a.Values)
		if item.Mean == 0 {
			item.Flag = FlagZeroMean
			item.Group = GroupZ
			items = append(items, item)
			continue
		}

		item.StdDev = SampleStdDev(a.Values)
		item.CV = item.StdDev / item.Mean
		item.CVDefined = true
		definedCVs = append(definedCVs, item.CV)
		items = append(items, item)
	}

	if len(definedCVs) < 2 {
		return nil, apperrors.DegenerateInput("fewer than 2 items have a defined CV, percentile thresholds are undefined")
	}

	result := &XYZResult{
		XThreshold: Percentile(definedCVs, c.xQuantile),
		YThreshold: Percentile(definedCVs, c.yQuantile),
		Counts:     make(map[XYZGroup]int),
	}
	c.logger.Info("CV thresholds determined from run distribution",
		"x_threshold", result.XThreshold,
		"y_threshold", result.YThreshold,
		"defined_cvs", len(definedCVs),
	)

	for _, item := range items {
		if !item.CVDefined {
			policy := c.singlePolicy
			if item.Flag == FlagZeroMean {
				policy = c.zeroPolicy
			}
			if policy == UndefinedCVExclude {
				c.logger.Warn("excluding item with undefined CV",
					"sku", item.SKU, "reason", string(item.Flag))
				continue
			}
			result.Items = append(result.Items, item)
			result.Counts[item.Group]++
			continue
		}

		switch {
		case item.CV <= result.XThreshold:
			item.Group = GroupX
		case item.CV <= result.YThreshold:
			item.Group = GroupY
		default:
			item.Group = GroupZ
		}
		result.Items = append(result.Items, item)
		result.Counts[item.Group]++
	}

	c.logger.Info("XYZ classification complete",
		"items", len(result.Items),
		"group_x", result.Counts[GroupX],
		"group_y", result.Counts[GroupY],
		"group_z", result.Counts[GroupZ],
	)
	return result, nil
}
