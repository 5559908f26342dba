// Package classify implements ABC and XYZ inventory classification.
//
// ABC analysis ranks items by their share of total monetary value: items are
// sorted descending by total value (quantity times unit cost), the running
// cumulative share of the grand total is computed, and inclusive thresholds
// over that share split the ranking into groups A, B and C.
//
// XYZ analysis classifies items by demand stability: each item's per-period
// quantities yield a coefficient of variation (sample standard deviation over
// mean), and the 33rd/66th percentiles of the run's own CV distribution split
// the items into groups X, Y and Z.
//
// The two analyses are independent pipelines over the same Row shape:
//
//	aggregate.go: group-by reducers (per SKU for ABC, per SKU+period for XYZ)
//	abc.go:       cumulative-share ranking and thresholding
//	xyz.go:       CV computation and empirical-percentile thresholding
//	stats.go:     mean, sample stddev, linear-interpolation percentile
//	validate.go:  row and parameter invariants
//
// Per-item conditions that cannot abort a run (missing cost record under the
// exclude policy, non-positive value, undefined CV) surface as Flag values on
// the classified items so the output never silently drops an item.
package classify
