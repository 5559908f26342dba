package classify

import (
	"fmt"
	"log/slog"
	"sort"

	apperrors "invcli/internal/errors"
)

// Default ABC cumulative-share thresholds. Items covering the top 80% of
// value are A, the next 15% are B, the remaining 5% are C. Raising AThreshold
// widens group A downward into B; raising BThreshold widens B downward into C.
const (
	DefaultAThreshold = 0.80
	DefaultBThreshold = 0.95
)

// ABCClassifier assigns A/B/C groups by cumulative value share.
type ABCClassifier struct {
	aThreshold float64
	bThreshold float64
	logger     *slog.Logger
}

// NewABCClassifier creates a classifier with the given cumulative-share
// thresholds. Both must lie in (0,1) with aThreshold < bThreshold.
func NewABCClassifier(aThreshold, bThreshold float64, logger *slog.Logger) (*ABCClassifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := validateShare("aThreshold", aThreshold); err != nil {
		return nil, err
	}
	if err := validateShare("bThreshold", bThreshold); err != nil {
		return nil, err
	}
	if aThreshold >= bThreshold {
		return nil, &ValidationError{
			Field:   "thresholds",
			Message: "aThreshold must be less than bThreshold",
			Value:   fmt.Sprintf("a=%.3f b=%.3f", aThreshold, bThreshold),
		}
	}
	return &ABCClassifier{aThreshold: aThreshold, bThreshold: bThreshold, logger: logger}, nil
}

// Classify ranks the aggregates by descending total value, computes each
// item's cumulative share of the grand total, and assigns groups with
// inclusive upper bounds: share <= aThreshold is A, <= bThreshold is B,
// everything past that is C.
//
// Items with non-positive total value carry no ranking information and would
// break the monotonicity of the cumulative share, so they are moved to the
// excluded set with FlagNonPositiveValue and grouped C. If nothing positive
// remains the distribution is undefined and Classify returns a
// DEGENERATE_INPUT error.
func (c *ABCClassifier) Classify(aggs []ValueAggregate) (*ABCResult, error) {
	result := &ABCResult{Counts: make(map[ABCGroup]int)}

	ranked := make([]ValueAggregate, 0, len(aggs))
	for _, a := range aggs {
		if a.TotalValue <= 0 {
			c.logger.Warn("excluding item with non-positive total value",
				"sku", a.SKU, "total_value", a.TotalValue)
			result.Excluded = append(result.Excluded, ABCItem{
				SKU:        a.SKU,
				TotalValue: a.TotalValue,
				Group:      GroupC,
				Flag:       FlagNonPositiveValue,
			})
			continue
		}
		ranked = append(ranked, a)
		result.GrandTotal += a.TotalValue
	}

	if result.GrandTotal <= 0 {
		return nil, apperrors.DegenerateInput("grand total value is not positive, cumulative shares are undefined")
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].TotalValue != ranked[j].TotalValue {
			return ranked[i].TotalValue > ranked[j].TotalValue
		}
		return ranked[i].SKU < ranked[j].SKU
	})

	var cumulative float64
	result.Items = make([]ABCItem, len(ranked))
	for i, a := range ranked {
		cumulative += a.TotalValue
		share := cumulative / result.GrandTotal

		var group ABCGroup
		switch {
		case share <= c.aThreshold:
			group = GroupA
		case share <= c.bThreshold:
			group = GroupB
		default:
			group = GroupC
		}

		result.Items[i] = ABCItem{
			SKU:             a.SKU,
			TotalValue:      a.TotalValue,
			CumulativeShare: share,
			Group:           group,
		}
		result.Counts[group]++
	}
	for _, it := range result.Excluded {
		result.Counts[it.Group]++
	}

	c.logger.Info("ABC classification complete",
		"items", len(result.Items),
		"excluded", len(result.Excluded),
		"group_a", result.Counts[GroupA],
		"group_b", result.Counts[GroupB],
		"group_c", result.Counts[GroupC],
	)
	return result, nil
}
