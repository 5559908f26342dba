package classify

import (
	"log/slog"
	"sort"

	apperrors "invcli/internal/errors"
)

// AggregateValues reduces rows to one total value per SKU, where value is
// quantity times the SKU's unit cost. SKUs appear in the returned slice in
// order of first appearance in rows, so a rerun over the same input produces
// the same sequence regardless of map iteration order.
//
// SKUs with no entry in costs are returned separately; the caller decides
// whether they abort the run or become excluded items.
func AggregateValues(rows []Row, costs CostTable) (aggs []ValueAggregate, missing []string) {
	totals := make(map[string]float64)
	hasCost := make(map[string]bool)
	var order []string

	for _, r := range rows {
		if _, seen := totals[r.SKU]; !seen {
			totals[r.SKU] = 0
			order = append(order, r.SKU)
			_, hasCost[r.SKU] = costs[r.SKU]
		}
		totals[r.SKU] += r.Quantity * costs[r.SKU]
	}

	for _, sku := range order {
		if !hasCost[sku] {
			missing = append(missing, sku)
			continue
		}
		aggs = append(aggs, ValueAggregate{SKU: sku, TotalValue: totals[sku]})
	}
	return aggs, missing
}

// AggregatePeriods reduces rows to one summed quantity per (SKU, period).
// Period order within each aggregate follows first appearance of the period
// across the whole input, and SKU order follows first appearance of the SKU,
// keeping output stable across reruns.
func AggregatePeriods(rows []Row) []PeriodAggregate {
	type key struct{ sku, period string }
	sums := make(map[key]float64)
	periodsBySKU := make(map[string][]string)
	var skuOrder, periodOrder []string
	seenSKU := make(map[string]bool)
	seenPeriod := make(map[string]bool)

	for _, r := range rows {
		if !seenSKU[r.SKU] {
			seenSKU[r.SKU] = true
			skuOrder = append(skuOrder, r.SKU)
		}
		if !seenPeriod[r.Period] {
			seenPeriod[r.Period] = true
			periodOrder = append(periodOrder, r.Period)
		}
		k := key{r.SKU, r.Period}
		if _, ok := sums[k]; !ok {
			periodsBySKU[r.SKU] = append(periodsBySKU[r.SKU], r.Period)
		}
		sums[k] += r.Quantity
	}

	// Rank periods by global first appearance so every SKU's series runs in
	// the same period order.
	rank := make(map[string]int, len(periodOrder))
	for i, p := range periodOrder {
		rank[p] = i
	}

	aggs := make([]PeriodAggregate, 0, len(skuOrder))
	for _, sku := range skuOrder {
		periods := periodsBySKU[sku]
		sort.Slice(periods, func(i, j int) bool { return rank[periods[i]] < rank[periods[j]] })
		values := make([]float64, len(periods))
		for i, p := range periods {
			values[i] = sums[key{sku, p}]
		}
		aggs = append(aggs, PeriodAggregate{SKU: sku, Periods: periods, Values: values})
	}
	return aggs
}

// Densify expands each aggregate to cover every period seen anywhere in the
// input, filling absent (SKU, period) cells with zero. A month with no stock
// row is a real observation of zero, and leaving it out understates
// volatility.
func Densify(aggs []PeriodAggregate) []PeriodAggregate {
	var periodOrder []string
	seen := make(map[string]bool)
	for _, a := range aggs {
		for _, p := range a.Periods {
			if !seen[p] {
				seen[p] = true
				periodOrder = append(periodOrder, p)
			}
		}
	}

	dense := make([]PeriodAggregate, len(aggs))
	for i, a := range aggs {
		byPeriod := make(map[string]float64, len(a.Periods))
		for j, p := range a.Periods {
			byPeriod[p] = a.Values[j]
		}
		values := make([]float64, len(periodOrder))
		for j, p := range periodOrder {
			values[j] = byPeriod[p]
		}
		dense[i] = PeriodAggregate{
			SKU:     a.SKU,
			Periods: append([]string(nil), periodOrder...),
			Values:  values,
		}
	}
	return dense
}

// ResolveMissingCosts applies the configured policy to SKUs that had no cost
// record. Under MissingCostFail it returns a MISSING_REFERENCE error; under
// MissingCostExclude it returns the excluded items, flagged and grouped C.
func ResolveMissingCosts(missing []string, policy MissingCostPolicy, logger *slog.Logger) ([]ABCItem, error) {
	if len(missing) == 0 {
		return nil, nil
	}
	if policy == MissingCostFail {
		return nil, apperrors.MissingReference(missing)
	}

	excluded := make([]ABCItem, len(missing))
	for i, sku := range missing {
		logger.Warn("excluding SKU with no cost record", "sku", sku)
		excluded[i] = ABCItem{SKU: sku, Group: GroupC, Flag: FlagMissingCost}
	}
	return excluded, nil
}
