package classify

// ABCGroup is the value-contribution class of an item.
type ABCGroup string

const (
	GroupA ABCGroup = "A"
	GroupB ABCGroup = "B"
	GroupC ABCGroup = "C"
)

// String returns the group letter.
func (g ABCGroup) String() string {
	return string(g)
}

// XYZGroup is the demand-stability class of an item.
type XYZGroup string

const (
	GroupX XYZGroup = "X"
	GroupY XYZGroup = "Y"
	GroupZ XYZGroup = "Z"
)

// String returns the group letter.
func (g XYZGroup) String() string {
	return string(g)
}

// Flag marks a per-item condition that did not abort the run but changed how
// the item was classified. Flags travel into the output so excluded or
// defaulted items are visible, never silently dropped.
type Flag string

const (
	FlagNone             Flag = ""
	FlagMissingCost      Flag = "missing_cost"
	FlagNonPositiveValue Flag = "non_positive_value"
	FlagInsufficientData Flag = "insufficient_data"
	FlagZeroMean         Flag = "zero_mean"
)

// Row is one normalized input observation: an item's quantity in a period.
// Period is already normalized to YYYY-MM granularity.
type Row struct {
	SKU      string
	Period   string
	Quantity float64
}

// CostTable maps SKU to unit cost.
type CostTable map[string]float64

// ValueAggregate is the per-item input to ABC classification.
type ValueAggregate struct {
	SKU        string
	TotalValue float64
}

// PeriodAggregate is the per-item input to XYZ classification: one summed
// quantity per distinct period, in period order.
type PeriodAggregate struct {
	SKU     string
	Periods []string
	Values  []float64
}

// ABCItem is one item's ABC classification result.
type ABCItem struct {
	SKU             string
	TotalValue      float64
	CumulativeShare float64
	Group           ABCGroup
	Flag            Flag
}

// ABCResult is the outcome of one ABC run.
type ABCResult struct {
	// Items are the ranked, classified items in descending value order.
	Items []ABCItem
	// Excluded holds items removed from ranking (non-positive value, or
	// missing cost under the exclude policy).
	Excluded   []ABCItem
	GrandTotal float64
	Counts     map[ABCGroup]int
}

// GroupFor returns the group assigned to the given SKU. Excluded items
// report group C with their flag preserved.
func (r *ABCResult) GroupFor(sku string) (ABCGroup, Flag, bool) {
	for _, it := range r.Items {
		if it.SKU == sku {
			return it.Group, it.Flag, true
		}
	}
	for _, it := range r.Excluded {
		if it.SKU == sku {
			return it.Group, it.Flag, true
		}
	}
	return "", FlagNone, false
}

// XYZItem is one item's XYZ classification result.
type XYZItem struct {
	SKU       string
	Values    []float64
	Mean      float64
	StdDev    float64
	CV        float64
	CVDefined bool
	Group     XYZGroup
	Flag      Flag
}

// XYZResult is the outcome of one XYZ run. Thresholds are the 33rd/66th
// percentiles recomputed from this run's CV distribution.
type XYZResult struct {
	Items      []XYZItem
	XThreshold float64
	YThreshold float64
	Counts     map[XYZGroup]int
}

// GroupFor returns the group assigned to the given SKU.
func (r *XYZResult) GroupFor(sku string) (XYZGroup, Flag, bool) {
	for _, it := range r.Items {
		if it.SKU == sku {
			return it.Group, it.Flag, true
		}
	}
	return "", FlagNone, false
}

// MissingCostPolicy controls what happens when stock SKUs have no cost record.
type MissingCostPolicy string

const (
	// MissingCostFail aborts the run with a MISSING_REFERENCE error.
	MissingCostFail MissingCostPolicy = "fail"
	// MissingCostExclude drops the affected items from ranking and reports
	// them as excluded with FlagMissingCost.
	MissingCostExclude MissingCostPolicy = "exclude"
)

// UndefinedCVPolicy controls items whose CV cannot be computed.
type UndefinedCVPolicy string

const (
	// UndefinedCVFlag assigns group Z and flags the item.
	UndefinedCVFlag UndefinedCVPolicy = "flag"
	// UndefinedCVExclude leaves the item out of the classified set entirely.
	UndefinedCVExclude UndefinedCVPolicy = "exclude"
)
