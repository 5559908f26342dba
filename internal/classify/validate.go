package classify

import (
	"fmt"
	"math"
)

// ValidationError reports an invalid input row or parameter.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	if ve.Value != nil {
		return fmt.Sprintf("%s: %s (got %v)", ve.Field, ve.Message, ve.Value)
	}
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

// ValidateRows checks the row-level invariants every classifier assumes:
// non-empty SKU, non-empty period, non-negative finite quantity. The index
// reported is zero-based into the row slice.
func ValidateRows(rows []Row) error {
	if len(rows) == 0 {
		return &ValidationError{Field: "rows", Message: "no input rows"}
	}
	for i, r := range rows {
		if r.SKU == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("rows[%d].SKU", i),
				Message: "item identifier must be non-empty",
			}
		}
		if r.Period == "" {
			return &ValidationError{
				Field:   fmt.Sprintf("rows[%d].Period", i),
				Message: "period must be non-empty",
			}
		}
		if math.IsNaN(r.Quantity) || math.IsInf(r.Quantity, 0) {
			return &ValidationError{
				Field:   fmt.Sprintf("rows[%d].Quantity", i),
				Message: "quantity must be finite",
				Value:   r.Quantity,
			}
		}
		if r.Quantity < 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("rows[%d].Quantity", i),
				Message: "quantity must be non-negative",
				Value:   r.Quantity,
			}
		}
	}
	return nil
}

// validateShare checks a threshold lies strictly inside (0,1).
func validateShare(field string, v float64) error {
	if v <= 0 || v >= 1 {
		return &ValidationError{
			Field:   field,
			Message: "threshold must be strictly between 0 and 1",
			Value:   v,
		}
	}
	return nil
}
