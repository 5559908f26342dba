package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4.2}, 4.2},
		{"several", []float64{10, 12, 14}, 12},
		{"with zeros", []float64{0, 0, 6}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Mean(tt.values), 1e-12)
		})
	}
}

func TestSampleStdDev(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single value has no spread", []float64{5}, 0},
		{"constant", []float64{7, 7, 7}, 0},
		// ddof=1: variance (4+0+4)/2 = 4.
		{"sample variance", []float64{10, 12, 14}, 2},
		{"two values", []float64{1, 3}, 1.4142135623730951},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SampleStdDev(tt.values), 1e-12)
		})
	}
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		q      float64
		want   float64
	}{
		{"empty", nil, 0.5, 0},
		{"single", []float64{3}, 0.5, 3},
		{"q zero", []float64{1, 2, 3}, 0, 1},
		{"q one", []float64{1, 2, 3}, 1, 3},
		{"median odd", []float64{3, 1, 2}, 0.5, 2},
		// index = 0.5*3 = 1.5, halfway between 2 and 3.
		{"median even interpolates", []float64{1, 2, 3, 4}, 0.5, 2.5},
		// index = 0.33*2 = 0.66 between 0 and 1: 0.66.
		{"p33 of three", []float64{0, 1, 2}, 0.33, 0.66},
		{"unsorted input", []float64{9, 1, 5}, 0.5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Percentile(tt.values, tt.q), 1e-12)
		})
	}
}

func TestPercentileDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Percentile(values, 0.5)
	assert.Equal(t, []float64{3, 1, 2}, values)
}
