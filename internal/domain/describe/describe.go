// Package describe computes the descriptive statistics behind the product
// detail comparison: box-plot summaries, means and relative uplift.
package describe

import (
	"math"
	"sort"

	"github.com/okian/shopease/internal/domain/review"
	"gonum.org/v1/gonum/stat"
)

// Box-plot constants.
const (
	whiskerFactor = 1.5
	percent       = 100
)

// BoxStats summarizes a sample the way a box plot draws it. Min and Max are the
// whisker ends: the extreme values within 1.5 IQR of the quartiles.
type BoxStats struct {
	Count    int       `json:"count"`
	Min      float64   `json:"min"`
	Q1       float64   `json:"q1"`
	Median   float64   `json:"median"`
	Q3       float64   `json:"q3"`
	Max      float64   `json:"max"`
	Mean     float64   `json:"mean"`
	Outliers []float64 `json:"outliers,omitempty"`
}

// Box computes box-plot statistics over values. NaN and infinite values are
// ignored. An empty sample returns a zero BoxStats with Count == 0.
func Box(values []float64) BoxStats {
	xs := finite(values)
	if len(xs) == 0 {
		return BoxStats{}
	}
	sort.Float64s(xs)

	b := BoxStats{
		Count:  len(xs),
		Q1:     quantile(0.25, xs),
		Median: quantile(0.5, xs),
		Q3:     quantile(0.75, xs),
		Mean:   stat.Mean(xs, nil),
	}

	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-whiskerFactor*iqr, b.Q3+whiskerFactor*iqr
	b.Min, b.Max = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		b.Min = math.Min(b.Min, x)
		b.Max = math.Max(b.Max, x)
	}
	if math.IsInf(b.Min, 1) {
		b.Min, b.Max = xs[0], xs[len(xs)-1]
	}
	return b
}

// quantile returns the p-quantile of sorted xs, interpolating linearly between
// the order statistics at p*(n-1).
func quantile(p float64, xs []float64) float64 {
	h := p * float64(len(xs)-1)
	lo := int(math.Floor(h))
	if lo+1 >= len(xs) {
		return xs[len(xs)-1]
	}
	return xs[lo] + (h-float64(lo))*(xs[lo+1]-xs[lo])
}

// Mean returns the arithmetic mean of values, undefined for an empty sample.
func Mean(values []float64) review.Average {
	xs := finite(values)
	if len(xs) == 0 {
		return review.Undefined
	}
	return review.Average{Value: stat.Mean(xs, nil), Defined: true}
}

// Uplift returns how much a exceeds b, in percent of b.
func Uplift(a, b review.Average) review.Average {
	av, aok := a.Get()
	bv, bok := b.Get()
	if !aok || !bok {
		return review.Undefined
	}
	return review.Ratio((av-bv)*percent, bv)
}

func finite(values []float64) []float64 {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, v)
	}
	return xs
}
