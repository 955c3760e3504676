package review

import (
	"encoding/json"

	"github.com/okian/shopease/internal/domain/model"
)

// Average is a ratio that may be undefined, e.g. the per-entity average of an
// empty band. An undefined Average never carries a value and marshals to null.
type Average struct {
	Value   float64
	Defined bool
}

// Undefined is the zero Average.
var Undefined = Average{}

// Ratio returns num/den, undefined when den is zero.
func Ratio(num, den float64) Average {
	if den == 0 {
		return Undefined
	}
	return Average{Value: num / den, Defined: true}
}

// Get returns the value and whether it is defined.
func (a Average) Get() (float64, bool) {
	return a.Value, a.Defined
}

// Or returns the value, or fallback when undefined.
func (a Average) Or(fallback float64) float64 {
	if !a.Defined {
		return fallback
	}
	return a.Value
}

// MarshalJSON renders undefined averages as null.
func (a Average) MarshalJSON() ([]byte, error) {
	if !a.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts null or a number.
func (a *Average) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*a = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*a = Average{Value: v, Defined: true}
	return nil
}

// Summary holds the derived totals for one band.
type Summary struct {
	Band        Band    `json:"band"`
	TotalOrders int64   `json:"total_orders"`
	EntityCount int     `json:"entity_count"`
	Average     Average `json:"average_orders_per_entity"`
}

// Empty reports whether no entity fell into the band.
func (s Summary) Empty() bool { return s.EntityCount == 0 }

// Result is the output of Summarize: one Summary per band in set order plus the
// anomalies seen while classifying.
type Result struct {
	Set       string    `json:"set"`
	Summaries []Summary `json:"bands"`

	// OutOfDomain counts entities whose score was outside [MinScore, MaxScore] or NaN.
	OutOfDomain int `json:"out_of_domain"`
	// NegativeCounts counts classified entities with a negative order count.
	// Their counts are kept in the totals as-is.
	NegativeCounts int `json:"negative_counts"`
}

// Get returns the summary for label.
func (r Result) Get(label string) (Summary, bool) {
	for _, s := range r.Summaries {
		if s.Band.Label == label {
			return s, true
		}
	}
	return Summary{}, false
}

// TotalOrders sums the totals over every band.
func (r Result) TotalOrders() int64 {
	var total int64
	for _, s := range r.Summaries {
		total += s.TotalOrders
	}
	return total
}

// EmptyBands returns the labels of bands with no entities.
func (r Result) EmptyBands() []string {
	var labels []string
	for _, s := range r.Summaries {
		if s.Empty() {
			labels = append(labels, s.Band.Label)
		}
	}
	return labels
}

// Summarize classifies entities with set and computes one Summary per band.
// Every band of set is present in the result, empty ones with an undefined
// average. Entities are counted once per distinct ID within a band.
func Summarize(entities []model.Entity, set BandSet) Result {
	res := Result{
		Set:       set.Name,
		Summaries: make([]Summary, len(set.Bands)),
	}
	index := make(map[string]int, len(set.Bands))
	seen := make([]map[string]struct{}, len(set.Bands))
	for i, b := range set.Bands {
		res.Summaries[i].Band = b
		index[b.Label] = i
		seen[i] = make(map[string]struct{})
	}

	for _, e := range entities {
		label, ok := AssignBand(e.ScoreMean, set)
		if !ok {
			res.OutOfDomain++
			continue
		}
		i := index[label]
		if e.Orders < 0 {
			res.NegativeCounts++
		}
		res.Summaries[i].TotalOrders += e.Orders
		seen[i][e.ID] = struct{}{}
	}

	for i := range res.Summaries {
		s := &res.Summaries[i]
		s.EntityCount = len(seen[i])
		s.Average = Ratio(float64(s.TotalOrders), float64(s.EntityCount))
	}
	return res
}
