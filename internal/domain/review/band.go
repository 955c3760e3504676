// Package review partitions products and sellers into review-score bands and
// summarizes their order counts per band.
package review

import "math"

// Score domain bounds. Means outside [MinScore, MaxScore] are not classified.
const (
	MinScore = 1.0
	MaxScore = 5.0

	// GoodThreshold splits the good/bad partition: scores at or below it are Bad.
	GoodThreshold = 3.0
)

// Band labels.
const (
	OneStar   = "One-star"
	TwoStar   = "Two-star"
	ThreeStar = "Three-star"
	FourStar  = "Four-star"
	FiveStar  = "Five-star"
	Good      = "Good"
	Bad       = "Bad"
)

// Band is a labeled review-score interval with explicit bound inclusivity.
type Band struct {
	Label          string  `json:"label"`
	Lower          float64 `json:"lower"`
	Upper          float64 `json:"upper"`
	LowerInclusive bool    `json:"lower_inclusive"`
	UpperInclusive bool    `json:"upper_inclusive"`
}

// Contains reports whether score falls inside the band.
func (b Band) Contains(score float64) bool {
	if math.IsNaN(score) {
		return false
	}
	aboveLower := score > b.Lower || (b.LowerInclusive && score == b.Lower)
	belowUpper := score < b.Upper || (b.UpperInclusive && score == b.Upper)
	return aboveLower && belowUpper
}

// BandSet is an ordered band table. Order matters: classification returns the
// first band that contains a score.
type BandSet struct {
	Name  string
	Bands []Band
}

// Labels returns the band labels in table order.
func (s BandSet) Labels() []string {
	labels := make([]string, len(s.Bands))
	for i, b := range s.Bands {
		labels[i] = b.Label
	}
	return labels
}

// Set names accepted by SetByName.
const (
	SetFive    = "five"
	SetGoodBad = "goodbad"
)

// FiveBand returns the five-way star band table. Each half-star boundary
// (1.5, 2.5, 3.5, 4.5) belongs to the higher band; 1.0 and 5.0 close the
// outer bands.
func FiveBand() BandSet {
	return BandSet{
		Name: SetFive,
		Bands: []Band{
			{Label: OneStar, Lower: MinScore, Upper: 1.5, LowerInclusive: true},
			{Label: TwoStar, Lower: 1.5, Upper: 2.5, LowerInclusive: true},
			{Label: ThreeStar, Lower: 2.5, Upper: 3.5, LowerInclusive: true},
			{Label: FourStar, Lower: 3.5, Upper: 4.5, LowerInclusive: true},
			{Label: FiveStar, Lower: 4.5, Upper: MaxScore, LowerInclusive: true, UpperInclusive: true},
		},
	}
}

// GoodBad returns the two-way split at GoodThreshold. Good is listed first to
// match the chart order; Bad is checked against its own interval so the order
// does not change classification.
func GoodBad() BandSet {
	return BandSet{
		Name: SetGoodBad,
		Bands: []Band{
			{Label: Good, Lower: GoodThreshold, Upper: MaxScore, UpperInclusive: true},
			{Label: Bad, Lower: MinScore, Upper: GoodThreshold, LowerInclusive: true, UpperInclusive: true},
		},
	}
}

// SetByName resolves a band set by its name.
func SetByName(name string) (BandSet, bool) {
	switch name {
	case SetFive, "":
		return FiveBand(), true
	case SetGoodBad:
		return GoodBad(), true
	default:
		return BandSet{}, false
	}
}

// InDomain reports whether score is a finite value in [MinScore, MaxScore].
func InDomain(score float64) bool {
	return !math.IsNaN(score) && score >= MinScore && score <= MaxScore
}

// AssignBand returns the label of the first band in set containing score.
// Out-of-domain and NaN scores are not classified.
func AssignBand(score float64, set BandSet) (string, bool) {
	if !InDomain(score) {
		return "", false
	}
	for _, b := range set.Bands {
		if b.Contains(score) {
			return b.Label, true
		}
	}
	return "", false
}
