// Package survey aggregates Likert-scale survey responses into counts,
// percentages, category rollups and per-question means.
//
// Every operation is a pure function of an immutable Table and the Profile
// the Aggregator was built with. Absent or out-of-vocabulary cells are never
// an error: they are left out of numerators and per-column denominators but
// still count toward the all-cells denominator.
package survey

import "strconv"

// Aggregator evaluates survey statistics under a fixed Profile.
type Aggregator struct {
	profile Profile
}

// NewAggregator validates the profile and returns an Aggregator bound to it.
func NewAggregator(p Profile) (Aggregator, error) {
	if err := p.Validate(); err != nil {
		return Aggregator{}, err
	}
	return Aggregator{profile: p}, nil
}

// Profile returns the profile the aggregator was built with.
func (a Aggregator) Profile() Profile { return a.profile }

// ScaleCount pairs a code with its number of occurrences.
type ScaleCount struct {
	Code  Code
	Count int
}

// ScaleCounts is ordered by the profile's level declaration.
type ScaleCounts []ScaleCount

// Get returns the count for code, or 0.
func (s ScaleCounts) Get(c Code) int {
	for _, sc := range s {
		if sc.Code == c {
			return sc.Count
		}
	}
	return 0
}

// Total sums every count.
func (s ScaleCounts) Total() int {
	var n int
	for _, sc := range s {
		n += sc.Count
	}
	return n
}

// ScaleStat is a code with its count and percentage of a denominator.
type ScaleStat struct {
	Code    Code
	Count   int
	Percent float64
}

// Percent returns count/denom*100 rounded to one decimal, or 0 when denom is 0.
func Percent(count, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return Round(float64(count)/float64(denom)*100, 1)
}

// Round rounds the exact binary value of v to the given number of decimals,
// breaking exact ties to even.
func Round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', decimals, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func (a Aggregator) emptyCounts() ScaleCounts {
	out := make(ScaleCounts, len(a.profile.Levels))
	for i, l := range a.profile.Levels {
		out[i] = ScaleCount{Code: l.Code}
	}
	return out
}

// LevelAt returns the code declared at position i, or "" when out of range.
func (a Aggregator) LevelAt(i int) Code {
	if i < 0 || i >= len(a.profile.Levels) {
		return ""
	}
	return a.profile.Levels[i].Code
}

// Diagnostics summarizes how the cells of a table were classified.
type Diagnostics struct {
	TotalCells       int
	ParsedCells      int
	AbsentCells      int
	UnparseableCells int
}

// Excluded is the number of cells left out of every numerator.
func (d Diagnostics) Excluded() int { return d.AbsentCells + d.UnparseableCells }

// Diagnose classifies every cell of t.
func (a Aggregator) Diagnose(t Table) Diagnostics {
	d := Diagnostics{TotalCells: t.TotalCells()}
	for _, row := range t.rows {
		for _, v := range row {
			switch {
			case v == "":
				d.AbsentCells++
			default:
				if _, ok := a.profile.Lookup(v); ok {
					d.ParsedCells++
				} else {
					d.UnparseableCells++
				}
			}
		}
	}
	return d
}
