/*
Package tabs implements tab stop policies.

A layout asks a Policy for the next tab stop after the current pen position
of a line. Fixed places stops at multiples of an advance; Stops honors a list
of explicit positions and then repeats a default interval.
*/
package tabs

import (
	"math"
	"sort"
)

// Policy computes tab stops.
type Policy interface {
	// NextTabStop returns the position of the first tab stop strictly after
	// position, for the tab character at text offset offset. It returns -1
	// if the policy has no stop to offer.
	NextTabStop(offset int, position float32) float32
}

// Fixed places tab stops at multiples of Advance.
type Fixed struct {
	Advance float32
}

// NextTabStop returns (floor(position/Advance)+1) * Advance.
func (f Fixed) NextTabStop(offset int, position float32) float32 {
	if !(f.Advance > 0) || math.IsInf(float64(f.Advance), 0) {
		return -1
	}
	n := math.Floor(float64(position/f.Advance)) + 1
	return float32(n) * f.Advance
}

// Stops places tab stops at explicit positions, followed by stops at
// multiples of Default.
type Stops struct {
	Positions []float32 // ascending
	Default   float32
}

// NewStops creates a stop list. positions need not be sorted.
func NewStops(def float32, positions ...float32) Stops {
	p := append([]float32(nil), positions...)
	sort.Slice(p, func(i, j int) bool { return p[i] < p[j] })
	return Stops{Positions: p, Default: def}
}

// NextTabStop returns the first explicit stop after position. Past the last
// explicit stop, the repeating default interval is used.
func (s Stops) NextTabStop(offset int, position float32) float32 {
	i := sort.Search(len(s.Positions), func(i int) bool {
		return s.Positions[i] > position
	})
	if i < len(s.Positions) {
		return s.Positions[i]
	}
	return Fixed{Advance: s.Default}.NextTabStop(offset, position)
}
