package facet

import (
	"math"
	"sort"

	"github.com/soypat/facet/internal/dn"
)

const (
	// tolerance is the default geometric epsilon.
	tolerance = 1e-9
	// dotScale is the rounding applied to dot products when grouping
	// vertices into layers below a vertex.
	dotScale = 1e7
)

// Floating Point Comparisons
// See: http://floating-point-gui.de/errors/NearlyEqualsTest.java

const minNormal = 2.2250738585072014e-308 // 2**-1022

// equalFloat reports whether a and b agree within a relative epsilon.
func equalFloat(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	absA := math.Abs(a)
	absB := math.Abs(b)
	diff := math.Abs(a - b)
	if a == 0 || b == 0 || diff < minNormal {
		// a or b is zero or both are extremely close to it
		// relative error is less meaningful here
		return diff < (epsilon * minNormal)
	}
	// use relative error
	return diff/math.Min((absA+absB), math.MaxFloat64) < epsilon
}

// lengthFilter bounds edge lengths. Zero values disable a bound.
type lengthFilter struct {
	min, max float64
	hasMin   bool
	hasMax   bool
	eps      float64
}

// ok reports whether length is within the filter, allowing eps slack.
func (f lengthFilter) ok(length float64) bool {
	if f.hasMin && length < f.min-f.eps {
		return false
	}
	if f.hasMax && length > f.max+f.eps {
		return false
	}
	return true
}

// distinctLengths returns the sorted distances from each representative to
// every other vertex, merged when closer than eps.
func distinctLengths(points [][]float64, reps []int, eps float64) []float64 {
	var all []float64
	for _, a := range reps {
		for b := range points {
			if b == a {
				continue
			}
			all = append(all, dn.Distance(points[a], points[b]))
		}
	}
	sort.Float64s(all)
	var out []float64
	for _, l := range all {
		if len(out) == 0 || !equalFloat(l, out[len(out)-1], eps) {
			out = append(out, l)
		}
	}
	return out
}
