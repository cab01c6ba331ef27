package dn

import (
	"math"
	"strconv"
)

// Key is a total-order wrapper for points: every component is rounded to a
// multiple of the tolerance it was built with. Equal keys compare equal with
// ==, so Key can be used for map lookups of floating point positions.
type Key string

// KeyOf returns the rounded key of p.
func KeyOf(p []float64, tol float64) Key {
	b := make([]byte, 0, 8*len(p))
	for i, v := range p {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, round(v, tol), 10)
	}
	return Key(b)
}

// Compare orders a and b lexicographically after rounding to tol.
// It returns -1, 0 or 1.
func Compare(a, b []float64, tol float64) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ra, rb := round(a[i], tol), round(b[i], tol)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

func round(v, tol float64) int64 {
	return int64(math.Round(v / tol))
}

// Index finds points of a fixed set by position.
type Index struct {
	tol    float64
	keys   map[Key]int
	points [][]float64
}

// NewIndex indexes points. Lookups match within tol.
func NewIndex(points [][]float64, tol float64) *Index {
	idx := &Index{tol: tol, keys: make(map[Key]int, len(points)), points: points}
	for i, p := range points {
		k := KeyOf(p, tol)
		if _, ok := idx.keys[k]; !ok {
			idx.keys[k] = i
		}
	}
	return idx
}

// Find returns the index of the point equal to p within tolerance.
// Points sitting on a rounding boundary fall back to a linear scan.
func (idx *Index) Find(p []float64) (int, bool) {
	if i, ok := idx.keys[KeyOf(p, idx.tol)]; ok {
		return i, true
	}
	for i, q := range idx.points {
		if EqualWithin(p, q, idx.tol) {
			return i, true
		}
	}
	return -1, false
}

// Len returns the number of indexed points.
func (idx *Index) Len() int { return len(idx.points) }
