package dn

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Rn vector manipulation routines. Points are plain []float64 so they
// can be handed to gonum without conversion.

// Elem returns a vector of dimension dim with all components set to v.
func Elem(dim int, v float64) []float64 {
	p := make([]float64, dim)
	for i := range p {
		p[i] = v
	}
	return p
}

// Clone returns a copy of p.
func Clone(p []float64) []float64 {
	return append([]float64(nil), p...)
}

// Sub returns a-b.
func Sub(a, b []float64) []float64 {
	return floats.SubTo(make([]float64, len(a)), a, b)
}

// Add returns a+b.
func Add(a, b []float64) []float64 {
	return floats.AddTo(make([]float64, len(a)), a, b)
}

// Scale returns f*p.
func Scale(f float64, p []float64) []float64 {
	return floats.ScaleTo(make([]float64, len(p)), f, p)
}

func Dot(a, b []float64) float64 { return floats.Dot(a, b) }

func Norm(p []float64) float64 { return floats.Norm(p, 2) }

// Distance returns the euclidean distance between a and b.
func Distance(a, b []float64) float64 { return floats.Distance(a, b, 2) }

// EqualWithin returns true if all components of a and b differ by at most tol.
func EqualWithin(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

// Centroid returns the arithmetic mean of points. It panics if points is empty.
func Centroid(points [][]float64) []float64 {
	if len(points) == 0 {
		panic("centroid of no points")
	}
	c := make([]float64, len(points[0]))
	for _, p := range points {
		floats.Add(c, p)
	}
	floats.Scale(1/float64(len(points)), c)
	return c
}

// Translate returns every point of points shifted by -origin.
func Translate(points [][]float64, origin []float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = Sub(p, origin)
	}
	return out
}

// Pick returns the points at the given indices.
func Pick(points [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = points[j]
	}
	return out
}

// Dim returns the common dimension of points or -1 if they disagree.
func Dim(points [][]float64) int {
	if len(points) == 0 {
		return 0
	}
	d := len(points[0])
	for _, p := range points[1:] {
		if len(p) != d {
			return -1
		}
	}
	return d
}
