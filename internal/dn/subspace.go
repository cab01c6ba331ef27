package dn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Subspace is the affine hull of a point set, stored as an offset point
// plus an orthonormal basis of its direction space.
type Subspace struct {
	offset []float64
	basis  [][]float64
	tol    float64
}

// FromPoints returns the affine hull of points. Singular values below tol
// are treated as zero, so nearly dependent points do not add a dimension.
// FromPoints panics if points is empty.
func FromPoints(points [][]float64, tol float64) *Subspace {
	if len(points) == 0 {
		panic("subspace of no points")
	}
	s := &Subspace{offset: Clone(points[0]), tol: tol}
	dim := len(points[0])
	if len(points) == 1 || dim == 0 {
		return s
	}
	a := mat.NewDense(len(points)-1, dim, nil)
	for i, p := range points[1:] {
		for j := range p {
			a.Set(i, j, p[j]-s.offset[j])
		}
	}
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return s
	}
	vals := svd.Values(nil)
	var v mat.Dense
	svd.VTo(&v)
	scale := math.Max(1, vals[0])
	for j, sv := range vals {
		if sv <= tol*scale {
			break
		}
		b := make([]float64, dim)
		for i := range b {
			b[i] = v.At(i, j)
		}
		s.basis = append(s.basis, b)
	}
	return s
}

// Rank returns the dimension of the subspace.
func (s *Subspace) Rank() int { return len(s.basis) }

// Dim returns the dimension of the ambient space.
func (s *Subspace) Dim() int { return len(s.offset) }

// IsHyperplane reports whether the subspace has codimension 1.
func (s *Subspace) IsHyperplane() bool { return s.Rank() == s.Dim()-1 }

// Flatten returns the coordinates of p in the subspace basis.
func (s *Subspace) Flatten(p []float64) []float64 {
	r := Sub(p, s.offset)
	c := make([]float64, len(s.basis))
	for i, b := range s.basis {
		c[i] = Dot(r, b)
	}
	return c
}

// FlattenAll flattens every point.
func (s *Subspace) FlattenAll(points [][]float64) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = s.Flatten(p)
	}
	return out
}

// Project returns the closest point to p in the subspace.
func (s *Subspace) Project(p []float64) []float64 {
	r := Sub(p, s.offset)
	out := Clone(s.offset)
	for _, b := range s.basis {
		d := Dot(r, b)
		for i := range out {
			out[i] += d * b[i]
		}
	}
	return out
}

// Distance returns the distance from p to the subspace.
func (s *Subspace) Distance(p []float64) float64 {
	return Distance(p, s.Project(p))
}

// Contains reports whether p lies in the subspace within tolerance.
func (s *Subspace) Contains(p []float64) bool {
	return s.Distance(p) < s.tol
}
