package dn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Linear transforms of Rn are represented by square *mat.Dense matrices
// acting on column vectors.

// Identity returns the dim×dim identity matrix.
func Identity(dim int) *mat.Dense {
	m := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Scaling returns f times the dim×dim identity.
func Scaling(dim int, f float64) *mat.Dense {
	m := Identity(dim)
	m.Scale(f, m)
	return m
}

// Reflection returns the matrix of the reflection through the hyperplane
// orthogonal to normal, I - 2nnᵀ/|n|². It panics on a zero normal.
func Reflection(normal []float64) *mat.Dense {
	n2 := Dot(normal, normal)
	if n2 == 0 {
		panic("reflection with zero normal")
	}
	n := mat.NewVecDense(len(normal), Clone(normal))
	var outer mat.Dense
	outer.Outer(2/n2, n, n)
	m := Identity(len(normal))
	m.Sub(m, &outer)
	return m
}

// Apply returns m·p.
func Apply(m mat.Matrix, p []float64) []float64 {
	r, c := m.Dims()
	if c != len(p) {
		panic("transform dimension mismatch")
	}
	if r == 0 || c == 0 {
		return make([]float64, r)
	}
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(c, p))
	return out.RawVector().Data
}

// Mul returns a·b.
func Mul(a, b mat.Matrix) *mat.Dense {
	var m mat.Dense
	m.Mul(a, b)
	return &m
}

// MatEqualWithin returns true if a and b have the same shape and all
// their entries differ by at most tol.
func MatEqualWithin(a, b mat.Matrix, tol float64) bool {
	return mat.EqualApprox(a, b, tol)
}

// IsOrthogonal reports whether mᵀm is the identity within tol.
func IsOrthogonal(m mat.Matrix, tol float64) bool {
	r, c := m.Dims()
	if r != c {
		return false
	}
	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	return mat.EqualApprox(&mtm, Identity(r), tol)
}

// IsRotation reports whether the orthogonal matrix m preserves orientation.
func IsRotation(m mat.Matrix) bool {
	return mat.Det(m) > 0
}

// MatKey returns a rounded key of the entries of m in row-major order.
func MatKey(m mat.Matrix, tol float64) Key {
	r, c := m.Dims()
	flat := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			flat = append(flat, m.At(i, j))
		}
	}
	return KeyOf(flat, tol)
}

// Circumcenter returns the point of the affine hull of points equidistant
// from all of them. ok is false when no such point exists.
func Circumcenter(points [][]float64, tol float64) (center []float64, ok bool) {
	if len(points) == 0 {
		return nil, false
	}
	sub := FromPoints(points, tol)
	flat := sub.FlattenAll(points)
	k := sub.Rank()
	if k == 0 {
		return Clone(points[0]), true
	}
	// |x-p_i|² = |x-p_0|² is linear in x: 2(p_i-p_0)·x = |p_i|²-|p_0|².
	a := mat.NewDense(len(flat)-1, k, nil)
	b := mat.NewVecDense(len(flat)-1, nil)
	p0 := flat[0]
	for i, p := range flat[1:] {
		for j := 0; j < k; j++ {
			a.Set(i, j, 2*(p[j]-p0[j]))
		}
		b.SetVec(i, Dot(p, p)-Dot(p0, p0))
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		return nil, false
	}
	c := make([]float64, k)
	for j := range c {
		c[j] = x.AtVec(j)
	}
	r0 := Distance(c, p0)
	for _, p := range flat {
		if math.Abs(Distance(c, p)-r0) > math.Sqrt(tol) {
			return nil, false
		}
	}
	// Back to ambient coordinates.
	out := Clone(sub.offset)
	for j, bv := range sub.basis {
		for i := range out {
			out[i] += c[j] * bv[i]
		}
	}
	return out, true
}
