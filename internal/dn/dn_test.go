package dn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func TestSubspaceRank(t *testing.T) {
	for _, test := range []struct {
		name   string
		points [][]float64
		rank   int
		hyper  bool
	}{
		{"point", [][]float64{{1, 2, 3}}, 0, false},
		{"segment", [][]float64{{0, 0, 0}, {1, 1, 1}}, 1, false},
		{"collinear", [][]float64{{0, 0}, {1, 1}, {2, 2}}, 1, true},
		{"triangle", [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, 2, true},
		{"square", [][]float64{{1, 1, 0}, {-1, 1, 0}, {-1, -1, 0}, {1, -1, 0}}, 2, true},
		{"tetrahedron", [][]float64{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}, 3, false},
	} {
		s := FromPoints(test.points, tol)
		assert.Equal(t, test.rank, s.Rank(), test.name)
		assert.Equal(t, test.hyper, s.IsHyperplane(), test.name)
	}
}

func TestSubspaceDistanceAndFlatten(t *testing.T) {
	plane := FromPoints([][]float64{{0, 0, 2}, {1, 0, 2}, {0, 1, 2}}, tol)
	require.True(t, plane.IsHyperplane())
	assert.InDelta(t, 2, plane.Distance([]float64{0, 0, 0}), tol)
	assert.InDelta(t, 0, plane.Distance([]float64{5, -3, 2}), tol)
	assert.True(t, plane.Contains([]float64{7, 7, 2}))

	// Flattening preserves distances between points of the subspace.
	a, b := []float64{3, 4, 2}, []float64{-1, 1, 2}
	fa, fb := plane.Flatten(a), plane.Flatten(b)
	require.Len(t, fa, 2)
	assert.InDelta(t, Distance(a, b), Distance(fa, fb), tol)
	assert.True(t, EqualWithin(plane.Project([]float64{1, 1, -8}), []float64{1, 1, 2}, 1e-9))
}

func TestKeyOrder(t *testing.T) {
	a := []float64{1, 0.5, -2}
	b := []float64{1 + 1e-12, 0.5, -2}
	c := []float64{1, 0.6, -2}
	assert.Equal(t, KeyOf(a, tol), KeyOf(b, tol))
	assert.NotEqual(t, KeyOf(a, tol), KeyOf(c, tol))
	assert.Equal(t, 0, Compare(a, b, tol))
	assert.Equal(t, -1, Compare(a, c, tol))
	assert.Equal(t, 1, Compare(c, a, tol))

	idx := NewIndex([][]float64{a, c}, tol)
	i, ok := idx.Find(b)
	require.True(t, ok)
	assert.Equal(t, 0, i)
	_, ok = idx.Find([]float64{9, 9, 9})
	assert.False(t, ok)
}

func TestReflection(t *testing.T) {
	m := Reflection([]float64{0, 0, 2})
	assert.True(t, IsOrthogonal(m, tol))
	assert.False(t, IsRotation(m))
	assert.True(t, EqualWithin(Apply(m, []float64{1, 2, 3}), []float64{1, 2, -3}, tol))
	assert.True(t, MatEqualWithin(Mul(m, m), Identity(3), tol))

	diag := Reflection([]float64{1, 1})
	assert.True(t, EqualWithin(Apply(diag, []float64{1, 0}), []float64{0, -1}, tol))
	assert.True(t, EqualWithin(Apply(diag, []float64{2, -2}), []float64{-2, 2}, tol))
	assert.Panics(t, func() { Reflection([]float64{0, 0}) })
	assert.Panics(t, func() { Apply(diag, []float64{1, 2, 3}) })
	assert.Equal(t, MatKey(Identity(2), tol), MatKey(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), tol))
}

func TestCircumcenter(t *testing.T) {
	c, ok := Circumcenter([][]float64{{3, 0, 1}, {1, 2, 1}, {-1, 0, 1}}, tol)
	require.True(t, ok)
	assert.True(t, EqualWithin(c, []float64{1, 0, 1}, 1e-9), "%v", c)

	_, ok = Circumcenter([][]float64{{0, 0}, {1, 0}, {2, 0}}, tol)
	assert.False(t, ok, "collinear points have no circumcenter")

	c, ok = Circumcenter([][]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}, tol)
	require.True(t, ok)
	assert.InDelta(t, 0, math.Hypot(c[0], c[1]), 1e-9)
}
