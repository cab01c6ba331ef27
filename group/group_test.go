package group_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/facet/group"
	"github.com/soypat/facet/internal/dn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func TestCoxeterOrders(t *testing.T) {
	for _, test := range []struct {
		name    string
		diagram []float64
		order   int
	}{
		{"A1", nil, 2},
		{"I2(5)", []float64{5}, 10},
		{"A2", []float64{3}, 6},
		{"A3", []float64{3, 3}, 24},
		{"B3", []float64{4, 3}, 48},
		{"H3", []float64{5, 3}, 120},
		{"A4", []float64{3, 3, 3}, 120},
		{"B4", []float64{4, 3, 3}, 384},
		{"F4", []float64{3, 4, 3}, 1152},
	} {
		g, err := group.Coxeter(test.diagram...)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.order, g.Order(), test.name)
		assert.Equal(t, test.order/2, g.Rotations().Order(), test.name)
	}
}

func TestCoxeterNotSpherical(t *testing.T) {
	_, err := group.Coxeter(6, 3)
	assert.True(t, errors.Is(err, group.ErrNotSpherical))
	_, err = group.Coxeter(1)
	assert.True(t, errors.Is(err, group.ErrNotSpherical))
}

func TestHyperoctahedral(t *testing.T) {
	g := group.Hyperoctahedral(3)
	require.Equal(t, 48, g.Order())
	assert.True(t, dn.MatEqualWithin(g.Elements[0], dn.Identity(3), 0))
	for _, m := range g.Elements {
		assert.True(t, dn.IsOrthogonal(m, tol))
	}
	assert.Equal(t, 2, group.CentralInversion(4).Order())
	assert.Equal(t, 1, group.Trivial(4).Order())
}

func square() [][]float64 {
	return [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
}

func TestVertexMapDihedral(t *testing.T) {
	tbl, err := group.VertexMap(group.Dihedral(4), square(), tol)
	require.NoError(t, err)
	require.Len(t, tbl, 8)
	assert.Empty(t, cmp.Diff([]int{0, 1, 2, 3}, tbl[0]))
	assert.Empty(t, cmp.Diff([]int{1, 2, 3, 0}, tbl[1]))
	require.NoError(t, tbl.Validate(4))

	_, err = group.VertexMap(group.Dihedral(3), square(), tol)
	assert.True(t, errors.Is(err, group.ErrNotInvariant))
}

func TestTableValidate(t *testing.T) {
	assert.NoError(t, group.Table{{0, 1}, {1, 0}}.Validate(2))
	assert.True(t, errors.Is(group.Table{{1, 0}}.Validate(2), group.ErrNoIdentity))
	assert.True(t, errors.Is(group.Table{{0, 0}}.Validate(2), group.ErrNotPermutation))
	assert.True(t, errors.Is(group.Table{{0, 1, 2}}.Validate(2), group.ErrNotPermutation))

	tbl := group.Table{{1, 0, 2}, {0, 1, 2}}
	require.NoError(t, tbl.Normalize())
	assert.Equal(t, []int{0, 1, 2}, tbl[0])
}

func TestStabilizer(t *testing.T) {
	tbl, err := group.VertexMap(group.Dihedral(4), square(), tol)
	require.NoError(t, err)
	// Edge {0,1}: identity and the reflection swapping its ends.
	stab := tbl.Stabilizer([]int{0, 1})
	assert.Empty(t, cmp.Diff(group.Table{{0, 1}, {1, 0}}, stab))
	// Diagonal {0,2}: four rows act on it, two distinct permutations.
	assert.Len(t, tbl.Rows([]int{0, 2}), 4)
	assert.Len(t, tbl.Stabilizer([]int{0, 2}), 2)
	assert.True(t, tbl.Moves(0, 3))

	rot := group.Table{{0, 1, 2, 3}, {1, 2, 3, 0}, {2, 3, 0, 1}, {3, 0, 1, 2}}
	assert.Len(t, rot.Stabilizer([]int{0, 1}), 1)
	assert.Equal(t, []int{1, 2}, rot.ImageSorted(1, []int{0, 1}))
}

func TestCopyBySymmetry(t *testing.T) {
	cube := group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 1, 1}}, tol)
	assert.Len(t, cube, 8)
	cubocta := group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 1, 0}}, tol)
	assert.Len(t, cubocta, 12)
}

func TestOfPoints(t *testing.T) {
	g, tbl, err := group.OfPoints(square(), false, tol)
	require.NoError(t, err)
	assert.Equal(t, 8, g.Order())
	assert.Len(t, tbl, 8)
	assert.Equal(t, []int{0, 1, 2, 3}, tbl[0])

	g, _, err = group.OfPoints(square(), true, tol)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Order())

	cube := group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 1, 1}}, tol)
	g, tbl, err = group.OfPoints(cube, false, tol)
	require.NoError(t, err)
	assert.Equal(t, 48, g.Order())
	require.NoError(t, tbl.Validate(8))

	// A rectangle only has the Klein four-group.
	rect := [][]float64{{2, 1}, {-2, 1}, {-2, -1}, {2, -1}}
	g, _, err = group.OfPoints(rect, false, tol)
	require.NoError(t, err)
	assert.Equal(t, 4, g.Order())

	_, _, err = group.OfPoints([][]float64{{0, 0}, {1, 1}, {2, 2}}, false, tol)
	assert.True(t, errors.Is(err, group.ErrDegenerate))
}

func TestGenerateTooLargeDimension(t *testing.T) {
	_, err := group.Generate(2, mat.NewDense(3, 3, nil))
	assert.True(t, errors.Is(err, group.ErrDimension))
	s, c := math.Sincos(2 * math.Pi / 7)
	g, err := group.Generate(2, mat.NewDense(2, 2, []float64{c, -s, s, c}))
	require.NoError(t, err)
	assert.Equal(t, 7, g.Order())
}
