package facet

import (
	"fmt"

	"github.com/soypat/facet/group"
)

// Symmetry supplies the vertex permutation table a faceting is reduced by.
type Symmetry interface {
	// Table returns the action of the symmetry on vertices. Row 0 must be
	// the identity.
	Table(vertices [][]float64, tol float64) (group.Table, error)
}

// MatrixGroup is a group of orthogonal matrices mapping the vertex set
// onto itself.
type MatrixGroup group.Group

// Table implements Symmetry.
func (g MatrixGroup) Table(vertices [][]float64, tol float64) (group.Table, error) {
	return group.VertexMap(group.Group(g), vertices, tol)
}

// VertexMap is an explicit vertex permutation table. It is trusted to be
// closed under composition.
type VertexMap group.Table

// Table implements Symmetry.
func (m VertexMap) Table(vertices [][]float64, _ float64) (group.Table, error) {
	t := make(group.Table, len(m))
	for i, row := range m {
		t[i] = append([]int(nil), row...)
	}
	if err := t.Validate(len(vertices)); err != nil {
		return nil, err
	}
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	return t, nil
}

// Computed asks for the symmetry group of the vertex set itself, or its
// rotation subgroup when Chiral is set.
type Computed struct {
	Chiral bool
}

// Table implements Symmetry. Vertices lying in a proper affine subspace are
// handled by computing the symmetry within it.
func (c Computed) Table(vertices [][]float64, tol float64) (group.Table, error) {
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	pts, _ := flattenToHull(vertices, tol)
	if len(pts[0]) == 0 {
		return group.Identity(len(vertices)), nil
	}
	_, t, err := group.OfPoints(pts, c.Chiral, tol)
	if err != nil {
		return nil, fmt.Errorf("computing symmetry: %w", err)
	}
	return t, nil
}
