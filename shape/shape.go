// Package shape returns vertex sets of common uniform polytopes. It wraps
// mustshape, reporting invalid parameters as errors.
package shape

import (
	"fmt"
	"runtime/debug"

	"github.com/soypat/facet/shape/mustshape"
)

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

func recoverShape(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}

// Polygon returns the vertices of the regular n-gon.
func Polygon(n int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Polygon(n), err
}

// Simplex returns the vertices of the regular simplex of the given rank.
func Simplex(rank int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Simplex(rank), err
}

// Hypercube returns the vertices of the hypercube of the given rank.
func Hypercube(rank int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Hypercube(rank), err
}

// Orthoplex returns the vertices of the cross polytope of the given rank.
func Orthoplex(rank int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Orthoplex(rank), err
}

// Prism returns the vertices of the uniform n-gonal prism.
func Prism(n int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Prism(n), err
}

// Antiprism returns the vertices of the uniform n-gonal antiprism.
func Antiprism(n int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Antiprism(n), err
}

// Duoprism returns the vertices of the p-q duoprism.
func Duoprism(p, q int) (v [][]float64, err error) {
	defer recoverShape(&err)
	return mustshape.Duoprism(p, q), err
}

// Cuboctahedron returns the vertices of the cuboctahedron.
func Cuboctahedron() [][]float64 { return mustshape.Cuboctahedron() }

// Icosahedron returns the vertices of the icosahedron.
func Icosahedron() [][]float64 { return mustshape.Icosahedron() }

// Cell24 returns the vertices of the 24-cell.
func Cell24() [][]float64 { return mustshape.Cell24() }
