package shape_test

import (
	"math"
	"testing"

	"github.com/soypat/facet/internal/dn"
	"github.com/soypat/facet/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// shortest returns the smallest distance between two points and how many
// pairs realize it.
func shortest(pts [][]float64) (float64, int) {
	min, n := math.Inf(1), 0
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := dn.Distance(pts[i], pts[j])
			switch {
			case d < min-1e-9:
				min, n = d, 1
			case math.Abs(d-min) <= 1e-9:
				n++
			}
		}
	}
	return min, n
}

func TestShapes(t *testing.T) {
	for _, test := range []struct {
		name     string
		pts      func() ([][]float64, error)
		vertices int
		dim      int
		edges    int
	}{
		{"triangle", func() ([][]float64, error) { return shape.Polygon(3) }, 3, 2, 3},
		{"hexagon", func() ([][]float64, error) { return shape.Polygon(6) }, 6, 2, 6},
		{"tetrahedron", func() ([][]float64, error) { return shape.Simplex(3) }, 4, 3, 6},
		{"5-cell", func() ([][]float64, error) { return shape.Simplex(4) }, 5, 4, 10},
		{"cube", func() ([][]float64, error) { return shape.Hypercube(3) }, 8, 3, 12},
		{"tesseract", func() ([][]float64, error) { return shape.Hypercube(4) }, 16, 4, 32},
		{"octahedron", func() ([][]float64, error) { return shape.Orthoplex(3) }, 6, 3, 12},
		{"pentagonal prism", func() ([][]float64, error) { return shape.Prism(5) }, 10, 3, 15},
		{"square antiprism", func() ([][]float64, error) { return shape.Antiprism(4) }, 8, 3, 16},
		{"3-4 duoprism", func() ([][]float64, error) { return shape.Duoprism(3, 4) }, 12, 4, 12 + 12},
		{"cuboctahedron", func() ([][]float64, error) { return shape.Cuboctahedron(), nil }, 12, 3, 24},
		{"icosahedron", func() ([][]float64, error) { return shape.Icosahedron(), nil }, 12, 3, 30},
		{"24-cell", func() ([][]float64, error) { return shape.Cell24(), nil }, 24, 4, 96},
	} {
		pts, err := test.pts()
		require.NoError(t, err, test.name)
		require.Len(t, pts, test.vertices, test.name)
		assert.Equal(t, test.dim, dn.Dim(pts), test.name)
		if test.name == "3-4 duoprism" {
			// Triangle and square edges differ in length.
			continue
		}
		_, n := shortest(pts)
		assert.Equal(t, test.edges, n, test.name)
	}
}

func TestShapeErrors(t *testing.T) {
	_, err := shape.Polygon(2)
	assert.EqualError(t, err, "n < 3")
	_, err = shape.Simplex(0)
	assert.Error(t, err)
	_, err = shape.Hypercube(0)
	assert.Error(t, err)
	_, err = shape.Orthoplex(-1)
	assert.Error(t, err)
	_, err = shape.Prism(2)
	assert.Error(t, err)
	_, err = shape.Antiprism(1)
	assert.Error(t, err)
	_, err = shape.Duoprism(3, 2)
	assert.Error(t, err)
}
