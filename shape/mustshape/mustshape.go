// Package mustshape returns the vertex sets of common uniform polytopes,
// centered on the origin with unit circumradius for polygons and unit
// coordinates otherwise. Invalid parameters panic.
package mustshape

import (
	"math"

	"github.com/soypat/facet/group"
	"github.com/soypat/facet/internal/dn"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

// Polygon returns the vertices of the regular n-gon of circumradius 1 with
// a vertex on the positive x axis.
func Polygon(n int) [][]float64 {
	if n < 3 {
		panic("n < 3")
	}
	return vec2s(polygon(n, 0))
}

func polygon(n int, phase float64) []r2.Vec {
	out := make([]r2.Vec, n)
	for k := range out {
		s, c := math.Sincos(phase + 2*math.Pi*float64(k)/float64(n))
		out[k] = r2.Vec{X: c, Y: s}
	}
	return out
}

// Simplex returns the regular simplex of the given rank with edge length
// sqrt(2), in rank dimensions.
func Simplex(rank int) [][]float64 {
	if rank < 1 {
		panic("rank < 1")
	}
	pts := make([][]float64, rank+1)
	for i := range pts {
		pts[i] = make([]float64, rank+1)
		pts[i][i] = 1
	}
	pts = dn.Translate(pts, dn.Centroid(pts))
	return dn.FromPoints(pts, tol).FlattenAll(pts)
}

// Hypercube returns the vertices {±1}^rank.
func Hypercube(rank int) [][]float64 {
	if rank < 1 {
		panic("rank < 1")
	}
	out := make([][]float64, 1<<rank)
	for i := range out {
		p := make([]float64, rank)
		for j := range p {
			p[j] = 1
			if i&(1<<j) != 0 {
				p[j] = -1
			}
		}
		out[i] = p
	}
	return out
}

// Orthoplex returns the vertices ±e_i of the cross polytope.
func Orthoplex(rank int) [][]float64 {
	if rank < 1 {
		panic("rank < 1")
	}
	out := make([][]float64, 0, 2*rank)
	for i := 0; i < rank; i++ {
		for _, s := range []float64{1, -1} {
			p := make([]float64, rank)
			p[i] = s
			out = append(out, p)
		}
	}
	return out
}

// Cuboctahedron returns the permutations of (±1, ±1, 0).
func Cuboctahedron() [][]float64 {
	return group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 1, 0}}, tol)
}

// Icosahedron returns the cyclic permutations of (0, ±1, ±φ).
func Icosahedron() [][]float64 {
	phi := (1 + math.Sqrt(5)) / 2
	var out []r3.Vec
	for _, a := range []float64{1, -1} {
		for _, b := range []float64{phi, -phi} {
			out = append(out,
				r3.Vec{X: 0, Y: a, Z: b},
				r3.Vec{X: a, Y: b, Z: 0},
				r3.Vec{X: b, Y: 0, Z: a},
			)
		}
	}
	return vec3s(out)
}

// Cell24 returns the permutations of (±1, ±1, 0, 0).
func Cell24() [][]float64 {
	return group.CopyBySymmetry(group.Hyperoctahedral(4), [][]float64{{1, 1, 0, 0}}, tol)
}

// Prism returns the uniform n-gonal prism: two unit n-gons at heights
// ±sin(π/n), making every edge of length 2sin(π/n).
func Prism(n int) [][]float64 {
	if n < 3 {
		panic("n < 3")
	}
	h := math.Sin(math.Pi / float64(n))
	var out []r3.Vec
	for _, z := range []float64{h, -h} {
		for _, p := range polygon(n, 0) {
			out = append(out, r3.Vec{X: p.X, Y: p.Y, Z: z})
		}
	}
	return vec3s(out)
}

// Antiprism returns the uniform n-gonal antiprism: two unit n-gons rotated
// by π/n from each other at the height making every edge equal.
func Antiprism(n int) [][]float64 {
	if n < 3 {
		panic("n < 3")
	}
	top := polygon(n, 0)
	bottom := polygon(n, math.Pi/float64(n))
	edge := r2.Norm(r2.Sub(top[1], top[0]))
	side := r2.Norm(r2.Sub(bottom[0], top[0]))
	h := math.Sqrt(edge*edge-side*side) / 2
	var out []r3.Vec
	for _, p := range top {
		out = append(out, r3.Vec{X: p.X, Y: p.Y, Z: h})
	}
	for _, p := range bottom {
		out = append(out, r3.Vec{X: p.X, Y: p.Y, Z: -h})
	}
	return vec3s(out)
}

// Duoprism returns the product of the unit p-gon and q-gon in 4 dimensions.
func Duoprism(p, q int) [][]float64 {
	if p < 3 || q < 3 {
		panic("p < 3 or q < 3")
	}
	var out [][]float64
	for _, a := range polygon(p, 0) {
		for _, b := range polygon(q, 0) {
			out = append(out, []float64{a.X, a.Y, b.X, b.Y})
		}
	}
	return out
}

func vec2s(v []r2.Vec) [][]float64 {
	out := make([][]float64, len(v))
	for i, p := range v {
		out[i] = []float64{p.X, p.Y}
	}
	return out
}

func vec3s(v []r3.Vec) [][]float64 {
	out := make([][]float64, len(v))
	for i, p := range v {
		out[i] = []float64{p.X, p.Y, p.Z}
	}
	return out
}
