package facet

import (
	"github.com/soypat/facet/abstract"
	"github.com/soypat/facet/internal/dn"
)

// Polytope is a rank structure with vertex coordinates.
type Polytope struct {
	Vertices [][]float64
	Abs      *abstract.Abstract
}

// Rank returns the rank of p.
func (p Polytope) Rank() int { return p.Abs.Rank() }

// Facet returns facet idx as a polytope with its own vertex list, in the
// ambient space of p.
func (p Polytope) Facet(idx int) Polytope {
	rank := p.Rank() - 1
	verts := p.Abs.ElementVertices(rank, idx)
	return Polytope{
		Vertices: dn.Pick(p.Vertices, verts),
		Abs:      p.Abs.Element(rank, idx),
	}
}

// Flatten expresses the vertices in coordinates of their affine hull.
func (p *Polytope) Flatten(tol float64) {
	p.Vertices, _ = flattenToHull(p.Vertices, tol)
}

// Circumcenter returns the point equidistant from every vertex. ok is false
// when the vertices do not lie on a sphere.
func (p Polytope) Circumcenter(tol float64) (center []float64, ok bool) {
	return dn.Circumcenter(p.Vertices, tol)
}

// Recenter translates p so its circumcenter is at the origin. Without a
// circumsphere the centroid is used.
func (p *Polytope) Recenter(tol float64) {
	c, ok := p.Circumcenter(tol)
	if !ok {
		c = dn.Centroid(p.Vertices)
	}
	p.Vertices = dn.Translate(p.Vertices, c)
}

// EdgeLengths returns the length of every edge in edge order.
func (p Polytope) EdgeLengths() []float64 {
	edges := p.Abs.Edges()
	out := make([]float64, len(edges))
	for i, e := range edges {
		out[i] = dn.Distance(p.Vertices[e[0]], p.Vertices[e[1]])
	}
	return out
}

// flattenToHull returns the points in coordinates of their affine hull,
// or the points themselves when they already span their space.
func flattenToHull(points [][]float64, tol float64) ([][]float64, *dn.Subspace) {
	sub := dn.FromPoints(points, tol)
	if sub.Rank() == sub.Dim() {
		out := make([][]float64, len(points))
		for i, p := range points {
			out[i] = dn.Clone(p)
		}
		return out, sub
	}
	return sub.FlattenAll(points), sub
}
