package group

import (
	"fmt"
	"math"

	"github.com/soypat/facet/internal/dn"
	"gonum.org/v1/gonum/mat"
)

// VertexMap returns the permutation table of g acting on points. Every
// element must map the point set onto itself within tol.
func VertexMap(g Group, points [][]float64, tol float64) (Table, error) {
	idx := dn.NewIndex(points, tol)
	t := make(Table, 0, g.Order())
	for e, m := range g.Elements {
		r, c := m.Dims()
		if r != c || (len(points) > 0 && c != len(points[0])) {
			return nil, fmt.Errorf("%w: element %d is %dx%d", ErrDimension, e, r, c)
		}
		row := make([]int, len(points))
		for i, p := range points {
			j, ok := idx.Find(dn.Apply(m, p))
			if !ok {
				return nil, fmt.Errorf("%w: element %d moves vertex %d off the set", ErrNotInvariant, e, i)
			}
			row[i] = j
		}
		t = append(t, row)
	}
	if err := t.Validate(len(points)); err != nil {
		return nil, err
	}
	if err := t.Normalize(); err != nil {
		return nil, err
	}
	return t, nil
}

// CopyBySymmetry returns the orbit of the seed points under g, seeds first.
func CopyBySymmetry(g Group, seeds [][]float64, tol float64) [][]float64 {
	seen := make(map[dn.Key]bool)
	var out [][]float64
	add := func(p []float64) {
		k := dn.KeyOf(p, tol)
		if !seen[k] {
			seen[k] = true
			out = append(out, p)
		}
	}
	for _, s := range seeds {
		add(dn.Clone(s))
	}
	for _, s := range seeds {
		for _, m := range g.Elements {
			add(dn.Apply(m, s))
		}
	}
	return out
}

// OfPoints computes the symmetry group of a point set about its centroid.
// With chiral set only rotations are returned. The points must span
// their ambient space; flatten them beforehand otherwise.
//
// Candidate elements are found by mapping a basis of vertices onto every
// vertex tuple with the same norms and mutual dot products.
func OfPoints(points [][]float64, chiral bool, tol float64) (Group, Table, error) {
	dim := dn.Dim(points)
	if dim <= 0 {
		return Group{}, nil, fmt.Errorf("%w: %d points of dimension %d", ErrDegenerate, len(points), dim)
	}
	center := dn.Centroid(points)
	q := dn.Translate(points, center)
	var scale float64
	for _, p := range q {
		scale = math.Max(scale, dn.Norm(p))
	}
	eps := tol * math.Max(1, scale*scale)

	// Greedy basis of vertex directions.
	var basis []int
	for i, p := range q {
		if dn.Norm(p) <= tol {
			continue
		}
		pts := [][]float64{make([]float64, dim)}
		for _, b := range basis {
			pts = append(pts, q[b])
		}
		pts = append(pts, p)
		if dn.FromPoints(pts, tol).Rank() == len(basis)+1 {
			basis = append(basis, i)
			if len(basis) == dim {
				break
			}
		}
	}
	if len(basis) < dim {
		return Group{}, nil, fmt.Errorf("%w: rank %d in dimension %d", ErrDegenerate, len(basis), dim)
	}
	bm := mat.NewDense(dim, dim, nil)
	for j, b := range basis {
		bm.SetCol(j, q[b])
	}
	var binv mat.Dense
	if err := binv.Inverse(bm); err != nil {
		return Group{}, nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}

	idx := dn.NewIndex(q, math.Sqrt(tol))
	g := Group{Dim: dim}
	var t Table
	img := make([]int, dim)
	var search func(k int)
	search = func(k int) {
		if k == dim {
			qm := mat.NewDense(dim, dim, nil)
			for j, v := range img {
				qm.SetCol(j, q[v])
			}
			m := dn.Mul(qm, &binv)
			if !dn.IsOrthogonal(m, math.Sqrt(tol)) || (chiral && !dn.IsRotation(m)) {
				return
			}
			row := make([]int, len(q))
			for i, p := range q {
				j, ok := idx.Find(dn.Apply(m, p))
				if !ok {
					return
				}
				row[i] = j
			}
			g.Elements = append(g.Elements, m)
			t = append(t, row)
			return
		}
		bk := q[basis[k]]
		for v, p := range q {
			if math.Abs(dn.Dot(p, p)-dn.Dot(bk, bk)) > eps {
				continue
			}
			ok := true
			for j := 0; j < k && ok; j++ {
				ok = math.Abs(dn.Dot(p, q[img[j]])-dn.Dot(bk, q[basis[j]])) <= eps
			}
			if ok {
				img[k] = v
				search(k + 1)
			}
		}
	}
	search(0)
	if err := t.Validate(len(points)); err != nil {
		return Group{}, nil, err
	}
	for r, row := range t {
		if isIdentity(row) {
			t[0], t[r] = t[r], t[0]
			g.Elements[0], g.Elements[r] = g.Elements[r], g.Elements[0]
			break
		}
	}
	return g, t, nil
}
