package group

import (
	"fmt"
	"math"

	"github.com/soypat/facet/internal/dn"
	"gonum.org/v1/gonum/mat"
)

// MaxOrder bounds the order of groups built by Generate.
const MaxOrder = 1 << 20

// matTol is the rounding used to identify generated matrices.
const matTol = 1e-6

// Group is a finite group of orthogonal transformations of R^Dim.
// The first element is the identity.
type Group struct {
	Dim      int
	Elements []*mat.Dense
}

// Order returns the number of elements of g.
func (g Group) Order() int { return len(g.Elements) }

// Trivial returns the group containing only the identity.
func Trivial(dim int) Group {
	return Group{Dim: dim, Elements: []*mat.Dense{dn.Identity(dim)}}
}

// CentralInversion returns the group {I, -I}.
func CentralInversion(dim int) Group {
	return Group{Dim: dim, Elements: []*mat.Dense{dn.Identity(dim), dn.Scaling(dim, -1)}}
}

// Generate returns the closure of the generators under multiplication.
func Generate(dim int, gens ...*mat.Dense) (Group, error) {
	for _, m := range gens {
		r, c := m.Dims()
		if r != dim || c != dim {
			return Group{}, fmt.Errorf("%w: generator is %dx%d, want %dx%d", ErrDimension, r, c, dim, dim)
		}
	}
	id := dn.Identity(dim)
	g := Group{Dim: dim, Elements: []*mat.Dense{id}}
	seen := map[dn.Key]bool{dn.MatKey(id, matTol): true}
	for next := 0; next < len(g.Elements); next++ {
		e := g.Elements[next]
		for _, gen := range gens {
			p := dn.Mul(gen, e)
			k := dn.MatKey(p, matTol)
			if seen[k] {
				continue
			}
			if len(g.Elements) == MaxOrder {
				return Group{}, ErrGroupTooLarge
			}
			seen[k] = true
			g.Elements = append(g.Elements, p)
		}
	}
	return g, nil
}

// Coxeter returns the reflection group of a linear Coxeter diagram: node i
// and node i+1 are joined by a branch of label diagram[i]. Labels may be
// fractional (5/2 gives a star angle). The group acts on R^(len(diagram)+1).
func Coxeter(diagram ...float64) (Group, error) {
	n := len(diagram) + 1
	gram := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		gram.SetSym(i, i, 1)
	}
	for i, m := range diagram {
		if m < 2 {
			return Group{}, fmt.Errorf("%w: label %v", ErrNotSpherical, m)
		}
		gram.SetSym(i, i+1, -math.Cos(math.Pi/m))
	}
	var ch mat.Cholesky
	// Euclidean diagrams give a singular Gram matrix.
	if !ch.Factorize(gram) || ch.Det() < 1e-9 {
		return Group{}, ErrNotSpherical
	}
	var l mat.TriDense
	ch.LTo(&l)
	gens := make([]*mat.Dense, n)
	for i := 0; i < n; i++ {
		normal := make([]float64, n)
		for j := 0; j <= i; j++ {
			normal[j] = l.At(i, j)
		}
		gens[i] = dn.Reflection(normal)
	}
	return Generate(n, gens...)
}

// Dihedral returns the symmetry group of the regular n-gon with a vertex
// on the positive x axis: n rotations and n reflections.
func Dihedral(n int) Group {
	g := Group{Dim: 2}
	for k := 0; k < n; k++ {
		s, c := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		g.Elements = append(g.Elements, mat.NewDense(2, 2, []float64{c, -s, s, c}))
	}
	for k := 0; k < n; k++ {
		s, c := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		g.Elements = append(g.Elements, mat.NewDense(2, 2, []float64{c, s, s, -c}))
	}
	return g
}

// Hyperoctahedral returns the symmetry group of the dim-cube as signed
// permutation matrices.
func Hyperoctahedral(dim int) Group {
	g := Group{Dim: dim}
	perms := permutations(dim)
	for _, p := range perms {
		for signs := 0; signs < 1<<dim; signs++ {
			m := mat.NewDense(dim, dim, nil)
			for i, j := range p {
				v := 1.0
				if signs&(1<<i) != 0 {
					v = -1
				}
				m.Set(j, i, v)
			}
			g.Elements = append(g.Elements, m)
		}
	}
	return g
}

// permutations returns all permutations of 0..n-1, identity first.
func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := len(p); pos >= 0; pos-- {
			q := make([]int, 0, n)
			q = append(q, p[:pos]...)
			q = append(q, n-1)
			q = append(q, p[pos:]...)
			out = append(out, q)
		}
	}
	return out
}

// Rotations returns the orientation preserving subgroup of g.
func (g Group) Rotations() Group {
	return g.Filter(func(m *mat.Dense) bool { return dn.IsRotation(m) })
}

// Filter returns the elements for which keep returns true, in order.
// It is up to the caller to keep a subgroup.
func (g Group) Filter(keep func(*mat.Dense) bool) Group {
	out := Group{Dim: g.Dim}
	for _, m := range g.Elements {
		if keep(m) {
			out.Elements = append(out.Elements, m)
		}
	}
	return out
}
