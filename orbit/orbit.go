// Package orbit reduces vertices, tuples and vertex sets modulo a vertex
// permutation table.
//
// Every object is canonicalized the same way: its images under all rows of
// the table are computed pointwise, sorted when the object is a set, and
// the least image in lexicographic order is the orbit representative.
package orbit

import (
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/facet/group"
)

// Registry assigns stable ids to canonical forms in order of first sight.
// It is append-only.
type Registry[K comparable] struct {
	ids  map[K]int
	reps []K
}

// NewRegistry returns an empty registry.
func NewRegistry[K comparable]() *Registry[K] {
	return &Registry[K]{ids: make(map[K]int)}
}

// Lookup returns the id of k if it has been added.
func (r *Registry[K]) Lookup(k K) (int, bool) {
	id, ok := r.ids[k]
	return id, ok
}

// Add returns the id of k, assigning the next free id on first sight.
func (r *Registry[K]) Add(k K) (id int, added bool) {
	if id, ok := r.ids[k]; ok {
		return id, false
	}
	id = len(r.reps)
	r.ids[k] = id
	r.reps = append(r.reps, k)
	return id, true
}

// Rep returns the canonical form registered under id.
func (r *Registry[K]) Rep(id int) K { return r.reps[id] }

// Len returns the number of registered orbits.
func (r *Registry[K]) Len() int { return len(r.reps) }

// SetKey returns a map key for an int slice.
func SetKey(set []int) string {
	var sb strings.Builder
	for i, v := range set {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

// Set is a collection of sorted vertex sets keyed by SetKey.
type Set map[string]bool

// Has reports whether the sorted set s is in the collection.
func (c Set) Has(s []int) bool { return c[SetKey(s)] }

// Insert adds s and reports whether it was new.
func (c Set) Insert(s []int) bool {
	k := SetKey(s)
	if c[k] {
		return false
	}
	c[k] = true
	return true
}

// Vertices returns the vertex orbits of an n-vertex table. Orbits are in
// order of their least vertex, which is their first element.
func Vertices(t group.Table, n int) [][]int {
	checked := make([]bool, n)
	var orbits [][]int
	for v := 0; v < n; v++ {
		if checked[v] {
			continue
		}
		var orb []int
		for _, row := range t {
			if w := row[v]; !checked[w] {
				checked[w] = true
				orb = append(orb, w)
			}
		}
		sort.Ints(orb)
		orbits = append(orbits, orb)
	}
	return orbits
}

// Pairs returns one representative per orbit of vertex pairs {a,b} with a
// a vertex orbit representative and a < b. accept filters candidate pairs
// before their orbit is swept; nil accepts all.
func Pairs(t group.Table, reps []int, n int, accept func(a, b int) bool) [][2]int {
	checked := make([][]bool, n)
	for i := range checked {
		checked[i] = make([]bool, n)
	}
	var out [][2]int
	for _, a := range reps {
		for b := a + 1; b < n; b++ {
			if checked[a][b] {
				continue
			}
			if accept != nil && !accept(a, b) {
				continue
			}
			for _, row := range t {
				x, y := row[a], row[b]
				if x > y {
					x, y = y, x
				}
				checked[x][y] = true
			}
			out = append(out, [2]int{a, b})
		}
	}
	return out
}

// Images returns the distinct images of the sorted set under t, as sorted
// sets, in order of first appearance.
func Images(t group.Table, set []int) [][]int {
	seen := make(Set)
	var out [][]int
	for r := range t {
		img := t.ImageSorted(r, set)
		if seen.Insert(img) {
			out = append(out, img)
		}
	}
	return out
}

// Size returns the number of distinct images of the sorted set.
func Size(t group.Table, set []int) int { return len(Images(t, set)) }

// Canonical returns the lexicographically least image of the sorted set.
func Canonical(t group.Table, set []int) []int {
	var best []int
	for r := range t {
		img := t.ImageSorted(r, set)
		if best == nil || less(img, best) {
			best = img
		}
	}
	return best
}

// ID returns the orbit id of the sorted set in reg, registering its
// canonical form on first sight.
func ID(reg *Registry[string], t group.Table, set []int) int {
	id, _ := reg.Add(SetKey(Canonical(t, set)))
	return id
}

func less(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
