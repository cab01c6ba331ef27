package abstract

import (
	"fmt"
	"sort"
)

// Abstract is a validated polytope: nullitope and body are unique, every
// subelement index is in range and the dyadic property holds. Sups are
// always populated.
type Abstract struct {
	ranks Ranks
}

// Builder accumulates a rank structure one rank at a time. Build performs
// the structural and dyadic validation.
type Builder struct {
	ranks Ranks
}

// NewBuilder returns a builder with capacity for a structure of the given rank.
func NewBuilder(rank int) *Builder {
	return &Builder{ranks: make(Ranks, 0, rank+2)}
}

// PushEmpty starts a new rank with no elements.
func (b *Builder) PushEmpty() {
	b.ranks = append(b.ranks, ElementList{})
}

// PushNullitope pushes the nullitope rank.
func (b *Builder) PushNullitope() {
	b.ranks = append(b.ranks, ElementList{{}})
}

// PushVertices pushes a vertex rank with n vertices.
func (b *Builder) PushVertices(n int) {
	list := make(ElementList, n)
	for i := range list {
		list[i].Subs = []int{0}
	}
	b.ranks = append(b.ranks, list)
}

// PushSubs appends an element with the given subelements to the last rank.
func (b *Builder) PushSubs(subs []int) {
	last := len(b.ranks) - 1
	b.ranks[last] = append(b.ranks[last], Element{Subs: append([]int(nil), subs...)})
}

// PushList pushes a whole rank. The list is copied.
func (b *Builder) PushList(list ElementList) {
	cp := make(ElementList, len(list))
	for i, el := range list {
		cp[i].Subs = append([]int(nil), el.Subs...)
	}
	b.ranks = append(b.ranks, cp)
}

// PushBody pushes a single element covering every element of the last rank.
func (b *Builder) PushBody() {
	n := len(b.ranks[len(b.ranks)-1])
	subs := make([]int, n)
	for i := range subs {
		subs[i] = i
	}
	b.ranks = append(b.ranks, ElementList{{Subs: subs}})
}

// Ranks returns the ranks pushed so far. The result aliases the builder.
func (b *Builder) Ranks() Ranks { return b.ranks }

// Build validates the structure and returns the polytope.
// Errors wrap ErrMalformed or are a *DyadicError.
func (b *Builder) Build() (*Abstract, error) {
	r := b.ranks.Clone()
	if err := validate(r); err != nil {
		return nil, err
	}
	linkSups(r)
	if err := checkDyadic(r); err != nil {
		return nil, err
	}
	return &Abstract{ranks: r}, nil
}

func validate(r Ranks) error {
	if len(r) < 2 {
		return fmt.Errorf("%w: %d ranks", ErrMalformed, len(r))
	}
	if len(r[0]) != 1 || len(r[0][0].Subs) != 0 {
		return fmt.Errorf("%w: bad nullitope", ErrMalformed)
	}
	if len(r[len(r)-1]) != 1 {
		return fmt.Errorf("%w: %d body elements", ErrMalformed, len(r[len(r)-1]))
	}
	for i := 1; i < len(r); i++ {
		below := len(r[i-1])
		for j, el := range r[i] {
			if len(el.Subs) == 0 {
				return fmt.Errorf("%w: element %d of rank %d has no subelements", ErrMalformed, j, i-1)
			}
			seen := make(map[int]bool, len(el.Subs))
			for _, s := range el.Subs {
				if s < 0 || s >= below {
					return fmt.Errorf("%w: element %d of rank %d references %d of %d", ErrMalformed, j, i-1, s, below)
				}
				if seen[s] {
					return fmt.Errorf("%w: element %d of rank %d repeats subelement %d", ErrMalformed, j, i-1, s)
				}
				seen[s] = true
			}
		}
	}
	return nil
}

func linkSups(r Ranks) {
	for i := range r {
		for j := range r[i] {
			r[i][j].Sups = nil
		}
	}
	for i := 1; i < len(r); i++ {
		for j, el := range r[i] {
			for _, s := range el.Subs {
				r[i-1][s].Sups = append(r[i-1][s].Sups, j)
			}
		}
	}
}

func checkDyadic(r Ranks) error {
	count := make(map[int]int)
	for i := 2; i < len(r); i++ {
		for j, el := range r[i] {
			for k := range count {
				delete(count, k)
			}
			for _, b := range el.Subs {
				for _, a := range r[i-1][b].Subs {
					count[a]++
				}
			}
			for a, c := range count {
				if c != 2 {
					return &DyadicError{Rank: i - 1, Index: j, Sub: a, Count: c}
				}
			}
		}
	}
	return nil
}

// Rank returns the rank of the polytope.
func (a *Abstract) Rank() int { return a.ranks.Rank() }

// Ranks returns the underlying structure. It must not be modified.
func (a *Abstract) Ranks() Ranks { return a.ranks }

// ElementCount returns the number of elements of the given rank.
func (a *Abstract) ElementCount(rank int) int {
	if rank < -1 || rank > a.Rank() {
		return 0
	}
	return len(a.ranks[rank+1])
}

// Subs returns the subelements of element idx of the given rank.
func (a *Abstract) Subs(rank, idx int) []int { return a.ranks[rank+1][idx].Subs }

// Sups returns the superelements of element idx of the given rank.
func (a *Abstract) Sups(rank, idx int) []int { return a.ranks[rank+1][idx].Sups }

// Edges returns the vertex pairs of every edge.
func (a *Abstract) Edges() [][2]int {
	if a.Rank() < 1 {
		return nil
	}
	edges := make([][2]int, len(a.ranks[2]))
	for i, el := range a.ranks[2] {
		edges[i] = [2]int{el.Subs[0], el.Subs[1]}
	}
	return edges
}

// below returns, for every index up to top, the sorted indices of the
// elements under any of the given elements at index top.
func (a *Abstract) below(top int, elems []int) [][]int {
	keep := make([][]int, top+1)
	keep[top] = append([]int(nil), elems...)
	sort.Ints(keep[top])
	for i := top; i > 0; i-- {
		seen := make(map[int]bool)
		for _, e := range keep[i] {
			for _, s := range a.ranks[i][e].Subs {
				if !seen[s] {
					seen[s] = true
					keep[i-1] = append(keep[i-1], s)
				}
			}
		}
		sort.Ints(keep[i-1])
	}
	return keep
}

// restrict builds the ranks of the given kept elements, renumbering them.
func (a *Abstract) restrict(keep [][]int) Ranks {
	out := make(Ranks, len(keep))
	var prev map[int]int
	for i, idxs := range keep {
		cur := make(map[int]int, len(idxs))
		list := make(ElementList, len(idxs))
		for j, old := range idxs {
			cur[old] = j
			if i > 0 {
				subs := make([]int, len(a.ranks[i][old].Subs))
				for k, s := range a.ranks[i][old].Subs {
					subs[k] = prev[s]
				}
				list[j].Subs = subs
			} else {
				list[j].Subs = []int{}
			}
		}
		out[i] = list
		prev = cur
	}
	return out
}

// Element returns the section of the polytope under element idx of the
// given rank: the element as a polytope of its own.
func (a *Abstract) Element(rank, idx int) *Abstract {
	r := a.restrict(a.below(rank+1, []int{idx}))
	linkSups(r)
	return &Abstract{ranks: r}
}

// ElementVertices returns the sorted vertex indices of element idx of the
// given rank.
func (a *Abstract) ElementVertices(rank, idx int) []int {
	if rank < 0 {
		return nil
	}
	return a.below(rank+1, []int{idx})[1]
}

// Dual returns the dual polytope. All elements must be used by the body.
func (a *Abstract) Dual() *Abstract {
	n := len(a.ranks)
	r := make(Ranks, n)
	for i := range a.ranks {
		src := a.ranks[n-1-i]
		list := make(ElementList, len(src))
		for j, el := range src {
			list[j].Subs = append([]int{}, el.Sups...)
		}
		r[i] = list
	}
	linkSups(r)
	return &Abstract{ranks: r}
}

// Component is a connected piece of a polytope. Vertices maps the
// component's vertex indices back to the parent's.
type Component struct {
	*Abstract
	Vertices []int
}

// Split returns the components of the polytope. Two facets are in the same
// component when they are joined through a chain of shared ridges.
// A polytope of rank 1 or lower has a single component.
func (a *Abstract) Split() []Component {
	n := a.Rank()
	if n < 2 {
		var verts []int
		if n >= 0 {
			verts = a.below(len(a.ranks)-1, []int{0})[1]
		}
		return []Component{{Abstract: a, Vertices: verts}}
	}
	facetIdx := n // index of facets in ranks
	facets := len(a.ranks[facetIdx])
	parent := make([]int, facets)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, ridge := range a.ranks[facetIdx-1] {
		if len(ridge.Sups) < 2 {
			continue
		}
		for _, f := range ridge.Sups[1:] {
			ra, rb := find(ridge.Sups[0]), find(f)
			if ra != rb {
				parent[rb] = ra
			}
		}
	}
	groupOf := make(map[int]int)
	var groups [][]int
	for f := 0; f < facets; f++ {
		root := find(f)
		g, ok := groupOf[root]
		if !ok {
			g = len(groups)
			groupOf[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], f)
	}
	comps := make([]Component, len(groups))
	for i, g := range groups {
		keep := a.below(facetIdx, g)
		r := a.restrict(keep)
		body := make([]int, len(g))
		for j := range body {
			body[j] = j
		}
		r = append(r, ElementList{{Subs: body}})
		linkSups(r)
		comps[i] = Component{Abstract: &Abstract{ranks: r}, Vertices: keep[1]}
	}
	return comps
}

// IsCompound reports whether the polytope has more than one component.
func (a *Abstract) IsCompound() bool {
	return len(a.Split()) > 1
}

// Untangle returns the indices of the elements of the given rank whose
// sections are compound.
func (a *Abstract) Untangle(rank int) []int {
	var out []int
	for idx := 0; idx < a.ElementCount(rank); idx++ {
		if a.Element(rank, idx).IsCompound() {
			out = append(out, idx)
		}
	}
	return out
}
