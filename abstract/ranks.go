// Package abstract implements combinatorial polytopes stored rank by rank.
//
// A structure of rank n is held in a Ranks value of length n+2: index i
// lists the elements of rank i-1, so index 0 holds the nullitope, index 1
// the vertices and index n+1 the single body element. Every element lists
// the indices of its subelements in the previous index.
package abstract

import (
	"sort"
	"strconv"
	"strings"
)

// Element is a face of a polytope given by the indices of the faces it
// covers (Subs) and the faces covering it (Sups).
type Element struct {
	Subs []int
	Sups []int
}

// ElementList is the list of elements of a single rank.
type ElementList []Element

// Ranks is a polytope given rank by rank. See the package documentation
// for the indexing convention.
type Ranks []ElementList

// Rank returns the rank of the structure, len(r)-2.
func (r Ranks) Rank() int { return len(r) - 2 }

// Clone returns a deep copy of r.
func (r Ranks) Clone() Ranks {
	out := make(Ranks, len(r))
	for i, list := range r {
		out[i] = make(ElementList, len(list))
		for j, el := range list {
			out[i][j] = Element{
				Subs: append([]int(nil), el.Subs...),
				Sups: append([]int(nil), el.Sups...),
			}
		}
	}
	return out
}

// MapSubs replaces every subelement index at index i by m[sub].
func (r Ranks) MapSubs(i int, m func(int) int) {
	for j := range r[i] {
		for k, s := range r[i][j].Subs {
			r[i][j].Subs[k] = m(s)
		}
	}
}

// SortStrong sorts r into a canonical form. Starting at the edges, every
// subelement list is sorted and the elements of each rank are reordered by
// their subelement lists, with the next rank's indices remapped
// accordingly. Two structures that differ only by the order of their
// elements above the vertices sort to the same value.
// Sups are discarded.
func (r Ranks) SortStrong() {
	for i := range r {
		for j := range r[i] {
			r[i][j].Sups = nil
		}
	}
	if len(r) < 3 {
		return
	}
	for j := range r[2] {
		sort.Ints(r[2][j].Subs)
	}
	for i := 2; i < len(r); i++ {
		list := r[i]
		order := make([]int, len(list))
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return lessInts(list[order[a]].Subs, list[order[b]].Subs)
		})
		perm := make([]int, len(list))
		sorted := make(ElementList, len(list))
		for newIdx, old := range order {
			perm[old] = newIdx
			sorted[newIdx] = list[old]
		}
		r[i] = sorted
		if i+1 < len(r) {
			r.MapSubs(i+1, func(s int) int { return perm[s] })
			for j := range r[i+1] {
				sort.Ints(r[i+1][j].Subs)
			}
		}
	}
}

// Key returns a string that identifies r up to equality of subelement lists.
func (r Ranks) Key() string {
	var sb strings.Builder
	for i, list := range r {
		if i > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.Itoa(len(list)))
		if i < 2 {
			continue
		}
		for _, el := range list {
			sb.WriteByte(';')
			for k, s := range el.Subs {
				if k > 0 {
					sb.WriteByte(',')
				}
				sb.WriteString(strconv.Itoa(s))
			}
		}
	}
	return sb.String()
}

// Vertices returns the sorted, deduplicated vertex indices referenced by the
// edges (index 2) of r.
func (r Ranks) Vertices() []int {
	if len(r) < 3 {
		return nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, el := range r[2] {
		for _, v := range el.Subs {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	sort.Ints(out)
	return out
}

// Dyad returns the rank structure of a segment between vertices 0 and 1.
func Dyad() Ranks {
	return Ranks{
		{{}},
		{{Subs: []int{0}}, {Subs: []int{0}}},
		{{Subs: []int{0, 1}}},
	}
}

// Point returns the structure used for a single vertex v of a dyad when it
// acts as a ridge: no nullitope list, one vertex, and a body element whose
// only subelement is v. This keeps vertex references at index 2 for
// structures of every rank.
func Point(v int) Ranks {
	return Ranks{
		{},
		{{Subs: []int{0}}},
		{{Subs: []int{v}}},
	}
}

func lessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
