package facet

import (
	"sort"

	"github.com/soypat/facet/abstract"
	"github.com/soypat/facet/orbit"
)

// facetImages returns every facet of a combination: each chosen facet is
// copied once per distinct image of its hyperplane.
func (lv *level) facetImages(pairs []Pair) []abstract.Ranks {
	var out []abstract.Ranks
	for _, p := range pairs {
		hv := lv.hyperplanes[p.Hyperplane].vertices
		base := lv.facets[p.Hyperplane][p.Facet].ranks
		seen := make(orbit.Set)
		for r, row := range lv.table {
			if !seen.Insert(lv.table.ImageSorted(r, hv)) {
				continue
			}
			img := base.Clone()
			img.MapSubs(2, func(v int) int { return row[v] })
			img.SortStrong()
			out = append(out, img)
		}
	}
	return out
}

// assemble glues the facets of a combination into the rank structure of
// the faceting. Elements of equal subelements are merged rank by rank from
// the edges up. With reindex set only the vertices used are kept, numbered
// by first use, and their original indices are returned.
func (lv *level) assemble(pairs []Pair, reindex bool) (abstract.Ranks, []int) {
	facets := lv.facetImages(pairs)
	n := lv.rank
	out := make(abstract.Ranks, n+2)
	out[0] = abstract.ElementList{{}}
	for i := 2; i < n; i++ {
		ids := orbit.NewRegistry[string]()
		var list abstract.ElementList
		for _, f := range facets {
			remap := make([]int, len(f[i]))
			for j, el := range f[i] {
				id, added := ids.Add(orbit.SetKey(el.Subs))
				if added {
					list = append(list, abstract.Element{Subs: append([]int(nil), el.Subs...)})
				}
				remap[j] = id
			}
			for j := range f[i+1] {
				subs := f[i+1][j].Subs
				for k, s := range subs {
					subs[k] = remap[s]
				}
				sort.Ints(subs)
			}
		}
		out[i] = list
	}
	for _, f := range facets {
		out[n] = append(out[n], abstract.Element{Subs: f[n][0].Subs})
	}
	body := make([]int, len(facets))
	for i := range body {
		body[i] = i
	}
	out[n+1] = abstract.ElementList{{Subs: body}}

	if reindex {
		return compact(out)
	}
	setVertices(out, len(lv.points))
	return out, nil
}

// compact renumbers the vertices of r by first use, dropping the unused
// ones, and returns the original index of each kept vertex.
func compact(r abstract.Ranks) (abstract.Ranks, []int) {
	var order []int
	newIdx := make(map[int]int)
	for _, el := range r[2] {
		for k, v := range el.Subs {
			id, ok := newIdx[v]
			if !ok {
				id = len(order)
				newIdx[v] = id
				order = append(order, v)
			}
			el.Subs[k] = id
		}
		sort.Ints(el.Subs)
	}
	setVertices(r, len(order))
	return r, order
}

func setVertices(r abstract.Ranks, n int) {
	r[1] = make(abstract.ElementList, n)
	for i := range r[1] {
		r[1][i].Subs = []int{0}
	}
}

// build validates an assembled structure. Failing the check means the
// orbit bookkeeping is broken.
func build(r abstract.Ranks) *abstract.Abstract {
	b := abstract.NewBuilder(r.Rank())
	for _, list := range r {
		b.PushList(list)
	}
	abs, err := b.Build()
	if err != nil {
		invariant("assembled faceting is not a polytope: %v", err)
	}
	return abs
}
