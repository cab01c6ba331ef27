package facet

import (
	"github.com/soypat/facet/abstract"
	"github.com/soypat/facet/internal/dn"
)

// isUniform reports whether every connected piece of the faceting has a
// single edge length.
func (lv *level) isUniform(ranks abstract.Ranks) bool {
	abs := build(ranks)
	for _, comp := range abs.Split() {
		var first float64
		for i, e := range comp.Edges() {
			l := dn.Distance(lv.points[comp.Vertices[e[0]]], lv.points[comp.Vertices[e[1]]])
			if i == 0 {
				first = l
				continue
			}
			if !equalFloat(l, first, lv.p.eps) {
				return false
			}
		}
	}
	return true
}

// markFissaries returns the facetings, other than mixed compounds, that
// use a fissary facet or have a compound element figure.
func (lv *level) markFissaries(out []candidate, compounds map[int][2]int) map[int]bool {
	res := make(map[int]bool)
	for a, c := range out {
		if _, ok := compounds[a]; ok {
			continue
		}
		if lv.usesFissaryFacet(c.pairs) || hasCompoundFigure(build(c.ranks)) {
			res[a] = true
		}
	}
	return res
}

func (lv *level) usesFissaryFacet(pairs []Pair) bool {
	for _, p := range pairs {
		if lv.fissary[p.Hyperplane][p.Facet] {
			return true
		}
	}
	return false
}

// hasCompoundFigure reports whether some component of abs has an element
// figure, of rank 2 and up in the dual, that is itself a compound.
func hasCompoundFigure(abs *abstract.Abstract) bool {
	for _, comp := range abs.Split() {
		dual := comp.Dual()
		for r := 2; r < abs.Rank(); r++ {
			if len(dual.Untangle(r)) > 0 {
				return true
			}
		}
	}
	return false
}
