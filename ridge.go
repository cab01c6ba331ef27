package facet

import (
	"sort"

	"github.com/soypat/facet/orbit"
)

// contrib is how many times a facet orbit covers one ridge of an orbit.
type contrib struct {
	orbit int
	mul   int
}

// indexRidges assigns a global orbit to every ridge used by some candidate
// facet and records the orbit sizes. The size of a ridge orbit is the
// number of images of its vertex set times the number of distinct ridges
// sharing that vertex set.
func (lv *level) indexRidges() {
	reg := orbit.NewRegistry[string]()
	checkedVerts := make(orbit.Set)
	lv.ridgeOrbit = make([][][]int, len(lv.hyperplanes))
	lv.ridgeCounts = lv.ridgeCounts[:0]
	for h := range lv.hyperplanes {
		lv.ridgeOrbit[h] = make([][]int, len(lv.subFacets[h]))
		for sh, list := range lv.subFacets[h] {
			lv.ridgeOrbit[h][sh] = make([]int, len(list))
			for sf := range list {
				lv.ridgeOrbit[h][sh][sf] = -1
			}
		}
		for _, cand := range lv.facets[h] {
			for _, pr := range cand.pairs {
				if lv.ridgeOrbit[h][pr.Hyperplane][pr.Facet] >= 0 {
					continue
				}
				ridge := lv.subFacets[h][pr.Hyperplane][pr.Facet].Clone()
				ridge.SortStrong()
				verts := ridge.Vertices()
				id := -1
				counting := make(orbit.Set)
				same := make(map[string]bool)
				for r, row := range lv.table {
					img := lv.table.ImageSorted(r, verts)
					hit := checkedVerts.Has(img)
					self := equalInts(img, verts)
					if hit || self {
						mapped := ridge.Clone()
						mapped.MapSubs(2, func(v int) int { return row[v] })
						mapped.SortStrong()
						key := mapped.Key()
						if hit {
							if got, ok := reg.Lookup(key); ok {
								id = got
								break
							}
						}
						if self {
							same[key] = true
						}
					}
					counting.Insert(img)
				}
				if id < 0 {
					id, _ = reg.Add(ridge.Key())
					checkedVerts.Insert(verts)
					lv.ridgeCounts = append(lv.ridgeCounts, len(counting)*len(same))
				}
				lv.ridgeOrbit[h][pr.Hyperplane][pr.Facet] = id
			}
		}
	}
}

// multiplicities computes, for every candidate facet, how many facets of
// its orbit meet each ridge of the orbits it touches:
//
//	mul(h,f,g) = count(h) * copies(h,f,g) / count(g)
//
// where copies sums the sub-hyperplane orbit sizes of the pieces of f in
// ridge orbit g. The division must be exact.
func (lv *level) multiplicities() {
	lv.contribs = make([][][]contrib, len(lv.hyperplanes))
	lv.ones = make([][]Pair, len(lv.ridgeCounts))
	for h, hp := range lv.hyperplanes {
		lv.contribs[h] = make([][]contrib, len(lv.facets[h]))
		for f, cand := range lv.facets[h] {
			copies := make(map[int]int)
			for _, pr := range cand.pairs {
				g := lv.ridgeOrbit[h][pr.Hyperplane][pr.Facet]
				copies[g] += lv.ffCounts[h][pr.Hyperplane]
			}
			cs := make([]contrib, 0, len(copies))
			for g, c := range copies {
				num := hp.count * c
				if num%lv.ridgeCounts[g] != 0 {
					invariant("ridge multiplicity %d*%d/%d is not an integer (hyperplane %d, facet %d, ridge orbit %d)",
						hp.count, c, lv.ridgeCounts[g], h, f, g)
				}
				cs = append(cs, contrib{orbit: g, mul: num / lv.ridgeCounts[g]})
			}
			sort.Slice(cs, func(i, j int) bool { return cs[i].orbit < cs[j].orbit })
			lv.contribs[h][f] = cs
			for _, c := range cs {
				if c.mul == 1 {
					lv.ones[c.orbit] = append(lv.ones[c.orbit], Pair{h, f})
				}
			}
		}
	}
}
