package facet

import (
	"sort"

	"github.com/soypat/facet/abstract"
	"github.com/soypat/facet/group"
	"github.com/soypat/facet/internal/dn"
	"go.uber.org/zap"
)

// params are the options shared by every recursion level of a run.
type params struct {
	eps         float64
	edges       lengthFilter
	uniform     bool
	markFissary bool
	log         *zap.Logger
}

// hyperplane is an orbit representative: the sorted indices of the
// vertices lying on it and the size of its orbit.
type hyperplane struct {
	vertices []int
	count    int
}

// candidate is a faceting of one configuration: its rank structure, with
// vertex references in the configuration's indexing, and the facet pairs
// it was built from.
type candidate struct {
	ranks abstract.Ranks
	pairs []Pair
}

// solution is everything a level hands to the level above.
type solution struct {
	facetings []candidate
	// counts holds the orbit size of every hyperplane orbit.
	counts []int
	// facets holds, per hyperplane orbit, the possible facets in the
	// level's vertex indexing. They are the ridges of the level above.
	facets [][]abstract.Ranks
	// compounds maps a faceting to the two facetings it is the union of.
	compounds map[int][2]int
	fissary   map[int]bool
}

// level is one configuration being faceted: a point set of full rank
// together with its symmetry table.
type level struct {
	rank   int
	points [][]float64
	table  group.Table
	p      *params

	hyperplanes []hyperplane
	// Per hyperplane orbit.
	facets    [][]candidate // candidate facets, level indexing
	ffCounts  [][]int       // orbit sizes of the sub-hyperplanes
	subFacets [][][]abstract.Ranks
	compounds []map[int][2]int
	fissary   []map[int]bool

	ridgeOrbit  [][][]int // [h][subh][subf], -1 when unused
	ridgeCounts []int
	contribs    [][][]contrib // [h][f]
	ones        [][]Pair      // per ridge orbit, sorted
}

func newLevel(rank int, points [][]float64, table group.Table, p *params) *level {
	return &level{rank: rank, points: points, table: table, p: p}
}

// solve facets a configuration of the given rank. points must span a space
// of that dimension and table act on them. np, when not nil, applies the
// noble filter to the hyperplanes. maxPer caps the facetings returned.
func solve(rank int, points [][]float64, table group.Table, p *params, np *noblePackage, maxPer int) *solution {
	if rank == 1 {
		return solveDyad(points, table)
	}
	lv := newLevel(rank, points, table, p)
	lv.hyperplanes = lv.enumerateHyperplanes(np)
	lv.solveHyperplanes(0, false)
	lv.indexRidges()
	lv.multiplicities()

	var out []candidate
	truncated := false
	lv.search(searchOptions{extend: np == nil}, func(pairs []Pair) bool {
		ranks, _ := lv.assemble(pairs, false)
		if p.uniform && !lv.isUniform(ranks) {
			return false
		}
		out = append(out, candidate{ranks: ranks, pairs: pairs})
		if maxPer > 0 && len(out) >= maxPer {
			truncated = true
			return true
		}
		return false
	})
	out = sortCandidates(out)

	sol := &solution{
		facetings: out,
		counts:    make([]int, len(lv.hyperplanes)),
		facets:    make([][]abstract.Ranks, len(lv.hyperplanes)),
	}
	for h, hp := range lv.hyperplanes {
		sol.counts[h] = hp.count
		for _, c := range lv.facets[h] {
			sol.facets[h] = append(sol.facets[h], c.ranks)
		}
	}
	if !truncated {
		sol.compounds = labelMixedCompounds(pairLists(out))
	}
	if p.markFissary && rank >= 3 {
		sol.fissary = lv.markFissaries(out, sol.compounds)
	}
	p.log.Debug("faceted configuration",
		zap.Int("rank", rank),
		zap.Int("vertices", len(points)),
		zap.Int("hyperplanes", len(lv.hyperplanes)),
		zap.Int("ridges", len(lv.ridgeCounts)),
		zap.Int("facetings", len(out)),
	)
	return sol
}

// solveDyad facets two points. When no row swaps them each point is its
// own hyperplane orbit; otherwise both points share one orbit of size 2.
// More than two points cannot be faceted.
func solveDyad(points [][]float64, table group.Table) *solution {
	if len(points) != 2 {
		return &solution{}
	}
	if !table.Moves(0, 1) {
		return &solution{
			facetings: []candidate{{ranks: abstract.Dyad(), pairs: []Pair{{0, 0}, {1, 0}}}},
			counts:    []int{1, 1},
			facets:    [][]abstract.Ranks{{abstract.Point(0)}, {abstract.Point(1)}},
		}
	}
	return &solution{
		facetings: []candidate{{ranks: abstract.Dyad(), pairs: []Pair{{0, 0}}}},
		counts:    []int{2},
		facets:    [][]abstract.Ranks{{abstract.Point(0)}},
	}
}

// solveHyperplanes facets every hyperplane orbit one rank down and brings
// the results into the level's vertex indexing.
func (lv *level) solveHyperplanes(maxPer int, noble bool) {
	n := len(lv.hyperplanes)
	lv.facets = make([][]candidate, n)
	lv.ffCounts = make([][]int, n)
	lv.subFacets = make([][][]abstract.Ranks, n)
	lv.compounds = make([]map[int][2]int, n)
	lv.fissary = make([]map[int]bool, n)
	for h, hp := range lv.hyperplanes {
		verts := dn.Pick(lv.points, hp.vertices)
		flat := dn.FromPoints(verts, lv.p.eps).FlattenAll(verts)
		stab := lv.table.Stabilizer(hp.vertices)
		var np *noblePackage
		if noble {
			np = &noblePackage{table: lv.table, global: hp.vertices, count: hp.count}
		}
		sol := solve(lv.rank-1, flat, stab, lv.p, np, maxPer)

		toLevel := func(v int) int { return hp.vertices[v] }
		lv.facets[h] = make([]candidate, len(sol.facetings))
		for f, c := range sol.facetings {
			r := c.ranks.Clone()
			r.MapSubs(2, toLevel)
			lv.facets[h][f] = candidate{ranks: r, pairs: c.pairs}
		}
		lv.subFacets[h] = make([][]abstract.Ranks, len(sol.facets))
		for sh, list := range sol.facets {
			lv.subFacets[h][sh] = make([]abstract.Ranks, len(list))
			for sf, ridge := range list {
				r := ridge.Clone()
				r.MapSubs(2, toLevel)
				lv.subFacets[h][sh][sf] = r
			}
		}
		lv.ffCounts[h] = sol.counts
		lv.compounds[h] = sol.compounds
		lv.fissary[h] = sol.fissary
	}
}

// sortCandidates sorts by pair list and drops repeats.
func sortCandidates(c []candidate) []candidate {
	sort.SliceStable(c, func(i, j int) bool { return lessPairs(c[i].pairs, c[j].pairs) })
	out := c[:0]
	for i := range c {
		if i > 0 && equalPairs(c[i].pairs, out[len(out)-1].pairs) {
			continue
		}
		out = append(out, c[i])
	}
	return out
}

func pairLists(c []candidate) [][]Pair {
	out := make([][]Pair, len(c))
	for i := range c {
		out[i] = c[i].pairs
	}
	return out
}
