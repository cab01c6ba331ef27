package facet

import "sort"

type searchOptions struct {
	// extend continues valid combinations with further facets, producing
	// compounds.
	extend bool
	// maxFacets stops growing combinations at this many facet orbits.
	// Zero means no cap.
	maxFacets int
}

// node is a partial combination on the search stack. muls is shared with
// the parent's children and only read; the last pair's contributions are
// added when the node is popped.
type node struct {
	pairs []Pair
	minHP int
	muls  []uint8
}

const (
	stateValid = iota
	stateIncomplete
	stateExotic
)

// search enumerates the combinations of candidate facets in which every
// ridge orbit is covered exactly zero or two times. Each combination is
// passed to emit after splitting compound facets; emit returns true to
// stop the search.
//
// Combinations are grown in canonical order: a combination starts at its
// least hyperplane orbit, open ridges are closed only with facets of
// greater hyperplanes, and at most one facet is taken per hyperplane.
func (lv *level) search(opt searchOptions, emit func(pairs []Pair) bool) {
	nRidges := len(lv.ridgeCounts)
	var stack []node
	zero := make([]uint8, nRidges)
	for h := range lv.facets {
		for f := range lv.facets[h] {
			stack = append(stack, node{pairs: []Pair{{h, f}}, minHP: h, muls: zero})
		}
	}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		muls := append([]uint8(nil), nd.muls...)
		last := nd.pairs[len(nd.pairs)-1]
		for _, c := range lv.contribs[last.Hyperplane][last.Facet] {
			v := int(muls[c.orbit]) + c.mul
			if v > 2 {
				v = 3
			}
			muls[c.orbit] = uint8(v)
		}
		state, open := classify(muls)
		if state == stateExotic {
			continue
		}
		capped := opt.maxFacets > 0 && len(nd.pairs) >= opt.maxFacets
		used := make(map[int]bool, len(nd.pairs))
		for _, p := range nd.pairs {
			used[p.Hyperplane] = true
		}
		child := func(p Pair, minHP int) node {
			pairs := make([]Pair, len(nd.pairs)+1)
			copy(pairs, nd.pairs)
			pairs[len(nd.pairs)] = p
			return node{pairs: pairs, minHP: minHP, muls: muls}
		}

		if state == stateIncomplete {
			if capped {
				continue
			}
			ones := lv.ones[open]
			start := sort.Search(len(ones), func(i int) bool { return ones[i].Hyperplane > nd.minHP })
			for _, p := range ones[start:] {
				if !used[p.Hyperplane] {
					stack = append(stack, child(p, nd.minHP))
				}
			}
			continue
		}

		if emit(lv.split(nd.pairs)) {
			return
		}
		if !opt.extend || capped {
			continue
		}
		for h := nd.minHP + 1; h < len(lv.facets); h++ {
			if used[h] {
				continue
			}
			for f := range lv.facets[h] {
				stack = append(stack, child(Pair{h, f}, h))
			}
		}
	}
}

// classify returns the state of a multiplicity vector and, when
// incomplete, the first ridge orbit covered once.
func classify(muls []uint8) (state, open int) {
	state, open = stateValid, -1
	for g, m := range muls {
		switch {
		case m > 2:
			return stateExotic, -1
		case m == 1 && open < 0:
			state, open = stateIncomplete, g
		}
	}
	return state, open
}
