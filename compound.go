package facet

import "sort"

// Pair picks candidate facet Facet of hyperplane orbit Hyperplane.
type Pair struct {
	Hyperplane int
	Facet      int
}

func (p Pair) less(q Pair) bool {
	if p.Hyperplane != q.Hyperplane {
		return p.Hyperplane < q.Hyperplane
	}
	return p.Facet < q.Facet
}

func sortPairs(s []Pair) {
	sort.Slice(s, func(i, j int) bool { return s[i].less(s[j]) })
}

// lessPairs orders pair lists lexicographically.
func lessPairs(a, b []Pair) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i].less(b[i])
		}
	}
	return len(a) < len(b)
}

func equalPairs(a, b []Pair) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// split replaces every compound facet by its pieces until none is left and
// returns the sorted result.
func (lv *level) split(pairs []Pair) []Pair {
	queue := append([]Pair(nil), pairs...)
	out := make([]Pair, 0, len(pairs))
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if c, ok := lv.compounds[p.Hyperplane][p.Facet]; ok {
			queue = append(queue, Pair{p.Hyperplane, c[0]}, Pair{p.Hyperplane, c[1]})
			continue
		}
		out = append(out, p)
	}
	sortPairs(out)
	return out
}

// subsetOf reports whether the sorted list b is contained in the sorted
// list a, using a two-pointer sweep.
func subsetOf(b, a []Pair) bool {
	i := 0
	for _, f := range a {
		if i >= len(b) {
			break
		}
		if f.less(b[i]) {
			continue
		}
		if b[i].less(f) {
			return false
		}
		i++
	}
	return i >= len(b)
}

// complementOf returns the elements of a not in its sorted subset b.
func complementOf(a, b []Pair) []Pair {
	var out []Pair
	j := 0
	for _, g := range a {
		if j < len(b) && b[j] == g {
			j++
			continue
		}
		out = append(out, g)
	}
	return out
}

// firstSubset returns the index of the first proper subset of lists[a]
// sharing its first pair, or -1. lists must be sorted.
func firstSubset(lists [][]Pair, a int) int {
	for b := range lists {
		if len(lists[b]) >= len(lists[a]) {
			continue
		}
		if lists[a][0].less(lists[b][0]) {
			break
		}
		if subsetOf(lists[b], lists[a]) {
			return b
		}
	}
	return -1
}

// labelMixedCompounds finds the lists that are the union of two others and
// maps them to the pair of pieces. lists must be sorted and complete: the
// complement of a found subset has to be present too.
func labelMixedCompounds(lists [][]Pair) map[int][2]int {
	out := make(map[int][2]int)
	for a := range lists {
		b := firstSubset(lists, a)
		if b < 0 {
			continue
		}
		comp := complementOf(lists[a], lists[b])
		found := false
		for c := b + 1; c < len(lists); c++ {
			if equalPairs(lists[c], comp) {
				out[a] = [2]int{b, c}
				found = true
				break
			}
		}
		if !found {
			invariant("could not find complement of %v in %v", lists[b], lists[a])
		}
	}
	return out
}

// filterMixedCompounds returns the indices of the lists that contain no
// other list of the set.
func filterMixedCompounds(lists [][]Pair) []int {
	var out []int
	for a := range lists {
		if firstSubset(lists, a) < 0 {
			out = append(out, a)
		}
	}
	return out
}
