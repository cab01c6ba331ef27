package facet

import "sort"

// Index set helpers. Sets are sorted []int without repeats unless noted.

// sortedCopy returns a sorted copy of s.
func sortedCopy(s []int) []int {
	out := append([]int(nil), s...)
	sort.Ints(out)
	return out
}

// mapInts returns m[v] for every v in s.
func mapInts(s []int, m []int) []int {
	out := make([]int, len(s))
	for i, v := range s {
		out[i] = m[v]
	}
	return out
}

// equalInts reports whether a and b hold the same values in order.
func equalInts(a, b []int) bool {
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

// combination iterates the k-subsets of lo..hi-1 in increasing order.
type combination struct {
	idx  []int
	hi   int
	done bool
}

func newCombination(k, lo, hi int) *combination {
	c := &combination{idx: make([]int, k), hi: hi}
	for i := range c.idx {
		c.idx[i] = lo + i
	}
	c.done = lo+k > hi
	return c
}

// skip advances position i, resetting the positions after it. Positions
// before i are carried when i is exhausted.
func (c *combination) skip(i int) {
	k := len(c.idx)
	for i >= 0 && c.idx[i] == c.hi-k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return
	}
	c.idx[i]++
	for j := i + 1; j < k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
}

// next advances to the next combination.
func (c *combination) next() {
	if len(c.idx) == 0 {
		c.done = true
		return
	}
	c.skip(len(c.idx) - 1)
}
