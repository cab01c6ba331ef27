// Package group builds symmetry groups of point sets and the vertex
// permutation tables the faceting engine works with.
package group

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNotPermutation = errors.New("group: row is not a permutation of the vertices")
	ErrNoIdentity     = errors.New("group: table has no identity row")
	ErrNotInvariant   = errors.New("group: element does not map the point set to itself")
	ErrGroupTooLarge  = errors.New("group: generated group exceeds maximum order")
	ErrNotSpherical   = errors.New("group: coxeter diagram is not spherical")
	ErrDegenerate     = errors.New("group: points do not span their space")
	ErrDimension      = errors.New("group: dimension mismatch")
)

// Table lists the action of a group on a vertex set: every row is a
// permutation of 0..n-1 and row[i] is the image of vertex i. Row 0 is the
// identity once the table has been normalized.
type Table [][]int

// Identity returns the table of the trivial group on n vertices.
func Identity(n int) Table {
	return Table{identityRow(n)}
}

func identityRow(n int) []int {
	row := make([]int, n)
	for i := range row {
		row[i] = i
	}
	return row
}

// Validate checks that every row is a permutation of 0..n-1 and that the
// identity is present. Closure under composition is not checked.
func (t Table) Validate(n int) error {
	hasIdentity := false
	for r, row := range t {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has length %d, want %d", ErrNotPermutation, r, len(row), n)
		}
		seen := make([]bool, n)
		id := true
		for i, v := range row {
			if v < 0 || v >= n || seen[v] {
				return fmt.Errorf("%w: row %d", ErrNotPermutation, r)
			}
			seen[v] = true
			id = id && v == i
		}
		hasIdentity = hasIdentity || id
	}
	if !hasIdentity {
		return ErrNoIdentity
	}
	return nil
}

// Normalize moves the first identity row to the front.
func (t Table) Normalize() error {
	for r, row := range t {
		if isIdentity(row) {
			t[0], t[r] = t[r], t[0]
			return nil
		}
	}
	return ErrNoIdentity
}

func isIdentity(row []int) bool {
	for i, v := range row {
		if v != i {
			return false
		}
	}
	return true
}

// Order returns the number of rows.
func (t Table) Order() int { return len(t) }

// Image returns the pointwise image of set under row r.
func (t Table) Image(r int, set []int) []int {
	out := make([]int, len(set))
	for i, v := range set {
		out[i] = t[r][v]
	}
	return out
}

// ImageSorted returns the image of set under row r as a sorted set.
func (t Table) ImageSorted(r int, set []int) []int {
	out := t.Image(r, set)
	sort.Ints(out)
	return out
}

// Stabilizes reports whether row r maps the sorted set onto itself.
func (t Table) Stabilizes(r int, set []int) bool {
	img := t.ImageSorted(r, set)
	for i := range img {
		if img[i] != set[i] {
			return false
		}
	}
	return true
}

// Rows returns the indices of the rows that stabilize the sorted set.
func (t Table) Rows(set []int) []int {
	var rows []int
	for r := range t {
		if t.Stabilizes(r, set) {
			rows = append(rows, r)
		}
	}
	return rows
}

// Stabilizer returns the setwise stabilizer of the sorted set, restricted
// to it: vertex set[i] becomes vertex i. Rows acting identically on the
// set are merged and the identity comes first.
func (t Table) Stabilizer(set []int) Table {
	local := make(map[int]int, len(set))
	for i, v := range set {
		local[v] = i
	}
	seen := make(map[string]bool)
	var out Table
	for r := range t {
		if !t.Stabilizes(r, set) {
			continue
		}
		row := make([]int, len(set))
		for i, v := range set {
			row[i] = local[t[r][v]]
		}
		k := rowKey(row)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, row)
	}
	out.Normalize()
	return out
}

// Moves reports whether some row maps vertex a to vertex b.
func (t Table) Moves(a, b int) bool {
	for _, row := range t {
		if row[a] == b {
			return true
		}
	}
	return false
}

func rowKey(row []int) string {
	var sb strings.Builder
	for i, v := range row {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}
