package facet

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/soypat/facet/abstract"
	"github.com/soypat/facet/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSolveDyad(t *testing.T) {
	pts := [][]float64{{-1}, {1}}

	// Nothing swaps the endpoints: each is its own orbit.
	sol := solveDyad(pts, group.Identity(2))
	require.Len(t, sol.facetings, 1)
	assert.Empty(t, cmp.Diff([]Pair{{0, 0}, {1, 0}}, sol.facetings[0].pairs))
	assert.Empty(t, cmp.Diff([]int{1, 1}, sol.counts))
	require.Len(t, sol.facets, 2)
	assert.Equal(t, abstract.Point(1).Key(), sol.facets[1][0].Key())

	sol = solveDyad(pts, group.Table{{0, 1}, {1, 0}})
	require.Len(t, sol.facetings, 1)
	assert.Empty(t, cmp.Diff([]Pair{{0, 0}}, sol.facetings[0].pairs))
	assert.Empty(t, cmp.Diff([]int{2}, sol.counts))
	assert.Equal(t, abstract.Dyad().Key(), sol.facetings[0].ranks.Key())

	sol = solveDyad([][]float64{{-1}, {0}, {1}}, group.Identity(3))
	assert.Empty(t, sol.facetings)
	assert.Empty(t, sol.counts)
}

func testParams() *params {
	return &params{eps: tolerance, edges: lengthFilter{eps: tolerance}, log: zap.NewNop()}
}

func TestSolveSquare(t *testing.T) {
	pts := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	tbl, err := group.VertexMap(group.Dihedral(4), pts, tolerance)
	require.NoError(t, err)
	sol := solve(2, pts, tbl, testParams(), nil, 0)
	require.Len(t, sol.facetings, 1)
	assert.Empty(t, cmp.Diff([]int{4, 2}, sol.counts))
	sq := build(sol.facetings[0].ranks)
	assert.Equal(t, 4, sq.ElementCount(1))
	assert.False(t, sq.IsCompound())
}

func TestMultiplicitiesSquare(t *testing.T) {
	pts := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	tbl, err := group.VertexMap(group.Dihedral(4), pts, tolerance)
	require.NoError(t, err)
	lv := newLevel(2, pts, tbl, testParams())
	lv.hyperplanes = lv.enumerateHyperplanes(nil)
	lv.solveHyperplanes(0, false)
	lv.indexRidges()
	lv.multiplicities()
	// A single ridge orbit: the four vertices.
	assert.Empty(t, cmp.Diff([]int{4}, lv.ridgeCounts))
	assert.Empty(t, cmp.Diff([]contrib{{orbit: 0, mul: 2}}, lv.contribs[0][0], cmp.AllowUnexported(contrib{})))
	assert.Empty(t, cmp.Diff([]contrib{{orbit: 0, mul: 1}}, lv.contribs[1][0], cmp.AllowUnexported(contrib{})))
	assert.Empty(t, cmp.Diff([]Pair{{1, 0}}, lv.ones[0]))
}

func TestNobleFilter(t *testing.T) {
	// The square inside the octahedron's equator: with the octahedron's
	// full group every side lies on two triangles and two squares.
	sq := []int{0, 1, 2, 3}
	pts := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	tbl, err := group.VertexMap(group.Dihedral(4), pts, tolerance)
	require.NoError(t, err)
	octa := group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 0, 0}}, tolerance)
	full, err := group.VertexMap(group.Hyperoctahedral(3), octa, tolerance)
	require.NoError(t, err)
	// Map the plane z=0 of the octahedron onto the local square.
	global := make([]int, len(sq))
	for i, p := range pts {
		for v, q := range octa {
			if q[2] == 0 && q[0] == p[0] && q[1] == p[1] {
				global[i] = v
			}
		}
	}
	lv := newLevel(2, pts, tbl, testParams())
	np := &noblePackage{table: full, global: global, count: 3}
	hps := lv.enumerateHyperplanes(np)
	// Sides are octahedron edges covered by 3*4/12 = 1 square each and
	// dropped; diagonals are axes, each in 3*2/3 = 2 squares, and kept.
	require.Len(t, hps, 1)
	assert.Empty(t, cmp.Diff([]int{0, 2}, hps[0].vertices))
}

func TestCombination(t *testing.T) {
	var got [][]int
	for c := newCombination(2, 0, 4); !c.done; c.next() {
		got = append(got, append([]int(nil), c.idx...))
	}
	want := [][]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	assert.Empty(t, cmp.Diff(want, got))

	c := newCombination(2, 0, 4)
	c.skip(0)
	assert.Empty(t, cmp.Diff([]int{1, 2}, c.idx))
	c = newCombination(2, 2, 4)
	c.skip(0)
	assert.True(t, c.done)

	assert.True(t, newCombination(3, 0, 2).done)
	empty := newCombination(0, 3, 3)
	require.False(t, empty.done)
	empty.next()
	assert.True(t, empty.done)
}

func TestClassify(t *testing.T) {
	for _, test := range []struct {
		muls  []uint8
		state int
		open  int
	}{
		{[]uint8{0, 2, 0}, stateValid, -1},
		{[]uint8{2, 1, 0, 1}, stateIncomplete, 1},
		{[]uint8{1, 3}, stateExotic, -1},
		{nil, stateValid, -1},
	} {
		state, open := classify(test.muls)
		assert.Equal(t, test.state, state, test.muls)
		assert.Equal(t, test.open, open, test.muls)
	}
}

func TestMixedCompounds(t *testing.T) {
	lists := [][]Pair{
		{{0, 0}, {1, 0}},
		{{0, 0}, {1, 0}, {2, 0}},
		{{2, 0}},
	}
	assert.Empty(t, cmp.Diff(map[int][2]int{1: {0, 2}}, labelMixedCompounds(lists)))
	assert.Empty(t, cmp.Diff([]int{0, 2}, filterMixedCompounds(lists)))

	err := func() (err error) {
		defer recoverInvariant(&err)
		labelMixedCompounds([][]Pair{{{0, 0}}, {{0, 0}, {1, 0}}})
		return nil
	}()
	var ie *InvariantError
	require.True(t, errors.As(err, &ie))
	assert.Contains(t, ie.Msg, "labelMixedCompounds")
}

func TestSplitCompoundFacets(t *testing.T) {
	lv := &level{compounds: []map[int][2]int{{2: {0, 1}}, nil}}
	got := lv.split([]Pair{{1, 0}, {0, 2}})
	assert.Empty(t, cmp.Diff([]Pair{{0, 0}, {0, 1}, {1, 0}}, got))
}

func TestSubsetOf(t *testing.T) {
	a := []Pair{{0, 0}, {1, 1}, {3, 0}}
	assert.True(t, subsetOf([]Pair{{1, 1}, {3, 0}}, a))
	assert.True(t, subsetOf(nil, a))
	assert.False(t, subsetOf([]Pair{{1, 0}}, a))
	assert.False(t, subsetOf([]Pair{{3, 0}, {4, 0}}, a))
	assert.Empty(t, cmp.Diff([]Pair{{0, 0}}, complementOf(a, []Pair{{1, 1}, {3, 0}})))
}

func TestRecoverInvariantOnly(t *testing.T) {
	assert.PanicsWithValue(t, "boom", func() {
		var err error
		func() {
			defer recoverInvariant(&err)
			panic("boom")
		}()
	})
}

func TestLengthFilter(t *testing.T) {
	f := lengthFilter{min: 1, max: 2, hasMin: true, hasMax: true, eps: 1e-9}
	assert.True(t, f.ok(1))
	assert.True(t, f.ok(2+1e-10))
	assert.False(t, f.ok(0.5))
	assert.False(t, f.ok(2.1))
	assert.True(t, lengthFilter{}.ok(math.MaxFloat64))

	pts := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	got := distinctLengths(pts, []int{0}, 1e-9)
	require.Len(t, got, 2)
	assert.InDelta(t, math.Sqrt2, got[0], 1e-12)
	assert.InDelta(t, 2, got[1], 1e-12)
}

func TestTopFilters(t *testing.T) {
	pts := [][]float64{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	tbl, err := group.VertexMap(group.Dihedral(4), pts, tolerance)
	require.NoError(t, err)
	lv := newLevel(2, pts, tbl, testParams())

	all := lv.topHyperplanes(topFilters{center: []float64{0, 0}})
	require.Len(t, all, 2)
	noHemi := lv.topHyperplanes(topFilters{center: []float64{0, 0}, excludeHemis: true})
	require.Len(t, noHemi, 1)
	assert.Empty(t, cmp.Diff([]int{0, 1}, noHemi[0].vertices))

	minR := lv.topHyperplanes(topFilters{center: []float64{0, 0}, minInradius: 0.5, hasMinInradius: true})
	assert.Len(t, minR, 1)
	maxR := lv.topHyperplanes(topFilters{center: []float64{0, 0}, maxInradius: 0.5, hasMaxInradius: true})
	require.Len(t, maxR, 1)
	assert.Empty(t, cmp.Diff([]int{0, 2}, maxR[0].vertices))

	below := lv.belowVertexHyperplanes(topFilters{center: []float64{0, 0}})
	// Layers orthogonal to vertex 0: x=1 and x=-1 hold one vertex, x=0
	// holds the diagonal {1,3}.
	require.Len(t, below, 1)
	assert.Empty(t, cmp.Diff([]int{1, 3}, below[0].vertices))
	assert.Equal(t, 2, below[0].count)
}

func TestListCollector(t *testing.T) {
	col := newListCollector(2)
	a := []Pair{{0, 0}, {2, 0}}
	assert.False(t, col.add(a))
	// A repeat reached through another search path takes no slot.
	assert.False(t, col.add([]Pair{{0, 0}, {2, 0}}))
	assert.True(t, col.add([]Pair{{1, 0}}))
	assert.Empty(t, cmp.Diff([][]Pair{a, {{1, 0}}}, col.lists))

	unbounded := newListCollector(0)
	for i := 0; i < 5; i++ {
		assert.False(t, unbounded.add([]Pair{{i, 0}}))
	}
	assert.Len(t, unbounded.lists, 5)
	assert.NotEqual(t, pairsKey([]Pair{{1, 12}}), pairsKey([]Pair{{11, 2}}))
}

func TestNobleTallyRegistry(t *testing.T) {
	// Square flats of the octahedron's equator, seen from one hyperplane of
	// an orbit of three: images of a flat share one id.
	octa := group.CopyBySymmetry(group.Hyperoctahedral(3), [][]float64{{1, 0, 0}}, tolerance)
	full, err := group.VertexMap(group.Hyperoctahedral(3), octa, tolerance)
	require.NoError(t, err)
	global := make([]int, len(octa))
	for i := range global {
		global[i] = i
	}
	np := &noblePackage{table: full, global: global, count: 3}
	tally := newNobleTally()
	var axis []int
	for v, p := range octa {
		if p[0] != 0 {
			axis = append(axis, v)
		}
	}
	id := np.add(tally, axis, 1)
	assert.Equal(t, 0, id)
	assert.Equal(t, []int{3}, tally.counts)
	assert.Equal(t, []int{1}, tally.muls)
	img := full.ImageSorted(1, axis)
	assert.Equal(t, id, np.add(tally, img, 2))
	assert.Equal(t, []int{3}, tally.muls)
	assert.Equal(t, 1, tally.reg.Len())
}
