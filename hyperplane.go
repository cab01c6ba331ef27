package facet

import (
	"math"
	"sort"

	"github.com/soypat/facet/group"
	"github.com/soypat/facet/internal/dn"
	"github.com/soypat/facet/orbit"
)

// closure returns the sorted indices of the points lying on sub.
func (lv *level) closure(sub *dn.Subspace) []int {
	var out []int
	for i, p := range lv.points {
		if sub.Distance(p) < lv.p.eps {
			out = append(out, i)
		}
	}
	return out
}

func (lv *level) vertexReps() []int {
	orbs := orbit.Vertices(lv.table, len(lv.points))
	reps := make([]int, len(orbs))
	for i, o := range orbs {
		reps[i] = o[0]
	}
	return reps
}

func (lv *level) pairReps(reps []int) [][2]int {
	return orbit.Pairs(lv.table, reps, len(lv.points), func(a, b int) bool {
		return lv.p.edges.ok(dn.Distance(lv.points[a], lv.points[b]))
	})
}

// enumerateHyperplanes returns one hyperplane per orbit. Tuples start at a
// pair orbit representative {a,b} and are completed with increasing
// vertices after b; every added vertex must be within the edge bounds of a.
func (lv *level) enumerateHyperplanes(np *noblePackage) []hyperplane {
	n := len(lv.points)
	pairs := lv.pairReps(lv.vertexReps())
	checked := make(orbit.Set)
	var tally *nobleTally
	if np != nil {
		tally = newNobleTally()
	}
	var hps []hyperplane
	var nobleIDs []int
	k := lv.rank - 2
	for _, pr := range pairs {
		a, b := pr[0], pr[1]
		for c := newCombination(k, b+1, n); !c.done; {
			bad := -1
			for i, v := range c.idx {
				if !lv.p.edges.ok(dn.Distance(lv.points[a], lv.points[v])) {
					bad = i
					break
				}
			}
			if bad >= 0 {
				c.skip(bad)
				continue
			}
			tuple := append([]int{a, b}, c.idx...)
			c.next()
			sub := dn.FromPoints(dn.Pick(lv.points, tuple), lv.p.eps)
			if !sub.IsHyperplane() {
				continue
			}
			verts := lv.closure(sub)
			if checked.Has(verts) {
				continue
			}
			count := 0
			for r := range lv.table {
				if checked.Insert(lv.table.ImageSorted(r, verts)) {
					count++
				}
			}
			hps = append(hps, hyperplane{vertices: verts, count: count})
			if tally != nil {
				nobleIDs = append(nobleIDs, np.add(tally, verts, count))
			}
		}
	}
	if tally == nil {
		return hps
	}
	kept := hps[:0]
	for i, hp := range hps {
		if tally.muls[nobleIDs[i]] >= 2 {
			kept = append(kept, hp)
		}
	}
	return kept
}

// noblePackage relates a hyperplane's configuration to the level above it,
// whose full table decides how often each ridge flat is covered.
type noblePackage struct {
	table  group.Table
	global []int // local vertex to vertex of the level above
	count  int   // orbit size of the hyperplane above
}

// nobleTally accumulates, per global orbit of ridge flats, the number of
// facets of a single orbit through one flat.
type nobleTally struct {
	reg    *orbit.Registry[string]
	counts []int
	muls   []int
}

func newNobleTally() *nobleTally {
	return &nobleTally{reg: orbit.NewRegistry[string]()}
}

// add records a local orbit of orbitLen ridge flats and returns the global
// orbit id of verts.
func (np *noblePackage) add(t *nobleTally, verts []int, orbitLen int) int {
	g := sortedCopy(mapInts(verts, np.global))
	id := orbit.ID(t.reg, np.table, g)
	if id == len(t.counts) {
		t.counts = append(t.counts, orbit.Size(np.table, g))
		t.muls = append(t.muls, 0)
	}
	num := np.count * orbitLen
	if num%t.counts[id] != 0 {
		invariant("noble multiplicity %d*%d not divisible by size %d of flat orbit {%s}", np.count, orbitLen, t.counts[id], t.reg.Rep(id))
	}
	t.muls[id] += num / t.counts[id]
	return id
}

// topFilters are the hyperplane filters only applied to the outermost
// configuration.
type topFilters struct {
	minInradius, maxInradius       float64
	hasMinInradius, hasMaxInradius bool
	// center is the reference point in level coordinates and perp its
	// distance to the affine hull of the input.
	center       []float64
	perp         float64
	excludeHemis bool
}

func (f topFilters) accept(sub *dn.Subspace, eps float64) bool {
	d := sub.Distance(f.center)
	r := math.Sqrt(d*d + f.perp*f.perp)
	switch {
	case f.hasMinInradius && r < f.minInradius-eps:
		return false
	case f.hasMaxInradius && r > f.maxInradius+eps:
		return false
	case f.excludeHemis && r < eps:
		return false
	}
	return true
}

// extensions returns the vertices that extend flat, one per orbit of the
// flat's stabilizer, within the edge bounds of flat[0].
func (lv *level) extensions(flat []int) []int {
	used := make([]bool, len(lv.points))
	for _, v := range flat {
		used[v] = true
	}
	rows := lv.table.Rows(flat)
	var out []int
	for v := range lv.points {
		if used[v] || !lv.p.edges.ok(dn.Distance(lv.points[flat[0]], lv.points[v])) {
			continue
		}
		out = append(out, v)
		for _, r := range rows {
			used[lv.table[r][v]] = true
		}
	}
	return out
}

// growFlats extends every flat of rank k-1 by one vertex into flats of
// rank k. Only flats whose vertices admit a faceting of their own are kept.
func (lv *level) growFlats(flats [][]int, k int) [][]int {
	checked := make(orbit.Set)
	var next [][]int
	for _, flat := range flats {
		for _, v := range lv.extensions(flat) {
			tuple := append(append([]int(nil), flat...), v)
			sub := dn.FromPoints(dn.Pick(lv.points, tuple), lv.p.eps)
			if sub.Rank() != k {
				continue
			}
			verts := lv.closure(sub)
			if lv.anyImageIn(checked, verts) {
				continue
			}
			checked.Insert(verts)
			pts := dn.Pick(lv.points, verts)
			probe := solve(k, sub.FlattenAll(pts), lv.table.Stabilizer(verts), lv.p, nil, 1)
			if len(probe.facetings) > 0 {
				next = append(next, verts)
			}
		}
	}
	return next
}

func (lv *level) anyImageIn(set orbit.Set, verts []int) bool {
	for r := range lv.table {
		if set.Has(lv.table.ImageSorted(r, verts)) {
			return true
		}
	}
	return false
}

// addTopHyperplane records sub as a new hyperplane orbit unless it fails
// the filters or an image of it was recorded before.
func (lv *level) addTopHyperplane(hps []hyperplane, checked orbit.Set, sub *dn.Subspace, f topFilters) []hyperplane {
	if !sub.IsHyperplane() || !f.accept(sub, lv.p.eps) {
		return hps
	}
	verts := lv.closure(sub)
	counting := make(orbit.Set)
	for r := range lv.table {
		img := lv.table.ImageSorted(r, verts)
		if checked.Has(img) {
			return hps
		}
		counting.Insert(img)
	}
	checked.Insert(verts)
	return append(hps, hyperplane{vertices: verts, count: len(counting)})
}

// topHyperplanes enumerates the hyperplanes of the outermost configuration
// by growing flats from vertex orbits, checking that every intermediate
// flat can be faceted.
func (lv *level) topHyperplanes(f topFilters) []hyperplane {
	reps := lv.vertexReps()
	var flats [][]int
	if lv.rank == 2 {
		for _, v := range reps {
			flats = append(flats, []int{v})
		}
	} else {
		for _, p := range lv.pairReps(reps) {
			flats = append(flats, []int{p[0], p[1]})
		}
		for k := 2; k <= lv.rank-2; k++ {
			flats = lv.growFlats(flats, k)
		}
	}
	checked := make(orbit.Set)
	var hps []hyperplane
	for _, flat := range flats {
		for _, v := range lv.extensions(flat) {
			tuple := append(append([]int(nil), flat...), v)
			sub := dn.FromPoints(dn.Pick(lv.points, tuple), lv.p.eps)
			hps = lv.addTopHyperplane(hps, checked, sub, f)
		}
	}
	return hps
}

// belowVertexHyperplanes only considers the layers of vertices orthogonal
// to a vertex orbit representative, seen from the center.
func (lv *level) belowVertexHyperplanes(f topFilters) []hyperplane {
	checked := make(orbit.Set)
	var hps []hyperplane
	for _, rep := range lv.vertexReps() {
		dir := dn.Sub(lv.points[rep], f.center)
		layers := make(map[int64][]int)
		var keys []int64
		for v, p := range lv.points {
			k := int64(math.Round(dn.Dot(dn.Sub(p, f.center), dir) * dotScale))
			if _, ok := layers[k]; !ok {
				keys = append(keys, k)
			}
			layers[k] = append(layers[k], v)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
		for _, k := range keys {
			layer := layers[k]
			near := 0
			for _, v := range layer[1:] {
				if lv.p.edges.ok(dn.Distance(lv.points[layer[0]], lv.points[v])) {
					near++
				}
			}
			if near < lv.rank-1 {
				continue
			}
			sub := dn.FromPoints(dn.Pick(lv.points, layer), lv.p.eps)
			hps = lv.addTopHyperplane(hps, checked, sub, f)
		}
	}
	return hps
}
