// Package facet enumerates the facetings of a polytope: the polytopes whose
// vertices are a subset of a given vertex set and that share a symmetry
// group with it.
//
// The search is carried out on orbits. Candidate facet hyperplanes are found
// one per orbit of the symmetry, each hyperplane is faceted recursively one
// rank down under its stabilizer, and combinations of facet orbits are kept
// when every ridge is covered by exactly two facets.
package facet

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/facet/group"
	"github.com/soypat/facet/internal/dn"
	"go.uber.org/zap"
)

// Faceting is a faceted polytope.
type Faceting struct {
	Polytope
	Name string
	// Facets are the facet orbits the faceting was built from, after
	// splitting compound facets into their pieces.
	Facets []Pair
	// EdgeLength is the edge length of the pass that found the faceting.
	// Zero when not running one pass per edge length.
	EdgeLength float64
	Compound   bool
	Fissary    bool
}

// HyperplaneOrbit describes one orbit of candidate facet hyperplanes.
type HyperplaneOrbit struct {
	// Vertices are the input vertices on the orbit representative.
	Vertices []int
	// Count is the number of hyperplanes in the orbit.
	Count int
	// Facets is the number of candidate facets of the representative.
	Facets int
	// EdgeLength is the pass the orbit belongs to, as in Faceting.
	EdgeLength float64
}

// Result is the outcome of a faceting run.
type Result struct {
	Facetings []Faceting
	// UsedFacets holds one representative of every facet used by some
	// faceting. Only filled when Config.SaveFacets is set.
	UsedFacets  []Faceting
	Hyperplanes []HyperplaneOrbit
}

// pass is one run of the top-level search with a fixed edge filter.
type pass struct {
	prefix string
	length float64
	edges  lengthFilter
}

// Facet finds the facetings of the polytope with the given vertices under
// sym. Vertices lying in a proper affine subspace are faceted within it and
// results are returned in the input coordinates.
//
// A broken symmetry table, one not closed under composition, is reported as
// an *InvariantError.
func Facet(vertices [][]float64, sym Symmetry, cfg Config) (res *Result, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(vertices) == 0 {
		return nil, ErrNoVertices
	}
	dim := len(vertices[0])
	for i, v := range vertices {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: vertex %d has dimension %d, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	if cfg.Center != nil && len(cfg.Center) != dim {
		return nil, fmt.Errorf("%w: center has dimension %d, want %d", ErrBadConfig, len(cfg.Center), dim)
	}
	pts, sub := flattenToHull(vertices, cfg.Epsilon)
	rank := sub.Rank()
	if rank < 2 {
		return nil, fmt.Errorf("%w: got rank %d", ErrRankTooLow, rank)
	}
	table, err := sym.Table(vertices, cfg.Epsilon)
	if err != nil {
		return nil, fmt.Errorf("symmetry table: %w", err)
	}
	defer func() {
		if err != nil {
			res = nil
		}
	}()
	defer recoverInvariant(&err)

	log := cfg.logger()
	log.Info("faceting",
		zap.Int("vertices", len(vertices)),
		zap.Int("rank", rank),
		zap.Int("symmetry", table.Order()),
	)
	filters := newTopFilters(cfg, sub, dim)
	res = &Result{}
	for _, ps := range passes(cfg, pts, table) {
		p := &params{
			eps:         cfg.Epsilon,
			edges:       ps.edges,
			uniform:     cfg.Uniform,
			markFissary: cfg.MarkFissary,
			log:         log,
		}
		lv := newLevel(rank, pts, table, p)
		lv.runPass(ps, cfg, filters, vertices, res)
	}
	log.Info("faceting done",
		zap.Int("facetings", len(res.Facetings)),
		zap.Int("hyperplanes", len(res.Hyperplanes)),
	)
	return res, nil
}

func newTopFilters(cfg Config, sub *dn.Subspace, dim int) topFilters {
	f := topFilters{excludeHemis: cfg.ExcludeHemis}
	if cfg.MinInradius != nil {
		f.minInradius, f.hasMinInradius = *cfg.MinInradius, true
	}
	if cfg.MaxInradius != nil {
		f.maxInradius, f.hasMaxInradius = *cfg.MaxInradius, true
	}
	center := cfg.Center
	if center == nil {
		center = make([]float64, dim)
	}
	if sub.Rank() == sub.Dim() {
		f.center = dn.Clone(center)
		return f
	}
	f.center = sub.Flatten(center)
	f.perp = sub.Distance(center)
	return f
}

// passes returns the edge filters to run. With AnySingleEdgeLength there is
// one pass per distinct distance from a vertex orbit representative.
func passes(cfg Config, pts [][]float64, table group.Table) []pass {
	if !cfg.AnySingleEdgeLength {
		return []pass{{edges: cfg.edgeFilter()}}
	}
	lv := &level{points: pts, table: table}
	lengths := distinctLengths(pts, lv.vertexReps(), cfg.Epsilon)
	out := make([]pass, len(lengths))
	for i, l := range lengths {
		out[i] = pass{
			prefix: fmt.Sprintf("%d.", i),
			length: l,
			edges:  lengthFilter{min: l, max: l, hasMin: true, hasMax: true, eps: cfg.Epsilon},
		}
	}
	return out
}

// runPass enumerates the facetings of the top level and appends them to res.
// vertices are the input coordinates.
func (lv *level) runPass(ps pass, cfg Config, f topFilters, vertices [][]float64, res *Result) {
	if cfg.OnlyBelowVertex {
		lv.hyperplanes = lv.belowVertexHyperplanes(f)
	} else {
		lv.hyperplanes = lv.topHyperplanes(f)
	}
	lv.solveHyperplanes(cfg.MaxPerHyperplane, cfg.Noble == 1)
	lv.indexRidges()
	lv.multiplicities()
	for h, hp := range lv.hyperplanes {
		res.Hyperplanes = append(res.Hyperplanes, HyperplaneOrbit{
			Vertices:   append([]int(nil), hp.vertices...),
			Count:      hp.count,
			Facets:     len(lv.facets[h]),
			EdgeLength: ps.length,
		})
	}
	lv.p.log.Info("hyperplanes",
		zap.String("pass", ps.prefix),
		zap.Int("orbits", len(lv.hyperplanes)),
		zap.Int("ridge orbits", len(lv.ridgeCounts)),
	)

	col := newListCollector(cfg.MaxResults)
	lv.search(searchOptions{extend: cfg.IncludeCompounds, maxFacets: cfg.Noble}, col.add)
	lists := col.lists
	sort.SliceStable(lists, func(i, j int) bool { return lessPairs(lists[i], lists[j]) })
	keep := make([]int, len(lists))
	for i := range keep {
		keep[i] = i
	}
	if !cfg.IncludeCompounds {
		keep = filterMixedCompounds(lists)
	}

	used := make(map[Pair]bool)
	for idx, a := range keep {
		pairs := lists[a]
		ranks, order := lv.assemble(pairs, true)
		abs := build(ranks)
		ft := Faceting{
			Polytope:   Polytope{Vertices: dn.Pick(vertices, order), Abs: abs},
			Facets:     pairs,
			EdgeLength: ps.length,
		}
		if cfg.MarkFissary {
			ft.Compound = abs.IsCompound()
			ft.Fissary = !ft.Compound && (lv.usesFissaryFacet(pairs) || hasCompoundFigure(abs))
		}
		var name strings.Builder
		fmt.Fprintf(&name, "faceting %s%d", ps.prefix, idx)
		if cfg.LabelFacets {
			name.WriteString(" -")
			for _, p := range pairs {
				fmt.Fprintf(&name, " (%d,%d)", p.Hyperplane, p.Facet)
			}
		}
		name.WriteString(label(ft.Compound, ft.Fissary))
		ft.Name = name.String()
		res.Facetings = append(res.Facetings, ft)
		for _, p := range pairs {
			used[p] = true
		}
	}
	lv.p.log.Info("facetings",
		zap.String("pass", ps.prefix),
		zap.Int("found", len(lists)),
		zap.Int("kept", len(keep)),
	)
	if cfg.SaveFacets {
		res.UsedFacets = append(res.UsedFacets, lv.usedFacets(used, ps, cfg, vertices)...)
	}
}

// usedFacets exports a representative of every facet in used, flattened
// into its own hyperplane and centered on its circumcenter.
func (lv *level) usedFacets(used map[Pair]bool, ps pass, cfg Config, vertices [][]float64) []Faceting {
	pairs := make([]Pair, 0, len(used))
	for p := range used {
		pairs = append(pairs, p)
	}
	sortPairs(pairs)
	out := make([]Faceting, 0, len(pairs))
	for _, p := range pairs {
		ranks, order := compact(lv.facets[p.Hyperplane][p.Facet].ranks.Clone())
		facet := Polytope{Vertices: dn.Pick(vertices, order), Abs: build(ranks)}
		facet.Flatten(cfg.Epsilon)
		facet.Recenter(cfg.Epsilon)
		ft := Faceting{Polytope: facet, Facets: []Pair{p}, EdgeLength: ps.length}
		if cfg.MarkFissary && facet.Rank() >= 2 {
			ft.Compound = facet.Abs.IsCompound()
			ft.Fissary = !ft.Compound && lv.fissary[p.Hyperplane][p.Facet]
		}
		ft.Name = fmt.Sprintf("facet %s(%d,%d)%s", ps.prefix, p.Hyperplane, p.Facet, label(ft.Compound, ft.Fissary))
		out = append(out, ft)
	}
	return out
}

func label(compound, fissary bool) string {
	switch {
	case compound:
		return " [C]"
	case fissary:
		return " [F]"
	}
	return ""
}

// listCollector gathers the distinct split combinations of a search. max
// caps the number of distinct lists; zero means no cap.
type listCollector struct {
	max   int
	seen  map[string]bool
	lists [][]Pair
}

func newListCollector(max int) *listCollector {
	return &listCollector{max: max, seen: make(map[string]bool)}
}

// add records pairs unless an equal list was seen and reports whether the
// cap has been reached.
func (c *listCollector) add(pairs []Pair) (stop bool) {
	k := pairsKey(pairs)
	if !c.seen[k] {
		c.seen[k] = true
		c.lists = append(c.lists, pairs)
	}
	return c.max > 0 && len(c.lists) >= c.max
}

func pairsKey(pairs []Pair) string {
	var sb strings.Builder
	for _, p := range pairs {
		sb.WriteString(strconv.Itoa(p.Hyperplane))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Facet))
		sb.WriteByte(';')
	}
	return sb.String()
}
