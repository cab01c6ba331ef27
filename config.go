package facet

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config controls a faceting run. The zero value is not valid; start from
// DefaultConfig. Optional bounds are pointers and nil means unset.
type Config struct {
	// Epsilon is the tolerance of every geometric predicate.
	Epsilon float64 `yaml:"epsilon"`

	// MinEdgeLength and MaxEdgeLength restrict the edges of the facetings.
	MinEdgeLength *float64 `yaml:"min_edge_length,omitempty"`
	MaxEdgeLength *float64 `yaml:"max_edge_length,omitempty"`
	// AnySingleEdgeLength runs one pass per distinct vertex distance with
	// both edge bounds set to it. The edge bounds must be unset.
	AnySingleEdgeLength bool `yaml:"any_single_edge_length"`

	// MinInradius and MaxInradius restrict the distance of facet
	// hyperplanes to Center.
	MinInradius *float64 `yaml:"min_inradius,omitempty"`
	MaxInradius *float64 `yaml:"max_inradius,omitempty"`
	// Center is the reference point of inradius filters. Nil is the origin.
	Center []float64 `yaml:"center,omitempty"`
	// ExcludeHemis drops hyperplanes passing through Center.
	ExcludeHemis bool `yaml:"exclude_hemis"`
	// OnlyBelowVertex only considers hyperplanes orthogonal to a vertex.
	OnlyBelowVertex bool `yaml:"only_below_vertex"`

	// Noble caps the number of facet orbits of a faceting. When 1, facets
	// are also required to cover every ridge orbit of theirs twice.
	Noble int `yaml:"noble"`
	// MaxPerHyperplane caps the facets found in each hyperplane.
	MaxPerHyperplane int `yaml:"max_per_hyperplane"`
	// MaxResults caps the number of distinct facetings found per pass.
	MaxResults int `yaml:"max_results"`
	// Uniform only admits facets whose connected pieces are equilateral.
	Uniform bool `yaml:"uniform"`
	// IncludeCompounds keeps facetings that are unions of smaller ones.
	IncludeCompounds bool `yaml:"include_compounds"`
	// MarkFissary labels compound and fissary facetings, and checks facets
	// of rank 3 and up for fissaries.
	MarkFissary bool `yaml:"mark_fissary"`
	// LabelFacets appends the facet pairs to faceting names.
	LabelFacets bool `yaml:"label_facets"`
	// SaveFacets exports every facet used by some faceting.
	SaveFacets bool `yaml:"save_facets"`

	Logger *zap.Logger `yaml:"-"`
}

// DefaultConfig returns a configuration without filters that labels
// compounds and fissaries.
func DefaultConfig() Config {
	return Config{
		Epsilon:     tolerance,
		MarkFissary: true,
	}
}

// LoadConfig decodes a YAML configuration on top of DefaultConfig.
// Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("%w: %v", ErrBadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for contradictions.
func (c Config) Validate() error {
	switch {
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive", ErrBadConfig)
	case c.MinEdgeLength != nil && c.MaxEdgeLength != nil && *c.MinEdgeLength > *c.MaxEdgeLength:
		return fmt.Errorf("%w: min edge length above max", ErrBadConfig)
	case c.AnySingleEdgeLength && (c.MinEdgeLength != nil || c.MaxEdgeLength != nil):
		return fmt.Errorf("%w: any single edge length with explicit edge bounds", ErrBadConfig)
	case c.MinInradius != nil && c.MaxInradius != nil && *c.MinInradius > *c.MaxInradius:
		return fmt.Errorf("%w: min inradius above max", ErrBadConfig)
	case c.Noble < 0 || c.MaxPerHyperplane < 0 || c.MaxResults < 0:
		return fmt.Errorf("%w: negative cap", ErrBadConfig)
	}
	return nil
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func (c Config) edgeFilter() lengthFilter {
	f := lengthFilter{eps: c.Epsilon}
	if c.MinEdgeLength != nil {
		f.min, f.hasMin = *c.MinEdgeLength, true
	}
	if c.MaxEdgeLength != nil {
		f.max, f.hasMax = *c.MaxEdgeLength, true
	}
	return f
}
