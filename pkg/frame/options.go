package frame

import (
	"fmt"

	"github.com/philipparndt/studframe/pkg/geometry"
	"go.uber.org/zap"
)

// Options are the numeric and boolean resolver settings
type Options struct {
	IntersectionTolerance float64 // max segment distance counted as touching
	PlanarityTolerance    float64 // angular tolerance of plane and parallel tests
	GenerateBraces        bool
	ThreePieceBrace       bool
	BraceLength           float64 // distance from a branch corner to a brace attachment
	ExteriorBraceLength   float64 // length of each exterior lap of a three-piece brace
	FirstFaceToFace       bool    // orient each seed so its first joint is face-to-face
}

// DefaultOptions returns the resolver defaults
func DefaultOptions() Options {
	return Options{
		IntersectionTolerance: 0.001,
		PlanarityTolerance:    0.001,
		BraceLength:           6,
		ExteriorBraceLength:   3,
	}
}

// Validate checks tolerances and brace lengths
func (o Options) Validate() error {
	if o.IntersectionTolerance < 0 || o.PlanarityTolerance < 0 {
		return fmt.Errorf("%w: tolerances must not be negative", ErrInvalidOptions)
	}
	if o.PlanarityTolerance >= 1 {
		return fmt.Errorf("%w: planarity tolerance must be below 1", ErrInvalidOptions)
	}
	if o.GenerateBraces && (o.BraceLength <= 0 || o.ExteriorBraceLength <= 0) {
		return fmt.Errorf("%w: brace lengths must be positive", ErrInvalidOptions)
	}
	return nil
}

// Overrides are sparse per-member settings keyed by member name
type Overrides struct {
	Normals    map[string]geometry.Vector3
	Priorities map[string]int
	Extensions map[string]ExtensionType
}

// PreferredNormal returns the preferred web normal for name, if any
func (o Overrides) PreferredNormal(name string) (geometry.Vector3, bool) {
	n, ok := o.Normals[name]
	if !ok || n.IsZero() {
		return geometry.Vector3{}, false
	}
	return n.Normalize(), true
}

// Priority returns the pass-through priority for name, 0 when absent
func (o Overrides) Priority(name string) int {
	return o.Priorities[name]
}

// Extension returns the face-to-face extension type for name, ExtendFull when absent
func (o Overrides) Extension(name string) ExtensionType {
	if e, ok := o.Extensions[name]; ok {
		return e
	}
	return ExtendFull
}

type settings struct {
	names     []string
	options   Options
	profile   Profile
	overrides Overrides
	logger    *zap.Logger
}

// Option configures a Structure
type Option func(*settings)

// WithNames sets member names by input index. Missing names default to the index.
func WithNames(names []string) Option {
	return func(s *settings) {
		s.names = names
	}
}

// WithOptions replaces the resolver options
func WithOptions(o Options) Option {
	return func(s *settings) {
		s.options = o
	}
}

// WithProfile replaces the stud profile
func WithProfile(p Profile) Option {
	return func(s *settings) {
		s.profile = p
	}
}

// WithOverrides sets the per-member overrides
func WithOverrides(o Overrides) Option {
	return func(s *settings) {
		s.overrides = o
	}
}

// WithLogger sets the logger used during resolution
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
