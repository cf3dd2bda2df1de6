package frame

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/philipparndt/studframe/pkg/graph"
	"go.uber.org/zap"
)

var (
	// ErrNoSegments is returned when a structure is created without input.
	ErrNoSegments = errors.New("frame: no segments")
	// ErrTooManyNames is returned when more names than segments are supplied.
	ErrTooManyNames = errors.New("frame: more names than segments")
	// ErrDegenerateSegment is returned for a segment whose endpoints coincide.
	ErrDegenerateSegment = errors.New("frame: degenerate segment")
	// ErrInvalidOptions is returned when Options fail validation.
	ErrInvalidOptions = errors.New("frame: invalid options")
	// ErrInvalidProfile is returned when a Profile fails validation.
	ErrInvalidProfile = errors.New("frame: invalid profile")
)

// Structure owns the members of one line network together with the
// graph and joints discovered while resolving it.
type Structure struct {
	// Members holds one entry per input segment, indexed by input order.
	Members []*Member
	// Braces holds members synthesized at branch joints.
	Braces []*Member
	// Joints holds one joint per graph edge in discovery order.
	Joints []Joint

	graph     *graph.Graph
	branches  []branchSite
	options   Options
	profile   Profile
	overrides Overrides
	logger    *zap.Logger
	resolved  bool
}

// New validates the input and creates an unresolved structure
func New(segments []geometry.Segment, opts ...Option) (*Structure, error) {
	cfg := settings{
		options: DefaultOptions(),
		profile: DefaultProfile(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(segments) == 0 {
		return nil, ErrNoSegments
	}
	if len(cfg.names) > len(segments) {
		return nil, fmt.Errorf("%w: %d names for %d segments", ErrTooManyNames, len(cfg.names), len(segments))
	}
	if err := cfg.options.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.profile.Validate(); err != nil {
		return nil, err
	}

	members := make([]*Member, len(segments))
	for i, seg := range segments {
		if seg.IsDegenerate() {
			return nil, fmt.Errorf("%w: segment %d", ErrDegenerateSegment, i)
		}
		name := strconv.Itoa(i)
		if i < len(cfg.names) && cfg.names[i] != "" {
			name = cfg.names[i]
		}
		members[i] = NewMember(i, name, seg)
	}

	return &Structure{
		Members:   members,
		options:   cfg.options,
		profile:   cfg.profile,
		overrides: cfg.overrides,
		logger:    cfg.logger,
	}, nil
}

// Options returns the resolver options
func (s *Structure) Options() Options {
	return s.options
}

// Profile returns the stud profile
func (s *Structure) Profile() Profile {
	return s.profile
}

// Graph returns the adjacency built by Resolve, or nil before it runs
func (s *Structure) Graph() *graph.Graph {
	return s.graph
}

// stage is one step of the resolution pipeline. Every stage is the sole
// writer of the members it touches while it runs.
type stage struct {
	name    string
	joint   JointType
	resolve func(Joint)
}

func (s *Structure) stages() []stage {
	return []stage{
		{"face-to-face", FaceToFace, s.resolveFaceToFace},
		{"branch", Branch, s.resolveBranch},
		{"t", T, s.resolveT},
		{"pass-through", PassThrough, s.resolvePassThrough},
	}
}

// Resolve runs the full pipeline: graph construction, orientation
// propagation with joint discovery, the four joint resolvers in order and
// brace synthesis. Calling it again has no effect.
func (s *Structure) Resolve() {
	if s.resolved {
		return
	}
	s.resolved = true

	axes := make([]geometry.Segment, len(s.Members))
	for i, m := range s.Members {
		axes[i] = m.Axis
	}
	s.graph = graph.FromSegments(axes, s.options.IntersectionTolerance)
	s.logger.Debug("graph built",
		zap.Int("members", s.graph.Len()),
		zap.Int("edges", s.graph.EdgeCount()))

	s.propagate()
	s.graph.Reset()

	for _, st := range s.stages() {
		count := 0
		for _, j := range s.Joints {
			if j.Type != st.joint {
				continue
			}
			st.resolve(j)
			count++
		}
		s.logger.Debug("stage resolved", zap.String("stage", st.name), zap.Int("joints", count))
	}

	if s.options.GenerateBraces {
		s.synthesizeBraces()
		s.logger.Debug("braces synthesized", zap.Int("braces", len(s.Braces)))
	}

	for _, j := range s.InvalidJoints() {
		s.logger.Warn("unresolved joint",
			zap.String("a", s.Members[j.A].Name),
			zap.String("b", s.Members[j.B].Name))
	}
}

// Resolved reports whether Resolve has run
func (s *Structure) Resolved() bool {
	return s.resolved
}

// JointsOfType returns the joints of type t in discovery order
func (s *Structure) JointsOfType(t JointType) []Joint {
	var joints []Joint
	for _, j := range s.Joints {
		if j.Type == t {
			joints = append(joints, j)
		}
	}
	return joints
}

// InvalidJoints returns the joints that no resolver handled
func (s *Structure) InvalidJoints() []Joint {
	return s.JointsOfType(Invalid)
}

// AllMembers returns the input members followed by the braces
func (s *Structure) AllMembers() []*Member {
	all := make([]*Member, 0, len(s.Members)+len(s.Braces))
	all = append(all, s.Members...)
	return append(all, s.Braces...)
}

// place appends an operation when its location lies on the member.
// Operations off the member are dropped and logged at debug level.
func (s *Structure) place(m *Member, t OperationType, location float64) bool {
	const slack = 1e-9
	if location < -slack || location > m.Length()+slack {
		s.logger.Debug("operation dropped",
			zap.String("member", m.Name),
			zap.Stringer("type", t),
			zap.Float64("location", location),
			zap.Float64("length", m.Length()))
		return false
	}
	m.AddOperation(t, location)
	return true
}

// placeFromEnd places an operation distance units inward from e
func (s *Structure) placeFromEnd(m *Member, t OperationType, e End, distance float64) bool {
	return s.place(m, t, m.LocationFromEnd(e, distance))
}

// placeRow fills [from, to] with operations every Pitch and closes the
// range with one operation exactly at to.
func (s *Structure) placeRow(m *Member, t OperationType, from, to float64) {
	for loc := from; loc < to; loc += s.profile.Pitch {
		s.place(m, t, loc)
	}
	s.place(m, t, to)
}
