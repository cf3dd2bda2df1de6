package frame

import (
	"sort"

	"github.com/philipparndt/studframe/pkg/geometry"
)

// End names one end of a member's axis
type End int

const (
	AxisStart End = iota
	AxisEnd
)

// Opposite returns the other end
func (e End) Opposite() End {
	if e == AxisStart {
		return AxisEnd
	}
	return AxisStart
}

func (e End) String() string {
	if e == AxisStart {
		return "start"
	}
	return "end"
}

// Member is one stud: its current axis, web normal, operations and joints.
//
// Operation locations are distances from Axis.Start. Changing the axis
// through SetAxis, MoveEnd or Extend keeps the 3D position of every
// existing operation; locations are not clamped to the new length.
type Member struct {
	Index      int
	Name       string
	Axis       geometry.Segment
	Normal     geometry.Vector3
	Operations []Operation
	Joints     []Joint
}

// NewMember creates a member with a raw axis and no normal
func NewMember(index int, name string, axis geometry.Segment) *Member {
	return &Member{
		Index: index,
		Name:  name,
		Axis:  axis,
	}
}

// Length returns the current axis length
func (m *Member) Length() float64 {
	return m.Axis.Length()
}

// Direction returns the unit axis direction
func (m *Member) Direction() geometry.Vector3 {
	return m.Axis.Direction()
}

// HasNormal reports whether a web normal has been assigned
func (m *Member) HasNormal() bool {
	return !m.Normal.IsZero()
}

// EndPoint returns the position of the given end
func (m *Member) EndPoint(e End) geometry.Vector3 {
	if e == AxisStart {
		return m.Axis.Start
	}
	return m.Axis.End
}

// NearestEnd returns the end closest to p
func (m *Member) NearestEnd(p geometry.Vector3) End {
	if m.Axis.Start.Distance(p) <= m.Axis.End.Distance(p) {
		return AxisStart
	}
	return AxisEnd
}

// Outward returns the unit direction pointing out of the member at e
func (m *Member) Outward(e End) geometry.Vector3 {
	if e == AxisStart {
		return m.Direction().Neg()
	}
	return m.Direction()
}

// LocationOf returns the signed distance along the axis of p's projection
func (m *Member) LocationOf(p geometry.Vector3) float64 {
	return m.Axis.Project(p)
}

// LocationFromEnd converts a distance measured inward from e into a location
func (m *Member) LocationFromEnd(e End, distance float64) float64 {
	if e == AxisStart {
		return distance
	}
	return m.Length() - distance
}

// PointAt returns the 3D point at a location along the axis
func (m *Member) PointAt(location float64) geometry.Vector3 {
	return m.Axis.PointAtDistance(location)
}

// OperationPoint returns the absolute position of an operation
func (m *Member) OperationPoint(op Operation) geometry.Vector3 {
	return m.PointAt(op.Location)
}

// SetAxis replaces the axis and reprojects every operation onto it so its
// absolute position is unchanged.
func (m *Member) SetAxis(axis geometry.Segment) {
	old := m.Axis
	for i, op := range m.Operations {
		p := old.PointAtDistance(op.Location)
		m.Operations[i].Location = axis.Project(p)
	}
	m.Axis = axis
}

// MoveEnd relocates one end of the axis to p
func (m *Member) MoveEnd(e End, p geometry.Vector3) {
	axis := m.Axis
	if e == AxisStart {
		axis.Start = p
	} else {
		axis.End = p
	}
	m.SetAxis(axis)
}

// Extend moves the given end outward along the axis by amount.
// A negative amount trims the member.
func (m *Member) Extend(e End, amount float64) {
	m.MoveEnd(e, m.EndPoint(e).Add(m.Outward(e).Mul(amount)))
}

// AddOperation appends an operation at a location along the axis
func (m *Member) AddOperation(t OperationType, location float64) {
	m.Operations = append(m.Operations, Operation{Type: t, Location: location})
}

// AddOperationFromEnd appends an operation distance units inward from e
func (m *Member) AddOperationFromEnd(t OperationType, e End, distance float64) {
	m.AddOperation(t, m.LocationFromEnd(e, distance))
}

// SortedOperations returns a copy of the operations ordered by location.
// Operations at the same location keep their insertion order.
func (m *Member) SortedOperations() []Operation {
	ops := make([]Operation, len(m.Operations))
	copy(ops, m.Operations)
	sort.SliceStable(ops, func(i, j int) bool {
		return ops[i].Location < ops[j].Location
	})
	return ops
}

// CountOperations returns how many operations of type t the member carries
func (m *Member) CountOperations(t OperationType) int {
	count := 0
	for _, op := range m.Operations {
		if op.Type == t {
			count++
		}
	}
	return count
}

// HasJoint reports whether an equal joint is already on the member
func (m *Member) HasJoint(j Joint) bool {
	for _, existing := range m.Joints {
		if existing.Equal(j) {
			return true
		}
	}
	return false
}

func (m *Member) addJoint(j Joint) {
	m.Joints = append(m.Joints, j)
}
