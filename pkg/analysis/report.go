package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/philipparndt/studframe/pkg/lines"
)

// MemberInfo summarizes one resolved member
type MemberInfo struct {
	Name       string
	Length     float64
	Brace      bool
	Operations int
}

// JointInfo names the members of a joint
type JointInfo struct {
	A, B string
	Type frame.JointType
}

// Report contains counts and measurements of a resolved structure
type Report struct {
	BoundingBox     geometry.BoundingBox
	Dimensions      geometry.Vector3
	MemberCount     int
	BraceCount      int
	JointCounts     map[frame.JointType]int
	InvalidJoints   []JointInfo
	OperationCounts map[frame.OperationType]int
	TotalLength     float64
	MinLength       float64
	MaxLength       float64
	AvgLength       float64
	Members         []MemberInfo
}

// Analyze builds the report of a resolved structure. Braces count toward
// lengths and operations.
func Analyze(s *frame.Structure) *Report {
	report := &Report{
		BoundingBox:     geometry.NewBoundingBox(),
		MemberCount:     len(s.Members),
		BraceCount:      len(s.Braces),
		JointCounts:     make(map[frame.JointType]int),
		OperationCounts: make(map[frame.OperationType]int),
		Members:         make([]MemberInfo, 0, len(s.Members)+len(s.Braces)),
	}

	for _, j := range s.Joints {
		report.JointCounts[j.Type]++
	}
	for _, j := range s.InvalidJoints() {
		report.InvalidJoints = append(report.InvalidJoints, JointInfo{
			A:    s.Members[j.A].Name,
			B:    s.Members[j.B].Name,
			Type: j.Type,
		})
	}

	minLength := math.MaxFloat64
	maxLength := 0.0

	for _, m := range s.AllMembers() {
		length := m.Length()
		report.Members = append(report.Members, MemberInfo{
			Name:       m.Name,
			Length:     length,
			Brace:      m.Index >= len(s.Members),
			Operations: len(m.Operations),
		})
		report.BoundingBox.ExtendSegment(m.Axis)

		for _, op := range m.Operations {
			report.OperationCounts[op.Type]++
		}

		report.TotalLength += length
		if length < minLength {
			minLength = length
		}
		if length > maxLength {
			maxLength = length
		}
	}

	if len(report.Members) > 0 {
		report.MinLength = minLength
		report.MaxLength = maxLength
		report.AvgLength = report.TotalLength / float64(len(report.Members))
		report.Dimensions = report.BoundingBox.Size()
	}
	return report
}

// OperationTotal returns the number of operations across all members
func (r *Report) OperationTotal() int {
	total := 0
	for _, n := range r.OperationCounts {
		total += n
	}
	return total
}

// FindLongestMembers returns the N longest members
func FindLongestMembers(report *Report, count int) []MemberInfo {
	members := make([]MemberInfo, len(report.Members))
	copy(members, report.Members)

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Length > members[j].Length
	})

	if count > len(members) {
		count = len(members)
	}
	return members[:count]
}

// FindShortestMembers returns the N shortest members
func FindShortestMembers(report *Report, count int) []MemberInfo {
	members := make([]MemberInfo, len(report.Members))
	copy(members, report.Members)

	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Length < members[j].Length
	})

	if count > len(members) {
		count = len(members)
	}
	return members[:count]
}

// CloseOperation is a pair of neighbouring operations on one member that
// sit closer than the roller can separate.
type CloseOperation struct {
	Member string
	First  frame.Operation
	Second frame.Operation
	Gap    float64
}

// CloseOperations lists neighbouring operations closer than minSpacing.
// Operations at the same location are a deliberate combination and are
// not reported. A minSpacing of zero disables the check.
func CloseOperations(members []*frame.Member, minSpacing float64) []CloseOperation {
	if minSpacing <= 0 {
		return nil
	}

	var found []CloseOperation
	for _, m := range members {
		ops := m.SortedOperations()
		for i := 1; i < len(ops); i++ {
			gap := ops[i].Location - ops[i-1].Location
			if gap > 1e-9 && gap < minSpacing {
				found = append(found, CloseOperation{
					Member: m.Name,
					First:  ops[i-1],
					Second: ops[i],
					Gap:    gap,
				})
			}
		}
	}
	return found
}

// OutOfRange lists operations left outside their member after trimming
func OutOfRange(members []*frame.Member) map[string][]frame.Operation {
	const slack = 1e-9
	out := make(map[string][]frame.Operation)
	for _, m := range members {
		for _, op := range m.Operations {
			if op.Location < -slack || op.Location > m.Length()+slack {
				out[m.Name] = append(out[m.Name], op)
			}
		}
	}
	return out
}

// CurveArc is the circle fitted through a curved member
type CurveArc struct {
	Frame  string
	Name   string
	Center geometry.Vector3
	Radius float64
	StdDev float64
}

// CurveArcs fits a circle to every curve of the network. Straight curves
// and two-point curves have no arc and are skipped.
func CurveArcs(network *lines.Network) ([]CurveArc, error) {
	var arcs []CurveArc
	for _, f := range network.Frames {
		for _, c := range f.Curves() {
			fit, err := c.Points.FitArc()
			if errors.Is(err, geometry.ErrCollinear) || errors.Is(err, geometry.ErrTooFewPoints) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("curve %q: %w", c.Name, err)
			}
			arcs = append(arcs, CurveArc{
				Frame:  f.Name,
				Name:   c.Name,
				Center: fit.Center,
				Radius: fit.Radius,
				StdDev: fit.StdDev,
			})
		}
	}
	return arcs, nil
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "in"
	}
	return fmt.Sprintf("%.4f %s", value, unit)
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}
