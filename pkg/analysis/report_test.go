package analysis

import (
	"strings"
	"testing"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/philipparndt/studframe/pkg/lines"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(x1, y1, z1, x2, y2, z2 float64) geometry.Segment {
	return geometry.NewSegment(geometry.NewVector3(x1, y1, z1), geometry.NewVector3(x2, y2, z2))
}

func tee(t *testing.T, opts ...frame.Option) *frame.Structure {
	t.Helper()
	s, err := frame.New([]geometry.Segment{
		segment(0, 0, 0, 10, 0, 0),
		segment(5, 0, 0, 5, 10, 0),
	}, opts...)
	require.NoError(t, err)
	s.Resolve()
	return s
}

func TestAnalyzeTee(t *testing.T) {
	report := Analyze(tee(t))

	assert.Equal(t, 2, report.MemberCount)
	assert.Equal(t, 0, report.BraceCount)
	assert.Equal(t, 1, report.JointCounts[frame.T])
	assert.Empty(t, report.InvalidJoints)

	assert.InDelta(t, 10, report.MinLength, 1e-9)
	assert.InDelta(t, 11.05, report.MaxLength, 1e-9)
	assert.InDelta(t, 21.05, report.TotalLength, 1e-9)
	assert.InDelta(t, 10.525, report.AvgLength, 1e-9)

	// cross: dimple + 3 lip cuts, terminal: end truss + dimple + swage
	assert.Equal(t, 7, report.OperationTotal())
	assert.Equal(t, 2, report.OperationCounts[frame.OpDimple])
	assert.Equal(t, 3, report.OperationCounts[frame.OpLipCut])

	assert.True(t, report.BoundingBox.Min.ApproxEqual(geometry.NewVector3(0, -1.05, 0), 1e-9))
	assert.True(t, report.Dimensions.ApproxEqual(geometry.NewVector3(10, 11.05, 0), 1e-9))
}

func TestAnalyzeReportsInvalidJoints(t *testing.T) {
	s, err := frame.New([]geometry.Segment{
		segment(0, 0, 0, 10, 0, 0),
		segment(5, 0, 0, 5, 10, 0),
	}, frame.WithNames([]string{"cross", "leg"}))
	require.NoError(t, err)
	s.Joints = append(s.Joints, frame.NewJoint(0, 1, frame.Invalid))

	report := Analyze(s)
	require.Len(t, report.InvalidJoints, 1)
	assert.Equal(t, JointInfo{A: "cross", B: "leg", Type: frame.Invalid}, report.InvalidJoints[0])
}

func TestAnalyzeBraces(t *testing.T) {
	opts := frame.DefaultOptions()
	opts.GenerateBraces = true

	s, err := frame.New([]geometry.Segment{
		segment(0, 0, 0, 10, 0, 0),
		segment(0, 0, 0, 6, 8, 0),
	}, frame.WithOptions(opts))
	require.NoError(t, err)
	s.Resolve()

	report := Analyze(s)
	assert.Equal(t, 1, report.BraceCount)
	require.Len(t, report.Members, 3)
	assert.False(t, report.Members[1].Brace)
	assert.True(t, report.Members[2].Brace)
}

func TestFindLongestAndShortest(t *testing.T) {
	report := Analyze(tee(t))

	longest := FindLongestMembers(report, 5)
	require.Len(t, longest, 2)
	assert.Equal(t, "1", longest[0].Name)

	shortest := FindShortestMembers(report, 1)
	require.Len(t, shortest, 1)
	assert.Equal(t, "0", shortest[0].Name)
}

func TestCloseOperations(t *testing.T) {
	m := frame.NewMember(0, "stud", segment(0, 0, 0, 10, 0, 0))
	m.AddOperation(frame.OpDimple, 5)
	m.AddOperation(frame.OpNotch, 5)
	m.AddOperation(frame.OpSwage, 5.2)
	m.AddOperation(frame.OpLipCut, 8)

	assert.Nil(t, CloseOperations([]*frame.Member{m}, 0))

	found := CloseOperations([]*frame.Member{m}, 0.5)
	require.Len(t, found, 1)
	assert.Equal(t, "stud", found[0].Member)
	assert.Equal(t, frame.OpNotch, found[0].First.Type)
	assert.Equal(t, frame.OpSwage, found[0].Second.Type)
	assert.InDelta(t, 0.2, found[0].Gap, 1e-9)
}

func TestOutOfRange(t *testing.T) {
	m := frame.NewMember(0, "stud", segment(0, 0, 0, 10, 0, 0))
	m.AddOperation(frame.OpDimple, 1)
	m.AddOperation(frame.OpNotch, 9)
	m.Extend(frame.AxisStart, -2)

	out := OutOfRange([]*frame.Member{m})
	require.Len(t, out["stud"], 1)
	assert.Equal(t, frame.OpDimple, out["stud"][0].Type)
}

func TestCurveArcs(t *testing.T) {
	input := `
frame wall
curve arch 5 0 0 0 5 0 -5 0 0
curve straight 0 0 0 1 0 0 2 0 0
curve short 0 0 0 1 1 1
endframe
`
	network, err := lines.ParseReader(strings.NewReader(input))
	require.NoError(t, err)

	arcs, err := CurveArcs(network)
	require.NoError(t, err)
	require.Len(t, arcs, 1)
	assert.Equal(t, "arch", arcs[0].Name)
	assert.Equal(t, "wall", arcs[0].Frame)
	assert.InDelta(t, 5, arcs[0].Radius, 1e-9)
	assert.True(t, arcs[0].Center.ApproxEqual(geometry.NewVector3(0, 0, 0), 1e-9))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1.5000 in", FormatMeasurement(1.5, ""))
	assert.Equal(t, "(1.0000, -2.0000, 0.5000)", FormatVector(geometry.NewVector3(1, -2, 0.5)))
}
