package lines

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wall = `
# north wall
frame north
member bottom 0 0 0 120 0 0
member top    0 0 96 120 0 96
member 0 0 0 0 0 96   # unnamed stud
curve arch 0 0 96 60 0 120 120 0 96
endframe

member loose 0 0 0 0 10 0
`

func TestParseReader(t *testing.T) {
	network, err := ParseReader(strings.NewReader(wall))
	require.NoError(t, err)

	require.Len(t, network.Frames, 2)
	assert.Equal(t, 5, network.ElementCount())

	north := network.Frame("north")
	require.NotNil(t, north)
	require.Len(t, north.Elements, 4)
	assert.Equal(t, "bottom", north.Elements[0].Name)
	assert.Equal(t, "", north.Elements[2].Name)
	assert.Equal(t, 6, north.Elements[2].Line)
	assert.True(t, north.Elements[3].Curve)
	assert.Len(t, north.Elements[3].Points, 3)

	loose := network.Frame(DefaultFrame)
	require.NotNil(t, loose)
	require.Len(t, loose.Elements, 1)
	assert.Equal(t, geometry.NewVector3(0, 10, 0), loose.Elements[0].Points[1])
}

func TestFrameSegmentsExpandsCurves(t *testing.T) {
	network, err := ParseReader(strings.NewReader(wall))
	require.NoError(t, err)

	segments, names, err := network.Frame("north").Segments(0.001)
	require.NoError(t, err)

	assert.Equal(t, []string{"bottom", "top", "", "arch.1", "arch.2"}, names)
	require.Len(t, segments, 5)
	assert.Equal(t, geometry.NewVector3(60, 0, 120), segments[3].End)
	assert.Equal(t, geometry.NewVector3(60, 0, 120), segments[4].Start)
}

func TestFrameSegmentsRejectsTwistedCurve(t *testing.T) {
	network, err := ParseReader(strings.NewReader("curve twist 0 0 0 1 0 0 1 1 0 1 1 1\n"))
	require.NoError(t, err)

	_, _, err = network.Frames[0].Segments(0.001)
	assert.ErrorIs(t, err, geometry.ErrNotCoplanar)
	assert.Contains(t, err.Error(), "twist")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
	}{
		{"unknown statement", "beam 0 0 0 1 1 1\n", ErrSyntax},
		{"short member", "member a 0 0 0 1 1\n", ErrSyntax},
		{"bad number", "member a 0 0 0 1 1 x\n", ErrSyntax},
		{"zero length", "member a 1 1 1 1 1 1\n", ErrSyntax},
		{"unnamed curve", "curve 0 0 0 1 0 0\n", ErrSyntax},
		{"single point curve", "curve c 0 0 0\n", ErrSyntax},
		{"nested frame", "frame a\nframe b\n", ErrSyntax},
		{"stray endframe", "endframe\n", ErrSyntax},
		{"unclosed frame", "frame a\nmember 0 0 0 1 0 0\n", ErrSyntax},
		{"duplicate name", "member a 0 0 0 1 0 0\nmember a 0 0 0 0 1 0\n", ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseReader(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseErrorReportsLine(t *testing.T) {
	_, err := ParseReader(strings.NewReader("# header\n\nmember a 0 0 0 1 0 0\nbeam\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestSameNameInDifferentFrames(t *testing.T) {
	input := "frame a\nmember s 0 0 0 1 0 0\nendframe\nframe b\nmember s 0 0 0 1 0 0\nendframe\n"
	network, err := ParseReader(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, network.Frames, 2)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "north-wall.lines")
	require.NoError(t, os.WriteFile(path, []byte(wall), 0o644))

	network, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, "north-wall", network.Name)

	bbox := network.BoundingBox()
	assert.Equal(t, geometry.NewVector3(0, 0, 0), bbox.Min)
	assert.Equal(t, geometry.NewVector3(120, 10, 120), bbox.Max)

	_, err = Parse(filepath.Join(t.TempDir(), "missing.lines"))
	assert.Error(t, err)
}
