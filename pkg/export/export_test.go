package export

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(name string, length float64, ops ...frame.Operation) *frame.Member {
	m := frame.NewMember(0, name, geometry.NewSegment(geometry.NewVector3(0, 0, 0), geometry.NewVector3(length, 0, 0)))
	m.Normal = geometry.NewVector3(0, -1, 0)
	m.Operations = ops
	return m
}

// written returns v as it reads back from a two decimal field
func written(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

func TestWriteCSV(t *testing.T) {
	m := member("stud-1", 96.123456,
		frame.Operation{Type: frame.OpSwage, Location: 3.14159},
		frame.Operation{Type: frame.OpEndTruss, Location: 0},
		frame.Operation{Type: frame.OpLipCut, Location: 95.5},
	)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*frame.Member{m}, CSV))

	assert.Equal(t, "COMPONENT,stud-1,96.12,END_TRUSS,0.00,SWAGE,3.14,LIP_CUT,95.50\n", buf.String())
}

func TestWriteDetailed(t *testing.T) {
	m := member("a", 10, frame.Operation{Type: frame.OpDimple, Location: 5})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []*frame.Member{m}, Detailed))

	want := "COMPONENT,a,10.00,0.0000,0.0000,0.0000,10.0000,0.0000,0.0000,0.0000,-1.0000,0.0000,DIMPLE,5.00\n"
	assert.Equal(t, want, buf.String())
}

func TestRoundTrip(t *testing.T) {
	s, err := frame.New([]geometry.Segment{
		geometry.NewSegment(geometry.NewVector3(0, 0, 0), geometry.NewVector3(10, 0, 0)),
		geometry.NewSegment(geometry.NewVector3(5, 0, 0), geometry.NewVector3(5, 10, 0)),
		geometry.NewSegment(geometry.NewVector3(0, 0, 0), geometry.NewVector3(6, 8, 0)),
	}, frame.WithNames([]string{"cross", "terminal", "rake"}))
	require.NoError(t, err)
	s.Resolve()

	for _, format := range []Format{CSV, Detailed} {
		t.Run(format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, s.AllMembers(), format))

			got, err := Read(&buf)
			require.NoError(t, err)

			want := Rows(s.AllMembers(), format)
			for i := range want {
				want[i].Length = written(want[i].Length)
				for j := range want[i].Operations {
					want[i].Operations[j].Location = written(want[i].Operations[j].Location)
				}
			}

			opts := cmp.Options{
				cmpopts.EquateApprox(0, 1e-4),
				cmpopts.EquateEmpty(),
			}
			if diff := cmp.Diff(want, got, opts); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadMalformed(t *testing.T) {
	tests := map[string]string{
		"wrong tag":         "MEMBER,a,1.00\n",
		"bad length":        "COMPONENT,a,long\n",
		"dangling op":       "COMPONENT,a,1.00,DIMPLE\n",
		"unknown op":        "COMPONENT,a,1.00,DRILL,0.50\n",
		"short geometry":    "COMPONENT,a,1.00,0.0,0.0,0.0\n",
		"bad location":      "COMPONENT,a,1.00,DIMPLE,x\n",
		"too short overall": "COMPONENT,a\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedRow)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Detailed")
	require.NoError(t, err)
	assert.Equal(t, Detailed, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, CSV, f)

	_, err = ParseFormat("json")
	assert.Error(t, err)
}
