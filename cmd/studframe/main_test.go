package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/studframe/pkg/export"
	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const corner = `
frame corner
member cross 0 0 0 10 0 0
member leg 5 0 0 5 10 0
member rake 0 0 0 6 8 0
endframe
`

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corner.lines")
	require.NoError(t, os.WriteFile(path, []byte(corner), 0o644))
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestResolveWritesOneRowPerMember(t *testing.T) {
	input := writeInput(t)
	outPath := filepath.Join(t.TempDir(), "corner.csv")

	execute(t, "resolve", input, "--out", outPath, "--braces")

	file, err := os.Open(outPath)
	require.NoError(t, err)
	defer file.Close()

	rows, err := export.Read(file)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "cross", rows[0].Label)
	assert.Equal(t, "rake", rows[2].Label)
	assert.Equal(t, "cross-rake-BR", rows[3].Label)
	for _, r := range rows {
		assert.NotEmpty(t, r.Operations, r.Label)
	}
}

func TestJointsCommand(t *testing.T) {
	out := execute(t, "joints", writeInput(t))

	assert.Contains(t, out, "Frame corner")
	assert.Contains(t, out, "Branch")
	assert.Contains(t, out, "leg")

	out = execute(t, "joints", writeInput(t), "--type", "branch")
	assert.Equal(t, 1, strings.Count(out, "Branch"))
}

func TestInfoCommand(t *testing.T) {
	out := execute(t, "info", writeInput(t))

	assert.Contains(t, out, "Frames: 1")
	assert.Contains(t, out, "Members: 3")
}

func TestParseJointType(t *testing.T) {
	jt, err := parseJointType("passthrough")
	require.NoError(t, err)
	require.NotNil(t, jt)
	assert.Equal(t, "PassThrough", jt.String())

	jt, err = parseJointType("")
	require.NoError(t, err)
	assert.Nil(t, jt)

	_, err = parseJointType("mitre")
	assert.Error(t, err)
}

func TestPrintOutOfRangeSortsByName(t *testing.T) {
	axis := geometry.NewSegment(geometry.NewVector3(0, 0, 0), geometry.NewVector3(4, 0, 0))
	var members []*frame.Member
	for i, name := range []string{"stud", "plate", "header", "kicker"} {
		m := frame.NewMember(i, name, axis)
		m.AddOperation(frame.OpNotch, 2)
		if name != "kicker" {
			m.AddOperation(frame.OpLipCut, -0.5)
		}
		members = append(members, m)
	}
	members[1].AddOperation(frame.OpDimple, 4.5)

	for i := 0; i < 5; i++ {
		var out bytes.Buffer
		printOutOfRange(&out, members)
		assert.Equal(t, "  header has 1 operations outside its length\n"+
			"  plate has 2 operations outside its length\n"+
			"  stud has 1 operations outside its length\n", out.String())
	}
}

func TestWriteFile(t *testing.T) {
	rows := []export.Row{{Label: "stud", Length: 4}}
	path := filepath.Join(t.TempDir(), "out.csv")

	require.NoError(t, writeFile(path, rows))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "COMPONENT,stud,4.00\n", string(data))

	err = writeFile(filepath.Join(t.TempDir(), "missing", "out.csv"), rows)
	assert.ErrorContains(t, err, "failed to create output")
}
