package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigMatchesResolverDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, frame.DefaultOptions(), cfg.Options())
	assert.Equal(t, frame.DefaultProfile(), cfg.StudProfile())
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studframe.yaml")
	data := `
braces:
  enabled: true
  three_piece: true
profile:
  stud_width: 5.5
members:
  king:
    normal: [0, 0, 1]
    priority: 2
    extension: flush
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Options().GenerateBraces)
	assert.True(t, cfg.Options().ThreePieceBrace)
	assert.Equal(t, 6.0, cfg.Options().BraceLength)
	assert.Equal(t, 5.5, cfg.StudProfile().StudWidth)
	assert.Equal(t, 1.5, cfg.StudProfile().StudHeight)

	o, err := cfg.Overrides()
	require.NoError(t, err)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), o.Normals["king"])
	assert.Equal(t, 2, o.Priority("king"))
	assert.Equal(t, frame.ExtendFlush, o.Extension("king"))
	assert.Equal(t, frame.ExtendFull, o.Extension("jack"))
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("braces: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STUDFRAME_INTERSECTION_TOLERANCE", "0.01")
	t.Setenv("STUDFRAME_BRACES", "true")
	t.Setenv("STUDFRAME_THREE_PIECE", "not-a-bool")
	t.Setenv("STUDFRAME_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Tolerance.Intersection)
	assert.True(t, cfg.Braces.Enabled)
	assert.False(t, cfg.Braces.ThreePiece)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Members = map[string]MemberConfig{"sill": {Priority: 1}}
	path := filepath.Join(t.TempDir(), "nested", "studframe.yaml")

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative tolerance", func(c *Config) { c.Tolerance.Intersection = -1 }},
		{"zero pitch", func(c *Config) { c.Profile.Pitch = 0 }},
		{"short normal", func(c *Config) { c.Members = map[string]MemberConfig{"a": {Normal: []float64{1, 0}}} }},
		{"bad extension", func(c *Config) { c.Members = map[string]MemberConfig{"a": {Extension: "long"}} }},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
		{"negative spacing", func(c *Config) { c.Analysis.MinOperationSpacing = -0.1 }},
		{"bad debounce", func(c *Config) { c.Watch.Debounce = "soon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestFrameOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Braces.Enabled = true

	opts, err := cfg.FrameOptions()
	require.NoError(t, err)

	s, err := frame.New([]geometry.Segment{
		geometry.NewSegment(geometry.NewVector3(0, 0, 0), geometry.NewVector3(1, 0, 0)),
	}, opts...)
	require.NoError(t, err)
	assert.True(t, s.Options().GenerateBraces)
	assert.Equal(t, frame.DefaultProfile(), s.Profile())
}

func TestDebounceDuration(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceDuration())

	cfg.Watch.Debounce = "1s"
	assert.Equal(t, time.Second, cfg.DebounceDuration())

	cfg.Watch.Debounce = ""
	assert.Equal(t, 200*time.Millisecond, cfg.DebounceDuration())
}
