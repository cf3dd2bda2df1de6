package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/geometry"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds all studframe configuration.
type Config struct {
	Tolerance       ToleranceConfig         `yaml:"tolerance"`
	Braces          BraceConfig             `yaml:"braces"`
	FirstFaceToFace bool                    `yaml:"first_face_to_face"`
	Profile         ProfileConfig           `yaml:"profile"`
	Members         map[string]MemberConfig `yaml:"members,omitempty"`
	Logging         LoggingConfig           `yaml:"logging"`
	Analysis        AnalysisConfig          `yaml:"analysis"`
	Watch           WatchConfig             `yaml:"watch"`
}

// ToleranceConfig configures adjacency and plane tests.
type ToleranceConfig struct {
	Intersection float64 `yaml:"intersection"`
	Planarity    float64 `yaml:"planarity"`
}

// BraceConfig configures brace synthesis at branch joints.
type BraceConfig struct {
	Enabled        bool    `yaml:"enabled"`
	ThreePiece     bool    `yaml:"three_piece"`
	Length         float64 `yaml:"length"`
	ExteriorLength float64 `yaml:"exterior_length"`
}

// ProfileConfig holds the stud section constants in inches.
type ProfileConfig struct {
	StudWidth      float64 `yaml:"stud_width"`
	StudHeight     float64 `yaml:"stud_height"`
	WebHoleSpacing float64 `yaml:"web_hole_spacing"`
	EndOffset      float64 `yaml:"end_offset"`
	DimpleStandoff float64 `yaml:"dimple_standoff"`
	Clearance      float64 `yaml:"clearance"`
	Pitch          float64 `yaml:"pitch"`
	FinalPad       float64 `yaml:"final_pad"`
}

// MemberConfig holds the optional overrides of one member, keyed by name.
type MemberConfig struct {
	Normal    []float64 `yaml:"normal,omitempty"`    // preferred web normal, x y z
	Priority  int       `yaml:"priority,omitempty"`  // pass-through priority, higher stays inside
	Extension string    `yaml:"extension,omitempty"` // full, flush or none
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// AnalysisConfig configures report checks.
type AnalysisConfig struct {
	MinOperationSpacing float64 `yaml:"min_operation_spacing"` // 0 disables the check
}

// WatchConfig configures --watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	opts := frame.DefaultOptions()
	p := frame.DefaultProfile()

	return &Config{
		Tolerance: ToleranceConfig{
			Intersection: opts.IntersectionTolerance,
			Planarity:    opts.PlanarityTolerance,
		},
		Braces: BraceConfig{
			Enabled:        opts.GenerateBraces,
			ThreePiece:     opts.ThreePieceBrace,
			Length:         opts.BraceLength,
			ExteriorLength: opts.ExteriorBraceLength,
		},
		FirstFaceToFace: opts.FirstFaceToFace,
		Profile: ProfileConfig{
			StudWidth:      p.StudWidth,
			StudHeight:     p.StudHeight,
			WebHoleSpacing: p.WebHoleSpacing,
			EndOffset:      p.EndOffset,
			DimpleStandoff: p.DimpleStandoff,
			Clearance:      p.Clearance,
			Pitch:          p.Pitch,
			FinalPad:       p.FinalPad,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Watch: WatchConfig{
			Debounce: "200ms",
		},
	}
}

// Load loads configuration from a file. A missing file yields the
// defaults. Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides reads STUDFRAME_* variables. Unparsable values are ignored.
func (c *Config) applyEnvOverrides() {
	envFloat("STUDFRAME_INTERSECTION_TOLERANCE", &c.Tolerance.Intersection)
	envFloat("STUDFRAME_PLANARITY_TOLERANCE", &c.Tolerance.Planarity)
	envBool("STUDFRAME_BRACES", &c.Braces.Enabled)
	envBool("STUDFRAME_THREE_PIECE", &c.Braces.ThreePiece)
	envBool("STUDFRAME_FIRST_FACE_TO_FACE", &c.FirstFaceToFace)

	if level := os.Getenv("STUDFRAME_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
}

func envFloat(key string, dst *float64) {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		*dst = v
	}
}

func envBool(key string, dst *bool) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

// Options converts the tolerance and brace sections to resolver options.
func (c *Config) Options() frame.Options {
	return frame.Options{
		IntersectionTolerance: c.Tolerance.Intersection,
		PlanarityTolerance:    c.Tolerance.Planarity,
		GenerateBraces:        c.Braces.Enabled,
		ThreePieceBrace:       c.Braces.ThreePiece,
		BraceLength:           c.Braces.Length,
		ExteriorBraceLength:   c.Braces.ExteriorLength,
		FirstFaceToFace:       c.FirstFaceToFace,
	}
}

// StudProfile converts the profile section.
func (c *Config) StudProfile() frame.Profile {
	p := c.Profile
	return frame.Profile{
		StudWidth:      p.StudWidth,
		StudHeight:     p.StudHeight,
		WebHoleSpacing: p.WebHoleSpacing,
		EndOffset:      p.EndOffset,
		DimpleStandoff: p.DimpleStandoff,
		Clearance:      p.Clearance,
		Pitch:          p.Pitch,
		FinalPad:       p.FinalPad,
	}
}

// Overrides converts the members section to sparse per-member overrides.
func (c *Config) Overrides() (frame.Overrides, error) {
	o := frame.Overrides{
		Normals:    make(map[string]geometry.Vector3),
		Priorities: make(map[string]int),
		Extensions: make(map[string]frame.ExtensionType),
	}

	for name, m := range c.Members {
		if len(m.Normal) > 0 {
			if len(m.Normal) != 3 {
				return o, fmt.Errorf("%w: member %q normal needs 3 components", ErrInvalid, name)
			}
			o.Normals[name] = geometry.NewVector3(m.Normal[0], m.Normal[1], m.Normal[2])
		}
		if m.Priority != 0 {
			o.Priorities[name] = m.Priority
		}
		if m.Extension != "" {
			ext, err := frame.ParseExtensionType(m.Extension)
			if err != nil {
				return o, fmt.Errorf("%w: member %q: %v", ErrInvalid, name, err)
			}
			o.Extensions[name] = ext
		}
	}
	return o, nil
}

// FrameOptions returns the resolver options, profile and overrides as
// constructor options for frame.New.
func (c *Config) FrameOptions() ([]frame.Option, error) {
	overrides, err := c.Overrides()
	if err != nil {
		return nil, err
	}
	return []frame.Option{
		frame.WithOptions(c.Options()),
		frame.WithProfile(c.StudProfile()),
		frame.WithOverrides(overrides),
	}, nil
}

// DebounceDuration parses the watch debounce, falling back to 200ms.
func (c *Config) DebounceDuration() time.Duration {
	if d, err := time.ParseDuration(c.Watch.Debounce); err == nil && d > 0 {
		return d
	}
	return 200 * time.Millisecond
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Options().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.StudProfile().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Overrides(); err != nil {
		return err
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Logging.Format)
	}

	if c.Analysis.MinOperationSpacing < 0 {
		return fmt.Errorf("%w: min operation spacing must not be negative", ErrInvalid)
	}
	if c.Watch.Debounce != "" {
		if _, err := time.ParseDuration(c.Watch.Debounce); err != nil {
			return fmt.Errorf("%w: watch debounce: %v", ErrInvalid, err)
		}
	}
	return nil
}
