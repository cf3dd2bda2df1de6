package main

import (
	"fmt"

	"github.com/philipparndt/studframe/internal/config"
	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/philipparndt/studframe/pkg/lines"
	"go.uber.org/zap"
)

// resolvedFrame is one frame of the input resolved as its own structure
type resolvedFrame struct {
	Name      string
	Structure *frame.Structure
}

// resolveFile parses filename and resolves every non-empty frame with the
// given configuration.
func resolveFile(filename string, c *config.Config, log *zap.Logger) (*lines.Network, []resolvedFrame, error) {
	network, err := lines.Parse(filename)
	if err != nil {
		return nil, nil, err
	}

	base, err := c.FrameOptions()
	if err != nil {
		return nil, nil, err
	}

	var frames []resolvedFrame
	for _, f := range network.Frames {
		segments, names, err := f.Segments(c.Tolerance.Planarity)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %q: %w", f.Name, err)
		}
		if len(segments) == 0 {
			continue
		}

		opts := make([]frame.Option, 0, len(base)+2)
		opts = append(opts, base...)
		opts = append(opts,
			frame.WithNames(names),
			frame.WithLogger(log.With(zap.String("frame", f.Name))))

		s, err := frame.New(segments, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("frame %q: %w", f.Name, err)
		}
		s.Resolve()
		log.Debug("frame resolved",
			zap.String("frame", f.Name),
			zap.Int("members", len(s.Members)),
			zap.Int("joints", len(s.Joints)),
			zap.Int("braces", len(s.Braces)))

		frames = append(frames, resolvedFrame{Name: f.Name, Structure: s})
	}
	return network, frames, nil
}
