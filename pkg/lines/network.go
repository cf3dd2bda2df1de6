package lines

import (
	"fmt"

	"github.com/philipparndt/studframe/pkg/geometry"
)

// Element is one member or curve statement
type Element struct {
	Name   string
	Curve  bool
	Points geometry.Polyline
	Line   int // source line, for error messages
}

// Frame is a group of elements resolved together as one structure
type Frame struct {
	Name     string
	Elements []Element
}

// Network represents a complete parsed line file
type Network struct {
	Name   string
	Frames []*Frame
}

// NewNetwork creates an empty network
func NewNetwork(name string) *Network {
	return &Network{
		Name:   name,
		Frames: make([]*Frame, 0),
	}
}

// AddFrame appends a new empty frame and returns it
func (n *Network) AddFrame(name string) *Frame {
	f := &Frame{Name: name}
	n.Frames = append(n.Frames, f)
	return f
}

// Frame returns the frame with the given name, or nil
func (n *Network) Frame(name string) *Frame {
	for _, f := range n.Frames {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ElementCount returns the number of statements across all frames
func (n *Network) ElementCount() int {
	count := 0
	for _, f := range n.Frames {
		count += len(f.Elements)
	}
	return count
}

// BoundingBox calculates the bounding box of every point in the network
func (n *Network) BoundingBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	for _, f := range n.Frames {
		for _, e := range f.Elements {
			for _, p := range e.Points {
				bbox.Extend(p)
			}
		}
	}
	return bbox
}

// Curves returns the curve elements of the frame
func (f *Frame) Curves() []Element {
	var curves []Element
	for _, e := range f.Elements {
		if e.Curve {
			curves = append(curves, e)
		}
	}
	return curves
}

// Segments flattens the frame into resolver input. Members keep their
// name, which may be empty; curves are checked for coplanarity and split
// into "<name>.<k>" members with k counting from 1.
func (f *Frame) Segments(planarity float64) ([]geometry.Segment, []string, error) {
	var segments []geometry.Segment
	var names []string

	for _, e := range f.Elements {
		if !e.Curve {
			segments = append(segments, geometry.NewSegment(e.Points[0], e.Points[1]))
			names = append(names, e.Name)
			continue
		}

		if err := e.Points.Coplanar(planarity); err != nil {
			return nil, nil, fmt.Errorf("curve %q on line %d: %w", e.Name, e.Line, err)
		}
		for k, s := range e.Points.Segments() {
			segments = append(segments, s)
			names = append(names, fmt.Sprintf("%s.%d", e.Name, k+1))
		}
	}
	return segments, names, nil
}
