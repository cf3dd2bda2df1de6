package lines

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/studframe/pkg/geometry"
)

var (
	// ErrSyntax is returned for any malformed statement.
	ErrSyntax = errors.New("lines: syntax error")
	// ErrDuplicateName is returned when two elements of a frame share a name.
	ErrDuplicateName = errors.New("lines: duplicate name")
)

// DefaultFrame names the frame that collects statements outside any
// frame/endframe block.
const DefaultFrame = "default"

// Parse reads a line network file. The network is named after the file.
func Parse(filename string) (*Network, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	network, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	network.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return network, nil
}

// parser holds the state of one pass over the input
type parser struct {
	network *Network
	current *Frame // explicit frame being read, nil outside frame/endframe
	loose   *Frame // implicit frame for statements outside any block
	names   map[*Frame]map[string]bool
	line    int
}

// ParseReader parses the line format from r.
//
//	# comment
//	frame <name>
//	member [name] x1 y1 z1 x2 y2 z2
//	curve <name> x y z x y z ...
//	endframe
func ParseReader(r io.Reader) (*Network, error) {
	p := &parser{
		network: NewNetwork(""),
		names:   make(map[*Frame]map[string]bool),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		p.line++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if err := p.statement(fields); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading line file: %w", err)
	}
	if p.current != nil {
		return nil, fmt.Errorf("%w: frame %q is never closed", ErrSyntax, p.current.Name)
	}
	return p.network, nil
}

func (p *parser) statement(fields []string) error {
	switch strings.ToLower(fields[0]) {
	case "frame":
		if p.current != nil {
			return p.errorf("frame %q opened inside frame %q", strings.Join(fields[1:], " "), p.current.Name)
		}
		name := strings.Join(fields[1:], " ")
		if name == "" {
			name = fmt.Sprintf("frame%d", len(p.network.Frames)+1)
		}
		p.current = p.network.AddFrame(name)

	case "endframe":
		if p.current == nil {
			return p.errorf("endframe without frame")
		}
		p.current = nil

	case "member":
		return p.member(fields[1:])

	case "curve":
		return p.curve(fields[1:])

	default:
		return p.errorf("unknown statement %q", fields[0])
	}
	return nil
}

// member accepts six coordinates with an optional leading name
func (p *parser) member(args []string) error {
	name := ""
	switch len(args) {
	case 6:
	case 7:
		name, args = args[0], args[1:]
	default:
		return p.errorf("member needs 6 coordinates, got %d fields", len(args))
	}

	points, err := p.points(args)
	if err != nil {
		return err
	}
	if points[0] == points[1] {
		return p.errorf("member %q has zero length", name)
	}
	return p.add(Element{Name: name, Points: points, Line: p.line})
}

// curve accepts a name followed by at least two points
func (p *parser) curve(args []string) error {
	if len(args) == 0 || len(args)%3 != 1 {
		return p.errorf("curve needs a name followed by x y z triples")
	}
	name := args[0]
	points, err := p.points(args[1:])
	if err != nil {
		return err
	}
	if len(points) < 2 {
		return p.errorf("curve %q needs at least 2 points", name)
	}
	for i := 1; i < len(points); i++ {
		if points[i] == points[i-1] {
			return p.errorf("curve %q repeats point %d", name, i+1)
		}
	}
	return p.add(Element{Name: name, Curve: true, Points: points, Line: p.line})
}

func (p *parser) points(args []string) (geometry.Polyline, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, p.errorf("invalid number %q", a)
		}
		values[i] = v
	}

	points := make(geometry.Polyline, 0, len(values)/3)
	for i := 0; i+2 < len(values); i += 3 {
		points = append(points, geometry.NewVector3(values[i], values[i+1], values[i+2]))
	}
	return points, nil
}

func (p *parser) add(e Element) error {
	frame := p.current
	if frame == nil {
		if p.loose == nil {
			p.loose = p.network.AddFrame(DefaultFrame)
		}
		frame = p.loose
	}

	if e.Name != "" {
		seen := p.names[frame]
		if seen == nil {
			seen = make(map[string]bool)
			p.names[frame] = seen
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: %q in frame %q on line %d", ErrDuplicateName, e.Name, frame.Name, p.line)
		}
		seen[e.Name] = true
	}

	frame.Elements = append(frame.Elements, e)
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, p.line, fmt.Sprintf(format, args...))
}
