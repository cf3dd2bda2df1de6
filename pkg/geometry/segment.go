package geometry

import "math"

// ParallelEpsilon replaces a zero denominator in the line-line closest
// point solution. Parallel lines therefore resolve to an approximate
// parameter instead of failing.
const ParallelEpsilon = 1e-5

// Segment is a directed 3D line segment
type Segment struct {
	Start Vector3
	End   Vector3
}

// NewSegment creates a segment between two points
func NewSegment(start, end Vector3) Segment {
	return Segment{Start: start, End: end}
}

// Vector returns End - Start
func (s Segment) Vector() Vector3 {
	return s.End.Sub(s.Start)
}

// Direction returns the unit direction from Start to End
func (s Segment) Direction() Vector3 {
	return s.Vector().Normalize()
}

// Length returns the Euclidean length of the segment
func (s Segment) Length() float64 {
	return s.Start.Distance(s.End)
}

// IsDegenerate reports whether Start and End coincide
func (s Segment) IsDegenerate() bool {
	return s.Start == s.End
}

// Reversed returns the segment with swapped endpoints
func (s Segment) Reversed() Segment {
	return Segment{Start: s.End, End: s.Start}
}

// Midpoint returns the point halfway along the segment
func (s Segment) Midpoint() Vector3 {
	return s.PointAt(0.5)
}

// PointAt returns Start + t*(End-Start). t is not clamped.
func (s Segment) PointAt(t float64) Vector3 {
	return s.Start.Add(s.Vector().Mul(t))
}

// PointAtDistance returns the point d units from Start along the direction.
func (s Segment) PointAtDistance(d float64) Vector3 {
	return s.Start.Add(s.Direction().Mul(d))
}

// Project returns the signed distance from Start to the projection of p
// onto the infinite line through the segment.
func (s Segment) Project(p Vector3) float64 {
	return p.Sub(s.Start).Dot(s.Direction())
}

// Parameter returns the unclamped parameter t of p projected onto the line.
func (s Segment) Parameter(p Vector3) float64 {
	v := s.Vector()
	lengthSq := v.Dot(v)
	if lengthSq == 0 {
		return 0
	}
	return p.Sub(s.Start).Dot(v) / lengthSq
}

// ClosestPoint returns the point on the segment nearest to p
func (s Segment) ClosestPoint(p Vector3) Vector3 {
	t := math.Max(0, math.Min(1, s.Parameter(p)))
	return s.PointAt(t)
}

// DistanceToPoint returns the minimum distance from p to the segment
func (s Segment) DistanceToPoint(p Vector3) float64 {
	return p.Distance(s.ClosestPoint(p))
}

// LineParameters solves for the parameters (t, u) of the closest points
// between the infinite lines through s and other, so that s.PointAt(t)
// and other.PointAt(u) are the pair of nearest points.
//
// A denominator that is exactly zero is replaced by ParallelEpsilon. For
// parallel lines this yields a finite but arbitrary pair.
func (s Segment) LineParameters(other Segment) (t, u float64) {
	d1 := s.Vector()
	d2 := other.Vector()
	r := s.Start.Sub(other.Start)

	a := d1.Dot(d1)
	b := d1.Dot(d2)
	c := d1.Dot(r)
	e := d2.Dot(d2)
	f := d2.Dot(r)

	denom := a*e - b*b
	if denom == 0 {
		denom = ParallelEpsilon
	}
	t = (b*f - c*e) / denom

	// u follows from the second normal equation once t is known
	if e == 0 {
		e = ParallelEpsilon
	}
	u = (f + t*b) / e
	return t, u
}

// ClosestPointTo returns the point on the infinite line through s that is
// nearest to the infinite line through other.
func (s Segment) ClosestPointTo(other Segment) Vector3 {
	t, _ := s.LineParameters(other)
	return s.PointAt(t)
}

// LineDistance returns the distance between the infinite lines through s
// and other, and false when the lines are parallel and the distance is
// undefined by the cross-product formula.
func (s Segment) LineDistance(other Segment) (float64, bool) {
	n := s.Vector().Cross(other.Vector())
	if n.Length() == 0 {
		return 0, false
	}
	return math.Abs(other.Start.Sub(s.Start).Dot(n.Normalize())), true
}

// Distance returns the minimum distance between two segments.
//
// The candidates are the four endpoint-to-segment distances, the four
// endpoint-to-endpoint distances and, when both closest-point parameters
// of the infinite lines fall inside [0, 1], the skew line distance.
func (s Segment) Distance(other Segment) float64 {
	candidates := [8]float64{
		other.DistanceToPoint(s.Start),
		other.DistanceToPoint(s.End),
		s.DistanceToPoint(other.Start),
		s.DistanceToPoint(other.End),
		s.Start.Distance(other.Start),
		s.Start.Distance(other.End),
		s.End.Distance(other.Start),
		s.End.Distance(other.End),
	}

	best := candidates[0]
	for _, d := range candidates[1:] {
		if d < best {
			best = d
		}
	}

	t, u := s.LineParameters(other)
	if t >= 0 && t <= 1 && u >= 0 && u <= 1 {
		if d, ok := s.LineDistance(other); ok && d >= 0 && d < best {
			best = d
		}
	}
	return best
}
