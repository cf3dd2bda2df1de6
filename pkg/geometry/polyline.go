package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewPoints is returned when a polyline cannot form the requested shape.
	ErrTooFewPoints = errors.New("geometry: too few points")
	// ErrNotCoplanar is returned when the points of a curved member do not share a plane.
	ErrNotCoplanar = errors.New("geometry: points are not coplanar")
	// ErrCollinear is returned when no plane or circle can be fitted through the points.
	ErrCollinear = errors.New("geometry: points are collinear")
)

// Polyline is an ordered list of points describing a curved member
// approximated by straight segments.
type Polyline []Vector3

// Segments returns the consecutive segments of the polyline
func (p Polyline) Segments() []Segment {
	if len(p) < 2 {
		return nil
	}
	segments := make([]Segment, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		segments = append(segments, NewSegment(p[i-1], p[i]))
	}
	return segments
}

// Normal returns the unit normal of the plane through the first point and
// the two points that span the largest cross product with it.
func (p Polyline) Normal() (Vector3, error) {
	if len(p) < 3 {
		return Vector3{}, ErrTooFewPoints
	}

	var best Vector3
	for i := 1; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			n := p[i].Sub(p[0]).Cross(p[j].Sub(p[0]))
			if n.Length() > best.Length() {
				best = n
			}
		}
	}
	if best.Length() < 1e-12 {
		return Vector3{}, ErrCollinear
	}
	return best.Normalize(), nil
}

// Coplanar checks that every point lies within tol of the polyline's plane.
// Two-point polylines and collinear point sets are trivially coplanar.
func (p Polyline) Coplanar(tol float64) error {
	if len(p) < 3 {
		return nil
	}
	normal, err := p.Normal()
	if errors.Is(err, ErrCollinear) {
		return nil
	}
	if err != nil {
		return err
	}
	for i, point := range p {
		d := math.Abs(point.Sub(p[0]).Dot(normal))
		if d > tol {
			return fmt.Errorf("%w: point %d is %.6f off the plane", ErrNotCoplanar, i, d)
		}
	}
	return nil
}

// ArcFit represents the result of fitting a circle to a polyline
type ArcFit struct {
	Center Vector3 // Circle center in 3D
	Radius float64 // Circle radius
	Normal Vector3 // Normal vector of the plane containing the circle
	StdDev float64 // Standard deviation of fit (quality measure)
}

// FitArc fits a circle to the polyline within its own plane.
//
// The first, middle and last points define the circle using the
// 3-point determinant formula in a 2D basis of the plane:
//
//	D  = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
func (p Polyline) FitArc() (*ArcFit, error) {
	if len(p) < 3 {
		return nil, fmt.Errorf("need at least 3 points to fit an arc: %w", ErrTooFewPoints)
	}

	normal, err := p.Normal()
	if err != nil {
		return nil, err
	}

	// In-plane basis anchored at the first point
	origin := p[0]
	axisU := normal.Perpendicular()
	axisV := normal.Cross(axisU)

	points2D := make([][2]float64, len(p))
	for i, point := range p {
		rel := point.Sub(origin)
		points2D[i] = [2]float64{rel.Dot(axisU), rel.Dot(axisV)}
	}

	p1 := points2D[0]
	p2 := points2D[len(points2D)/2]
	p3 := points2D[len(points2D)-1]

	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	x3, y3 := p3[0], p3[1]

	D := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(D) < 1e-10 {
		return nil, ErrCollinear
	}

	x1sq := x1*x1 + y1*y1
	x2sq := x2*x2 + y2*y2
	x3sq := x3*x3 + y3*y3

	cx := (x1sq*(y2-y3) + x2sq*(y3-y1) + x3sq*(y1-y2)) / D
	cy := (x1sq*(x3-x2) + x2sq*(x1-x3) + x3sq*(x2-x1)) / D

	radius := math.Hypot(x1-cx, y1-cy)

	var sumError float64
	for _, q := range points2D {
		dist := math.Hypot(q[0]-cx, q[1]-cy)
		sumError += (dist - radius) * (dist - radius)
	}

	return &ArcFit{
		Center: origin.Add(axisU.Mul(cx)).Add(axisV.Mul(cy)),
		Radius: radius,
		Normal: normal,
		StdDev: math.Sqrt(sumError / float64(len(points2D))),
	}, nil
}
