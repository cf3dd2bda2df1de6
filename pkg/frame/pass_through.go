package frame

import (
	"math"

	"github.com/philipparndt/studframe/pkg/geometry"
	"go.uber.org/zap"
)

// passThroughRoles returns the member that stays whole and the one cut
// open for it. The higher priority stays inside; ties keep the lower index.
func (s *Structure) passThroughRoles(j Joint) (inside, outside *Member) {
	a, b := s.Members[j.A], s.Members[j.B]
	pa, pb := s.overrides.Priority(a.Name), s.overrides.Priority(b.Name)
	switch {
	case pa > pb:
		return a, b
	case pb > pa:
		return b, a
	case a.Index <= b.Index:
		return a, b
	default:
		return b, a
	}
}

// resolvePassThrough dimples and swages the inside member either side of
// the crossing and cuts entry and exit openings into the outside member.
func (s *Structure) resolvePassThrough(j Joint) {
	p := s.profile
	inside, outside := s.passThroughRoles(j)

	sin := crossingSin(inside, outside)
	if sin <= s.options.PlanarityTolerance {
		s.logger.Warn("pass-through members are parallel", zap.String("inside", inside.Name), zap.String("outside", outside.Name))
		return
	}

	xi := inside.Axis.ClosestPointTo(outside.Axis)
	xo := outside.Axis.ClosestPointTo(inside.Axis)

	half := (p.StudHeight / 2) / sin
	center := inside.LocationOf(xi)
	s.place(inside, OpDimple, center-half)
	s.place(inside, OpDimple, center+half)
	s.place(inside, OpSwage, center-half-p.EndOffset)
	s.place(inside, OpSwage, center+half+p.EndOffset)

	span := half + p.Clearance
	entry := s.flangeCrossing(inside, outside, xi, xo, 1)
	exit := s.flangeCrossing(inside, outside, xi, xo, -1)
	s.placeRow(outside, OpLipCut, entry-span, entry+span)
	s.placeRow(outside, OpNotch, exit-span, exit+span)
}

// crossingSin returns |sin| of the angle between two member axes
func crossingSin(a, b *Member) float64 {
	return a.Direction().Cross(b.Direction()).Length()
}

// flangeCrossing returns the location on outside where the inside axis
// passes the outside member's flange plane on the given side (+1 or -1).
func (s *Structure) flangeCrossing(inside, outside *Member, xi, xo geometry.Vector3, side float64) float64 {
	nd := outside.Normal.Dot(inside.Direction())
	if math.Abs(nd) <= s.options.PlanarityTolerance {
		return outside.LocationOf(xo)
	}
	t := side * (s.profile.StudHeight / 2) / nd
	return outside.LocationOf(xi.Add(inside.Direction().Mul(t)))
}
