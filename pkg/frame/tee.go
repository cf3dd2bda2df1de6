package frame

import "go.uber.org/zap"

// teeRoles returns the member that ends at the joint and the one it ends on
func (s *Structure) teeRoles(j Joint) (terminal, cross *Member) {
	a, b := s.Members[j.A], s.Members[j.B]
	if s.endNear(a, b) {
		return a, b
	}
	return b, a
}

// terminalOffset is the distance past the cross axis at which a terminal
// member's dimple sits. Entering the open side of the cross member the
// dimple reaches in toward the web; entering against the web it stops short.
func (s *Structure) terminalOffset(openSide bool, sin float64) float64 {
	p := s.profile
	reach := p.StudHeight / 2
	if !openSide {
		reach = -reach
	}
	return (reach - p.DimpleStandoff) / sin
}

// resolveT forms the terminal end, dimples the cross member where the
// terminal's dimple lands and clears the cross member's flange for it.
func (s *Structure) resolveT(j Joint) {
	p := s.profile
	terminal, cross := s.teeRoles(j)

	xt := terminal.Axis.ClosestPointTo(cross.Axis)
	end := terminal.NearestEnd(xt)
	away := terminal.EndPoint(end.Opposite()).Sub(xt).Normalize()

	sin := away.Cross(cross.Direction()).Length()
	if sin <= s.options.PlanarityTolerance {
		s.logger.Warn("t members are parallel", zap.String("terminal", terminal.Name), zap.String("cross", cross.Name))
		return
	}

	openSide := cross.Normal.Dot(away) < 0
	d := s.terminalOffset(openSide, sin)

	terminal.MoveEnd(end, xt.Sub(away.Mul(d+p.EndOffset)))
	s.placeFromEnd(terminal, OpEndTruss, end, 0)
	s.placeFromEnd(terminal, OpDimple, end, p.EndOffset)
	s.placeFromEnd(terminal, OpSwage, end, p.Pitch)

	dimple := terminal.PointAt(terminal.LocationFromEnd(end, p.EndOffset))
	center := cross.LocationOf(dimple)
	s.place(cross, OpDimple, center)

	clearance := OpNotch
	if openSide {
		clearance = OpLipCut
	}
	half := p.StudHeight/(2*sin) + p.Clearance
	s.placeRow(cross, clearance, center-half, center+half)
}
