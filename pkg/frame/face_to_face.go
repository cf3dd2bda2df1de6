package frame

import (
	"math"

	"github.com/philipparndt/studframe/pkg/geometry"
)

// resolveFaceToFace extends both members past their crossing point where
// needed and fastens the lap with web holes around it and a bolt on it.
// Both crossing points are taken before either member changes.
func (s *Structure) resolveFaceToFace(j Joint) {
	a, b := s.Members[j.A], s.Members[j.B]
	lap := s.parallel(a, b)
	theta := a.Direction().Angle(b.Direction())

	xa := s.facePoint(a, b, lap)
	xb := s.facePoint(b, a, lap)

	for _, side := range []struct {
		m *Member
		x geometry.Vector3
	}{{a, xa}, {b, xb}} {
		minimum := s.minimumExtension(theta, lap, s.overrides.Extension(side.m.Name))
		s.extendPastFace(side.m, side.x, minimum)
		s.placeFaceHoles(side.m, side.x, theta, lap)
	}
}

// facePoint returns where other crosses m, on m's axis. Lapping parallel
// members meet at the midpoint of their closest endpoints.
func (s *Structure) facePoint(m, other *Member, lap bool) geometry.Vector3 {
	if !lap {
		return m.Axis.ClosestPointTo(other.Axis)
	}

	ends := [2]geometry.Vector3{m.Axis.Start, m.Axis.End}
	otherEnds := [2]geometry.Vector3{other.Axis.Start, other.Axis.End}
	best := math.MaxFloat64
	var mid geometry.Vector3
	for _, p := range ends {
		for _, q := range otherEnds {
			if d := p.Distance(q); d < best {
				best = d
				mid = p.Add(q).Mul(0.5)
			}
		}
	}
	return m.PointAt(m.LocationOf(mid))
}

// minimumExtension is how far a member must reach past the crossing point
// so the other stud is fully backed.
func (s *Structure) minimumExtension(theta float64, lap bool, ext ExtensionType) float64 {
	p := s.profile
	if ext == ExtendNone {
		return 0
	}
	if lap {
		if ext == ExtendFlush {
			return p.WebHoleSpacing + p.EndOffset
		}
		return 2*p.WebHoleSpacing + p.EndOffset
	}

	half := p.StudWidth / 2
	sin := math.Abs(math.Sin(theta))
	if ext == ExtendFlush {
		return half / sin
	}
	return half/sin + half*math.Abs(math.Cos(theta))/sin
}

// extendPastFace moves the end nearest x out to exactly minimum past x
// when it currently stops at or short of that distance.
func (s *Structure) extendPastFace(m *Member, x geometry.Vector3, minimum float64) {
	end := m.NearestEnd(x)
	if m.EndPoint(end).Distance(x) > minimum {
		return
	}
	m.MoveEnd(end, x.Add(m.Outward(end).Mul(minimum)))
}

// placeFaceHoles puts up to four web holes symmetrically about x and one
// bolt hole on it. Hole offsets spread as 1/sin of the crossing angle.
func (s *Structure) placeFaceHoles(m *Member, x geometry.Vector3, theta float64, lap bool) {
	step := s.profile.WebHoleSpacing
	if !lap {
		step /= math.Abs(math.Sin(theta))
	}

	center := m.LocationOf(x)
	for k := 1; k <= 2; k++ {
		offset := float64(k) * step
		s.place(m, OpWeb, center-offset)
		s.place(m, OpWeb, center+offset)
	}
	m.AddOperation(OpBolt, center)
}
