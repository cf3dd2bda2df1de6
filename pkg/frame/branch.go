package frame

import (
	"math"

	"github.com/philipparndt/studframe/pkg/geometry"
	"go.uber.org/zap"
)

// branchSite records a resolved branch for brace synthesis
type branchSite struct {
	joint       Joint
	corner      geometry.Vector3
	dirA, dirB  geometry.Vector3 // from the corner toward each far end
	planeNormal geometry.Vector3
}

// resolveBranch forms the meeting ends of two members that terminate into
// each other.
func (s *Structure) resolveBranch(j Joint) {
	a, b := s.Members[j.A], s.Members[j.B]
	corner := a.Axis.ClosestPointTo(b.Axis)

	endA, endB := a.NearestEnd(corner), b.NearestEnd(corner)
	dirA := a.EndPoint(endA.Opposite()).Sub(corner).Normalize()
	dirB := b.EndPoint(endB.Opposite()).Sub(corner).Normalize()

	theta := dirA.Angle(dirB)
	if math.Sin(theta) <= s.options.PlanarityTolerance {
		s.logger.Warn("branch members are parallel", zap.String("a", a.Name), zap.String("b", b.Name))
		return
	}
	planeNormal := dirA.Cross(dirB).Normalize()

	s.formBranchEnd(a, endA, dirA, planeNormal, theta)
	s.formBranchEnd(b, endB, dirB, planeNormal.Neg(), theta)

	s.branches = append(s.branches, branchSite{
		joint:       j,
		corner:      corner,
		dirA:        dirA,
		dirB:        dirB,
		planeNormal: planeNormal,
	})
}

// branchOffset is the signed distance from the corner to the dimple of a
// member meeting another at angle theta. It is positive when the web faces
// the other member.
func (s *Structure) branchOffset(webFacesOther bool, theta float64) float64 {
	d := (s.profile.StudHeight / 2) / math.Tan(theta/2)
	if !webFacesOther {
		return -d
	}
	return d
}

// formBranchEnd extends m at end by the branch offset and lays out the
// end truss, dimple and flange cuts from the new end inward. dir points
// from the corner along m, planeNormal × dir points at the other member.
func (s *Structure) formBranchEnd(m *Member, end End, dir, planeNormal geometry.Vector3, theta float64) {
	p := s.profile
	toward := planeNormal.Cross(dir)
	facing := m.Normal.Dot(toward) >= 0
	d := s.branchOffset(facing, theta)

	m.Extend(end, d+p.EndOffset)

	exterior, interior := OpLipCut, OpNotch
	if facing {
		exterior, interior = OpNotch, OpLipCut
	}

	s.placeFromEnd(m, OpEndTruss, end, 0)
	s.placeFromEnd(m, OpDimple, end, p.EndOffset)
	s.placeFromEnd(m, exterior, end, p.EndOffset)

	kinds := [2]OperationType{interior, exterior}
	k := 0
	reach := math.Abs(d)
	for loc := p.EndOffset; loc < reach; loc += p.Pitch {
		s.placeFromEnd(m, kinds[k%2], end, loc)
		k++
	}
	s.placeFromEnd(m, kinds[k%2], end, p.FinalPad+reach)
}
