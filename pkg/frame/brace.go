package frame

import (
	"fmt"

	"github.com/philipparndt/studframe/pkg/geometry"
)

// synthesizeBraces adds braces across every resolved branch. An elbow
// brace is a single bridge; a three-piece brace adds an exterior lap on
// each branch member under the bridge ends.
func (s *Structure) synthesizeBraces() {
	for _, site := range s.branches {
		a, b := s.Members[site.joint.A], s.Members[site.joint.B]
		if s.options.ThreePieceBrace {
			s.bridgeBrace(site, a, b, "BRI")
			s.exteriorBrace(site.corner, site.dirA, a, fmt.Sprintf("%s-%s-BRE1", a.Name, b.Name))
			s.exteriorBrace(site.corner, site.dirB, b, fmt.Sprintf("%s-%s-BRE2", a.Name, b.Name))
			continue
		}
		s.bridgeBrace(site, a, b, "BR")
	}
}

// newBrace registers a synthesized member. Brace indexes continue after
// the input members.
func (s *Structure) newBrace(name string, axis geometry.Segment, normal geometry.Vector3) *Member {
	m := NewMember(len(s.Members)+len(s.Braces), name, axis)
	m.Normal = normal
	s.Braces = append(s.Braces, m)
	return m
}

// bridgeBrace spans the branch between the points BraceLength from the
// corner along each member. Its web faces the corner.
func (s *Structure) bridgeBrace(site branchSite, a, b *Member, suffix string) *Member {
	length := s.options.BraceLength
	pa := site.corner.Add(site.dirA.Mul(length))
	pb := site.corner.Add(site.dirB.Mul(length))

	axis := geometry.NewSegment(pa, pb)
	normal := site.planeNormal.Cross(axis.Direction()).Normalize()
	if normal.Dot(site.corner.Sub(pa)) < 0 {
		normal = normal.Neg()
	}

	brace := s.newBrace(fmt.Sprintf("%s-%s-%s", a.Name, b.Name, suffix), axis, normal)
	s.formBraceEnd(brace, AxisStart, a, site.dirA)
	s.formBraceEnd(brace, AxisEnd, b, site.dirB)
	return brace
}

// formBraceEnd runs the brace end into the open side of member like a T
// terminal and registers the matching dimple and notch on member.
func (s *Structure) formBraceEnd(brace *Member, end End, member *Member, along geometry.Vector3) {
	p := s.profile
	attach := brace.EndPoint(end)
	outward := brace.Outward(end)

	sin := outward.Cross(along).Length()
	if sin <= s.options.PlanarityTolerance {
		return
	}
	d := s.terminalOffset(true, sin)
	brace.MoveEnd(end, attach.Add(outward.Mul(d+p.EndOffset)))

	s.placeFromEnd(brace, OpEndTruss, end, 0)
	s.placeFromEnd(brace, OpLipCut, end, p.Clearance)
	s.placeFromEnd(brace, OpNotch, end, p.Clearance)
	s.placeFromEnd(brace, OpDimple, end, p.EndOffset)
	s.placeFromEnd(brace, OpSwage, end, p.Pitch)

	dimple := brace.PointAt(brace.LocationFromEnd(end, p.EndOffset))
	at := member.LocationOf(dimple)
	s.place(member, OpDimple, at)
	s.place(member, OpNotch, at)
}

// exteriorBrace laps a short piece back to back along member, centred
// BraceLength from the corner.
func (s *Structure) exteriorBrace(corner, dir geometry.Vector3, member *Member, name string) *Member {
	p := s.profile
	center := corner.Add(dir.Mul(s.options.BraceLength))
	half := s.options.ExteriorBraceLength / 2
	axis := geometry.NewSegment(center.Sub(dir.Mul(half)), center.Add(dir.Mul(half)))

	lap := s.newBrace(name, axis, member.Normal.Neg())
	length := lap.Length()
	s.place(lap, OpEndTruss, 0)
	s.place(lap, OpLipCut, p.Clearance)
	s.place(lap, OpSwage, p.Pitch)
	s.place(lap, OpDimple, half)
	s.place(lap, OpSwage, length-p.Pitch)
	s.place(lap, OpLipCut, length-p.Clearance)
	s.place(lap, OpEndTruss, length)

	at := member.LocationOf(center)
	s.place(member, OpDimple, at)
	s.place(member, OpNotch, at-half)
	s.place(member, OpNotch, at+half)
	return lap
}
