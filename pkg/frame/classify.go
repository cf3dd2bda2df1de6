package frame

import (
	"math"

	"github.com/philipparndt/studframe/pkg/geometry"
)

// parallel reports whether two members run in the same or opposite
// direction within the planarity tolerance. Such pairs have no joint plane.
func (s *Structure) parallel(a, b *Member) bool {
	return a.Direction().Cross(b.Direction()).Length() <= s.options.PlanarityTolerance
}

// endNear reports whether either end of a lies within the intersection
// tolerance of segment b.
func (s *Structure) endNear(a, b *Member) bool {
	tol := s.options.IntersectionTolerance
	return b.Axis.DistanceToPoint(a.Axis.Start) <= tol || b.Axis.DistanceToPoint(a.Axis.End) <= tol
}

// ConnectionType classifies the joint between members i and j using the
// web normal of i.
//
// Parallel members can only lap web to web and are FaceToFace. Otherwise
// the joint plane normal is compared with i's web normal: parallel means
// FaceToFace, perpendicular means Branch, T or PassThrough depending on
// which members end at the other, anything else is Invalid.
func (s *Structure) ConnectionType(i, j int) JointType {
	a, b := s.Members[i], s.Members[j]
	if s.parallel(a, b) {
		return FaceToFace
	}

	tol := s.options.PlanarityTolerance
	planeNormal := a.Direction().Cross(b.Direction()).Normalize()
	dot := math.Abs(planeNormal.Dot(a.Normal))

	switch {
	case dot > 1-tol:
		return FaceToFace
	case dot < tol:
		aEnds, bEnds := s.endNear(a, b), s.endNear(b, a)
		switch {
		case aEnds && bEnds:
			return Branch
		case aEnds || bEnds:
			return T
		default:
			return PassThrough
		}
	default:
		return Invalid
	}
}

// ValidNormals returns the web normals member index may take so that joint
// j keeps its type, given the normal already assigned to the other member.
// ok is false when the joint places no constraint yet because the other
// member has no normal.
func (s *Structure) ValidNormals(j Joint, index int) (normals []geometry.Vector3, ok bool) {
	m := s.Members[index]
	other := s.Members[j.Other(index)]

	switch j.Type {
	case FaceToFace:
		if !other.HasNormal() {
			return nil, false
		}
		return []geometry.Vector3{other.Normal.Neg()}, true
	case Branch, T, PassThrough:
		planeNormal := m.Direction().Cross(other.Direction()).Normalize()
		n := planeNormal.Cross(m.Direction()).Normalize()
		if n.IsZero() {
			return nil, true
		}
		return []geometry.Vector3{n, n.Neg()}, true
	default:
		return nil, true
	}
}

// FeasibleNormals intersects the valid normal sets of every constraining
// joint on member index, seeded with the first constraining joint.
func (s *Structure) FeasibleNormals(index int) []geometry.Vector3 {
	var feasible []geometry.Vector3
	seeded := false

	for _, j := range s.Members[index].Joints {
		normals, ok := s.ValidNormals(j, index)
		if !ok {
			continue
		}
		if !seeded {
			feasible = normals
			seeded = true
			continue
		}
		feasible = s.intersectNormals(feasible, normals)
	}
	return feasible
}

// intersectNormals keeps the vectors of a that match some vector of b
func (s *Structure) intersectNormals(a, b []geometry.Vector3) []geometry.Vector3 {
	var kept []geometry.Vector3
	for _, n := range a {
		for _, m := range b {
			if n.Dot(m) > 1-s.options.PlanarityTolerance {
				kept = append(kept, n)
				break
			}
		}
	}
	return kept
}

// chooseNormal picks the candidate closest to the member's preferred
// normal, or the first candidate when there is no preference.
func (s *Structure) chooseNormal(name string, candidates []geometry.Vector3) geometry.Vector3 {
	if len(candidates) == 0 {
		return geometry.Vector3{}
	}
	preferred, ok := s.overrides.PreferredNormal(name)
	if !ok {
		return candidates[0]
	}
	best := candidates[0]
	bestDot := best.Dot(preferred)
	for _, c := range candidates[1:] {
		if d := c.Dot(preferred); d > bestDot {
			best, bestDot = c, d
		}
	}
	return best
}
