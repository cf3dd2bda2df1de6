package frame

import (
	"sort"

	"github.com/philipparndt/studframe/pkg/geometry"
	"go.uber.org/zap"
)

// walkFrame is one level of the depth-first orientation walk
type walkFrame struct {
	node       int
	order      []int // neighbours sorted by joint type
	next       int
	discovered bool
}

// propagate seeds every connected subgraph and walks it, assigning one
// web normal per member and recording one joint per graph edge.
func (s *Structure) propagate() {
	for _, seed := range s.graph.StartingNodes() {
		s.seed(seed)
		s.walk(seed)
	}
}

// seed orients the representative of a subgraph from the plane it spans
// with its first neighbour.
func (s *Structure) seed(index int) {
	m := s.Members[index]
	dir := m.Direction()

	var planeNormal geometry.Vector3
	if neighbors := s.graph.Neighbors(index); len(neighbors) > 0 {
		planeNormal = dir.Cross(s.Members[neighbors[0]].Direction())
	}
	if planeNormal.Length() <= s.options.PlanarityTolerance {
		planeNormal = dir.Perpendicular()
	} else {
		planeNormal = planeNormal.Normalize()
	}

	first := dir.Cross(planeNormal).Normalize()
	if s.options.FirstFaceToFace {
		first = planeNormal
	}
	m.Normal = s.chooseNormal(m.Name, []geometry.Vector3{first, first.Neg()})
	s.logger.Debug("seeded subgraph", zap.String("member", m.Name))
}

// walk is an explicit-stack depth-first traversal from seed. It matches
// the recursive order: a node's joints are discovered on entry, and the
// node being left is marked visited just before descending.
func (s *Structure) walk(seed int) {
	stack := []*walkFrame{{node: seed}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if !top.discovered {
			top.order = s.discoverJoints(top.node)
			top.discovered = true
		}

		descended := false
		for top.next < len(top.order) {
			neighbor := top.order[top.next]
			top.next++
			if s.graph.Visited(neighbor) {
				continue
			}

			s.assignNormal(neighbor)
			s.graph.MarkVisited(top.node)
			stack = append(stack, &walkFrame{node: neighbor})
			descended = true
			break
		}

		if !descended {
			stack = stack[:len(stack)-1]
		}
	}
}

// discoverJoints classifies every edge of current, records new joints in
// ascending type order and returns the neighbours in that order.
func (s *Structure) discoverJoints(current int) []int {
	type candidate struct {
		neighbor int
		kind     JointType
	}

	neighbors := s.graph.Neighbors(current)
	candidates := make([]candidate, 0, len(neighbors))
	for _, n := range neighbors {
		candidates = append(candidates, candidate{neighbor: n, kind: s.ConnectionType(current, n)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].kind < candidates[j].kind
	})

	order := make([]int, 0, len(candidates))
	m := s.Members[current]
	for _, c := range candidates {
		order = append(order, c.neighbor)

		j := NewJoint(current, c.neighbor, c.kind)
		other := s.Members[c.neighbor]
		if m.HasJoint(j) || len(other.Joints) >= s.graph.Degree(c.neighbor) {
			continue
		}
		s.Joints = append(s.Joints, j)
		m.addJoint(j)
		other.addJoint(j)
	}
	return order
}

// assignNormal gives member index the feasible normal closest to its
// preference. When the joints disagree it falls back to the first joint
// that offers any candidate.
func (s *Structure) assignNormal(index int) {
	m := s.Members[index]
	feasible := s.FeasibleNormals(index)

	if len(feasible) == 0 {
		s.logger.Warn("no feasible web normal", zap.String("member", m.Name))
		for _, j := range m.Joints {
			if normals, _ := s.ValidNormals(j, index); len(normals) > 0 {
				feasible = normals
				break
			}
		}
	}
	if len(feasible) == 0 {
		feasible = []geometry.Vector3{m.Direction().Perpendicular()}
	}
	m.Normal = s.chooseNormal(m.Name, feasible)
}
