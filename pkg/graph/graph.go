// Package graph provides the undirected adjacency used to resolve a line
// network: one vertex per input segment, an edge wherever two segments
// come within tolerance of each other.
package graph

import (
	"github.com/philipparndt/studframe/pkg/geometry"
)

// vertex holds the neighbour ids of one node and its traversal flag
type vertex struct {
	neighbors []int
	visited   bool
}

// Graph is an undirected graph over the integer ids 0..n-1.
// The vertex count is fixed at construction.
type Graph struct {
	vertices []vertex
}

// New creates a graph with n isolated vertices
func New(n int) *Graph {
	return &Graph{vertices: make([]vertex, n)}
}

// FromSegments builds the adjacency of a segment set: i and j are
// neighbours when their minimum distance is at most tolerance.
func FromSegments(segments []geometry.Segment, tolerance float64) *Graph {
	g := New(len(segments))
	for i := 0; i < len(segments); i++ {
		for j := i + 1; j < len(segments); j++ {
			if segments[i].Distance(segments[j]) <= tolerance {
				g.AddEdge(i, j)
			}
		}
	}
	return g
}

// Len returns the number of vertices
func (g *Graph) Len() int {
	return len(g.vertices)
}

// AddEdge connects i and j in both directions. Self loops and repeated
// edges are ignored. It panics if either id is out of range.
func (g *Graph) AddEdge(i, j int) {
	if i == j || g.HasEdge(i, j) {
		return
	}
	g.vertices[i].neighbors = append(g.vertices[i].neighbors, j)
	g.vertices[j].neighbors = append(g.vertices[j].neighbors, i)
}

// HasEdge reports whether j is a neighbour of i
func (g *Graph) HasEdge(i, j int) bool {
	for _, n := range g.vertices[i].neighbors {
		if n == j {
			return true
		}
	}
	return false
}

// Neighbors returns the neighbour ids of i in insertion order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []int {
	return g.vertices[i].neighbors
}

// Degree returns the number of neighbours of i
func (g *Graph) Degree(i int) int {
	return len(g.vertices[i].neighbors)
}

// EdgeCount returns the number of undirected edges
func (g *Graph) EdgeCount() int {
	total := 0
	for _, v := range g.vertices {
		total += len(v.neighbors)
	}
	return total / 2
}

// Visited reports the traversal flag of i
func (g *Graph) Visited(i int) bool {
	return g.vertices[i].visited
}

// MarkVisited sets the traversal flag of i
func (g *Graph) MarkVisited(i int) {
	g.vertices[i].visited = true
}

// Reset clears every traversal flag
func (g *Graph) Reset() {
	for i := range g.vertices {
		g.vertices[i].visited = false
	}
}

// Component returns the ids reachable from start in breadth-first order.
// It does not touch the traversal flags.
func (g *Graph) Component(start int) []int {
	seen := make([]bool, len(g.vertices))
	seen[start] = true
	queue := []int{start}
	order := make([]int, 0, len(g.vertices))

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		order = append(order, current)

		for _, n := range g.vertices[current].neighbors {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return order
}

// StartingNodes returns one representative per connected component, in
// discovery order. Each representative is the lowest unvisited id when its
// component is found. Traversal flags are cleared on entry and on return.
func (g *Graph) StartingNodes() []int {
	g.Reset()
	var starts []int
	visitedCount := 0

	for visitedCount < len(g.vertices) {
		start := -1
		for i := range g.vertices {
			if !g.vertices[i].visited {
				start = i
				break
			}
		}
		if start < 0 {
			break
		}

		starts = append(starts, start)
		visitedCount += g.markComponent(start)
	}

	g.Reset()
	return starts
}

// markComponent flags every vertex reachable from start and returns how
// many were newly flagged.
func (g *Graph) markComponent(start int) int {
	queued := make(map[int]bool)
	queued[start] = true
	queue := []int{start}
	count := 0

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if !g.vertices[current].visited {
			g.vertices[current].visited = true
			count++
		}

		for _, n := range g.vertices[current].neighbors {
			if !g.vertices[n].visited && !queued[n] {
				queued[n] = true
				queue = append(queue, n)
			}
		}
	}
	return count
}
