// Package graph computes shortest paths over weighted directed graphs with
// Johnson's algorithm: one Bellman-Ford pass computes vertex potentials, edges
// are reweighted to be non-negative, and Dijkstra answers each query.
package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/katalvlaran/lvlath/graph/core"
)

// ErrNegativeCycle is returned (or panicked with) when the graph contains a
// cycle of negative total weight, which leaves shortest paths undefined.
var ErrNegativeCycle = errors.New("graph: negative-weight cycle")

// Edge is a directed, weighted edge. ID is opaque to the algorithms and lets
// callers map resolved edges back to their own records.
type Edge[N comparable] struct {
	From   N
	To     N
	Weight int
	ID     int
}

type arc struct {
	from, to int
	weight   int
}

// Graph is an immutable directed graph over nodes of type N. Nodes are stored
// in an lvlath graph under their insertion index.
type Graph[N comparable] struct {
	nodes    []N
	index    map[N]int
	edges    []Edge[N]
	arcs     []arc // Indexed like edges
	topology *core.Graph
}

// New builds a graph. Edges referencing nodes that were not listed are added
// as nodes, after the listed ones.
func New[N comparable](nodes []N, edges []Edge[N]) *Graph[N] {
	g := &Graph[N]{
		index:    make(map[N]int, len(nodes)),
		edges:    make([]Edge[N], len(edges)),
		arcs:     make([]arc, len(edges)),
		topology: core.NewGraph(true, true),
	}
	copy(g.edges, edges)
	for _, n := range nodes {
		g.addNode(n)
	}
	for i, e := range g.edges {
		from, to := g.addNode(e.From), g.addNode(e.To)
		g.arcs[i] = arc{from: from, to: to, weight: e.Weight}
		g.topology.AddEdge(vertexID(from), vertexID(to), int64(e.Weight))
	}
	return g
}

func (g *Graph[N]) addNode(n N) int {
	if i, ok := g.index[n]; ok {
		return i
	}
	i := len(g.nodes)
	g.index[n] = i
	g.nodes = append(g.nodes, n)
	g.topology.AddVertex(&core.Vertex{ID: vertexID(i)})
	return i
}

// vertexID names node i in lvlath graphs.
func vertexID(i int) string {
	return strconv.Itoa(i)
}

// Len returns the number of nodes.
func (g *Graph[N]) Len() int {
	return len(g.topology.Vertices())
}

// Has reports whether n is a node of the graph.
func (g *Graph[N]) Has(n N) bool {
	i, ok := g.index[n]
	return ok && g.topology.HasVertex(vertexID(i))
}

// BellmanFord computes a potential for every node: its minimum distance from a
// virtual source joined to every node by a zero-weight edge. Potentials are
// indexed like the nodes passed to New.
func BellmanFord[N comparable](g *Graph[N]) ([]int, error) {
	// Every node starts at 0 through its zero-weight edge from the virtual source.
	potential := make([]int, len(g.nodes))

	for round := 0; round < len(g.nodes); round++ {
		relaxed := false
		for _, a := range g.arcs {
			if d := potential[a.from] + a.weight; d < potential[a.to] {
				potential[a.to] = d
				relaxed = true
			}
		}
		if !relaxed {
			return potential, nil
		}
	}

	// Still relaxing after |V| rounds (|V|+1 vertices with the virtual source).
	for _, a := range g.arcs {
		if potential[a.from]+a.weight < potential[a.to] {
			return nil, fmt.Errorf("%w through %v -> %v", ErrNegativeCycle, g.nodes[a.from], g.nodes[a.to])
		}
	}
	return potential, nil
}
