package graph

import (
	"fmt"
	"math"
	"strconv"

	"github.com/katalvlaran/lvlath/graph/algorithms"
	"github.com/katalvlaran/lvlath/graph/core"
)

// Johnson answers shortest-path queries over a graph that may contain zero or
// negative edge weights, but no negative cycle. Construction runs Bellman-Ford
// once; every query then runs Dijkstra on the reweighted graph.
//
// A Johnson is immutable after NewJohnson returns and safe for concurrent use.
type Johnson[N comparable] struct {
	g          *Graph[N]
	potential  []int
	weights    []int            // Reweighted, indexed like g.edges
	between    map[[2]int][]int // Edge indices per (from, to), in declaration order
	reweighted *core.Graph
}

// NewJohnson prepares g for shortest-path queries.
// It panics with an error wrapping ErrNegativeCycle if g has a negative cycle:
// graphs fed to it are built from validated data, so that is a data bug.
func NewJohnson[N comparable](g *Graph[N]) *Johnson[N] {
	potential, err := BellmanFord(g)
	if err != nil {
		panic(err)
	}

	j := &Johnson[N]{
		g:          g,
		potential:  potential,
		weights:    make([]int, len(g.arcs)),
		between:    make(map[[2]int][]int),
		reweighted: g.topology.CloneEmpty(),
	}
	for i, a := range g.arcs {
		w := a.weight + potential[a.from] - potential[a.to] // Non-negative by the triangle inequality
		j.weights[i] = w
		key := [2]int{a.from, a.to}
		j.between[key] = append(j.between[key], i)
		j.reweighted.AddEdge(vertexID(a.from), vertexID(a.to), int64(w))
	}
	return j
}

// Potential returns the Bellman-Ford potential of n. The bool is false when n
// is not a node of the graph.
func (j *Johnson[N]) Potential(n N) (int, bool) {
	i, ok := j.g.index[n]
	if !ok {
		return 0, false
	}
	return j.potential[i], true
}

// ShortestPath returns the edges of a shortest path and its total weight in the
// original graph. The bool is false when to is unreachable, when either node is
// unknown, or when from == to (there is no path of at least one edge to report).
func (j *Johnson[N]) ShortestPath(from, to N) ([]Edge[N], int, bool) {
	src, ok := j.g.index[from]
	if !ok {
		return nil, 0, false
	}
	dst, ok := j.g.index[to]
	if !ok || src == dst {
		return nil, 0, false
	}

	dist, parent := j.dijkstra(src)
	if dist[vertexID(dst)] == math.MaxInt64 {
		return nil, 0, false
	}

	var reversed []Edge[N]
	for v := dst; v != src; {
		u := j.node(parent[vertexID(v)])
		e := j.edge(u, v, int(dist[vertexID(v)]-dist[vertexID(u)]))
		reversed = append(reversed, j.g.edges[e])
		v = u
	}
	path := make([]Edge[N], len(reversed))
	for i, e := range reversed {
		path[len(reversed)-1-i] = e
	}

	return path, j.original(src, dst, int(dist[vertexID(dst)])), true
}

// Distances returns the shortest distance from "from" to every reachable node,
// including from itself at 0.
func (j *Johnson[N]) Distances(from N) map[N]int {
	src, ok := j.g.index[from]
	if !ok {
		return nil
	}

	dist, _ := j.dijkstra(src)
	out := make(map[N]int, len(dist))
	for id, d := range dist {
		if d != math.MaxInt64 {
			v := j.node(id)
			out[j.g.nodes[v]] = j.original(src, v, int(d))
		}
	}
	return out
}

// original converts a reweighted distance back to the original weights.
func (j *Johnson[N]) original(u, v, reweighted int) int {
	return reweighted + j.potential[v] - j.potential[u]
}

// dijkstra returns reweighted distances and parents from src, keyed by vertex ID.
func (j *Johnson[N]) dijkstra(src int) (map[string]int64, map[string]string) {
	dist, parent, err := algorithms.Dijkstra(j.reweighted, vertexID(src))
	if err != nil {
		// The reweighted graph is weighted and holds every node.
		panic(fmt.Errorf("graph: dijkstra from %v: %w", j.g.nodes[src], err))
	}
	return dist, parent
}

// edge picks the first declared edge from u to v of the given reweighted
// weight. Parallel edges share a parent link, so the weight tells them apart.
func (j *Johnson[N]) edge(u, v, weight int) int {
	candidates := j.between[[2]int{u, v}]
	for _, e := range candidates {
		if j.weights[e] == weight {
			return e
		}
	}
	panic(fmt.Sprintf("graph: no edge %v -> %v of weight %d", j.g.nodes[u], j.g.nodes[v], weight))
}

func (j *Johnson[N]) node(id string) int {
	i, err := strconv.Atoi(id)
	if err != nil {
		panic(fmt.Errorf("graph: vertex %q: %w", id, err))
	}
	return i
}
