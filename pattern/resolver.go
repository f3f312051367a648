package pattern

import (
	"fmt"

	"boardcore/board"
	"boardcore/graph"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Option func(r *Resolver)

// WithLogger replaces the global zerolog logger used by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// Resolver turns patterns into tile paths on one board.
// It is immutable after NewResolver returns and safe for concurrent use.
type Resolver struct {
	board     *board.Board
	relations []board.Relation // Indexed by graph edge ID
	paths     *graph.Johnson[board.Tile]
	logger    zerolog.Logger
}

// NewResolver prepares shortest-path queries for the whole board up front, so
// a single Bellman-Ford pass serves every Any pattern resolved afterwards.
func NewResolver(b *board.Board, options ...Option) *Resolver {
	r := &Resolver{
		board:     b,
		relations: b.Relations(),
		logger:    log.Logger,
	}
	for _, option := range options {
		option(r)
	}

	edges := make([]graph.Edge[board.Tile], len(r.relations))
	for i, rel := range r.relations {
		edges[i] = graph.Edge[board.Tile]{From: rel.From, To: rel.To, Weight: rel.Distance, ID: i}
	}
	r.paths = graph.NewJohnson(graph.New(b.Tiles(), edges))

	r.logger.Debug().
		Int("tiles", len(b.Tiles())).
		Int("relations", len(r.relations)).
		Msg("shortest-path table ready")
	return r
}

// Board returns the board the resolver walks.
func (r *Resolver) Board() *board.Board {
	return r.board
}

// goal is the stopping condition of a resolution: the destination tile and,
// for distance-gated moves, the distance the move has to cover.
type goal struct {
	to        board.Tile
	distance  int // 0 disables the distance gate
	overshoot bool
}

// accepts reports whether a path of the given distance ending on the
// destination satisfies the goal.
func (g goal) accepts(distance int) bool {
	switch {
	case g.distance == 0:
		return true
	case g.overshoot:
		return distance <= g.distance
	default:
		return distance == g.distance
	}
}

// exhausted reports whether walking further can no longer satisfy the goal.
func (g goal) exhausted(distance int) bool {
	return g.distance > 0 && distance >= g.distance
}

// Resolve returns the path realizing p from one tile to another, if any.
func (r *Resolver) Resolve(p Pattern, from, to board.Tile) (board.TilePath, bool) {
	return r.resolve(p, from, goal{to: to})
}

// ResolveDistance is Resolve for distance-gated moves such as dice rolls: the
// path has to cover exactly distance, or, with overshoot, at most distance
// (the roll is allowed to exceed what is needed to land on to).
//
// Any patterns are answered from the shortest path only: a longer route of
// exactly distance is not searched for.
func (r *Resolver) ResolveDistance(p Pattern, from, to board.Tile, distance int, overshoot bool) (board.TilePath, bool) {
	if distance <= 0 {
		return board.TilePath{}, false
	}
	return r.resolve(p, from, goal{to: to, distance: distance, overshoot: overshoot})
}

// ResolveFirst resolves a piece's ordered patterns and returns the path of
// the first one that succeeds, along with that pattern.
func (r *Resolver) ResolveFirst(patterns []Pattern, from, to board.Tile) (board.TilePath, Pattern, bool) {
	for _, p := range patterns {
		if path, ok := r.Resolve(p, from, to); ok {
			return path, p, true
		}
	}
	return board.TilePath{}, nil, false
}

func (r *Resolver) resolve(p Pattern, from board.Tile, g goal) (board.TilePath, bool) {
	if !r.board.Has(from) || !r.board.Has(g.to) {
		return board.TilePath{}, false
	}

	var (
		path board.TilePath
		ok   bool
	)
	switch p := p.(type) {
	case Null:
		// Never moves
	case Fixed:
		path, ok = r.fixed(p, from, g)
	case Direction:
		path, ok = r.walk(p.Dir, p.Repeatable, from, g)
	case MultiDirection:
		path, ok = r.multi(p, from, g)
	case Any:
		path, ok = r.shortest(from, g)
	default:
		panic(fmt.Sprintf("pattern: unknown pattern type %T", p))
	}

	if !ok {
		r.logger.Trace().
			Stringer("pattern", p).
			Str("from", string(from)).
			Str("to", string(g.to)).
			Int("distance", g.distance).
			Msg("no path")
	}
	return path, ok
}

func (r *Resolver) fixed(p Fixed, from board.Tile, g goal) (board.TilePath, bool) {
	if len(p.Steps) == 0 {
		panic("pattern: fixed pattern needs at least one step")
	}

	var path board.TilePath
	current := from
	for _, dir := range p.Steps {
		if dir == "" {
			panic("pattern: fixed pattern with an empty direction")
		}
		rel, ok := r.board.Relation(current, dir)
		if !ok {
			return board.TilePath{}, false
		}
		path = path.Append(rel)
		current = rel.To
	}

	if current != g.to || !g.accepts(path.Distance()) {
		return board.TilePath{}, false
	}
	return path, true
}

// walk follows dir from "from" until it lands on the destination. It gives up
// on a missing relation, on any revisited tile (cyclic boards), after one step
// when not repeatable, and once a distance gate can no longer be met.
func (r *Resolver) walk(dir board.Direction, repeatable bool, from board.Tile, g goal) (board.TilePath, bool) {
	if dir == "" {
		panic("pattern: direction pattern with an empty direction")
	}
	visited := map[board.Tile]bool{from: true}

	var path board.TilePath
	current := from
	for {
		rel, ok := r.board.Relation(current, dir)
		if !ok {
			return board.TilePath{}, false
		}
		path = path.Append(rel)
		current = rel.To

		if current == g.to {
			if !g.accepts(path.Distance()) {
				return board.TilePath{}, false
			}
			return path, true
		}
		if visited[current] {
			return board.TilePath{}, false
		}
		visited[current] = true

		if !repeatable || g.exhausted(path.Distance()) {
			return board.TilePath{}, false
		}
	}
}

// multi walks every direction and keeps the shortest path; the first one
// found wins ties.
func (r *Resolver) multi(p MultiDirection, from board.Tile, g goal) (board.TilePath, bool) {
	if len(p.Dirs) == 0 {
		panic("pattern: multi-direction pattern needs at least one direction")
	}

	var (
		best  board.TilePath
		found bool
	)
	for _, dir := range p.Dirs {
		path, ok := r.walk(dir, p.Repeatable, from, g)
		if ok && (!found || path.Distance() < best.Distance()) {
			best, found = path, true
		}
	}
	return best, found
}

func (r *Resolver) shortest(from board.Tile, g goal) (board.TilePath, bool) {
	edges, distance, ok := r.paths.ShortestPath(from, g.to)
	if !ok || !g.accepts(distance) {
		return board.TilePath{}, false
	}

	relations := make([]board.Relation, len(edges))
	for i, e := range edges {
		relations[i] = r.relations[e.ID]
	}
	return board.NewTilePath(relations...), true
}
