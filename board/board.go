package board

import (
	"fmt"
)

// Tile identifies a single space on the board. Tiles carry no data of their own.
type Tile string

// Direction labels a relation between two tiles (e.g. "north", "clockwise").
type Direction string

// AnyDirection matches every other direction. Relations declared with it can be
// walked by any directional query, and queries made with it match any relation.
const AnyDirection Direction = "*"

// Matches reports whether two directions are equal, treating AnyDirection as a wildcard.
func (d Direction) Matches(other Direction) bool {
	return d == other || d == AnyDirection || other == AnyDirection
}

// Relation is a directed, weighted edge between two tiles. A reverse relation
// has to be declared on its own for movement to be bidirectional.
type Relation struct {
	From      Tile
	To        Tile
	Direction Direction
	Distance  int
}

func (r Relation) String() string {
	return fmt.Sprintf("%s-[%s:%d]->%s", r.From, r.Direction, r.Distance, r.To)
}

// Board is the compiled, static topology of a game: tiles and the relations
// between them. A Board is never modified after New returns, so it can be
// shared by every state and goroutine of a game.
type Board struct {
	tiles     []Tile
	relations []Relation
	outgoing  map[Tile][]int // Relation indices by source tile, in declaration order
}

// New compiles tiles and relations into a Board.
func New(tiles []Tile, relations []Relation) (*Board, error) {
	b := &Board{
		tiles:     make([]Tile, 0, len(tiles)),
		relations: make([]Relation, 0, len(relations)),
		outgoing:  make(map[Tile][]int, len(tiles)),
	}

	for _, t := range tiles {
		if t == "" {
			return nil, fmt.Errorf("board: tile with empty id")
		}
		if _, ok := b.outgoing[t]; ok {
			return nil, fmt.Errorf("board: duplicate tile %q", t)
		}
		b.tiles = append(b.tiles, t)
		b.outgoing[t] = nil
	}

	for _, r := range relations {
		if !b.Has(r.From) {
			return nil, fmt.Errorf("board: relation %s: unknown source tile %q", r, r.From)
		}
		if !b.Has(r.To) {
			return nil, fmt.Errorf("board: relation %s: unknown destination tile %q", r, r.To)
		}
		if r.Direction == "" {
			return nil, fmt.Errorf("board: relation %s: empty direction", r)
		}
		if r.Distance <= 0 {
			return nil, fmt.Errorf("board: relation %s: distance must be positive", r)
		}
		b.outgoing[r.From] = append(b.outgoing[r.From], len(b.relations))
		b.relations = append(b.relations, r)
	}

	return b, nil
}

// MustNew is like New but panics on a malformed topology.
func MustNew(tiles []Tile, relations []Relation) *Board {
	b, err := New(tiles, relations)
	if err != nil {
		panic(err)
	}
	return b
}

// Has reports whether the tile belongs to the board.
func (b *Board) Has(t Tile) bool {
	_, ok := b.outgoing[t]
	return ok
}

// Tiles returns the board's tiles in declaration order.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, len(b.tiles))
	copy(tiles, b.tiles)
	return tiles
}

// Relations returns every relation in declaration order.
func (b *Board) Relations() []Relation {
	relations := make([]Relation, len(b.relations))
	copy(relations, b.relations)
	return relations
}

// Outgoing returns the relations leaving a tile, in declaration order.
func (b *Board) Outgoing(from Tile) []Relation {
	indices := b.outgoing[from]
	relations := make([]Relation, len(indices))
	for i, idx := range indices {
		relations[i] = b.relations[idx]
	}
	return relations
}

// Relation looks up the relation leaving from in the given direction.
// When several relations match, the first declared one wins.
func (b *Board) Relation(from Tile, dir Direction) (Relation, bool) {
	for _, idx := range b.outgoing[from] {
		if r := b.relations[idx]; r.Direction.Matches(dir) {
			return r, true
		}
	}
	return Relation{}, false
}

// Between looks up the first declared relation leading from one tile directly to another.
func (b *Board) Between(from, to Tile) (Relation, bool) {
	for _, idx := range b.outgoing[from] {
		if r := b.relations[idx]; r.To == to {
			return r, true
		}
	}
	return Relation{}, false
}
