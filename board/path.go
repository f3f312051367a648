package board

import (
	"fmt"
	"strings"
)

// TilePath is a resolved move: a non-empty chain of relations where each
// relation starts on the tile the previous one ended on.
// A TilePath is immutable; Append returns a new path.
type TilePath struct {
	relations []Relation
	distance  int
}

// NewTilePath builds a path from connected relations.
// It panics on an empty or disconnected chain: both indicate a resolver bug.
func NewTilePath(relations ...Relation) TilePath {
	if len(relations) == 0 {
		panic("board: tile path needs at least one relation")
	}
	p := TilePath{relations: make([]Relation, len(relations))}
	copy(p.relations, relations)
	for i, r := range p.relations {
		if i > 0 && p.relations[i-1].To != r.From {
			panic(fmt.Sprintf("board: disconnected tile path: %s does not continue %s", r, p.relations[i-1]))
		}
		p.distance += r.Distance
	}
	return p
}

// Append returns a new path extended by r. The receiver is left untouched.
func (p TilePath) Append(r Relation) TilePath {
	if len(p.relations) == 0 {
		return NewTilePath(r)
	}
	if last := p.relations[len(p.relations)-1]; last.To != r.From {
		panic(fmt.Sprintf("board: disconnected tile path: %s does not continue %s", r, last))
	}
	relations := make([]Relation, len(p.relations), len(p.relations)+1)
	copy(relations, p.relations)
	return TilePath{
		relations: append(relations, r),
		distance:  p.distance + r.Distance,
	}
}

// IsZero reports whether p is the zero TilePath, which no resolver ever returns.
func (p TilePath) IsZero() bool {
	return len(p.relations) == 0
}

func (p TilePath) From() Tile {
	return p.relations[0].From
}

func (p TilePath) To() Tile {
	return p.relations[len(p.relations)-1].To
}

// Distance is the sum of the relation distances.
func (p TilePath) Distance() int {
	return p.distance
}

// Len is the number of relations (steps) in the path.
func (p TilePath) Len() int {
	return len(p.relations)
}

func (p TilePath) Relations() []Relation {
	relations := make([]Relation, len(p.relations))
	copy(relations, p.relations)
	return relations
}

// Tiles returns every tile visited, starting with From and ending with To.
func (p TilePath) Tiles() []Tile {
	if len(p.relations) == 0 {
		return nil
	}
	tiles := make([]Tile, 0, len(p.relations)+1)
	tiles = append(tiles, p.relations[0].From)
	for _, r := range p.relations {
		tiles = append(tiles, r.To)
	}
	return tiles
}

func (p TilePath) Directions() []Direction {
	dirs := make([]Direction, len(p.relations))
	for i, r := range p.relations {
		dirs[i] = r.Direction
	}
	return dirs
}

func (p TilePath) String() string {
	if len(p.relations) == 0 {
		return "<empty path>"
	}
	var sb strings.Builder
	sb.WriteString(string(p.From()))
	for _, r := range p.relations {
		fmt.Fprintf(&sb, " -%s-> %s", r.Direction, r.To)
	}
	fmt.Fprintf(&sb, " (%d)", p.distance)
	return sb.String()
}
