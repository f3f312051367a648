// Package pattern describes how pieces may move and resolves those
// descriptions into concrete tile paths on a board.
package pattern

import (
	"fmt"
	"strings"

	"boardcore/board"
)

// Pattern is one of Fixed, Direction, MultiDirection, Any or Null.
// The set is closed; Resolver switches over it exhaustively.
type Pattern interface {
	fmt.Stringer
	pattern()
}

// Fixed moves through an exact sequence of directions, one relation each.
type Fixed struct {
	Steps []board.Direction
}

// NewFixed panics without steps: a fixed pattern that moves nowhere is a definition bug.
func NewFixed(steps ...board.Direction) Fixed {
	if len(steps) == 0 {
		panic("pattern: fixed pattern needs at least one step")
	}
	for _, s := range steps {
		if s == "" {
			panic("pattern: fixed pattern with an empty direction")
		}
	}
	p := Fixed{Steps: make([]board.Direction, len(steps))}
	copy(p.Steps, steps)
	return p
}

// Direction moves in a single direction, once or, if Repeatable, until it
// reaches its destination (like a rook on an open file).
type Direction struct {
	Dir        board.Direction
	Repeatable bool
}

func NewDirection(dir board.Direction, repeatable bool) Direction {
	if dir == "" {
		panic("pattern: direction pattern with an empty direction")
	}
	return Direction{Dir: dir, Repeatable: repeatable}
}

// MultiDirection moves like a Direction pattern in any one of its directions.
type MultiDirection struct {
	Dirs       []board.Direction
	Repeatable bool
}

func NewMultiDirection(repeatable bool, dirs ...board.Direction) MultiDirection {
	if len(dirs) == 0 {
		panic("pattern: multi-direction pattern needs at least one direction")
	}
	for _, d := range dirs {
		if d == "" {
			panic("pattern: multi-direction pattern with an empty direction")
		}
	}
	p := MultiDirection{Dirs: make([]board.Direction, len(dirs)), Repeatable: repeatable}
	copy(p.Dirs, dirs)
	return p
}

// Any moves along the shortest path over the whole board, ignoring directions.
type Any struct{}

// Null never moves.
type Null struct{}

func (Fixed) pattern()          {}
func (Direction) pattern()      {}
func (MultiDirection) pattern() {}
func (Any) pattern()            {}
func (Null) pattern()           {}

func (p Fixed) String() string {
	return "fixed(" + joinDirections(p.Steps) + ")"
}

func (p Direction) String() string {
	return fmt.Sprintf("direction(%s%s)", p.Dir, repeatSuffix(p.Repeatable))
}

func (p MultiDirection) String() string {
	return fmt.Sprintf("multi(%s%s)", joinDirections(p.Dirs), repeatSuffix(p.Repeatable))
}

func (Any) String() string  { return "any" }
func (Null) String() string { return "null" }

func joinDirections(dirs []board.Direction) string {
	parts := make([]string, len(dirs))
	for i, d := range dirs {
		parts[i] = string(d)
	}
	return strings.Join(parts, ",")
}

func repeatSuffix(repeatable bool) string {
	if repeatable {
		return "*"
	}
	return ""
}
