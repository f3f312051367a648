package rules_test

import (
	"fmt"
	"testing"

	"boardcore/board"
	"boardcore/pattern"
	"boardcore/rules"

	"github.com/stretchr/testify/require"
)

// race is a minimal dice race: pieces run forward along a track and every
// move spends one die. The last tile can be reached with a larger die.
type race struct {
	paths *pattern.Resolver
	piece pattern.Pattern
	goal  board.Tile
}

type raceState struct {
	Positions map[string]board.Tile
	Dice      []int
	Pending   board.TilePath // Path snapped from the requested move, if any
	Die       int            // Index of the die the pending path spends
}

type move struct {
	Player string
	To     board.Tile
}

type pass struct{}

func newRace(length int) *race {
	var tiles []board.Tile
	var relations []board.Relation
	for i := 0; i < length; i++ {
		tiles = append(tiles, board.Tile(fmt.Sprintf("t%d", i)))
		if i > 0 {
			relations = append(relations, board.Relation{From: tiles[i-1], To: tiles[i], Direction: "forward", Distance: 1})
		}
	}
	return &race{
		paths: pattern.NewResolver(board.MustNew(tiles, relations)),
		piece: pattern.NewDirection("forward", true),
		goal:  tiles[length-1],
	}
}

func (s raceState) clone() raceState {
	positions := make(map[string]board.Tile, len(s.Positions))
	for k, v := range s.Positions {
		positions[k] = v
	}
	dice := make([]int, len(s.Dice))
	copy(dice, s.Dice)
	return raceState{Positions: positions, Dice: dice, Pending: s.Pending, Die: s.Die}
}

type (
	moveCondition = rules.ConditionFunc[*race, raceState, move]
	moveMutator   = rules.MutatorFunc[*race, raceState, move]
)

// snap resolves the requested move against each die, exact rolls first. Only
// the goal tile may be reached with a larger die.
var snap = moveMutator(func(g *race, s raceState, m move) raceState {
	from, ok := s.Positions[m.Player]
	if !ok {
		return s
	}
	next := s.clone()
	for _, overshoot := range []bool{false, true} {
		if overshoot && m.To != g.goal {
			break
		}
		for i, d := range s.Dice {
			if path, ok := g.paths.ResolveDistance(g.piece, from, m.To, d, overshoot); ok {
				next.Pending, next.Die = path, i
				return next
			}
		}
	}
	return next
})

var movable = moveCondition(func(g *race, s raceState, m move) rules.Response {
	if _, ok := s.Positions[m.Player]; !ok {
		return rules.Abstain("not a racer")
	}
	if s.Pending.IsZero() {
		return rules.Deny(fmt.Sprintf("no die takes %s to %s", m.Player, m.To))
	}
	return rules.Allow()
})

var advance = moveMutator(func(_ *race, s raceState, m move) raceState {
	next := s.clone()
	next.Positions[m.Player] = s.Pending.To()
	next.Dice = append(next.Dice[:s.Die], next.Dice[s.Die+1:]...)
	next.Pending = board.TilePath{}
	return next
})

func raceRules() rules.Rule[*race, raceState] {
	moveRule := rules.NewEventRule[*race, raceState, move](movable).
		Named("move").
		Before(snap).
		After(advance)

	passRule := rules.NewEventRule[*race, raceState, pass](nil).
		Named("pass").
		After(rules.MutatorFunc[*race, raceState, pass](func(_ *race, s raceState, _ pass) raceState {
			next := s.clone()
			next.Dice = nil
			return next
		}))

	return rules.AnyRules[*race, raceState](moveRule, passRule)
}

func TestRace(t *testing.T) {
	g := newRace(7)
	r := raceRules()
	start := raceState{
		Positions: map[string]board.Tile{"red": "t0", "blue": "t3"},
		Dice:      []int{2, 5},
	}

	t.Run("moving by an exact die", func(t *testing.T) {
		out, err := r.HandleEvent(g, start, move{Player: "red", To: "t2"})
		require.NoError(t, err)
		require.Equal(t, board.Tile("t2"), out.Positions["red"])
		require.Equal(t, []int{5}, out.Dice)
		require.True(t, out.Pending.IsZero())

		require.Equal(t, board.Tile("t0"), start.Positions["red"], "Input state should not change")
		require.Equal(t, []int{2, 5}, start.Dice)
	})

	t.Run("rejecting a move no die allows", func(t *testing.T) {
		resp := r.Check(g, start, move{Player: "red", To: "t4"})
		require.Equal(t, rules.Invalid, resp.Result)
		require.Equal(t, "no die takes red to t4", resp.Reason)

		_, err := r.HandleEvent(g, start, move{Player: "red", To: "t4"})
		require.ErrorIs(t, err, rules.ErrRejected)
	})

	t.Run("bearing off the goal with a larger die", func(t *testing.T) {
		out, err := r.HandleEvent(g, start, move{Player: "blue", To: "t6"})
		require.NoError(t, err)
		require.Equal(t, board.Tile("t6"), out.Positions["blue"])
		require.Equal(t, []int{2}, out.Dice, "The 5 should be spent on a 3-tile move")
	})

	t.Run("ignoring moves of unknown players", func(t *testing.T) {
		require.Equal(t, rules.Ignore, r.Check(g, start, move{Player: "green", To: "t1"}).Result)

		out, err := r.HandleEvent(g, start, move{Player: "green", To: "t1"})
		require.NoError(t, err)
		require.Equal(t, start, out)
	})

	t.Run("passing spends every die", func(t *testing.T) {
		out, err := r.HandleEvent(g, start, pass{})
		require.NoError(t, err)
		require.Empty(t, out.Dice)
		require.Equal(t, start.Positions, out.Positions)
	})
}
