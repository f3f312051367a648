package rules

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// CompositeRule combines rules, possibly for different event types.
//
// Every child is checked against the incoming state before anything is
// applied; the results aggregate like CompositeCondition. When the composite
// is valid, ModeAny applies only the first valid child in declaration order,
// while ModeAll applies every child in declaration order, each one seeing the
// state left by the previous.
type CompositeRule[G, S any] struct {
	mode     Mode
	children []Rule[G, S]
}

func AllRules[G, S any](rules ...Rule[G, S]) *CompositeRule[G, S] {
	return Combine(ModeAll, rules...)
}

func AnyRules[G, S any](rules ...Rule[G, S]) *CompositeRule[G, S] {
	return Combine(ModeAny, rules...)
}

// Combine builds a composite rule. Children that are composites of the same
// mode are merged into it rather than nested.
func Combine[G, S any](mode Mode, rules ...Rule[G, S]) *CompositeRule[G, S] {
	c := &CompositeRule[G, S]{mode: mode}
	for _, child := range rules {
		if nested, ok := child.(*CompositeRule[G, S]); ok && nested.mode == mode {
			c.children = append(c.children, nested.children...)
			continue
		}
		c.children = append(c.children, child)
	}
	return c
}

func (c *CompositeRule[G, S]) Mode() Mode {
	return c.mode
}

// Len is the number of direct children after flattening.
func (c *CompositeRule[G, S]) Len() int {
	return len(c.children)
}

func (c *CompositeRule[G, S]) Check(game G, state S, event any) Response {
	_, response := c.check(game, state, event)
	return response
}

func (c *CompositeRule[G, S]) check(game G, state S, event any) ([]Response, Response) {
	responses := make([]Response, len(c.children))
	for i, child := range c.children {
		responses[i] = child.Check(game, state, event)
	}
	return responses, aggregate(c.mode, responses)
}

// HandleEvent applies the event. A rejected event, including one rejected by a
// later child of an All composite, returns the input state untouched.
func (c *CompositeRule[G, S]) HandleEvent(game G, state S, event any) (S, error) {
	responses, response := c.check(game, state, event)

	switch response.Result {
	case Ignore:
		return state, nil
	case Invalid:
		log.Debug().Stringer("mode", c.mode).Str("reason", response.Reason).Msg("event rejected")
		return state, &RejectedError{Reason: response.Reason}
	}

	if c.mode == ModeAny {
		for i, r := range responses {
			if r.Valid() {
				log.Trace().Int("child", i).Msg("first valid rule applies")
				return c.children[i].HandleEvent(game, state, event)
			}
		}
	}

	next := state
	for _, child := range c.children {
		var err error
		if next, err = child.HandleEvent(game, next, event); err != nil {
			return state, err
		}
	}
	return next, nil
}

func (c *CompositeRule[G, S]) String() string {
	parts := make([]string, len(c.children))
	for i, child := range c.children {
		if s, ok := child.(fmt.Stringer); ok {
			parts[i] = s.String()
		} else {
			parts[i] = "?"
		}
	}
	return c.mode.String() + "(" + strings.Join(parts, ", ") + ")"
}
