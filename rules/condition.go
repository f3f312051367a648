package rules

// Condition is a side-effect free predicate over a game, a state and an event.
// G is the compiled game (board, pieces, resolver...), S the state and E the event.
type Condition[G, S, E any] interface {
	Evaluate(game G, state S, event E) Response
}

// ConditionFunc adapts a function to Condition.
type ConditionFunc[G, S, E any] func(game G, state S, event E) Response

func (f ConditionFunc[G, S, E]) Evaluate(game G, state S, event E) Response {
	return f(game, state, event)
}

// Always is a condition that accepts every event.
func Always[G, S, E any]() Condition[G, S, E] {
	return ConditionFunc[G, S, E](func(G, S, E) Response { return Allow() })
}

// Never is a condition that rejects every event with reason.
func Never[G, S, E any](reason string) Condition[G, S, E] {
	return ConditionFunc[G, S, E](func(G, S, E) Response { return Deny(reason) })
}

// When adapts a predicate on one event type T to a condition over untyped
// events. Events of any other type are ignored.
func When[G, S, T any](fn func(game G, state S, event T) Response) Condition[G, S, any] {
	return ConditionFunc[G, S, any](func(game G, state S, event any) Response {
		typed, ok := event.(T)
		if !ok {
			return Abstain("event type does not match")
		}
		return fn(game, state, typed)
	})
}

type not[G, S, E any] struct {
	inner Condition[G, S, E]
}

// Not swaps Valid and Invalid. Ignore is left alone: a condition that does not
// apply does not start applying when negated.
func Not[G, S, E any](c Condition[G, S, E]) Condition[G, S, E] {
	return not[G, S, E]{inner: c}
}

func (n not[G, S, E]) Evaluate(game G, state S, event E) Response {
	r := n.inner.Evaluate(game, state, event)
	switch r.Result {
	case Valid:
		return Deny("negated condition held")
	case Invalid:
		return Allow()
	default:
		return r
	}
}

// CompositeCondition combines conditions with All or Any semantics.
type CompositeCondition[G, S, E any] struct {
	mode     Mode
	children []Condition[G, S, E]
}

// All is valid when none of the conditions is invalid and at least one applies.
func All[G, S, E any](conditions ...Condition[G, S, E]) *CompositeCondition[G, S, E] {
	return Compose(ModeAll, conditions...)
}

// Any is valid when at least one of the conditions is valid.
func Any[G, S, E any](conditions ...Condition[G, S, E]) *CompositeCondition[G, S, E] {
	return Compose(ModeAny, conditions...)
}

// Compose builds a composite condition. Children that are composites of the
// same mode are merged into it rather than nested.
func Compose[G, S, E any](mode Mode, conditions ...Condition[G, S, E]) *CompositeCondition[G, S, E] {
	c := &CompositeCondition[G, S, E]{mode: mode}
	for _, child := range conditions {
		if nested, ok := child.(*CompositeCondition[G, S, E]); ok && nested.mode == mode {
			c.children = append(c.children, nested.children...)
			continue
		}
		c.children = append(c.children, child)
	}
	return c
}

func (c *CompositeCondition[G, S, E]) Mode() Mode {
	return c.mode
}

// Len is the number of direct children after flattening.
func (c *CompositeCondition[G, S, E]) Len() int {
	return len(c.children)
}

// Evaluate queries every child, without short-circuiting, and aggregates the
// results. All children ignoring the event makes the composite ignore it too.
func (c *CompositeCondition[G, S, E]) Evaluate(game G, state S, event E) Response {
	responses := make([]Response, len(c.children))
	for i, child := range c.children {
		responses[i] = child.Evaluate(game, state, event)
	}
	return aggregate(c.mode, responses)
}
