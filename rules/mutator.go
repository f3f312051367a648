package rules

// Mutator computes the state following an accepted event. It must not modify
// its input state and must not fail on an event its rule has validated.
type Mutator[G, S, E any] interface {
	MutateState(game G, state S, event E) S
}

// MutatorFunc adapts a function to Mutator.
type MutatorFunc[G, S, E any] func(game G, state S, event E) S

func (f MutatorFunc[G, S, E]) MutateState(game G, state S, event E) S {
	return f(game, state, event)
}

// Chain applies mutators left to right, feeding each one the state returned by
// the previous. Nil entries are skipped; an empty chain returns the state it
// is given.
type Chain[G, S, E any] []Mutator[G, S, E]

func (c Chain[G, S, E]) MutateState(game G, state S, event E) S {
	for _, m := range c {
		if m == nil {
			continue
		}
		state = m.MutateState(game, state, event)
	}
	return state
}
