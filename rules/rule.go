package rules

import (
	"fmt"

	"github.com/rs/zerolog/log"
)

// Rule validates events and applies the accepted ones. Events are untyped so
// that rules for different event types can be combined; a rule handed an event
// it is not about ignores it.
type Rule[G, S any] interface {
	// Check reports whether the event would be accepted, without changing anything.
	Check(game G, state S, event any) Response
	// HandleEvent re-checks the event and returns the resulting state. Ignored
	// events return the input state; rejected ones a *RejectedError.
	HandleEvent(game G, state S, event any) (S, error)
}

// EventRule is the rule for one concrete event type E: before mutators, a
// condition, and after mutators.
//
// The before chain always runs first, so games can normalize an event (say,
// snap a dice move onto the board path) ahead of validation. The condition
// sees the normalized state. On Valid the after chain runs on it; on Ignore
// the original state is returned as if the rule never ran.
type EventRule[G, S, E any] struct {
	name      string
	condition Condition[G, S, E]
	before    Chain[G, S, E]
	after     Chain[G, S, E]
}

// NewEventRule builds a rule around condition. A nil condition accepts every
// event of type E.
func NewEventRule[G, S, E any](condition Condition[G, S, E]) *EventRule[G, S, E] {
	if condition == nil {
		condition = Always[G, S, E]()
	}
	var event E
	return &EventRule[G, S, E]{
		name:      fmt.Sprintf("%T", event),
		condition: condition,
	}
}

// Named returns a copy of the rule carrying name in logs and errors.
func (r *EventRule[G, S, E]) Named(name string) *EventRule[G, S, E] {
	c := r.clone()
	c.name = name
	return c
}

// Before returns a copy of the rule with mutators appended to its before chain.
func (r *EventRule[G, S, E]) Before(mutators ...Mutator[G, S, E]) *EventRule[G, S, E] {
	c := r.clone()
	c.before = append(c.before, mutators...)
	return c
}

// After returns a copy of the rule with mutators appended to its after chain.
func (r *EventRule[G, S, E]) After(mutators ...Mutator[G, S, E]) *EventRule[G, S, E] {
	c := r.clone()
	c.after = append(c.after, mutators...)
	return c
}

func (r *EventRule[G, S, E]) clone() *EventRule[G, S, E] {
	return &EventRule[G, S, E]{
		name:      r.name,
		condition: r.condition,
		before:    append(Chain[G, S, E](nil), r.before...),
		after:     append(Chain[G, S, E](nil), r.after...),
	}
}

func (r *EventRule[G, S, E]) String() string {
	return r.name
}

func (r *EventRule[G, S, E]) Check(game G, state S, event any) Response {
	typed, ok := event.(E)
	if !ok {
		return Abstain("event type does not match")
	}
	_, response := r.check(game, state, typed)
	return response
}

func (r *EventRule[G, S, E]) HandleEvent(game G, state S, event any) (S, error) {
	typed, ok := event.(E)
	if !ok {
		return state, nil
	}

	normalized, response := r.check(game, state, typed)
	switch response.Result {
	case Valid:
		return r.after.MutateState(game, normalized, typed), nil
	case Ignore:
		return state, nil
	default:
		log.Debug().Str("rule", r.name).Str("reason", response.Reason).Msg("event rejected")
		return state, &RejectedError{Reason: response.Reason}
	}
}

// check runs the before chain and evaluates the condition on its result.
func (r *EventRule[G, S, E]) check(game G, state S, event E) (S, Response) {
	normalized := r.before.MutateState(game, state, event)
	response := r.condition.Evaluate(game, normalized, event)
	if response.Result == NotChecked {
		log.Warn().Str("rule", r.name).Msg("condition returned an unset response")
	}
	return normalized, response.settled()
}
