// Package rules decides whether game events are legal and computes the state
// they lead to. Conditions answer Valid, Invalid or Ignore; Ignore means "does
// not apply here" and is absorbed by composition instead of failing it.
//
// Game states are treated as immutable values: conditions only read them and
// mutators return new ones.
package rules

import (
	"errors"
	"strings"
)

// Result is the outcome of a check. The zero value, NotChecked, is what an
// unset Response holds; it is never accepted and counts as Invalid wherever
// responses are combined or acted on.
type Result int

const (
	NotChecked Result = iota
	Valid
	Invalid
	Ignore
)

func (r Result) String() string {
	switch r {
	case NotChecked:
		return "not checked"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Ignore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Response is the outcome of a condition or a rule check. Reason explains
// Invalid and Ignore results.
type Response struct {
	Result Result
	Reason string
}

const (
	// NotApplicable is the reason given when every part of a composite ignored the event.
	NotApplicable = "not applicable"
	// Unchecked is the reason given for a Response whose result was never set.
	Unchecked = "result was never set"
)

func Allow() Response {
	return Response{Result: Valid}
}

func Deny(reason string) Response {
	return Response{Result: Invalid, Reason: reason}
}

func Abstain(reason string) Response {
	return Response{Result: Ignore, Reason: reason}
}

func (r Response) Valid() bool   { return r.Result == Valid }
func (r Response) Invalid() bool { return r.Result == Invalid }
func (r Response) Ignored() bool { return r.Result == Ignore }

// settled turns an unset response into a rejection.
func (r Response) settled() Response {
	if r.Result == NotChecked {
		return Deny(Unchecked)
	}
	return r
}

func (r Response) String() string {
	if r.Reason == "" {
		return r.Result.String()
	}
	return r.Result.String() + ": " + r.Reason
}

// Mode selects how a composite combines its children.
type Mode int

const (
	// ModeAll is valid when no child is invalid.
	ModeAll Mode = iota
	// ModeAny is valid when some child is valid.
	ModeAny
)

func (m Mode) String() string {
	if m == ModeAny {
		return "any"
	}
	return "all"
}

// aggregate combines child responses. Conditions and rules share it so that
// both layers treat Ignore the same way.
func aggregate(mode Mode, responses []Response) Response {
	var (
		valid, ignored int
		reasons        []string
	)
	for _, r := range responses {
		r = r.settled()
		switch r.Result {
		case Valid:
			valid++
		case Ignore:
			ignored++
		case Invalid:
			if r.Reason != "" {
				reasons = append(reasons, r.Reason)
			}
		}
	}

	if ignored == len(responses) {
		return Abstain(NotApplicable)
	}
	if mode == ModeAll && valid+ignored == len(responses) {
		return Allow()
	}
	if mode == ModeAny && valid > 0 {
		return Allow()
	}
	return Deny(strings.Join(reasons, "; "))
}

// ErrRejected is wrapped by every error reporting an event that failed its rules.
var ErrRejected = errors.New("event rejected")

// RejectedError carries the reason an event was rejected.
type RejectedError struct {
	Reason string
}

func (e *RejectedError) Error() string {
	if e.Reason == "" {
		return ErrRejected.Error()
	}
	return ErrRejected.Error() + ": " + e.Reason
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
