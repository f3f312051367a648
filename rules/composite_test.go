package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type rule = Rule[table, counter]

// stub is a rule with a fixed check result that records its application in the trail.
type stub struct {
	name   string
	result Response
}

func (s stub) Check(table, counter, any) Response {
	return s.result
}

func (s stub) HandleEvent(g table, st counter, e any) (counter, error) {
	switch s.result.Result {
	case Valid:
		return st.with(st.Count+1, s.name), nil
	case Ignore:
		return st, nil
	default:
		return st, &RejectedError{Reason: s.result.Reason}
	}
}

func (s stub) String() string { return s.name }

func validStub(name string) rule   { return stub{name: name, result: Allow()} }
func invalidStub(name string) rule { return stub{name: name, result: Deny(name + " says no")} }
func ignoredStub(name string) rule { return stub{name: name, result: Abstain("n/a")} }

func TestCompositeRuleCheck(t *testing.T) {
	cases := []struct {
		name     string
		mode     Mode
		children []rule
		want     Result
	}{
		{"all: an invalid child makes the whole invalid", ModeAll, []rule{validStub("a"), invalidStub("b")}, Invalid},
		{"all: ignoring children are ignored themselves", ModeAll, []rule{validStub("a"), ignoredStub("b")}, Valid},
		{"all: only ignoring children is never valid", ModeAll, []rule{ignoredStub("a"), ignoredStub("b")}, Ignore},
		{"any: one valid child is enough", ModeAny, []rule{invalidStub("a"), validStub("b")}, Valid},
		{"any: no valid child", ModeAny, []rule{invalidStub("a"), ignoredStub("b")}, Invalid},
		{"any: only ignoring children", ModeAny, []rule{ignoredStub("a")}, Ignore},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Combine(tc.mode, tc.children...).Check(table{}, counter{}, nil)
			require.Equal(t, tc.want, got.Result)
		})
	}
}

func TestCompositeRuleHandleEvent(t *testing.T) {
	g := table{Limit: 10}

	t.Run("any applies only the first valid child", func(t *testing.T) {
		c := AnyRules(invalidStub("a"), ignoredStub("b"), validStub("c"), validStub("d"))

		out, err := c.HandleEvent(g, counter{}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, out.Count, "Exactly one child should apply")
		require.Equal(t, []string{"c"}, out.Trail)
	})

	t.Run("all applies every child in declaration order", func(t *testing.T) {
		c := AllRules(validStub("a"), ignoredStub("b"), validStub("c"))

		out, err := c.HandleEvent(g, counter{}, nil)
		require.NoError(t, err)
		require.Equal(t, 2, out.Count)
		require.Equal(t, []string{"a", "c"}, out.Trail)
	})

	t.Run("all threads state between event rules", func(t *testing.T) {
		doubling := NewEventRule[table, counter, increment](nil).After(double("double"))
		c := AllRules[table, counter](incrementRule(), doubling)

		out, err := c.HandleEvent(g, counter{Count: 1}, increment{By: 2})
		require.NoError(t, err)
		require.Equal(t, 6, out.Count, "(1+2)*2: the second rule sees the first one's result")
	})

	t.Run("ignored composite returns the input state", func(t *testing.T) {
		in := counter{Count: 5, Trail: []string{"x"}}
		c := AllRules(ignoredStub("a"), ignoredStub("b"))

		out, err := c.HandleEvent(g, in, nil)
		require.NoError(t, err)
		require.Equal(t, in, out)
		require.Same(t, &in.Trail[0], &out.Trail[0], "State should be handed back as is")
	})

	t.Run("invalid composite rejects without applying anything", func(t *testing.T) {
		in := counter{Count: 5}
		out, err := AllRules(validStub("a"), invalidStub("b")).HandleEvent(g, in, nil)

		require.True(t, errors.Is(err, ErrRejected))
		require.EqualError(t, err, "event rejected: b says no")
		require.Equal(t, in, out)
	})

	t.Run("a child turning invalid mid-application exposes no partial state", func(t *testing.T) {
		// Both rules accept +6 on 0, but the second one checks again after the first applied it.
		c := AllRules[table, counter](incrementRule(), incrementRule())
		in := counter{}

		require.Equal(t, Valid, c.Check(g, in, increment{By: 6}).Result)
		out, err := c.HandleEvent(g, in, increment{By: 6})
		require.ErrorIs(t, err, ErrRejected)
		require.Equal(t, in, out)
	})

	t.Run("a child check left unset counts as invalid", func(t *testing.T) {
		in := counter{Count: 2}
		c := AnyRules[table, counter](stub{name: "unset"}, ignoredStub("b"))

		require.Equal(t, Invalid, c.Check(g, in, nil).Result)
		out, err := c.HandleEvent(g, in, nil)
		require.ErrorIs(t, err, ErrRejected)
		require.Equal(t, in, out)

		all := AllRules[table, counter](validStub("a"), stub{name: "unset"})
		_, err = all.HandleEvent(g, in, nil)
		require.ErrorIs(t, err, ErrRejected)
	})

	t.Run("routing events to the rule for their type", func(t *testing.T) {
		c := AnyRules[table, counter](incrementRule(), resetRule())

		out, err := c.HandleEvent(g, counter{Count: 4}, reset{})
		require.NoError(t, err)
		require.Equal(t, []string{"reset"}, out.Trail)

		out, err = c.HandleEvent(g, counter{Count: 4}, increment{By: 1})
		require.NoError(t, err)
		require.Equal(t, []string{"add"}, out.Trail)

		out, err = c.HandleEvent(g, counter{Count: 4}, "unknown event")
		require.NoError(t, err, "No rule applies, so nothing happens")
		require.Equal(t, 4, out.Count)
	})
}

func TestCombine(t *testing.T) {
	t.Run("flattening composites of the same mode", func(t *testing.T) {
		c := AllRules[table, counter](AllRules(validStub("a"), validStub("b")), validStub("c"))
		require.Equal(t, 3, c.Len())
		require.Equal(t, "all(a, b, c)", c.String())
	})

	t.Run("nesting composites of another mode", func(t *testing.T) {
		c := AllRules[table, counter](AnyRules(validStub("a"), validStub("b")), validStub("c"))
		require.Equal(t, 2, c.Len())
		require.Equal(t, "all(any(a, b), c)", c.String())
		require.Equal(t, ModeAll, c.Mode())
	})

	t.Run("flattening keeps results the same", func(t *testing.T) {
		nested := AnyRules[table, counter](AnyRules(invalidStub("a"), validStub("b")), validStub("c"))
		flat := AnyRules(invalidStub("a"), validStub("b"), validStub("c"))

		got, err := nested.HandleEvent(table{}, counter{}, nil)
		require.NoError(t, err)
		want, err := flat.HandleEvent(table{}, counter{}, nil)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})
}
