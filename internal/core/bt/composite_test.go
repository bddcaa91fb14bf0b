package bt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSequence(t *testing.T) {
	t.Run("Running Until Failure Aborts", func(t *testing.T) {
		a := leafOf("a", StatusSuccess)
		b := leafOf("b", StatusSuccess)
		c := leafOf("c", StatusFailure)
		seq := NewSequence("seq")
		for _, n := range []Node{a, b, c} {
			require.NoError(t, seq.AddChild(n))
		}

		// one advance per tick: k-1 Running ticks, then Failure
		st, err := seq.Process()
		require.NoError(t, err)
		require.Equal(t, StatusRunning, st)
		st, err = seq.Process()
		require.NoError(t, err)
		require.Equal(t, StatusRunning, st)
		st, err = seq.Process()
		require.NoError(t, err)
		require.Equal(t, StatusFailure, st)

		require.Equal(t, 0, seq.current)
		require.Equal(t, 1, a.resets)
	})

	t.Run("All Success", func(t *testing.T) {
		seq := NewSequence("seq")
		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, seq.AddChild(leafOf(name, StatusSuccess)))
		}
		st, ticks := drive(seq, 10)
		require.Equal(t, StatusSuccess, st)
		require.Equal(t, 3, ticks)
		require.Equal(t, 0, seq.current)
	})

	t.Run("Running Holds Cursor", func(t *testing.T) {
		slow := leafOf("slow", StatusRunning, StatusRunning, StatusSuccess)
		seq := NewSequence("seq")
		require.NoError(t, seq.AddChild(leafOf("a", StatusSuccess)))
		require.NoError(t, seq.AddChild(slow))

		st, _ := seq.Process()
		require.Equal(t, StatusRunning, st)
		require.Equal(t, 1, seq.current)
		st, _ = seq.Process()
		require.Equal(t, StatusRunning, st)
		require.Equal(t, 1, seq.current)
		st, _ = seq.Process()
		require.Equal(t, StatusRunning, st)
		st, _ = seq.Process()
		require.Equal(t, StatusSuccess, st)
	})

	t.Run("Empty Succeeds", func(t *testing.T) {
		st, err := NewSequence("empty").Process()
		require.NoError(t, err)
		require.Equal(t, StatusSuccess, st)
	})
}

func TestSelector(t *testing.T) {
	t.Run("Running Until Success Short Circuits", func(t *testing.T) {
		a := leafOf("a", StatusFailure)
		b := leafOf("b", StatusFailure)
		c := leafOf("c", StatusSuccess)
		sel := NewSelector("sel")
		for _, n := range []Node{a, b, c} {
			require.NoError(t, sel.AddChild(n))
		}

		st, _ := sel.Process()
		require.Equal(t, StatusRunning, st)
		st, _ = sel.Process()
		require.Equal(t, StatusRunning, st)
		st, _ = sel.Process()
		require.Equal(t, StatusSuccess, st)
		require.Equal(t, 0, sel.current)
	})

	t.Run("All Fail", func(t *testing.T) {
		sel := NewSelector("sel")
		for _, name := range []string{"a", "b", "c"} {
			require.NoError(t, sel.AddChild(leafOf(name, StatusFailure)))
		}
		st, ticks := drive(sel, 10)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, 3, ticks)
		require.Equal(t, 0, sel.current)
	})

	t.Run("Empty Fails", func(t *testing.T) {
		st, err := NewSelector("empty").Process()
		require.NoError(t, err)
		require.Equal(t, StatusFailure, st)
	})
}

func TestPrioritySelector(t *testing.T) {
	build := func(trace *[]string, priorities ...int) *PrioritySelector {
		p := NewPrioritySelector("prio")
		for i, prio := range priorities {
			child := leafOf(string(rune('a'+i)), StatusFailure)
			child.priority = prio
			child.trace = trace
			if err := p.AddChild(child); err != nil {
				t.Fatal(err)
			}
		}
		return p
	}

	t.Run("Descending Order", func(t *testing.T) {
		var trace []string
		p := build(&trace, 1, 3, 2)
		st, _ := drive(p, 10)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, []string{"b", "c", "a"}, trace)
	})

	t.Run("Equal Priorities Keep Insertion Order", func(t *testing.T) {
		var trace []string
		p := build(&trace, 2, 2, 2)
		st, _ := drive(p, 10)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, []string{"a", "b", "c"}, trace)
	})

	t.Run("Already Descending Unchanged", func(t *testing.T) {
		var trace []string
		p := build(&trace, 3, 2, 1)
		st, _ := drive(p, 10)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, []string{"a", "b", "c"}, trace)
	})

	t.Run("Sorted View Cached Per Episode", func(t *testing.T) {
		p := build(nil, 1, 3, 2)
		_, err := p.Process()
		require.NoError(t, err)
		require.NotNil(t, p.sorted)
		first := p.sorted

		_, err = p.Process()
		require.NoError(t, err)
		require.Same(t, &first[0], &p.sorted[0]) // same backing view

		p.Reset()
		require.Nil(t, p.sorted)
	})
}

func TestRandomSelector(t *testing.T) {
	t.Run("Shuffle Fixed Within Episode Fresh After Reset", func(t *testing.T) {
		var trace []string
		r := NewRandomSelector("rand")
		r.rng = rand.New(rand.NewSource(42))
		for _, name := range []string{"a", "b", "c", "d"} {
			child := leafOf(name, StatusFailure)
			child.trace = &trace
			require.NoError(t, r.AddChild(child))
		}

		st, ticks := drive(r, 10)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, 4, ticks)
		require.ElementsMatch(t, []string{"a", "b", "c", "d"}, trace)
		require.Nil(t, r.shuffled) // episode ended, view invalidated

		trace = trace[:0]
		st, _ = drive(r, 10)
		require.Equal(t, StatusFailure, st)
		require.ElementsMatch(t, []string{"a", "b", "c", "d"}, trace)
	})

	t.Run("Explicit Reset Invalidates View", func(t *testing.T) {
		r := NewRandomSelector("rand")
		require.NoError(t, r.AddChild(leafOf("a", StatusRunning)))
		_, err := r.Process()
		require.NoError(t, err)
		require.NotNil(t, r.shuffled)
		r.Reset()
		require.Nil(t, r.shuffled)
	})
}

func TestTree(t *testing.T) {
	t.Run("No Implicit Reset On Failure", func(t *testing.T) {
		a := leafOf("a", StatusSuccess)
		b := leafOf("b", StatusFailure, StatusSuccess)
		tree := NewTree("root")
		require.NoError(t, tree.AddChild(a))
		require.NoError(t, tree.AddChild(b))

		st, err := tree.Process()
		require.NoError(t, err)
		require.Equal(t, StatusFailure, st)
		require.Equal(t, 1, tree.current) // cursor held, nothing reset
		require.Zero(t, a.resets)
		require.Zero(t, b.resets)

		// resumes at b without re-running a
		st, _ = tree.Process()
		require.Equal(t, StatusSuccess, st)
		require.Equal(t, 1, a.step)
		require.Equal(t, 2, tree.current)
	})

	t.Run("Exhausted Tree Stays Done Until Host Reset", func(t *testing.T) {
		a := leafOf("a", StatusSuccess)
		tree := NewTree("root")
		require.NoError(t, tree.AddChild(a))

		st, _ := tree.Process()
		require.Equal(t, StatusSuccess, st)
		st, _ = tree.Process()
		require.Equal(t, StatusSuccess, st)
		require.Equal(t, 1, a.step) // not re-processed

		tree.Reset()
		require.Equal(t, 0, tree.current)
		require.Equal(t, 1, a.resets)
		st, _ = tree.Process()
		require.Equal(t, StatusSuccess, st)
		require.Equal(t, 1, a.step) // fresh episode after explicit reset
	})

	t.Run("Running Child Holds Cursor", func(t *testing.T) {
		b := leafOf("b", StatusRunning, StatusSuccess)
		tree := NewTree("root")
		require.NoError(t, tree.AddChild(leafOf("a", StatusSuccess)))
		require.NoError(t, tree.AddChild(b))

		st, _ := tree.Process()
		require.Equal(t, StatusRunning, st)
		require.Equal(t, 1, tree.current)
		st, _ = tree.Process()
		require.Equal(t, StatusSuccess, st)
	})
}

func TestResetIdempotent(t *testing.T) {
	a := leafOf("a", StatusSuccess)
	b := leafOf("b", StatusRunning)
	seq := NewSequence("seq")
	require.NoError(t, seq.AddChild(a))
	require.NoError(t, seq.AddChild(b))
	p := NewPrioritySelector("prio")
	require.NoError(t, p.AddChild(seq))

	_, err := p.Process()
	require.NoError(t, err)

	p.Reset()
	require.Equal(t, 0, p.current)
	require.Nil(t, p.sorted)
	require.Equal(t, 0, seq.current)
	firstResets := a.resets

	p.Reset()
	require.Equal(t, 0, p.current)
	require.Nil(t, p.sorted)
	require.Equal(t, 0, seq.current)
	require.Equal(t, firstResets+1, a.resets) // recursed again, same state
}
