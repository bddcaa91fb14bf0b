package bt

import (
	"math/rand"
	"sort"
	"time"
)

// The composites share one resumable iteration scheme: a cursor into
// an ordered child view, advanced one child per tick, held in place
// while that child is Running, and rewound by Reset.

// Sequence advances its cursor on child Success and aborts the whole
// run on the first child Failure. Exhausting the children resets the
// node and reports Success.
type Sequence struct {
	baseNode
}

func NewSequence(name string, priority ...int) *Sequence {
	return &Sequence{baseNode: baseNode{name: name, priority: firstOrZero(priority)}}
}

func (s *Sequence) Process() (Status, error) {
	if s.current < len(s.children) {
		status, err := s.children[s.current].Process()
		if err != nil {
			return StatusFailure, err
		}
		switch status {
		case StatusRunning:
			return StatusRunning, nil
		case StatusFailure:
			s.Reset()
			return StatusFailure, nil
		}
		s.current++
		if s.current < len(s.children) {
			return StatusRunning, nil
		}
	}
	s.Reset()
	return StatusSuccess, nil
}

// selectStep runs one tick of the selector policy over an ordered view
// of children. It is shared by Selector, PrioritySelector and
// RandomSelector, which differ only in how the view is derived.
func selectStep(view []Node, cursor *int, reset func()) (Status, error) {
	if *cursor < len(view) {
		status, err := view[*cursor].Process()
		if err != nil {
			return StatusFailure, err
		}
		switch status {
		case StatusRunning:
			return StatusRunning, nil
		case StatusSuccess:
			reset()
			return StatusSuccess, nil
		}
		*cursor++
		if *cursor < len(view) {
			return StatusRunning, nil
		}
	}
	reset()
	return StatusFailure, nil
}

// Selector advances its cursor on child Failure and short-circuits on
// the first child Success. Exhausting the children resets the node and
// reports Failure.
type Selector struct {
	baseNode
}

func NewSelector(name string, priority ...int) *Selector {
	return &Selector{baseNode: baseNode{name: name, priority: firstOrZero(priority)}}
}

func (s *Selector) Process() (Status, error) {
	return selectStep(s.children, &s.current, s.Reset)
}

// PrioritySelector is a Selector that iterates a view of its children
// sorted by descending priority, stable among equal priorities. The
// view is computed lazily on first access after a reset and cached for
// the rest of the episode.
type PrioritySelector struct {
	baseNode
	sorted []Node
}

func NewPrioritySelector(name string, priority ...int) *PrioritySelector {
	return &PrioritySelector{baseNode: baseNode{name: name, priority: firstOrZero(priority)}}
}

func (p *PrioritySelector) ordered() []Node {
	if p.sorted == nil {
		p.sorted = make([]Node, len(p.children))
		copy(p.sorted, p.children)
		sort.SliceStable(p.sorted, func(i, j int) bool {
			return p.sorted[i].Priority() > p.sorted[j].Priority()
		})
	}
	return p.sorted
}

func (p *PrioritySelector) Process() (Status, error) {
	return selectStep(p.ordered(), &p.current, p.Reset)
}

// Reset invalidates the cached view along with the cursor.
func (p *PrioritySelector) Reset() {
	p.baseNode.Reset()
	p.sorted = nil
}

// RandomSelector is a Selector whose child order is a uniform shuffle,
// recomputed lazily after each reset: fixed for one episode, fresh for
// the next.
type RandomSelector struct {
	baseNode
	shuffled []Node
	rng      *rand.Rand
}

func NewRandomSelector(name string, priority ...int) *RandomSelector {
	return &RandomSelector{
		baseNode: baseNode{name: name, priority: firstOrZero(priority)},
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *RandomSelector) view() []Node {
	if r.shuffled == nil {
		r.shuffled = make([]Node, len(r.children))
		copy(r.shuffled, r.children)
		r.rng.Shuffle(len(r.shuffled), func(i, j int) {
			r.shuffled[i], r.shuffled[j] = r.shuffled[j], r.shuffled[i]
		})
	}
	return r.shuffled
}

func (r *RandomSelector) Process() (Status, error) {
	return selectStep(r.view(), &r.current, r.Reset)
}

func (r *RandomSelector) Reset() {
	r.baseNode.Reset()
	r.shuffled = nil
}
