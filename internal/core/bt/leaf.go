package bt

import "fmt"

// Leaf adapts a Strategy into a terminal Node.
type Leaf struct {
	name     string
	priority int
	strategy Strategy
}

// NewLeaf wraps a strategy. The optional trailing argument sets the
// node priority used by the sorted composites.
func NewLeaf(name string, strategy Strategy, priority ...int) *Leaf {
	return &Leaf{name: name, strategy: strategy, priority: firstOrZero(priority)}
}

// NewCondition returns a leaf mapping a predicate onto Success/Failure.
func NewCondition(name string, pred func() bool, priority ...int) *Leaf {
	return NewLeaf(name, ConditionStrategy{Pred: pred}, priority...)
}

// NewAction returns a leaf that runs an action and always succeeds.
func NewAction(name string, act func(), priority ...int) *Leaf {
	return NewLeaf(name, ActionStrategy{Act: act}, priority...)
}

func (l *Leaf) Name() string  { return l.name }
func (l *Leaf) Priority() int { return l.priority }

// AddChild always fails: leaves are terminal.
func (l *Leaf) AddChild(Node) error {
	return fmt.Errorf("leaf %q: %w", l.name, ErrChildren)
}

func (l *Leaf) Process() (Status, error) { return l.strategy.Process(), nil }

func (l *Leaf) Reset() { l.strategy.Reset() }
