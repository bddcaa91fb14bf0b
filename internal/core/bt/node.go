package bt

// Node is the contract shared by every behaviour tree node. An
// external driver calls Process on the root once per tick; the call
// recurses down to the leaves and the resulting Status bubbles back
// up. A tree must only ever be ticked from a single goroutine.
type Node interface {
	// Name returns a human-readable identifier for logs and debugging.
	Name() string

	// Priority is the ordering key used by the sorted composites.
	// Higher values are processed first; ties keep insertion order.
	Priority() int

	// AddChild attaches a child node. Nodes with restricted arity
	// return ErrChildren once their limit is reached.
	AddChild(child Node) error

	// Process executes one tick of the node and reports its status.
	// A non-nil error indicates a structural fault and aborts the tick.
	Process() (Status, error)

	// Reset restores the node and its whole subtree to the initial,
	// un-started state. It is idempotent.
	Reset()
}

// baseNode carries identity and the cursor-driven iteration state
// shared by the multi-child nodes. The cursor stays in [0, childCount]
// and only moves forward between resets.
type baseNode struct {
	name     string
	priority int
	children []Node
	current  int
}

func firstOrZero(priority []int) int {
	if len(priority) > 0 {
		return priority[0]
	}
	return 0
}

func (n *baseNode) Name() string  { return n.name }
func (n *baseNode) Priority() int { return n.priority }

func (n *baseNode) AddChild(child Node) error {
	n.children = append(n.children, child)
	return nil
}

// Reset rewinds the cursor and recursively resets the subtree.
func (n *baseNode) Reset() {
	n.current = 0
	for _, child := range n.children {
		child.Reset()
	}
}
