package bt

// Tree is the root runner: an unconditional sequence over its children
// that never resets itself. Each tick it resumes from the cursor,
// returns immediately on any non-Success child outcome, and advances
// only on Success. Once every child has succeeded it keeps reporting
// Success until the host explicitly calls Reset; the reset discipline
// at the root belongs to the owner, not the tree.
type Tree struct {
	baseNode
}

func NewTree(name string, priority ...int) *Tree {
	return &Tree{baseNode: baseNode{name: name, priority: firstOrZero(priority)}}
}

func (t *Tree) Process() (Status, error) {
	for t.current < len(t.children) {
		status, err := t.children[t.current].Process()
		if err != nil {
			return StatusFailure, err
		}
		if status != StatusSuccess {
			return status, nil
		}
		t.current++
	}
	return StatusSuccess, nil
}
