package bt

// Strategy is a leaf-level capability: one predicate check or one
// action per Process call. The canonical strategies resolve
// instantly and never return StatusRunning; only the wait strategies
// in timing.go are time-dependent.
type Strategy interface {
	Process() Status
	Reset()
}

// ConditionStrategy evaluates a predicate supplied by the host.
// True maps to Success, false to Failure.
type ConditionStrategy struct {
	Pred func() bool
}

func (c ConditionStrategy) Process() Status {
	if c.Pred() {
		return StatusSuccess
	}
	return StatusFailure
}

func (c ConditionStrategy) Reset() {}

// ActionStrategy runs a side-effecting action and always succeeds.
type ActionStrategy struct {
	Act func()
}

func (a ActionStrategy) Process() Status {
	a.Act()
	return StatusSuccess
}

func (a ActionStrategy) Reset() {}
