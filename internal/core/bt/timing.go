package bt

import "time"

// WaitStrategy keeps a leaf Running until a duration has elapsed since
// the first Process call of the episode, then succeeds and rearms.
type WaitStrategy struct {
	Duration time.Duration

	now     func() time.Time
	started bool
	start   time.Time
}

func NewWaitStrategy(d time.Duration) *WaitStrategy {
	return &WaitStrategy{Duration: d, now: time.Now}
}

func (w *WaitStrategy) Process() Status {
	if !w.started {
		w.start = w.now()
		w.started = true
	}
	if w.now().Sub(w.start) >= w.Duration {
		w.Reset()
		return StatusSuccess
	}
	return StatusRunning
}

func (w *WaitStrategy) Reset() { w.started = false }

// WaitForStrategy keeps a leaf Running until the predicate turns true.
// Unlike ConditionStrategy it is a wait, not a test: a false predicate
// holds the leaf rather than failing it.
type WaitForStrategy struct {
	Pred func() bool
}

func (w WaitForStrategy) Process() Status {
	if w.Pred() {
		return StatusSuccess
	}
	return StatusRunning
}

func (w WaitForStrategy) Reset() {}

// NewWait returns a leaf that runs for d, then succeeds.
func NewWait(name string, d time.Duration, priority ...int) *Leaf {
	return NewLeaf(name, NewWaitStrategy(d), priority...)
}

// NewWaitFor returns a leaf that runs until pred turns true.
func NewWaitFor(name string, pred func() bool, priority ...int) *Leaf {
	return NewLeaf(name, WaitForStrategy{Pred: pred}, priority...)
}
