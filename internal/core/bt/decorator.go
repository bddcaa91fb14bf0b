package bt

import "fmt"

// Decorator wraps exactly one child and by default forwards Process
// and Reset to it. Attaching a second child fails immediately; the
// missing-child check is deferred to Process so construction order
// stays free.
type Decorator struct {
	baseNode
}

func NewDecorator(name string, priority ...int) *Decorator {
	return &Decorator{baseNode: baseNode{name: name, priority: firstOrZero(priority)}}
}

func (d *Decorator) AddChild(child Node) error {
	if len(d.children) > 0 {
		return fmt.Errorf("decorator %q: %w", d.name, ErrChildren)
	}
	d.children = append(d.children, child)
	return nil
}

func (d *Decorator) child() (Node, error) {
	if len(d.children) == 0 {
		return nil, fmt.Errorf("decorator %q: %w", d.name, ErrNoChild)
	}
	return d.children[0], nil
}

func (d *Decorator) Process() (Status, error) {
	child, err := d.child()
	if err != nil {
		return StatusFailure, err
	}
	return child.Process()
}

// Inverter swaps the child's terminal outcomes; Running passes through
// untouched. The subtree is reset before a terminal status is
// returned, so every episode starts the child fresh.
type Inverter struct {
	Decorator
}

func NewInverter(name string, priority ...int) *Inverter {
	return &Inverter{Decorator{baseNode{name: name, priority: firstOrZero(priority)}}}
}

func (i *Inverter) Process() (Status, error) {
	child, err := i.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	switch status {
	case StatusSuccess:
		i.Reset()
		return StatusFailure, nil
	case StatusFailure:
		i.Reset()
		return StatusSuccess, nil
	}
	return StatusRunning, nil
}

// UntilFail loops its child every tick until the child fails, which
// ends the loop successfully. A child Success neither advances nor
// resets anything; the loop simply keeps running.
type UntilFail struct {
	Decorator
}

func NewUntilFail(name string, priority ...int) *UntilFail {
	return &UntilFail{Decorator{baseNode{name: name, priority: firstOrZero(priority)}}}
}

func (u *UntilFail) Process() (Status, error) {
	child, err := u.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	if status == StatusFailure {
		u.Reset()
		return StatusSuccess, nil
	}
	return StatusRunning, nil
}

// UntilSuccess is the mirror of UntilFail: the loop ends successfully
// on the first child Success and keeps running otherwise.
type UntilSuccess struct {
	Decorator
}

func NewUntilSuccess(name string, priority ...int) *UntilSuccess {
	return &UntilSuccess{Decorator{baseNode{name: name, priority: firstOrZero(priority)}}}
}

func (u *UntilSuccess) Process() (Status, error) {
	child, err := u.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	if status == StatusSuccess {
		u.Reset()
		return StatusSuccess, nil
	}
	return StatusRunning, nil
}

// RepeatUntil loops its child until an external condition turns true.
// The condition is checked first each tick: when it holds, the node
// resets and succeeds without touching the child that tick. A child
// Failure ends the loop as Failure; a child Success keeps looping.
type RepeatUntil struct {
	Decorator
	cond func() bool
}

func NewRepeatUntil(name string, cond func() bool, priority ...int) *RepeatUntil {
	return &RepeatUntil{
		Decorator: Decorator{baseNode{name: name, priority: firstOrZero(priority)}},
		cond:      cond,
	}
}

func (r *RepeatUntil) Process() (Status, error) {
	if r.cond() {
		r.Reset()
		return StatusSuccess, nil
	}
	child, err := r.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	if status == StatusFailure {
		r.Reset()
		return StatusFailure, nil
	}
	return StatusRunning, nil
}

// Repeat runs its child a fixed number of times. Each completed child
// Success counts one repetition and reports Running; the transition to
// Success is observed on the next tick, when the counter check fires
// before the child runs. A child Failure aborts the whole repeat.
type Repeat struct {
	Decorator
	times int
	count int
}

func NewRepeat(name string, times int, priority ...int) *Repeat {
	return &Repeat{
		Decorator: Decorator{baseNode{name: name, priority: firstOrZero(priority)}},
		times:     times,
	}
}

func (r *Repeat) Process() (Status, error) {
	if r.count >= r.times {
		r.Reset()
		return StatusSuccess, nil
	}
	child, err := r.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	switch status {
	case StatusFailure:
		r.Reset()
		return StatusFailure, nil
	case StatusSuccess:
		r.count++
	}
	return StatusRunning, nil
}

// Reset rewinds the repetition counter along with the subtree.
func (r *Repeat) Reset() {
	r.Decorator.Reset()
	r.count = 0
}

// FailIf fails immediately, after a reset, whenever its condition
// holds; otherwise it forwards to the child untouched. Unlike its
// sibling loop decorators it does not reset after an ordinary terminal
// child outcome.
type FailIf struct {
	Decorator
	cond func() bool
}

func NewFailIf(name string, cond func() bool, priority ...int) *FailIf {
	return &FailIf{
		Decorator: Decorator{baseNode{name: name, priority: firstOrZero(priority)}},
		cond:      cond,
	}
}

func (f *FailIf) Process() (Status, error) {
	if f.cond() {
		f.Reset()
		return StatusFailure, nil
	}
	return f.Decorator.Process()
}

// SucceedIf is the mirror of FailIf: it short-circuits to Success,
// after a reset, whenever its condition holds, and forwards to the
// child untouched otherwise.
type SucceedIf struct {
	Decorator
	cond func() bool
}

func NewSucceedIf(name string, cond func() bool, priority ...int) *SucceedIf {
	return &SucceedIf{
		Decorator: Decorator{baseNode{name: name, priority: firstOrZero(priority)}},
		cond:      cond,
	}
}

func (s *SucceedIf) Process() (Status, error) {
	if s.cond() {
		s.Reset()
		return StatusSuccess, nil
	}
	return s.Decorator.Process()
}

// OrFail succeeds, after a reset, only when its child succeeds. Every
// other child outcome collapses into Failure, Running included: a
// multi-tick child wrapped in OrFail never gets to finish.
type OrFail struct {
	Decorator
}

func NewOrFail(name string, priority ...int) *OrFail {
	return &OrFail{Decorator{baseNode{name: name, priority: firstOrZero(priority)}}}
}

func (o *OrFail) Process() (Status, error) {
	child, err := o.child()
	if err != nil {
		return StatusFailure, err
	}
	status, err := child.Process()
	if err != nil {
		return StatusFailure, err
	}
	if status == StatusSuccess {
		o.Reset()
		return StatusSuccess, nil
	}
	return StatusFailure, nil
}

// IfOr holds exactly two children and re-evaluates its condition every
// tick, dispatching entirely to the first child when it holds and to
// the second otherwise. It keeps no resumption state of its own: if
// the condition flips while a branch is Running, the other branch
// starts from whatever state it was last left in and the abandoned
// branch is not reset.
type IfOr struct {
	baseNode
	cond func() bool
}

func NewIfOr(name string, cond func() bool, priority ...int) *IfOr {
	return &IfOr{
		baseNode: baseNode{name: name, priority: firstOrZero(priority)},
		cond:     cond,
	}
}

func (b *IfOr) AddChild(child Node) error {
	if len(b.children) >= 2 {
		return fmt.Errorf("ifor %q: %w", b.name, ErrChildren)
	}
	b.children = append(b.children, child)
	return nil
}

func (b *IfOr) Process() (Status, error) {
	if len(b.children) < 2 {
		return StatusFailure, fmt.Errorf("ifor %q: %w", b.name, ErrNoChild)
	}
	if b.cond() {
		return b.children[0].Process()
	}
	return b.children[1].Process()
}
