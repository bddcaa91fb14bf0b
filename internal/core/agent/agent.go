package agent

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/behave/internal/core/bt"
	"github.com/zeusync/behave/internal/core/events"
	"github.com/zeusync/behave/internal/core/observability/log"
)

// Agent hosts one behaviour tree and drives it: it owns the tick
// serialization the engine itself does not provide, throttles ticks to
// an update rate, and reports outcomes to the log and the event bus.
type Agent struct {
	mu   sync.Mutex
	id   string
	name string
	tree *bt.Tree

	log log.Log
	bus *events.Bus

	active     bool
	updateRate time.Duration
	lastUpdate time.Time
	lastStatus bt.Status
	now        func() time.Time
}

type Option func(*Agent)

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l log.Log) Option { return func(a *Agent) { a.log = l } }

// WithBus publishes a TickEvent after every executed Step.
func WithBus(b *events.Bus) Option { return func(a *Agent) { a.bus = b } }

// WithUpdateRate throttles Step: calls arriving before the rate has
// elapsed return the previous status without ticking the tree.
func WithUpdateRate(d time.Duration) Option { return func(a *Agent) { a.updateRate = d } }

func New(name string, tree *bt.Tree, opts ...Option) *Agent {
	a := &Agent{
		id:         uuid.NewString(),
		name:       name,
		tree:       tree,
		log:        log.NewNop(),
		active:     true,
		lastStatus: bt.StatusRunning,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.With(log.String("agent", name), log.String("agent_id", a.id))
	return a
}

func (a *Agent) ID() string     { return a.id }
func (a *Agent) Name() string   { return a.name }
func (a *Agent) Tree() *bt.Tree { return a.tree }

func (a *Agent) IsActive() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *Agent) SetActive(active bool) {
	a.mu.Lock()
	a.active = active
	a.mu.Unlock()
}

// Step ticks the tree once. Ticks are serialized: the tree is only
// ever processed by one goroutine at a time.
func (a *Agent) Step(ctx context.Context) (bt.Status, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return a.lastStatus, err
	}
	if !a.active {
		return a.lastStatus, nil
	}
	now := a.now()
	if a.updateRate > 0 && now.Sub(a.lastUpdate) < a.updateRate {
		return a.lastStatus, nil
	}
	a.lastUpdate = now

	status, err := a.tree.Process()
	a.lastStatus = status
	if err != nil {
		a.log.Error("tick failed", log.Err(err))
	} else {
		a.log.Debug("tick completed", log.Stringer("status", status))
	}
	if a.bus != nil {
		a.bus.Publish(events.TickEvent{
			AgentID: a.id,
			Agent:   a.name,
			Tree:    a.tree.Name(),
			Status:  status,
			Err:     err,
			At:      now,
		})
	}
	return status, err
}

// Reset rewinds the tree to its initial state. The root runner never
// resets itself, so episode boundaries at the root are the host's job.
func (a *Agent) Reset() {
	a.mu.Lock()
	a.tree.Reset()
	a.lastStatus = bt.StatusRunning
	a.mu.Unlock()
}
