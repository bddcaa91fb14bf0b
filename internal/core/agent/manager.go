package agent

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/zeusync/behave/internal/core/observability/log"
)

// Manager tracks a set of agents and fans one update cycle out across
// them. The fan-out is across agents only; each agent still serializes
// its own ticks, so every tree keeps a single ticker.
type Manager struct {
	mu     sync.RWMutex
	agents map[string]*Agent
	log    log.Log
}

func NewManager(l log.Log) *Manager {
	if l == nil {
		l = log.NewNop()
	}
	return &Manager{agents: make(map[string]*Agent), log: l}
}

func (m *Manager) Add(a *Agent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.agents[a.ID()]; exists {
		return fmt.Errorf("agent %s already managed", a.ID())
	}
	m.agents[a.ID()] = a
	m.log.Info("agent added", log.String("agent", a.Name()), log.String("agent_id", a.ID()))
	return nil
}

func (m *Manager) Get(id string) (*Agent, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.agents[id]
	return a, ok
}

func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.agents[id]; !ok {
		return false
	}
	delete(m.agents, id)
	return true
}

func (m *Manager) Agents() []*Agent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	agents := make([]*Agent, 0, len(m.agents))
	for _, a := range m.agents {
		agents = append(agents, a)
	}
	return agents
}

// Update steps every active agent once, concurrently. The first
// structural fault cancels the cycle and is returned.
func (m *Manager) Update(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, a := range m.Agents() {
		a := a
		g.Go(func() error {
			_, err := a.Step(ctx)
			return err
		})
	}
	return g.Wait()
}
