package bt

// Shared test fixtures.

// scripted is a terminal node that replays a fixed status script, one
// entry per Process call, holding the last entry once the script is
// exhausted. It records resets and can log the processing order into a
// shared trace.
type scripted struct {
	name     string
	priority int
	script   []Status
	step     int
	resets   int
	trace    *[]string
}

func leafOf(name string, script ...Status) *scripted {
	return &scripted{name: name, script: script}
}

func (s *scripted) Name() string  { return s.name }
func (s *scripted) Priority() int { return s.priority }

func (s *scripted) AddChild(Node) error { return ErrChildren }

func (s *scripted) Process() (Status, error) {
	if s.trace != nil {
		*s.trace = append(*s.trace, s.name)
	}
	i := s.step
	if i >= len(s.script) {
		i = len(s.script) - 1
	}
	s.step++
	return s.script[i], nil
}

func (s *scripted) Reset() {
	s.resets++
	s.step = 0
}

// drive ticks a node until it reports a terminal status, with a guard
// against trees that never resolve.
func drive(n Node, maxTicks int) (Status, int) {
	for tick := 1; tick <= maxTicks; tick++ {
		status, err := n.Process()
		if err != nil {
			panic(err)
		}
		if status != StatusRunning {
			return status, tick
		}
	}
	return StatusRunning, maxTicks
}
