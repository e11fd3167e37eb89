package loop

import (
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/forcing"
)

var (
	// LoopMap holds the loops of the running system
	LoopMap = cmap.New[*Loop]()
)

// System is a set of loops that are stepped together. Loops that feed the
// inflow of other loops are stepped first.
type System struct {
	loops []*Loop
	order []*Loop
}

// NewSystem creates all loops of the given configuration, either all with or all without control.
func NewSystem(config configuration.Configuration, controlled bool) (*System, error) {
	byId := map[string]*Loop{}
	lookup := func(id string) (forcing.Source, bool) {
		l, ok := byId[id]
		return l, ok
	}

	configs := map[string]configuration.LoopConfig{}
	for _, loopConfig := range config.Loops {
		configs[loopConfig.ID] = loopConfig
	}

	s := &System{}
	for _, id := range configuration.LoopOrder(config.Loops) {
		loopConfig, ok := configs[id]
		if !ok {
			// referenced as upstream loop, but not configured
			continue
		}
		f, err := forcing.New(loopConfig.Forcing, lookup)
		if err != nil {
			return nil, fmt.Errorf("loop %s: %w", id, err)
		}
		l, err := New(loopConfig, config.Time.Delta, f, controlled)
		if err != nil {
			return nil, err
		}
		byId[id] = l
		s.order = append(s.order, l)
	}

	for _, loopConfig := range config.Loops {
		s.loops = append(s.loops, byId[loopConfig.ID])
	}

	return s, nil
}

// Step advances all loops by one simulation step
func (s *System) Step() error {
	for _, l := range s.order {
		if err := l.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Loops returns all loops in configuration order
func (s *System) Loops() []*Loop {
	return s.loops
}

func (s *System) Loop(id string) (*Loop, bool) {
	for _, l := range s.loops {
		if l.GetId() == id {
			return l, true
		}
	}
	return nil, false
}

// Register makes the loops of this system available in LoopMap
func (s *System) Register() {
	for _, l := range s.loops {
		LoopMap.Set(l.GetId(), l)
	}
}

// Release releases all controllers of this system and removes its loops from LoopMap
func (s *System) Release() {
	for _, l := range s.loops {
		l.Release()
		LoopMap.RemoveCb(l.GetId(), func(key string, v *Loop, exists bool) bool {
			return exists && v == l
		})
	}
}
