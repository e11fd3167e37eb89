package internal

import (
	"context"
	"time"

	"github.com/pidwin/pidwin/internal/loop"
	"github.com/pidwin/pidwin/internal/ui"
)

type SystemMonitor interface {
	Run(ctx context.Context) error
	GetSteps() int
}

type systemMonitor struct {
	system   *loop.System
	tickRate time.Duration
	steps    int
}

// NewSystemMonitor creates a monitor that advances the given system by one simulation step every tickRate
func NewSystemMonitor(system *loop.System, tickRate time.Duration) SystemMonitor {
	return &systemMonitor{
		system:   system,
		tickRate: tickRate,
	}
}

func (m *systemMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := m.system.Step(); err != nil {
				return err
			}
			m.steps++
			if ui.DebugEnabled() {
				logLoops(m.system)
			}
		}
	}
}

func logLoops(system *loop.System) {
	for _, l := range system.Loops() {
		snapshot := l.Snapshot()
		ui.Debug("Loop %s: t = %.1f  h = %f  control = %f  mean abs error = %f",
			snapshot.ID, snapshot.Time, snapshot.Height, snapshot.Control, snapshot.MeanAbsError)
	}
}

func (m *systemMonitor) GetSteps() int {
	return m.steps
}
