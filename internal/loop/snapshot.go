package loop

import (
	"github.com/pidwin/pidwin/internal/util"
	"github.com/pidwin/pidwin/pid"
)

type ControllerSnapshot struct {
	HistoryLength uint8       `json:"historyLength"`
	Kp            float32     `json:"kp"`
	Ki            float32     `json:"ki"`
	Kd            float32     `json:"kd"`
	Updates       int         `json:"updates"`
	Last          *pid.Sample `json:"last,omitempty"`
}

// Snapshot is a consistent copy of the state of a Loop.
type Snapshot struct {
	ID          string  `json:"id"`
	Step        int     `json:"step"`
	Time        float64 `json:"time"`
	Height      float64 `json:"height"`
	SetPoint    float64 `json:"setPoint"`
	Control     float64 `json:"control"`
	ControlBias float64 `json:"controlBias"`
	Inflow      float64 `json:"inflow"`
	Outflow     float64 `json:"outflow"`
	// mean absolute tracking error over the integral window of the controller
	MeanAbsError float64 `json:"meanAbsError"`

	Controller *ControllerSnapshot `json:"controller,omitempty"`
}

func (l *Loop) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	snapshot := Snapshot{
		ID:           l.config.ID,
		Step:         l.step,
		Time:         float64(l.step) * l.dt,
		Height:       l.height,
		SetPoint:     l.config.Process.SetPoint,
		Control:      l.control,
		ControlBias:  l.bias,
		Inflow:       l.inflow,
		Outflow:      l.outflow,
		MeanAbsError: util.GetWindowAvg(l.errorWindow),
	}

	if l.controller != nil {
		controller := &ControllerSnapshot{
			HistoryLength: l.controller.HistoryLength(),
			Kp:            l.controller.Kp(),
			Ki:            l.controller.Ki(),
			Kd:            l.controller.Kd(),
			Updates:       l.updates,
		}
		if l.lastSample != nil {
			last := *l.lastSample
			controller.Last = &last
		}
		snapshot.Controller = controller
	}

	return snapshot
}
