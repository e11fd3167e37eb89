package loop

import (
	"fmt"
	"math"
	"sync"

	"github.com/asecurityteam/rolling"
	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/forcing"
	"github.com/pidwin/pidwin/internal/tank"
	"github.com/pidwin/pidwin/internal/ui"
	"github.com/pidwin/pidwin/internal/util"
	"github.com/pidwin/pidwin/pid"
)

// Loop is a single tank whose outlet area is (optionally) driven by a PID controller.
type Loop struct {
	mu sync.RWMutex

	config  configuration.LoopConfig
	tank    *tank.Tank
	forcing forcing.Forcing

	// nil if the loop runs without control
	controller *pid.Controller

	// simulation step [s]
	dt float64
	// number of simulation steps between two controller updates
	interval int
	bias     float64
	kp       float64

	step    int
	height  float64
	control float64
	inflow  float64
	outflow float64

	lastSample  *pid.Sample
	updates     int
	errorWindow *rolling.PointPolicy
}

// New creates a loop. The forcing is created by the caller, since it may depend on other loops.
func New(config configuration.LoopConfig, dt float64, f forcing.Forcing, controlled bool) (*Loop, error) {
	l := &Loop{
		config:   config,
		tank:     tank.New(config.Process.Area),
		forcing:  f,
		dt:       dt,
		interval: util.StepsPerInterval(config.Control.Delta, dt),
		height:   config.Process.InitialCondition,
	}

	setPoint := config.Process.SetPoint
	l.bias = config.Control.ControlBias.Resolve(func() float64 {
		return tank.ControlBias(f.Mean(), setPoint)
	})
	l.kp = config.Control.Kp.Resolve(func() float64 {
		// by definition gains must be positive
		return math.Abs(tank.DCVdPV(f.Mean(), setPoint))
	})
	l.control = l.bias
	l.errorWindow = util.CreateRollingWindow(max(1, l.interval*config.Control.HistoryLength))

	if controlled {
		if config.Control.HistoryLength < 1 || config.Control.HistoryLength > math.MaxUint8 {
			return nil, fmt.Errorf("loop %s: invalid history length %d", config.ID, config.Control.HistoryLength)
		}
		controller, err := pid.New(
			uint8(config.Control.HistoryLength),
			float32(setPoint),
			float32(l.kp),
			float32(config.Control.Ki),
			float32(config.Control.Kd),
			pid.WithObserver(pid.ObserverFunc(l.observe)),
		)
		if err != nil {
			return nil, fmt.Errorf("loop %s: %w", config.ID, err)
		}
		l.controller = controller
	}

	return l, nil
}

// observe is called by the controller while l.mu is held by Step
func (l *Loop) observe(sample pid.Sample) {
	l.lastSample = &sample
	l.updates++
	if ui.DebugEnabled() {
		ui.Debug(
			"Loop %s: error = %f  hist_error = %f  hist_integral = %f  integral = %f  derivative = %f  output = %f",
			l.config.ID, sample.Error, sample.HistError, sample.HistIntegral, sample.Integral, sample.Derivative, sample.Output,
		)
	}
}

// Step advances the loop by one simulation step. The controller is updated
// every interval steps, with the time that passed since its last update.
func (l *Loop) Step() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	qIn := l.forcing.Next()
	previous := l.height
	l.height = l.tank.Step(previous, qIn, l.control, l.dt)
	l.inflow = qIn
	l.outflow = l.tank.Outflow(previous, l.control)
	l.step++

	if l.controller != nil && l.step%l.interval == 0 {
		sampleTime := float64(l.interval) * l.dt
		output, err := l.controller.Update(float32(l.height), float32(sampleTime))
		if err != nil {
			return fmt.Errorf("loop %s: %w", l.config.ID, err)
		}
		l.control = l.bias - float64(output)
	}

	l.errorWindow.Append(math.Abs(l.config.Process.SetPoint - l.height))
	return nil
}

// Release releases the controller of this loop, if any.
func (l *Loop) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.controller.Release()
}

func (l *Loop) GetId() string {
	return l.config.ID
}

func (l *Loop) GetConfig() configuration.LoopConfig {
	return l.config
}

func (l *Loop) Controlled() bool {
	return l.controller != nil
}

func (l *Loop) ControlBias() float64 {
	return l.bias
}

func (l *Loop) Kp() float64 {
	return l.kp
}

// Interval returns the number of simulation steps between two controller updates
func (l *Loop) Interval() int {
	return l.interval
}

func (l *Loop) Height() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.height
}

func (l *Loop) Control() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.control
}

func (l *Loop) Inflow() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inflow
}

// LastOutflow implements forcing.Source
func (l *Loop) LastOutflow() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.outflow
}

// MeanInflow implements forcing.Source
func (l *Loop) MeanInflow() float64 {
	return l.forcing.Mean()
}

// TimeScales estimates the time scales of this loop at its current state
func (l *Loop) TimeScales() tank.TimeScales {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tank.TimeScales(l.forcing.Mean(), l.config.Process.SetPoint, l.bias, l.height)
}
