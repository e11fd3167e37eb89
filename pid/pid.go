package pid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidHistoryLength = errors.New("history length must be at least 1")
	ErrNegativeGain         = errors.New("gains must be non-negative")
	ErrInvalidDeltaTime     = errors.New("delta time must be a finite value > 0")
	ErrReleased             = errors.New("controller has been released")
)

// Controller is a single precision PID controller with a sliding window integral.
//
// The output is calculated as:
//
//	e(t)  = SP - PV(t)
//	C(t)  = Kp * e(t) + Ki * Integral[t-H, t](e * dt) + Kd * (PV(t) - PV(t-H)) / dt
//
// where H is the history length. The integral only covers the last H samples and is
// maintained incrementally: every update evicts the oldest sample from the window and adds
// the current one. The derivative is based on the process value instead of the error, so a
// change of the set point does not cause a derivative kick.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	setpoint float32
	kp       float32
	ki       float32
	kd       float32

	historyLength uint8
	// index of the oldest slot, i.e. the next one to be overwritten
	current uint8
	// circular buffers of previous process values and their sample intervals
	history  []float32
	interval []float32
	integral float32

	observer Observer
	released bool
}

type Option func(c *Controller)

// WithObserver registers an Observer that is notified after every successful Update.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// New creates a Controller with the given window size, set point and gains.
// All history slots start at the set point, which represents perfect control
// and an empty integral.
func New(historyLength uint8, setpoint, kp, ki, kd float32, opts ...Option) (*Controller, error) {
	if historyLength < 1 {
		return nil, ErrInvalidHistoryLength
	}
	if err := checkGain("Kp", kp); err != nil {
		return nil, err
	}
	if err := checkGain("Ki", ki); err != nil {
		return nil, err
	}
	if err := checkGain("Kd", kd); err != nil {
		return nil, err
	}

	c := &Controller{
		setpoint:      setpoint,
		kp:            kp,
		ki:            ki,
		kd:            kd,
		historyLength: historyLength,
		history:       make([]float32, historyLength),
		interval:      make([]float32, historyLength),
	}
	for _, opt := range opts {
		opt(c)
	}

	for i := range c.history {
		c.history[i] = setpoint
		c.interval[i] = 1.0
		c.integral += (c.setpoint - c.history[i]) * c.interval[i]
	}

	return c, nil
}

// MustNew is like New but panics if the parameters violate the controller contract.
func MustNew(historyLength uint8, setpoint, kp, ki, kd float32, opts ...Option) *Controller {
	c, err := New(historyLength, setpoint, kp, ki, kd, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func checkGain(name string, value float32) error {
	if value < 0 || math.IsNaN(float64(value)) {
		return fmt.Errorf("%w: %s = %v", ErrNegativeGain, name, value)
	}
	return nil
}

// Update calculates the control output for the given process value, sampled deltaTime
// after the previous one. The output is not clamped.
func (c *Controller) Update(processValue float32, deltaTime float32) (float32, error) {
	if c.released {
		return 0, ErrReleased
	}
	dt := float64(deltaTime)
	if !(dt > 0) || math.IsInf(dt, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDeltaTime, deltaTime)
	}

	e := c.setpoint - processValue

	// time index t-H, where the current time is t
	tmh := c.current

	// remove the contribution of the oldest sample from the integral
	// and add the current one
	histError := c.setpoint - c.history[tmh]
	histIntegral := histError * c.interval[tmh]
	c.integral -= histIntegral
	c.integral += e * deltaTime

	derivative := (processValue - c.history[tmh]) / deltaTime

	output := c.kp*e + c.ki*c.integral + c.kd*derivative

	c.history[tmh] = processValue
	c.interval[tmh] = deltaTime
	c.current = (tmh + 1) % c.historyLength

	if c.observer != nil {
		c.observer.Observe(Sample{
			ProcessValue: processValue,
			DeltaTime:    deltaTime,
			Error:        e,
			HistError:    histError,
			HistIntegral: histIntegral,
			Integral:     c.integral,
			Derivative:   derivative,
			Output:       output,
		})
	}

	return output, nil
}

// Release drops the history buffers. Any further Update returns ErrReleased.
// Releasing a nil or already released controller is a no-op.
func (c *Controller) Release() {
	if c == nil || c.released {
		return
	}
	c.history = nil
	c.interval = nil
	c.integral = 0
	c.current = 0
	c.released = true
}

// Released reports whether Release has been called. A nil controller counts as released.
func (c *Controller) Released() bool {
	return c == nil || c.released
}

func (c *Controller) HistoryLength() uint8 {
	return c.historyLength
}

func (c *Controller) Setpoint() float32 {
	return c.setpoint
}

func (c *Controller) Kp() float32 {
	return c.kp
}

func (c *Controller) Ki() float32 {
	return c.ki
}

func (c *Controller) Kd() float32 {
	return c.kd
}
