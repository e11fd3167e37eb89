package tank

import (
	"math"
)

// Gravity is the gravitational acceleration [m/s^2]
const Gravity = 9.81

// Tank is a gravity drained tank. The fluid height h is governed by
//
//	A_r * dh/dt = Q_in - A_out * sqrt(2 * g * h)
//
// which is integrated with an explicit Euler step.
type Tank struct {
	// cross-section of the tank [m^2]
	Area float64
	c1   float64
}

func New(area float64) *Tank {
	return &Tank{
		Area: area,
		c1:   math.Sqrt(2.0*Gravity) / area,
	}
}

// Step advances the fluid height h by dt seconds with inflow qIn [m^3/s] and
// outlet area aOut [m^2]. A negative outlet area is treated as a closed valve.
func (t *Tank) Step(h float64, qIn float64, aOut float64, dt float64) float64 {
	next := h
	next += qIn * dt / t.Area                            // height added by inflow
	next -= t.c1 * dt * math.Max(aOut, 0) * math.Sqrt(h) // decreased by outflow

	// a gravity drained tank can't have a height below the drain
	if next < 0.0 {
		next = 0.0
	}
	return next
}

// Outflow returns the volumetric flow rate [m^3/s] through the outlet at height h
func (t *Tank) Outflow(h float64, aOut float64) float64 {
	return math.Max(aOut, 0) * math.Sqrt(2.0*Gravity*math.Max(h, 0))
}

// ControlBias returns the outlet area that keeps the height at hSp for a constant inflow qIn:
//
//	A_out = Q_in / sqrt(2*g*h)
func ControlBias(qIn float64, hSp float64) float64 {
	return qIn / math.Sqrt(2.0*Gravity*hSp)
}

// SetPoint returns the steady state height for a constant inflow qIn and outlet area aOut:
//
//	h = (Q_in / A_out)^2 / (2*g)
//
// A closed outlet (aOut <= 0) has no steady state, which is reported with ok = false.
func SetPoint(qIn float64, aOut float64) (h float64, ok bool) {
	if aOut <= 0 {
		return 0, false
	}
	return math.Pow(qIn/aOut, 2) / (2.0 * Gravity), true
}

// DCVdPV returns dA/dh at the steady state around hSp, which can be used as an
// approximation for Kp:
//
//	dA/dh = (-Q_in/2) * sqrt(1 / (2*g*h^3))
func DCVdPV(qIn float64, hSp float64) float64 {
	return (-qIn / 2.0) * math.Sqrt(1.0/(2*Gravity*math.Pow(hSp, 3)))
}

type TimeScales struct {
	Fill  float64 `json:"fill"`
	Drain float64 `json:"drain"`
	Net   float64 `json:"net"`
}

// TimeScales estimates the time scales of the problem:
//
//	time to fill  = A_r * (h_sp - h) / Q_in
//	time to drain = (A_r / A_out) * sqrt(h_sp^2 / (2*g*h))
//	net           = (Q_in - Q_out) / (A_r * (h_sp - h))
//
// A time scale that is undefined at the given state (e.g. h = h_sp, or an
// empty tank) is reported as 0.
func (t *Tank) TimeScales(qIn float64, hSp float64, aOut float64, h float64) TimeScales {
	return TimeScales{
		Fill:  finite(t.Area * (hSp - h) / qIn),
		Drain: finite((t.Area / aOut) * math.Sqrt(math.Pow(hSp, 2)/(2.0*Gravity*h))),
		Net:   finite((qIn - aOut*math.Sqrt(2.0*Gravity*h)) / (t.Area * (hSp - h))),
	}
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
