package simulation

import (
	"gonum.org/v1/gonum/stat"
)

// Summary describes the final state of a single loop
type Summary struct {
	LoopId string

	Uncontrolled      float64
	UncontrolledError float64
	// steady state height without control, nil if there is none
	SteadyState *float64

	Controlled      float64
	ControlledError float64

	Control          float64
	ControlDeviation float64

	// mean and standard deviation of the tracking error (pv - sp) with control
	MeanError              float64
	ErrorStandardDeviation float64
}

func (s *Series) Summary() Summary {
	last := len(s.Time) - 1

	deviations := make([]float64, len(s.Controlled))
	for i, value := range s.Controlled {
		deviations[i] = value - s.SetPoint
	}
	mean, std := stat.MeanStdDev(deviations, nil)

	return Summary{
		LoopId:                 s.LoopId,
		Uncontrolled:           s.Uncontrolled[last],
		UncontrolledError:      s.Uncontrolled[last] - s.SetPoint,
		SteadyState:            s.SteadyState,
		Controlled:             s.Controlled[last],
		ControlledError:        s.Controlled[last] - s.SetPoint,
		Control:                s.Control[last],
		ControlDeviation:       s.Control[last] - s.ControlBias,
		MeanError:              mean,
		ErrorStandardDeviation: std,
	}
}

func (r *Result) Summaries() []Summary {
	var result []Summary
	for i := range r.Series {
		result = append(result, r.Series[i].Summary())
	}
	return result
}
