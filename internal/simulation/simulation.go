package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/pidwin/pidwin/internal/loop"
	"github.com/pidwin/pidwin/internal/tank"
	"github.com/pidwin/pidwin/internal/ui"
)

const runIdLayout = "20060102-150405.000"

// Series holds the recorded time series of a single loop
type Series struct {
	LoopId      string  `json:"loopId"`
	SetPoint    float64 `json:"setPoint"`
	ControlBias float64 `json:"controlBias"`
	Kp          float64 `json:"kp"`
	ForcingMean float64 `json:"forcingMean"`
	// height the tank settles at without control, nil for a closed outlet
	SteadyState *float64 `json:"steadyState,omitempty"`
	// number of simulation steps between two controller updates
	ControlInterval int             `json:"controlInterval"`
	TimeScales      tank.TimeScales `json:"timeScales"`

	Time         []float64 `json:"time"`
	Uncontrolled []float64 `json:"uncontrolled"`
	Controlled   []float64 `json:"controlled"`
	Control      []float64 `json:"control"`
	Forcing      []float64 `json:"forcing"`
}

// Result of a batch simulation
type Result struct {
	Id        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	TimeDelta float64   `json:"timeDelta"`
	TimeMax   float64   `json:"timeMax"`
	Series    []Series  `json:"series"`
}

func (r *Result) GetSeries(loopId string) (*Series, bool) {
	for i := range r.Series {
		if r.Series[i].LoopId == loopId {
			return &r.Series[i], true
		}
	}
	return nil, false
}

// StepCount returns the number of recorded points, including the initial condition
func StepCount(config configuration.TimeConfig) int {
	return int(math.Ceil(config.Max/config.Delta - 1e-9))
}

// Run simulates all configured loops twice, once without and once with control.
func Run(config configuration.Configuration) (*Result, error) {
	points := StepCount(config.Time)
	if points < 1 {
		return nil, fmt.Errorf("simulation time %v is shorter than a single step of %v", config.Time.Max, config.Time.Delta)
	}

	uncontrolled, err := loop.NewSystem(config, false)
	if err != nil {
		return nil, err
	}
	defer uncontrolled.Release()

	controlled, err := loop.NewSystem(config, true)
	if err != nil {
		return nil, err
	}
	defer controlled.Release()

	now := time.Now()
	result := &Result{
		Id:        now.UTC().Format(runIdLayout),
		CreatedAt: now,
		TimeDelta: config.Time.Delta,
		TimeMax:   config.Time.Max,
	}

	for _, l := range controlled.Loops() {
		ui.Debug(
			"Loop %s: control interval = %d [time steps], control bias = %f, Kp = %f",
			l.GetId(), l.Interval(), l.ControlBias(), l.Kp(),
		)
		series := Series{
			LoopId:          l.GetId(),
			SetPoint:        l.GetConfig().Process.SetPoint,
			ControlBias:     l.ControlBias(),
			Kp:              l.Kp(),
			ForcingMean:     l.MeanInflow(),
			ControlInterval: l.Interval(),
			TimeScales:      l.TimeScales(),
			Time:            make([]float64, points),
			Uncontrolled:    make([]float64, points),
			Controlled:      make([]float64, points),
			Control:         make([]float64, points),
			Forcing:         make([]float64, points),
		}
		if steadyState, ok := tank.SetPoint(series.ForcingMean, series.ControlBias); ok {
			series.SteadyState = &steadyState
		}
		series.Uncontrolled[0] = l.Height()
		series.Controlled[0] = l.Height()
		series.Control[0] = l.Control()
		series.Forcing[0] = l.MeanInflow()
		result.Series = append(result.Series, series)
	}

	for t := 1; t < points; t++ {
		if err := uncontrolled.Step(); err != nil {
			return nil, err
		}
		if err := controlled.Step(); err != nil {
			return nil, err
		}

		for i := range result.Series {
			series := &result.Series[i]
			withControl := controlled.Loops()[i]
			withoutControl := uncontrolled.Loops()[i]

			series.Time[t] = float64(t) * config.Time.Delta
			series.Uncontrolled[t] = withoutControl.Height()
			series.Controlled[t] = withControl.Height()
			series.Control[t] = withControl.Control()
			series.Forcing[t] = withControl.Inflow()
		}
	}

	return result, nil
}
