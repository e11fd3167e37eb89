package configuration

const (
	ForcingTypeConstant = "constant"
	ForcingTypeNormal   = "normal"
	// inflow is the outflow of another loop
	ForcingTypeLoop = "loop"
)

type LoopConfig struct {
	ID      string        `json:"id"`
	Process ProcessConfig `json:"process"`
	Forcing ForcingConfig `json:"forcing"`
	Control ControlConfig `json:"control"`
}

// ProcessConfig describes a gravity drained tank
type ProcessConfig struct {
	// cross-section of the tank [m^2]
	Area float64 `json:"area"`
	// fluid height at t=0 [m]
	InitialCondition float64 `json:"initialCondition"`
	// target fluid height [m]
	SetPoint float64 `json:"setPoint"`
}

type ForcingConfig struct {
	Type              string  `json:"type"`
	Mean              float64 `json:"mean"`
	StandardDeviation float64 `json:"standardDeviation"`
	Seed              int64   `json:"seed"`
	Loop              string  `json:"loop"`
}

type ControlConfig struct {
	// controller sample period [s]
	Delta         float64         `json:"delta"`
	HistoryLength int             `json:"historyLength"`
	Kp            CalculableFloat `json:"kp"`
	Ki            float64         `json:"ki"`
	Kd            float64         `json:"kd"`
	ControlBias   CalculableFloat `json:"controlBias"`
}
