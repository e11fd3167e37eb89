package testingutils

import (
	"time"

	"github.com/pidwin/pidwin/internal/configuration"
)

// CreateLoopConfig returns a tank with an area of 5 m^2 and a constant inflow
// of 0.5 m^3/s, with calculated Kp and control bias.
func CreateLoopConfig(id string, initialCondition float64, setPoint float64, controlDelta float64) configuration.LoopConfig {
	return configuration.LoopConfig{
		ID: id,
		Process: configuration.ProcessConfig{
			Area:             5,
			InitialCondition: initialCondition,
			SetPoint:         setPoint,
		},
		Forcing: configuration.ForcingConfig{
			Type: configuration.ForcingTypeConstant,
			Mean: 0.5,
		},
		Control: configuration.ControlConfig{
			Delta:         controlDelta,
			HistoryLength: configuration.DefaultHistoryLength,
			Kp:            configuration.Calculated(),
			ControlBias:   configuration.Calculated(),
		},
	}
}

// CreateConfig returns a configuration with a simulation step of 1 s
func CreateConfig(timeMax float64, loops ...configuration.LoopConfig) configuration.Configuration {
	return configuration.Configuration{
		TickRate: time.Millisecond,
		Time: configuration.TimeConfig{
			Delta: 1,
			Max:   timeMax,
		},
		Loops: loops,
	}
}
