package configuration

import (
	"errors"
	"fmt"
	"github.com/looplab/tarjan"
	"golang.org/x/exp/slices"
	"math"
	"strings"
)

const maxHistoryLength = math.MaxUint8

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateTime(config)
	if err != nil {
		return err
	}
	return validateLoops(config)
}

func validateTime(config *Configuration) error {
	if config.Time.Delta <= 0 {
		return errors.New("time: delta must be > 0")
	}
	if config.Time.Max < config.Time.Delta {
		return errors.New("time: max must be >= delta")
	}
	if config.TickRate < 0 {
		return errors.New("tickRate must not be negative")
	}
	return nil
}

func validateLoops(config *Configuration) error {
	if len(config.Loops) <= 0 {
		return errors.New("no loops configured")
	}

	graph := make(map[interface{}][]interface{})
	var loopIds []string

	for _, loopConfig := range config.Loops {
		if len(loopConfig.ID) <= 0 {
			return errors.New("loop id must not be empty")
		}
		if slices.Contains(loopIds, loopConfig.ID) {
			return fmt.Errorf("duplicate loop id detected: %s", loopConfig.ID)
		}
		loopIds = append(loopIds, loopConfig.ID)

		err := validateProcess(loopConfig)
		if err != nil {
			return err
		}
		err = validateControl(loopConfig, config.Time)
		if err != nil {
			return err
		}

		var connections []interface{}
		forcing := loopConfig.Forcing
		supportedTypes := []string{ForcingTypeConstant, ForcingTypeNormal, ForcingTypeLoop}
		if !slices.Contains(supportedTypes, forcing.Type) {
			return fmt.Errorf("Loop %s: unsupported forcing type '%s', use one of: %s", loopConfig.ID, forcing.Type, strings.Join(supportedTypes, " | "))
		}

		switch forcing.Type {
		case ForcingTypeConstant:
			if forcing.Mean < 0 {
				return fmt.Errorf("Loop %s: forcing mean must not be negative", loopConfig.ID)
			}
		case ForcingTypeNormal:
			if forcing.Mean < 0 {
				return fmt.Errorf("Loop %s: forcing mean must not be negative", loopConfig.ID)
			}
			if forcing.StandardDeviation < 0 {
				return fmt.Errorf("Loop %s: forcing standardDeviation must not be negative", loopConfig.ID)
			}
		case ForcingTypeLoop:
			if len(forcing.Loop) <= 0 {
				return fmt.Errorf("Loop %s: missing upstream loop id", loopConfig.ID)
			}
			if forcing.Loop == loopConfig.ID {
				return fmt.Errorf("Loop %s: a loop cannot reference itself", loopConfig.ID)
			}
			if !loopIdExists(forcing.Loop, config) {
				return fmt.Errorf("Loop %s: no loop definition with id '%s' found", loopConfig.ID, forcing.Loop)
			}
			connections = append(connections, forcing.Loop)
		}
		graph[loopConfig.ID] = connections
	}

	return validateNoCycles(graph)
}

func validateProcess(loopConfig LoopConfig) error {
	process := loopConfig.Process
	if process.Area <= 0 {
		return fmt.Errorf("Loop %s: tank area must be > 0", loopConfig.ID)
	}
	if process.SetPoint <= 0 {
		return fmt.Errorf("Loop %s: set point must be > 0", loopConfig.ID)
	}
	if process.InitialCondition < 0 {
		return fmt.Errorf("Loop %s: initial condition must not be negative", loopConfig.ID)
	}
	return nil
}

func validateControl(loopConfig LoopConfig, timeConfig TimeConfig) error {
	control := loopConfig.Control
	if control.HistoryLength < 1 || control.HistoryLength > maxHistoryLength {
		return fmt.Errorf("Loop %s: historyLength must be in range 1..%d", loopConfig.ID, maxHistoryLength)
	}
	if control.Delta < timeConfig.Delta {
		return fmt.Errorf("Loop %s: control delta must be >= time delta", loopConfig.ID)
	}
	if !control.Kp.Calculate && control.Kp.Value < 0 {
		return fmt.Errorf("Loop %s: Kp must not be negative", loopConfig.ID)
	}
	if control.Ki < 0 {
		return fmt.Errorf("Loop %s: Ki must not be negative", loopConfig.ID)
	}
	if control.Kd < 0 {
		return fmt.Errorf("Loop %s: Kd must not be negative", loopConfig.ID)
	}
	if !control.Kp.Calculate && control.Kp.Value == 0 && control.Ki == 0 && control.Kd == 0 {
		return fmt.Errorf("Loop %s: all PID constants are zero", loopConfig.ID)
	}
	if !control.ControlBias.Calculate && control.ControlBias.Value < 0 {
		return fmt.Errorf("Loop %s: controlBias must not be negative", loopConfig.ID)
	}
	return nil
}

func loopIdExists(loopId string, config *Configuration) bool {
	for _, loop := range config.Loops {
		if loop.ID == loopId {
			return true
		}
	}

	return false
}

func validateNoCycles(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("You have created a loop dependency cycle: %v", items)
		}
	}
	return nil
}

// LoopOrder returns the ids of the given loops, ordered so that every loop comes
// after the loop that feeds its inflow. The loops must be free of cycles.
func LoopOrder(loops []LoopConfig) []string {
	graph := make(map[interface{}][]interface{})
	for _, loopConfig := range loops {
		var connections []interface{}
		if loopConfig.Forcing.Type == ForcingTypeLoop {
			connections = append(connections, loopConfig.Forcing.Loop)
		}
		graph[loopConfig.ID] = connections
	}

	// tarjan emits a component only after everything reachable from it,
	// i.e. upstream loops come first
	var result []string
	for _, items := range tarjan.Connections(graph) {
		for _, item := range items {
			result = append(result, item.(string))
		}
	}
	return result
}
