package forcing

import (
	"fmt"
	"math/rand"

	"github.com/pidwin/pidwin/internal/configuration"
)

// Forcing generates the inflow of a tank, one value per simulation step.
type Forcing interface {
	// Next returns the inflow [m^3/s] for the next simulation step
	Next() float64
	// Mean returns the steady state inflow [m^3/s]
	Mean() float64
}

// Source is the upstream end of a Upstream forcing, i.e. another tank.
type Source interface {
	// LastOutflow returns the outflow [m^3/s] of the most recent step
	LastOutflow() float64
	// MeanInflow returns the steady state inflow [m^3/s], which equals
	// the steady state outflow
	MeanInflow() float64
}

// New creates the forcing described by config. lookup is used to resolve
// the source of upstream forcings.
func New(config configuration.ForcingConfig, lookup func(id string) (Source, bool)) (Forcing, error) {
	switch config.Type {
	case configuration.ForcingTypeConstant:
		return NewConstant(config.Mean), nil
	case configuration.ForcingTypeNormal:
		return NewNormal(config.Mean, config.StandardDeviation, config.Seed), nil
	case configuration.ForcingTypeLoop:
		source, ok := lookup(config.Loop)
		if !ok {
			return nil, fmt.Errorf("unknown upstream loop: %s", config.Loop)
		}
		return NewUpstream(source), nil
	default:
		return nil, fmt.Errorf("unknown forcing type: %s", config.Type)
	}
}

type Constant struct {
	mean float64
}

func NewConstant(mean float64) *Constant {
	return &Constant{mean: mean}
}

func (c *Constant) Next() float64 {
	return c.mean
}

func (c *Constant) Mean() float64 {
	return c.mean
}

// Normal draws the inflow from a normal distribution. The sequence is
// reproducible for a given seed.
type Normal struct {
	mean              float64
	standardDeviation float64
	rand              *rand.Rand
}

func NewNormal(mean float64, standardDeviation float64, seed int64) *Normal {
	return &Normal{
		mean:              mean,
		standardDeviation: standardDeviation,
		rand:              rand.New(rand.NewSource(seed)),
	}
}

func (n *Normal) Next() float64 {
	return n.mean + n.standardDeviation*n.rand.NormFloat64()
}

func (n *Normal) Mean() float64 {
	return n.mean
}

// Upstream uses the outflow of another tank as inflow.
type Upstream struct {
	source Source
}

func NewUpstream(source Source) *Upstream {
	return &Upstream{source: source}
}

func (u *Upstream) Next() float64 {
	return u.source.LastOutflow()
}

func (u *Upstream) Mean() float64 {
	return u.source.MeanInflow()
}
