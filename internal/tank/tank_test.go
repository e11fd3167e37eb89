package tank

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const delta = 1e-9

func TestStep_SteadyState(t *testing.T) {
	// GIVEN
	tank := New(5.0)
	qIn := 0.5
	hSp := 2.0
	aOut := ControlBias(qIn, hSp)

	// WHEN
	h := hSp
	for i := 0; i < 100; i++ {
		h = tank.Step(h, qIn, aOut, 1.0)
	}

	// THEN
	assert.InDelta(t, hSp, h, delta)
}

func TestStep_Inflow(t *testing.T) {
	// GIVEN
	tank := New(5.0)

	// WHEN
	h := tank.Step(1.0, 0.5, 0, 2.0)

	// THEN
	assert.InDelta(t, 1.2, h, delta)
}

func TestStep_Outflow(t *testing.T) {
	// GIVEN
	tank := New(2.0)
	c1 := math.Sqrt(2*Gravity) / 2.0

	// WHEN
	h := tank.Step(4.0, 0, 0.1, 1.0)

	// THEN
	assert.InDelta(t, 4.0-c1*0.1*2.0, h, delta)
}

func TestStep_NeverBelowDrain(t *testing.T) {
	// GIVEN
	tank := New(1.0)

	// WHEN
	h := tank.Step(0.01, 0, 10, 10)

	// THEN
	assert.Equal(t, 0.0, h)
}

func TestStep_NegativeOutletAreaIsClosed(t *testing.T) {
	// GIVEN
	tank := New(5.0)

	// WHEN
	closed := tank.Step(1.0, 0.5, 0, 1.0)
	negative := tank.Step(1.0, 0.5, -0.2, 1.0)

	// THEN
	assert.Equal(t, closed, negative)
}

func TestOutflow_MatchesControlBias(t *testing.T) {
	// GIVEN
	tank := New(5.0)
	qIn := 0.5
	hSp := 2.0

	// WHEN
	qOut := tank.Outflow(hSp, ControlBias(qIn, hSp))

	// THEN
	assert.InDelta(t, qIn, qOut, delta)
}

func TestSetPoint_InverseOfControlBias(t *testing.T) {
	// GIVEN
	qIn := 0.3
	hSp := 1.7

	// WHEN
	result, ok := SetPoint(qIn, ControlBias(qIn, hSp))

	// THEN
	assert.True(t, ok)
	assert.InDelta(t, hSp, result, delta)
}

func TestSetPoint_ClosedOutlet(t *testing.T) {
	for _, aOut := range []float64{0, -0.1} {
		// WHEN
		_, ok := SetPoint(0.5, aOut)

		// THEN
		assert.False(t, ok, "aOut: %v", aOut)
	}
}

func TestDCVdPV(t *testing.T) {
	// GIVEN
	qIn := 0.5
	hSp := 2.0
	h := 1e-6

	// WHEN
	result := DCVdPV(qIn, hSp)

	// THEN
	numeric := (ControlBias(qIn, hSp+h) - ControlBias(qIn, hSp-h)) / (2 * h)
	assert.Less(t, result, 0.0)
	assert.InDelta(t, numeric, result, 1e-6)
}

func TestTimeScales(t *testing.T) {
	// GIVEN
	tank := New(5.0)

	// WHEN
	scales := tank.TimeScales(0.5, 2.0, 0.1, 1.0)

	// THEN
	assert.InDelta(t, 10.0, scales.Fill, delta)
	assert.Greater(t, scales.Drain, 0.0)
	assert.InDelta(t, (0.5-0.1*math.Sqrt(2*Gravity))/5.0, scales.Net, delta)
}

func TestTimeScales_UndefinedAreZero(t *testing.T) {
	// GIVEN
	tank := New(5.0)

	for _, h := range []float64{2.0, 0.0} {
		// WHEN
		scales := tank.TimeScales(0.5, 2.0, 0.1, h)

		// THEN
		for _, value := range []float64{scales.Fill, scales.Drain, scales.Net} {
			assert.False(t, math.IsNaN(value), "h: %v", h)
			assert.False(t, math.IsInf(value, 0), "h: %v", h)
		}
	}

	// at the set point, nothing needs to be filled and the net rate is undefined
	scales := tank.TimeScales(0.5, 2.0, 0.1, 2.0)
	assert.Equal(t, 0.0, scales.Fill)
	assert.Equal(t, 0.0, scales.Net)
	assert.Greater(t, scales.Drain, 0.0)

	// an empty tank never drains
	scales = tank.TimeScales(0.5, 2.0, 0.1, 0.0)
	assert.Equal(t, 0.0, scales.Drain)
	assert.InDelta(t, 20.0, scales.Fill, delta)
}
