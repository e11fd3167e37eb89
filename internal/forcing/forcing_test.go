package forcing

import (
	"testing"

	"github.com/pidwin/pidwin/internal/configuration"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

type mockSource struct {
	outflow float64
	mean    float64
}

func (m *mockSource) LastOutflow() float64 {
	return m.outflow
}

func (m *mockSource) MeanInflow() float64 {
	return m.mean
}

func noSources(id string) (Source, bool) {
	return nil, false
}

func TestConstant(t *testing.T) {
	// GIVEN
	f := NewConstant(0.5)

	// THEN
	for i := 0; i < 3; i++ {
		assert.Equal(t, 0.5, f.Next())
	}
	assert.Equal(t, 0.5, f.Mean())
}

func TestNormal_Reproducible(t *testing.T) {
	// GIVEN
	a := NewNormal(0.5, 0.1, configuration.DefaultSeed)
	b := NewNormal(0.5, 0.1, configuration.DefaultSeed)

	// THEN
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNormal_Distribution(t *testing.T) {
	// GIVEN
	f := NewNormal(0.5, 0.1, 1)
	values := make([]float64, 20000)

	// WHEN
	for i := range values {
		values[i] = f.Next()
	}

	// THEN
	mean, std := stat.MeanStdDev(values, nil)
	assert.InDelta(t, 0.5, mean, 0.01)
	assert.InDelta(t, 0.1, std, 0.01)
	assert.Equal(t, 0.5, f.Mean())
}

func TestNormal_ZeroDeviationIsConstant(t *testing.T) {
	// GIVEN
	f := NewNormal(0.5, 0, 1)

	// THEN
	assert.Equal(t, 0.5, f.Next())
	assert.Equal(t, 0.5, f.Next())
}

func TestUpstream(t *testing.T) {
	// GIVEN
	source := &mockSource{outflow: 0.3, mean: 0.4}
	f := NewUpstream(source)

	// WHEN
	first := f.Next()
	source.outflow = 0.6
	second := f.Next()

	// THEN
	assert.Equal(t, 0.3, first)
	assert.Equal(t, 0.6, second)
	assert.Equal(t, 0.4, f.Mean())
}

func TestNew(t *testing.T) {
	// GIVEN
	source := &mockSource{outflow: 0.3, mean: 0.4}
	lookup := func(id string) (Source, bool) {
		if id == "upper" {
			return source, true
		}
		return nil, false
	}

	// WHEN
	constant, err1 := New(configuration.ForcingConfig{Type: configuration.ForcingTypeConstant, Mean: 1}, lookup)
	normal, err2 := New(configuration.ForcingConfig{Type: configuration.ForcingTypeNormal, Mean: 1, Seed: 3}, lookup)
	upstream, err3 := New(configuration.ForcingConfig{Type: configuration.ForcingTypeLoop, Loop: "upper"}, lookup)

	// THEN
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.NoError(t, err3)
	assert.IsType(t, &Constant{}, constant)
	assert.IsType(t, &Normal{}, normal)
	assert.IsType(t, &Upstream{}, upstream)
}

func TestNew_UnknownUpstream(t *testing.T) {
	// WHEN
	f, err := New(configuration.ForcingConfig{Type: configuration.ForcingTypeLoop, Loop: "upper"}, noSources)

	// THEN
	assert.Nil(t, f)
	assert.EqualError(t, err, "unknown upstream loop: upper")
}

func TestNew_UnknownType(t *testing.T) {
	// WHEN
	_, err := New(configuration.ForcingConfig{Type: "sine"}, noSources)

	// THEN
	assert.EqualError(t, err, "unknown forcing type: sine")
}
