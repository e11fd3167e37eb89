package statistics

import (
	"testing"

	"github.com/pidwin/pidwin/internal/loop"
	"github.com/pidwin/pidwin/internal/testingutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createSystem(t *testing.T, controlled bool) *loop.System {
	config := testingutils.CreateConfig(10, testingutils.CreateLoopConfig("tank", 0.5, 1, 1))
	system, err := loop.NewSystem(config, controlled)
	require.NoError(t, err)
	return system
}

func gather(t *testing.T, collector prometheus.Collector) map[string]float64 {
	registry := prometheus.NewPedanticRegistry()
	require.NoError(t, registry.Register(collector))
	families, err := registry.Gather()
	require.NoError(t, err)

	result := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			value := metric.GetGauge().GetValue()
			if metric.GetCounter() != nil {
				value = metric.GetCounter().GetValue()
			}
			result[family.GetName()] = value
		}
	}
	return result
}

func TestLoopCollector_Controlled(t *testing.T) {
	// GIVEN
	system := createSystem(t, true)
	for i := 0; i < 3; i++ {
		require.NoError(t, system.Step())
	}
	snapshot := system.Loops()[0].Snapshot()

	// WHEN
	metrics := gather(t, NewLoopCollector(system.Loops()))

	// THEN
	assert.Len(t, metrics, 9)
	assert.Equal(t, snapshot.Height, metrics["pidwin_loop_process_value"])
	assert.Equal(t, 1.0, metrics["pidwin_loop_set_point"])
	assert.Equal(t, snapshot.Control, metrics["pidwin_loop_control"])
	assert.Equal(t, 3.0, metrics["pidwin_loop_controller_updates"])
	assert.Equal(t, float64(snapshot.Controller.Last.Output), metrics["pidwin_loop_controller_output"])
}

func TestLoopCollector_Uncontrolled(t *testing.T) {
	// GIVEN
	system := createSystem(t, false)
	require.NoError(t, system.Step())

	// WHEN
	metrics := gather(t, NewLoopCollector(system.Loops()))

	// THEN
	assert.Len(t, metrics, 4)
	assert.NotContains(t, metrics, "pidwin_loop_controller_updates")
}
