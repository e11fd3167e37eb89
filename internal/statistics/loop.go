package statistics

import (
	"github.com/pidwin/pidwin/internal/loop"
	"github.com/prometheus/client_golang/prometheus"
)

const loopSubsystem = "loop"

type LoopCollector struct {
	loops []*loop.Loop

	processValue *prometheus.Desc
	setPoint     *prometheus.Desc
	control      *prometheus.Desc
	meanAbsError *prometheus.Desc

	output     *prometheus.Desc
	err        *prometheus.Desc
	integral   *prometheus.Desc
	derivative *prometheus.Desc
	updates    *prometheus.Desc
}

func NewLoopCollector(loops []*loop.Loop) *LoopCollector {
	newDesc := func(name string, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, loopSubsystem, name), help, []string{"id"}, nil)
	}
	return &LoopCollector{
		loops:        loops,
		processValue: newDesc("process_value", "Current fluid height of the tank"),
		setPoint:     newDesc("set_point", "Target fluid height of the tank"),
		control:      newDesc("control", "Current outlet area of the tank"),
		meanAbsError: newDesc("mean_abs_error", "Mean absolute tracking error over the integral window of the controller"),
		output:       newDesc("controller_output", "Output of the last controller update"),
		err:          newDesc("controller_error", "Error (set point - process value) of the last controller update"),
		integral:     newDesc("controller_integral", "Sliding window integral of the error after the last controller update"),
		derivative:   newDesc("controller_derivative", "Derivative of the process value of the last controller update"),
		updates:      newDesc("controller_updates", "Counter for controller updates"),
	}
}

func (collector *LoopCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.processValue
	ch <- collector.setPoint
	ch <- collector.control
	ch <- collector.meanAbsError
	ch <- collector.output
	ch <- collector.err
	ch <- collector.integral
	ch <- collector.derivative
	ch <- collector.updates
}

// Collect implements required collect function for all prometheus collectors
func (collector *LoopCollector) Collect(ch chan<- prometheus.Metric) {
	for _, l := range collector.loops {
		snapshot := l.Snapshot()
		id := snapshot.ID
		ch <- prometheus.MustNewConstMetric(collector.processValue, prometheus.GaugeValue, snapshot.Height, id)
		ch <- prometheus.MustNewConstMetric(collector.setPoint, prometheus.GaugeValue, snapshot.SetPoint, id)
		ch <- prometheus.MustNewConstMetric(collector.control, prometheus.GaugeValue, snapshot.Control, id)
		ch <- prometheus.MustNewConstMetric(collector.meanAbsError, prometheus.GaugeValue, snapshot.MeanAbsError, id)

		if snapshot.Controller == nil {
			continue
		}
		ch <- prometheus.MustNewConstMetric(collector.updates, prometheus.CounterValue, float64(snapshot.Controller.Updates), id)
		if last := snapshot.Controller.Last; last != nil {
			ch <- prometheus.MustNewConstMetric(collector.output, prometheus.GaugeValue, float64(last.Output), id)
			ch <- prometheus.MustNewConstMetric(collector.err, prometheus.GaugeValue, float64(last.Error), id)
			ch <- prometheus.MustNewConstMetric(collector.integral, prometheus.GaugeValue, float64(last.Integral), id)
			ch <- prometheus.MustNewConstMetric(collector.derivative, prometheus.GaugeValue, float64(last.Derivative), id)
		}
	}
}
