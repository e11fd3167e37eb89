package global

import (
	"fmt"
	"strconv"

	"github.com/pidwin/pidwin/internal/simulation"
	"github.com/pidwin/pidwin/internal/ui"
)

func formatValue(value float64) string {
	return strconv.FormatFloat(value, 'e', 6, 64)
}

func formatOptional(value *float64) string {
	if value == nil {
		return "-"
	}
	return formatValue(*value)
}

func constant(value float64, length int) []float64 {
	result := make([]float64, length)
	for i := range result {
		result[i] = value
	}
	return result
}

// PrintResult prints a summary table of the given result and, if plot is set, graphs of every loop
func PrintResult(result *simulation.Result, plot bool) {
	ui.Printfln("Run %s (%s), %d loop(s), time.delta = %v s, time.max = %v s",
		result.Id, result.CreatedAt.Format("2006-01-02 15:04:05"), len(result.Series), result.TimeDelta, result.TimeMax)

	var rows [][]string
	for _, summary := range result.Summaries() {
		rows = append(rows, []string{
			summary.LoopId,
			formatValue(summary.Uncontrolled),
			formatValue(summary.UncontrolledError),
			formatOptional(summary.SteadyState),
			formatValue(summary.Controlled),
			formatValue(summary.ControlledError),
			formatValue(summary.Control),
			formatValue(summary.ControlDeviation),
			formatValue(summary.MeanError),
			formatValue(summary.ErrorStandardDeviation),
		})
	}
	tableString, err := ui.FormatTable([]string{
		"Loop",
		"PV (no control)", "PV - SP (no control)", "Steady State (no control)",
		"PV", "PV - SP",
		"Control", "Control - Bias",
		"Mean Error", "Error Std. Dev.",
	}, rows, !NoColor)
	if err != nil {
		ui.Error("Unable to format summary: %v", err)
	} else {
		ui.Printfln("%s", tableString)
	}

	if !plot {
		return
	}

	for _, series := range result.Series {
		points := len(series.Time)
		ui.Printfln("")
		ui.Printfln("Loop %s: control interval = %d [time steps], control bias = %s, Kp = %s",
			series.LoopId, series.ControlInterval, formatValue(series.ControlBias), formatValue(series.Kp))
		ui.Printfln("  time scales: fill = %s s, drain = %s s, net = %s s",
			formatValue(series.TimeScales.Fill), formatValue(series.TimeScales.Drain), formatValue(series.TimeScales.Net))
		ui.Printfln("")

		ui.Printfln("%s", ui.FormatGraph(
			fmt.Sprintf("%s: fluid height [m] (blue: controlled, red: no control, green: set point)", series.LoopId),
			!NoColor, series.Controlled, series.Uncontrolled, constant(series.SetPoint, points),
		))
		ui.Printfln("")
		ui.Printfln("%s", ui.FormatGraph(
			fmt.Sprintf("%s: outlet area [m^2] (blue: control, red: bias)", series.LoopId),
			!NoColor, series.Control, constant(series.ControlBias, points),
		))
		ui.Printfln("")
		ui.Printfln("%s", ui.FormatGraph(
			fmt.Sprintf("%s: inflow [m^3/s] (blue: forcing, red: mean)", series.LoopId),
			!NoColor, series.Forcing, constant(series.ForcingMean, points),
		))
	}
}
