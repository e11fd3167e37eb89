package ui

import (
	"bytes"

	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/tomlazar/table"
)

// FormatTable renders the given rows as a table with alternating row colors
func FormatTable(headers []string, rows [][]string, color bool) (string, error) {
	tab := table.Table{
		Headers: headers,
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	return buf.String(), err
}

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Blue,
	asciigraph.Red,
	asciigraph.Green,
}

// FormatGraph plots up to three series of equal length into a single graph
func FormatGraph(caption string, color bool, series ...[]float64) string {
	options := []asciigraph.Option{
		asciigraph.Height(12),
		asciigraph.Width(100),
		asciigraph.Precision(4),
		asciigraph.Caption(caption),
	}
	if color {
		options = append(options, asciigraph.SeriesColors(seriesColors[:min(len(series), len(seriesColors))]...))
	}
	return asciigraph.PlotMany(series, options...)
}
