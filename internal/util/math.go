package util

import (
	"math"
)

// StepsPerInterval returns how many steps of length step fit into interval,
// rounded to the nearest integer, but at least 1.
func StepsPerInterval(interval float64, step float64) int {
	steps := int(math.Round(interval / step))
	if steps < 1 {
		return 1
	}
	return steps
}
