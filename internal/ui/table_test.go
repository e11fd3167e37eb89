package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTable(t *testing.T) {
	// WHEN
	result, err := FormatTable([]string{"Loop", "Value"}, [][]string{{"tank", "1.0"}}, false)

	// THEN
	require.NoError(t, err)
	assert.Contains(t, result, "Loop")
	assert.Contains(t, result, "tank")
	assert.Contains(t, result, "1.0")
}

func TestFormatGraph(t *testing.T) {
	// WHEN
	result := FormatGraph("height", false, []float64{0, 1, 2, 3}, []float64{1, 1, 1, 1})

	// THEN
	assert.Contains(t, result, "height")
	assert.Greater(t, len(strings.Split(result, "\n")), 10)
}
