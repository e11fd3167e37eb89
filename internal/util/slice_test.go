package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	// GIVEN
	input := map[string]int{
		"lower":  1,
		"middle": 2,
		"upper":  3,
	}

	// WHEN
	result := SortedKeys(input)

	// THEN
	assert.Equal(t, []string{"lower", "middle", "upper"}, result)
}

func TestSortedKeys_Empty(t *testing.T) {
	// WHEN
	result := SortedKeys(map[int]bool{})

	// THEN
	assert.Empty(t, result)
}
