package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateNeeds(t *testing.T) {
	needs := CalculateNeeds(50)

	assert.Equal(t, 5, needs.CablePacks)
	assert.Equal(t, 25, needs.PizzaCount)
	assert.Equal(t, 50, needs.SwagCount)
}

func TestCalculateNeedsSingleAttendee(t *testing.T) {
	needs := CalculateNeeds(1)

	assert.Equal(t, 1, needs.CablePacks)
	assert.Equal(t, 1, needs.PizzaCount)
	assert.Equal(t, 1, needs.SwagCount)
}

func TestCalculateNeedsRoundsUp(t *testing.T) {
	needs := CalculateNeeds(11)

	assert.Equal(t, 2, needs.CablePacks)
	assert.Equal(t, 6, needs.PizzaCount)
	assert.Equal(t, 11, needs.SwagCount)
}
