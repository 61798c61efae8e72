package planner

import "procurement-service/internal/models"

// CalculateNeeds maps a headcount to required quantities per category.
// Callers must reject non-positive headcounts before calling.
func CalculateNeeds(peopleCount int) models.Needs {
	return models.Needs{
		CablePacks: (peopleCount + 9) / 10,
		PizzaCount: (peopleCount + 1) / 2,
		SwagCount:  peopleCount,
	}
}
