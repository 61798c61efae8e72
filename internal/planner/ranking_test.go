package planner

import (
	"testing"

	"procurement-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingFixture() []models.CatalogItem {
	return []models.CatalogItem{
		{ID: "a", Name: "Slow Cheap", Price: 10, DeliveryDays: 5},
		{ID: "b", Name: "Fast Pricey", Price: 90, DeliveryDays: 1},
		{ID: "c", Name: "Middle", Price: 40, DeliveryDays: 3},
		{ID: "d", Name: "Same Price Slower", Price: 40, DeliveryDays: 4},
	}
}

func TestRankItemsExcludesLateItems(t *testing.T) {
	ranked := RankItems(rankingFixture(), 3, models.StrategyCheapest)

	require.Len(t, ranked, 3)
	for _, item := range ranked {
		assert.LessOrEqual(t, item.DeliveryDays, 3.0)
	}
}

func TestRankItemsKeepsItemsAtExactDeadline(t *testing.T) {
	ranked := RankItems(rankingFixture(), 5, models.StrategyCheapest)

	assert.Len(t, ranked, 4)
}

func TestRankItemsCheapestOrdering(t *testing.T) {
	ranked := RankItems(rankingFixture(), 10, models.StrategyCheapest)

	require.Len(t, ranked, 4)
	for i := 0; i < len(ranked)-1; i++ {
		if ranked[i].Price == ranked[i+1].Price {
			assert.LessOrEqual(t, ranked[i].DeliveryDays, ranked[i+1].DeliveryDays)
		} else {
			assert.Less(t, ranked[i].Price, ranked[i+1].Price)
		}
	}
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID) // ties on price break by delivery time
	assert.Equal(t, "d", ranked[2].ID)
}

func TestRankItemsSpeedOrdering(t *testing.T) {
	ranked := RankItems(rankingFixture(), 10, models.StrategySpeed)

	require.Len(t, ranked, 4)
	for i := 0; i < len(ranked)-1; i++ {
		if ranked[i].DeliveryDays == ranked[i+1].DeliveryDays {
			assert.LessOrEqual(t, ranked[i].Price, ranked[i+1].Price)
		} else {
			assert.Less(t, ranked[i].DeliveryDays, ranked[i+1].DeliveryDays)
		}
	}
	assert.Equal(t, "b", ranked[0].ID)
}

func TestRankItemsUnknownStrategyFallsBackToCheapest(t *testing.T) {
	cheapest := RankItems(rankingFixture(), 10, models.StrategyCheapest)
	unknown := RankItems(rankingFixture(), 10, "optimistic")

	assert.Equal(t, cheapest, unknown)
}

func TestRankItemsStableForIdenticalKeys(t *testing.T) {
	items := []models.CatalogItem{
		{ID: "first", Price: 20, DeliveryDays: 2},
		{ID: "second", Price: 20, DeliveryDays: 2},
		{ID: "third", Price: 20, DeliveryDays: 2},
	}

	ranked := RankItems(items, 5, models.StrategyCheapest)

	require.Len(t, ranked, 3)
	assert.Equal(t, "first", ranked[0].ID)
	assert.Equal(t, "second", ranked[1].ID)
	assert.Equal(t, "third", ranked[2].ID)
}

func TestRankItemsEmptyResults(t *testing.T) {
	assert.Empty(t, RankItems(nil, 3, models.StrategyCheapest))
	assert.Empty(t, RankItems(rankingFixture(), 0.5, models.StrategyCheapest))
}
