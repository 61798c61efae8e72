package planner

import (
	"sort"

	"procurement-service/internal/models"
)

// RankItems filters out items that miss the deadline and orders the
// survivors by strategy. "speed" sorts by delivery time then price;
// anything else (including the empty string) sorts by price then
// delivery time. The sort is stable so items with identical keys keep
// their catalog order. The caller takes the head as the selection; the
// tail is the rejected-alternatives list.
func RankItems(items []models.CatalogItem, deadlineDays float64, strategy string) []models.CatalogItem {
	onTime := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.DeliveryDays <= deadlineDays {
			onTime = append(onTime, item)
		}
	}

	if strategy == models.StrategySpeed {
		sort.SliceStable(onTime, func(i, j int) bool {
			if onTime[i].DeliveryDays == onTime[j].DeliveryDays {
				return onTime[i].Price < onTime[j].Price
			}
			return onTime[i].DeliveryDays < onTime[j].DeliveryDays
		})
		return onTime
	}

	sort.SliceStable(onTime, func(i, j int) bool {
		if onTime[i].Price == onTime[j].Price {
			return onTime[i].DeliveryDays < onTime[j].DeliveryDays
		}
		return onTime[i].Price < onTime[j].Price
	})
	return onTime
}
