package catalog

import (
	"strings"

	"procurement-service/internal/models"
)

// Catalog is the immutable set of purchasable items, built once at startup.
type Catalog struct {
	items []models.CatalogItem
}

// New creates a catalog from a fixed item list
func New(items []models.CatalogItem) *Catalog {
	copied := make([]models.CatalogItem, len(items))
	copy(copied, items)
	return &Catalog{items: copied}
}

// Items returns all catalog items in definition order
func (c *Catalog) Items() []models.CatalogItem {
	out := make([]models.CatalogItem, len(c.items))
	copy(out, c.items)
	return out
}

// ByCategory returns items belonging to the given category, in definition order
func (c *Catalog) ByCategory(category string) []models.CatalogItem {
	var out []models.CatalogItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Search filters items by case-insensitive substring match against
// name, category, or any tag. An empty query returns everything.
func (c *Catalog) Search(query string) []models.CatalogItem {
	if query == "" {
		return c.Items()
	}

	q := strings.ToLower(query)
	out := make([]models.CatalogItem, 0)
	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Category), q) {
			out = append(out, item)
			continue
		}
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Len returns the number of items in the catalog
func (c *Catalog) Len() int {
	return len(c.items)
}

// DefaultItems returns the built-in hackathon supply catalog
func DefaultItems() []models.CatalogItem {
	return []models.CatalogItem{
		// Cables
		{
			ID:           "tech-1",
			Name:         "Generic Cat6 50-Pack",
			Store:        "BulkTech Supplies",
			Price:        50,
			DeliveryDays: 5,
			Category:     models.CategoryCables,
			Tags:         []string{"networking", "bulk", "budget"},
		},
		{
			ID:           "tech-2",
			Name:         "Pro-Gamer Braided 50-Pack",
			Store:        "Elite Gear",
			Price:        120,
			DeliveryDays: 1,
			Category:     models.CategoryCables,
			Tags:         []string{"networking", "premium", "fast-delivery"},
		},
		{
			ID:           "tech-3",
			Name:         "Mixed Length Grab Bag",
			Store:        "Tech Salvage",
			Price:        40,
			DeliveryDays: 3,
			Category:     models.CategoryCables,
			Tags:         []string{"networking", "random", "discount"},
		},
		// Food
		{
			ID:           "food-1",
			Name:         "Gourmet Pizza Catering",
			Store:        "Luigi's Fine Pies",
			Price:        15, // per person
			DeliveryDays: 0.04,
			Category:     models.CategoryFood,
			Tags:         []string{"catering", "hot", "premium"},
		},
		{
			ID:           "food-2",
			Name:         "Frozen Bulk Pizza",
			Store:        "Wholesale Grocer",
			Price:        5,
			DeliveryDays: 1,
			Category:     models.CategoryFood,
			Tags:         []string{"frozen", "bulk", "budget"},
		},
		{
			ID:           "food-3",
			Name:         "Energy Bar Crate",
			Store:        "FuelUp Nutrition",
			Price:        3,
			DeliveryDays: 2,
			Category:     models.CategoryFood,
			Tags:         []string{"snacks", "healthy", "bulk"},
		},
		// Swag
		{
			ID:           "swag-1",
			Name:         "Custom Hoodies",
			Store:        "PrintMaster",
			Price:        40,
			DeliveryDays: 7,
			Category:     models.CategorySwag,
			Tags:         []string{"clothing", "custom", "premium"},
		},
		{
			ID:           "swag-2",
			Name:         "Rush Printed Tees",
			Store:        "SpeedyPrints",
			Price:        15,
			DeliveryDays: 2,
			Category:     models.CategorySwag,
			Tags:         []string{"clothing", "custom", "fast"},
		},
		{
			ID:           "swag-3",
			Name:         "Generic Logo Stickers",
			Store:        "StickerMule",
			Price:        0.5,
			DeliveryDays: 3,
			Category:     models.CategorySwag,
			Tags:         []string{"accessories", "cheap", "promo"},
		},
	}
}
