package catalog

import (
	"testing"

	"procurement-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogShape(t *testing.T) {
	cat := New(DefaultItems())

	assert.Equal(t, 9, cat.Len())
	assert.Len(t, cat.ByCategory(models.CategoryCables), 3)
	assert.Len(t, cat.ByCategory(models.CategoryFood), 3)
	assert.Len(t, cat.ByCategory(models.CategorySwag), 3)
}

func TestSearchByName(t *testing.T) {
	cat := New(DefaultItems())

	results := cat.Search("pizza")

	require.Len(t, results, 2)
	assert.Equal(t, "Gourmet Pizza Catering", results[0].Name)
	assert.Equal(t, "Frozen Bulk Pizza", results[1].Name)
}

func TestSearchByCategoryIsCaseInsensitive(t *testing.T) {
	cat := New(DefaultItems())

	assert.Len(t, cat.Search("SWAG"), 3)
	assert.Len(t, cat.Search("swag"), 3)
}

func TestSearchByTag(t *testing.T) {
	cat := New(DefaultItems())

	results := cat.Search("networking")

	require.Len(t, results, 3)
	for _, item := range results {
		assert.Equal(t, models.CategoryCables, item.Category)
	}
}

func TestSearchEmptyQueryReturnsEverything(t *testing.T) {
	cat := New(DefaultItems())

	assert.Len(t, cat.Search(""), 9)
}

func TestSearchNoMatches(t *testing.T) {
	cat := New(DefaultItems())

	assert.Empty(t, cat.Search("forklift"))
}

func TestSearchIsIdempotent(t *testing.T) {
	cat := New(DefaultItems())

	first := cat.Search("")
	second := cat.Search("")

	assert.Equal(t, first, second)
}

func TestCatalogIsIsolatedFromCallerMutation(t *testing.T) {
	items := DefaultItems()
	cat := New(items)

	items[0].Name = "mutated"

	assert.Equal(t, "Generic Cat6 50-Pack", cat.Items()[0].Name)
}
