package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

func product(id, category string, images ...string) models.Product {
	p := models.Product{ID: id, ProductName: "Product " + id, Category: category}
	for _, img := range images {
		p.Images = append(p.Images, models.ProductImage{URL: img})
	}
	return p
}

func TestCategories_PartitionsProducts(t *testing.T) {
	products := []models.Product{
		product("1", "Living Room", "a.jpg"),
		product("2", "Wall Decor", "b.jpg"),
		product("3", "Living Room", "c.jpg"),
		product("4", ""),
		product("5", "Wall Decor"),
	}

	got := Categories(products)
	require.Len(t, got, 3)

	seen := map[string]int{}
	total := 0
	for _, c := range got {
		for _, p := range c.Products {
			seen[p.ID]++
			total++
		}
	}
	assert.Equal(t, len(products), total)
	for _, p := range products {
		assert.Equal(t, 1, seen[p.ID], "product %s must appear exactly once", p.ID)
	}
}

func TestCategories_OrderImageAndSlug(t *testing.T) {
	got := Categories([]models.Product{
		product("1", "Living Room", "first.jpg"),
		product("2", "Bedroom"),
		product("3", "Living Room", "second.jpg"),
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Living Room", got[0].Name)
	assert.Equal(t, "living-room", got[0].Slug)
	assert.Equal(t, "first.jpg", got[0].Image)
	assert.Len(t, got[0].Products, 2)

	assert.Equal(t, "Bedroom", got[1].Name)
	assert.Equal(t, "", got[1].Image, "first product had no image")
}

func TestCategories_Uncategorized(t *testing.T) {
	got := Categories([]models.Product{product("1", "")})

	require.Len(t, got, 1)
	assert.Equal(t, UncategorizedLabel, got[0].Name)
	assert.Equal(t, "uncategorized", got[0].Slug)
}

func TestCategories_NoNormalization(t *testing.T) {
	got := Categories([]models.Product{product("1", "Lamps"), product("2", "lamps")})
	assert.Len(t, got, 2)
}

func TestCategories_Empty(t *testing.T) {
	got := Categories(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
