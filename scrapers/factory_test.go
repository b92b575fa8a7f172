package scrapers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/shopify"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers/structured"
)

func TestSelect(t *testing.T) {
	all := DefaultScrapers()

	s, err := Select(all, "https://decor.test/products/rattan-lamp")
	require.NoError(t, err)
	assert.IsType(t, &shopify.ShopifyScraper{}, s)

	s, err = Select(all, "https://www.ikea.com/pk/en/p/fejka-artificial-potted-plant-00339314/")
	require.NoError(t, err)
	assert.IsType(t, &structured.StructuredScraper{}, s)

	_, err = Select(all, "mailto:someone@decor.test")
	assert.Error(t, err)
}
