package chat

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

const (
	descriptionCacheSize = 4096
	descriptionCacheTTL  = time.Hour
)

type strippedDescription struct {
	raw   string
	plain string
}

// descriptionCache holds product descriptions with their HTML stripped, keyed
// by product id. An entry is reused only while the raw description is unchanged.
type descriptionCache struct {
	entries *expirable.LRU[string, strippedDescription]
}

func newDescriptionCache(size int, ttl time.Duration) *descriptionCache {
	return &descriptionCache{entries: expirable.NewLRU[string, strippedDescription](size, nil, ttl)}
}

var descriptions = newDescriptionCache(descriptionCacheSize, descriptionCacheTTL)

func (c *descriptionCache) plain(p models.Product) string {
	if p.Description == "" {
		return ""
	}
	if p.ID == "" {
		return utils.PlainText(p.Description)
	}
	if e, ok := c.entries.Get(p.ID); ok && e.raw == p.Description {
		return e.plain
	}
	text := utils.PlainText(p.Description)
	c.entries.Add(p.ID, strippedDescription{raw: p.Description, plain: text})
	return text
}
