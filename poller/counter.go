package poller

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// OrderSource lists orders for a scope. *client.Client satisfies it.
type OrderSource interface {
	Orders(ctx context.Context, scope client.OrderScope) ([]models.Order, error)
}

// OrderCounts is the latest applied poll result.
type OrderCounts struct {
	Total     int                        `json:"total"`
	ByStatus  map[models.OrderStatus]int `json:"by_status"`
	Sequence  uint64                     `json:"sequence"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// OrderCounter polls the order collection and keeps per-status counts.
type OrderCounter struct {
	source OrderSource
	scope  client.OrderScope
	now    func() time.Time

	seq atomic.Uint64

	mu     sync.RWMutex
	counts OrderCounts
}

func NewOrderCounter(source OrderSource, scope client.OrderScope) *OrderCounter {
	return &OrderCounter{
		source: source,
		scope:  scope,
		now:    time.Now,
		counts: OrderCounts{ByStatus: map[models.OrderStatus]int{}},
	}
}

// Poll fetches orders and records their counts. A result that finishes after
// a newer poll has already been applied is dropped.
func (c *OrderCounter) Poll(ctx context.Context) error {
	seq := c.seq.Add(1)

	orders, err := c.source.Orders(ctx, c.scope)
	if err != nil {
		return fmt.Errorf("count %s orders: %w", c.scope, err)
	}

	counts := OrderCounts{
		Total:     len(orders),
		ByStatus:  make(map[models.OrderStatus]int, len(models.AllStatuses)),
		Sequence:  seq,
		UpdatedAt: c.now(),
	}
	for _, st := range models.AllStatuses {
		counts.ByStatus[st] = 0
	}
	for _, o := range orders {
		counts.ByStatus[o.Status]++
	}

	c.apply(counts)
	return nil
}

func (c *OrderCounter) apply(counts OrderCounts) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if counts.Sequence <= c.counts.Sequence {
		return false
	}
	c.counts = counts
	return true
}

// Snapshot returns a copy of the latest counts.
func (c *OrderCounter) Snapshot() OrderCounts {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.counts
	out.ByStatus = make(map[models.OrderStatus]int, len(c.counts.ByStatus))
	for k, v := range c.counts.ByStatus {
		out.ByStatus[k] = v
	}
	return out
}
