package poller

import (
	"context"
	"fmt"
	"html"
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// RecentLimit caps the notification feed.
const RecentLimit = 20

// Mailer sends a notification email. *utils.SendGridMailer satisfies it.
type Mailer interface {
	SendEmail(toName, toEmail, subject, textContent, htmlContent string) error
}

// Notification announces one new order.
type Notification struct {
	OrderID    string    `json:"order_id"`
	Customer   string    `json:"customer"`
	Total      float64   `json:"total"`
	Items      int       `json:"items"`
	PlacedAt   time.Time `json:"placed_at"`
	NotifiedAt time.Time `json:"notified_at"`
}

// Notifier detects orders that were not present on the previous poll. The
// first poll only records what already exists.
type Notifier struct {
	source OrderSource
	scope  client.OrderScope
	mailer Mailer
	to     string
	now    func() time.Time

	seq atomic.Uint64

	mu      sync.Mutex
	applied uint64
	primed  bool
	seen    map[string]struct{}
	recent  []Notification
}

// NewNotifier creates a notifier. mailer may be nil, in which case
// notifications are only kept in the feed.
func NewNotifier(source OrderSource, scope client.OrderScope, mailer Mailer, to string) *Notifier {
	return &Notifier{
		source: source,
		scope:  scope,
		mailer: mailer,
		to:     to,
		now:    time.Now,
		seen:   make(map[string]struct{}),
		recent: []Notification{},
	}
}

// Poll fetches orders and notifies about unseen ones, oldest first.
func (n *Notifier) Poll(ctx context.Context) error {
	seq := n.seq.Add(1)

	orders, err := n.source.Orders(ctx, n.scope)
	if err != nil {
		return fmt.Errorf("poll %s orders: %w", n.scope, err)
	}

	fresh := n.record(seq, orders)
	if len(fresh) == 0 {
		return nil
	}
	log.Printf("[Notifier] %d new order(s)", len(fresh))

	if n.mailer == nil || n.to == "" {
		return nil
	}
	for _, note := range fresh {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		subject, text, body := notificationEmail(note)
		if err := n.mailer.SendEmail("DecorDream Seller", n.to, subject, text, body); err != nil {
			log.Printf("[Notifier] Failed to email order %s: %v", note.OrderID, err)
		}
	}
	return nil
}

// record applies a poll result and returns the new notifications. Stale
// results are ignored.
func (n *Notifier) record(seq uint64, orders []models.Order) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if seq <= n.applied {
		log.Printf("[Notifier] Dropping stale poll result %d (applied %d)", seq, n.applied)
		return nil
	}
	n.applied = seq

	if !n.primed {
		for _, o := range orders {
			n.seen[o.ID] = struct{}{}
		}
		n.primed = true
		return nil
	}

	var fresh []models.Order
	for _, o := range orders {
		if o.ID == "" {
			continue
		}
		if _, ok := n.seen[o.ID]; ok {
			continue
		}
		n.seen[o.ID] = struct{}{}
		fresh = append(fresh, o)
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].CreatedAt.Before(fresh[j].CreatedAt)
	})

	now := n.now()
	notes := make([]Notification, 0, len(fresh))
	for _, o := range fresh {
		items := 0
		for _, it := range o.Items {
			items += it.Quantity
		}
		notes = append(notes, Notification{
			OrderID:    o.ID,
			Customer:   o.CustomerName(),
			Total:      o.TotalAmount,
			Items:      items,
			PlacedAt:   o.CreatedAt,
			NotifiedAt: now,
		})
	}

	// feed is newest first
	for _, note := range notes {
		n.recent = append([]Notification{note}, n.recent...)
	}
	if len(n.recent) > RecentLimit {
		n.recent = n.recent[:RecentLimit]
	}
	return notes
}

// Recent returns the notification feed, newest first.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

func notificationEmail(note Notification) (subject, text, body string) {
	customer := note.Customer
	if customer == "" {
		customer = "a customer"
	}
	subject = fmt.Sprintf("New order %s", note.OrderID)
	text = fmt.Sprintf("New order %s from %s: %d item(s), total %.2f.", note.OrderID, customer, note.Items, note.Total)
	body = fmt.Sprintf(
		"<p>New order <strong>%s</strong> from %s.</p><p>%d item(s), total <strong>%.2f</strong>.</p>",
		html.EscapeString(note.OrderID), html.EscapeString(customer), note.Items, note.Total,
	)
	return subject, text, body
}
