package poller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	s := NewScheduler(context.Background(), time.Minute)

	started := make(chan struct{})
	var got error
	require.NoError(t, s.Every("block", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		got = ctx.Err()
		return got
	}))

	s.Start()
	waitFor(t, started)
	s.Stop()

	assert.ErrorIs(t, got, context.Canceled)
	assert.False(t, s.Trigger("block"), "no runs after stop")
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	s := NewScheduler(context.Background(), time.Minute)

	var runs atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, s.Every("slow", time.Hour, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			close(started)
		}
		<-release
		return nil
	}))

	s.Start()
	waitFor(t, started)
	assert.True(t, s.Trigger("slow"))
	assert.True(t, s.Trigger("slow"))
	time.Sleep(50 * time.Millisecond)
	close(release)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_TriggerDuringStop(t *testing.T) {
	s := NewScheduler(context.Background(), time.Minute)
	var runs atomic.Int32
	require.NoError(t, s.Every("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	start := make(chan struct{})
	accepted := make(chan bool, 64)
	for i := 0; i < cap(accepted); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			accepted <- s.Trigger("tick")
		}()
	}
	close(start)
	s.Stop()
	wg.Wait()
	close(accepted)

	after := runs.Load()
	assert.False(t, s.Trigger("tick"))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "accepted triggers finished before Stop returned")
}

func TestScheduler_RunTimeout(t *testing.T) {
	s := NewScheduler(context.Background(), 20*time.Millisecond)
	done := make(chan error, 1)
	require.NoError(t, s.Every("timeout", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		done <- ctx.Err()
		return ctx.Err()
	}))

	s.Start()
	defer s.Stop()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("job was not timed out")
	}
}

func TestScheduler_Registration(t *testing.T) {
	s := NewScheduler(context.Background(), time.Second)
	defer s.Stop()

	noop := func(context.Context) error { return nil }
	require.NoError(t, s.Every("a", time.Minute, noop))
	assert.Error(t, s.Every("a", time.Minute, noop))
	assert.Error(t, s.Every("b", 0, noop))
	assert.False(t, s.Trigger("missing"))
}

// scriptedSource answers each call with the next scripted result.
type scriptedSource struct {
	mu      sync.Mutex
	results [][]models.Order
	err     error
}

func (s *scriptedSource) Orders(_ context.Context, _ client.OrderScope) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.results) == 0 {
		return nil, nil
	}
	out := s.results[0]
	s.results = s.results[1:]
	return out, nil
}

func order(id string, status models.OrderStatus, created time.Time) models.Order {
	return models.Order{
		ID:          id,
		Status:      status,
		CreatedAt:   created,
		TotalAmount: 120,
		User:        models.UserRef{ID: "u1", Name: "Ayesha"},
		Items:       []models.OrderItem{{Product: models.ProductRef{ID: "p1"}, Quantity: 2, Price: 60}},
	}
}

func TestOrderCounter_Poll(t *testing.T) {
	t0 := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	src := &scriptedSource{results: [][]models.Order{{
		order("o1", models.StatusPending, t0),
		order("o2", models.StatusPending, t0),
		order("o3", models.StatusShipped, t0),
	}}}
	c := NewOrderCounter(src, client.ScopeSeller)
	c.now = func() time.Time { return t0 }

	require.NoError(t, c.Poll(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, 3, snap.Total)
	assert.Equal(t, 2, snap.ByStatus[models.StatusPending])
	assert.Equal(t, 1, snap.ByStatus[models.StatusShipped])
	assert.Equal(t, 0, snap.ByStatus[models.StatusDelivered])
	assert.Equal(t, uint64(1), snap.Sequence)
	assert.Equal(t, t0, snap.UpdatedAt)
}

func TestOrderCounter_ErrorKeepsLastCounts(t *testing.T) {
	src := &scriptedSource{results: [][]models.Order{{order("o1", models.StatusPending, time.Now())}}}
	c := NewOrderCounter(src, client.ScopeSeller)
	require.NoError(t, c.Poll(context.Background()))

	src.err = errors.New("backend down")
	assert.Error(t, c.Poll(context.Background()))
	assert.Equal(t, 1, c.Snapshot().Total)
}

// gatedSource blocks its first call until released.
type gatedSource struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSource) Orders(_ context.Context, _ client.OrderScope) ([]models.Order, error) {
	if g.calls.Add(1) == 1 {
		close(g.entered)
		<-g.release
		return []models.Order{order("old", models.StatusPending, time.Now())}, nil
	}
	return []models.Order{
		order("a", models.StatusPending, time.Now()),
		order("b", models.StatusPending, time.Now()),
	}, nil
}

func TestOrderCounter_SlowOlderResultIsDropped(t *testing.T) {
	src := &gatedSource{entered: make(chan struct{}), release: make(chan struct{})}
	c := NewOrderCounter(src, client.ScopeSeller)

	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, c.Poll(context.Background()))
	}()
	waitFor(t, src.entered)

	require.NoError(t, c.Poll(context.Background()))
	close(src.release)
	waitFor(t, done)

	snap := c.Snapshot()
	assert.Equal(t, 2, snap.Total)
	assert.Equal(t, uint64(2), snap.Sequence)
}

type recordingMailer struct {
	subjects []string
	fail     bool
}

func (m *recordingMailer) SendEmail(_, _, subject, _, _ string) error {
	m.subjects = append(m.subjects, subject)
	if m.fail {
		return errors.New("smtp says no")
	}
	return nil
}

func TestNotifier_FirstPollPrimes(t *testing.T) {
	t0 := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	src := &scriptedSource{results: [][]models.Order{
		{order("o1", models.StatusPending, t0)},
		{order("o1", models.StatusPending, t0), order("o3", models.StatusPending, t0.Add(2*time.Hour)), order("o2", models.StatusPending, t0.Add(time.Hour))},
		{order("o1", models.StatusPending, t0), order("o2", models.StatusPending, t0.Add(time.Hour))},
	}}
	mailer := &recordingMailer{}
	n := NewNotifier(src, client.ScopeSeller, mailer, "seller@decordream.shop")

	require.NoError(t, n.Poll(context.Background()))
	assert.Empty(t, n.Recent())
	assert.Empty(t, mailer.subjects)

	require.NoError(t, n.Poll(context.Background()))
	assert.Equal(t, []string{"New order o2", "New order o3"}, mailer.subjects, "oldest first")

	recent := n.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "o3", recent[0].OrderID, "feed is newest first")
	assert.Equal(t, "Ayesha", recent[0].Customer)
	assert.Equal(t, 2, recent[0].Items)

	require.NoError(t, n.Poll(context.Background()))
	assert.Len(t, mailer.subjects, 2, "seen orders are not re-announced")
}

func TestNotifier_MailFailureStillRecords(t *testing.T) {
	src := &scriptedSource{results: [][]models.Order{
		{},
		{order("o9", models.StatusPending, time.Now())},
	}}
	n := NewNotifier(src, client.ScopeSeller, &recordingMailer{fail: true}, "seller@decordream.shop")

	require.NoError(t, n.Poll(context.Background()))
	require.NoError(t, n.Poll(context.Background()))
	assert.Len(t, n.Recent(), 1)
}

func TestNotifier_StaleResultIgnored(t *testing.T) {
	n := NewNotifier(&scriptedSource{}, client.ScopeSeller, nil, "")
	n.record(1, nil)
	n.record(3, []models.Order{order("new", models.StatusPending, time.Now())})

	assert.Nil(t, n.record(2, []models.Order{order("other", models.StatusPending, time.Now())}))
	assert.Len(t, n.Recent(), 1)
}

func TestNotifier_FeedIsCapped(t *testing.T) {
	n := NewNotifier(&scriptedSource{}, client.ScopeSeller, nil, "")
	n.record(1, nil)

	batch := make([]models.Order, 0, RecentLimit+5)
	for i := 0; i < RecentLimit+5; i++ {
		batch = append(batch, order(string(rune('A'+i)), models.StatusPending, time.Unix(int64(i), 0)))
	}
	n.record(2, batch)
	assert.Len(t, n.Recent(), RecentLimit)
}
