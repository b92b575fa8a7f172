package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

func lamp(qty int) CartItem {
	return CartItem{ProductID: "lamp", ProductName: "Rattan Lamp", Price: 40, Quantity: qty, Stock: 5}
}

func TestReduce_Cart(t *testing.T) {
	s := InitialState()
	s = Reduce(s, CartItemAdded(lamp(2)))
	s = Reduce(s, CartItemAdded(CartItem{ProductID: "vase", Price: 15, Quantity: 1}))
	s = Reduce(s, CartItemAdded(lamp(1)))

	require.Len(t, s.Cart.Items, 2)
	assert.Equal(t, 3, s.Cart.Items[0].Quantity)
	assert.Equal(t, 4, s.Cart.Count())
	assert.Equal(t, 135.0, s.Cart.Subtotal())

	s = Reduce(s, CartQuantitySet("lamp", 99))
	assert.Equal(t, 5, s.Cart.Items[0].Quantity, "clamped to stock")

	s = Reduce(s, CartQuantitySet("lamp", 0))
	require.Len(t, s.Cart.Items, 1)
	assert.Equal(t, "vase", s.Cart.Items[0].ProductID)

	s = Reduce(s, CartItemRemoved("vase"))
	assert.Empty(t, s.Cart.Items)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := Reduce(InitialState(), CartItemAdded(lamp(1)))
	after := Reduce(before, CartItemAdded(lamp(1)))

	assert.Equal(t, 1, before.Cart.Items[0].Quantity)
	assert.Equal(t, 2, after.Cart.Items[0].Quantity)
}

func TestReduce_AuthLifecycle(t *testing.T) {
	user := models.SessionUser{ID: "u1", Name: "Maya", Role: models.RoleCustomer}
	s := Reduce(InitialState(), LoginSucceeded("tok", user))
	s = Reduce(s, CartItemAdded(lamp(1)))

	assert.True(t, s.Auth.IsAuthenticated)
	assert.Equal(t, "Maya", s.Auth.User.Name)

	s = Reduce(s, LoggedOut())
	assert.Equal(t, InitialState(), s)
}

func TestAction_JSONRoundTripAndValidate(t *testing.T) {
	var a Action
	require.NoError(t, json.Unmarshal([]byte(`{"type":"cart/quantitySet","product_id":"lamp","quantity":2}`), &a))
	assert.NoError(t, a.Validate())
	assert.Equal(t, CartQuantitySet("lamp", 2), a)

	assert.ErrorIs(t, Action{Type: "cart/explode"}.Validate(), models.ErrValidation)
	assert.ErrorIs(t, Action{Type: ActionLoginSucceeded}.Validate(), models.ErrValidation)
	assert.ErrorIs(t, Action{Type: ActionCartItemAdded, Item: &CartItem{ProductID: "x"}}.Validate(), models.ErrValidation)
}

func TestRegistry_HydratesAndTearsDown(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryPersister()

	first := NewRegistry(p)
	id, _, err := first.Create(ctx)
	require.NoError(t, err)
	_, err = first.Dispatch(ctx, id, CartItemAdded(lamp(2)))
	require.NoError(t, err)

	// a new process sees the persisted cart
	second := NewRegistry(p)
	s, err := second.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, s.Cart.Items, 1)
	assert.Equal(t, 2, s.Cart.Items[0].Quantity)

	out, err := second.Dispatch(ctx, id, LoggedOut())
	require.NoError(t, err)
	assert.Equal(t, InitialState(), out)
	assert.Equal(t, 0, second.Len())

	_, err = second.Get(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_UnknownSessionAndInvalidAction(t *testing.T) {
	r := NewRegistry(NewMemoryPersister())

	_, err := r.Dispatch(context.Background(), "nope", CartCleared())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = r.Dispatch(context.Background(), "nope", Action{Type: "bogus"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

type failingPersister struct{ *MemoryPersister }

func (f *failingPersister) Save(context.Context, string, State) error { return errors.New("disk full") }

func TestRegistry_SaveFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()
	require.NoError(t, mem.Save(ctx, "s1", InitialState()))

	fp := &failingPersister{MemoryPersister: mem}
	r := NewRegistry(fp)

	_, err := r.Dispatch(ctx, "s1", CartItemAdded(lamp(1)))
	require.Error(t, err)

	s, err := r.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, s.Cart.Items)
}

type countingPersister struct {
	*MemoryPersister
	loads atomic.Int32
}

func (c *countingPersister) Load(ctx context.Context, id string) (State, bool, error) {
	c.loads.Add(1)
	return c.MemoryPersister.Load(ctx, id)
}

func TestRegistry_CacheIsBoundedAndRehydrates(t *testing.T) {
	ctx := context.Background()
	p := &countingPersister{MemoryPersister: NewMemoryPersister()}
	r := NewRegistryWithCache(p, 4, time.Hour)

	first, _, err := r.Create(ctx)
	require.NoError(t, err)
	_, err = r.Dispatch(ctx, first, CartItemAdded(lamp(3)))
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		_, _, err := r.Create(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 4, r.Len())
	assert.Zero(t, p.loads.Load())

	s, err := r.Get(ctx, first)
	require.NoError(t, err)
	require.Len(t, s.Cart.Items, 1)
	assert.Equal(t, 3, s.Cart.Items[0].Quantity)
	assert.Equal(t, int32(1), p.loads.Load())
	assert.Equal(t, 4, r.Len())

	_, err = r.Get(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, int32(1), p.loads.Load(), "second read served from cache")
}

func TestRegistry_IdleSessionsExpire(t *testing.T) {
	ctx := context.Background()
	p := &countingPersister{MemoryPersister: NewMemoryPersister()}
	r := NewRegistryWithCache(p, 16, 20*time.Millisecond)

	id, _, err := r.Create(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	assert.Eventually(t, func() bool { return r.Len() == 0 }, 2*time.Second, 10*time.Millisecond)

	s, err := r.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, InitialState().Auth, s.Auth)
	assert.Equal(t, int32(1), p.loads.Load())
}

type blockingPersister struct {
	*MemoryPersister
	blockID string
	entered chan struct{}
	release chan struct{}
}

func (b *blockingPersister) Save(ctx context.Context, id string, s State) error {
	if id == b.blockID {
		close(b.entered)
		<-b.release
	}
	return b.MemoryPersister.Save(ctx, id, s)
}

func TestRegistry_SlowSessionDoesNotBlockOthers(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryPersister()
	require.NoError(t, mem.Save(ctx, "slow", InitialState()))
	require.NoError(t, mem.Save(ctx, "fast", InitialState()))

	p := &blockingPersister{MemoryPersister: mem, blockID: "slow", entered: make(chan struct{}), release: make(chan struct{})}
	r := NewRegistry(p)

	done := make(chan error, 1)
	go func() {
		_, err := r.Dispatch(ctx, "slow", CartItemAdded(lamp(1)))
		done <- err
	}()
	<-p.entered

	s, err := r.Dispatch(ctx, "fast", CartItemAdded(lamp(2)))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Cart.Count())

	close(p.release)
	require.NoError(t, <-done)
}

func TestMemoryPersister_Limits(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryPersisterWithLimits(2, time.Hour)
	require.NoError(t, m.Save(ctx, "a", InitialState()))
	require.NoError(t, m.Save(ctx, "b", InitialState()))
	require.NoError(t, m.Save(ctx, "c", InitialState()))

	_, ok, err := m.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "oldest session dropped")
	_, ok, _ = m.Load(ctx, "c")
	assert.True(t, ok)
}
