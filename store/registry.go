package store

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ErrSessionNotFound is returned for unknown or torn-down sessions.
var ErrSessionNotFound = errors.New("session not found")

const (
	// DefaultCacheSize is how many sessions a registry keeps in memory.
	DefaultCacheSize = 1024
	// DefaultCacheTTL is how long an untouched session stays cached.
	DefaultCacheTTL = 15 * time.Minute

	lockStripes = 256
)

// Persister keeps session state across restarts.
type Persister interface {
	Load(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, id string, s State) error
	Delete(ctx context.Context, id string) error
}

// Registry serves session state from a bounded cache in front of the
// persister. Sessions evicted from the cache are rehydrated on next access.
// Operations on one session are serialized; different sessions only contend
// when they hash to the same lock stripe.
type Registry struct {
	cache     *expirable.LRU[string, State]
	persister Persister
	locks     [lockStripes]sync.Mutex
}

// NewRegistry creates a registry backed by p with the default cache limits.
func NewRegistry(p Persister) *Registry {
	return NewRegistryWithCache(p, DefaultCacheSize, DefaultCacheTTL)
}

// NewRegistryWithCache creates a registry that caches at most size sessions,
// each for ttl after its last write.
func NewRegistryWithCache(p Persister, size int, ttl time.Duration) *Registry {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Registry{
		cache:     expirable.NewLRU[string, State](size, nil, ttl),
		persister: p,
	}
}

// Create starts a signed-out session and returns its id.
func (r *Registry) Create(ctx context.Context) (string, State, error) {
	id := uuid.New().String()
	s := InitialState()

	if err := r.persister.Save(ctx, id, s); err != nil {
		return "", State{}, fmt.Errorf("save session %s: %w", id, err)
	}
	r.cache.Add(id, s)
	return id, s, nil
}

// Get returns the session state.
func (r *Registry) Get(ctx context.Context, id string) (State, error) {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()
	return r.load(ctx, id)
}

// Dispatch applies an action to a session and persists the result. A
// LoggedOut action tears the session down.
func (r *Registry) Dispatch(ctx context.Context, id string, a Action) (State, error) {
	if err := a.Validate(); err != nil {
		return State{}, err
	}

	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	current, err := r.load(ctx, id)
	if err != nil {
		return State{}, err
	}

	if a.Type == ActionLoggedOut {
		if err := r.persister.Delete(ctx, id); err != nil {
			return State{}, fmt.Errorf("delete session %s: %w", id, err)
		}
		r.cache.Remove(id)
		return Reduce(current, a), nil
	}

	next := Reduce(current, a)
	if err := r.persister.Save(ctx, id, next); err != nil {
		return State{}, fmt.Errorf("save session %s: %w", id, err)
	}
	r.cache.Add(id, next)
	return next, nil
}

// Len is the number of sessions held in the cache.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// load must be called with the session's lock held.
func (r *Registry) load(ctx context.Context, id string) (State, error) {
	if s, ok := r.cache.Get(id); ok {
		return s, nil
	}
	s, ok, err := r.persister.Load(ctx, id)
	if err != nil {
		return State{}, fmt.Errorf("load session %s: %w", id, err)
	}
	if !ok {
		return State{}, ErrSessionNotFound
	}
	if s.Cart.Items == nil {
		s.Cart.Items = []CartItem{}
	}
	r.cache.Add(id, s)
	return s, nil
}

func (r *Registry) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &r.locks[h.Sum32()%lockStripes]
}
