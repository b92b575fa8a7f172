package store

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// MemorySessionLimit caps the sessions a MemoryPersister holds.
	MemorySessionLimit = 10000
	// MemorySessionTTL drops sessions not written for this long.
	MemorySessionTTL = 24 * time.Hour
)

// MemoryPersister keeps sessions in process memory only. The oldest sessions
// are dropped once the limit is reached or after the TTL.
type MemoryPersister struct {
	states *expirable.LRU[string, State]
}

func NewMemoryPersister() *MemoryPersister {
	return NewMemoryPersisterWithLimits(MemorySessionLimit, MemorySessionTTL)
}

func NewMemoryPersisterWithLimits(size int, ttl time.Duration) *MemoryPersister {
	return &MemoryPersister{states: expirable.NewLRU[string, State](size, nil, ttl)}
}

func (m *MemoryPersister) Load(_ context.Context, id string) (State, bool, error) {
	s, ok := m.states.Get(id)
	return s, ok, nil
}

func (m *MemoryPersister) Save(_ context.Context, id string, s State) error {
	m.states.Add(id, s)
	return nil
}

func (m *MemoryPersister) Delete(_ context.Context, id string) error {
	m.states.Remove(id)
	return nil
}

// sessionDocument is the stored form of a session
type sessionDocument struct {
	ID        string    `bson:"_id"`
	State     State     `bson:"state"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoPersister stores sessions in a MongoDB collection
type MongoPersister struct {
	collection *mongo.Collection
}

func NewMongoPersister(collection *mongo.Collection) *MongoPersister {
	return &MongoPersister{collection: collection}
}

func (m *MongoPersister) Load(ctx context.Context, id string) (State, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var doc sessionDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return State{}, false, nil
	}
	if err != nil {
		return State{}, false, err
	}
	return doc.State, true, nil
}

func (m *MongoPersister) Save(ctx context.Context, id string, s State) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc := sessionDocument{ID: id, State: s, UpdatedAt: time.Now()}
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": id}, doc, options.Replace().SetUpsert(true))
	return err
}

func (m *MongoPersister) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
