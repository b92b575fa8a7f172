package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// History stores conversation transcripts.
type History interface {
	Append(ctx context.Context, msgs ...models.ChatMessage) error
	// Recent returns up to limit messages of a session, oldest first.
	Recent(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error)
}

// MemoryHistory keeps transcripts in memory.
type MemoryHistory struct {
	mu       sync.Mutex
	sessions map[string][]models.ChatMessage
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: make(map[string][]models.ChatMessage)}
}

func (h *MemoryHistory) Append(_ context.Context, msgs ...models.ChatMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range msgs {
		h.sessions[m.SessionID] = append(h.sessions[m.SessionID], m)
	}
	return nil
}

func (h *MemoryHistory) Recent(_ context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	all := h.sessions[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]models.ChatMessage, len(all))
	copy(out, all)
	return out, nil
}

// MongoHistory stores transcripts in the chat_messages collection.
type MongoHistory struct {
	collection *mongo.Collection
}

func NewMongoHistory(collection *mongo.Collection) *MongoHistory {
	return &MongoHistory{collection: collection}
}

func (h *MongoHistory) Append(ctx context.Context, msgs ...models.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	docs := make([]interface{}, len(msgs))
	for i, m := range msgs {
		docs[i] = m
	}
	if _, err := h.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to save chat messages: %w", err)
	}
	return nil
}

func (h *MongoHistory) Recent(ctx context.Context, sessionID string, limit int) ([]models.ChatMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(int64(limit))
	}

	cursor, err := h.collection.Find(ctx, bson.M{"session_id": sessionID}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chat history: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}

	// newest first from the query; callers want oldest first
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}
