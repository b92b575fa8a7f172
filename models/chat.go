package models

import "time"

// ChatMessage is one turn of a chatbot conversation
type ChatMessage struct {
	SessionID  string    `json:"session_id" bson:"session_id"`
	Role       string    `json:"role" bson:"role"` // user or bot
	Text       string    `json:"text" bson:"text"`
	ProductIDs []string  `json:"product_ids,omitempty" bson:"product_ids,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}
