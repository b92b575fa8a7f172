package models

import "time"

// Comment is a product review
type Comment struct {
	ID        string    `json:"_id" bson:"_id"`
	ProductID string    `json:"productId" bson:"productId"`
	UserID    string    `json:"userId,omitempty" bson:"userId,omitempty"`
	Rating    int       `json:"rating" bson:"rating"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
