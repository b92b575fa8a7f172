package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// AllStatuses lists the statuses in progression order, Cancelled last.
var AllStatuses = []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}

// ParseOrderStatus accepts a status literal in any case ("shipped", "Shipped").
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range AllStatuses {
		if strings.EqualFold(string(st), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: unknown order status %q", ErrValidation, s)
}

// IsTerminal reports whether no further transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	}
	return -1
}

// CanTransition reports whether an order may move from s to next.
// The progression is linear and one step at a time; Cancelled is reachable
// from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return next.rank() == s.rank()+1
}

// UserRef is the order's customer. The backend sends either a bare id or a
// populated user document.
type UserRef struct {
	ID    string `json:"_id" bson:"_id"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty"`
}

func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*u = UserRef{}
		return nil
	}
	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*u = UserRef{ID: id}
		return nil
	}
	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("decode user: %w", err)
	}
	*u = UserRef(p)
	return nil
}

// ProductRef is the product a line item points at, either as an id or as a
// populated product document.
type ProductRef struct {
	ID          string `json:"_id" bson:"_id"`
	ProductName string `json:"productName,omitempty" bson:"productName,omitempty"`
	Category    string `json:"category,omitempty" bson:"category,omitempty"`
}

func (p *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = ProductRef{}
		return nil
	}
	switch data[0] {
	case '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*p = ProductRef{ID: id}
		return nil
	case '{':
		type plain ProductRef
		var v plain
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("decode product ref: %w", err)
		}
		*p = ProductRef(v)
		return nil
	default:
		// numeric ids show up in fixtures and older exports
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decode product ref: %w", err)
		}
		*p = ProductRef{ID: n.String()}
		return nil
	}
}

// OrderItem is a single order line
type OrderItem struct {
	Product  ProductRef `json:"product" bson:"product"`
	Quantity int        `json:"quantity" bson:"quantity"`
	Price    float64    `json:"price" bson:"price"`
}

// ShippingDetails is where the order goes
type ShippingDetails struct {
	FullName   string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Address    string `json:"address,omitempty" bson:"address,omitempty"`
	City       string `json:"city,omitempty" bson:"city,omitempty"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
	Country    string `json:"country,omitempty" bson:"country,omitempty"`
	Phone      string `json:"phone,omitempty" bson:"phone,omitempty"`
}

// Order represents a customer order as returned by the backend
type Order struct {
	ID              string          `json:"_id" bson:"_id"`
	User            UserRef         `json:"user" bson:"user"`
	Items           []OrderItem     `json:"items" bson:"items"`
	TotalAmount     float64         `json:"totalAmount" bson:"totalAmount"`
	Status          OrderStatus     `json:"status" bson:"status"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt"`
	ShippingDetails ShippingDetails `json:"shippingDetails" bson:"shippingDetails"`
	TrackingInfo    string          `json:"trackingInfo,omitempty" bson:"trackingInfo,omitempty"`
}

// CustomerName prefers the populated user name and falls back to the
// shipping recipient.
func (o Order) CustomerName() string {
	if o.User.Name != "" {
		return o.User.Name
	}
	return o.ShippingDetails.FullName
}

// StatusUpdate is the body sent to change an order's status
type StatusUpdate struct {
	Status       OrderStatus `json:"status"`
	TrackingInfo string      `json:"trackingInfo,omitempty"`
}
