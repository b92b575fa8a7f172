// Package store holds per-session storefront state (auth and cart) behind a
// reducer: state only changes by dispatching serializable actions.
package store

import "github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"

// AuthState is the signed-in identity of a session
type AuthState struct {
	Token           string              `json:"-" bson:"token"`
	User            *models.SessionUser `json:"user" bson:"user,omitempty"`
	IsAuthenticated bool                `json:"is_authenticated" bson:"is_authenticated"`
}

// CartItem is one product line in the cart
type CartItem struct {
	ProductID   string  `json:"product_id" bson:"product_id"`
	ProductName string  `json:"productName" bson:"productName"`
	Image       string  `json:"image,omitempty" bson:"image,omitempty"`
	Price       float64 `json:"price" bson:"price"` // effective unit price when added
	Quantity    int     `json:"quantity" bson:"quantity"`
	Stock       int     `json:"stock" bson:"stock"`
}

// CartState is the session's shopping cart
type CartState struct {
	Items []CartItem `json:"items" bson:"items"`
}

// Count is the number of units in the cart.
func (c CartState) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Subtotal is the cart value before shipping.
func (c CartState) Subtotal() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// State is the complete session state
type State struct {
	Auth AuthState `json:"auth" bson:"auth"`
	Cart CartState `json:"cart" bson:"cart"`
}

// InitialState is the state of a fresh, signed-out session.
func InitialState() State {
	return State{Cart: CartState{Items: []CartItem{}}}
}
