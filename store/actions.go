package store

import (
	"fmt"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// ActionType names a state transition
type ActionType string

const (
	ActionLoginSucceeded  ActionType = "auth/loginSucceeded"
	ActionLoggedOut       ActionType = "auth/loggedOut"
	ActionCartItemAdded   ActionType = "cart/itemAdded"
	ActionCartItemRemoved ActionType = "cart/itemRemoved"
	ActionCartQuantitySet ActionType = "cart/quantitySet"
	ActionCartCleared     ActionType = "cart/cleared"
)

// Action is a serializable state change request. Only the fields relevant to
// Type are read.
type Action struct {
	Type      ActionType          `json:"type"`
	Token     string              `json:"token,omitempty"`
	User      *models.SessionUser `json:"user,omitempty"`
	Item      *CartItem           `json:"item,omitempty"`
	ProductID string              `json:"product_id,omitempty"`
	Quantity  int                 `json:"quantity,omitempty"`
}

// Validate rejects actions missing the fields their type needs.
func (a Action) Validate() error {
	switch a.Type {
	case ActionLoginSucceeded:
		if a.Token == "" || a.User == nil {
			return fmt.Errorf("%w: %s needs token and user", models.ErrValidation, a.Type)
		}
	case ActionCartItemAdded:
		if a.Item == nil || a.Item.ProductID == "" {
			return fmt.Errorf("%w: %s needs an item with product_id", models.ErrValidation, a.Type)
		}
		if a.Item.Quantity <= 0 {
			return fmt.Errorf("%w: quantity must be positive", models.ErrValidation)
		}
	case ActionCartItemRemoved:
		if a.ProductID == "" {
			return fmt.Errorf("%w: %s needs product_id", models.ErrValidation, a.Type)
		}
	case ActionCartQuantitySet:
		if a.ProductID == "" {
			return fmt.Errorf("%w: %s needs product_id", models.ErrValidation, a.Type)
		}
		if a.Quantity < 0 {
			return fmt.Errorf("%w: quantity must not be negative", models.ErrValidation)
		}
	case ActionLoggedOut, ActionCartCleared:
	default:
		return fmt.Errorf("%w: unknown action %q", models.ErrValidation, a.Type)
	}
	return nil
}

func LoginSucceeded(token string, user models.SessionUser) Action {
	return Action{Type: ActionLoginSucceeded, Token: token, User: &user}
}

func LoggedOut() Action { return Action{Type: ActionLoggedOut} }

func CartItemAdded(item CartItem) Action {
	return Action{Type: ActionCartItemAdded, Item: &item}
}

func CartItemRemoved(productID string) Action {
	return Action{Type: ActionCartItemRemoved, ProductID: productID}
}

func CartQuantitySet(productID string, quantity int) Action {
	return Action{Type: ActionCartQuantitySet, ProductID: productID, Quantity: quantity}
}

func CartCleared() Action { return Action{Type: ActionCartCleared} }
