package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// OrderScope selects whose orders are listed
type OrderScope string

const (
	ScopeSeller OrderScope = "seller"
	ScopeAdmin  OrderScope = "admin"
	ScopeUser   OrderScope = "user"
)

var scopePaths = map[OrderScope]string{
	ScopeSeller: "/api/orders/seller",
	ScopeAdmin:  "/api/orders/admin/all",
	ScopeUser:   "/api/orders/user",
}

// ParseOrderScope validates a scope value. Empty means seller.
func ParseOrderScope(s string) (OrderScope, error) {
	if s == "" {
		return ScopeSeller, nil
	}
	if _, ok := scopePaths[OrderScope(s)]; !ok {
		return "", fmt.Errorf("%w: unknown order scope %q", models.ErrValidation, s)
	}
	return OrderScope(s), nil
}

// Orders lists orders for the scope. The backend answers with either a bare
// array or {orders: [...]}; both decode to the same slice.
func (c *Client) Orders(ctx context.Context, scope OrderScope) ([]models.Order, error) {
	path, ok := scopePaths[scope]
	if !ok {
		return nil, fmt.Errorf("%w: unknown order scope %q", models.ErrValidation, scope)
	}
	body, err := c.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Order](body, "orders")
}

// UpdateOrderStatus sets an order's status and tracking info.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, update models.StatusUpdate) error {
	_, err := c.do(ctx, http.MethodPut, "/api/orders/status/"+url.PathEscape(orderID), nil, update)
	return err
}

// CancelOrder cancels an order on behalf of its owner.
func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	_, err := c.do(ctx, http.MethodPut, "/api/orders/cancel/"+url.PathEscape(orderID), nil, struct{}{})
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
