package store

// Reduce returns the state after applying a. It never mutates s; the cart
// slice is copied whenever it changes.
func Reduce(s State, a Action) State {
	switch a.Type {
	case ActionLoginSucceeded:
		user := *a.User
		s.Auth = AuthState{Token: a.Token, User: &user, IsAuthenticated: true}

	case ActionLoggedOut:
		return InitialState()

	case ActionCartItemAdded:
		items := copyItems(s.Cart.Items)
		if i := indexOf(items, a.Item.ProductID); i >= 0 {
			items[i].Quantity = clampToStock(items[i].Quantity+a.Item.Quantity, items[i].Stock)
		} else {
			item := *a.Item
			item.Quantity = clampToStock(item.Quantity, item.Stock)
			items = append(items, item)
		}
		s.Cart.Items = items

	case ActionCartItemRemoved:
		s.Cart.Items = removeItem(s.Cart.Items, a.ProductID)

	case ActionCartQuantitySet:
		if a.Quantity == 0 {
			s.Cart.Items = removeItem(s.Cart.Items, a.ProductID)
			break
		}
		items := copyItems(s.Cart.Items)
		if i := indexOf(items, a.ProductID); i >= 0 {
			items[i].Quantity = clampToStock(a.Quantity, items[i].Stock)
		}
		s.Cart.Items = items

	case ActionCartCleared:
		s.Cart.Items = []CartItem{}
	}
	return s
}

func copyItems(items []CartItem) []CartItem {
	out := make([]CartItem, len(items), len(items)+1)
	copy(out, items)
	return out
}

func indexOf(items []CartItem, productID string) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}

func removeItem(items []CartItem, productID string) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, it := range items {
		if it.ProductID != productID {
			out = append(out, it)
		}
	}
	return out
}

// clampToStock limits a quantity to the known stock; 0 stock means unknown.
func clampToStock(qty, stock int) int {
	if stock > 0 && qty > stock {
		return stock
	}
	return qty
}
