package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// ProductQuery narrows GET /api/products
type ProductQuery struct {
	SellerID string
	Sort     string
	Limit    int
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.SellerID != "" {
		v.Set("sellerid", q.SellerID)
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	return c.QueryProducts(ctx, ProductQuery{})
}

// QueryProducts fetches the catalog narrowed by seller, sort and limit.
func (c *Client) QueryProducts(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	body, err := c.get(ctx, "/api/products", q.values())
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Product](body, "products")
}

// ProductsByCategory fetches one category. An unknown category, including a
// 404 from the backend, yields an empty slice, not an error.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	body, err := c.get(ctx, "/api/products/category/"+url.PathEscape(category), nil)
	if isNotFound(err) {
		return []models.Product{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeCollection[models.Product](body, "products")
}

// Comments fetches a product's reviews. Comments that do not name their
// product are attributed to productID.
func (c *Client) Comments(ctx context.Context, productID string) ([]models.Comment, error) {
	body, err := c.get(ctx, "/api/products/"+url.PathEscape(productID)+"/comments", nil)
	if err != nil {
		return nil, err
	}
	comments, err := decodeCollection[models.Comment](body, "comments")
	if err != nil {
		return nil, err
	}
	for i := range comments {
		if comments[i].ProductID == "" {
			comments[i].ProductID = productID
		}
	}
	return comments, nil
}
