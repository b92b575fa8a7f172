package client

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// commentFetchLimit bounds concurrent per-product comment requests.
const commentFetchLimit = 5

// CommentsForProducts fetches the reviews of every product concurrently and
// concatenates them in product order. Products that no longer exist (404)
// contribute no comments.
func (c *Client) CommentsForProducts(ctx context.Context, products []models.Product) ([]models.Comment, error) {
	perProduct := make([][]models.Comment, len(products))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(commentFetchLimit)
	for i, p := range products {
		g.Go(func() error {
			comments, err := c.Comments(gctx, p.ID)
			if err != nil {
				if isNotFound(err) {
					return nil
				}
				return fmt.Errorf("comments for %s: %w", p.ID, err)
			}
			perProduct[i] = comments
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := []models.Comment{}
	for _, comments := range perProduct {
		all = append(all, comments...)
	}
	return all, nil
}
