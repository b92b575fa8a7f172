package api

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/chat"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/poller"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/scrapers"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/store"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

// ImportFunc scrapes a supplier page into a product draft.
type ImportFunc func(ctx context.Context, url string) (*models.ProductDraft, error)

// MirrorFunc copies remote images into object storage and returns
// original URL -> object key for the ones that succeeded.
type MirrorFunc func(ctx context.Context, urls []string, folderPrefix string) map[string]string

// Handler serves the storefront API. Optional fields may be nil; the
// endpoints that need them answer 503.
type Handler struct {
	Backend  *client.Client
	Sessions *store.Registry
	Bot      *chat.Bot
	Counter  *poller.OrderCounter
	Notifier *poller.Notifier

	Import       ImportFunc
	MirrorImages MirrorFunc
	JWTSecret    string

	Now  func() time.Time
	Rand *rand.Rand
}

// NewHandler wires the default importer, S3 mirroring, and clock.
func NewHandler(backend *client.Client, sessions *store.Registry) *Handler {
	return &Handler{
		Backend:      backend,
		Sessions:     sessions,
		Import:       scrapeProduct,
		MirrorImages: utils.UploadImagesToS3,
		Now:          time.Now,
	}
}

func scrapeProduct(ctx context.Context, url string) (*models.ProductDraft, error) {
	scraper, resolved, err := scrapers.GetScraper(ctx, url)
	if err != nil {
		return nil, err
	}
	return scraper.ScrapeProduct(ctx, resolved)
}

// backend returns a client that forwards the caller's bearer token.
func (h *Handler) backend(r *http.Request) *client.Client {
	return h.Backend.WithToken(bearerToken(r))
}

// backendStatus maps a backend failure onto the status we answer with.
func backendStatus(err error) int {
	var httpErr *client.HTTPError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidTransition):
		return http.StatusBadRequest
	case errors.Is(err, client.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden):
		return httpErr.StatusCode
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}
