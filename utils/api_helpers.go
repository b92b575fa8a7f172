package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/models"
)

// RespondJSON sends a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// headers are already sent, nothing left but to log
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

// RespondError sends a JSON error response and logs the error to the provided logger or stdout.
// If logger is nil, it prints to stdout using fmt.Println.
func RespondError(w http.ResponseWriter, logger *strings.Builder, message string, status int) {
	if logger != nil {
		AddToLogMessage(logger, message)
	} else {
		fmt.Println("[Error]", message)
	}
	RespondJSON(w, status, map[string]string{"error": message})
}

// PresignImageURLs generates presigned URLs for a slice of image keys/URLs.
// If a URL is already http/https, it's kept as is.
// If it's a key, it attempts to presign it. S3 failures result in the original key being returned as fallback.
func PresignImageURLs(ctx context.Context, images []string) []string {
	presignedURLs := make([]string, 0, len(images))
	for _, img := range images {
		presignedURLs = append(presignedURLs, presignOrKeep(ctx, img))
	}
	return presignedURLs
}

// PresignProducts rewrites image and AR model keys of each product into
// presigned URLs, in place.
func PresignProducts(ctx context.Context, products []models.Product) {
	for i := range products {
		for j := range products[i].Images {
			products[i].Images[j].URL = presignOrKeep(ctx, products[i].Images[j].URL)
		}
		if products[i].Model3D != "" {
			products[i].Model3D = presignOrKeep(ctx, products[i].Model3D)
		}
	}
}

func presignOrKeep(ctx context.Context, keyOrURL string) string {
	if keyOrURL == "" || strings.HasPrefix(keyOrURL, "http") {
		return keyOrURL
	}
	if url, err := GetPresignedURL(ctx, keyOrURL); err == nil {
		return url
	}
	return keyOrURL
}

// LatencyMiddleware logs the duration of each request
func LatencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		fmt.Printf("[LATENCY] %s %s - %v\n", r.Method, r.URL.Path, duration)
	})
}

// CORSMiddleware allows the storefront UI to call the API from the browser.
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS, PUT, DELETE")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
