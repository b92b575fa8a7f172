package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxImageBytes caps a mirrored supplier image.
const maxImageBytes = 10 << 20

// UploadImagesToS3 downloads images from URLs and uploads them to S3 under folderPrefix.
// Returns a map of Original URL -> S3 Object Key; images that fail are left out.
func UploadImagesToS3(ctx context.Context, urls []string, folderPrefix string) map[string]string {
	urlToKey := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Limit concurrency
	semaphore := make(chan struct{}, 5)

	for _, imageURL := range urls {
		if imageURL == "" {
			continue
		}
		wg.Add(1)
		go func(imageURL string) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			objectKey := fmt.Sprintf("%s/%s%s", folderPrefix, uuid.New().String(), imageExt(imageURL))
			if err := downloadAndUpload(ctx, imageURL, objectKey); err != nil {
				fmt.Printf("Failed to process %s: %v\n", imageURL, err)
				return
			}

			mu.Lock()
			urlToKey[imageURL] = objectKey
			mu.Unlock()
		}(imageURL)
	}

	wg.Wait()
	return urlToKey
}

func imageExt(imageURL string) string {
	base := path.Base(strings.SplitN(imageURL, "?", 2)[0])
	ext := strings.ToLower(path.Ext(base))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif", ".avif":
		return ext
	}
	return ".jpg"
}

func downloadAndUpload(ctx context.Context, imageURL, objectKey string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	// PutObject needs a seekable body to compute the payload hash
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = UploadFileToS3(ctx, bytes.NewReader(bodyBytes), objectKey, contentType)
	return err
}
