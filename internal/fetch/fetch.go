// Package fetch downloads remote images into a local working directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"

	"github.com/akarpenko/image-normalizer/internal/normalize"
)

// Client downloads images over HTTP with a bounded timeout and retries on
// transient failures.
type Client struct {
	http     *http.Client
	strategy retry.Strategy
}

// New creates a Client. A zero timeout disables the client-side deadline.
func New(timeout time.Duration, strategy retry.Strategy) *Client {
	return &Client{
		http:     &http.Client{Timeout: timeout},
		strategy: strategy,
	}
}

// Download fetches the image at rawURL and writes it to destDir under a
// generated name that keeps the original extension. The URL path must carry
// a recognized image extension. Returns the path of the downloaded file.
func (c *Client) Download(ctx context.Context, rawURL, destDir string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", normalize.ErrInvalidArgument, rawURL)
	}

	ext := strings.ToLower(path.Ext(u.Path))
	switch ext {
	case ".png", ".svg", ".jpg", ".jpeg", ".gif":
	default:
		return "", fmt.Errorf("%w: %s", normalize.ErrNotAnImage, rawURL)
	}

	dest := filepath.Join(destDir, uuid.New().String()+ext)

	err = retry.Do(func() error {
		return c.fetch(ctx, rawURL, dest)
	}, c.strategy)
	if err != nil {
		normalize.Discard(dest)
		return "", fmt.Errorf("fetch: failed to download %s: %w", rawURL, err)
	}

	return dest, nil
}

func (c *Client) fetch(ctx context.Context, rawURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "application/octet-stream") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dest, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	return nil
}
