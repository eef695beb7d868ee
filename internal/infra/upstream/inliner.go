package upstream

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

// Inliner downloads a single image and returns its bytes base64-encoded.
// One outbound call per invocation, no retries, no caching at this layer.
type Inliner struct {
	client HTTPClient
}

func NewInliner(client HTTPClient) *Inliner {
	if client == nil {
		client = &http.Client{Timeout: 25 * time.Second}
	}
	return &Inliner{client: client}
}

var _ domain.ImageInliner = (*Inliner)(nil)

func (in *Inliner) Inline(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", &domain.ImageError{URL: rawURL, Err: err}
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("User-Agent", userAgent)

	resp, err := in.client.Do(req)
	if err != nil {
		return "", &domain.ImageError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.ImageError{URL: rawURL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ImageError{URL: rawURL, Err: err}
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
