// CLAUDE:SUMMARY HTTP backend applying batched mutation requests against a remote document store's batchUpdate endpoint.
package docsedit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPBackend sends mutation batches to a remote document store over HTTP.
// It implements Backend only: the store's read endpoint is not exposed here,
// so deletes and replaces through this backend record without text capture.
type HTTPBackend struct {
	baseURL string
	token   string
	client  *http.Client
}

type HTTPBackendOption func(*HTTPBackend)

// WithHTTPClient replaces the default client (15s timeout).
func WithHTTPClient(c *http.Client) HTTPBackendOption {
	return func(b *HTTPBackend) { b.client = c }
}

func NewHTTPBackend(baseURL, token string, opts ...HTTPBackendOption) *HTTPBackend {
	b := &HTTPBackend{
		baseURL: baseURL,
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *HTTPBackend) BatchUpdate(ctx context.Context, documentID string, requests []Request) error {
	body, err := json.Marshal(map[string]any{"requests": requests})
	if err != nil {
		return &ErrBackend{Op: "batchUpdate", Cause: err}
	}

	endpoint := b.baseURL + "/v1/documents/" + url.PathEscape(documentID) + ":batchUpdate"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(body))
	if err != nil {
		return &ErrBackend{Op: "batchUpdate", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return &ErrBackend{Op: "batchUpdate", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &ErrBackend{
			Op:    "batchUpdate",
			Cause: fmt.Errorf("store returned %d: %s", resp.StatusCode, string(snippet)),
		}
	}
	io.Copy(io.Discard, resp.Body)
	return nil
}
