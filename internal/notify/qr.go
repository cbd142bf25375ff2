package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPQRRenderer renders QR codes by calling an external image service
// (any endpoint accepting ?data= and ?size= and answering with a PNG,
// e.g. a self-hosted qr-server).  The reservation core treats the
// returned bytes as opaque.
type HTTPQRRenderer struct {
	endpoint string
	size     int
	client   *http.Client
}

// NewHTTPQRRenderer builds a renderer for the given service endpoint.
// size is the square pixel size of the generated image.
func NewHTTPQRRenderer(endpoint string, size int) *HTTPQRRenderer {
	return &HTTPQRRenderer{
		endpoint: endpoint,
		size:     size,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// RenderPNG fetches a PNG for the given payload.
func (r *HTTPQRRenderer) RenderPNG(ctx context.Context, data string) ([]byte, error) {
	q := url.Values{}
	q.Set("data", data)
	q.Set("size", fmt.Sprintf("%dx%d", r.size, r.size))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("qr service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qr service: unexpected status %d", resp.StatusCode)
	}
	png, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("qr service: read body: %w", err)
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("qr service: empty response")
	}
	return png, nil
}
