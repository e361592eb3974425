// Package recognizer is the HTTP client for the external image-to-structure
// recognition service.
//
// The service is a black box: it accepts a receipt image as multipart
// content and answers with a single JSON object. This package only moves
// bytes; interpreting the payload is the normalizer's job.
package recognizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// ErrUnavailable is returned when the recognition service is unreachable,
// times out, or answers with a non-success status. Callers detect it with
// errors.Is.
var ErrUnavailable = errors.New("recognition service unavailable")

// DefaultTimeout bounds one recognition call, network included. Vision
// models routinely take tens of seconds on a full receipt photo.
const DefaultTimeout = 30 * time.Second

// Client calls the recognition service over HTTP.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a Client for the given endpoint. A non-positive timeout
// falls back to DefaultTimeout.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Process sends the image to the recognition service and returns the raw
// JSON response body. Any transport failure, timeout, or non-2xx status
// wraps ErrUnavailable; the caller decides whether the whole ingestion
// fails.
func (c *Client) Process(ctx context.Context, image []byte, filename string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("writing image data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, detail)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	return raw, nil
}
