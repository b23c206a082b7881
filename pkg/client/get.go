package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// StatusError is returned by Get for any non-200 response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: http status %d", e.URL, e.Code)
}

// Get issues a GET and returns the response only on 200 OK. The caller closes the body.
func Get(ctx context.Context, c HTTPClient, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		CloseBody(resp.Body)
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}
	return resp, nil
}

func CloseBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		slog.Warn("Failed to close response body", "err", err)
	}
}
