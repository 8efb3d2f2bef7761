package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Get fetches path and decodes the envelope's data into T.
func Get[T any](ctx context.Context, c *Client, creds Credentials, path string, query url.Values) (T, error) {
	return Send[T](ctx, c, creds, Request{Method: http.MethodGet, Path: path, Query: query})
}

// Send performs req and decodes the envelope's data into T. Responses without
// a body decode to the zero value.
func Send[T any](ctx context.Context, c *Client, creds Credentials, req Request) (T, error) {
	var zero T
	resp, err := c.Do(ctx, creds, req)
	if err != nil {
		return zero, err
	}
	if len(resp.Body) == 0 {
		return zero, nil
	}

	var env Envelope[T]
	if err := resp.decode(&env); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return env.Data, nil
}

// GetPage fetches a paginated list endpoint.
func GetPage[T any](ctx context.Context, c *Client, creds Credentials, path string, query url.Values) (*PageEnvelope[T], error) {
	resp, err := c.Do(ctx, creds, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return nil, err
	}

	var page PageEnvelope[T]
	if err := resp.decode(&page); err != nil {
		return nil, fmt.Errorf("decode GET %s: %w", path, err)
	}
	return &page, nil
}

// Anonymous performs a call without a session, as the login endpoints need.
// The raw response is returned beside the data so callers can keep cookies.
func Anonymous[T any](ctx context.Context, c *Client, req Request) (T, *Response, error) {
	var zero T
	resp, err := c.Do(ctx, nil, req)
	if err != nil {
		return zero, resp, err
	}

	var env Envelope[T]
	if err := resp.decode(&env); err != nil {
		return zero, resp, fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return env.Data, resp, nil
}
