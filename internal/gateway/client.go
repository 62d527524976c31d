package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is the HTTP transport to the content API. Every call carries its
// own deadline and is attempted exactly once.
type Client struct {
	client  *resty.Client
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{
		client: resty.New().
			SetRetryCount(0).
			SetHeader("Accept", "application/json").
			SetHeader("Content-Type", "application/json"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the absolute endpoint for a resource name.
func (c *Client) URL(resource string) string {
	return c.baseURL + "/" + strings.TrimLeft(resource, "/")
}

// Get performs a single GET with the given timeout. Network errors, timeouts
// and non-2xx statuses are all returned as errors.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("request to %s timed out after %s: %w", url, timeout, context.DeadlineExceeded)
		}
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}

	if !resp.IsSuccess() {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode(), url)
	}

	return resp.Body(), nil
}

// decodeCollection splits a response body into raw records. It accepts a
// bare array, a {"data": [...]} envelope, a {"data": {...}} single-record
// envelope and a bare object.
func decodeCollection(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, errors.New("empty response body")
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("failed to parse collection: %w", err)
		}
		return items, nil
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(body, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse response object: %w", err)
		}
		data, ok := obj["data"]
		if !ok {
			return []json.RawMessage{body}, nil
		}
		data = bytes.TrimSpace(data)
		if len(data) == 0 || string(data) == "null" {
			return []json.RawMessage{}, nil
		}
		if data[0] == '{' {
			return []json.RawMessage{data}, nil
		}
		return decodeCollection(data)
	default:
		return nil, fmt.Errorf("unexpected response payload starting with %q", body[0])
	}
}
