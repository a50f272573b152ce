package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"ptjobs/internal/version"
)

// Client is a JSON-over-HTTP client for the marketplace API.
type Client struct {
	Base    string
	HTTP    *http.Client
	Bearer  string
	Metrics *Metrics
}

// New returns an unauthenticated client for base. A nil httpClient falls
// back to http.DefaultClient.
func New(base string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: strings.TrimRight(base, "/"), HTTP: httpClient}
}

// WithToken returns a copy of c that authenticates as token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.Bearer = token
	return &cp
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// do issues one request. A nil in sends no body; a nil out discards the reply.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}

	u := c.Base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.Bearer)
	}

	started := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Metrics.observe(method, path, 0, started)
		return fmt.Errorf("api %s %s: %w", strings.ToLower(method), path, err)
	}
	defer resp.Body.Close()
	c.Metrics.observe(method, path, resp.StatusCode, started)

	if resp.StatusCode/100 != 2 {
		return newStatusError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrMalformedResponse, strings.ToLower(method), path, err)
	}
	return nil
}

// page is the DRF pagination envelope.
type page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// list accepts either a bare JSON array or a paginated envelope.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}
	var p page[T]
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*l = p.Results
	return nil
}

func getList[T any](ctx context.Context, c *Client, path string, q url.Values) ([]T, error) {
	var out list[T]
	if err := c.getJSON(ctx, path, q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return []T{}, nil
	}
	return out, nil
}
