package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// Config carries everything the client needs to reach the backend. It is
// passed in at construction; call sites never read ambient configuration.
type Config struct {
	// BaseURL is the backend root, e.g. "https://erp.example.com".
	BaseURL string
	// APIKey and APISecret authenticate as a token pair.
	APIKey    string
	APISecret string
	// Timeout bounds each request when HTTPClient is not supplied.
	Timeout time.Duration
	// HTTPClient overrides the default client, e.g. for custom TLS setups.
	HTTPClient *http.Client
}

// Client implements Transport against the backend's resource API. Safe for
// concurrent use.
type Client struct {
	base *url.URL
	auth string
	http *http.Client
}

var _ Transport = (*Client)(nil)

// NewClient validates the configuration and builds a client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("docstore: base URL is required")
	}
	base, err := url.Parse(raw)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("docstore: invalid base URL %q", cfg.BaseURL)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	c := &Client{base: base, http: httpClient}
	if cfg.APIKey != "" {
		c.auth = "token " + cfg.APIKey + ":" + cfg.APISecret
	}
	return c, nil
}

// List fetches records of a document type. A zero query limit requests the
// backend's unbounded page.
func (c *Client) List(ctx context.Context, doctype string, query ListQuery) ([]Record, error) {
	if query.Limit < 0 {
		return nil, transportErrorf(0, "negative list limit %d", query.Limit)
	}

	params := url.Values{}
	params.Set("limit_page_length", strconv.Itoa(query.Limit))
	if len(query.Fields) > 0 {
		encoded, err := json.Marshal(query.Fields)
		if err != nil {
			return nil, transportErrorf(0, "encode fields: %v", err)
		}
		params.Set("fields", string(encoded))
	}
	if len(query.Filters) > 0 {
		triples := make([][]any, 0, len(query.Filters))
		for _, f := range query.Filters {
			triples = append(triples, []any{f.Field, f.Op, f.Value})
		}
		encoded, err := json.Marshal(triples)
		if err != nil {
			return nil, transportErrorf(0, "encode filters: %v", err)
		}
		if query.Or {
			params.Set("or_filters", string(encoded))
		} else {
			params.Set("filters", string(encoded))
		}
	}
	if query.OrderBy != "" {
		params.Set("order_by", query.OrderBy)
	}

	var records []Record
	if err := c.do(ctx, http.MethodGet, c.resourceURL(doctype, "")+"?"+params.Encode(), nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get fetches one record by identifier.
func (c *Client) Get(ctx context.Context, doctype, name string) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodGet, c.resourceURL(doctype, name), nil, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Create posts a new record to the document type's collection endpoint and
// returns the server's document.
func (c *Client) Create(ctx context.Context, doctype string, body Record) (Record, error) {
	var record Record
	if err := c.do(ctx, http.MethodPost, c.resourceURL(doctype, ""), body, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update puts the body to doctype/name and returns the server's document.
func (c *Client) Update(ctx context.Context, doctype, name string, body Record) (Record, error) {
	if strings.TrimSpace(name) == "" {
		return nil, transportErrorf(0, "update %s: record identifier is required", doctype)
	}
	var record Record
	if err := c.do(ctx, http.MethodPut, c.resourceURL(doctype, name), body, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func (c *Client) resourceURL(doctype, name string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + "/api/resource/" + url.PathEscape(doctype)
	if name != "" {
		u.Path += "/" + url.PathEscape(name)
	}
	return u.String()
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return transportErrorf(0, "encode body: %v", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, payload)
	if err != nil {
		return transportErrorf(0, "build request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != "" {
		req.Header.Set("Authorization", c.auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return transportErrorf(0, "request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErrorf(resp.StatusCode, "read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Status: resp.StatusCode, Message: errorReason(raw, resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return transportErrorf(resp.StatusCode, "decode response: %v", err)
	}
	if len(env.Data) == 0 {
		return transportErrorf(resp.StatusCode, "response missing data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return transportErrorf(resp.StatusCode, "decode data: %v", err)
	}
	return nil
}

// errorReason extracts a short human reason from an error payload without
// leaking server internals like tracebacks.
func errorReason(raw []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
		ExcType string `json:"exc_type"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
		if payload.ExcType != "" {
			return payload.ExcType
		}
	}
	return http.StatusText(status)
}
