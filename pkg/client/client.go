// Package client is a typed Go client for the clinisupply HTTP API.
// It handles bearer authentication, envelope decoding and error mapping
// so callers work with plain request/response structs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const defaultTimeout = 30 * time.Second

// Client talks to a clinisupply backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	userAgent  string

	mu    sync.RWMutex
	token string

	Auth         *AuthService
	Clinics      *ClinicService
	Suppliers    *SupplierService
	Catalog      *CatalogService
	Inventory    *InventoryService
	Orders       *OrderService
	Finance      *FinanceService
	Appointments *AppointmentService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithAPIVersion overrides the API version segment (default "v1").
func WithAPIVersion(version string) Option {
	return func(c *Client) { c.apiVersion = version }
}

// WithToken sets the bearer token used on every request. Login and
// Refresh update the token automatically; use this to resume a session.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiVersion: "v1",
		userAgent:  "clinisupply-go/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{client: c}
	c.Clinics = &ClinicService{client: c}
	c.Suppliers = &SupplierService{client: c}
	c.Catalog = &CatalogService{client: c}
	c.Inventory = &InventoryService{client: c}
	c.Orders = &OrderService{client: c}
	c.Finance = &FinanceService{client: c}
	c.Appointments = &AppointmentService{client: c}
	return c, nil
}

// SetToken replaces the bearer token used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// envelope is the wire format every endpoint responds with.
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     *errorInfo      `json:"error,omitempty"`
	Meta      *Meta           `json:"meta,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Meta carries pagination metadata for list endpoints.
type Meta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// ListOptions are the common query parameters of list endpoints.
type ListOptions struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string

	// ClinicID lets platform admins name the clinic to operate on.
	// Non-admin callers are always scoped to their own clinic.
	ClinicID string

	// Extra holds endpoint-specific filters, e.g. "status" or "category".
	Extra map[string]string
}

func (o *ListOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(o.PageSize))
	}
	if o.OrderBy != "" {
		v.Set("order_by", o.OrderBy)
	}
	if o.OrderDir != "" {
		v.Set("order_dir", o.OrderDir)
	}
	if o.Search != "" {
		v.Set("search", o.Search)
	}
	if o.ClinicID != "" {
		v.Set("clinic_id", o.ClinicID)
	}
	for k, val := range o.Extra {
		v.Set(k, val)
	}
	return v
}

func clinicQuery(clinicID string) url.Values {
	v := url.Values{}
	if clinicID != "" {
		v.Set("clinic_id", clinicID)
	}
	return v
}

// do executes a request and decodes the envelope. A non-success envelope
// or a transport failure is returned as an error; when out is non-nil
// the data payload is unmarshaled into it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (*Meta, error) {
	u := c.baseURL + "/api/" + c.apiVersion + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       "INVALID_RESPONSE",
			Message:    fmt.Sprintf("undecodable response: %s", truncate(raw, 200)),
		}
	}

	if !env.Success {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			RequestID:  env.RequestID,
		}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		} else {
			apiErr.Code = "UNKNOWN"
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return nil, apiErr
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decoding response data: %w", err)
		}
	}
	return env.Meta, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) (*Meta, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) postQuery(ctx context.Context, path string, query url.Values, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, query, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, query url.Values, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, query, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
