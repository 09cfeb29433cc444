package shop

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

	"shop-admin/internal/logger"
)

// Client calls the shop admin API on behalf of a logged-in user.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
}

func New(baseURL, token string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{baseURL: parsed, token: token, httpClient: hc}, nil
}

// APIError is a non-2xx answer from the shop API.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Message, e.Status)
}

// ListOrders returns orders newest first. phone filters by customer phone when set.
func (c *Client) ListOrders(ctx context.Context, phone string) ([]Order, error) {
	const op = "list orders"
	q := url.Values{}
	if phone != "" {
		q.Set("phone", phone)
	}
	var orders []Order
	if err := c.getJSON(ctx, op, "/api/orders/", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListProducts returns the active catalogue.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "list products", "/api/products/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateOrderStatus moves order id to status and returns the status the server stored.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status string) (string, error) {
	const op = "update order status"
	if !ValidStatus(status) {
		return "", fmt.Errorf("%s: invalid status %q", op, status)
	}
	body, err := json.Marshal(statusRequest{Status: status})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/api/orders/"+strconv.Itoa(id)+"/update_status/", nil, body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	var out statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%s: decode: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Op: op, Status: resp.StatusCode, Message: out.Error}
	}
	logger.L.Info().Int("order", id).Str("status", out.NewStatus).Msg("order status updated")
	return out.NewStatus, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, q url.Values, dst any) error {
	resp, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		var body statusResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return &APIError{Op: op, Status: resp.StatusCode, Message: body.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%s: decode: %w", op, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body []byte) (*http.Response, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = q.Encode()

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	logger.L.Debug().Str("method", method).Str("url", u.String()).Msg("shop request")
	return c.httpClient.Do(req)
}
