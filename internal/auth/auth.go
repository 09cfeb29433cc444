package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LoginPath is the fixed login endpoint, relative to the API base URL.
const LoginPath = "/api/login/"

// DefaultFailureMessage is shown when a rejection carries no error text.
const DefaultFailureMessage = "Invalid username or password"

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate enforces presence of both fields.
func (c Credentials) Validate() error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "username")
	}
	if c.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

type loginSuccess struct {
	Token *string `json:"token"`
}

type loginFailure struct {
	Error *string `json:"error"`
}

// Client talks to the login endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

type Options struct {
	HTTPClient *http.Client
	// Timeout applies when HTTPClient is nil. Zero leaves the transport default.
	Timeout time.Duration
}

func New(baseURL string, opts Options) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("base url is empty")
	}
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q needs scheme and host", baseURL)
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{endpoint: parsed.String() + LoginPath, httpClient: hc}, nil
}

// Endpoint returns the absolute login URL.
func (c *Client) Endpoint() string { return c.endpoint }

// Login submits creds once. On success it returns the token exactly as the
// server sent it. Errors are *ValidationError, *AuthenticationError or *TransportError.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	if err := creds.Validate(); err != nil {
		return "", err
	}
	body, err := json.Marshal(creds)
	if err != nil {
		return "", &TransportError{Op: "encode request", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &TransportError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Op: "read response", Err: err}
	}

	if resp.StatusCode == http.StatusOK {
		var ok loginSuccess
		if err := json.Unmarshal(raw, &ok); err != nil {
			return "", &TransportError{Op: "decode response", Err: err}
		}
		if ok.Token == nil || *ok.Token == "" {
			return "", &TransportError{Op: "decode response", Err: errors.New("response has no token")}
		}
		return *ok.Token, nil
	}

	var fail loginFailure
	if err := json.Unmarshal(raw, &fail); err != nil {
		return "", &TransportError{Op: "decode response", Err: fmt.Errorf("status %d: %w", resp.StatusCode, err)}
	}
	msg := DefaultFailureMessage
	if fail.Error != nil && *fail.Error != "" {
		msg = *fail.Error
	}
	return "", &AuthenticationError{Status: resp.StatusCode, Message: msg}
}
