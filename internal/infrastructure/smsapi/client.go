// Package smsapi is a small HTTP client for the menu endpoints of the SMS API.
package smsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

const (
	defaultTimeout = 10 * time.Second
	defaultRetries = 2
	retryBase      = 200 * time.Millisecond
	maxErrorBody   = 4 << 10
)

var errDecode = errors.New("decode response")

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sms api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("sms api: status %d: %s", e.StatusCode, e.Message)
}

// Client talks to the API under a base URL such as
// http://localhost:8080/api/sms.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	retries uint64
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token sent on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRetries sets how many times a failed GET is retried. Only network
// errors and 5xx responses are retried.
func WithRetries(n uint64) Option {
	return func(c *Client) { c.retries = n }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		retries: defaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", err
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("sms api: login returned no token")
	}
	c.token = out.Token
	return out.Token, nil
}

// MenuCatalog fetches the full navigation catalog. Kind values are
// normalised so legacy spellings resolve the same way.
func (c *Client) MenuCatalog(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	if err := c.get(ctx, "/menu-catalog", &items); err != nil {
		return nil, fmt.Errorf("menu catalog: %w", err)
	}
	for i := range items {
		items[i].Kind = domain.ParseMenuKind(string(items[i].Kind))
	}
	return items, nil
}

// AccessEntries fetches the access list of a role.
func (c *Client) AccessEntries(ctx context.Context, roleID int64) ([]domain.AccessEntry, error) {
	var entries []domain.AccessEntry
	if err := c.get(ctx, fmt.Sprintf("/roles/%d/access-entries", roleID), &entries); err != nil {
		return nil, fmt.Errorf("access entries of role %d: %w", roleID, err)
	}
	for i := range entries {
		entries[i].State = domain.ParseAccessState(string(entries[i].State))
	}
	return entries, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	b := retry.WithMaxRetries(c.retries, retry.NewExponential(retryBase))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if retryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", errDecode, err)
	}
	return nil
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	return apiErr
}

func retryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return !errors.Is(err, errDecode)
}
