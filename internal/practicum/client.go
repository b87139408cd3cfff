// Package practicum is the HTTP client for the homework_statuses endpoint.
package practicum

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"
	DefaultTimeout  = 30 * time.Second

	// maxBody caps how much of a response is read.
	maxBody = 1 << 20
	// maxErrBody caps how much of an error response ends up in FetchError.
	maxErrBody = 256
)

type Config struct {
	Endpoint string
	Token    string
	Timeout  time.Duration
}

// Client fetches homework statuses. It is safe for concurrent use.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, errors.New("practicum token is empty")
	}
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, err
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		token:    cfg.Token,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// Fetch requests statuses changed since from (unix seconds) and returns the
// JSON-decoded body. Shape checks are left to the caller.
func (c *Client) Fetch(ctx context.Context, from int64) (any, error) {
	u, _ := url.Parse(c.endpoint)
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(from, 10))
	u.RawQuery = q.Encode()
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Op: "request", URL: c.endpoint, Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "request", URL: c.endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, &FetchError{Op: "request", URL: c.endpoint, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Op: "status", URL: c.endpoint, StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	var out any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &FetchError{Op: "decode", URL: c.endpoint, Err: err}
	}
	return out, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxErrBody {
		return s
	}
	cut := maxErrBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
