package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// maxBody caps how much of a response body is read.
const maxBody = 4 << 20

// StatusError is returned when the service answers with a non-2xx status.
// Message holds the service's "error" text when the body carried one.
type StatusError struct {
	StatusCode int
	Message    string
	Suggestion string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// IsStatus reports whether err is a *StatusError and returns it.
func IsStatus(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Client talks to one recommendation service.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Client for baseURL with the given request timeout.
// A zero timeout means no client-side timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service root this client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search returns titles matching query, in service order.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	var out SearchResponse
	if err := c.get(ctx, "/api/search", url.Values{"q": {query}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recommend asks for movies similar to movie.
// Non-2xx answers come back as *StatusError.
func (c *Client) Recommend(ctx context.Context, movie string) (*RecommendResponse, error) {
	body, err := json.Marshal(RecommendRequest{Movie: movie})
	if err != nil {
		return nil, fmt.Errorf("api: marshal recommend request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/recommend", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("api: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out RecommendResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health reports service status.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var out HealthResponse
	if err := c.get(ctx, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Movies returns one page of the catalogue. Non-positive arguments are
// left to the service defaults.
func (c *Client) Movies(ctx context.Context, page, perPage int) (*MoviesResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if perPage > 0 {
		q.Set("per_page", strconv.Itoa(perPage))
	}
	var out MoviesResponse
	if err := c.get(ctx, "/api/movies", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	return c.do(req, out)
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "flick/0.1")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return fmt.Errorf("api: request cancelled: %w", ctxErr)
		}
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var eb errorBody
		// An empty or non-JSON error body simply leaves Message blank.
		if len(bytes.TrimSpace(data)) > 0 && json.Unmarshal(data, &eb) == nil {
			se.Message = eb.Error
			se.Suggestion = eb.Suggestion
		}
		return se
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("api: decode %s: %w", req.URL.Path, err)
	}
	return nil
}
