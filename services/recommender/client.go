// Package recommender is the typed binding to the recommendation REST API.
// It performs no retries, sends no credentials and caches nothing: every call
// maps to exactly one HTTP request.
package recommender

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

	"tubewise/models"
)

const (
	defaultBaseURL      = "http://localhost:8080/api"
	defaultHistoryLimit = 50
	defaultUserAgent    = "tubewise/1.0"
)

// Config holds the connection settings for the backend.
type Config struct {
	BaseURL string
	// UserID is the active user baked into every request.
	UserID       int64
	HistoryLimit int
	// Timeout of 0 means requests never time out on their own.
	Timeout   time.Duration
	UserAgent string
}

// Client handles calls to the recommendation backend.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	userID       int64
	historyLimit int
	userAgent    string
}

// NewClient creates a client. Zero-valued config fields fall back to defaults.
func NewClient(cfg Config) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client on top of a caller-supplied http.Client.
func NewClientWithHTTP(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		httpClient:   httpClient,
		baseURL:      base,
		userID:       cfg.UserID,
		historyLimit: limit,
		userAgent:    ua,
	}
}

// UserID returns the active user identifier.
func (c *Client) UserID() int64 {
	return c.userID
}

// TriggerIngestion asks the backend to scrape, summarise and embed up to max
// videos about topic. The backend answers with a plain-text status line.
func (c *Client) TriggerIngestion(ctx context.Context, topic string, max int) (string, error) {
	q := newQuery().add("topic", topic).add("max", strconv.Itoa(max))
	body, err := c.do(ctx, http.MethodPost, "/ingestion/trigger", q, nil)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Recommend runs a recommendation query for the active user.
func (c *Client) Recommend(ctx context.Context, query string) (*models.Recommendation, error) {
	q := newQuery().add("userId", c.uid()).add("query", query)
	var rec models.Recommendation
	if err := c.getJSON(ctx, "/recommendations/ask", q, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// RecordInteraction sends an action for a video. The returned record is
// drained and discarded.
func (c *Client) RecordInteraction(ctx context.Context, videoID string, action models.Action) error {
	payload := models.InteractionRequest{UserID: c.userID, VideoID: videoID, Action: action}
	_, err := c.do(ctx, http.MethodPost, "/interactions", nil, payload)
	return err
}

// DeleteInteraction removes the active user's interaction with a video.
func (c *Client) DeleteInteraction(ctx context.Context, videoID string) error {
	q := newQuery().add("userId", c.uid()).add("videoId", videoID)
	_, err := c.do(ctx, http.MethodDelete, "/interactions", q, nil)
	return err
}

// History returns the most recent interactions, newest first as the backend
// orders them. Duplicates are possible.
func (c *Client) History(ctx context.Context) ([]models.Interaction, error) {
	q := newQuery().add("userId", c.uid()).add("limit", strconv.Itoa(c.historyLimit))
	var items []models.Interaction
	if err := c.getJSON(ctx, "/interactions/history", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// WatchLater returns interactions flagged for later viewing.
func (c *Client) WatchLater(ctx context.Context) ([]models.Interaction, error) {
	q := newQuery().add("userId", c.uid())
	var items []models.Interaction
	if err := c.getJSON(ctx, "/interactions/watch-later", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetUser fetches the active user's profile.
func (c *Client) GetUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.getJSON(ctx, "/users/"+c.uid(), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a user from a registration form.
func (c *Client) Register(ctx context.Context, reg models.Registration) (*models.User, error) {
	body, err := c.do(ctx, http.MethodPost, "/users", nil, reg)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("decode registration response: %w", err)
	}
	return &user, nil
}

// Ping checks that the backend answers. Any HTTP response, including a 404
// for a user that was never seeded, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/users/"+c.uid(), nil, nil)
	var apiErr *APIError
	if err == nil || errors.As(err, &apiErr) {
		return nil
	}
	return err
}

func (c *Client) uid() string {
	return strconv.FormatInt(c.userID, 10)
}

func (c *Client) getJSON(ctx context.Context, path string, q *query, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, q, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, q *query, payload any) ([]byte, error) {
	endpoint := c.baseURL + path
	if q != nil && len(q.parts) > 0 {
		endpoint += "?" + q.encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommender %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

// query keeps parameters in insertion order; url.Values sorts keys and
// encodes spaces as '+'.
type query struct {
	parts []string
}

func newQuery() *query {
	return &query{}
}

func (q *query) add(key, value string) *query {
	q.parts = append(q.parts, url.QueryEscape(key)+"="+escapeValue(value))
	return q
}

func (q *query) encode() string {
	return strings.Join(q.parts, "&")
}

// escapeValue percent-encodes like url.QueryEscape but writes spaces as %20.
// A literal '+' is already %2B at this point, so the swap is unambiguous.
func escapeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}
