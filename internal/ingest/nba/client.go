package nba

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	// BaseURL for the stats.nba.com JSON API.
	BaseURL = "https://stats.nba.com/stats"

	// stats.nba.com rejects requests without browser-looking headers.
	referer   = "https://www.nba.com/"
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	cacheTTL = 24 * time.Hour
)

// Cache stores raw API payloads between runs. Satisfied by cache.RedisCache.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Client handles stats.nba.com API requests, optionally backed by a payload
// cache so reprocessing a game does not re-fetch.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
}

// New creates a client with a custom base URL (tests point this at a stub).
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClient creates a client against the production API.
func NewClient() *Client {
	return New(BaseURL)
}

// WithCache attaches a payload cache and returns the client.
func (c *Client) WithCache(cache Cache) *Client {
	c.cache = cache
	return c
}

// FetchPlayByPlay fetches the full ordered play-by-play for a game.
func (c *Client) FetchPlayByPlay(ctx context.Context, gameID string) (*statsResponse, error) {
	url := fmt.Sprintf("%s/playbyplayv2?GameID=%s&StartPeriod=0&EndPeriod=14", c.baseURL, gameID)
	return c.fetch(ctx, "pbp:"+gameID, url)
}

// FetchGameSummary fetches the game header carrying the home and visitor
// team identifiers.
func (c *Client) FetchGameSummary(ctx context.Context, gameID string) (*statsResponse, error) {
	url := fmt.Sprintf("%s/boxscoresummaryv2?GameID=%s", c.baseURL, gameID)
	return c.fetch(ctx, "summary:"+gameID, url)
}

// FetchBoxScore fetches traditional box score stats (rosters, starters, and
// authoritative team point totals).
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) (*statsResponse, error) {
	url := fmt.Sprintf("%s/boxscoretraditionalv2?GameID=%s&StartPeriod=0&EndPeriod=14&StartRange=0&EndRange=0&RangeType=0", c.baseURL, gameID)
	return c.fetch(ctx, "boxscore:"+gameID, url)
}

func (c *Client) fetch(ctx context.Context, cacheKey, url string) (*statsResponse, error) {
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			resp := &statsResponse{}
			if err := json.Unmarshal([]byte(cached), resp); err == nil {
				return resp, nil
			}
			// Corrupt cache entry; fall through to a fresh fetch.
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Referer", referer)
	req.Header.Add("User-Agent", userAgent)

	httpResp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: status %d", url, httpResp.StatusCode)
	}

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	resp := &statsResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, string(body), cacheTTL); err != nil {
			log.Printf("[nba-client] cache write failed for %s: %v", cacheKey, err)
		}
	}
	return resp, nil
}

// statsResponse is the common stats.nba.com envelope: named result sets of
// header-labelled rows.
type statsResponse struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// set returns the named result set.
func (r *statsResponse) set(name string) (*resultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	return nil, fmt.Errorf("result set %q not present", name)
}

// columns maps header labels to row indices so lookups survive column
// reordering between API versions.
func (rs *resultSet) columns() map[string]int {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[h] = i
	}
	return idx
}

// Loose cell coercions: the row sets mix strings, floats, and nulls.

func cellString(row []interface{}, idx map[string]int, col string) string {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return ""
}

func cellInt64(row []interface{}, idx map[string]int, col string) int64 {
	i, ok := idx[col]
	if !ok || i >= len(row) {
		return 0
	}
	switch v := row[i].(type) {
	case float64:
		return int64(v)
	case string:
		var n int64
		fmt.Sscanf(v, "%d", &n)
		return n
	default:
		return 0
	}
}

func cellInt(row []interface{}, idx map[string]int, col string) int {
	return int(cellInt64(row, idx, col))
}
