package bref

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	// BaseURL for Basketball-Reference box scores.
	BaseURL = "https://www.basketball-reference.com"

	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// MinRequestInterval keeps the scraper under the site's rate limits.
	MinRequestInterval = 3 * time.Second
)

// Client fetches Basketball-Reference pages through a headless browser with
// rate limiting. The site serves some tables via JS and throttles plain
// clients aggressively.
type Client struct {
	baseURL     string
	lastRequest time.Time
	interval    time.Duration

	allocCtx context.Context
	cancel   context.CancelFunc
}

// NewClient creates a new Basketball-Reference scraper client.
func NewClient() (*Client, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Client{
		baseURL:  BaseURL,
		interval: MinRequestInterval,
		allocCtx: allocCtx,
		cancel:   cancel,
	}, nil
}

// Close releases the browser allocator.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

// BoxScoreURL builds the box score page URL for a game date and home team
// abbreviation (Basketball-Reference keys pages by both).
func (c *Client) BoxScoreURL(date time.Time, homeAbbr string) string {
	return fmt.Sprintf("%s/boxscores/%s0%s.html", c.baseURL, date.Format("20060102"), homeAbbr)
}

// FetchBoxScore fetches the rendered box score page HTML for a game.
func (c *Client) FetchBoxScore(ctx context.Context, date time.Time, homeAbbr string) (string, error) {
	if !c.lastRequest.IsZero() {
		elapsed := time.Since(c.lastRequest)
		if elapsed < c.interval {
			wait := c.interval - elapsed
			log.Printf("[bref] rate limiting: waiting %v before next request", wait)
			time.Sleep(wait)
		}
	}

	html, err := c.fetch(ctx, c.BoxScoreURL(date, homeAbbr))
	c.lastRequest = time.Now()
	return html, err
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(c.allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, 30*time.Second)
	defer cancel()

	var htmlContent string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitVisible(`body`, chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML(`html`, &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("chromedp error: %w", err)
	}
	if htmlContent == "" {
		return "", fmt.Errorf("empty HTML content returned for %s", url)
	}
	return htmlContent, nil
}
