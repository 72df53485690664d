package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minglun/v32/backend/pkg/config"
	"github.com/minglun/v32/backend/pkg/httputil"
	"github.com/minglun/v32/backend/pkg/logger"
)

const (
	userAgent          = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	defaultCalendarURL = "https://finance.yahoo.com/calendar/earnings"
)

// Client talks to the Yahoo Finance endpoints. All Yahoo requests in
// the codebase go through this client, which paces them with the
// configured per-second budget.
type Client struct {
	httpClient   *httputil.Client
	logger       *logger.Logger
	chartBaseURL string
	quoteBaseURL string
	calendarURL  string
}

// NewClient creates a new Yahoo Finance client
func NewClient(cfg *config.Config, httpClient *httputil.Client, log *logger.Logger) *Client {
	httpClient.WithRateLimit(cfg.Yahoo.RequestsPerSecond)

	return &Client{
		httpClient:   httpClient,
		logger:       log,
		chartBaseURL: cfg.Yahoo.ChartBaseURL,
		quoteBaseURL: cfg.Yahoo.QuoteBaseURL,
		calendarURL:  defaultCalendarURL,
	}
}

// fetch performs a GET with browser-like headers and returns the body
func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	return body, nil
}
