package sheet

import (
	"context"
	"errors"
	"fmt"
	"time"

	"menuboard/api/internal/config"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// ErrSheetNotConfigured means no spreadsheet ID was supplied. Fetching cannot
// work without one and the error is surfaced immediately, never retried.
var ErrSheetNotConfigured = errors.New("sheet: spreadsheet ID is not configured")

// FetchError is a network-level failure or a non-2xx response from the
// spreadsheet export endpoint.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sheet: fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("sheet: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Client fetches the raw CSV export of the configured Google Sheet.
type Client interface {
	Fetch(ctx context.Context) (string, error)
}

type client struct {
	rl         ratelimit.Limiter
	config     config.SheetConfig
	httpClient *resty.Client
}

func NewClient(cfg config.SheetConfig) Client {
	httpClient := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; Restaurant-Menu-App/1.0)").
		SetHeader("Accept", "text/csv,text/plain;q=0.9,*/*;q=0.8")

	return &client{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		config:     cfg,
		httpClient: httpClient,
	}
}

func (c *client) exportURL() string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv&gid=%d",
		c.config.BaseURL, c.config.ID, c.config.GID)
}

// Fetch performs a single rate-limited GET of the CSV export. Transport
// retries are resty's concern; there is no retry policy here.
func (c *client) Fetch(ctx context.Context) (string, error) {
	if c.config.ID == "" {
		return "", ErrSheetNotConfigured
	}

	c.rl.Take()

	url := c.exportURL()
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("sheet: fetch cancelled: %w", ctx.Err())
		}
		return "", &FetchError{URL: url, Err: err}
	}

	if resp.IsError() {
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode()}
	}

	log.Debugf("Fetched %d bytes of CSV from sheet %s", len(resp.String()), c.config.ID)
	return resp.String(), nil
}
