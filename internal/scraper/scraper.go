package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pfrederiksen/jp-covid-stats/internal/logger"
)

const (
	UserAgent = "jp-covid-stats/1.0 (github.com/pfrederiksen/jp-covid-stats)"
	Timeout   = 30 * time.Second
)

// FetchError reports a response other than 200 OK.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("download failed: %s: unexpected status code: %d", e.URL, e.StatusCode)
}

// Scraper performs HTTP downloads.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// Option customises a Scraper.
type Option func(*Scraper)

// WithTimeout sets the client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Scraper) {
		s.client = c
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		userAgent: UserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch downloads url and returns the response body.
func (s *Scraper) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, err := s.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	logger.Debug("Fetched", logger.Fields{"url": url, "bytes": len(data)})
	logger.IncrCounter("fetch.ok")
	return data, nil
}

func (s *Scraper) open(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	start := time.Now()
	resp, err := s.client.Do(req)
	logger.RecordTiming("fetch", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		logger.IncrCounter("fetch.failed")
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}
