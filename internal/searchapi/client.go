// Package searchapi is a client for the video snapshot search API.
package searchapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"

	"otoran/internal/logger"
)

const (
	DefaultSearchURL  = "https://api.search.nicovideo.jp/api/v2/snapshot/video/contents/search"
	DefaultVersionURL = "https://api.search.nicovideo.jp/api/v2/snapshot/version"
)

// Config holds client configuration
type Config struct {
	SearchURL         string
	VersionURL        string
	UserAgent         string
	RequestsPerSecond int
}

// Client calls the search and version endpoints. It never retries; every
// failure is returned to the caller as an UpstreamError.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	validate    *validator.Validate
	cfg         Config
	logger      *logger.Logger
}

// NewClient creates a new search API client
func NewClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Client {
	if cfg.SearchURL == "" {
		cfg.SearchURL = DefaultSearchURL
	}
	if cfg.VersionURL == "" {
		cfg.VersionURL = DefaultVersionURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	log.Info("Search API client initialized: %s (rps: %d)", cfg.SearchURL, cfg.RequestsPerSecond)

	return &Client{
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(limit, 1),
		validate:    newValidator(),
		cfg:         cfg,
		logger:      log,
	}
}

// wait blocks until the rate limiter allows a request
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
