package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"otoran/internal/domain"
)

// Search runs one search request with the given parameters
func (c *Client) Search(ctx context.Context, params url.Values) (*domain.SearchResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, &UpstreamError{Op: "search", Err: fmt.Errorf("rate limit: %w", err)}
	}

	searchURL := c.cfg.SearchURL + "?" + params.Encode()
	c.logger.Debug("Searching videos: %s", searchURL)

	var resp searchResponse
	if err := c.getJSON(ctx, "search", searchURL, &resp); err != nil {
		return nil, err
	}

	videos := make([]domain.Video, len(resp.Data))
	for i, raw := range resp.Data {
		videos[i] = raw.toDomain()
	}

	c.logger.Debug("Search returned %d of %d videos", len(videos), *resp.Meta.TotalCount)

	return &domain.SearchResult{
		TotalCount: *resp.Meta.TotalCount,
		Videos:     videos,
	}, nil
}

// LastModified returns the time the snapshot data was last refreshed
func (c *Client) LastModified(ctx context.Context) (time.Time, error) {
	if err := c.wait(ctx); err != nil {
		return time.Time{}, &UpstreamError{Op: "version", Err: fmt.Errorf("rate limit: %w", err)}
	}

	var resp versionResponse
	if err := c.getJSON(ctx, "version", c.cfg.VersionURL, &resp); err != nil {
		return time.Time{}, err
	}

	return *resp.LastModified, nil
}

func (c *Client) getJSON(ctx context.Context, op, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("%s request finished: status %d (%v)", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &UpstreamError{Op: op, Status: resp.StatusCode, Err: errUnexpectedStatus}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &UpstreamError{Op: op, Err: fmt.Errorf("parse response: %w", err)}
	}

	if err := c.validate.Struct(out); err != nil {
		return &UpstreamError{Op: op, Err: schemaError(err)}
	}

	return nil
}
