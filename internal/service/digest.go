package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"otoran/internal/digest"
	"otoran/internal/domain"
	"otoran/internal/logger"
)

const (
	popularWindowDays = 7
	popularMaxResults = 20
)

// SearchClient interface for the external search API
type SearchClient interface {
	Search(ctx context.Context, params url.Values) (*domain.SearchResult, error)
	LastModified(ctx context.Context) (time.Time, error)
}

// ViewRepository interface for digest view operations
type ViewRepository interface {
	Create(ctx context.Context, view *domain.DigestView) error
	GetPopularDigests(ctx context.Context, timeWindowDays, numResults int) ([]domain.PopularDigest, error)
}

// DigestService assembles daily digests
type DigestService struct {
	collections digest.Collections
	search      SearchClient
	views       ViewRepository
	logger      *logger.Logger
}

// NewDigestService creates a new digest service
func NewDigestService(collections digest.Collections, search SearchClient, views ViewRepository, log *logger.Logger) *DigestService {
	log.Info("Digest service initialized with %d collections", len(collections))
	return &DigestService{
		collections: collections,
		search:      search,
		views:       views,
		logger:      log,
	}
}

// Plan resolves a digest request without calling the search API
func (s *DigestService) Plan(word, year, month, day string) (*digest.Plan, error) {
	plan, err := s.collections.Build(word, year, month, day)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Planned digest %s: sort=%s window=[%s, %s)",
		plan.CanonicalPath, plan.Query.Sort, plan.Day.Format(time.RFC3339), plan.End().Format(time.RFC3339))
	return plan, nil
}

// GetDigest fetches one page of results for the plan and ranks it. Any search
// failure is returned as is; there is no partial result.
func (s *DigestService) GetDigest(ctx context.Context, plan *digest.Plan) (*domain.Digest, error) {
	log := logger.FromContext(ctx, s.logger)

	result, err := s.search.Search(ctx, plan.Query.Values())
	if err != nil {
		log.Error("Search failed for %s: %v", plan.CanonicalPath, err)
		return nil, fmt.Errorf("failed to search videos: %w", err)
	}

	d := &domain.Digest{
		Collection: plan.Collection,
		Day:        plan.Day,
		Path:       plan.CanonicalPath,
		PrevPath:   plan.PrevPath(),
		NextPath:   plan.NextPath(),
		TotalCount: result.TotalCount,
		Videos:     digest.Rank(result.Videos),
		MajorTags:  digest.MajorTags(result.Videos),
	}

	log.Info("Digest %s: %d of %d videos, %d major tags",
		plan.CanonicalPath, len(d.Videos), d.TotalCount, len(d.MajorTags))

	view := &domain.DigestView{
		Word:       plan.Collection.Word,
		Day:        plan.Day.Format("2006/01/02"),
		TotalCount: d.TotalCount,
		ShownCount: len(d.Videos),
	}
	if err := s.views.Create(ctx, view); err != nil {
		log.Error("Failed to record digest view for %s: %v", plan.CanonicalPath, err)
		// Don't fail the request for logging errors
	}

	return d, nil
}

// LatestDay returns the most recent day fully covered by the snapshot data
func (s *DigestService) LatestDay(ctx context.Context) (time.Time, error) {
	lastModified, err := s.search.LastModified(ctx)
	if err != nil {
		s.logger.Warn("Failed to get snapshot version: %v", err)
		return time.Time{}, fmt.Errorf("failed to get snapshot version: %w", err)
	}
	return digest.Today(lastModified).AddDate(0, 0, -1), nil
}

// LatestPath returns the canonical path of the latest digest for word
func (s *DigestService) LatestPath(ctx context.Context, word string) (string, error) {
	if _, ok := s.collections.Lookup(word); !ok {
		return "", digest.ErrUnknownCollection
	}
	day, err := s.LatestDay(ctx)
	if err != nil {
		return "", err
	}
	return digest.CanonicalPath(word, day), nil
}

// GetPopularDigests retrieves the most viewed digests of the last week
func (s *DigestService) GetPopularDigests(ctx context.Context) ([]domain.PopularDigest, error) {
	s.logger.Debug("Fetching popular digests (%d days, max %d results)", popularWindowDays, popularMaxResults)

	digests, err := s.views.GetPopularDigests(ctx, popularWindowDays, popularMaxResults)
	if err != nil {
		s.logger.Error("Failed to get popular digests: %v", err)
		return nil, err
	}
	return digests, nil
}

// Collections returns every collection sorted by word
func (s *DigestService) Collections() []domain.Collection {
	return s.collections.List()
}
