package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"otoran/internal/domain"
	"otoran/internal/logger"
)

// ViewRepository handles database operations for digest views
type ViewRepository struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewViewRepository creates a new view repository
func NewViewRepository(db *sql.DB, log *logger.Logger) *ViewRepository {
	log.Info("View repository initialized")
	return &ViewRepository{
		db:     db,
		logger: log,
	}
}

// Create records a rendered digest
func (r *ViewRepository) Create(ctx context.Context, view *domain.DigestView) error {
	start := time.Now()
	r.logger.Debug("Recording digest view: %s %s", view.Word, view.Day)

	query := `INSERT INTO digest_views (word, day, total_count, shown_count, created_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)`

	result, err := r.db.ExecContext(ctx, query, view.Word, view.Day, view.TotalCount, view.ShownCount)
	duration := time.Since(start)

	if err != nil {
		r.logger.Error("Database insert failed: %v (%v)", err, duration)
		return fmt.Errorf("failed to record digest view: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("Failed to get last insert ID: %v (%v)", err, duration)
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	view.ID = int(id)

	r.logger.Debug("Digest view recorded: id=%d (%v)", view.ID, duration)
	return nil
}

// GetPopularDigests retrieves the most viewed digests of the last N days
func (r *ViewRepository) GetPopularDigests(
	ctx context.Context, timeWindowDays, numResults int,
) ([]domain.PopularDigest, error) {
	start := time.Now()
	r.logger.Debug("Getting popular digests: %d days, max %d results", timeWindowDays, numResults)

	query := `
		SELECT COUNT(*) as count, word, day
		FROM digest_views
		WHERE created_at > datetime('now', '-' || ? || ' days')
		GROUP BY word, day
		ORDER BY count DESC, day DESC, word ASC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, timeWindowDays, numResults)
	if err != nil {
		duration := time.Since(start)
		r.logger.Error("Database query failed: %v (%v)", err, duration)
		return nil, fmt.Errorf("failed to get popular digests: %w", err)
	}
	defer rows.Close()

	var digests []domain.PopularDigest
	for rows.Next() {
		var pd domain.PopularDigest
		if err := rows.Scan(&pd.Count, &pd.Word, &pd.Day); err != nil {
			duration := time.Since(start)
			r.logger.Error("Failed to scan popular digest row: %v (%v)", err, duration)
			return nil, fmt.Errorf("failed to scan popular digest: %w", err)
		}
		digests = append(digests, pd)
	}

	if err := rows.Err(); err != nil {
		duration := time.Since(start)
		r.logger.Error("Error iterating popular digest rows: %v (%v)", err, duration)
		return nil, fmt.Errorf("error iterating popular digests: %w", err)
	}

	duration := time.Since(start)
	r.logger.Debug("Popular digests retrieved successfully: %d digests (%v)", len(digests), duration)
	return digests, nil
}
