package primary

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

var _ store.SearchHistoryStore = (*StoreImpl)(nil)

func (s *StoreImpl) RecordSearchQuery(ctx context.Context, query string, resultsCount int) (*models.SearchQuery, error) {
	sql := `
		INSERT INTO search_queries (query, results_count, executed_at)
		VALUES ($1, $2, $3)
		RETURNING id, executed_at`

	now := time.Now()
	searchQuery := &models.SearchQuery{
		Query:        query,
		ResultsCount: resultsCount,
	}

	err := s.db.QueryRow(ctx, sql, query, resultsCount, now).Scan(
		&searchQuery.ID, &searchQuery.ExecutedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record search query: %w", err)
	}
	return searchQuery, nil
}

func (s *StoreImpl) ListSearchQueries(ctx context.Context, limit int) ([]*models.SearchQuery, error) {
	if limit <= 0 {
		limit = 20
	}
	sql := `
		SELECT id, query, results_count, executed_at
		FROM search_queries
		ORDER BY executed_at DESC
		LIMIT $1`

	rows, err := s.db.Query(ctx, sql, limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []*models.SearchQuery{}, nil
		}
		return nil, fmt.Errorf("failed to list search queries: %w", err)
	}
	defer rows.Close()

	var queries []*models.SearchQuery
	for rows.Next() {
		q := &models.SearchQuery{}
		if err := rows.Scan(&q.ID, &q.Query, &q.ResultsCount, &q.ExecutedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search query row: %w", err)
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
