package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"newsdesk/internal/models"
)

// SortMode selects the store-level ordering for a search page.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortDate      SortMode = "date"
	SortViews     SortMode = "views"
	SortLikes     SortMode = "likes"
)

// Valid reports whether s is one of the four supported sort modes.
func (s SortMode) Valid() bool {
	switch s {
	case SortRelevance, SortDate, SortViews, SortLikes:
		return true
	}
	return false
}

// ArticleFilter is the composed search predicate. Every field is ANDed onto
// the base eligibility filter (published, active, publish time <= now).
// Query matches as a case-insensitive substring of title, excerpt or content;
// the content column is always consulted regardless of the fetch projection.
type ArticleFilter struct {
	Query      string
	CategoryID *uuid.UUID
	AuthorID   *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// ArticlePageParams controls the page fetch issued after the count.
type ArticlePageParams struct {
	Sort           SortMode
	Offset         int
	Limit          int
	IncludeContent bool
}

type ArticleStore interface {
	// CountArticles returns the pre-pagination total for the filter.
	CountArticles(ctx context.Context, filter ArticleFilter) (int, error)
	// SearchArticles fetches one page with the author joined in. Content is
	// projected as NULL unless params.IncludeContent is set.
	SearchArticles(ctx context.Context, filter ArticleFilter, params ArticlePageParams) ([]*models.Article, error)
	// QuickSearchArticles is the title-only autocomplete lookup.
	QuickSearchArticles(ctx context.Context, query string, limit int) ([]models.Suggestion, error)
	// CategoriesForArticles resolves the category lists for a fetched page.
	CategoriesForArticles(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error)
	Ping(ctx context.Context) error
}

type CategoryStore interface {
	// CategoryBySlug resolves a public, active category. Returns ErrNotFound
	// for unknown, hidden or inactive slugs.
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type SearchHistoryStore interface {
	RecordSearchQuery(ctx context.Context, query string, resultsCount int) (*models.SearchQuery, error)
	ListSearchQueries(ctx context.Context, limit int) ([]*models.SearchQuery, error)
}

// JobClient enqueues background work. Search never waits on it.
type JobClient interface {
	EnqueueSearchRecord(ctx context.Context, query string, resultsCount int) error
	Close() error
}
