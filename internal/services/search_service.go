package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"newsdesk/internal/cache"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

const (
	defaultLimit        = 10
	defaultSuggestLimit = 5
	minQueryLength      = 2
)

// SearchService is the news search engine: it plans the store query, scores
// and highlights the fetched page, and assembles the response envelope.
type SearchService struct {
	articles     store.ArticleStore
	categories   store.CategoryStore
	history      store.SearchHistoryStore
	jobs         store.JobClient
	suggestCache *cache.TTLCache[string, []models.Suggestion]
	defaultLimit int

	// now is swappable for deterministic scoring in tests.
	now func() time.Time
}

type SearchServiceDeps struct {
	Articles        store.ArticleStore
	Categories      store.CategoryStore
	History         store.SearchHistoryStore
	Jobs            store.JobClient // optional; nil disables analytics recording
	DefaultLimit    int
	SuggestCacheTTL time.Duration
}

func NewSearchService(deps SearchServiceDeps) *SearchService {
	limit := deps.DefaultLimit
	if limit <= 0 {
		limit = defaultLimit
	}
	ttl := deps.SuggestCacheTTL
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &SearchService{
		articles:     deps.Articles,
		categories:   deps.Categories,
		history:      deps.History,
		jobs:         deps.Jobs,
		suggestCache: cache.NewTTLCache[string, []models.Suggestion](ttl),
		defaultLimit: limit,
		now:          time.Now,
	}
}

// Search runs one full search: count + page fetch against the composed filter,
// per-record scoring and highlighting, and an in-page re-sort when the sort
// mode is relevance. An unresolvable category slug yields an empty response,
// not an error; store failures propagate to the caller.
func (s *SearchService) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	start := s.now()

	query := strings.TrimSpace(opts.Query)
	queryLower := strings.ToLower(query)
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = s.defaultLimit
	}
	if !opts.SortBy.Valid() {
		opts.SortBy = store.SortRelevance
	}

	filter := store.ArticleFilter{
		Query:    query,
		AuthorID: opts.AuthorID,
		DateFrom: opts.DateFrom,
		DateTo:   opts.DateTo,
	}

	if opts.Category != "" {
		cat, err := s.categories.CategoryBySlug(ctx, opts.Category)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Unknown category matches nothing. Deliberately an
				// empty well-formed response rather than an error.
				return s.emptyResponse(opts, query, start), nil
			}
			return nil, fmt.Errorf("resolve category %q: %w", opts.Category, err)
		}
		filter.CategoryID = &cat.ID
	}

	total, err := s.articles.CountArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count search results: %w", err)
	}

	articles, err := s.articles.SearchArticles(ctx, filter, store.ArticlePageParams{
		Sort:           opts.SortBy,
		Offset:         (opts.Page - 1) * opts.Limit,
		Limit:          opts.Limit,
		IncludeContent: opts.IncludeContent,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch search page: %w", err)
	}

	results, err := s.buildResults(ctx, articles, queryLower, opts.IncludeContent)
	if err != nil {
		return nil, err
	}

	if opts.SortBy == store.SortRelevance {
		// Re-sorts only the fetched page, not the full filtered set.
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
	}

	s.recordSearch(ctx, query, total)

	resp := &SearchResponse{
		Results:    results,
		Pagination: paginate(opts.Page, opts.Limit, total),
		Meta:       s.buildMeta(opts, query, start),
	}
	return resp, nil
}

// buildResults scores and annotates one fetched page.
func (s *SearchService) buildResults(ctx context.Context, articles []*models.Article, queryLower string, includeContent bool) ([]SearchResult, error) {
	ids := make([]uuid.UUID, len(articles))
	for i, a := range articles {
		ids[i] = a.ID
	}
	categoriesByArticle, err := s.articles.CategoriesForArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch result categories: %w", err)
	}

	now := s.now()
	results := make([]SearchResult, len(articles))
	for i, a := range articles {
		cats := make([]CategoryInfo, 0, len(categoriesByArticle[a.ID]))
		for _, c := range categoriesByArticle[a.ID] {
			cats = append(cats, CategoryInfo{ID: c.ID, Name: c.Name, Slug: c.Slug})
		}

		results[i] = SearchResult{
			ID:             a.ID,
			Title:          a.Title,
			Slug:           a.Slug,
			Excerpt:        a.Excerpt,
			Content:        a.Content,
			CoverImage:     a.CoverImage,
			IsBreaking:     a.IsBreaking,
			IsFeatured:     a.IsFeatured,
			Views:          a.Views,
			Likes:          a.Likes,
			PublishedAt:    a.PublishedAt,
			CreatedAt:      a.CreatedAt,
			RelevanceScore: scoreArticle(a, queryLower, now),
			Author: AuthorInfo{
				ID:        a.Author.ID,
				Username:  a.Author.Username,
				FirstName: a.Author.FirstName,
				LastName:  a.Author.LastName,
			},
			Categories: cats,
			Highlights: extractHighlights(a, queryLower, includeContent),
		}
	}
	return results, nil
}

// QuickSuggest is the autocomplete lookup: title containment only, no scoring.
// Queries shorter than two characters return an empty list without touching
// the store. Results are cached briefly per normalized query.
func (s *SearchService) QuickSuggest(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(normalized)) < minQueryLength {
		return []models.Suggestion{}, nil
	}
	if limit <= 0 {
		limit = defaultSuggestLimit
	}

	if cached, ok := s.suggestCache.Get(normalized); ok {
		return cached, nil
	}

	suggestions, err := s.articles.QuickSearchArticles(ctx, normalized, limit)
	if err != nil {
		return nil, fmt.Errorf("quick search failed: %w", err)
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}

	s.suggestCache.Put(normalized, suggestions)
	return suggestions, nil
}

// ListSearchHistory retrieves recently recorded search queries.
func (s *SearchService) ListSearchHistory(ctx context.Context, limit int) ([]*models.SearchQuery, error) {
	if s.history == nil {
		return nil, fmt.Errorf("search history store is not initialized")
	}
	queries, err := s.history.ListSearchQueries(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list search history from store: %w", err)
	}
	return queries, nil
}

// recordSearch hands the executed query to the analytics queue. Recording
// failures are logged and never fail the search itself.
func (s *SearchService) recordSearch(ctx context.Context, query string, total int) {
	if s.jobs == nil {
		return
	}
	if err := s.jobs.EnqueueSearchRecord(ctx, query, total); err != nil {
		log.Warnf("Failed to record search query %q: %v", query, err)
	}
}

func (s *SearchService) emptyResponse(opts SearchOptions, query string, start time.Time) *SearchResponse {
	return &SearchResponse{
		Results:    []SearchResult{},
		Pagination: paginate(opts.Page, opts.Limit, 0),
		Meta:       s.buildMeta(opts, query, start),
	}
}

func (s *SearchService) buildMeta(opts SearchOptions, query string, start time.Time) SearchMeta {
	return SearchMeta{
		Query: query,
		Filters: SearchFilters{
			Category: opts.Category,
			AuthorID: opts.AuthorID,
			DateFrom: opts.DateFrom,
			DateTo:   opts.DateTo,
		},
		SortBy:          opts.SortBy,
		ExecutionTimeMs: s.now().Sub(start).Milliseconds(),
	}
}

// paginate derives the pagination block from page, limit and the
// pre-pagination total.
func paginate(page, limit, total int) Pagination {
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
