package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

// --- Store fakes ---

type mockArticleStore struct {
	mock.Mock
}

func (m *mockArticleStore) CountArticles(ctx context.Context, filter store.ArticleFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *mockArticleStore) SearchArticles(ctx context.Context, filter store.ArticleFilter, params store.ArticlePageParams) ([]*models.Article, error) {
	args := m.Called(ctx, filter, params)
	if v := args.Get(0); v != nil {
		return v.([]*models.Article), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockArticleStore) QuickSearchArticles(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	args := m.Called(ctx, query, limit)
	if v := args.Get(0); v != nil {
		return v.([]models.Suggestion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockArticleStore) CategoriesForArticles(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error) {
	args := m.Called(ctx, articleIDs)
	if v := args.Get(0); v != nil {
		return v.(map[uuid.UUID][]models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockArticleStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if v := args.Get(0); v != nil {
		return v.(*models.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockJobClient struct {
	mock.Mock
}

func (m *mockJobClient) EnqueueSearchRecord(ctx context.Context, query string, resultsCount int) error {
	args := m.Called(ctx, query, resultsCount)
	return args.Error(0)
}

func (m *mockJobClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// --- Helpers ---

func newTestService(articles *mockArticleStore, categories *mockCategoryStore, jobs store.JobClient) *SearchService {
	svc := NewSearchService(SearchServiceDeps{
		Articles:   articles,
		Categories: categories,
		Jobs:       jobs,
	})
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func eligibleArticle(title string, publishedDaysAgo int) *models.Article {
	published := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -publishedDaysAgo)
	return &models.Article{
		ID:          uuid.New(),
		Title:       title,
		Slug:        "slug-" + uuid.NewString()[:8],
		PublishedAt: &published,
		CreatedAt:   published,
		Author:      models.Author{ID: uuid.New(), Username: "reporter"},
	}
}

func noCategories() map[uuid.UUID][]models.Category {
	return map[uuid.UUID][]models.Category{}
}

// --- Search ---

func TestSearchPaginationScenario(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	page := []*models.Article{
		eligibleArticle("Election night", 1),
		eligibleArticle("Election fallout", 2),
	}
	articles.On("CountArticles", mock.Anything, mock.Anything).Return(5, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.Anything).Return(page, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)

	resp, err := svc.Search(context.Background(), SearchOptions{
		Query:  "election",
		SortBy: store.SortDate,
		Page:   1,
		Limit:  2,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	// Date sort: the store ordering stands, no re-sort.
	assert.Equal(t, "Election night", resp.Results[0].Title)
	assert.Equal(t, "Election fallout", resp.Results[1].Title)

	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 5, TotalPages: 3, HasNext: true, HasPrev: false}, resp.Pagination)
	assert.Equal(t, "election", resp.Meta.Query)
	assert.Equal(t, store.SortDate, resp.Meta.SortBy)

	// The page fetch uses skip/take derived from page and limit.
	call := articles.Calls[1]
	params := call.Arguments.Get(2).(store.ArticlePageParams)
	assert.Equal(t, 0, params.Offset)
	assert.Equal(t, 2, params.Limit)
}

func TestSearchUnknownCategoryYieldsEmptyResponse(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	categories.On("CategoryBySlug", mock.Anything, "no-such-category").Return(nil, store.ErrNotFound)

	resp, err := svc.Search(context.Background(), SearchOptions{
		Query:    "election",
		Category: "no-such-category",
		Page:     1,
		Limit:    10,
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Pagination.Total)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
	assert.False(t, resp.Pagination.HasNext)
	articles.AssertNotCalled(t, "CountArticles", mock.Anything, mock.Anything)
	articles.AssertNotCalled(t, "SearchArticles", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchCategoryResolvedToFilter(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	cat := &models.Category{ID: uuid.New(), Name: "Politics", Slug: "politics"}
	categories.On("CategoryBySlug", mock.Anything, "politics").Return(cat, nil)
	articles.On("CountArticles", mock.Anything, mock.MatchedBy(func(f store.ArticleFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == cat.ID
	})).Return(0, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)

	resp, err := svc.Search(context.Background(), SearchOptions{Query: "election", Category: "politics"})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	articles.AssertExpectations(t)
}

func TestSearchRelevanceResortsWithinPage(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	// Store returns date order; the exact-title match sits second.
	page := []*models.Article{
		eligibleArticle("Morning briefing on the election", 10),
		eligibleArticle("Election", 10),
	}
	articles.On("CountArticles", mock.Anything, mock.Anything).Return(2, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.Anything).Return(page, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)

	resp, err := svc.Search(context.Background(), SearchOptions{
		Query:  "Election",
		SortBy: store.SortRelevance,
	})
	require.NoError(t, err)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Election", resp.Results[0].Title)
	assert.Greater(t, resp.Results[0].RelevanceScore, resp.Results[1].RelevanceScore)
}

func TestSearchStoreErrorPropagates(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	articles.On("CountArticles", mock.Anything, mock.Anything).Return(0, errors.New("connection refused"))

	_, err := svc.Search(context.Background(), SearchOptions{Query: "election"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count search results")
}

func TestSearchRecordsAnalytics(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	jobs := new(mockJobClient)
	svc := newTestService(articles, categories, jobs)

	articles.On("CountArticles", mock.Anything, mock.Anything).Return(3, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)
	jobs.On("EnqueueSearchRecord", mock.Anything, "election", 3).Return(nil)

	_, err := svc.Search(context.Background(), SearchOptions{Query: "election"})
	require.NoError(t, err)
	jobs.AssertExpectations(t)
}

func TestSearchEnqueueFailureDoesNotFailSearch(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	jobs := new(mockJobClient)
	svc := newTestService(articles, categories, jobs)

	articles.On("CountArticles", mock.Anything, mock.Anything).Return(0, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)
	jobs.On("EnqueueSearchRecord", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	resp, err := svc.Search(context.Background(), SearchOptions{Query: "election"})
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestSearchDefaultsApplied(t *testing.T) {
	articles := new(mockArticleStore)
	categories := new(mockCategoryStore)
	svc := newTestService(articles, categories, nil)

	articles.On("CountArticles", mock.Anything, mock.Anything).Return(0, nil)
	articles.On("SearchArticles", mock.Anything, mock.Anything, mock.MatchedBy(func(p store.ArticlePageParams) bool {
		return p.Offset == 0 && p.Limit == defaultLimit
	})).Return(nil, nil)
	articles.On("CategoriesForArticles", mock.Anything, mock.Anything).Return(noCategories(), nil)

	resp, err := svc.Search(context.Background(), SearchOptions{Query: "election"})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, defaultLimit, resp.Pagination.Limit)
	assert.Equal(t, store.SortRelevance, resp.Meta.SortBy)
}

// --- QuickSuggest ---

func TestQuickSuggestShortQuerySkipsStore(t *testing.T) {
	articles := new(mockArticleStore)
	svc := newTestService(articles, new(mockCategoryStore), nil)

	for _, q := range []string{"", "a", " a ", "\t"} {
		suggestions, err := svc.QuickSuggest(context.Background(), q, 5)
		require.NoError(t, err)
		assert.Empty(t, suggestions)
	}
	articles.AssertNotCalled(t, "QuickSearchArticles", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuickSuggestNormalizesAndLimits(t *testing.T) {
	articles := new(mockArticleStore)
	svc := newTestService(articles, new(mockCategoryStore), nil)

	found := []models.Suggestion{{ID: uuid.New(), Title: "Election night"}}
	articles.On("QuickSearchArticles", mock.Anything, "election", 5).Return(found, nil).Once()

	suggestions, err := svc.QuickSuggest(context.Background(), "  Election ", 0)
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Election night", suggestions[0].Title)
	articles.AssertExpectations(t)
}

func TestQuickSuggestServedFromCache(t *testing.T) {
	articles := new(mockArticleStore)
	svc := newTestService(articles, new(mockCategoryStore), nil)

	found := []models.Suggestion{{ID: uuid.New(), Title: "Election night"}}
	articles.On("QuickSearchArticles", mock.Anything, "election", 5).Return(found, nil).Once()

	first, err := svc.QuickSuggest(context.Background(), "election", 5)
	require.NoError(t, err)
	second, err := svc.QuickSuggest(context.Background(), "Election", 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	articles.AssertNumberOfCalls(t, "QuickSearchArticles", 1)
}

// --- Pagination arithmetic ---

func TestPaginate(t *testing.T) {
	cases := []struct {
		name               string
		page, limit, total int
		want               Pagination
	}{
		{"empty", 1, 10, 0, Pagination{Page: 1, Limit: 10}},
		{"exact pages", 1, 5, 10, Pagination{Page: 1, Limit: 5, Total: 10, TotalPages: 2, HasNext: true}},
		{"partial last page", 3, 2, 5, Pagination{Page: 3, Limit: 2, Total: 5, TotalPages: 3, HasPrev: true}},
		{"middle page", 2, 2, 5, Pagination{Page: 2, Limit: 2, Total: 5, TotalPages: 3, HasNext: true, HasPrev: true}},
		{"past the end", 9, 10, 5, Pagination{Page: 9, Limit: 10, Total: 5, TotalPages: 1, HasPrev: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, paginate(tc.page, tc.limit, tc.total))
		})
	}
}
