package apihandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdesk/internal/app"
	"newsdesk/internal/config"
	"newsdesk/internal/models"
	"newsdesk/internal/services"
	"newsdesk/internal/store"
)

// Stub stores backing a real SearchService for handler tests.

type stubArticleStore struct {
	total       int
	page        []*models.Article
	suggestions []models.Suggestion
	pingErr     error
}

func (s *stubArticleStore) CountArticles(ctx context.Context, filter store.ArticleFilter) (int, error) {
	return s.total, nil
}

func (s *stubArticleStore) SearchArticles(ctx context.Context, filter store.ArticleFilter, params store.ArticlePageParams) ([]*models.Article, error) {
	return s.page, nil
}

func (s *stubArticleStore) QuickSearchArticles(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	return s.suggestions, nil
}

func (s *stubArticleStore) CategoriesForArticles(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error) {
	return map[uuid.UUID][]models.Category{}, nil
}

func (s *stubArticleStore) Ping(ctx context.Context) error {
	return s.pingErr
}

type stubCategoryStore struct {
	category *models.Category
}

func (s *stubCategoryStore) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if s.category == nil || s.category.Slug != slug {
		return nil, store.ErrNotFound
	}
	return s.category, nil
}

func newTestRouter(articles *stubArticleStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Search.DefaultLimit = 10
	cfg.Search.MaxLimit = 100
	cfg.Search.SuggestLimit = 5

	appInstance := &app.App{
		Config:        cfg,
		ArticleStore:  articles,
		CategoryStore: &stubCategoryStore{},
	}
	appInstance.SearchService = services.NewSearchService(services.SearchServiceDeps{
		Articles:     articles,
		Categories:   appInstance.CategoryStore,
		DefaultLimit: cfg.Search.DefaultLimit,
	})

	handler := NewAPIHandler(appInstance)
	router := gin.New()
	router.GET("/api/v1/news/search", handler.SearchNewsHandler)
	router.GET("/api/v1/news/suggest", handler.QuickSearchHandler)
	router.GET("/health", handler.HealthHandler)
	return router
}

func doGet(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSearchNewsHandlerValidation(t *testing.T) {
	router := newTestRouter(&stubArticleStore{})

	cases := []struct {
		name string
		path string
	}{
		{"missing q", "/api/v1/news/search"},
		{"q too short", "/api/v1/news/search?q=a"},
		{"bad sortBy", "/api/v1/news/search?q=election&sortBy=magic"},
		{"bad page", "/api/v1/news/search?q=election&page=zero"},
		{"negative page", "/api/v1/news/search?q=election&page=-1"},
		{"bad limit", "/api/v1/news/search?q=election&limit=0"},
		{"bad dateFrom", "/api/v1/news/search?q=election&dateFrom=June"},
		{"bad authorId", "/api/v1/news/search?q=election&authorId=42"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doGet(t, router, tc.path)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var body struct {
				Error APIError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "bad_request", body.Error.Code)
		})
	}
}

func TestSearchNewsHandlerOK(t *testing.T) {
	published := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	articles := &stubArticleStore{
		total: 1,
		page: []*models.Article{{
			ID:          uuid.New(),
			Title:       "Election night",
			Slug:        "election-night",
			PublishedAt: &published,
			CreatedAt:   published,
			Author:      models.Author{ID: uuid.New(), Username: "reporter"},
		}},
	}
	router := newTestRouter(articles)

	w := doGet(t, router, "/api/v1/news/search?q=election&sortBy=date&page=1&limit=10")
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Election night", resp.Results[0].Title)
	assert.Equal(t, "reporter", resp.Results[0].Author.Username)
	assert.Equal(t, 1, resp.Pagination.Total)
	assert.Equal(t, 1, resp.Pagination.TotalPages)
	assert.Equal(t, "election", resp.Meta.Query)
}

func TestSearchNewsHandlerUnknownCategory(t *testing.T) {
	router := newTestRouter(&stubArticleStore{total: 99})

	w := doGet(t, router, "/api/v1/news/search?q=election&category=ghost")
	require.Equal(t, http.StatusOK, w.Code)

	var resp services.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Pagination.Total)
}

func TestQuickSearchHandler(t *testing.T) {
	articles := &stubArticleStore{
		suggestions: []models.Suggestion{{ID: uuid.New(), Title: "Election night", Slug: "election-night"}},
	}
	router := newTestRouter(articles)

	w := doGet(t, router, "/api/v1/news/suggest?q=election")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []models.Suggestion `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Election night", body.Results[0].Title)
}

func TestQuickSearchHandlerShortQuery(t *testing.T) {
	router := newTestRouter(&stubArticleStore{
		suggestions: []models.Suggestion{{Title: "should not appear"}},
	})

	w := doGet(t, router, "/api/v1/news/suggest?q=a")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Results []models.Suggestion `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Results)
}

func TestHealthHandler(t *testing.T) {
	router := newTestRouter(&stubArticleStore{})
	w := doGet(t, router, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
}
