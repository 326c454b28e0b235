package apihandlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"newsdesk/internal/app"
	"newsdesk/internal/services"
	"newsdesk/internal/store"
)

type APIHandler struct {
	App *app.App
}

func NewAPIHandler(app *app.App) *APIHandler {
	return &APIHandler{App: app}
}

const minSearchQueryLength = 2

// SearchNewsHandler handles GET /api/v1/news/search.
func (h *APIHandler) SearchNewsHandler(c *gin.Context) {
	opts, err := h.parseSearchOptions(c)
	if err != nil {
		BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.App.SearchService.Search(c.Request.Context(), opts)
	if err != nil {
		log.Errorf("SearchNewsHandler: search failed: %v", err)
		Internal(c, "Search failed")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// parseSearchOptions parses and validates the search query parameters.
func (h *APIHandler) parseSearchOptions(c *gin.Context) (services.SearchOptions, error) {
	opts := services.SearchOptions{
		Page:  1,
		Limit: h.App.Config.Search.DefaultLimit,
	}

	query := strings.TrimSpace(c.Query("q"))
	if len([]rune(query)) < minSearchQueryLength {
		return opts, fmt.Errorf("'q' must be at least %d characters", minSearchQueryLength)
	}
	opts.Query = query

	opts.Category = strings.TrimSpace(c.Query("category"))

	if raw := c.Query("authorId"); raw != "" {
		authorID, err := uuid.Parse(raw)
		if err != nil {
			return opts, fmt.Errorf("invalid authorId: %s", raw)
		}
		opts.AuthorID = &authorID
	}

	var err error
	if opts.DateFrom, err = parseDateParam(c.Query("dateFrom")); err != nil {
		return opts, fmt.Errorf("invalid dateFrom: %w", err)
	}
	if opts.DateTo, err = parseDateParam(c.Query("dateTo")); err != nil {
		return opts, fmt.Errorf("invalid dateTo: %w", err)
	}

	sortBy := store.SortMode(c.DefaultQuery("sortBy", string(store.SortRelevance)))
	if !sortBy.Valid() {
		return opts, fmt.Errorf("invalid sortBy: %s", sortBy)
	}
	opts.SortBy = sortBy

	if p := c.Query("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil || parsed < 1 {
			return opts, fmt.Errorf("invalid page: %s", p)
		}
		opts.Page = parsed
	}
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 {
			return opts, fmt.Errorf("invalid limit: %s", l)
		}
		if max := h.App.Config.Search.MaxLimit; max > 0 && parsed > max {
			parsed = max
		}
		opts.Limit = parsed
	}

	opts.IncludeContent = c.Query("includeContent") == "true"

	return opts, nil
}

// parseDateParam accepts an ISO date or RFC 3339 timestamp.
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("expected YYYY-MM-DD or RFC 3339, got %s", raw)
}

// QuickSearchHandler handles GET /api/v1/news/suggest.
func (h *APIHandler) QuickSearchHandler(c *gin.Context) {
	query := c.Query("q")

	limit := h.App.Config.Search.SuggestLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if max := h.App.Config.Search.MaxLimit; max > 0 && limit > max {
		limit = max
	}

	suggestions, err := h.App.SearchService.QuickSuggest(c.Request.Context(), query, limit)
	if err != nil {
		log.Errorf("QuickSearchHandler: quick search failed: %v", err)
		Internal(c, "Search failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": suggestions})
}

// HealthHandler reports liveness and database connectivity.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	if err := h.App.ArticleStore.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
