package services

import (
	"time"

	"github.com/google/uuid"
	"newsdesk/internal/store"
)

// SearchOptions is the structured input of one full-search call. Query is
// required; everything else is optional or defaulted.
type SearchOptions struct {
	Query          string
	Category       string // category slug, resolved before querying
	AuthorID       *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
	SortBy         store.SortMode
	Page           int
	Limit          int
	IncludeContent bool
}

// AuthorInfo is the author projection embedded in every result.
type AuthorInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName *string   `json:"firstName"`
	LastName  *string   `json:"lastName"`
}

type CategoryInfo struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Highlights holds up to three plain-text snippets per field, each a literal
// substring of the source field. No markup is applied here.
type Highlights struct {
	Title   []string `json:"title"`
	Excerpt []string `json:"excerpt"`
	Content []string `json:"content"`
}

// SearchResult is one scored, annotated article.
type SearchResult struct {
	ID             uuid.UUID      `json:"id"`
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Excerpt        *string        `json:"excerpt"`
	Content        *string        `json:"content,omitempty"`
	CoverImage     *string        `json:"coverImage"`
	IsBreaking     bool           `json:"isBreaking"`
	IsFeatured     bool           `json:"isFeatured"`
	Views          int            `json:"views"`
	Likes          int            `json:"likes"`
	PublishedAt    *time.Time     `json:"publishedAt"`
	CreatedAt      time.Time      `json:"createdAt"`
	RelevanceScore int            `json:"relevanceScore"`
	Author         AuthorInfo     `json:"author"`
	Categories     []CategoryInfo `json:"categories"`
	Highlights     Highlights     `json:"highlights"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

// SearchFilters is the snapshot of the applied filters echoed back in Meta.
type SearchFilters struct {
	Category string     `json:"category,omitempty"`
	AuthorID *uuid.UUID `json:"authorId,omitempty"`
	DateFrom *time.Time `json:"dateFrom,omitempty"`
	DateTo   *time.Time `json:"dateTo,omitempty"`
}

type SearchMeta struct {
	Query           string         `json:"query"`
	Filters         SearchFilters  `json:"filters"`
	SortBy          store.SortMode `json:"sortBy"`
	ExecutionTimeMs int64          `json:"executionTimeMs"`
}

// SearchResponse is the envelope returned by Search and rendered as-is by the
// HTTP layer.
type SearchResponse struct {
	Results    []SearchResult `json:"results"`
	Pagination Pagination     `json:"pagination"`
	Meta       SearchMeta     `json:"meta"`
}
