package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is a published news item as stored in the articles table.
// Content is nil unless the caller asked for the full body projection.
type Article struct {
	ID          uuid.UUID  `db:"id"`
	Title       string     `db:"title"`
	Slug        string     `db:"slug"`
	Excerpt     *string    `db:"excerpt"`
	Content     *string    `db:"content"`
	CoverImage  *string    `db:"cover_image"`
	IsBreaking  bool       `db:"is_breaking"`
	IsFeatured  bool       `db:"is_featured"`
	Views       int        `db:"views"`
	Likes       int        `db:"likes"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`

	// Author is joined from the users table on every fetch.
	Author Author
}

// PublishTime returns the effective publish time: published_at when set,
// otherwise created_at. Eligibility and recency scoring both use this.
func (a *Article) PublishTime() time.Time {
	if a.PublishedAt != nil {
		return *a.PublishedAt
	}
	return a.CreatedAt
}

type Author struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	FirstName *string   `db:"first_name"`
	LastName  *string   `db:"last_name"`
}

type Category struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
	Slug string    `db:"slug"`
}

// Suggestion is the minimal projection returned by quick-suggest. It is
// marshaled as-is by the HTTP layer.
type Suggestion struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Slug        string     `db:"slug" json:"slug"`
	CoverImage  *string    `db:"cover_image" json:"coverImage"`
	PublishedAt *time.Time `db:"published_at" json:"publishedAt"`
}

// SearchQuery is one recorded search, written by the analytics worker.
type SearchQuery struct {
	ID           int64     `db:"id"`
	Query        string    `db:"query"`
	ResultsCount int       `db:"results_count"`
	ExecutedAt   time.Time `db:"executed_at"`
}
