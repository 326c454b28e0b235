package primary

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

var _ store.ArticleStore = (*StoreImpl)(nil)

// eligibilityClause restricts every query to live, publicly visible articles:
// published, active, and with an effective publish time at or before now.
const eligibilityClause = `a.status = 'published' AND a.is_active
		AND (a.published_at <= now() OR (a.published_at IS NULL AND a.created_at <= now()))`

// buildArticleWhere composes the WHERE clause for the filter using numbered
// placeholders, returning the clause, its args, and the next placeholder index.
func buildArticleWhere(filter store.ArticleFilter) (string, []interface{}, int) {
	whereClauses := []string{eligibilityClause}
	args := []interface{}{}
	argID := 1

	if filter.Query != "" {
		// The containment filter always runs against the stored content
		// column; the fetch projection is controlled separately.
		whereClauses = append(whereClauses, fmt.Sprintf(
			"(a.title ILIKE $%d OR a.excerpt ILIKE $%d OR a.content ILIKE $%d)", argID, argID, argID))
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		argID++
	}
	if filter.CategoryID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM article_categories ac WHERE ac.article_id = a.id AND ac.category_id = $%d)", argID))
		args = append(args, *filter.CategoryID)
		argID++
	}
	if filter.AuthorID != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.author_id = $%d", argID))
		args = append(args, *filter.AuthorID)
		argID++
	}
	if filter.DateFrom != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.published_at >= $%d", argID))
		args = append(args, *filter.DateFrom)
		argID++
	}
	if filter.DateTo != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("a.published_at <= $%d", argID))
		args = append(args, *filter.DateTo)
		argID++
	}

	return strings.Join(whereClauses, " AND "), args, argID
}

// escapeLike escapes the LIKE metacharacters so the query text matches
// literally inside the ILIKE pattern.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause maps a sort mode to the store-level ORDER BY. Relevance sorts
// provisionally by publish date; the service re-sorts the page by score.
func orderClause(sort store.SortMode) string {
	switch sort {
	case store.SortViews:
		return "a.views DESC, a.published_at DESC NULLS LAST"
	case store.SortLikes:
		return "a.likes DESC, a.published_at DESC NULLS LAST"
	default: // date and relevance
		return "a.published_at DESC NULLS LAST, a.created_at DESC"
	}
}

// CountArticles returns the number of eligible articles matching the filter.
func (s *StoreImpl) CountArticles(ctx context.Context, filter store.ArticleFilter) (int, error) {
	where, args, _ := buildArticleWhere(filter)
	sql := "SELECT COUNT(*) FROM articles a WHERE " + where

	var total int
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return total, nil
}

// SearchArticles fetches one page of eligible articles matching the filter,
// with the author joined in.
func (s *StoreImpl) SearchArticles(ctx context.Context, filter store.ArticleFilter, params store.ArticlePageParams) ([]*models.Article, error) {
	contentColumn := "NULL::text"
	if params.IncludeContent {
		contentColumn = "a.content"
	}
	where, args, argID := buildArticleWhere(filter)

	sql := fmt.Sprintf(`
		SELECT a.id, a.title, a.slug, a.excerpt, %s, a.cover_image,
		       a.is_breaking, a.is_featured, a.views, a.likes,
		       a.published_at, a.created_at,
		       u.id, u.username, u.first_name, u.last_name
		FROM articles a
		JOIN users u ON u.id = a.author_id
		WHERE %s
		ORDER BY %s
		OFFSET $%d LIMIT $%d`,
		contentColumn, where, orderClause(params.Sort), argID, argID+1)
	args = append(args, params.Offset, params.Limit)

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles for search: %w", err)
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article := &models.Article{}
		if err := scanArticle(rows, article); err != nil {
			return nil, fmt.Errorf("failed to scan article row during search: %w", err)
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// QuickSearchArticles performs the title-only autocomplete lookup with a
// minimal projection.
func (s *StoreImpl) QuickSearchArticles(ctx context.Context, query string, limit int) ([]models.Suggestion, error) {
	sql := `
		SELECT a.id, a.title, a.slug, a.cover_image, a.published_at
		FROM articles a
		WHERE ` + eligibilityClause + `
		AND a.title ILIKE $1
		ORDER BY a.published_at DESC NULLS LAST, a.created_at DESC
		LIMIT $2`

	rows, err := s.db.Query(ctx, sql, "%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query quick search titles: %w", err)
	}
	defer rows.Close()

	var suggestions []models.Suggestion
	for rows.Next() {
		var sg models.Suggestion
		if err := rows.Scan(&sg.ID, &sg.Title, &sg.Slug, &sg.CoverImage, &sg.PublishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quick search row: %w", err)
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

// CategoriesForArticles returns the category lists for a page of articles in
// one round trip.
func (s *StoreImpl) CategoriesForArticles(ctx context.Context, articleIDs []uuid.UUID) (map[uuid.UUID][]models.Category, error) {
	result := make(map[uuid.UUID][]models.Category, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	sql := `
		SELECT ac.article_id, c.id, c.name, c.slug
		FROM article_categories ac
		JOIN categories c ON c.id = ac.category_id
		WHERE ac.article_id = ANY($1)
		ORDER BY c.name`

	rows, err := s.db.Query(ctx, sql, articleIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query article categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var articleID uuid.UUID
		var cat models.Category
		if err := rows.Scan(&articleID, &cat.ID, &cat.Name, &cat.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan article category row: %w", err)
		}
		result[articleID] = append(result[articleID], cat)
	}
	return result, rows.Err()
}
