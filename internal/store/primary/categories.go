package primary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"newsdesk/internal/models"
	"newsdesk/internal/store"
)

var _ store.CategoryStore = (*StoreImpl)(nil)

// CategoryBySlug resolves a public, active category by its slug.
func (s *StoreImpl) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	sql := `
		SELECT id, name, slug
		FROM categories
		WHERE slug = $1 AND is_public AND is_active`

	cat := &models.Category{}
	err := s.db.QueryRow(ctx, sql, slug).Scan(&cat.ID, &cat.Name, &cat.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up category %q: %w", slug, err)
	}
	return cat, nil
}
