package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

var (
	ErrPostNotFound = fmt.Errorf("post %w", sharedDomain.ErrNotFound)
	ErrInvalidPost  = fmt.Errorf("invalid post: %w", sharedDomain.ErrInvalidInput)
)

// PostRepository define las operaciones persistentes para Post.
// Hay implementación SQL y MongoDB.
type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id int64) (*Post, error)
	Delete(ctx context.Context, id int64) error
	Collection() query.Collection[*Post]
}

// ListConfig: el índice devuelve todos los posts.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields:     []string{"title", "content"},
		FilterableFields:     []string{"category_id", "status"},
		BooleanFilters:       []string{"status"},
		AllowedSortFields:    []string{"id", "title", "created_at"},
		DefaultSortField:     "id",
		DefaultSortDirection: query.Asc,
		DefaultPageSize:      query.FetchAll,
	}
}
