package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

var (
	ErrCategoryNotFound = fmt.Errorf("category %w", sharedDomain.ErrNotFound)
	ErrInvalidCategory  = fmt.Errorf("invalid category: %w", sharedDomain.ErrInvalidInput)
)

// Category agrupa posts; pertenece al usuario que la creó.
type Category struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCategory(title string, userID int64, now time.Time) (*Category, error) {
	c := &Category{UserID: userID, CreatedAt: now.UTC()}
	if err := c.Rename(title, now); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Category) Rename(title string, now time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" || len(title) > 255 {
		return fmt.Errorf("%w: the title field is required (max 255)", ErrInvalidCategory)
	}
	c.Title = title
	c.UpdatedAt = now.UTC()
	return nil
}

func (c *Category) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "title":
		return c.Title, true
	case "user_id":
		return c.UserID, true
	case "created_at":
		return c.CreatedAt, true
	}
	return nil, false
}

// CategoryRepository define las operaciones persistentes para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	// Debe devolver ErrCategoryNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, id int64) error
	Collection() query.Collection[*Category]
}

// ListConfig: el índice devuelve todas las categorías en orden de alta.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields:     []string{"title"},
		FilterableFields:     []string{"user_id"},
		AllowedSortFields:    []string{"id", "title", "created_at"},
		DefaultSortField:     "id",
		DefaultSortDirection: query.Asc,
		DefaultPageSize:      query.FetchAll,
	}
}
