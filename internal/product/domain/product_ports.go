package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

var (
	ErrProductNotFound = fmt.Errorf("product %w", sharedDomain.ErrNotFound)
	ErrInvalidProduct  = fmt.Errorf("invalid product: %w", sharedDomain.ErrInvalidInput)
)

// ProductRepository define las operaciones persistentes para Product.
type ProductRepository interface {
	// Asigna p.ID.
	Create(ctx context.Context, p *Product) error
	// Debe devolver ErrProductNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
	Collection() query.Collection[*Product]
}
