package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrCustomerNotFound      = fmt.Errorf("customer %w", sharedDomain.ErrNotFound)
	ErrCustomerAlreadyExists = fmt.Errorf("customer %w", sharedDomain.ErrAlreadyExists)
	ErrInvalidCustomer       = fmt.Errorf("invalid customer: %w", sharedDomain.ErrInvalidInput)
)

// ---------- Interfaces (Ports) ----------

// CustomerRepository define las operaciones persistentes para Customer.
// Los clientes borrados no son visibles para ninguna operación.
type CustomerRepository interface {
	// Asigna c.ID. Debe devolver ErrCustomerAlreadyExists si el email o el username ya existen.
	Create(ctx context.Context, c *Customer, evt sharedDomain.EventFactory) error

	// CreateBatch inserta sin eventos; lo usa el seeder.
	CreateBatch(ctx context.Context, cs []*Customer) error

	// Debe devolver ErrCustomerNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*Customer, error)

	// Debe devolver ErrCustomerNotFound o ErrCustomerAlreadyExists.
	Update(ctx context.Context, c *Customer, evt sharedDomain.OutboxEvent) error

	// SoftDelete marca deleted_at. Debe devolver ErrCustomerNotFound si no existe.
	SoftDelete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error

	// Collection es la fuente del listado.
	Collection() query.Collection[*Customer]
}
