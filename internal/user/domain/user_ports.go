package domain

import (
	"context"
	"fmt"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrUserNotFound      = fmt.Errorf("user %w", sharedDomain.ErrNotFound)
	ErrUserAlreadyExists = fmt.Errorf("user %w", sharedDomain.ErrAlreadyExists)
	ErrInvalidUser       = fmt.Errorf("invalid user: %w", sharedDomain.ErrInvalidInput)
)

// ---------- Interfaces (Ports) ----------

// UserRepository define las operaciones persistentes para User.
type UserRepository interface {
	// Asigna u.ID. Debe devolver ErrUserAlreadyExists si el email ya existe.
	Create(ctx context.Context, u *User, evt sharedDomain.EventFactory) error

	// Debe devolver ErrUserNotFound si no existe.
	GetByID(ctx context.Context, id int64) (*User, error)

	Count(ctx context.Context) (int64, error)

	Collection() query.Collection[*User]
}
