package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

// User representa un usuario del panel.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUser(name, email string, now time.Time) (*User, error) {
	u := &User{
		Name:      strings.TrimSpace(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		CreatedAt: now.UTC(),
	}
	if u.Name == "" || len(u.Name) > 255 {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if !strings.Contains(u.Email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidUser)
	}
	return u, nil
}

func (u *User) PartitionKey() string {
	return strconv.FormatInt(u.ID, 10)
}

func (u *User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "created_at":
		return u.CreatedAt, true
	}
	return nil, false
}

// Verificación estática para asegurar que User implementa la interfaz
var _ sharedBus.Keyer = (*User)(nil)
