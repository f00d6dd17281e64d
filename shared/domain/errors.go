package domain

import "errors"

// Errores comunes a todos los recursos. Cada dominio los envuelve con su
// propio mensaje para que la capa HTTP pueda mapearlos con errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
)
