package cache

import (
	"context"
	"fmt"
)

// Cache es una caché clave-valor; los valores viajan serializados en JSON.
type Cache interface {
	// Get rellena dest (puntero) si hay hit. Un miss devuelve (false, nil).
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set guarda val con un TTL en segundos; 0 usa el TTL por defecto del adaptador.
	Set(ctx context.Context, key string, val interface{}, ttlSecs int) error

	Delete(ctx context.Context, key string) error
}

// Key construye la clave de una entidad, ej. "customer:42".
func Key(resource string, id interface{}) string {
	return fmt.Sprintf("%s:%v", resource, id)
}
