package utils

import (
	"context"
	"time"
)

// Retry ejecuta fn hasta attempts veces, esperando delay entre intentos.
// No espera tras el último intento fallido.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// RetryIf es como Retry pero corta en cuanto retryable devuelve false.
func RetryIf(ctx context.Context, attempts int, delay time.Duration, retryable func(error) bool, fn func() error) error {
	var permanent error
	err := Retry(ctx, attempts, delay, func() error {
		err := fn()
		if err != nil && !retryable(err) {
			permanent = err
			return nil
		}
		return err
	})
	if permanent != nil {
		return permanent
	}
	return err
}
