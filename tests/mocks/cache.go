package mocks

import (
	"context"

	"github.com/davicafu/adminlab/shared/platform/cache"
)

// DummyCache nunca tiene hits.
type DummyCache struct{}

func (d *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (d *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	return nil
}

func (d *DummyCache) Delete(ctx context.Context, key string) error {
	return nil
}

var _ cache.Cache = (*DummyCache)(nil)
