package application

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
	"github.com/davicafu/adminlab/tests/mocks"
)

func png(name string) *storage.Upload {
	return &storage.Upload{Name: name, Size: int64(len(mocks.PNG)), Reader: bytes.NewReader(mocks.PNG)}
}

func newService(log *zap.Logger) (*ProductService, *mocks.InMemoryProductRepo, *mocks.MemoryStorage) {
	repo := mocks.NewInMemoryProductRepo()
	files := mocks.NewMemoryStorage()
	return NewProductService(repo, files, domain.ListConfig(), log), repo, files
}

func TestCreate_WithImage(t *testing.T) {
	service, _, files := newService(zap.NewNop())

	p, err := service.Create(context.Background(), domain.ProductData{Name: "Lámpara"}, png("lampara.png"))
	require.NoError(t, err)

	require.NotNil(t, p.FeaturedImage)
	assert.Equal(t, "products/file1.png", *p.FeaturedImage)
	assert.Equal(t, "lampara.png", *p.FeaturedImageOriginalName)
	assert.Equal(t, 1, files.Len())
}

func TestCreate_RejectsNonImage(t *testing.T) {
	service, repo, _ := newService(zap.NewNop())

	txt := []byte("hola, no soy una imagen")
	_, err := service.Create(context.Background(), domain.ProductData{Name: "X"},
		&storage.Upload{Name: "a.txt", Size: int64(len(txt)), Reader: bytes.NewReader(txt)})
	assert.ErrorIs(t, err, storage.ErrInvalidImage)
	assert.Empty(t, repo.Products)
}

func TestCreate_FailureIsLoggedAndImageRemoved(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	service, repo, files := newService(zap.New(core))
	repo.Fail = true

	_, err := service.Create(context.Background(), domain.ProductData{Name: "X"}, png("x.png"))
	assert.ErrorIs(t, err, mocks.ErrStorageDown)

	require.Equal(t, 1, logs.FilterMessage("Product Creation Failure").Len())
	assert.Zero(t, files.Len())
}

func TestUpdate_ReplacesImage(t *testing.T) {
	service, _, files := newService(zap.NewNop())
	p, err := service.Create(context.Background(), domain.ProductData{Name: "Mesa"}, png("a.png"))
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), p.ID, domain.ProductData{
		Name:  "Mesa grande",
		Price: decimal.NewNullDecimal(decimal.NewFromInt(120)),
	}, png("b.png"))
	require.NoError(t, err)

	assert.Equal(t, "Mesa grande", updated.Name)
	assert.Equal(t, "b.png", *updated.FeaturedImageOriginalName)
	assert.Equal(t, 1, files.Len())
	_, oldKept := files.Files["products/file1.png"]
	assert.False(t, oldKept)
}

func TestUpdate_WithoutImageKeepsCurrent(t *testing.T) {
	service, _, _ := newService(zap.NewNop())
	p, _ := service.Create(context.Background(), domain.ProductData{Name: "Mesa"}, png("a.png"))

	updated, err := service.Update(context.Background(), p.ID, domain.ProductData{Name: "Mesa 2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "a.png", *updated.FeaturedImageOriginalName)
}

func TestDelete(t *testing.T) {
	service, _, files := newService(zap.NewNop())
	p, _ := service.Create(context.Background(), domain.ProductData{Name: "Mesa"}, png("a.png"))

	require.NoError(t, service.Delete(context.Background(), p.ID))
	assert.Zero(t, files.Len())
	assert.ErrorIs(t, service.Delete(context.Background(), p.ID), domain.ErrProductNotFound)
}

func TestList_LatestFirst(t *testing.T) {
	service, _, _ := newService(zap.NewNop())
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, name := range []string{"a", "b", "c"} {
		at := base.Add(time.Duration(i) * time.Minute)
		service.now = func() time.Time { return at }
		_, err := service.Create(context.Background(), domain.ProductData{Name: name}, nil)
		require.NoError(t, err)
	}

	res, err := service.List(context.Background(), query.ListQuery{PageSize: query.FetchAll})
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, "c", res.Rows[0].Name)
	assert.Equal(t, 1, res.Page)
}

func TestSeed(t *testing.T) {
	service, repo, files := newService(zap.NewNop())

	require.NoError(t, service.Seed(context.Background(), 30))
	assert.Len(t, repo.Products, 30)
	assert.Zero(t, files.Len())
	for _, p := range repo.Products {
		assert.True(t, p.Price.Valid)
		assert.True(t, p.Price.Decimal.GreaterThanOrEqual(decimal.NewFromInt(1)))
	}
}
