package sqlrepo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

func setupRepo(t *testing.T) *CategoryRepoSQL {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.Open(ctx, persistence.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(ctx, db, persistence.SQLite))
	return NewCategoryRepoSQL(db, persistence.SQLite)
}

func TestCategoryRepo_CRUD(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	c, _ := domain.NewCategory("Go", 1, time.Now())
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, c.Rename("Golang", time.Now()))
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Title)

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c), domain.ErrCategoryNotFound)
}

func TestCategoryRepo_FilterByUser(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for i, owner := range []int64{1, 2, 1} {
		c, _ := domain.NewCategory([]string{"a", "b", "c"}[i], owner, time.Now())
		require.NoError(t, repo.Create(ctx, c))
	}

	res, err := query.Resolve(ctx, query.ListQuery{
		Filters:       map[string]any{"user_id": "1"},
		SortDirection: "asc",
		PageSize:      query.FetchAll,
	}, domain.ListConfig(), repo.Collection())
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "a", res.Rows[0].Title)
	assert.Equal(t, "c", res.Rows[1].Title)
}
