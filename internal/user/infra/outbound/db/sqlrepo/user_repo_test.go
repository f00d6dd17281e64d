package sqlrepo

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	"github.com/davicafu/adminlab/internal/user/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

func setupRepo(t *testing.T) *UserRepoSQL {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.Open(ctx, persistence.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(ctx, db, persistence.SQLite))
	require.NoError(t, sqlstore.InitOutboxSchema(ctx, db, persistence.SQLite))
	return NewUserRepoSQL(db, persistence.SQLite)
}

func create(t *testing.T, repo *UserRepoSQL, name, email string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(name, email, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u, func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, u.PartitionKey(), domain.UserCreated, nil)
	}))
	return u
}

func TestUserRepo_CreateGetCount(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	u := create(t, repo, "Ana", "ana@example.com")
	create(t, repo, "Bruno", "bruno@example.com")

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	repo := setupRepo(t)
	create(t, repo, "Ana", "ana@example.com")

	u, _ := domain.NewUser("Otra", "ana@example.com", time.Now())
	err := repo.Create(context.Background(), u, func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, "0", domain.UserCreated, nil)
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestUserRepo_CursorByName(t *testing.T) {
	repo := setupRepo(t)
	names := []string{"Eva", "Ana", "Eva", "Carla", "Ana", "Bea", "Dani"}
	for i, n := range names {
		create(t, repo, n, fmt.Sprintf("u%d@example.com", i))
	}

	q := query.ListQuery{SortField: "name", SortDirection: "desc", PageSize: 3, Mode: query.ModeCursor}
	var got []string
	for {
		res, err := query.Resolve(context.Background(), q, domain.ListConfig(), repo.Collection())
		require.NoError(t, err)
		for _, u := range res.Rows {
			got = append(got, fmt.Sprintf("%s#%d", u.Name, u.ID))
		}
		if !res.HasMore {
			break
		}
		q.Cursor = res.NextCursor
	}

	assert.Equal(t, []string{"Eva#3", "Eva#1", "Dani#7", "Carla#4", "Bea#6", "Ana#5", "Ana#2"}, got)
}
