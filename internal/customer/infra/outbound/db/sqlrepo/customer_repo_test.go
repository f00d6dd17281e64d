package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/adminlab/internal/customer/domain"
	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

func setupRepo(t *testing.T) (*CustomerRepoSQL, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.Open(ctx, persistence.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(ctx, db, persistence.SQLite))
	require.NoError(t, sqlstore.InitOutboxSchema(ctx, db, persistence.SQLite))
	return NewCustomerRepoSQL(db, persistence.SQLite), db
}

func newCustomer(t *testing.T, first, email, country string, active bool) *domain.Customer {
	t.Helper()
	c, err := domain.NewCustomer(domain.CustomerData{
		FirstName:      first,
		LastName:       "Test",
		Email:          email,
		Country:        country,
		City:           "Sevilla",
		IsActive:       active,
		AccountBalance: decimal.RequireFromString("120.50"),
		ExtraInfo:      map[string]any{"notes": "vip"},
	}, time.Now())
	require.NoError(t, err)
	return c
}

func event(c *domain.Customer) sharedDomain.EventFactory {
	return func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, fmt.Sprint(c.ID), domain.CustomerCreated, map[string]any{"id": c.ID})
	}
}

func pendingOutbox(t *testing.T, db *sql.DB) []sharedDomain.OutboxEvent {
	t.Helper()
	evts, err := sqlstore.NewOutboxRepoSQL(db, persistence.SQLite).FetchPendingOutbox(context.Background(), 100)
	require.NoError(t, err)
	return evts
}

func TestCustomerRepo_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)

	c := newCustomer(t, "Ana", "ana@example.com", "ES", true)
	require.NoError(t, repo.Create(ctx, c, event(c)))
	assert.NotZero(t, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.True(t, got.IsActive)
	assert.True(t, decimal.RequireFromString("120.50").Equal(got.AccountBalance))
	assert.Equal(t, "vip", got.ExtraInfo["notes"])
	assert.Nil(t, got.Username)

	evts := pendingOutbox(t, db)
	require.Len(t, evts, 1)
	assert.Equal(t, fmt.Sprint(c.ID), evts[0].AggregateID)
}

func TestCustomerRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)

	a := newCustomer(t, "Ana", "dup@example.com", "ES", true)
	require.NoError(t, repo.Create(ctx, a, event(a)))

	b := newCustomer(t, "Bea", "dup@example.com", "ES", true)
	err := repo.Create(ctx, b, event(b))
	assert.ErrorIs(t, err, domain.ErrCustomerAlreadyExists)

	// la transacción fallida no deja evento
	assert.Len(t, pendingOutbox(t, db), 1)
}

func TestCustomerRepo_UpdateAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)

	c := newCustomer(t, "Ana", "ana@example.com", "ES", true)
	require.NoError(t, repo.Create(ctx, c, event(c)))

	c.City = "Madrid"
	upd := sharedDomain.NewOutboxEvent(domain.AggregateType, fmt.Sprint(c.ID), domain.CustomerUpdated, nil)
	require.NoError(t, repo.Update(ctx, c, upd))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Madrid", got.City)

	del := sharedDomain.NewOutboxEvent(domain.AggregateType, fmt.Sprint(c.ID), domain.CustomerDeleted, nil)
	require.NoError(t, repo.SoftDelete(ctx, c.ID, del))

	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)

	// borrar o actualizar de nuevo: not found
	assert.ErrorIs(t, repo.SoftDelete(ctx, c.ID, del), domain.ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Update(ctx, c, upd), domain.ErrCustomerNotFound)

	assert.Len(t, pendingOutbox(t, db), 3)

	// la fila sigue en la tabla
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM customers WHERE deleted_at IS NOT NULL`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestCustomerRepo_CreateBatch(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)

	var batch []*domain.Customer
	for i := 0; i < 250; i++ {
		batch = append(batch, newCustomer(t, "Seed", fmt.Sprintf("customer%d@example.com", i), "ES", i%2 == 0))
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM customers`).Scan(&n))
	assert.Equal(t, 250, n)
	assert.Empty(t, pendingOutbox(t, db))
}

func TestCustomerRepo_CollectionThroughResolver(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	for i, country := range []string{"ES", "FR", "ES", "ES"} {
		c := newCustomer(t, fmt.Sprintf("Name%d", i), fmt.Sprintf("c%d@example.com", i), country, i != 2)
		require.NoError(t, repo.Create(ctx, c, event(c)))
	}
	// el primero se borra y no debe aparecer
	require.NoError(t, repo.SoftDelete(ctx, 1, sharedDomain.NewOutboxEvent(domain.AggregateType, "1", domain.CustomerDeleted, nil)))

	res, err := query.Resolve(ctx, query.ListQuery{
		Filters:  map[string]any{"country": "ES", "is_active": "1", "password": "x"},
		PageSize: 10,
	}, domain.ListConfig(), repo.Collection())
	require.NoError(t, err)

	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(4), res.Rows[0].ID)
	assert.Equal(t, int64(1), *res.Total)
	assert.Equal(t, map[string]any{"country": "ES", "is_active": true}, res.Applied.Filters)
}

func TestCustomerRepo_CursorOverCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		c := newCustomer(t, "N", fmt.Sprintf("c%d@example.com", i), "ES", true)
		c.CreatedAt = base.Add(time.Duration(i%3) * time.Hour) // con empates
		require.NoError(t, repo.Create(ctx, c, event(c)))
	}

	q := query.ListQuery{SortField: "created_at", SortDirection: "asc", PageSize: 2, Mode: query.ModeCursor}
	var ids []int64
	for i := 0; i < 5; i++ {
		res, err := query.Resolve(ctx, q, domain.ListConfig(), repo.Collection())
		require.NoError(t, err)
		assert.Nil(t, res.Total)
		for _, r := range res.Rows {
			ids = append(ids, r.ID)
		}
		if res.NextCursor == "" {
			break
		}
		q.Cursor = res.NextCursor
	}

	// created_at: 1->0h 2->1h 3->2h 4->0h 5->1h
	assert.Equal(t, []int64{1, 4, 2, 5, 3}, ids)
}
