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

	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	"github.com/davicafu/adminlab/internal/payment/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

func setupRepo(t *testing.T) (*PaymentRepoSQL, *sql.DB) {
	t.Helper()
	ctx := context.Background()
	db, err := persistence.Open(ctx, persistence.SQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(ctx, db, persistence.SQLite))
	require.NoError(t, sqlstore.InitOutboxSchema(ctx, db, persistence.SQLite))
	return NewPaymentRepoSQL(db, persistence.SQLite), db
}

func create(t *testing.T, repo *PaymentRepoSQL, amount string, status domain.PaymentStatus, email string) *domain.Payment {
	t.Helper()
	p, err := domain.NewPayment(decimal.RequireFromString(amount), status, email, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p, func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, fmt.Sprint(p.ID), domain.PaymentCreated, map[string]any{"id": p.ID})
	}))
	return p
}

func TestPaymentRepo_CreateGetDelete(t *testing.T) {
	ctx := context.Background()
	repo, db := setupRepo(t)

	p := create(t, repo, "99.90", domain.StatusSuccess, "ana@example.com")
	assert.Equal(t, int64(1), p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuccess, got.Status)
	assert.True(t, decimal.RequireFromString("99.90").Equal(got.Amount))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	del := sharedDomain.NewOutboxEvent(domain.AggregateType, "1", domain.PaymentDeleted, map[string]any{"id": 1})
	require.NoError(t, repo.Delete(ctx, p.ID, del))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID, del), domain.ErrPaymentNotFound)

	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)

	evts, err := sqlstore.NewOutboxRepoSQL(db, persistence.SQLite).FetchPendingOutbox(ctx, 10)
	require.NoError(t, err)
	require.Len(t, evts, 2)
	assert.Equal(t, "1", evts[0].AggregateID)
	assert.Equal(t, domain.PaymentDeleted, evts[1].EventType)
}

func TestPaymentRepo_FilterAndSearch(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupRepo(t)

	create(t, repo, "10", domain.StatusSuccess, "ana@example.com")
	create(t, repo, "20", domain.StatusFailed, "bea@example.com")
	create(t, repo, "30", domain.StatusSuccess, "anabel@example.com")

	res, err := query.Resolve(ctx, query.ListQuery{
		Search:   "ana",
		Filters:  map[string]any{"status": "success"},
		PageSize: query.FetchAll,
	}, domain.ListConfig(), repo.Collection())
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, int64(1), res.Rows[0].ID)
	assert.Equal(t, int64(3), res.Rows[1].ID)
}
