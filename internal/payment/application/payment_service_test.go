package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/payment/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/tests/mocks"
)

func newService() (*PaymentService, *mocks.InMemoryPaymentRepo) {
	repo := mocks.NewInMemoryPaymentRepo()
	return NewPaymentService(repo, domain.ListConfig(), zap.NewNop()), repo
}

func TestCreatePayment_EmitsRecorded(t *testing.T) {
	service, repo := newService()

	p, err := service.Create(context.Background(), decimal.RequireFromString("42.5"), domain.StatusSuccess, "ana@example.com")
	require.NoError(t, err)

	require.Len(t, repo.Outbox, 1)
	evt := repo.Outbox[0]
	assert.Equal(t, domain.PaymentCreated, evt.EventType)
	assert.Equal(t, "1", evt.AggregateID)

	rec, ok := evt.Payload.(sharedEvents.PaymentRecorded)
	require.True(t, ok)
	assert.Equal(t, p.ID, rec.ID)
	assert.Equal(t, "success", rec.Status)
	assert.True(t, decimal.RequireFromString("42.50").Equal(rec.Amount))
}

func TestCreatePayment_Invalid(t *testing.T) {
	service, repo := newService()
	_, err := service.Create(context.Background(), decimal.NewFromInt(-5), domain.StatusSuccess, "ana@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidPayment)
	assert.Empty(t, repo.Outbox)
}

func TestDeletePayment(t *testing.T) {
	service, repo := newService()
	p, err := service.Create(context.Background(), decimal.NewFromInt(1), domain.StatusPending, "a@example.com")
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), p.ID))
	assert.Equal(t, sharedEvents.PaymentDeleted{ID: p.ID}, repo.Outbox[1].Payload)

	assert.ErrorIs(t, service.Delete(context.Background(), p.ID), domain.ErrPaymentNotFound)
	_, err = service.Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestSeedAndList(t *testing.T) {
	service, _ := newService()
	require.NoError(t, service.Seed(context.Background(), 25))

	n, err := service.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(25), n)

	res, err := service.List(context.Background(), query.ListQuery{PageSize: service.ListConfig().DefaultPageSize})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 25)
	assert.Equal(t, int64(1), res.Rows[0].ID)
}
