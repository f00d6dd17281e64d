package application

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/customer/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/tests/mocks"
)

type recordingDispatcher struct {
	jobs   []SeedJob
	failAt int
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, job SeedJob) error {
	if d.failAt > 0 && len(d.jobs) == d.failAt {
		return errors.New("queue down")
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func TestPlanSeed(t *testing.T) {
	jobs := PlanSeed(DefaultSeedTotal, DefaultSeedBatch)
	assert.Len(t, jobs, 100)
	assert.Equal(t, SeedJob{BatchSize: 1000, StartIndex: 99000}, jobs[99])

	assert.Equal(t, []SeedJob{{5, 0}, {5, 5}, {2, 10}}, PlanSeed(12, 5))
	assert.Nil(t, PlanSeed(0, 10))
	assert.Nil(t, PlanSeed(10, 0))
}

func TestSeeder_Run(t *testing.T) {
	d := &recordingDispatcher{}
	n, err := NewSeeder(d, zap.NewNop()).Run(context.Background(), 2500, 1000)

	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []SeedJob{{1000, 0}, {1000, 1000}, {500, 2000}}, d.jobs)
}

func TestSeeder_StopsOnDispatchError(t *testing.T) {
	d := &recordingDispatcher{failAt: 1}
	n, err := NewSeeder(d, zap.NewNop()).Run(context.Background(), 3000, 1000)

	assert.Error(t, err)
	assert.Equal(t, 1, n)
}

func TestSeedBatch_InlineCreatesNumberedCustomers(t *testing.T) {
	service, repo := newService()
	seeder := NewSeeder(NewInlineDispatcher(service), zap.NewNop())

	_, err := seeder.Run(context.Background(), 25, 10)
	require.NoError(t, err)

	require.Len(t, repo.Customers, 25)
	emails := map[string]bool{}
	for _, c := range repo.Customers {
		emails[c.Email] = true
		assert.NoError(t, c.Validate())
	}
	for i := 0; i < 25; i++ {
		assert.True(t, emails[fmt.Sprintf("customer%d@example.com", i)], i)
	}
	// el seed no genera eventos
	assert.Empty(t, repo.Outbox)

	// repetir un trabajo choca con los emails ya creados
	err = service.SeedBatch(context.Background(), SeedJob{BatchSize: 1, StartIndex: 3})
	assert.ErrorIs(t, err, domain.ErrCustomerAlreadyExists)
}

func TestBusDispatcher_PublishesJob(t *testing.T) {
	pub := &mocks.RecordingPublisher{}
	require.NoError(t, NewBusDispatcher(pub).Dispatch(context.Background(), SeedJob{BatchSize: 10, StartIndex: 20}))

	require.Len(t, pub.Events, 1)
	assert.Equal(t, domain.CustomerSeedTopic, pub.Topics[0])

	evt := pub.Events[0].(sharedEvents.IntegrationEvent)
	assert.Equal(t, domain.CustomerSeedRequested, evt.Type)
	assert.Equal(t, "20", evt.Key)
	assert.JSONEq(t, `{"batch_size":10,"start_index":20}`, string(evt.Data))
}
