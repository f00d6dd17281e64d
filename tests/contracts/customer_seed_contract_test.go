package contracts

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	customerApp "github.com/davicafu/adminlab/internal/customer/application"
	customerDomain "github.com/davicafu/adminlab/internal/customer/domain"
	customerEvents "github.com/davicafu/adminlab/internal/customer/infra/inbound/events"
	infraEvents "github.com/davicafu/adminlab/internal/infra/events"
)

type fakeSeedService struct {
	mu   sync.Mutex
	jobs []customerApp.SeedJob
}

func (f *fakeSeedService) SeedBatch(ctx context.Context, job customerApp.SeedJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeSeedService) received() []customerApp.SeedJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]customerApp.SeedJob(nil), f.jobs...)
}

// Lo que publica BusDispatcher es lo que entiende CustomerConsumer.
func TestSeedJobsRoundTripThroughBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	log := zap.NewNop()

	bus := infraEvents.NewInMemoryEventBus()
	defer bus.Close()

	service := &fakeSeedService{}
	infraEvents.Consume(ctx, bus.Subscribe(customerDomain.CustomerSeedTopic, 8), customerEvents.NewCustomerConsumer(service, log), log)

	jobs, err := customerApp.NewSeeder(customerApp.NewBusDispatcher(bus), log).Run(ctx, 2500, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3, jobs)

	require.Eventually(t, func() bool { return len(service.received()) == 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []customerApp.SeedJob{
		{BatchSize: 1000, StartIndex: 0},
		{BatchSize: 1000, StartIndex: 1000},
		{BatchSize: 500, StartIndex: 2000},
	}, service.received())
}
