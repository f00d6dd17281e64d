package application

import (
	"context"
	"strconv"

	"github.com/davicafu/adminlab/internal/customer/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

// InlineDispatcher ejecuta cada trabajo en el momento.
type InlineDispatcher struct {
	service *CustomerService
}

func NewInlineDispatcher(service *CustomerService) *InlineDispatcher {
	return &InlineDispatcher{service: service}
}

func (d *InlineDispatcher) Dispatch(ctx context.Context, job SeedJob) error {
	return d.service.SeedBatch(ctx, job)
}

// BusDispatcher publica cada trabajo en el topic de seed; lo procesa CustomerConsumer.
type BusDispatcher struct {
	publisher sharedBus.EventPublisher
}

func NewBusDispatcher(publisher sharedBus.EventPublisher) *BusDispatcher {
	return &BusDispatcher{publisher: publisher}
}

func (d *BusDispatcher) Dispatch(ctx context.Context, job SeedJob) error {
	evt, err := sharedEvents.NewIntegrationEvent(domain.CustomerSeedRequested, strconv.Itoa(job.StartIndex),
		sharedEvents.CustomerSeedRequested{BatchSize: job.BatchSize, StartIndex: job.StartIndex})
	if err != nil {
		return err
	}
	return d.publisher.Publish(ctx, domain.CustomerSeedTopic, evt)
}

var (
	_ JobDispatcher = (*InlineDispatcher)(nil)
	_ JobDispatcher = (*BusDispatcher)(nil)
)
