package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/customer/application"
	customerDomain "github.com/davicafu/adminlab/internal/customer/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
	sharedUtils "github.com/davicafu/adminlab/shared/utils"
)

const jobTimeout = 2 * time.Minute

// SeedService es lo que el consumidor necesita del servicio de clientes.
type SeedService interface {
	SeedBatch(ctx context.Context, job application.SeedJob) error
}

// CustomerConsumer ejecuta los trabajos de seed que llegan por el bus.
type CustomerConsumer struct {
	service SeedService
	log     *zap.Logger
}

var _ sharedBus.MessageHandler = (*CustomerConsumer)(nil)

func NewCustomerConsumer(service SeedService, logger *zap.Logger) *CustomerConsumer {
	return &CustomerConsumer{
		service: service,
		log:     logger,
	}
}

func (c *CustomerConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for customer", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case customerDomain.CustomerSeedRequested:
		sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(evt sharedEvents.CustomerSeedRequested) {
			job := application.SeedJob{BatchSize: evt.BatchSize, StartIndex: evt.StartIndex}

			ctxJob, cancel := context.WithTimeout(ctx, jobTimeout)
			defer cancel()

			if err := c.service.SeedBatch(ctxJob, job); err != nil {
				// un trabajo repetido ya está aplicado
				if errors.Is(err, customerDomain.ErrCustomerAlreadyExists) {
					c.log.Info("Seed job already applied", zap.Int("start", job.StartIndex))
					return
				}
				c.log.Warn("Failed to process seed job", zap.Any("job", job), zap.Error(err))
				return
			}
			c.log.Info("Seed job processed", zap.Int("start", job.StartIndex), zap.Int("size", job.BatchSize))
		})

	default:
		c.log.Warn("Unknown customer event type", zap.String("type", base.Type), zap.String("key", key))
	}
}
