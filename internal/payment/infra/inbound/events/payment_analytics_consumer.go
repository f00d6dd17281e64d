package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
	sharedUtils "github.com/davicafu/adminlab/shared/utils"
)

const (
	flushTimeout = 5 * time.Second
	// lotes que se retienen mientras el repositorio falla
	maxPendingBatches = 10
)

// PaymentAnalyticsConsumer acumula los eventos de pago y los vuelca en
// lotes al repositorio analítico, por tamaño o por intervalo.
type PaymentAnalyticsConsumer struct {
	repo      paymentDomain.PaymentAnalyticsRepository
	batchSize int
	interval  time.Duration
	log       *zap.Logger

	mu      sync.Mutex
	pending []paymentDomain.PaymentLog
}

var _ sharedBus.MessageHandler = (*PaymentAnalyticsConsumer)(nil)

func NewPaymentAnalyticsConsumer(repo paymentDomain.PaymentAnalyticsRepository, batchSize int, interval time.Duration, log *zap.Logger) *PaymentAnalyticsConsumer {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &PaymentAnalyticsConsumer{repo: repo, batchSize: batchSize, interval: interval, log: log}
}

func (c *PaymentAnalyticsConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event for payment", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case paymentDomain.PaymentCreated:
		sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(evt sharedEvents.PaymentRecorded) {
			c.add(ctx, paymentDomain.PaymentLog{
				PaymentID: evt.ID,
				Email:     evt.Email,
				Amount:    evt.Amount,
				Status:    evt.Status,
				EventType: base.Type,
				EventTime: eventTime(base.Timestamp, evt.CreatedAt),
			})
		})

	case paymentDomain.PaymentDeleted:
		sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(evt sharedEvents.PaymentDeleted) {
			c.add(ctx, paymentDomain.PaymentLog{
				PaymentID: evt.ID,
				EventType: base.Type,
				EventTime: eventTime(base.Timestamp, time.Time{}),
			})
		})

	default:
		c.log.Warn("Unknown payment event type", zap.String("type", base.Type), zap.String("key", key))
	}
}

func (c *PaymentAnalyticsConsumer) add(ctx context.Context, l paymentDomain.PaymentLog) {
	c.mu.Lock()
	c.pending = append(c.pending, l)
	full := len(c.pending) >= c.batchSize
	c.mu.Unlock()

	if full {
		c.Flush(ctx)
	}
}

// Flush vuelca lo pendiente. Si falla, el lote se conserva para el siguiente intento
// hasta un máximo de maxPendingBatches lotes; lo más antiguo se descarta.
func (c *PaymentAnalyticsConsumer) Flush(ctx context.Context) {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	ctxFlush, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()

	if err := c.repo.LogBatch(ctxFlush, batch); err != nil {
		c.log.Warn("Failed to store payment analytics batch", zap.Int("size", len(batch)), zap.Error(err))
		c.mu.Lock()
		c.pending = append(batch, c.pending...)
		dropped := c.trimLocked()
		c.mu.Unlock()
		if dropped > 0 {
			c.log.Warn("Dropping oldest payment analytics rows", zap.Int("dropped", dropped))
		}
		return
	}
	c.log.Debug("Payment analytics batch stored", zap.Int("size", len(batch)))
}

// Run vuelca periódicamente hasta que ctx termina; al salir vacía lo pendiente.
func (c *PaymentAnalyticsConsumer) Run(ctx context.Context) {
	if c.interval <= 0 {
		<-ctx.Done()
		c.Flush(ctx)
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			c.Flush(ctx)
			return
		case <-ticker.C:
			c.Flush(ctx)
		}
	}
}

// trimLocked descarta las filas más antiguas por encima del máximo retenido.
func (c *PaymentAnalyticsConsumer) trimLocked() int {
	limit := c.batchSize * maxPendingBatches
	if len(c.pending) <= limit {
		return 0
	}
	dropped := len(c.pending) - limit
	c.pending = append([]paymentDomain.PaymentLog(nil), c.pending[dropped:]...)
	return dropped
}

// Pending devuelve cuántas filas esperan volcado.
func (c *PaymentAnalyticsConsumer) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

func eventTime(ts, fallback time.Time) time.Time {
	if !fallback.IsZero() {
		return fallback.UTC()
	}
	if !ts.IsZero() {
		return ts.UTC()
	}
	return time.Now().UTC()
}
