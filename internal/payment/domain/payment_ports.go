package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// ---------- Errores de dominio ----------
var (
	ErrPaymentNotFound = fmt.Errorf("payment %w", sharedDomain.ErrNotFound)
	ErrInvalidPayment  = fmt.Errorf("invalid payment: %w", sharedDomain.ErrInvalidInput)
)

// ---------- Interfaces (Ports) ----------

// PaymentRepository define las operaciones persistentes para Payment.
// Hay implementación SQL y MongoDB; ambas escriben la outbox en la misma transacción.
type PaymentRepository interface {
	// Asigna p.ID antes de construir el evento.
	Create(ctx context.Context, p *Payment, evt sharedDomain.EventFactory) error
	GetByID(ctx context.Context, id int64) (*Payment, error)
	Delete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error
	Count(ctx context.Context) (int64, error)
	Collection() query.Collection[*Payment]
}

// PaymentLog es una fila del histórico analítico.
type PaymentLog struct {
	PaymentID int64
	Email     string
	Amount    decimal.Decimal
	Status    string
	EventType string
	EventTime time.Time
}

// MonthlyCount es el número de pagos creados en un mes.
type MonthlyCount struct {
	Month time.Time
	Count int64
}

// PaymentAnalyticsRepository guarda el histórico de eventos de pago.
type PaymentAnalyticsRepository interface {
	LogBatch(ctx context.Context, logs []PaymentLog) error
	// MonthlyCreated devuelve los últimos months meses con pagos creados, del más antiguo al más reciente.
	MonthlyCreated(ctx context.Context, months int) ([]MonthlyCount, error)
}
