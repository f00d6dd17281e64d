package mocks

import (
	"context"
	"sort"
	"sync"

	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

type InMemoryPaymentRepo struct {
	mu       sync.Mutex
	Payments map[int64]*paymentDomain.Payment
	Outbox   []sharedDomain.OutboxEvent
	nextID   int64
}

func NewInMemoryPaymentRepo() *InMemoryPaymentRepo {
	return &InMemoryPaymentRepo{Payments: make(map[int64]*paymentDomain.Payment)}
}

func (r *InMemoryPaymentRepo) Create(ctx context.Context, p *paymentDomain.Payment, evt sharedDomain.EventFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.Payments[p.ID] = &cp
	r.Outbox = append(r.Outbox, evt())
	return nil
}

func (r *InMemoryPaymentRepo) GetByID(ctx context.Context, id int64) (*paymentDomain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Payments[id]
	if !ok {
		return nil, paymentDomain.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryPaymentRepo) Delete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Payments[id]; !ok {
		return paymentDomain.ErrPaymentNotFound
	}
	delete(r.Payments, id)
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryPaymentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Payments)), nil
}

func (r *InMemoryPaymentRepo) Collection() query.Collection[*paymentDomain.Payment] {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*paymentDomain.Payment, 0, len(r.Payments))
	for _, p := range r.Payments {
		cp := *p
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

// InMemoryPaymentAnalytics acumula los lotes recibidos.
type InMemoryPaymentAnalytics struct {
	mu      sync.Mutex
	Batches [][]paymentDomain.PaymentLog
	Monthly []paymentDomain.MonthlyCount
	Err     error
}

func (a *InMemoryPaymentAnalytics) LogBatch(ctx context.Context, logs []paymentDomain.PaymentLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	a.Batches = append(a.Batches, append([]paymentDomain.PaymentLog(nil), logs...))
	return nil
}

func (a *InMemoryPaymentAnalytics) MonthlyCreated(ctx context.Context, months int) ([]paymentDomain.MonthlyCount, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Monthly, a.Err
}

// Logged devuelve todas las filas recibidas en orden.
func (a *InMemoryPaymentAnalytics) Logged() []paymentDomain.PaymentLog {
	a.mu.Lock()
	defer a.mu.Unlock()
	var all []paymentDomain.PaymentLog
	for _, b := range a.Batches {
		all = append(all, b...)
	}
	return all
}

var (
	_ paymentDomain.PaymentRepository          = (*InMemoryPaymentRepo)(nil)
	_ paymentDomain.PaymentAnalyticsRepository = (*InMemoryPaymentAnalytics)(nil)
)
