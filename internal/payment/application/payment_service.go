package application

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/payment/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const DefaultSeedPayments = 500

type PaymentService struct {
	repo    domain.PaymentRepository
	listCfg query.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewPaymentService(repo domain.PaymentRepository, listCfg query.Config, log *zap.Logger) *PaymentService {
	return &PaymentService{repo: repo, listCfg: listCfg, log: log, now: time.Now}
}

func (s *PaymentService) ListConfig() query.Config { return s.listCfg }

func (s *PaymentService) List(ctx context.Context, q query.ListQuery) (query.ListResult[*domain.Payment], error) {
	res, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("Payment listing failed", zap.Error(err))
	}
	return res, err
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.repo.GetByID(ctx, id)
}

// Create registra el pago y publica payment.created vía outbox.
func (s *PaymentService) Create(ctx context.Context, amount decimal.Decimal, status domain.PaymentStatus, email string) (*domain.Payment, error) {
	p, err := domain.NewPayment(amount, status, email, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, p, func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, p.PartitionKey(), domain.PaymentCreated,
			sharedEvents.PaymentRecorded{ID: p.ID, Email: p.Email, Amount: p.Amount, Status: string(p.Status), CreatedAt: p.CreatedAt})
	})
	if err != nil {
		s.log.Error("Payment creation failed", zap.String("email", p.Email), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	key := strconv.FormatInt(id, 10)
	evt := sharedDomain.NewOutboxEvent(domain.AggregateType, key, domain.PaymentDeleted, sharedEvents.PaymentDeleted{ID: id})
	return s.repo.Delete(ctx, id, evt)
}

func (s *PaymentService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Seed crea n pagos aleatorios.
func (s *PaymentService) Seed(ctx context.Context, n int) error {
	rnd := rand.New(rand.NewSource(s.now().UnixNano()))
	for i := 0; i < n; i++ {
		amount := decimal.New(100+rnd.Int63n(99900), -2)
		status := domain.Statuses[rnd.Intn(len(domain.Statuses))]
		email := "payer" + strconv.Itoa(rnd.Intn(100000)) + "@example.com"
		if _, err := s.Create(ctx, amount, status, email); err != nil {
			return err
		}
	}
	s.log.Info("Payments seeded", zap.Int("count", n))
	return nil
}
