package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/customer/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/shared/platform/cache"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/utils"
)

const cacheTTL = 60

// CustomerService define los casos de uso relacionados con Customer.
type CustomerService struct {
	repo    domain.CustomerRepository
	cache   cache.Cache
	listCfg query.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewCustomerService(repo domain.CustomerRepository, c cache.Cache, listCfg query.Config, log *zap.Logger) *CustomerService {
	return &CustomerService{
		repo:    repo,
		cache:   c,
		listCfg: listCfg,
		log:     log,
		now:     time.Now,
	}
}

// ListConfig es la configuración con la que se interpretan los parámetros de listado.
func (s *CustomerService) ListConfig() query.Config { return s.listCfg }

// List devuelve el listado ya proyectado para la tabla.
func (s *CustomerService) List(ctx context.Context, q query.ListQuery) (query.ListResult[CustomerRow], error) {
	res, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("Customer listing failed", zap.Error(err))
		return query.ListResult[CustomerRow]{}, err
	}
	return query.MapRows(res, ToRow), nil
}

// GetCustomer obtiene un cliente (primero intenta desde cache).
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	key := cache.Key(domain.AggregateType, id)

	// 1. Intentar cache
	if s.cache != nil {
		var c domain.Customer
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return &c, nil
		}
	}

	// 2. Ir al repo con reintentos (not found no se reintenta)
	var customer *domain.Customer
	err := utils.RetryIf(ctx, 3, 100*time.Millisecond, isTransient, func() error {
		var err error
		customer, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	// 3. Actualizar cache en background sin bloquear la respuesta
	cache.AsyncCacheSet(s.cache, key, customer, cacheTTL, s.log)
	return customer, nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, data domain.CustomerData) (*domain.Customer, error) {
	customer, err := domain.NewCustomer(data, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, customer, func() sharedDomain.OutboxEvent {
		return changedEvent(domain.CustomerCreated, customer)
	})
	if err != nil {
		return nil, err
	}

	cache.AsyncCacheSet(s.cache, cache.Key(domain.AggregateType, customer.ID), customer, cacheTTL, s.log)
	return customer, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, data domain.CustomerData) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Apply(data, s.now()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, customer, changedEvent(domain.CustomerUpdated, customer)); err != nil {
		return nil, err
	}

	cache.AsyncCacheSet(s.cache, cache.Key(domain.AggregateType, id), customer, cacheTTL, s.log)
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	evt := sharedDomain.NewOutboxEvent(domain.AggregateType, strconv.FormatInt(id, 10), domain.CustomerDeleted,
		sharedEvents.CustomerDeleted{ID: id})

	if err := s.repo.SoftDelete(ctx, id, evt); err != nil {
		return err
	}

	cache.AsyncCacheDelete(s.cache, cache.Key(domain.AggregateType, id), s.log)
	return nil
}

func changedEvent(eventType string, c *domain.Customer) sharedDomain.OutboxEvent {
	return sharedDomain.NewOutboxEvent(domain.AggregateType, c.PartitionKey(), eventType, sharedEvents.CustomerChanged{
		ID:       c.ID,
		Name:     c.FullName(),
		Email:    c.Email,
		IsActive: c.IsActive,
	})
}

// isTransient: solo se reintentan los fallos de infraestructura.
func isTransient(err error) bool {
	return !errors.Is(err, sharedDomain.ErrNotFound) && !errors.Is(err, context.Canceled)
}
