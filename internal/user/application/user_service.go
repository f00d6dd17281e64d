package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/user/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/shared/platform/cache"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/utils"
)

const cacheTTL = 60

// UserService define los casos de uso relacionados con User.
type UserService struct {
	repo    domain.UserRepository
	cache   cache.Cache
	listCfg query.Config
	log     *zap.Logger
	now     func() time.Time
}

// NewUserService constructor
func NewUserService(repo domain.UserRepository, c cache.Cache, listCfg query.Config, log *zap.Logger) *UserService {
	return &UserService{
		repo:    repo,
		cache:   c,
		listCfg: listCfg,
		log:     log,
		now:     time.Now,
	}
}

func (s *UserService) ListConfig() query.Config { return s.listCfg }

// ListUsers admite offset y cursor según la petición.
func (s *UserService) ListUsers(ctx context.Context, q query.ListQuery) (query.ListResult[*domain.User], error) {
	res, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("User listing failed", zap.Error(err))
	}
	return res, err
}

// GetUser obtiene un usuario (primero intenta desde cache).
func (s *UserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	key := cache.Key(domain.AggregateType, id)

	if s.cache != nil {
		var u domain.User
		if ok, _ := s.cache.Get(ctx, key, &u); ok {
			return &u, nil
		}
	}

	var user *domain.User
	err := utils.RetryIf(ctx, 3, 100*time.Millisecond, isTransient, func() error {
		var err error
		user, err = s.repo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.AsyncCacheSet(s.cache, key, user, cacheTTL, s.log)
	return user, nil
}

func (s *UserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user, err := domain.NewUser(name, email, s.now())
	if err != nil {
		return nil, err
	}

	err = s.repo.Create(ctx, user, func() sharedDomain.OutboxEvent {
		return sharedDomain.NewOutboxEvent(domain.AggregateType, user.PartitionKey(), domain.UserCreated,
			sharedEvents.UserCreated{ID: user.ID, Name: user.Name, Email: user.Email})
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// CountUsers alimenta las estadísticas del dashboard.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func isTransient(err error) bool {
	return !errors.Is(err, sharedDomain.ErrNotFound) && !errors.Is(err, context.Canceled)
}
