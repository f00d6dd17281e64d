package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
)

type CategoryService struct {
	repo    domain.CategoryRepository
	listCfg query.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewCategoryService(repo domain.CategoryRepository, listCfg query.Config, log *zap.Logger) *CategoryService {
	return &CategoryService{repo: repo, listCfg: listCfg, log: log, now: time.Now}
}

func (s *CategoryService) ListConfig() query.Config { return s.listCfg }

func (s *CategoryService) List(ctx context.Context, q query.ListQuery) (query.ListResult[*domain.Category], error) {
	// user_id es numérico en todos los backends
	if raw, ok := q.Filters["user_id"].(string); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.Filters["user_id"] = id
		}
	}

	res, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("Category listing failed", zap.Error(err))
	}
	return res, err
}

// Get también sirve para comprobar que una categoría existe.
func (s *CategoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CategoryService) Create(ctx context.Context, title string, userID int64) (*domain.Category, error) {
	c, err := domain.NewCategory(title, userID, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("Category creation failed", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, title string) (*domain.Category, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.Rename(title, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
