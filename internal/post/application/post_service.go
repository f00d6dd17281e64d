package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	categoryDomain "github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/internal/post/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
)

const pictureDir = "posts"

// CategoryCatalog es lo que necesitan los posts de las categorías.
type CategoryCatalog interface {
	Get(ctx context.Context, id int64) (*categoryDomain.Category, error)
	List(ctx context.Context, q query.ListQuery) (query.ListResult[*categoryDomain.Category], error)
}

// Index es la respuesta del listado: posts y todas las categorías.
type Index struct {
	Posts      query.ListResult[*domain.Post]
	Categories []*categoryDomain.Category
}

type PostService struct {
	repo       domain.PostRepository
	categories CategoryCatalog
	files      storage.FileStorage
	listCfg    query.Config
	log        *zap.Logger
	now        func() time.Time
}

func NewPostService(repo domain.PostRepository, categories CategoryCatalog, files storage.FileStorage, listCfg query.Config, log *zap.Logger) *PostService {
	return &PostService{
		repo:       repo,
		categories: categories,
		files:      files,
		listCfg:    listCfg,
		log:        log,
		now:        time.Now,
	}
}

func (s *PostService) ListConfig() query.Config { return s.listCfg }

func (s *PostService) Index(ctx context.Context, q query.ListQuery) (Index, error) {
	if raw, ok := q.Filters["category_id"].(string); ok {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			q.Filters["category_id"] = id
		}
	}

	posts, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("Post listing failed", zap.Error(err))
		return Index{}, err
	}

	cats, err := s.categories.List(ctx, query.ListQuery{PageSize: query.FetchAll, SortDirection: string(query.Asc)})
	if err != nil {
		return Index{}, err
	}
	return Index{Posts: posts, Categories: cats.Rows}, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	return s.repo.GetByID(ctx, id)
}

// Create comprueba la categoría, guarda la imagen y después el post.
func (s *PostService) Create(ctx context.Context, data domain.PostData, picture *storage.Upload) (*domain.Post, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if picture == nil {
		return nil, fmt.Errorf("%w: the picture field is required", domain.ErrInvalidPost)
	}
	if _, err := s.categories.Get(ctx, data.CategoryID); err != nil {
		if errors.Is(err, categoryDomain.ErrCategoryNotFound) {
			return nil, fmt.Errorf("%w: the selected category id is invalid", domain.ErrInvalidPost)
		}
		return nil, err
	}

	stored, err := storage.PutImage(ctx, s.files, pictureDir, *picture)
	if err != nil {
		return nil, err
	}

	post, err := domain.NewPost(data, stored.Path, s.now())
	if err == nil {
		err = s.repo.Create(ctx, post)
	}
	if err != nil {
		s.log.Error("Post creation failed", zap.Error(err))
		s.removeFile(stored.Path)
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.removeFile(post.Picture)
	return nil
}

func (s *PostService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.files.Delete(context.Background(), path); err != nil {
		s.log.Warn("Post picture cleanup failed", zap.String("path", path), zap.Error(err))
	}
}
