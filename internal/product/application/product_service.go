package application

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/platform/storage"
)

// Directorio de las imágenes destacadas dentro del almacenamiento.
const imageDir = "products"

// ProductService define los casos de uso del catálogo.
type ProductService struct {
	repo    domain.ProductRepository
	files   storage.FileStorage
	listCfg query.Config
	log     *zap.Logger
	now     func() time.Time
}

func NewProductService(repo domain.ProductRepository, files storage.FileStorage, listCfg query.Config, log *zap.Logger) *ProductService {
	return &ProductService{repo: repo, files: files, listCfg: listCfg, log: log, now: time.Now}
}

func (s *ProductService) ListConfig() query.Config { return s.listCfg }

func (s *ProductService) List(ctx context.Context, q query.ListQuery) (query.ListResult[*domain.Product], error) {
	res, err := query.Resolve(ctx, q, s.listCfg, s.repo.Collection())
	if err != nil {
		s.log.Error("Product listing failed", zap.Error(err))
	}
	return res, err
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Create guarda la imagen (si viene) y después el producto.
func (s *ProductService) Create(ctx context.Context, data domain.ProductData, img *storage.Upload) (*domain.Product, error) {
	product, err := domain.NewProduct(data, s.now())
	if err != nil {
		return nil, err
	}

	stored, err := s.storeImage(ctx, product, img)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, product); err != nil {
		s.log.Error("Product Creation Failure", zap.Error(err))
		s.removeFile(stored)
		return nil, err
	}
	return product, nil
}

// Update reemplaza los campos y, si llega imagen nueva, borra la anterior.
func (s *ProductService) Update(ctx context.Context, id int64, data domain.ProductData, img *storage.Upload) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Apply(data, s.now()); err != nil {
		return nil, err
	}

	previous := ""
	if product.FeaturedImage != nil {
		previous = *product.FeaturedImage
	}
	stored, err := s.storeImage(ctx, product, img)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		s.log.Error("Product update failed", zap.Int64("id", id), zap.Error(err))
		s.removeFile(stored)
		return nil, err
	}
	if stored != "" {
		s.removeFile(previous)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("Product deletion failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if product.FeaturedImage != nil {
		s.removeFile(*product.FeaturedImage)
	}
	return nil
}

func (s *ProductService) storeImage(ctx context.Context, p *domain.Product, img *storage.Upload) (string, error) {
	if img == nil {
		return "", nil
	}
	stored, err := storage.PutImage(ctx, s.files, imageDir, *img)
	if err != nil {
		return "", err
	}
	p.SetImage(stored.Path, stored.OriginalName)
	return stored.Path, nil
}

// removeFile no falla la operación: un fichero huérfano solo se registra.
func (s *ProductService) removeFile(path string) {
	if path == "" {
		return
	}
	if err := s.files.Delete(context.Background(), path); err != nil {
		s.log.Warn("Product image cleanup failed", zap.String("path", path), zap.Error(err))
	}
}

var seedNouns = []string{"Chair", "Lamp", "Desk", "Mug", "Notebook", "Backpack", "Headphones", "Keyboard", "Monitor", "Bottle"}
var seedAdjectives = []string{"Ergonomic", "Rustic", "Sleek", "Compact", "Vintage", "Wireless", "Premium", "Recycled"}

// Seed crea n productos de demostración sin imagen.
func (s *ProductService) Seed(ctx context.Context, n int) error {
	rnd := rand.New(rand.NewSource(s.now().UnixNano()))
	for i := 0; i < n; i++ {
		name := seedAdjectives[rnd.Intn(len(seedAdjectives))] + " " + seedNouns[rnd.Intn(len(seedNouns))]
		data := domain.ProductData{
			Name:        name,
			Description: "Demo product #" + strconv.Itoa(i+1),
			Price:       decimal.NewNullDecimal(decimal.New(100+rnd.Int63n(99900), -2)),
		}
		if _, err := s.Create(ctx, data, nil); err != nil {
			return err
		}
	}
	s.log.Info("Products seeded", zap.Int("count", n))
	return nil
}
