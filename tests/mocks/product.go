package mocks

import (
	"context"
	"errors"
	"sort"
	"sync"

	productDomain "github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// ErrStorageDown simula un fallo de base de datos.
var ErrStorageDown = errors.New("storage down")

// InMemoryProductRepo es un fake de ProductRepository. Con Fail activo
// las escrituras devuelven ErrStorageDown.
type InMemoryProductRepo struct {
	mu       sync.Mutex
	Products map[int64]*productDomain.Product
	Fail     bool
	nextID   int64
}

func NewInMemoryProductRepo() *InMemoryProductRepo {
	return &InMemoryProductRepo{Products: make(map[int64]*productDomain.Product)}
}

func (r *InMemoryProductRepo) Create(ctx context.Context, p *productDomain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrStorageDown
	}
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.Products[p.ID] = &cp
	return nil
}

func (r *InMemoryProductRepo) GetByID(ctx context.Context, id int64) (*productDomain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Products[id]
	if !ok {
		return nil, productDomain.ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryProductRepo) Update(ctx context.Context, p *productDomain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrStorageDown
	}
	if _, ok := r.Products[p.ID]; !ok {
		return productDomain.ErrProductNotFound
	}
	cp := *p
	r.Products[p.ID] = &cp
	return nil
}

func (r *InMemoryProductRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail {
		return ErrStorageDown
	}
	if _, ok := r.Products[id]; !ok {
		return productDomain.ErrProductNotFound
	}
	delete(r.Products, id)
	return nil
}

func (r *InMemoryProductRepo) Collection() query.Collection[*productDomain.Product] {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*productDomain.Product, 0, len(r.Products))
	for _, p := range r.Products {
		cp := *p
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

var _ productDomain.ProductRepository = (*InMemoryProductRepo)(nil)
