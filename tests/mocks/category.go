package mocks

import (
	"context"
	"sort"
	"sync"

	categoryDomain "github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

type InMemoryCategoryRepo struct {
	mu         sync.Mutex
	Categories map[int64]*categoryDomain.Category
	nextID     int64
}

func NewInMemoryCategoryRepo() *InMemoryCategoryRepo {
	return &InMemoryCategoryRepo{Categories: make(map[int64]*categoryDomain.Category)}
}

func (r *InMemoryCategoryRepo) Create(ctx context.Context, c *categoryDomain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.Categories[c.ID] = &cp
	return nil
}

func (r *InMemoryCategoryRepo) GetByID(ctx context.Context, id int64) (*categoryDomain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.Categories[id]
	if !ok {
		return nil, categoryDomain.ErrCategoryNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryCategoryRepo) Update(ctx context.Context, c *categoryDomain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Categories[c.ID]; !ok {
		return categoryDomain.ErrCategoryNotFound
	}
	cp := *c
	r.Categories[c.ID] = &cp
	return nil
}

func (r *InMemoryCategoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Categories[id]; !ok {
		return categoryDomain.ErrCategoryNotFound
	}
	delete(r.Categories, id)
	return nil
}

func (r *InMemoryCategoryRepo) Collection() query.Collection[*categoryDomain.Category] {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*categoryDomain.Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		cp := *c
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

var _ categoryDomain.CategoryRepository = (*InMemoryCategoryRepo)(nil)
