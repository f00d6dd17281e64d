package mocks

import (
	"context"
	"sort"
	"sync"

	postDomain "github.com/davicafu/adminlab/internal/post/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

type InMemoryPostRepo struct {
	mu     sync.Mutex
	Posts  map[int64]*postDomain.Post
	nextID int64
}

func NewInMemoryPostRepo() *InMemoryPostRepo {
	return &InMemoryPostRepo{Posts: make(map[int64]*postDomain.Post)}
}

func (r *InMemoryPostRepo) Create(ctx context.Context, p *postDomain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	cp := *p
	r.Posts[p.ID] = &cp
	return nil
}

func (r *InMemoryPostRepo) GetByID(ctx context.Context, id int64) (*postDomain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Posts[id]
	if !ok {
		return nil, postDomain.ErrPostNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *InMemoryPostRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Posts[id]; !ok {
		return postDomain.ErrPostNotFound
	}
	delete(r.Posts, id)
	return nil
}

func (r *InMemoryPostRepo) Collection() query.Collection[*postDomain.Post] {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]*postDomain.Post, 0, len(r.Posts))
	for _, p := range r.Posts {
		cp := *p
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

var _ postDomain.PostRepository = (*InMemoryPostRepo)(nil)
