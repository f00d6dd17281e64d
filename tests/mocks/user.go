package mocks

import (
	"context"
	"sort"
	"sync"

	userDomain "github.com/davicafu/adminlab/internal/user/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// InMemoryUserRepo es un fake de UserRepository.
type InMemoryUserRepo struct {
	mu     sync.Mutex
	Users  map[int64]*userDomain.User
	Outbox []sharedDomain.OutboxEvent
	nextID int64
}

func NewInMemoryUserRepo() *InMemoryUserRepo {
	return &InMemoryUserRepo{Users: make(map[int64]*userDomain.User)}
}

func (r *InMemoryUserRepo) Create(ctx context.Context, u *userDomain.User, evt sharedDomain.EventFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.Users {
		if other.Email == u.Email {
			return userDomain.ErrUserAlreadyExists
		}
	}
	r.nextID++
	u.ID = r.nextID
	cp := *u
	r.Users[u.ID] = &cp
	r.Outbox = append(r.Outbox, evt())
	return nil
}

func (r *InMemoryUserRepo) GetByID(ctx context.Context, id int64) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.Users[id]
	if !ok {
		return nil, userDomain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *InMemoryUserRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.Users)), nil
}

func (r *InMemoryUserRepo) Collection() query.Collection[*userDomain.User] {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]*userDomain.User, 0, len(r.Users))
	for _, u := range r.Users {
		cp := *u
		rows = append(rows, &cp)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

var _ userDomain.UserRepository = (*InMemoryUserRepo)(nil)
