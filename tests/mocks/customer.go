package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	customerDomain "github.com/davicafu/adminlab/internal/customer/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/memory"
	"github.com/davicafu/adminlab/shared/platform/query"
)

// InMemoryCustomerRepo es un fake de CustomerRepository.
type InMemoryCustomerRepo struct {
	mu        sync.Mutex
	Customers map[int64]*customerDomain.Customer
	Outbox    []sharedDomain.OutboxEvent
	nextID    int64
}

func NewInMemoryCustomerRepo() *InMemoryCustomerRepo {
	return &InMemoryCustomerRepo{Customers: make(map[int64]*customerDomain.Customer)}
}

func (r *InMemoryCustomerRepo) emailTaken(c *customerDomain.Customer) bool {
	for _, other := range r.Customers {
		if other.ID == c.ID {
			continue
		}
		if other.Email == c.Email {
			return true
		}
		if other.Username != nil && c.Username != nil && *other.Username == *c.Username {
			return true
		}
	}
	return false
}

func (r *InMemoryCustomerRepo) insert(c *customerDomain.Customer) error {
	if r.emailTaken(c) {
		return customerDomain.ErrCustomerAlreadyExists
	}
	r.nextID++
	c.ID = r.nextID
	cp := *c
	r.Customers[c.ID] = &cp
	return nil
}

func (r *InMemoryCustomerRepo) Create(ctx context.Context, c *customerDomain.Customer, evt sharedDomain.EventFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insert(c); err != nil {
		return err
	}
	r.Outbox = append(r.Outbox, evt())
	return nil
}

func (r *InMemoryCustomerRepo) CreateBatch(ctx context.Context, cs []*customerDomain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range cs {
		if err := r.insert(c); err != nil {
			return err
		}
	}
	return nil
}

func (r *InMemoryCustomerRepo) GetByID(ctx context.Context, id int64) (*customerDomain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.Customers[id]
	if !ok || c.Deleted() {
		return nil, customerDomain.ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *InMemoryCustomerRepo) Update(ctx context.Context, c *customerDomain.Customer, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, ok := r.Customers[c.ID]
	if !ok || old.Deleted() {
		return customerDomain.ErrCustomerNotFound
	}
	if r.emailTaken(c) {
		return customerDomain.ErrCustomerAlreadyExists
	}
	cp := *c
	r.Customers[c.ID] = &cp
	r.Outbox = append(r.Outbox, evt)
	return nil
}

func (r *InMemoryCustomerRepo) SoftDelete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.Customers[id]
	if !ok || c.Deleted() {
		return customerDomain.ErrCustomerNotFound
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	r.Outbox = append(r.Outbox, evt)
	return nil
}

// Collection devuelve los clientes vivos en orden de inserción.
func (r *InMemoryCustomerRepo) Collection() query.Collection[*customerDomain.Customer] {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([]*customerDomain.Customer, 0, len(r.Customers))
	for _, c := range r.Customers {
		if !c.Deleted() {
			cp := *c
			rows = append(rows, &cp)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return memory.New(rows)
}

var _ customerDomain.CustomerRepository = (*InMemoryCustomerRepo)(nil)
