package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

// MockOutboxRepository simula la tabla outbox.
type MockOutboxRepository struct {
	mock.Mock
}

func (m *MockOutboxRepository) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]sharedDomain.OutboxEvent), args.Error(1)
}

func (m *MockOutboxRepository) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher simula un publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

// RecordingPublisher guarda lo publicado, sin expectativas.
type RecordingPublisher struct {
	Topics []string
	Events []interface{}
	Err    error
}

func (p *RecordingPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	if p.Err != nil {
		return p.Err
	}
	p.Topics = append(p.Topics, topic)
	p.Events = append(p.Events, event)
	return nil
}

var (
	_ sharedDomain.OutboxRepository = (*MockOutboxRepository)(nil)
	_ sharedBus.EventPublisher      = (*MockPublisher)(nil)
	_ sharedBus.EventPublisher      = (*RecordingPublisher)(nil)
)
