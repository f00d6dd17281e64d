package relayer

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	"github.com/davicafu/adminlab/tests/mocks"
)

const customerUpdated = "customer.updated"

var registry = sharedEvents.Registry{
	customerUpdated: {Type: reflect.TypeOf(sharedEvents.CustomerChanged{}), Topic: "customer"},
}

func TestOutboxWorker_ProcessBatch_Success(t *testing.T) {
	// Arrange
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	eventID := uuid.New()
	evt := sharedDomain.OutboxEvent{
		ID:          eventID,
		AggregateID: "42",
		EventType:   customerUpdated,
		Payload:     map[string]interface{}{"id": 42, "email": "ana@example.com", "name": "Ana"},
	}

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{evt}, nil).Once()
	publisher.On("Publish", mock.Anything, "customer", mock.MatchedBy(func(e sharedEvents.IntegrationEvent) bool {
		var data sharedEvents.CustomerChanged
		_ = json.Unmarshal(e.Data, &data)
		return e.Type == customerUpdated && e.Key == "42" && data.Email == "ana@example.com"
	})).Return(nil).Once()
	repo.On("MarkOutboxProcessed", mock.Anything, eventID).Return(nil).Once()

	worker := NewOutboxWorker("sql", repo, publisher, registry, 0, 10, zap.NewNop())

	// Act
	done := worker.ProcessBatch(context.Background())

	// Assert
	assert.Equal(t, 1, done)
	repo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestOutboxWorker_ProcessBatch_PublisherFails(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	evt := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: customerUpdated, Payload: map[string]interface{}{}}

	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{evt}, nil).Once()
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("kafka is down")).Once()

	worker := NewOutboxWorker("sql", repo, publisher, registry, 0, 10, zap.NewNop())
	done := worker.ProcessBatch(context.Background())

	assert.Zero(t, done)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_UnknownEventType(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	evt := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: "unregistered.event", Payload: map[string]interface{}{}}
	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{evt}, nil).Once()

	worker := NewOutboxWorker("sql", repo, publisher, sharedEvents.Registry{}, 0, 10, zap.NewNop())
	worker.ProcessBatch(context.Background())

	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "MarkOutboxProcessed", mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_BadPayload(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	publisher := new(mocks.MockPublisher)

	// id como texto no decodifica en int64
	evt := sharedDomain.OutboxEvent{ID: uuid.New(), EventType: customerUpdated, Payload: map[string]interface{}{"id": "abc"}}
	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent{evt}, nil).Once()

	worker := NewOutboxWorker("sql", repo, publisher, registry, 0, 10, zap.NewNop())
	assert.Zero(t, worker.ProcessBatch(context.Background()))
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestOutboxWorker_ProcessBatch_FetchFails(t *testing.T) {
	repo := new(mocks.MockOutboxRepository)
	repo.On("FetchPendingOutbox", mock.Anything, 10).Return([]sharedDomain.OutboxEvent(nil), errors.New("db down")).Once()

	worker := NewOutboxWorker("sql", repo, new(mocks.MockPublisher), registry, 0, 10, zap.NewNop())
	assert.Zero(t, worker.ProcessBatch(context.Background()))
}
