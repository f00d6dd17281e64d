package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

var ErrBusClosed = errors.New("event bus closed")

// InMemoryEventBus reparte los eventos por topic entre canales de Go.
// Publish bloquea hasta que cada suscriptor acepta el mensaje o se cancela ctx.
type InMemoryEventBus struct {
	subscribers map[string][]chan []byte
	mu          sync.RWMutex
	closed      bool
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

func NewInMemoryEventBus() *InMemoryEventBus {
	return &InMemoryEventBus{subscribers: make(map[string][]chan []byte)}
}

func (b *InMemoryEventBus) Publish(ctx context.Context, topic string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	for _, ch := range b.subscribers[topic] {
		select {
		case ch <- payload:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe devuelve un canal que recibe los mensajes del topic.
func (b *InMemoryEventBus) Subscribe(topic string, bufferSize int) <-chan []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan []byte, bufferSize)
	b.subscribers[topic] = append(b.subscribers[topic], ch)
	return ch
}

// Close cierra todos los canales; los Publish posteriores fallan.
func (b *InMemoryEventBus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, subs := range b.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
}

// Consume entrega los mensajes del canal al handler hasta que se cierre o se cancele ctx.
func Consume(ctx context.Context, ch <-chan []byte, handler sharedBus.MessageHandler, log *zap.Logger) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info("🛑 Consumidor en memoria detenido")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				// la key no existe en el bus en memoria
				handler.HandleMessage(ctx, "", msg)
			}
		}
	}()
}
