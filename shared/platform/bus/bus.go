package bus

import "context"

// Keyer lo implementan los eventos que eligen su clave de partición.
type Keyer interface {
	PartitionKey() string
}

// EventPublisher publica un evento en un topic. El formato del payload lo
// decide cada adaptador (Kafka, memoria).
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event interface{}) error
}

// MessageHandler procesa un mensaje ya recibido del broker.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, payload []byte)
}
