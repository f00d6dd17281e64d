package events

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

// KafkaPublisher escribe en cualquier topic con un único writer.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

var _ sharedBus.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaWriter crea un writer sin topic fijo; el topic va en cada mensaje.
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(writer *kafka.Writer, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	var key []byte
	if keyer, ok := event.(sharedBus.Keyer); ok {
		key = []byte(keyer.PartitionKey())
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{Topic: topic, Key: key, Value: data}); err != nil {
		p.log.Error("Error publishing to Kafka", zap.String("topic", topic), zap.Error(err))
		return err
	}

	p.log.Debug("Event published successfully", zap.String("topic", topic))
	return nil
}
