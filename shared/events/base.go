package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// IntegrationEvent es el sobre común de todos los mensajes del bus.
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// PartitionKey permite a Kafka agrupar los eventos de un mismo agregado.
func (e IntegrationEvent) PartitionKey() string { return e.Key }

// NewIntegrationEvent serializa data dentro del sobre.
func NewIntegrationEvent(eventType, key string, data interface{}) (IntegrationEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{Type: eventType, Key: key, Timestamp: time.Now().UTC(), Data: raw}, nil
}

// EventMetadata dice al relayer cómo decodificar un evento y a qué topic va.
type EventMetadata struct {
	Type  reflect.Type
	Topic string
}

// Registry mapea tipo de evento -> metadata.
type Registry map[string]EventMetadata

// Merge une varios registros; el último gana si se repite una clave.
func Merge(registries ...Registry) Registry {
	out := Registry{}
	for _, r := range registries {
		for k, v := range r {
			out[k] = v
		}
	}
	return out
}
