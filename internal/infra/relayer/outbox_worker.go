package relayer

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	sharedEvents "github.com/davicafu/adminlab/shared/events"
	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

// Worker publica los eventos pendientes de una tabla outbox.
type Worker struct {
	name          string
	repo          sharedDomain.OutboxRepository
	publisher     sharedBus.EventPublisher
	eventRegistry sharedEvents.Registry
	interval      time.Duration
	batchSize     int
	log           *zap.Logger
}

func NewOutboxWorker(
	name string,
	repo sharedDomain.OutboxRepository,
	publisher sharedBus.EventPublisher,
	registry sharedEvents.Registry,
	interval time.Duration,
	batchSize int,
	log *zap.Logger,
) *Worker {
	return &Worker{
		name:          name,
		repo:          repo,
		publisher:     publisher,
		eventRegistry: registry,
		interval:      interval,
		batchSize:     batchSize,
		log:           log.With(zap.String("outbox", name)),
	}
}

// Start bloquea haciendo polling hasta que se cancele ctx.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("🚀 Outbox worker iniciado", zap.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("🛑 Outbox worker detenido.")
			return
		case <-ticker.C:
			w.ProcessBatch(ctx)
		}
	}
}

// ProcessBatch publica un lote y devuelve cuántos eventos quedaron marcados.
func (w *Worker) ProcessBatch(ctx context.Context) int {
	pending, err := w.repo.FetchPendingOutbox(ctx, w.batchSize)
	if err != nil {
		w.log.Warn("⚠️ Error al obtener eventos pendientes", zap.Error(err))
		return 0
	}
	if len(pending) > 0 {
		w.log.Debug("📬 Eventos pendientes", zap.Int("count", len(pending)))
	}

	done := 0
	for _, evt := range pending {
		if w.publishAndMark(ctx, evt) {
			done++
		}
	}
	return done
}

func (w *Worker) publishAndMark(ctx context.Context, evt sharedDomain.OutboxEvent) bool {
	metadata, ok := w.eventRegistry[evt.EventType]
	if !ok {
		// se queda pendiente hasta que algún proceso lo registre
		w.log.Error("Tipo de evento desconocido en registro", zap.String("event_type", evt.EventType))
		return false
	}

	// decodificar al tipo registrado valida la forma del payload
	typed := reflect.New(metadata.Type).Interface()
	payloadBytes, err := json.Marshal(evt.Payload)
	if err == nil {
		err = json.Unmarshal(payloadBytes, typed)
	}
	if err != nil {
		w.log.Error("Error al decodificar payload del evento", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return false
	}

	msg, err := sharedEvents.NewIntegrationEvent(evt.EventType, evt.AggregateID, typed)
	if err != nil {
		w.log.Error("Error al construir evento de integración", zap.String("event_id", evt.ID.String()), zap.Error(err))
		return false
	}

	if err := w.publisher.Publish(ctx, metadata.Topic, msg); err != nil {
		w.log.Warn("⚠️ No se pudo publicar evento",
			zap.String("event_id", evt.ID.String()),
			zap.String("topic", metadata.Topic),
			zap.Error(err),
		)
		return false
	}

	if err := w.repo.MarkOutboxProcessed(ctx, evt.ID); err != nil {
		w.log.Warn("⚠️ No se pudo marcar evento como procesado",
			zap.String("event_id", evt.ID.String()),
			zap.Error(err),
		)
		return false
	}

	w.log.Info("✅ Evento publicado y marcado",
		zap.String("event_id", evt.ID.String()),
		zap.String("event_type", evt.EventType),
	)
	return true
}
