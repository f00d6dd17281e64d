package mongodb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
)

const OutboxCollection = "outbox"

// OutboxRepoMongoDB implementa OutboxRepository sobre la colección outbox.
type OutboxRepoMongoDB struct {
	outboxColl *mongo.Collection
}

var _ sharedDomain.OutboxRepository = (*OutboxRepoMongoDB)(nil)

func NewOutboxRepoMongoDB(db *mongo.Database) *OutboxRepoMongoDB {
	return &OutboxRepoMongoDB{outboxColl: db.Collection(OutboxCollection)}
}

// OutboxDocument es la forma bson de un evento; la usan también los
// repositorios que escriben en la outbox dentro de su transacción.
type OutboxDocument struct {
	ID            string      `bson:"_id"`
	AggregateType string      `bson:"aggregateType"`
	AggregateID   string      `bson:"aggregateId"`
	EventType     string      `bson:"eventType"`
	Payload       interface{} `bson:"payload"`
	CreatedAt     time.Time   `bson:"createdAt"`
	Processed     bool        `bson:"processed"`
}

// ToOutboxDocument convierte el evento de dominio en documento. El payload
// se guarda en su forma JSON para que tipos como decimal.Decimal lleguen
// intactos al relayer.
func ToOutboxDocument(evt sharedDomain.OutboxEvent) (OutboxDocument, error) {
	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return OutboxDocument{}, fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	var payload interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return OutboxDocument{}, err
	}

	return OutboxDocument{
		ID:            evt.ID.String(),
		AggregateType: evt.AggregateType,
		AggregateID:   evt.AggregateID,
		EventType:     evt.EventType,
		Payload:       payload,
		CreatedAt:     evt.CreatedAt,
	}, nil
}

func (r *OutboxRepoMongoDB) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}).SetLimit(int64(limit))

	cursor, err := r.outboxColl.Find(ctx, bson.M{"processed": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []sharedDomain.OutboxEvent
	for cursor.Next(ctx) {
		var doc OutboxDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		evt, err := fromOutboxDocument(doc)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}
	return events, cursor.Err()
}

func (r *OutboxRepoMongoDB) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	res, err := r.outboxColl.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": bson.M{"processed": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("outbox event not found: %s", id)
	}
	return nil
}

func fromOutboxDocument(doc OutboxDocument) (sharedDomain.OutboxEvent, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return sharedDomain.OutboxEvent{}, fmt.Errorf("invalid UUID in outbox document: %w", err)
	}
	// bson.D se decodifica como slice de pares; el relayer necesita un mapa
	payload := doc.Payload
	if d, ok := payload.(bson.D); ok {
		payload = d.Map()
	}
	return sharedDomain.OutboxEvent{
		ID:            id,
		AggregateType: doc.AggregateType,
		AggregateID:   doc.AggregateID,
		EventType:     doc.EventType,
		Payload:       payload,
		CreatedAt:     doc.CreatedAt,
		Processed:     doc.Processed,
	}, nil
}
