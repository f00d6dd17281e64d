package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	infraMongo "github.com/davicafu/adminlab/internal/infra/db/mongodb"
	"github.com/davicafu/adminlab/internal/payment/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/mongocollection"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const collectionName = "payments"

// PaymentRepoMongoDB guarda los pagos y su outbox en la misma transacción.
// Requiere un replica set.
type PaymentRepoMongoDB struct {
	client   *mongo.Client
	db       *mongo.Database
	payments *mongo.Collection
	outbox   *mongo.Collection
}

var _ domain.PaymentRepository = (*PaymentRepoMongoDB)(nil)

func NewPaymentRepoMongoDB(db *mongo.Database) *PaymentRepoMongoDB {
	return &PaymentRepoMongoDB{
		client:   db.Client(),
		db:       db,
		payments: db.Collection(collectionName),
		outbox:   db.Collection(infraMongo.OutboxCollection),
	}
}

type mongoPayment struct {
	ID        int64                `bson:"_id"`
	Amount    primitive.Decimal128 `bson:"amount"`
	Status    string               `bson:"status"`
	Email     string               `bson:"email"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

var schema = mongocollection.Schema[*domain.Payment]{
	Fields: map[string]string{
		"id":         "_id",
		"amount":     "amount",
		"status":     "status",
		"email":      "email",
		"created_at": "createdAt",
	},
	Decode: func(raw bson.Raw) (*domain.Payment, error) {
		var mp mongoPayment
		if err := bson.Unmarshal(raw, &mp); err != nil {
			return nil, err
		}
		return fromMongoPayment(&mp)
	},
}

func (r *PaymentRepoMongoDB) Create(ctx context.Context, p *domain.Payment, evt sharedDomain.EventFactory) error {
	id, err := infraMongo.NextID(ctx, r.db, collectionName)
	if err != nil {
		return err
	}
	p.ID = id

	doc, err := toMongoPayment(p)
	if err != nil {
		return err
	}
	outboxDoc, err := infraMongo.ToOutboxDocument(evt())
	if err != nil {
		return err
	}

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.payments.InsertOne(sc, doc); err != nil {
			return err
		}
		_, err := r.outbox.InsertOne(sc, outboxDoc)
		return err
	})
}

func (r *PaymentRepoMongoDB) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var mp mongoPayment
	err := r.payments.FindOne(ctx, bson.M{"_id": id}).Decode(&mp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromMongoPayment(&mp)
}

func (r *PaymentRepoMongoDB) Delete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	outboxDoc, err := infraMongo.ToOutboxDocument(evt)
	if err != nil {
		return err
	}

	return r.inTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.payments.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return err
		}
		if res.DeletedCount == 0 {
			return domain.ErrPaymentNotFound
		}
		_, err = r.outbox.InsertOne(sc, outboxDoc)
		return err
	})
}

func (r *PaymentRepoMongoDB) Count(ctx context.Context) (int64, error) {
	return r.payments.CountDocuments(ctx, bson.M{})
}

func (r *PaymentRepoMongoDB) Collection() query.Collection[*domain.Payment] {
	return mongocollection.New(r.payments, schema)
}

func (r *PaymentRepoMongoDB) inTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start mongo session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

func toMongoPayment(p *domain.Payment) (mongoPayment, error) {
	amount, err := primitive.ParseDecimal128(p.Amount.String())
	if err != nil {
		return mongoPayment{}, fmt.Errorf("invalid amount %s: %w", p.Amount, err)
	}
	return mongoPayment{
		ID:        p.ID,
		Amount:    amount,
		Status:    string(p.Status),
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}, nil
}

func fromMongoPayment(mp *mongoPayment) (*domain.Payment, error) {
	amount, err := decimal.NewFromString(mp.Amount.String())
	if err != nil {
		return nil, fmt.Errorf("invalid amount in payment %d: %w", mp.ID, err)
	}
	return &domain.Payment{
		ID:        mp.ID,
		Amount:    amount,
		Status:    domain.PaymentStatus(mp.Status),
		Email:     mp.Email,
		CreatedAt: mp.CreatedAt.UTC(),
		UpdatedAt: mp.UpdatedAt.UTC(),
	}, nil
}
