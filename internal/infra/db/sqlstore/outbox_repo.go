package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/persistence"
)

// OutboxRepoSQL implementa OutboxRepository para SQLite y Postgres.
type OutboxRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ sharedDomain.OutboxRepository = (*OutboxRepoSQL)(nil)

func NewOutboxRepoSQL(db *sql.DB, dialect persistence.Dialect) *OutboxRepoSQL {
	return &OutboxRepoSQL{db: db, dialect: dialect}
}

// InitOutboxSchema crea la tabla outbox si no existe.
func InitOutboxSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	idType := "TEXT"
	if d.Name == persistence.Postgres.Name {
		idType = "UUID"
	}
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS outbox (
			id %s PRIMARY KEY,
			aggregate_type TEXT NOT NULL,
			aggregate_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			payload %s NOT NULL,
			created_at %s NOT NULL,
			processed BOOLEAN NOT NULL DEFAULT FALSE
		)`, idType, d.JSONType, d.TimeType))
	return err
}

// InsertOutboxTx añade el evento dentro de la transacción del agregado.
func InsertOutboxTx(ctx context.Context, tx persistence.DBTX, d persistence.Dialect, evt sharedDomain.OutboxEvent) error {
	payloadBytes, err := json.Marshal(evt.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}

	query, args, err := d.Builder().
		Insert("outbox").
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at", "processed").
		Values(evt.ID.String(), evt.AggregateType, evt.AggregateID, evt.EventType, string(payloadBytes), evt.CreatedAt, false).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

func (r *OutboxRepoSQL) FetchPendingOutbox(ctx context.Context, limit int) ([]sharedDomain.OutboxEvent, error) {
	query, args, err := r.dialect.Builder().
		Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"processed": false}).
		OrderBy("created_at").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []sharedDomain.OutboxEvent
	for rows.Next() {
		var evt sharedDomain.OutboxEvent
		var payloadBytes []byte
		if err := rows.Scan(&evt.ID, &evt.AggregateType, &evt.AggregateID, &evt.EventType, &payloadBytes, &evt.CreatedAt); err != nil {
			return nil, err
		}

		var payload map[string]interface{}
		if err := json.Unmarshal(payloadBytes, &payload); err != nil {
			return nil, fmt.Errorf("invalid JSON payload in outbox row %s: %w", evt.ID, err)
		}
		evt.Payload = payload
		events = append(events, evt)
	}
	return events, rows.Err()
}

func (r *OutboxRepoSQL) MarkOutboxProcessed(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.dialect.Builder().
		Update("outbox").
		Set("processed", true).
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event %s as processed: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get RowsAffected for outbox event %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("no outbox event found with id %s", id)
	}
	return nil
}
