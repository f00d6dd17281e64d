package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	paymentDomain "github.com/davicafu/adminlab/internal/payment/domain"
)

// PaymentAnalyticsRepo guarda el histórico de eventos de pago en ClickHouse.
type PaymentAnalyticsRepo struct {
	db *sql.DB
}

var _ paymentDomain.PaymentAnalyticsRepository = (*PaymentAnalyticsRepo)(nil)

func NewPaymentAnalyticsRepo(ctx context.Context, addr, dbName string) (*PaymentAnalyticsRepo, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return &PaymentAnalyticsRepo{db: conn}, nil
}

func (r *PaymentAnalyticsRepo) Close() error { return r.db.Close() }

// InitSchema crea payments_log, particionada por mes.
func (r *PaymentAnalyticsRepo) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS payments_log (
			payment_id Int64,
			email      String,
			amount     Decimal(12, 2),
			status     LowCardinality(String),
			event_type LowCardinality(String),
			event_time DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (event_type, event_time, payment_id)`)
	return err
}

// LogBatch inserta el lote en una sola transacción.
func (r *PaymentAnalyticsRepo) LogBatch(ctx context.Context, logs []paymentDomain.PaymentLog) error {
	if len(logs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO payments_log (payment_id, email, amount, status, event_type, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, l := range logs {
		if _, err := stmt.ExecContext(ctx, l.PaymentID, l.Email, l.Amount, l.Status, l.EventType, l.EventTime); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to exec statement for payment %d: %w", l.PaymentID, err)
		}
	}
	return tx.Commit()
}

func (r *PaymentAnalyticsRepo) MonthlyCreated(ctx context.Context, months int) ([]paymentDomain.MonthlyCount, error) {
	now := time.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	rows, err := r.db.QueryContext(ctx, `
		SELECT toStartOfMonth(event_time) AS month, count() AS created
		FROM payments_log
		WHERE event_type = ? AND event_time >= ?
		GROUP BY month
		ORDER BY month`, paymentDomain.PaymentCreated, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []paymentDomain.MonthlyCount
	for rows.Next() {
		var (
			month time.Time
			n     uint64
		)
		if err := rows.Scan(&month, &n); err != nil {
			return nil, err
		}
		out = append(out, paymentDomain.MonthlyCount{Month: month.UTC(), Count: int64(n)})
	}
	return out, rows.Err()
}
