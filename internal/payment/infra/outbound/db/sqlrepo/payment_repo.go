package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	"github.com/davicafu/adminlab/internal/payment/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const table = "payments"

var columns = []string{"id", "amount", "status", "email", "created_at", "updated_at"}

type PaymentRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.PaymentRepository = (*PaymentRepoSQL)(nil)

func NewPaymentRepoSQL(db *sql.DB, dialect persistence.Dialect) *PaymentRepoSQL {
	return &PaymentRepoSQL{db: db, dialect: dialect}
}

// InitSchema crea la tabla payments si no existe.
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS payments (
			id %s,
			amount %s NOT NULL,
			status TEXT NOT NULL,
			email TEXT NOT NULL,
			created_at %[3]s NOT NULL,
			updated_at %[3]s NOT NULL
		)`, d.AutoID, d.DecimalType, d.TimeType))
	return err
}

func (r *PaymentRepoSQL) Create(ctx context.Context, p *domain.Payment, evt sharedDomain.EventFactory) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := r.dialect.Builder().
			Insert(table).
			Columns(columns[1:]...).
			Values(p.Amount, string(p.Status), p.Email, p.CreatedAt, p.UpdatedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
			return err
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt())
	})
}

func (r *PaymentRepoSQL) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query, args, err := r.dialect.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	return p, err
}

func (r *PaymentRepoSQL) Delete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := r.dialect.Builder().Delete(table).Where(sq.Eq{"id": id}).ToSql()
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrPaymentNotFound
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

func (r *PaymentRepoSQL) Count(ctx context.Context) (int64, error) {
	query, args, err := r.dialect.Builder().Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *PaymentRepoSQL) Collection() query.Collection[*domain.Payment] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.Payment]{
		Name:    table,
		Columns: columns,
		Scan: func(rows *sql.Rows) (*domain.Payment, error) {
			return scanPayment(rows)
		},
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(s scanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	if err := s.Scan(&p.ID, &p.Amount, &status, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}
