package sqlrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/customer/domain"
	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const table = "customers"

var columns = []string{
	"id", "first_name", "last_name", "username", "email", "phone",
	"street_address", "city", "state", "postal_code", "country",
	"date_of_birth", "gender", "profile_photo", "company_name", "vat_number",
	"currency", "account_balance", "is_active", "last_login_at", "preferred_language",
	"last_ip", "extra_info", "created_at", "updated_at", "deleted_at",
}

// sin id: lo asigna la base de datos
var insertColumns = columns[1:]

var notDeleted = sq.Eq{"deleted_at": nil}

type CustomerRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.CustomerRepository = (*CustomerRepoSQL)(nil)

func NewCustomerRepoSQL(db *sql.DB, dialect persistence.Dialect) *CustomerRepoSQL {
	return &CustomerRepoSQL{db: db, dialect: dialect}
}

// ------------------ Inicialización de DB ------------------

// InitSchema crea la tabla customers si no existe.
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS customers (
			id %s,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			username TEXT UNIQUE,
			email TEXT UNIQUE NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			street_address TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			state TEXT NOT NULL DEFAULT '',
			postal_code TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			date_of_birth %[3]s,
			gender TEXT NOT NULL DEFAULT '',
			profile_photo TEXT NOT NULL DEFAULT '',
			company_name TEXT NOT NULL DEFAULT '',
			vat_number TEXT NOT NULL DEFAULT '',
			currency TEXT NOT NULL DEFAULT 'USD',
			account_balance %[4]s NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_login_at %[3]s,
			preferred_language TEXT NOT NULL DEFAULT 'en',
			last_ip TEXT NOT NULL DEFAULT '',
			extra_info %[2]s,
			created_at %[3]s NOT NULL,
			updated_at %[3]s NOT NULL,
			deleted_at %[3]s
		)`, d.AutoID, d.JSONType, d.TimeType, d.DecimalType))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_customers_country ON customers (country)`)
	return err
}

// ------------------ Métodos ------------------

// Create inserta el cliente y su evento en la misma transacción.
func (r *CustomerRepoSQL) Create(ctx context.Context, c *domain.Customer, evt sharedDomain.EventFactory) error {
	err := persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		vals, err := insertValues(c)
		if err != nil {
			return err
		}
		query, args, err := r.dialect.Builder().
			Insert(table).
			Columns(insertColumns...).
			Values(vals...).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&c.ID); err != nil {
			return err
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt())
	})
	return translate(err)
}

// CreateBatch inserta los clientes en lotes de 100 filas.
func (r *CustomerRepoSQL) CreateBatch(ctx context.Context, cs []*domain.Customer) error {
	const chunk = 100

	err := persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for start := 0; start < len(cs); start += chunk {
			end := min(start+chunk, len(cs))

			ins := r.dialect.Builder().Insert(table).Columns(insertColumns...)
			for _, c := range cs[start:end] {
				vals, err := insertValues(c)
				if err != nil {
					return err
				}
				ins = ins.Values(vals...)
			}

			query, args, err := ins.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}
		return nil
	})
	return translate(err)
}

func (r *CustomerRepoSQL) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query, args, err := r.dialect.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"id": id}).
		Where(notDeleted).
		ToSql()
	if err != nil {
		return nil, err
	}

	c, err := scanCustomer(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCustomerNotFound
	}
	return c, err
}

func (r *CustomerRepoSQL) Update(ctx context.Context, c *domain.Customer, evt sharedDomain.OutboxEvent) error {
	extra, err := marshalExtra(c.ExtraInfo)
	if err != nil {
		return err
	}

	err = persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := r.dialect.Builder().
			Update(table).
			SetMap(map[string]interface{}{
				"first_name":         c.FirstName,
				"last_name":          c.LastName,
				"username":           persistence.Nullable(c.Username),
				"email":              c.Email,
				"phone":              c.Phone,
				"street_address":     c.StreetAddress,
				"city":               c.City,
				"state":              c.State,
				"postal_code":        c.PostalCode,
				"country":            c.Country,
				"date_of_birth":      persistence.Nullable(c.DateOfBirth),
				"gender":             c.Gender,
				"profile_photo":      c.ProfilePhoto,
				"company_name":       c.CompanyName,
				"vat_number":         c.VATNumber,
				"currency":           c.Currency,
				"account_balance":    c.AccountBalance,
				"is_active":          c.IsActive,
				"last_login_at":      persistence.Nullable(c.LastLoginAt),
				"preferred_language": c.PreferredLanguage,
				"last_ip":            c.LastIP,
				"extra_info":         extra,
				"updated_at":         c.UpdatedAt,
			}).
			Where(sq.Eq{"id": c.ID}).
			Where(notDeleted).
			ToSql()
		if err != nil {
			return err
		}

		if err := execOne(ctx, tx, query, args); err != nil {
			return err
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
	return translate(err)
}

func (r *CustomerRepoSQL) SoftDelete(ctx context.Context, id int64, evt sharedDomain.OutboxEvent) error {
	now := time.Now().UTC()

	return persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := r.dialect.Builder().
			Update(table).
			Set("deleted_at", now).
			Set("updated_at", now).
			Where(sq.Eq{"id": id}).
			Where(notDeleted).
			ToSql()
		if err != nil {
			return err
		}

		if err := execOne(ctx, tx, query, args); err != nil {
			return err
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt)
	})
}

// Collection devuelve el listado de clientes no borrados.
func (r *CustomerRepoSQL) Collection() query.Collection[*domain.Customer] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.Customer]{
		Name:    table,
		Columns: columns,
		Scope:   []sq.Sqlizer{notDeleted},
		Scan: func(rows *sql.Rows) (*domain.Customer, error) {
			return scanCustomer(rows)
		},
	})
}

// ------------------ Helpers ------------------

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*domain.Customer, error) {
	var (
		c                       domain.Customer
		username, extra         sql.NullString
		birth, lastLogin, delAt sql.NullTime
	)
	err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &username, &c.Email, &c.Phone,
		&c.StreetAddress, &c.City, &c.State, &c.PostalCode, &c.Country,
		&birth, &c.Gender, &c.ProfilePhoto, &c.CompanyName, &c.VATNumber,
		&c.Currency, &c.AccountBalance, &c.IsActive, &lastLogin, &c.PreferredLanguage,
		&c.LastIP, &extra, &c.CreatedAt, &c.UpdatedAt, &delAt,
	)
	if err != nil {
		return nil, err
	}

	if username.Valid {
		c.Username = &username.String
	}
	if birth.Valid {
		c.DateOfBirth = &birth.Time
	}
	if lastLogin.Valid {
		c.LastLoginAt = &lastLogin.Time
	}
	if delAt.Valid {
		c.DeletedAt = &delAt.Time
	}
	if extra.Valid && extra.String != "" {
		if err := json.Unmarshal([]byte(extra.String), &c.ExtraInfo); err != nil {
			return nil, fmt.Errorf("invalid extra_info for customer %d: %w", c.ID, err)
		}
	}
	return &c, nil
}

func insertValues(c *domain.Customer) ([]interface{}, error) {
	extra, err := marshalExtra(c.ExtraInfo)
	if err != nil {
		return nil, err
	}
	return []interface{}{
		c.FirstName, c.LastName, persistence.Nullable(c.Username), c.Email, c.Phone,
		c.StreetAddress, c.City, c.State, c.PostalCode, c.Country,
		persistence.Nullable(c.DateOfBirth), c.Gender, c.ProfilePhoto, c.CompanyName, c.VATNumber,
		c.Currency, c.AccountBalance, c.IsActive, persistence.Nullable(c.LastLoginAt), c.PreferredLanguage,
		c.LastIP, extra, c.CreatedAt, c.UpdatedAt, persistence.Nullable(c.DeletedAt),
	}, nil
}

func marshalExtra(extra map[string]any) (interface{}, error) {
	if extra == nil {
		return nil, nil
	}
	b, err := json.Marshal(extra)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extra_info: %w", err)
	}
	return string(b), nil
}

func execOne(ctx context.Context, tx *sql.Tx, query string, args []interface{}) error {
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func translate(err error) error {
	if persistence.IsUniqueViolation(err) {
		return domain.ErrCustomerAlreadyExists
	}
	return err
}
