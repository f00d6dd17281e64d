package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/davicafu/adminlab/shared/utils"
)

// DBTX es lo mínimo que necesitan los repositorios: vale *sql.DB o *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect agrupa las diferencias entre SQLite y Postgres.
type Dialect struct {
	Name        string
	Driver      string // nombre registrado en database/sql
	Placeholder sq.PlaceholderFormat
	AutoID      string // definición de la columna id autoincremental
	JSONType    string
	TimeType    string
	DecimalType string
}

var (
	SQLite = Dialect{
		Name:        "sqlite",
		Driver:      "sqlite",
		Placeholder: sq.Question,
		AutoID:      "INTEGER PRIMARY KEY AUTOINCREMENT",
		JSONType:    "TEXT",
		TimeType:    "DATETIME",
		DecimalType: "NUMERIC",
	}
	Postgres = Dialect{
		Name:        "postgres",
		Driver:      "pgx",
		Placeholder: sq.Dollar,
		AutoID:      "BIGSERIAL PRIMARY KEY",
		JSONType:    "JSONB",
		TimeType:    "TIMESTAMPTZ",
		DecimalType: "NUMERIC(12,2)",
	}
)

// DialectFor devuelve el dialecto por nombre (sqlite | postgres).
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "", SQLite.Name:
		return SQLite, nil
	case Postgres.Name, "pgx":
		return Postgres, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported db driver %q", name)
	}
}

// Builder devuelve un builder de squirrel con los placeholders del dialecto.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}

// Open abre la conexión y espera a que responda.
func Open(ctx context.Context, d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.Name, err)
	}
	if d.Name == SQLite.Name {
		// SQLite solo admite un escritor a la vez
		db.SetMaxOpenConns(1)
	}

	err = utils.Retry(ctx, 5, 500*time.Millisecond, func() error {
		return db.PingContext(ctx)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.Name, err)
	}
	return db, nil
}

// WithTx ejecuta fn dentro de una transacción y hace rollback si falla.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// IsUniqueViolation detecta claves duplicadas en los dos drivers.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}

// Nullable convierte un puntero nil en NULL sin depender del driver.
func Nullable[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
