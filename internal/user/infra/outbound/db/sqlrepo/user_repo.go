package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/infra/db/sqlstore"
	"github.com/davicafu/adminlab/internal/user/domain"
	sharedDomain "github.com/davicafu/adminlab/shared/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

var columns = []string{"id", "name", "email", "created_at"}

type UserRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.UserRepository = (*UserRepoSQL)(nil)

func NewUserRepoSQL(db *sql.DB, dialect persistence.Dialect) *UserRepoSQL {
	return &UserRepoSQL{db: db, dialect: dialect}
}

// InitSchema crea la tabla users si no existe
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS users (
			id %s,
			name TEXT NOT NULL,
			email TEXT UNIQUE NOT NULL,
			created_at %s NOT NULL
		)`, d.AutoID, d.TimeType))
	return err
}

// Create inserta usuario y evento en transacción
func (r *UserRepoSQL) Create(ctx context.Context, u *domain.User, evt sharedDomain.EventFactory) error {
	err := persistence.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := r.dialect.Builder().
			Insert("users").
			Columns("name", "email", "created_at").
			Values(u.Name, u.Email, u.CreatedAt).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
			return err
		}
		return sqlstore.InsertOutboxTx(ctx, tx, r.dialect, evt())
	})
	if persistence.IsUniqueViolation(err) {
		return domain.ErrUserAlreadyExists
	}
	return err
}

func (r *UserRepoSQL) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query, args, err := r.dialect.Builder().Select(columns...).From("users").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var u domain.User
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepoSQL) Count(ctx context.Context) (int64, error) {
	query, args, err := r.dialect.Builder().Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *UserRepoSQL) Collection() query.Collection[*domain.User] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.User]{
		Name:    "users",
		Columns: columns,
		Scan: func(rows *sql.Rows) (*domain.User, error) {
			var u domain.User
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
				return nil, err
			}
			return &u, nil
		},
	})
}
