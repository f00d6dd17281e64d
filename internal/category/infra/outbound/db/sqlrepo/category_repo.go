package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/category/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

var columns = []string{"id", "title", "user_id", "created_at", "updated_at"}

type CategoryRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.CategoryRepository = (*CategoryRepoSQL)(nil)

func NewCategoryRepoSQL(db *sql.DB, dialect persistence.Dialect) *CategoryRepoSQL {
	return &CategoryRepoSQL{db: db, dialect: dialect}
}

// InitSchema crea la tabla categories si no existe.
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS categories (
			id %s,
			title TEXT NOT NULL,
			user_id BIGINT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, d.AutoID, d.TimeType))
	return err
}

func (r *CategoryRepoSQL) Create(ctx context.Context, c *domain.Category) error {
	query, args, err := r.dialect.Builder().
		Insert("categories").
		Columns(columns[1:]...).
		Values(c.Title, c.UserID, c.CreatedAt, c.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID)
}

func (r *CategoryRepoSQL) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query, args, err := r.dialect.Builder().Select(columns...).From("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	var c domain.Category
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Title, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepoSQL) Update(ctx context.Context, c *domain.Category) error {
	query, args, err := r.dialect.Builder().
		Update("categories").
		Set("title", c.Title).
		Set("updated_at", c.UpdatedAt).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args)
}

func (r *CategoryRepoSQL) Delete(ctx context.Context, id int64) error {
	query, args, err := r.dialect.Builder().Delete("categories").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args)
}

func (r *CategoryRepoSQL) Collection() query.Collection[*domain.Category] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.Category]{
		Name:    "categories",
		Columns: columns,
		Scan: func(rows *sql.Rows) (*domain.Category, error) {
			var c domain.Category
			if err := rows.Scan(&c.ID, &c.Title, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
				return nil, err
			}
			return &c, nil
		},
	})
}

func (r *CategoryRepoSQL) execOne(ctx context.Context, query string, args []interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}
