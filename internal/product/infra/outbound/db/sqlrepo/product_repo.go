package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/product/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const table = "products"

var columns = []string{
	"id", "name", "description", "price", "featured_image",
	"featured_image_original_name", "created_at", "updated_at",
}

type ProductRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.ProductRepository = (*ProductRepoSQL)(nil)

func NewProductRepoSQL(db *sql.DB, dialect persistence.Dialect) *ProductRepoSQL {
	return &ProductRepoSQL{db: db, dialect: dialect}
}

// InitSchema crea la tabla products si no existe.
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS products (
			id %s,
			name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			price %s,
			featured_image TEXT,
			featured_image_original_name TEXT,
			created_at %[3]s NOT NULL,
			updated_at %[3]s NOT NULL
		)`, d.AutoID, d.DecimalType, d.TimeType))
	return err
}

func (r *ProductRepoSQL) Create(ctx context.Context, p *domain.Product) error {
	query, args, err := r.dialect.Builder().
		Insert(table).
		Columns(columns[1:]...).
		Values(p.Name, p.Description, p.Price, persistence.Nullable(p.FeaturedImage),
			persistence.Nullable(p.FeaturedImageOriginalName), p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

func (r *ProductRepoSQL) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := r.dialect.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	return p, err
}

func (r *ProductRepoSQL) Update(ctx context.Context, p *domain.Product) error {
	query, args, err := r.dialect.Builder().
		Update(table).
		SetMap(map[string]interface{}{
			"name":                         p.Name,
			"description":                  p.Description,
			"price":                        p.Price,
			"featured_image":               persistence.Nullable(p.FeaturedImage),
			"featured_image_original_name": persistence.Nullable(p.FeaturedImageOriginalName),
			"updated_at":                   p.UpdatedAt,
		}).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args)
}

func (r *ProductRepoSQL) Delete(ctx context.Context, id int64) error {
	query, args, err := r.dialect.Builder().Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return r.execOne(ctx, query, args)
}

func (r *ProductRepoSQL) Collection() query.Collection[*domain.Product] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.Product]{
		Name:    table,
		Columns: columns,
		Scan: func(rows *sql.Rows) (*domain.Product, error) {
			return scanProduct(rows)
		},
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var (
		p           domain.Product
		image, orig sql.NullString
	)
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &image, &orig, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if image.Valid {
		p.FeaturedImage = &image.String
	}
	if orig.Valid {
		p.FeaturedImageOriginalName = &orig.String
	}
	return &p, nil
}

func (r *ProductRepoSQL) execOne(ctx context.Context, query string, args []interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
