package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/internal/post/domain"
	"github.com/davicafu/adminlab/shared/platform/collection/sqlcollection"
	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
)

const table = "posts"

var columns = []string{"id", "title", "slug", "content", "category_id", "status", "picture", "created_at", "updated_at"}

type PostRepoSQL struct {
	db      *sql.DB
	dialect persistence.Dialect
}

var _ domain.PostRepository = (*PostRepoSQL)(nil)

func NewPostRepoSQL(db *sql.DB, dialect persistence.Dialect) *PostRepoSQL {
	return &PostRepoSQL{db: db, dialect: dialect}
}

// InitSchema crea la tabla posts si no existe.
func InitSchema(ctx context.Context, db *sql.DB, d persistence.Dialect) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS posts (
			id %s,
			title TEXT NOT NULL,
			slug TEXT NOT NULL,
			content TEXT NOT NULL,
			category_id BIGINT NOT NULL,
			status BOOLEAN NOT NULL DEFAULT FALSE,
			picture TEXT NOT NULL,
			created_at %[2]s NOT NULL,
			updated_at %[2]s NOT NULL
		)`, d.AutoID, d.TimeType))
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_posts_category ON posts (category_id)`)
	return err
}

func (r *PostRepoSQL) Create(ctx context.Context, p *domain.Post) error {
	query, args, err := r.dialect.Builder().
		Insert(table).
		Columns(columns[1:]...).
		Values(p.Title, p.Slug, p.Content, p.CategoryID, p.Status, p.Picture, p.CreatedAt, p.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID)
}

func (r *PostRepoSQL) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	query, args, err := r.dialect.Builder().Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	p, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPostNotFound
	}
	return p, err
}

func (r *PostRepoSQL) Delete(ctx context.Context, id int64) error {
	query, args, err := r.dialect.Builder().Delete(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepoSQL) Collection() query.Collection[*domain.Post] {
	return sqlcollection.New(r.db, r.dialect, sqlcollection.Table[*domain.Post]{
		Name:    table,
		Columns: columns,
		Scan: func(rows *sql.Rows) (*domain.Post, error) {
			return scanPost(rows)
		},
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*domain.Post, error) {
	var p domain.Post
	err := s.Scan(&p.ID, &p.Title, &p.Slug, &p.Content, &p.CategoryID, &p.Status, &p.Picture, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
