package sqlcollection

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/davicafu/adminlab/shared/platform/persistence"
	"github.com/davicafu/adminlab/shared/platform/query"
	"github.com/davicafu/adminlab/shared/utils"
)

// ScanFunc lee una fila con las columnas en el orden de Table.Columns.
type ScanFunc[T any] func(rows *sql.Rows) (T, error)

// Table describe la tabla que respalda la colección.
type Table[T query.Record] struct {
	Name    string
	Columns []string
	// Scope son condiciones fijas, ej. "deleted_at IS NULL".
	Scope []sq.Sqlizer
	Scan  ScanFunc[T]
}

func (t Table[T]) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Collection traduce los predicados de listado a SQL con squirrel.
// Los nombres de campo que no son columnas de la tabla se ignoran.
type Collection[T query.Record] struct {
	db      persistence.DBTX
	dialect persistence.Dialect
	table   Table[T]
	where   []sq.Sqlizer
	orders  []query.SortKey
}

func New[T query.Record](db persistence.DBTX, dialect persistence.Dialect, table Table[T]) Collection[T] {
	return Collection[T]{db: db, dialect: dialect, table: table, where: append([]sq.Sqlizer(nil), table.Scope...)}
}

func (c Collection[T]) clone() Collection[T] {
	c.where = append([]sq.Sqlizer(nil), c.where...)
	c.orders = append([]query.SortKey(nil), c.orders...)
	return c
}

// ---------------- Predicados ----------------

func (c Collection[T]) AddSearchPredicate(fields []string, term string) query.Collection[T] {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"

	or := sq.Or{}
	for _, f := range fields {
		if !c.table.hasColumn(f) {
			continue
		}
		or = append(or, sq.Expr(fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, f), pattern))
	}
	if len(or) == 0 || term == "" {
		return c
	}

	next := c.clone()
	next.where = append(next.where, or)
	return next
}

func (c Collection[T]) AddFilterPredicate(field string, value any) query.Collection[T] {
	if !c.table.hasColumn(field) {
		return c
	}
	next := c.clone()
	next.where = append(next.where, sq.Eq{field: value})
	return next
}

func (c Collection[T]) OrderBy(field string, dir query.Direction) query.Collection[T] {
	if !c.table.hasColumn(field) {
		return c
	}
	next := c.clone()
	next.orders = append(next.orders, query.SortKey{Field: field, Direction: dir})
	return next
}

// ---------------- Paginación ----------------

func (c Collection[T]) Paginate(ctx context.Context, perPage, page int) (query.OffsetPage[T], error) {
	sel := c.selectRows().OrderBy(c.orderClauses()...)
	if perPage > 0 {
		offset, ok := query.PageOffset(perPage, page)
		if !ok {
			// ninguna tabla llega a ese desplazamiento
			total, err := c.count(ctx)
			if err != nil {
				return query.OffsetPage[T]{}, err
			}
			return query.OffsetPage[T]{Rows: []T{}, Total: total}, nil
		}
		sel = sel.Limit(uint64(perPage)).Offset(uint64(offset))
	}

	rows, err := c.fetch(ctx, sel)
	if err != nil {
		return query.OffsetPage[T]{}, err
	}
	if perPage <= 0 {
		return query.OffsetPage[T]{Rows: rows, Total: int64(len(rows))}, nil
	}

	total, err := c.count(ctx)
	if err != nil {
		return query.OffsetPage[T]{}, err
	}
	return query.OffsetPage[T]{Rows: rows, Total: total}, nil
}

func (c Collection[T]) CursorPaginate(ctx context.Context, perPage int, after *query.Cursor) (query.CursorPage[T], error) {
	sel := c.selectRows()
	if after != nil && after.Matches(c.orders) {
		sel = sel.Where(c.keyset(after))
	}
	sel = sel.OrderBy(c.orderClauses()...)
	if perPage > 0 {
		sel = sel.Limit(uint64(query.LookaheadLimit(perPage)))
	}

	rows, err := c.fetch(ctx, sel)
	if err != nil {
		return query.CursorPage[T]{}, err
	}
	if perPage <= 0 || len(rows) <= perPage {
		return query.CursorPage[T]{Rows: rows}, nil
	}

	rows = rows[:perPage]
	return query.CursorPage[T]{Rows: rows, Next: query.CursorFrom(rows[len(rows)-1], c.orders)}, nil
}

// ---------------- SQL ----------------

func (c Collection[T]) selectRows() sq.SelectBuilder {
	sel := c.dialect.Builder().Select(c.table.Columns...).From(c.table.Name)
	for _, w := range c.where {
		sel = sel.Where(w)
	}
	return sel
}

func (c Collection[T]) orderClauses() []string {
	out := make([]string, 0, len(c.orders))
	for _, o := range c.orders {
		out = append(out, o.Field+" "+utils.Ternary(o.Direction == query.Asc, "ASC", "DESC"))
	}
	return out
}

// keyset construye (a > x) OR (a = x AND b > y) ... según el orden.
func (c Collection[T]) keyset(after *query.Cursor) sq.Sqlizer {
	or := sq.Or{}
	for i, k := range c.orders {
		and := sq.And{}
		for j := 0; j < i; j++ {
			and = append(and, sq.Eq{c.orders[j].Field: after.Values[j]})
		}
		op := utils.Ternary(k.Direction == query.Desc, "<", ">")
		and = append(and, sq.Expr(fmt.Sprintf("%s %s ?", k.Field, op), after.Values[i]))
		or = append(or, and)
	}
	return or
}

func (c Collection[T]) fetch(ctx context.Context, sel sq.SelectBuilder) ([]T, error) {
	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", c.table.Name, err)
	}

	rows, err := c.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := c.table.Scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (c Collection[T]) count(ctx context.Context) (int64, error) {
	sel := c.dialect.Builder().Select("COUNT(*)").From(c.table.Name)
	for _, w := range c.where {
		sel = sel.Where(w)
	}

	sqlStr, args, err := sel.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", c.table.Name, err)
	}

	var total int64
	if err := c.db.QueryRowContext(ctx, sqlStr, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

var _ query.Collection[query.Record] = Collection[query.Record]{}
