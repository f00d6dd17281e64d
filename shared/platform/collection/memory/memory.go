package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/davicafu/adminlab/shared/platform/query"
)

// Collection es una colección en memoria sobre un slice. Se usa en los fakes
// de tests y para listados pequeños que no viven en una base de datos.
type Collection[T query.Record] struct {
	rows    []T
	filters []func(T) bool
	orders  []query.SortKey
}

// New crea la colección; el slice no se modifica nunca.
func New[T query.Record](rows []T) Collection[T] {
	return Collection[T]{rows: rows}
}

func (c Collection[T]) with(filter func(T) bool, order *query.SortKey) Collection[T] {
	next := Collection[T]{
		rows:    c.rows,
		filters: append([]func(T) bool(nil), c.filters...),
		orders:  append([]query.SortKey(nil), c.orders...),
	}
	if filter != nil {
		next.filters = append(next.filters, filter)
	}
	if order != nil {
		next.orders = append(next.orders, *order)
	}
	return next
}

// ---------------- Predicados ----------------

func (c Collection[T]) AddSearchPredicate(fields []string, term string) query.Collection[T] {
	term = strings.ToLower(term)
	if term == "" || len(fields) == 0 {
		return c
	}
	return c.with(func(row T) bool {
		for _, f := range fields {
			v, ok := row.Field(f)
			if !ok {
				continue
			}
			if s := query.FormatValue(query.Normalize(v)); strings.Contains(strings.ToLower(s), term) {
				return true
			}
		}
		return false
	}, nil)
}

func (c Collection[T]) AddFilterPredicate(field string, value any) query.Collection[T] {
	return c.with(func(row T) bool {
		v, ok := row.Field(field)
		return ok && query.Equal(v, value)
	}, nil)
}

func (c Collection[T]) OrderBy(field string, dir query.Direction) query.Collection[T] {
	return c.with(nil, &query.SortKey{Field: field, Direction: dir})
}

// ---------------- Paginación ----------------

func (c Collection[T]) Paginate(ctx context.Context, perPage, page int) (query.OffsetPage[T], error) {
	if err := ctx.Err(); err != nil {
		return query.OffsetPage[T]{}, err
	}

	rows := c.materialize()
	total := int64(len(rows))
	if perPage <= 0 {
		return query.OffsetPage[T]{Rows: rows, Total: total}, nil
	}

	start, ok := query.PageOffset(perPage, page)
	if !ok || start >= len(rows) {
		return query.OffsetPage[T]{Rows: []T{}, Total: total}, nil
	}
	end := len(rows)
	if perPage < end-start {
		end = start + perPage
	}
	return query.OffsetPage[T]{Rows: rows[start:end], Total: total}, nil
}

func (c Collection[T]) CursorPaginate(ctx context.Context, perPage int, after *query.Cursor) (query.CursorPage[T], error) {
	if err := ctx.Err(); err != nil {
		return query.CursorPage[T]{}, err
	}

	rows := c.materialize()
	if after != nil && after.Matches(c.orders) {
		start := sort.Search(len(rows), func(i int) bool {
			return c.compareToCursor(rows[i], after) > 0
		})
		rows = rows[start:]
	}

	if perPage <= 0 || len(rows) <= perPage {
		return query.CursorPage[T]{Rows: rows}, nil
	}

	rows = rows[:perPage]
	return query.CursorPage[T]{Rows: rows, Next: query.CursorFrom(rows[len(rows)-1], c.orders)}, nil
}

// ---------------- Helpers ----------------

func (c Collection[T]) materialize() []T {
	out := make([]T, 0, len(c.rows))
	for _, row := range c.rows {
		if c.matches(row) {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return c.compareRows(out[i], out[j]) < 0
	})
	return out
}

func (c Collection[T]) matches(row T) bool {
	for _, f := range c.filters {
		if !f(row) {
			return false
		}
	}
	return true
}

func (c Collection[T]) compareRows(a, b T) int {
	for _, k := range c.orders {
		va, _ := a.Field(k.Field)
		vb, _ := b.Field(k.Field)
		if d := directed(query.Compare(va, vb), k.Direction); d != 0 {
			return d
		}
	}
	return 0
}

func (c Collection[T]) compareToCursor(row T, cur *query.Cursor) int {
	for i, k := range c.orders {
		v, _ := row.Field(k.Field)
		if d := directed(query.Compare(v, cur.Values[i]), k.Direction); d != 0 {
			return d
		}
	}
	return 0
}

func directed(d int, dir query.Direction) int {
	if dir == query.Desc {
		return -d
	}
	return d
}

var _ query.Collection[query.Record] = Collection[query.Record]{}
