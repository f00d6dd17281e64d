package query

import (
	"context"
)

// Resolve valida la petición, la aplica sobre la colección y pagina.
// Solo devuelve error si falla la colección, siempre como *QueryExecutionError.
func Resolve[T any](ctx context.Context, q ListQuery, cfg Config, coll Collection[T]) (ListResult[T], error) {
	cfg = cfg.withDefaults()
	plan := BuildPlan(q, cfg)
	coll = ApplyPlan(coll, plan)

	if plan.Applied.Mode == ModeCursor {
		return resolveCursor(ctx, plan, coll)
	}
	if plan.Applied.PageSize == FetchAll {
		return resolveAll(ctx, plan, cfg, coll)
	}
	return resolveOffset(ctx, plan, coll)
}

func resolveOffset[T any](ctx context.Context, plan Plan, coll Collection[T]) (ListResult[T], error) {
	applied := plan.Applied

	page, err := coll.Paginate(ctx, applied.PageSize, applied.Page)
	if err != nil {
		return ListResult[T]{}, &QueryExecutionError{Op: "paginate", Err: err}
	}

	total := page.Total
	lastPage := LastPage(total, applied.PageSize)

	return ListResult[T]{
		Rows:     nonNil(page.Rows),
		Total:    &total,
		PageSize: applied.PageSize,
		Page:     applied.Page,
		LastPage: lastPage,
		HasMore:  applied.Page < lastPage,
		Applied:  applied,
	}, nil
}

func resolveAll[T any](ctx context.Context, plan Plan, cfg Config, coll Collection[T]) (ListResult[T], error) {
	applied := plan.Applied

	limit := FetchAll
	if cfg.MaxFetchAll > 0 {
		limit = cfg.MaxFetchAll
	}

	page, err := coll.Paginate(ctx, limit, 1)
	if err != nil {
		return ListResult[T]{}, &QueryExecutionError{Op: "fetch all", Err: err}
	}

	rows := nonNil(page.Rows)
	total := int64(len(rows))
	truncated := false
	if limit != FetchAll && page.Total > total {
		total = page.Total
		truncated = true
	}

	return ListResult[T]{
		Rows:      rows,
		Total:     &total,
		PageSize:  FetchAll,
		Page:      1,
		LastPage:  1,
		Truncated: truncated,
		Applied:   applied,
	}, nil
}

func resolveCursor[T any](ctx context.Context, plan Plan, coll Collection[T]) (ListResult[T], error) {
	applied := plan.Applied

	// un token ilegible o de otro orden equivale a pedir la primera página
	var after *Cursor
	if applied.Cursor != "" {
		c, err := DecodeCursor(applied.Cursor)
		if err == nil && c.Matches(plan.Order()) {
			after = &c
		} else {
			applied.Cursor = ""
		}
	}

	page, err := coll.CursorPaginate(ctx, applied.PageSize, after)
	if err != nil {
		return ListResult[T]{}, &QueryExecutionError{Op: "cursor paginate", Err: err}
	}

	res := ListResult[T]{
		Rows:     nonNil(page.Rows),
		PageSize: applied.PageSize,
		Cursor:   applied.Cursor,
		Applied:  applied,
	}
	if page.Next != nil {
		res.NextCursor = EncodeCursor(*page.Next)
		res.HasMore = true
	}
	return res, nil
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
