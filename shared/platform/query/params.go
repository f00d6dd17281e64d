package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Nombres de los parámetros de query string.
const (
	ParamSearch        = "search"
	ParamSortBy        = "sortBy"
	ParamSortDirection = "sortDirection"
	ParamPerPage       = "perPage"
	ParamPage          = "page"
	ParamUseCursor     = "useCursor"
	ParamCursor        = "cursor"
)

// ParseListQuery lee una petición de listado desde la query string.
// Solo recoge las claves de filtro declaradas en cfg; el resto se ignora.
// Los valores ausentes toman los valores por defecto de cfg.
func ParseListQuery(values url.Values, cfg Config) ListQuery {
	cfg = cfg.withDefaults()

	q := ListQuery{
		Search:        values.Get(ParamSearch),
		Filters:       map[string]any{},
		SortField:     values.Get(ParamSortBy),
		SortDirection: values.Get(ParamSortDirection),
		PageSize:      cfg.DefaultPageSize,
		Page:          1,
		Mode:          ModeOffset,
		Cursor:        values.Get(ParamCursor),
	}

	for _, field := range cfg.FilterableFields {
		if v := strings.TrimSpace(values.Get(field)); v != "" {
			q.Filters[field] = v
		}
	}

	if q.SortField == "" {
		q.SortField = cfg.DefaultSortField
	}
	if !values.Has(ParamSortDirection) {
		q.SortDirection = string(cfg.DefaultSortDirection)
	}

	// un perPage no numérico vale 0 y acaba en el tamaño por defecto
	if raw := strings.TrimSpace(values.Get(ParamPerPage)); raw != "" {
		n, _ := strconv.Atoi(raw)
		q.PageSize = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPage))); err == nil {
		q.Page = n
	}
	if ParseBool(values.Get(ParamUseCursor)) {
		q.Mode = ModeCursor
	}

	return q
}

// Values devuelve el eco como query string. ParseListQuery sobre el
// resultado reproduce los mismos parámetros aplicados.
func (a Applied) Values() url.Values {
	v := url.Values{}
	if a.Search != "" {
		v.Set(ParamSearch, a.Search)
	}

	keys := make([]string, 0, len(a.Filters))
	for k := range a.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.Set(k, FormatValue(a.Filters[k]))
	}

	v.Set(ParamSortBy, a.SortField)
	v.Set(ParamSortDirection, string(a.SortDirection))
	v.Set(ParamPerPage, strconv.Itoa(a.PageSize))
	if a.Mode == ModeCursor {
		v.Set(ParamUseCursor, "1")
		if a.Cursor != "" {
			v.Set(ParamCursor, a.Cursor)
		}
	} else {
		v.Set(ParamPage, strconv.Itoa(a.Page))
	}
	return v
}
