package query

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"
)

// ---------- Tipos de filtrado / paginación / ordenamiento ----------

// Direction es la dirección de ordenación efectiva.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection solo acepta "asc" exacto; cualquier otra entrada es desc.
func ParseDirection(raw string) Direction {
	if raw == string(Asc) {
		return Asc
	}
	return Desc
}

// Mode indica el estilo de paginación.
type Mode string

const (
	ModeOffset Mode = "offset"
	ModeCursor Mode = "cursor"
)

// FetchAll como tamaño de página desactiva la paginación.
const FetchAll = -1

// PageOffset devuelve el desplazamiento de page con perPage filas por página.
// ok es false cuando la página queda fuera del rango de int: no puede tener filas.
func PageOffset(perPage, page int) (offset int, ok bool) {
	if perPage <= 0 {
		return 0, true
	}
	if page < 1 {
		page = 1
	}
	if page-1 > (math.MaxInt-perPage)/perPage {
		return 0, false
	}
	return (page - 1) * perPage, true
}

// LookaheadLimit es perPage+1 (una fila extra para saber si hay más) sin desbordar.
func LookaheadLimit(perPage int) int {
	if perPage == math.MaxInt {
		return perPage
	}
	return perPage + 1
}

// LastPage calcula la última página sin desbordar para tamaños enormes.
func LastPage(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

// ListQuery es la petición de listado sin validar, tal y como llega del cliente.
type ListQuery struct {
	Search        string
	Filters       map[string]any
	SortField     string
	SortDirection string
	PageSize      int
	Page          int
	Mode          Mode
	Cursor        string
}

// Config es la política de listado de un recurso. Los campos que no aparezcan
// en las listas blancas nunca llegan a la colección.
type Config struct {
	SearchableFields     []string
	FilterableFields     []string
	BooleanFilters       []string
	AllowedSortFields    []string
	DefaultSortField     string
	DefaultSortDirection Direction
	DefaultPageSize      int
	// TieBreaker es un campo único que completa el orden (por defecto "id").
	TieBreaker string
	// MaxFetchAll limita las filas de un fetch-all; 0 significa sin límite.
	MaxFetchAll int
}

// withDefaults rellena los huecos de la configuración.
func (c Config) withDefaults() Config {
	if c.TieBreaker == "" {
		c.TieBreaker = "id"
	}
	if c.DefaultSortField == "" {
		if len(c.AllowedSortFields) > 0 {
			c.DefaultSortField = c.AllowedSortFields[0]
		} else {
			c.DefaultSortField = c.TieBreaker
		}
	}
	if c.DefaultSortDirection != Asc {
		c.DefaultSortDirection = Desc
	}
	if c.DefaultPageSize == 0 {
		c.DefaultPageSize = 10
	}
	return c
}

func (c Config) isSearchable() bool { return len(c.SearchableFields) > 0 }

func (c Config) isFilterable(field string) bool { return contains(c.FilterableFields, field) }

func (c Config) isSortable(field string) bool { return contains(c.AllowedSortFields, field) }

func (c Config) isBoolean(field string) bool { return contains(c.BooleanFilters, field) }

// Applied es el eco de los parámetros que realmente se aplicaron.
type Applied struct {
	Search        string         `json:"search"`
	Filters       map[string]any `json:"filters"`
	SortField     string         `json:"sortBy"`
	SortDirection Direction      `json:"sortDirection"`
	PageSize      int            `json:"perPage"`
	Page          int            `json:"page"`
	Mode          Mode           `json:"mode"`
	Cursor        string         `json:"cursor,omitempty"`
}

// ListResult es una página de resultados junto con su metadata.
type ListResult[T any] struct {
	Rows []T `json:"data"`
	// Total es nil en modo cursor.
	Total      *int64  `json:"total,omitempty"`
	PageSize   int     `json:"per_page"`
	Page       int     `json:"current_page,omitempty"`
	LastPage   int     `json:"last_page,omitempty"`
	Cursor     string  `json:"cursor,omitempty"`
	NextCursor string  `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
	Truncated  bool    `json:"truncated,omitempty"`
	Applied    Applied `json:"-"`
}

// MapRows proyecta las filas manteniendo la metadata.
func MapRows[T, U any](r ListResult[T], fn func(T) U) ListResult[U] {
	out := ListResult[U]{
		Rows:       make([]U, 0, len(r.Rows)),
		Total:      r.Total,
		PageSize:   r.PageSize,
		Page:       r.Page,
		LastPage:   r.LastPage,
		Cursor:     r.Cursor,
		NextCursor: r.NextCursor,
		HasMore:    r.HasMore,
		Truncated:  r.Truncated,
		Applied:    r.Applied,
	}
	for _, row := range r.Rows {
		out.Rows = append(out.Rows, fn(row))
	}
	return out
}

// ---------- Puerto de colección ----------

// OffsetPage es lo que devuelve una colección paginada por offset.
type OffsetPage[T any] struct {
	Rows  []T
	Total int64
}

// CursorPage es lo que devuelve una colección paginada por cursor.
// Next es nil cuando no hay más filas.
type CursorPage[T any] struct {
	Rows []T
	Next *Cursor
}

// Collection es la fuente de filas de un recurso. Cada método de construcción
// devuelve una colección nueva; el receptor no cambia.
type Collection[T any] interface {
	AddSearchPredicate(fields []string, term string) Collection[T]
	AddFilterPredicate(field string, value any) Collection[T]
	OrderBy(field string, dir Direction) Collection[T]
	// Paginate con perPage == FetchAll devuelve todas las filas.
	Paginate(ctx context.Context, perPage, page int) (OffsetPage[T], error)
	CursorPaginate(ctx context.Context, perPage int, after *Cursor) (CursorPage[T], error)
}

// Record expone los campos de una fila por nombre; lo usan los adaptadores
// para ordenar en memoria y para construir cursores.
type Record interface {
	Field(name string) (any, bool)
}

// ---------- Errores ----------

// QueryExecutionError envuelve cualquier fallo de la colección subyacente.
type QueryExecutionError struct {
	Op  string
	Err error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("query execution failed (%s): %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }

// ---------- Helpers ----------

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// FormatValue representa un valor de filtro como texto de query string.
func FormatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
