package query

import (
	"sort"
	"strings"
)

// PredicateKind clasifica un paso del plan.
type PredicateKind string

const (
	PredicateFilter PredicateKind = "filter"
	PredicateSearch PredicateKind = "search"
	PredicateSort   PredicateKind = "sort"
)

// Predicate es un paso neutral del plan; cada colección lo traduce a su backend.
type Predicate struct {
	Kind      PredicateKind
	Field     string   // filter, sort
	Fields    []string // search
	Value     any      // filter: valor; search: término
	Direction Direction
}

// Plan es la lista ordenada de predicados más el eco de lo aplicado.
// Orden: filtros (por nombre), búsqueda, orden.
type Plan struct {
	Applied    Applied
	Predicates []Predicate
}

// Order devuelve las claves de orden efectivas del plan.
func (p Plan) Order() []SortKey {
	var keys []SortKey
	for _, pr := range p.Predicates {
		if pr.Kind == PredicateSort {
			keys = append(keys, SortKey{Field: pr.Field, Direction: pr.Direction})
		}
	}
	return keys
}

// Sanitize valida una petición contra la configuración. Nunca falla:
// lo que no está permitido se descarta o se sustituye por el valor por defecto.
func Sanitize(q ListQuery, cfg Config) Applied {
	cfg = cfg.withDefaults()

	applied := Applied{
		Filters:       map[string]any{},
		SortField:     cfg.DefaultSortField,
		SortDirection: ParseDirection(q.SortDirection),
		PageSize:      cfg.DefaultPageSize,
		Page:          1,
		Mode:          ModeOffset,
	}

	if term := strings.TrimSpace(q.Search); term != "" && cfg.isSearchable() {
		applied.Search = term
	}

	for field, value := range q.Filters {
		if !cfg.isFilterable(field) {
			continue
		}
		if s, ok := value.(string); ok {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			value = s
			if cfg.isBoolean(field) {
				value = ParseBool(s)
			}
		}
		if value == nil {
			continue
		}
		applied.Filters[field] = value
	}

	if cfg.isSortable(q.SortField) {
		applied.SortField = q.SortField
	}

	switch {
	case q.PageSize == FetchAll:
		applied.PageSize = FetchAll
	case q.PageSize > 0:
		applied.PageSize = q.PageSize
	}

	if q.Page > 1 {
		applied.Page = q.Page
	}

	// fetch-all manda sobre el modo cursor
	if q.Mode == ModeCursor && applied.PageSize != FetchAll {
		applied.Mode = ModeCursor
		applied.Page = 1
		applied.Cursor = strings.TrimSpace(q.Cursor)
	}
	if applied.PageSize == FetchAll {
		applied.Page = 1
	}

	return applied
}

// BuildPlan valida la petición y produce el plan de predicados.
func BuildPlan(q ListQuery, cfg Config) Plan {
	cfg = cfg.withDefaults()
	applied := Sanitize(q, cfg)

	plan := Plan{Applied: applied}

	fields := make([]string, 0, len(applied.Filters))
	for f := range applied.Filters {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		plan.Predicates = append(plan.Predicates, Predicate{Kind: PredicateFilter, Field: f, Value: applied.Filters[f]})
	}

	if applied.Search != "" {
		plan.Predicates = append(plan.Predicates, Predicate{
			Kind:   PredicateSearch,
			Fields: append([]string(nil), cfg.SearchableFields...),
			Value:  applied.Search,
		})
	}

	plan.Predicates = append(plan.Predicates, Predicate{Kind: PredicateSort, Field: applied.SortField, Direction: applied.SortDirection})
	if applied.SortField != cfg.TieBreaker {
		plan.Predicates = append(plan.Predicates, Predicate{Kind: PredicateSort, Field: cfg.TieBreaker, Direction: applied.SortDirection})
	}

	return plan
}

// ApplyPlan traduce el plan a llamadas sobre la colección.
func ApplyPlan[T any](coll Collection[T], p Plan) Collection[T] {
	for _, pr := range p.Predicates {
		switch pr.Kind {
		case PredicateFilter:
			coll = coll.AddFilterPredicate(pr.Field, pr.Value)
		case PredicateSearch:
			term, _ := pr.Value.(string)
			coll = coll.AddSearchPredicate(pr.Fields, term)
		case PredicateSort:
			coll = coll.OrderBy(pr.Field, pr.Direction)
		}
	}
	return coll
}
