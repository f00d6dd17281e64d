package domain

import "github.com/davicafu/adminlab/shared/platform/query"

// ListConfig es la configuración del listado de clientes.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields: []string{"first_name", "last_name", "email", "phone", "city"},
		FilterableFields: []string{"is_active", "country"},
		BooleanFilters:   []string{"is_active"},
		AllowedSortFields: []string{
			"id", "first_name", "last_name", "email", "phone", "city", "country", "is_active", "created_at",
		},
		DefaultSortField:     "id",
		DefaultSortDirection: query.Desc,
		DefaultPageSize:      10,
		TieBreaker:           "id",
	}
}
