package domain

import "github.com/davicafu/adminlab/shared/platform/query"

// ListConfig es la configuración del listado de usuarios; admite modo cursor.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields:     []string{"name", "email"},
		AllowedSortFields:    []string{"id", "name", "email", "created_at"},
		DefaultSortField:     "id",
		DefaultSortDirection: query.Asc,
		DefaultPageSize:      10,
		TieBreaker:           "id",
	}
}
