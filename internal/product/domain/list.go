package domain

import "github.com/davicafu/adminlab/shared/platform/query"

// ListConfig: los productos se listan completos, los más recientes primero.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields:     []string{"name", "description"},
		AllowedSortFields:    []string{"created_at", "id", "name", "price"},
		DefaultSortField:     "created_at",
		DefaultSortDirection: query.Desc,
		DefaultPageSize:      query.FetchAll,
		TieBreaker:           "id",
	}
}
