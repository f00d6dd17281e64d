package domain

import "github.com/davicafu/adminlab/shared/platform/query"

// ListConfig: el índice de pagos devuelve todos los registros.
func ListConfig() query.Config {
	return query.Config{
		SearchableFields:     []string{"email"},
		FilterableFields:     []string{"status"},
		AllowedSortFields:    []string{"id", "email", "amount", "status", "created_at"},
		DefaultSortField:     "id",
		DefaultSortDirection: query.Asc,
		DefaultPageSize:      query.FetchAll,
	}
}
