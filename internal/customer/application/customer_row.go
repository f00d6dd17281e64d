package application

import "github.com/davicafu/adminlab/internal/customer/domain"

// CustomerRow es la proyección de un cliente en la tabla del listado.
type CustomerRow struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Country   string `json:"country"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"` // YYYY-MM-DD
}

func ToRow(c *domain.Customer) CustomerRow {
	row := CustomerRow{
		ID:       c.ID,
		Name:     c.FullName(),
		Email:    c.Email,
		Phone:    c.Phone,
		City:     c.City,
		Country:  c.Country,
		IsActive: c.IsActive,
	}
	if !c.CreatedAt.IsZero() {
		row.CreatedAt = c.CreatedAt.Format("2006-01-02")
	}
	return row
}
