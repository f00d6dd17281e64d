package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	sharedBus "github.com/davicafu/adminlab/shared/platform/bus"
)

var genders = map[string]bool{"male": true, "female": true, "other": true}

// CustomerData son los campos editables de un cliente.
type CustomerData struct {
	FirstName         string          `json:"first_name"`
	LastName          string          `json:"last_name"`
	Username          *string         `json:"username"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone"`
	StreetAddress     string          `json:"street_address"`
	City              string          `json:"city"`
	State             string          `json:"state"`
	PostalCode        string          `json:"postal_code"`
	Country           string          `json:"country"`
	DateOfBirth       *time.Time      `json:"date_of_birth"`
	Gender            string          `json:"gender"`
	ProfilePhoto      string          `json:"profile_photo"`
	CompanyName       string          `json:"company_name"`
	VATNumber         string          `json:"vat_number"`
	Currency          string          `json:"currency"`
	AccountBalance    decimal.Decimal `json:"account_balance"`
	IsActive          bool            `json:"is_active"`
	LastLoginAt       *time.Time      `json:"last_login_at"`
	PreferredLanguage string          `json:"preferred_language"`
	LastIP            string          `json:"last_ip"`
	ExtraInfo         map[string]any  `json:"extra_info"`
}

// Customer es un cliente de la tienda. Se borra de forma lógica (DeletedAt).
type Customer struct {
	ID int64 `json:"id"`
	CustomerData
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// NewCustomer valida los datos y rellena los valores por defecto.
func NewCustomer(data CustomerData, now time.Time) (*Customer, error) {
	c := &Customer{CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
	if err := c.Apply(data, now); err != nil {
		return nil, err
	}
	return c, nil
}

// Apply sustituye los datos editables del cliente.
func (c *Customer) Apply(data CustomerData, now time.Time) error {
	data.normalize()
	if err := data.Validate(); err != nil {
		return err
	}
	c.CustomerData = data
	c.UpdatedAt = now.UTC()
	return nil
}

func (d *CustomerData) normalize() {
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	if d.Username != nil && strings.TrimSpace(*d.Username) == "" {
		d.Username = nil
	}
	if d.Currency == "" {
		d.Currency = "USD"
	}
	if d.PreferredLanguage == "" {
		d.PreferredLanguage = "en"
	}
	d.AccountBalance = d.AccountBalance.Round(2)
}

// Validate comprueba las reglas que no dependen de la base de datos.
func (d CustomerData) Validate() error {
	switch {
	case d.FirstName == "":
		return fmt.Errorf("%w: first_name is required", ErrInvalidCustomer)
	case d.LastName == "":
		return fmt.Errorf("%w: last_name is required", ErrInvalidCustomer)
	case d.Email == "" || !strings.Contains(d.Email, "@"):
		return fmt.Errorf("%w: a valid email is required", ErrInvalidCustomer)
	case d.Gender != "" && !genders[d.Gender]:
		return fmt.Errorf("%w: gender must be male, female or other", ErrInvalidCustomer)
	case d.AccountBalance.IsNegative():
		return fmt.Errorf("%w: account_balance must be positive", ErrInvalidCustomer)
	}
	return nil
}

// FullName es el nombre tal y como se muestra en el listado.
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Deleted indica si el cliente fue borrado.
func (c *Customer) Deleted() bool { return c.DeletedAt != nil }

func (c *Customer) PartitionKey() string {
	return fmt.Sprintf("%d", c.ID)
}

// Field expone las columnas por nombre para los listados.
func (c *Customer) Field(name string) (any, bool) {
	switch name {
	case "id":
		return c.ID, true
	case "first_name":
		return c.FirstName, true
	case "last_name":
		return c.LastName, true
	case "username":
		return c.Username, true
	case "email":
		return c.Email, true
	case "phone":
		return c.Phone, true
	case "city":
		return c.City, true
	case "state":
		return c.State, true
	case "country":
		return c.Country, true
	case "is_active":
		return c.IsActive, true
	case "created_at":
		return c.CreatedAt, true
	case "updated_at":
		return c.UpdatedAt, true
	}
	return nil, false
}

var _ sharedBus.Keyer = (*Customer)(nil)
