package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/davicafu/adminlab/shared/domain"
)

func validData() CustomerData {
	return CustomerData{FirstName: " Ana ", LastName: "García", Email: "Ana@Example.com", IsActive: true}
}

func TestNewCustomer_Defaults(t *testing.T) {
	now := time.Date(2025, 9, 11, 10, 0, 0, 0, time.UTC)
	c, err := NewCustomer(validData(), now)
	require.NoError(t, err)

	assert.Equal(t, "Ana", c.FirstName)
	assert.Equal(t, "ana@example.com", c.Email)
	assert.Equal(t, "USD", c.Currency)
	assert.Equal(t, "en", c.PreferredLanguage)
	assert.Equal(t, now, c.CreatedAt)
	assert.Equal(t, "Ana García", c.FullName())
}

func TestNewCustomer_Validation(t *testing.T) {
	cases := map[string]func(d *CustomerData){
		"missing first name": func(d *CustomerData) { d.FirstName = "  " },
		"missing last name":  func(d *CustomerData) { d.LastName = "" },
		"bad email":          func(d *CustomerData) { d.Email = "nope" },
		"bad gender":         func(d *CustomerData) { d.Gender = "robot" },
		"negative balance":   func(d *CustomerData) { d.AccountBalance = decimal.NewFromInt(-1) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := validData()
			mutate(&d)
			_, err := NewCustomer(d, time.Now())
			assert.ErrorIs(t, err, ErrInvalidCustomer)
			assert.ErrorIs(t, err, sharedDomain.ErrInvalidInput)
		})
	}
}

func TestCustomer_BlankUsernameIsNil(t *testing.T) {
	d := validData()
	blank := " "
	d.Username = &blank

	c, err := NewCustomer(d, time.Now())
	require.NoError(t, err)
	assert.Nil(t, c.Username)
}

func TestCustomer_Field(t *testing.T) {
	c := &Customer{ID: 7, CustomerData: CustomerData{City: "Madrid", IsActive: true}}

	v, ok := c.Field("city")
	assert.True(t, ok)
	assert.Equal(t, "Madrid", v)

	v, _ = c.Field("is_active")
	assert.Equal(t, true, v)

	_, ok = c.Field("password")
	assert.False(t, ok)
}

func TestListConfig_DefaultsAreSortable(t *testing.T) {
	cfg := ListConfig()
	assert.Contains(t, cfg.AllowedSortFields, cfg.DefaultSortField)
	assert.Contains(t, cfg.AllowedSortFields, cfg.TieBreaker)
}
