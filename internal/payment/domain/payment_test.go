package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		status  PaymentStatus
		email   string
		wantErr bool
	}{
		{name: "válido", amount: "10.555", status: StatusSuccess, email: " A@Example.com "},
		{name: "negativo", amount: "-1", status: StatusSuccess, email: "a@example.com", wantErr: true},
		{name: "estado desconocido", amount: "1", status: "refunded", email: "a@example.com", wantErr: true},
		{name: "email", amount: "1", status: StatusPending, email: "nope", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPayment(decimal.RequireFromString(tt.amount), tt.status, tt.email, time.Now())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayment)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "10.56", p.Amount.StringFixed(2))
			assert.Equal(t, "a@example.com", p.Email)
		})
	}
}

func TestRegistry(t *testing.T) {
	reg := NewEventRegistry()
	assert.Equal(t, PaymentTopic, reg[PaymentCreated].Topic)
	assert.Equal(t, PaymentTopic, reg[PaymentDeleted].Topic)
}
