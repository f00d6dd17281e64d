package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	StatusPending    PaymentStatus = "pending"
	StatusProcessing PaymentStatus = "processing"
	StatusSuccess    PaymentStatus = "success"
	StatusFailed     PaymentStatus = "failed"
)

// Statuses en el orden en que se muestran.
var Statuses = []PaymentStatus{StatusPending, StatusProcessing, StatusSuccess, StatusFailed}

func (s PaymentStatus) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Payment es un cobro registrado.
type Payment struct {
	ID        int64           `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func NewPayment(amount decimal.Decimal, status PaymentStatus, email string, now time.Time) (*Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case amount.IsNegative():
		return nil, fmt.Errorf("%w: amount must be at least 0", ErrInvalidPayment)
	case !status.Valid():
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidPayment, status)
	case !strings.Contains(email, "@"):
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidPayment)
	}

	return &Payment{
		Amount:    amount.Round(2),
		Status:    status,
		Email:     email,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}, nil
}

func (p *Payment) PartitionKey() string {
	return strconv.FormatInt(p.ID, 10)
}

func (p *Payment) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "amount":
		return p.Amount, true
	case "status":
		return string(p.Status), true
	case "email":
		return p.Email, true
	case "created_at":
		return p.CreatedAt, true
	}
	return nil, false
}
