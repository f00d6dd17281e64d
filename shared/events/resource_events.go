package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// ---------------- Customer ----------------

type CustomerChanged struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

type CustomerDeleted struct {
	ID int64 `json:"id"`
}

// CustomerSeedRequested es un trabajo de seed en cola.
type CustomerSeedRequested struct {
	BatchSize  int `json:"batch_size"`
	StartIndex int `json:"start_index"`
}

// ---------------- Payment ----------------

type PaymentRecorded struct {
	ID        int64           `json:"id"`
	Email     string          `json:"email"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

type PaymentDeleted struct {
	ID int64 `json:"id"`
}

// ---------------- User ----------------

type UserCreated struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
