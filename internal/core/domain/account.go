package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus represents the lifecycle state of a bank account.
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusFrozen AccountStatus = "frozen"
	AccountStatusClosed AccountStatus = "closed"
)

// Account is a customer bank account. Read-only from the client's
// perspective; refreshed after any balance-affecting operation.
type Account struct {
	ID        string          `json:"id"`
	Number    string          `json:"account_number"`
	Type      string          `json:"account_type"`
	Balance   decimal.Decimal `json:"balance"`
	Status    AccountStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// IsActive reports whether the account can move money.
func (a Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// AccountHolder is the result of a receiver-account lookup.
type AccountHolder struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
}
