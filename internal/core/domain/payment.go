package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillerCategory groups billers, e.g. electricity or cable TV.
type BillerCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Biller is a payee within a category.
type Biller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Payment is one bill payment as reported by the server.
type Payment struct {
	ID         string            `json:"id"`
	BillerName string            `json:"biller_name"`
	Amount     decimal.Decimal   `json:"amount"`
	Status     TransactionStatus `json:"status"`
	Reference  string            `json:"reference"`
	CreatedAt  time.Time         `json:"created_at"`
}

// PaymentReceipt is the server's acknowledgement of a bill payment.
type PaymentReceipt struct {
	Reference string
	Status    TransactionStatus
}

// TransferLimits are the client-side transfer caps shown on the security
// screen and enforced before any transfer reaches the API.
type TransferLimits struct {
	Single decimal.Decimal
	Daily  decimal.Decimal
}

// Valid reports whether the limits are positive and consistent.
func (l TransferLimits) Valid() bool {
	return l.Single.IsPositive() && l.Daily.IsPositive() && !l.Single.GreaterThan(l.Daily)
}
