package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement.
type TransactionType string

const (
	TransactionTypeTransfer    TransactionType = "transfer"
	TransactionTypeDeposit     TransactionType = "deposit"
	TransactionTypeBillPayment TransactionType = "bill_payment"
	TransactionTypeWithdrawal  TransactionType = "withdrawal"
)

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	TransactionStatusPending    TransactionStatus = "pending"
	TransactionStatusSuccessful TransactionStatus = "successful"
	TransactionStatusFailed     TransactionStatus = "failed"
)

// Transaction is one immutable ledger entry as reported by the server.
type Transaction struct {
	ID              string            `json:"id"`
	Type            TransactionType   `json:"transaction_type"`
	Amount          decimal.Decimal   `json:"amount"`
	Status          TransactionStatus `json:"status"`
	Description     string            `json:"description"`
	Reference       string            `json:"reference_number"`
	ReceiverAccount string            `json:"receiver_account,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
}

// IsCredit reports whether the transaction adds money to the account.
func (t Transaction) IsCredit() bool {
	return t.Type == TransactionTypeDeposit
}

// TransferReceipt is the server's acknowledgement of a funds transfer.
// SenderBalance is the post-transfer balance when the server echoes it.
type TransferReceipt struct {
	Reference     string
	Status        TransactionStatus
	SenderBalance *decimal.Decimal
}
