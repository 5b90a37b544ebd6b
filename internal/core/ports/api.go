package ports

import (
	"context"

	"sfa-bank-client/internal/core/domain"

	"github.com/shopspring/decimal"
)

// TokenSource supplies the current bearer token; empty means anonymous.
type TokenSource interface {
	Token() string
}

// AuthAPI is the gateway for the authentication resource.
type AuthAPI interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error) // server message
	ResetPassword(ctx context.Context, token, newPassword string) (string, error)
}

// RegisterRequest holds validated input for account creation.
type RegisterRequest struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	PhoneNumber string
}

// AuthResult is the server response to login/register.
type AuthResult struct {
	User  domain.User
	Token string
}

// AccountAPI is the gateway for the accounts resource.
type AccountAPI interface {
	List(ctx context.Context) ([]domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	// Lookup resolves a receiver account number to its holder.
	// Returns nil when the number does not resolve.
	Lookup(ctx context.Context, accountNumber string) (*domain.AccountHolder, error)
}

// TransactionAPI is the gateway for the transactions resource.
type TransactionAPI interface {
	List(ctx context.Context) ([]domain.Transaction, error)
	ForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	Transfer(ctx context.Context, req TransferRequest) (*domain.TransferReceipt, error)
	Status(ctx context.Context, reference string) (*domain.TransferReceipt, error)
}

// TransferRequest holds validated input for a funds transfer.
type TransferRequest struct {
	SenderAccount   string
	ReceiverAccount string
	Amount          decimal.Decimal
	Description     string
	PIN             string
}

// PaymentAPI is the gateway for the bill payments resource.
type PaymentAPI interface {
	Pay(ctx context.Context, req PaymentRequest) (*domain.PaymentReceipt, error)
	History(ctx context.Context) ([]domain.Payment, error)
	Categories(ctx context.Context) ([]domain.BillerCategory, error)
	Billers(ctx context.Context, categoryID string) ([]domain.Biller, error)
}

// PaymentRequest holds validated input for a bill payment.
type PaymentRequest struct {
	BillerID          string
	BillerCode        string
	CustomerReference string
	Amount            decimal.Decimal
}

// PinAPI is the gateway for the transaction PIN resource.
type PinAPI interface {
	Set(ctx context.Context, pin string) error
	Verify(ctx context.Context, pin string) error
}
