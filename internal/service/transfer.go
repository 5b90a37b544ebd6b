package service

import (
	"context"
	"strings"
	"sync"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/format"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TransferStep identifies the current screen of the transfer flow.
type TransferStep string

const (
	TransferStepForm    TransferStep = "form"
	TransferStepConfirm TransferStep = "confirm"
	TransferStepSuccess TransferStep = "success"
	TransferStepError   TransferStep = "error"
	TransferStepSetPin  TransferStep = "set_pin"
)

// LookupState tracks the receiver verification sub-flow.
type LookupState string

const (
	LookupIdle     LookupState = "idle"
	LookupLoading  LookupState = "loading"
	LookupFound    LookupState = "found"
	LookupNotFound LookupState = "notfound"
)

const accountNumberLen = 10

// LimitSource supplies the transfer limits in force. The security
// screen edits limits at runtime, so the workflow reads them per
// validation instead of capturing a snapshot.
type LimitSource interface {
	Limits() domain.TransferLimits
}

// TransferWorkflow drives the money transfer flow: form, receiver
// lookup, confirmation with PIN, and the terminal success/error screens.
// One workflow instance backs one screen; methods must not be called
// concurrently except as guarded by the in-flight flag.
type TransferWorkflow struct {
	accounts     ports.AccountAPI
	transactions ports.TransactionAPI
	limits       LimitSource
	log          zerolog.Logger

	mu      sync.Mutex
	busy    bool
	step    TransferStep
	account *domain.Account

	receiver    string
	amount      string
	description string
	pin         string

	lookup LookupState
	holder *domain.AccountHolder

	formError string
	failure   string
	reference string
}

func NewTransferWorkflow(accounts ports.AccountAPI, transactions ports.TransactionAPI, limits LimitSource, log zerolog.Logger) *TransferWorkflow {
	return &TransferWorkflow{
		accounts:     accounts,
		transactions: transactions,
		limits:       limits,
		log:          log.With().Str("component", "transfer").Logger(),
		step:         TransferStepForm,
		lookup:       LookupIdle,
	}
}

// Load fetches the sender account. The first active account is the
// sender; with none active the first account is used as-is.
func (w *TransferWorkflow) Load(ctx context.Context) error {
	accounts, err := w.accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return apperror.Validation("You have no account to transfer from.")
	}

	selected := accounts[0]
	for _, a := range accounts {
		if a.IsActive() {
			selected = a
			break
		}
	}

	w.mu.Lock()
	w.account = &selected
	w.mu.Unlock()
	return nil
}

func (w *TransferWorkflow) Step() TransferStep { w.mu.Lock(); defer w.mu.Unlock(); return w.step }

func (w *TransferWorkflow) Lookup() LookupState { w.mu.Lock(); defer w.mu.Unlock(); return w.lookup }

func (w *TransferWorkflow) Account() *domain.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account
}

func (w *TransferWorkflow) Holder() *domain.AccountHolder {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.holder
}

func (w *TransferWorkflow) Receiver() string { w.mu.Lock(); defer w.mu.Unlock(); return w.receiver }

func (w *TransferWorkflow) Amount() string { w.mu.Lock(); defer w.mu.Unlock(); return w.amount }

func (w *TransferWorkflow) Description() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.description
}

// FormError is the inline validation message for the form and confirm
// screens, empty when the last action passed validation.
func (w *TransferWorkflow) FormError() string { w.mu.Lock(); defer w.mu.Unlock(); return w.formError }

// Failure is the message shown on the error screen.
func (w *TransferWorkflow) Failure() string { w.mu.Lock(); defer w.mu.Unlock(); return w.failure }

// Reference is the transfer reference shown on the success screen.
func (w *TransferWorkflow) Reference() string { w.mu.Lock(); defer w.mu.Unlock(); return w.reference }

// SetReceiver updates the receiver number and invalidates any previous
// lookup result.
func (w *TransferWorkflow) SetReceiver(accountNumber string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.receiver = strings.TrimSpace(accountNumber)
	w.lookup = LookupIdle
	w.holder = nil
	w.formError = ""
}

func (w *TransferWorkflow) SetAmount(amount string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.amount = strings.TrimSpace(amount)
	w.formError = ""
}

func (w *TransferWorkflow) SetDescription(description string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.description = description
}

// SetPIN keeps only digits and caps the PIN at four characters.
func (w *TransferWorkflow) SetPIN(pin string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pin = digitsOnly(pin, 4)
}

// LookupReceiver verifies the receiver account number. Numbers of the
// wrong length are ignored; the user's own account is rejected without a
// network call.
func (w *TransferWorkflow) LookupReceiver(ctx context.Context) {
	w.mu.Lock()
	receiver := w.receiver
	own := ""
	if w.account != nil {
		own = w.account.Number
	}
	if len(receiver) != accountNumberLen {
		w.mu.Unlock()
		return
	}
	if receiver == own {
		w.lookup = LookupNotFound
		w.holder = nil
		w.formError = "You cannot transfer to your own account."
		w.mu.Unlock()
		return
	}
	w.lookup = LookupLoading
	w.mu.Unlock()

	holder, err := w.accounts.Lookup(ctx, receiver)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.receiver != receiver {
		// Receiver changed while the lookup was in flight.
		return
	}
	if err != nil || holder == nil || holder.Name == "" {
		if err != nil {
			w.log.Debug().Err(err).Str("receiver", format.MaskAccount(receiver)).Msg("receiver lookup failed")
		}
		w.lookup = LookupNotFound
		w.holder = nil
		w.formError = "Account not found. Please check the number."
		return
	}
	w.lookup = LookupFound
	w.holder = holder
	w.formError = ""
}

// Proceed validates the form and advances to the confirmation screen.
func (w *TransferWorkflow) Proceed() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.receiver) != accountNumberLen || digitsOnly(w.receiver, accountNumberLen) != w.receiver {
		w.formError = "Enter a valid 10-digit account number."
		return
	}
	if w.lookup != LookupFound {
		w.formError = "Please verify the receiver account first."
		return
	}

	amount, err := decimal.NewFromString(w.amount)
	if err != nil || !amount.IsPositive() {
		w.formError = "Enter a valid amount."
		return
	}
	if w.account != nil && amount.GreaterThan(w.account.Balance) {
		w.formError = "Insufficient balance."
		return
	}
	limit := w.limits.Limits().Single
	if amount.GreaterThan(limit) {
		w.formError = "Amount exceeds single transfer limit of " + format.Currency(limit) + "."
		return
	}

	w.formError = ""
	w.step = TransferStepConfirm
}

// Back returns from the confirmation screen to the form without losing
// the entered details.
func (w *TransferWorkflow) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == TransferStepConfirm {
		w.step = TransferStepForm
		w.formError = ""
	}
}

// Confirm submits the transfer. A second call while one is in flight is
// a no-op.
func (w *TransferWorkflow) Confirm(ctx context.Context) {
	w.mu.Lock()
	if w.busy || w.step != TransferStepConfirm {
		w.mu.Unlock()
		return
	}
	if len(w.pin) != 4 {
		w.formError = "Please enter your 4-digit transaction PIN."
		w.mu.Unlock()
		return
	}

	amount, err := decimal.NewFromString(w.amount)
	if err != nil {
		w.formError = "Enter a valid amount."
		w.mu.Unlock()
		return
	}

	req := ports.TransferRequest{
		ReceiverAccount: w.receiver,
		Amount:          amount,
		Description:     w.description,
		PIN:             w.pin,
	}
	var accountID string
	if w.account != nil {
		req.SenderAccount = w.account.Number
		accountID = w.account.ID
	}
	w.busy = true
	w.formError = ""
	w.mu.Unlock()

	receipt, err := w.transactions.Transfer(ctx, req)

	w.mu.Lock()
	w.busy = false
	if err != nil {
		if apperror.PinSetupRequired(err) {
			w.step = TransferStepSetPin
			w.pin = ""
			w.mu.Unlock()
			return
		}
		w.failure = apperror.UserMessage(err, "Transfer failed. Please try again.")
		w.step = TransferStepError
		w.mu.Unlock()
		return
	}

	w.reference = receipt.Reference
	w.step = TransferStepSuccess
	if receipt.SenderBalance != nil && w.account != nil {
		w.account.Balance = *receipt.SenderBalance
	}
	w.mu.Unlock()

	if receipt.SenderBalance == nil && accountID != "" {
		// Best effort; the success screen can live with a stale balance.
		if fresh, err := w.accounts.Get(ctx, accountID); err == nil {
			w.mu.Lock()
			w.account = fresh
			w.mu.Unlock()
		} else {
			w.log.Warn().Err(err).Msg("balance refresh after transfer failed")
		}
	}
}

// ResumeAfterPinSetup returns to the confirmation screen once the user
// has configured a transaction PIN, keeping the entered transfer.
func (w *TransferWorkflow) ResumeAfterPinSetup() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == TransferStepSetPin {
		w.step = TransferStepConfirm
	}
}

// Reset clears the flow back to an empty form. The sender account is
// kept.
func (w *TransferWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = TransferStepForm
	w.receiver = ""
	w.amount = ""
	w.description = ""
	w.pin = ""
	w.lookup = LookupIdle
	w.holder = nil
	w.formError = ""
	w.failure = ""
	w.reference = ""
}

func digitsOnly(s string, max int) string {
	var b strings.Builder
	for _, r := range s {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == max {
			break
		}
	}
	return b.String()
}
