package service

import (
	"context"
	"strings"
	"sync"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PaymentStep identifies the current screen of the bill payment flow.
type PaymentStep string

const (
	PaymentStepForm    PaymentStep = "form"
	PaymentStepConfirm PaymentStep = "confirm"
	PaymentStepSuccess PaymentStep = "success"
	PaymentStepError   PaymentStep = "error"
)

// BillPaymentWorkflow drives the bill payment flow: category and biller
// selection, customer reference, amount, confirmation, and the terminal
// screens. Recent payments are kept for the history panel.
type BillPaymentWorkflow struct {
	accounts ports.AccountAPI
	payments ports.PaymentAPI
	log      zerolog.Logger

	mu      sync.Mutex
	busy    bool
	step    PaymentStep
	account *domain.Account

	categories []domain.BillerCategory
	billers    []domain.Biller
	history    []domain.Payment

	category  string
	biller    *domain.Biller
	reference string
	amount    string

	formError string
	failure   string
	receipt   *domain.PaymentReceipt
}

func NewBillPaymentWorkflow(accounts ports.AccountAPI, payments ports.PaymentAPI, log zerolog.Logger) *BillPaymentWorkflow {
	return &BillPaymentWorkflow{
		accounts: accounts,
		payments: payments,
		log:      log.With().Str("component", "bills").Logger(),
		step:     PaymentStepForm,
	}
}

// Load fetches the paying account and the biller categories. Payment
// history is fetched best effort; the flow works without it.
func (w *BillPaymentWorkflow) Load(ctx context.Context) error {
	accounts, err := w.accounts.List(ctx)
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		return apperror.Validation("You have no account to pay from.")
	}
	selected := accounts[0]
	for _, a := range accounts {
		if a.IsActive() {
			selected = a
			break
		}
	}

	categories, err := w.payments.Categories(ctx)
	if err != nil {
		return err
	}

	history, err := w.payments.History(ctx)
	if err != nil {
		w.log.Warn().Err(err).Msg("payment history unavailable")
		history = nil
	}

	w.mu.Lock()
	w.account = &selected
	w.categories = categories
	w.history = history
	w.mu.Unlock()
	return nil
}

func (w *BillPaymentWorkflow) Step() PaymentStep { w.mu.Lock(); defer w.mu.Unlock(); return w.step }

func (w *BillPaymentWorkflow) Account() *domain.Account {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.account
}

func (w *BillPaymentWorkflow) Categories() []domain.BillerCategory {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.categories
}

func (w *BillPaymentWorkflow) Billers() []domain.Biller {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.billers
}

func (w *BillPaymentWorkflow) History() []domain.Payment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.history
}

func (w *BillPaymentWorkflow) Category() string { w.mu.Lock(); defer w.mu.Unlock(); return w.category }

func (w *BillPaymentWorkflow) Biller() *domain.Biller {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.biller
}

func (w *BillPaymentWorkflow) CustomerReference() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reference
}

func (w *BillPaymentWorkflow) Amount() string { w.mu.Lock(); defer w.mu.Unlock(); return w.amount }

func (w *BillPaymentWorkflow) FormError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.formError
}

func (w *BillPaymentWorkflow) Failure() string { w.mu.Lock(); defer w.mu.Unlock(); return w.failure }

func (w *BillPaymentWorkflow) Receipt() *domain.PaymentReceipt {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.receipt
}

// SelectCategory switches category, clears the previous biller and form
// fields, and loads the billers of the new category.
func (w *BillPaymentWorkflow) SelectCategory(ctx context.Context, categoryID string) error {
	w.mu.Lock()
	w.category = categoryID
	w.biller = nil
	w.billers = nil
	w.reference = ""
	w.amount = ""
	w.formError = ""
	w.mu.Unlock()

	if categoryID == "" {
		return nil
	}

	billers, err := w.payments.Billers(ctx, categoryID)
	if err != nil {
		return err
	}

	w.mu.Lock()
	if w.category == categoryID {
		w.billers = billers
	}
	w.mu.Unlock()
	return nil
}

// SelectBiller picks a biller from the loaded list by ID.
func (w *BillPaymentWorkflow) SelectBiller(billerID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.formError = ""
	for i := range w.billers {
		if w.billers[i].ID == billerID {
			w.biller = &w.billers[i]
			return
		}
	}
	w.biller = nil
}

func (w *BillPaymentWorkflow) SetCustomerReference(reference string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reference = strings.TrimSpace(reference)
	w.formError = ""
}

func (w *BillPaymentWorkflow) SetAmount(amount string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.amount = strings.TrimSpace(amount)
	w.formError = ""
}

// Proceed validates the form and advances to the confirmation screen.
func (w *BillPaymentWorkflow) Proceed() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.biller == nil {
		w.formError = "Please select a biller."
		return
	}
	if w.reference == "" {
		w.formError = "Please enter your customer/meter/phone reference."
		return
	}
	amount, err := decimal.NewFromString(w.amount)
	if err != nil || !amount.IsPositive() {
		w.formError = "Please enter a valid amount."
		return
	}
	if w.account != nil && amount.GreaterThan(w.account.Balance) {
		w.formError = "Insufficient balance."
		return
	}

	w.formError = ""
	w.step = PaymentStepConfirm
}

// Back returns from the confirmation screen to the form.
func (w *BillPaymentWorkflow) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == PaymentStepConfirm {
		w.step = PaymentStepForm
		w.formError = ""
	}
}

// Confirm submits the payment. A second call while one is in flight is a
// no-op. On success the history panel is refreshed best effort.
func (w *BillPaymentWorkflow) Confirm(ctx context.Context) {
	w.mu.Lock()
	if w.busy || w.step != PaymentStepConfirm || w.biller == nil {
		w.mu.Unlock()
		return
	}
	amount, err := decimal.NewFromString(w.amount)
	if err != nil {
		w.formError = "Please enter a valid amount."
		w.mu.Unlock()
		return
	}
	req := ports.PaymentRequest{
		BillerID:          w.biller.ID,
		BillerCode:        w.biller.Code,
		CustomerReference: w.reference,
		Amount:            amount,
	}
	w.busy = true
	w.formError = ""
	w.mu.Unlock()

	receipt, err := w.payments.Pay(ctx, req)

	w.mu.Lock()
	w.busy = false
	if err != nil {
		w.failure = apperror.UserMessage(err, "Payment failed. Please try again.")
		w.step = PaymentStepError
		w.mu.Unlock()
		return
	}
	w.receipt = receipt
	w.step = PaymentStepSuccess
	w.mu.Unlock()

	if history, err := w.payments.History(ctx); err == nil {
		w.mu.Lock()
		w.history = history
		w.mu.Unlock()
	} else {
		w.log.Warn().Err(err).Msg("history refresh after payment failed")
	}
}

// Reset clears the flow back to an empty form. Account, categories and
// history are kept.
func (w *BillPaymentWorkflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.step = PaymentStepForm
	w.category = ""
	w.biller = nil
	w.billers = nil
	w.reference = ""
	w.amount = ""
	w.formError = ""
	w.failure = ""
	w.receipt = nil
}
