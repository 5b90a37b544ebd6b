package service

import (
	"context"
	"sync"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// PinState identifies the PIN panel of the security screen.
type PinState string

const (
	PinStateView PinState = "view" // show status, offer change
	PinStateSet  PinState = "set"  // entry form for a new PIN
)

// SecurityController drives the security screen: transaction PIN
// management, two-factor enrollment, and the transfer limits panel.
type SecurityController struct {
	pins ports.PinAPI
	log  zerolog.Logger

	mu       sync.Mutex
	busy     bool
	pinState PinState
	hasPin   bool

	newPin     string
	confirmPin string
	currentPin string

	twoFactor *TwoFactorEnrollment
	limits    domain.TransferLimits

	message   string
	pinError  string
	limitsErr string
}

func NewSecurityController(pins ports.PinAPI, limits config.LimitsConfig, log zerolog.Logger) *SecurityController {
	return &SecurityController{
		pins:      pins,
		log:       log.With().Str("component", "security").Logger(),
		pinState:  PinStateView,
		twoFactor: NewTwoFactorEnrollment(),
		limits: domain.TransferLimits{
			Single: decimal.NewFromInt(limits.SingleTransfer),
			Daily:  decimal.NewFromInt(limits.DailyTransfer),
		},
	}
}

func (c *SecurityController) PinState() PinState { c.mu.Lock(); defer c.mu.Unlock(); return c.pinState }

// HasPin reports whether a transaction PIN is known to be configured.
func (c *SecurityController) HasPin() bool { c.mu.Lock(); defer c.mu.Unlock(); return c.hasPin }

func (c *SecurityController) TwoFactor() *TwoFactorEnrollment { return c.twoFactor }

func (c *SecurityController) Limits() domain.TransferLimits {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limits
}

// Message is the success banner after a completed action.
func (c *SecurityController) Message() string { c.mu.Lock(); defer c.mu.Unlock(); return c.message }

func (c *SecurityController) PinError() string { c.mu.Lock(); defer c.mu.Unlock(); return c.pinError }

func (c *SecurityController) LimitsError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limitsErr
}

// MarkPinConfigured records that the server reports a configured PIN,
// e.g. after a transfer flow set one up.
func (c *SecurityController) MarkPinConfigured() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hasPin = true
}

// StartPinChange opens the PIN entry form.
func (c *SecurityController) StartPinChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinState = PinStateSet
	c.newPin = ""
	c.confirmPin = ""
	c.currentPin = ""
	c.pinError = ""
	c.message = ""
}

// CancelPinChange returns to the status view without touching the PIN.
func (c *SecurityController) CancelPinChange() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pinState = PinStateView
	c.pinError = ""
}

func (c *SecurityController) SetNewPin(pin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.newPin = digitsOnly(pin, 4)
	c.pinError = ""
}

func (c *SecurityController) SetConfirmPin(pin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirmPin = digitsOnly(pin, 4)
	c.pinError = ""
}

// SetCurrentPin records the existing PIN, required when changing rather
// than setting for the first time.
func (c *SecurityController) SetCurrentPin(pin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentPin = digitsOnly(pin, 4)
	c.pinError = ""
}

// SubmitPin validates and stores the new transaction PIN. When a PIN is
// already configured the current PIN is verified first.
func (c *SecurityController) SubmitPin(ctx context.Context) {
	c.mu.Lock()
	if c.busy || c.pinState != PinStateSet {
		c.mu.Unlock()
		return
	}
	if len(c.newPin) != 4 {
		c.pinError = "PIN must be exactly 4 digits"
		c.mu.Unlock()
		return
	}
	if c.newPin != c.confirmPin {
		c.pinError = "PINs do not match"
		c.mu.Unlock()
		return
	}
	mustVerify := c.hasPin
	current, next := c.currentPin, c.newPin
	c.busy = true
	c.pinError = ""
	c.mu.Unlock()

	if mustVerify {
		if err := c.pins.Verify(ctx, current); err != nil {
			c.mu.Lock()
			c.busy = false
			c.pinError = apperror.UserMessage(err, "Incorrect transaction PIN")
			c.mu.Unlock()
			return
		}
	}

	err := c.pins.Set(ctx, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.pinError = apperror.UserMessage(err, "Failed to set PIN")
		return
	}
	c.hasPin = true
	c.pinState = PinStateView
	c.newPin = ""
	c.confirmPin = ""
	c.currentPin = ""
	c.message = "Transaction PIN updated"
}

// UpdateLimits applies edited transfer limits after consistency checks.
// Limits are a client-side preference; nothing is sent to the server.
func (c *SecurityController) UpdateLimits(single, daily decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := domain.TransferLimits{Single: single, Daily: daily}
	if !single.IsPositive() || !daily.IsPositive() {
		c.limitsErr = "Limits must be positive amounts."
		return
	}
	if single.GreaterThan(daily) {
		c.limitsErr = "Single transfer limit cannot exceed daily limit."
		return
	}
	if !next.Valid() {
		c.limitsErr = "Limits must be positive amounts."
		return
	}
	c.limits = next
	c.limitsErr = ""
	c.message = "Transfer limits updated"
}
