package service

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/rs/zerolog"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LoginController drives the sign-in screen.
type LoginController struct {
	auth    ports.AuthAPI
	session *SessionService
	log     zerolog.Logger

	mu       sync.Mutex
	busy     bool
	email    string
	password string
	errMsg   string
	done     bool
}

func NewLoginController(auth ports.AuthAPI, session *SessionService, log zerolog.Logger) *LoginController {
	return &LoginController{
		auth:    auth,
		session: session,
		log:     log.With().Str("component", "login").Logger(),
	}
}

func (c *LoginController) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.email = strings.TrimSpace(email)
	c.errMsg = ""
}

func (c *LoginController) SetPassword(password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.password = password
	c.errMsg = ""
}

func (c *LoginController) Error() string { c.mu.Lock(); defer c.mu.Unlock(); return c.errMsg }

// Done reports whether sign-in completed and a session is established.
func (c *LoginController) Done() bool { c.mu.Lock(); defer c.mu.Unlock(); return c.done }

// Submit signs the user in and establishes the session.
func (c *LoginController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.busy || c.done {
		c.mu.Unlock()
		return
	}
	if c.email == "" || c.password == "" {
		c.errMsg = "Please fill in all fields."
		c.mu.Unlock()
		return
	}
	email, password := c.email, c.password
	c.busy = true
	c.errMsg = ""
	c.mu.Unlock()

	result, err := c.auth.Login(ctx, email, password)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.errMsg = apperror.UserMessage(err, "Login failed. Please try again.")
		return
	}
	if err := c.session.Establish(result.User, result.Token); err != nil {
		c.log.Error().Err(err).Msg("persisting session failed")
		c.errMsg = "Login failed. Please try again."
		return
	}
	c.done = true
}

// RegisterController drives the two-step sign-up screen: profile first,
// then credentials.
type RegisterController struct {
	auth    ports.AuthAPI
	session *SessionService
	log     zerolog.Logger

	mu   sync.Mutex
	busy bool
	step int

	fullName    string
	username    string
	email       string
	phoneNumber string
	password    string
	confirm     string

	errMsg string
	done   bool
}

func NewRegisterController(auth ports.AuthAPI, session *SessionService, log zerolog.Logger) *RegisterController {
	return &RegisterController{
		auth:    auth,
		session: session,
		log:     log.With().Str("component", "register").Logger(),
		step:    1,
	}
}

func (c *RegisterController) Step() int { c.mu.Lock(); defer c.mu.Unlock(); return c.step }

func (c *RegisterController) Error() string { c.mu.Lock(); defer c.mu.Unlock(); return c.errMsg }

func (c *RegisterController) Done() bool { c.mu.Lock(); defer c.mu.Unlock(); return c.done }

func (c *RegisterController) SetFullName(v string) { c.set(&c.fullName, strings.TrimSpace(v)) }

func (c *RegisterController) SetUsername(v string) { c.set(&c.username, strings.TrimSpace(v)) }

func (c *RegisterController) SetEmail(v string) { c.set(&c.email, strings.TrimSpace(v)) }

func (c *RegisterController) SetPhoneNumber(v string) { c.set(&c.phoneNumber, strings.TrimSpace(v)) }

func (c *RegisterController) SetPassword(v string) { c.set(&c.password, v) }

func (c *RegisterController) SetConfirmPassword(v string) { c.set(&c.confirm, v) }

func (c *RegisterController) set(field *string, v string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	*field = v
	c.errMsg = ""
}

// Next validates the profile step and advances to credentials.
func (c *RegisterController) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step != 1 {
		return
	}
	if c.fullName == "" {
		c.errMsg = "Please enter your full name."
		return
	}
	if len(c.username) < 3 {
		c.errMsg = "Username must be at least 3 characters."
		return
	}
	if !emailPattern.MatchString(c.email) {
		c.errMsg = "Please enter a valid email address."
		return
	}
	c.errMsg = ""
	c.step = 2
}

// Back returns to the profile step without losing entered values.
func (c *RegisterController) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step == 2 {
		c.step = 1
		c.errMsg = ""
	}
}

// Submit validates the credentials step, creates the account, and
// establishes the session.
func (c *RegisterController) Submit(ctx context.Context) {
	c.mu.Lock()
	if c.busy || c.done || c.step != 2 {
		c.mu.Unlock()
		return
	}
	if len(c.password) < 6 {
		c.errMsg = "Password must be at least 6 characters."
		c.mu.Unlock()
		return
	}
	if c.password != c.confirm {
		c.errMsg = "Passwords do not match."
		c.mu.Unlock()
		return
	}
	req := ports.RegisterRequest{
		Username:    c.username,
		Email:       c.email,
		Password:    c.password,
		FullName:    c.fullName,
		PhoneNumber: c.phoneNumber,
	}
	c.busy = true
	c.errMsg = ""
	c.mu.Unlock()

	result, err := c.auth.Register(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.errMsg = apperror.UserMessage(err, "Registration failed. Please try again.")
		return
	}
	if err := c.session.Establish(result.User, result.Token); err != nil {
		c.log.Error().Err(err).Msg("persisting session failed")
		c.errMsg = "Registration failed. Please try again."
		return
	}
	c.done = true
}

// PasswordStrength scores a candidate password 0-4: one point each for
// length of at least 8, an upper-case letter, a digit, and a symbol.
func PasswordStrength(password string) (int, string) {
	score := 0
	if len(password) >= 8 {
		score++
	}
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			hasSymbol = true
		}
	}
	if hasUpper {
		score++
	}
	if hasDigit {
		score++
	}
	if hasSymbol {
		score++
	}

	switch score {
	case 4:
		return score, "Strong"
	case 3:
		return score, "Good"
	case 2:
		return score, "Fair"
	default:
		return score, "Weak"
	}
}

// PasswordResetController drives the forgot/reset password screens.
type PasswordResetController struct {
	auth ports.AuthAPI
	log  zerolog.Logger

	mu      sync.Mutex
	busy    bool
	message string
	errMsg  string
}

func NewPasswordResetController(auth ports.AuthAPI, log zerolog.Logger) *PasswordResetController {
	return &PasswordResetController{
		auth: auth,
		log:  log.With().Str("component", "password_reset").Logger(),
	}
}

// Message is the server acknowledgement shown after a request.
func (c *PasswordResetController) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *PasswordResetController) Error() string { c.mu.Lock(); defer c.mu.Unlock(); return c.errMsg }

// Request asks the server to send a reset token to the given address.
func (c *PasswordResetController) Request(ctx context.Context, email string) {
	email = strings.TrimSpace(email)
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	if !emailPattern.MatchString(email) {
		c.errMsg = "Please enter a valid email address."
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.errMsg = ""
	c.message = ""
	c.mu.Unlock()

	msg, err := c.auth.ForgotPassword(ctx, email)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.errMsg = apperror.UserMessage(err, "Could not request a password reset. Please try again.")
		return
	}
	c.message = msg
}

// Reset completes the flow with the emailed token and a new password.
func (c *PasswordResetController) Reset(ctx context.Context, token, newPassword string) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return
	}
	if strings.TrimSpace(token) == "" {
		c.errMsg = "Please enter the reset token from your email."
		c.mu.Unlock()
		return
	}
	if len(newPassword) < 6 {
		c.errMsg = "Password must be at least 6 characters."
		c.mu.Unlock()
		return
	}
	c.busy = true
	c.errMsg = ""
	c.message = ""
	c.mu.Unlock()

	msg, err := c.auth.ResetPassword(ctx, token, newPassword)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.errMsg = apperror.UserMessage(err, "Could not reset your password. Please try again.")
		return
	}
	c.message = msg
}
