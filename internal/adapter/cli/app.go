package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"sfa-bank-client/config"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/apperror"
	"sfa-bank-client/pkg/format"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Deps are the services and gateways the screens run on.
type Deps struct {
	Session      *service.SessionService
	Auth         ports.AuthAPI
	Accounts     ports.AccountAPI
	Transactions ports.TransactionAPI
	Payments     ports.PaymentAPI
	Pins         ports.PinAPI
	Limits       config.LimitsConfig
	Currency     config.CurrencyConfig
}

// App is the interactive terminal frontend. It owns the screen loop;
// all state lives in the service layer.
type App struct {
	deps Deps
	in   *bufio.Scanner
	out  io.Writer
	log  zerolog.Logger

	security *service.SecurityController
	settings *service.SettingsController
}

func NewApp(deps Deps, in io.Reader, out io.Writer, log zerolog.Logger) *App {
	return &App{
		deps:     deps,
		in:       bufio.NewScanner(in),
		out:      out,
		log:      log.With().Str("component", "cli").Logger(),
		security: service.NewSecurityController(deps.Pins, deps.Limits, log),
		settings: service.NewSettingsController(deps.Session, log),
	}
}

// Run drives the screen loop until the user quits, input ends, or the
// context is cancelled.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "SFA Bank")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !a.deps.Session.Authenticated() {
			if done := a.welcomeMenu(ctx); done {
				return nil
			}
			continue
		}
		if done := a.mainMenu(ctx); done {
			return nil
		}
	}
}

func (a *App) welcomeMenu(ctx context.Context) (quit bool) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "1) Sign in")
	fmt.Fprintln(a.out, "2) Create an account")
	fmt.Fprintln(a.out, "3) Forgot password")
	fmt.Fprintln(a.out, "q) Quit")

	switch a.prompt("> ") {
	case "1":
		a.loginScreen(ctx)
	case "2":
		a.registerScreen(ctx)
	case "3":
		a.forgotPasswordScreen(ctx)
	case "q", "":
		return true
	}
	return false
}

func (a *App) mainMenu(ctx context.Context) (quit bool) {
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "Signed in as %s\n", a.deps.Session.User().FullName)
	fmt.Fprintln(a.out, "1) Dashboard")
	fmt.Fprintln(a.out, "2) Accounts")
	fmt.Fprintln(a.out, "3) Transfer money")
	fmt.Fprintln(a.out, "4) Pay bills")
	fmt.Fprintln(a.out, "5) Security")
	fmt.Fprintln(a.out, "6) Settings")
	fmt.Fprintln(a.out, "7) Sign out")
	fmt.Fprintln(a.out, "q) Quit")

	choice := a.prompt("> ")
	if choice == "q" || choice == "" {
		return true
	}
	if choice == "7" {
		if err := a.deps.Session.Logout(); err != nil {
			a.log.Error().Err(err).Msg("logout failed")
		}
		fmt.Fprintln(a.out, "Signed out.")
		return false
	}

	// Every protected screen re-checks the session first.
	if err := a.deps.Session.RequireAuth(); err != nil {
		fmt.Fprintln(a.out, apperror.UserMessage(err, "Please sign in again."))
		return false
	}

	switch choice {
	case "1":
		a.dashboardScreen(ctx)
	case "2":
		a.accountsScreen(ctx)
	case "3":
		a.transferScreen(ctx)
	case "4":
		a.billsScreen(ctx)
	case "5":
		a.securityScreen(ctx)
	case "6":
		a.settingsScreen(ctx)
	}
	return false
}

// prompt reads one trimmed line, empty on EOF.
func (a *App) prompt(label string) string {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *App) showError(err error, fallback string) {
	fmt.Fprintln(a.out, apperror.UserMessage(err, fallback))
}

func (a *App) currency(amount decimal.Decimal) string {
	return format.CurrencyWith(a.deps.Currency.Symbol, amount)
}
