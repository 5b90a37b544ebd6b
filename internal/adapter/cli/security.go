package cli

import (
	"context"
	"fmt"

	"sfa-bank-client/internal/service"

	"github.com/shopspring/decimal"
)

func (a *App) securityScreen(ctx context.Context) {
	for {
		fmt.Fprintln(a.out, "\nSecurity")
		fmt.Fprintln(a.out, "1) Transaction PIN")
		fmt.Fprintln(a.out, "2) Two-factor authentication")
		fmt.Fprintln(a.out, "3) Transfer limits")
		fmt.Fprintln(a.out, "b) Back")

		switch a.prompt("> ") {
		case "1":
			a.pinPanel(ctx)
		case "2":
			a.twoFactorPanel()
		case "3":
			a.limitsPanel()
		default:
			return
		}
	}
}

func (a *App) pinPanel(ctx context.Context) {
	if a.security.HasPin() {
		fmt.Fprintln(a.out, "\nA transaction PIN is configured.")
	} else {
		fmt.Fprintln(a.out, "\nNo transaction PIN configured yet.")
	}
	if a.prompt("Set a new PIN? (y/n) ") != "y" {
		return
	}

	a.security.StartPinChange()
	if a.security.HasPin() {
		a.security.SetCurrentPin(a.prompt("Current PIN: "))
	}
	a.security.SetNewPin(a.prompt("New 4-digit PIN: "))
	a.security.SetConfirmPin(a.prompt("Confirm PIN: "))
	a.security.SubmitPin(ctx)

	if msg := a.security.PinError(); msg != "" {
		fmt.Fprintln(a.out, msg)
		a.security.CancelPinChange()
		return
	}
	fmt.Fprintln(a.out, a.security.Message())
}

func (a *App) twoFactorPanel() {
	twoFactor := a.security.TwoFactor()

	switch twoFactor.State() {
	case service.TwoFactorOff:
		if a.prompt("Two-factor is off. Enable it? (y/n) ") != "y" {
			return
		}
		secret, err := twoFactor.Begin()
		if err != nil {
			fmt.Fprintln(a.out, "Could not start two-factor enrollment.")
			return
		}
		fmt.Fprintf(a.out, "Secret: %s\n", secret)
		fmt.Fprintf(a.out, "Add to your authenticator app: %s\n",
			twoFactor.ProvisioningURI(a.deps.Session.User().Email, "SFA Bank"))
		fallthrough
	case service.TwoFactorPending:
		if twoFactor.Confirm(a.prompt("Code from your authenticator app: ")) {
			fmt.Fprintln(a.out, "Two-factor authentication enabled.")
		} else {
			fmt.Fprintln(a.out, "That code did not match. Two-factor is still off.")
		}
	case service.TwoFactorOn:
		if a.prompt("Two-factor is on. Disable it? (y/n) ") != "y" {
			return
		}
		if !twoFactor.Verify(a.prompt("Code from your authenticator app: ")) {
			fmt.Fprintln(a.out, "That code did not match.")
			return
		}
		twoFactor.Disable()
		fmt.Fprintln(a.out, "Two-factor authentication disabled.")
	}
}

func (a *App) limitsPanel() {
	limits := a.security.Limits()
	fmt.Fprintf(a.out, "\nSingle transfer limit: %s\n", a.currency(limits.Single))
	fmt.Fprintf(a.out, "Daily transfer limit:  %s\n", a.currency(limits.Daily))
	if a.prompt("Change limits? (y/n) ") != "y" {
		return
	}

	single, err := decimal.NewFromString(a.prompt("New single transfer limit: "))
	if err != nil {
		fmt.Fprintln(a.out, "Limits must be positive amounts.")
		return
	}
	daily, err := decimal.NewFromString(a.prompt("New daily transfer limit: "))
	if err != nil {
		fmt.Fprintln(a.out, "Limits must be positive amounts.")
		return
	}

	a.security.UpdateLimits(single, daily)
	if msg := a.security.LimitsError(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}
	fmt.Fprintln(a.out, a.security.Message())
}
