package cli

import (
	"context"
	"fmt"

	"sfa-bank-client/internal/service"
)

func (a *App) loginScreen(ctx context.Context) {
	fmt.Fprintln(a.out, "\nSign in")
	login := service.NewLoginController(a.deps.Auth, a.deps.Session, a.log)

	login.SetEmail(a.prompt("Email: "))
	login.SetPassword(a.prompt("Password: "))
	login.Submit(ctx)

	if !login.Done() {
		fmt.Fprintln(a.out, login.Error())
		return
	}
	fmt.Fprintf(a.out, "Welcome back, %s.\n", a.deps.Session.User().FullName)
}

func (a *App) registerScreen(ctx context.Context) {
	fmt.Fprintln(a.out, "\nCreate an account")
	reg := service.NewRegisterController(a.deps.Auth, a.deps.Session, a.log)

	for reg.Step() == 1 {
		reg.SetFullName(a.prompt("Full name: "))
		reg.SetUsername(a.prompt("Username: "))
		reg.SetEmail(a.prompt("Email: "))
		reg.SetPhoneNumber(a.prompt("Phone number (optional): "))
		reg.Next()
		if msg := reg.Error(); msg != "" {
			fmt.Fprintln(a.out, msg)
			if a.prompt("Try again? (y/n) ") != "y" {
				return
			}
		}
	}

	for !reg.Done() {
		password := a.prompt("Password: ")
		score, label := service.PasswordStrength(password)
		fmt.Fprintf(a.out, "Password strength: %s (%d/4)\n", label, score)
		reg.SetPassword(password)
		reg.SetConfirmPassword(a.prompt("Confirm password: "))
		reg.Submit(ctx)
		if msg := reg.Error(); msg != "" {
			fmt.Fprintln(a.out, msg)
			if a.prompt("Try again? (y/n) ") != "y" {
				return
			}
		}
	}
	fmt.Fprintf(a.out, "Welcome, %s. Your account is ready.\n", a.deps.Session.User().FullName)
}

func (a *App) forgotPasswordScreen(ctx context.Context) {
	fmt.Fprintln(a.out, "\nForgot password")
	reset := service.NewPasswordResetController(a.deps.Auth, a.log)

	reset.Request(ctx, a.prompt("Email: "))
	if msg := reset.Error(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}
	fmt.Fprintln(a.out, reset.Message())

	if a.prompt("Enter the reset token now? (y/n) ") != "y" {
		return
	}
	token := a.prompt("Reset token: ")
	password := a.prompt("New password: ")
	reset.Reset(ctx, token, password)
	if msg := reset.Error(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}
	fmt.Fprintln(a.out, reset.Message())
}
