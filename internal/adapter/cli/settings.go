package cli

import (
	"context"
	"fmt"
)

func (a *App) settingsScreen(_ context.Context) {
	for {
		profile := a.settings.Profile()
		fmt.Fprintln(a.out, "\nSettings")
		fmt.Fprintf(a.out, "Name:  %s\n", profile.FullName)
		fmt.Fprintf(a.out, "Email: %s\n", profile.Email)
		fmt.Fprintf(a.out, "Phone: %s\n", profile.PhoneNumber)
		fmt.Fprintln(a.out, "1) Edit profile")
		fmt.Fprintln(a.out, "2) Change password")
		fmt.Fprintln(a.out, "3) Notifications")
		fmt.Fprintln(a.out, "b) Back")

		switch a.prompt("> ") {
		case "1":
			fullName := a.prompt("Full name: ")
			phone := a.prompt("Phone number (blank to keep current): ")
			a.settings.UpdateProfile(fullName, phone)
			if msg := a.settings.Error(); msg != "" {
				fmt.Fprintln(a.out, msg)
			} else {
				fmt.Fprintln(a.out, a.settings.Message())
			}
		case "2":
			current := a.prompt("Current password: ")
			next := a.prompt("New password: ")
			confirm := a.prompt("Confirm new password: ")
			a.settings.ChangePassword(current, next, confirm)
			if msg := a.settings.Error(); msg != "" {
				fmt.Fprintln(a.out, msg)
			} else {
				fmt.Fprintln(a.out, a.settings.Message())
			}
		case "3":
			prefs := a.settings.Prefs()
			prefs.Email = a.prompt("Email notifications? (y/n) ") == "y"
			prefs.SMS = a.prompt("SMS notifications? (y/n) ") == "y"
			prefs.LoginAlerts = a.prompt("Login alerts? (y/n) ") == "y"
			prefs.LargeDebits = a.prompt("Large debit alerts? (y/n) ") == "y"
			a.settings.SetPrefs(prefs)
			fmt.Fprintln(a.out, a.settings.Message())
		default:
			return
		}
	}
}
