package cli

import (
	"context"
	"fmt"

	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/format"
)

func (a *App) transferScreen(ctx context.Context) {
	// The security screen edits limits at runtime; hand the workflow the
	// live source, not the config snapshot.
	w := service.NewTransferWorkflow(a.deps.Accounts, a.deps.Transactions, a.security, a.log)
	if err := w.Load(ctx); err != nil {
		a.showError(err, "Failed to load account data.")
		return
	}

	for {
		switch w.Step() {
		case service.TransferStepForm:
			if !a.transferForm(ctx, w) {
				return
			}
		case service.TransferStepConfirm:
			if !a.transferConfirm(ctx, w) {
				return
			}
		case service.TransferStepSetPin:
			a.transferPinSetup(ctx, w)
		case service.TransferStepSuccess:
			fmt.Fprintf(a.out, "\nTransfer successful. Reference: %s\n", w.Reference())
			if acct := w.Account(); acct != nil {
				fmt.Fprintf(a.out, "New balance: %s\n", a.currency(acct.Balance))
			}
			if a.prompt("Make another transfer? (y/n) ") == "y" {
				w.Reset()
				continue
			}
			return
		case service.TransferStepError:
			fmt.Fprintf(a.out, "\nTransfer failed: %s\n", w.Failure())
			if a.prompt("Try again? (y/n) ") == "y" {
				w.Reset()
				continue
			}
			return
		}
	}
}

// transferForm runs the entry screen; false means the user backed out.
func (a *App) transferForm(ctx context.Context, w *service.TransferWorkflow) bool {
	acct := w.Account()
	fmt.Fprintln(a.out, "\nTransfer money")
	if acct != nil {
		fmt.Fprintf(a.out, "From %s (%s available)\n", format.MaskAccount(acct.Number), a.currency(acct.Balance))
	}

	for {
		receiver := a.prompt("Receiver account number (blank to go back): ")
		if receiver == "" {
			return false
		}
		w.SetReceiver(receiver)
		w.LookupReceiver(ctx)
		if w.Lookup() == service.LookupFound {
			fmt.Fprintf(a.out, "Receiver: %s\n", w.Holder().Name)
			break
		}
		if msg := w.FormError(); msg != "" {
			fmt.Fprintln(a.out, msg)
		} else {
			fmt.Fprintln(a.out, "Enter a valid 10-digit account number.")
		}
	}

	w.SetAmount(a.prompt("Amount: "))
	w.SetDescription(a.prompt("Description (optional): "))
	w.Proceed()
	if msg := w.FormError(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return true
}

// transferConfirm runs the review screen; false means the user backed
// out of the flow entirely.
func (a *App) transferConfirm(ctx context.Context, w *service.TransferWorkflow) bool {
	fmt.Fprintln(a.out, "\nConfirm transfer")
	fmt.Fprintf(a.out, "To:     %s (%s)\n", w.Holder().Name, w.Receiver())
	fmt.Fprintf(a.out, "Amount: %s\n", w.Amount())
	if w.Description() != "" {
		fmt.Fprintf(a.out, "Note:   %s\n", w.Description())
	}

	pin := a.prompt("Transaction PIN (blank to edit the transfer): ")
	if pin == "" {
		w.Back()
		return true
	}
	w.SetPIN(pin)
	w.Confirm(ctx)
	if msg := w.FormError(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return true
}

func (a *App) transferPinSetup(ctx context.Context, w *service.TransferWorkflow) {
	fmt.Fprintln(a.out, "\nYou need a transaction PIN before you can transfer.")
	a.security.StartPinChange()
	a.security.SetNewPin(a.prompt("Choose a 4-digit PIN: "))
	a.security.SetConfirmPin(a.prompt("Confirm PIN: "))
	a.security.SubmitPin(ctx)
	if msg := a.security.PinError(); msg != "" {
		fmt.Fprintln(a.out, msg)
		return
	}
	fmt.Fprintln(a.out, "PIN set. Back to your transfer.")
	w.ResumeAfterPinSetup()
}
