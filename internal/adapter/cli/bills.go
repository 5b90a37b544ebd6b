package cli

import (
	"context"
	"fmt"
	"strconv"

	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/format"
)

func (a *App) billsScreen(ctx context.Context) {
	w := service.NewBillPaymentWorkflow(a.deps.Accounts, a.deps.Payments, a.log)
	if err := w.Load(ctx); err != nil {
		a.showError(err, "Failed to load biller data.")
		return
	}

	for {
		switch w.Step() {
		case service.PaymentStepForm:
			if !a.billForm(ctx, w) {
				return
			}
		case service.PaymentStepConfirm:
			if !a.billConfirm(ctx, w) {
				return
			}
		case service.PaymentStepSuccess:
			fmt.Fprintf(a.out, "\nPayment successful. Reference: %s\n", w.Receipt().Reference)
			a.billHistory(w)
			if a.prompt("Pay another bill? (y/n) ") == "y" {
				w.Reset()
				continue
			}
			return
		case service.PaymentStepError:
			fmt.Fprintf(a.out, "\nPayment failed: %s\n", w.Failure())
			if a.prompt("Try again? (y/n) ") == "y" {
				w.Reset()
				continue
			}
			return
		}
	}
}

func (a *App) billForm(ctx context.Context, w *service.BillPaymentWorkflow) bool {
	fmt.Fprintln(a.out, "\nPay bills")
	categories := w.Categories()
	for i, cat := range categories {
		fmt.Fprintf(a.out, "%d) %s\n", i+1, cat.Label)
	}

	choice := a.prompt("Category (number, blank to go back): ")
	if choice == "" {
		return false
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(categories) {
		fmt.Fprintln(a.out, "Please select a biller.")
		return true
	}
	if err := w.SelectCategory(ctx, categories[idx-1].ID); err != nil {
		a.showError(err, "Failed to load billers.")
		return true
	}

	billers := w.Billers()
	for i, b := range billers {
		fmt.Fprintf(a.out, "%d) %s\n", i+1, b.Name)
	}
	choice = a.prompt("Biller (number): ")
	if idx, err := strconv.Atoi(choice); err == nil && idx >= 1 && idx <= len(billers) {
		w.SelectBiller(billers[idx-1].ID)
	}

	w.SetCustomerReference(a.prompt("Customer/meter/phone reference: "))
	w.SetAmount(a.prompt("Amount: "))
	w.Proceed()
	if msg := w.FormError(); msg != "" {
		fmt.Fprintln(a.out, msg)
	}
	return true
}

func (a *App) billConfirm(ctx context.Context, w *service.BillPaymentWorkflow) bool {
	fmt.Fprintln(a.out, "\nConfirm payment")
	fmt.Fprintf(a.out, "Biller:    %s\n", w.Biller().Name)
	fmt.Fprintf(a.out, "Reference: %s\n", w.CustomerReference())
	fmt.Fprintf(a.out, "Amount:    %s\n", w.Amount())

	switch a.prompt("Proceed? (y/n) ") {
	case "y":
		w.Confirm(ctx)
	case "n":
		w.Back()
	default:
		return false
	}
	return true
}

func (a *App) billHistory(w *service.BillPaymentWorkflow) {
	history := w.History()
	if len(history) == 0 {
		return
	}
	fmt.Fprintln(a.out, "\nRecent payments")
	for _, p := range history {
		fmt.Fprintf(a.out, "  %-20s %s  %-10s %s\n",
			p.BillerName, a.currency(p.Amount),
			format.StatusBadge(string(p.Status)), format.Date(p.CreatedAt))
	}
}
