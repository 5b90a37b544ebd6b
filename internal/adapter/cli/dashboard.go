package cli

import (
	"context"
	"fmt"

	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/format"
)

func (a *App) dashboardScreen(ctx context.Context) {
	dash := service.NewDashboardService(a.deps.Accounts, a.deps.Transactions, a.log)
	if err := dash.Refresh(ctx); err != nil {
		a.showError(err, "Failed to load account data.")
		return
	}

	sum := dash.Summary()
	fmt.Fprintln(a.out, "\nDashboard")
	fmt.Fprintf(a.out, "Total balance: %s\n", a.currency(sum.TotalBalance))
	fmt.Fprintf(a.out, "Money in:      %s\n", a.currency(sum.MoneyIn))
	fmt.Fprintf(a.out, "Money out:     %s\n", a.currency(sum.MoneyOut))
	fmt.Fprintf(a.out, "Pending:       %d\n", sum.PendingCount)

	fmt.Fprintln(a.out, "\nAccounts")
	for _, acct := range dash.Accounts() {
		fmt.Fprintf(a.out, "  %s  %-8s %-10s %s\n",
			format.MaskAccount(acct.Number), acct.Type,
			format.StatusBadge(string(acct.Status)), a.currency(acct.Balance))
	}

	recent := dash.Recent()
	if len(recent) == 0 {
		fmt.Fprintln(a.out, "\nNo recent activity.")
		return
	}
	fmt.Fprintln(a.out, "\nRecent activity")
	for _, tx := range recent {
		sign := "-"
		if tx.IsCredit() {
			sign = "+"
		}
		fmt.Fprintf(a.out, "  %s  %-14s %s%s  %-10s %s\n",
			format.TransactionIcon(string(tx.Type)), tx.Type,
			sign, a.currency(tx.Amount),
			format.StatusBadge(string(tx.Status)), format.Date(tx.CreatedAt))
	}
}
