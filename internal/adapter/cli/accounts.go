package cli

import (
	"context"
	"fmt"
	"strconv"

	"sfa-bank-client/internal/service"
	"sfa-bank-client/pkg/format"
)

func (a *App) accountsScreen(ctx context.Context) {
	accounts := service.NewAccountsService(a.deps.Accounts, a.deps.Transactions, a.log)
	if err := accounts.Refresh(ctx); err != nil {
		a.showError(err, "Failed to load account data.")
		return
	}

	list := accounts.Accounts()
	fmt.Fprintln(a.out, "\nYour accounts")
	for i, acct := range list {
		fmt.Fprintf(a.out, "%d) %s  %-8s %-10s %s\n",
			i+1, acct.Number, acct.Type,
			format.StatusBadge(string(acct.Status)), a.currency(acct.Balance))
	}

	choice := a.prompt("View transactions for (number, blank to go back): ")
	if choice == "" {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(list) {
		fmt.Fprintln(a.out, "Unknown account.")
		return
	}

	if err := accounts.Select(ctx, list[idx-1].ID); err != nil {
		a.showError(err, "Failed to load transactions.")
		return
	}

	history := accounts.History()
	if len(history) == 0 {
		fmt.Fprintln(a.out, "No transactions yet.")
		return
	}
	fmt.Fprintf(a.out, "\nTransactions for %s\n", format.MaskAccount(list[idx-1].Number))
	for _, tx := range history {
		fmt.Fprintf(a.out, "  %s  %-14s %s  %-10s %s  %s\n",
			format.TransactionIcon(string(tx.Type)), tx.Type,
			a.currency(tx.Amount), format.StatusBadge(string(tx.Status)),
			format.Date(tx.CreatedAt), tx.Reference)
	}
}
