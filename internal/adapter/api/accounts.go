package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/pkg/apperror"
)

// AccountsClient implements ports.AccountAPI against the /accounts resource.
type AccountsClient struct {
	c *Client
}

func NewAccountsClient(c *Client) *AccountsClient {
	return &AccountsClient{c: c}
}

// List returns the signed-in user's accounts. The server may return a
// single account object instead of an array.
func (a *AccountsClient) List(ctx context.Context) ([]domain.Account, error) {
	var raw json.RawMessage
	if err := a.c.do(ctx, http.MethodGet, "/accounts", nil, &raw, "Failed to load account data."); err != nil {
		return nil, err
	}
	wires, err := oneOrMany[wireAccount](raw)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode accounts: %w", err))
	}
	accounts := make([]domain.Account, 0, len(wires))
	for _, w := range wires {
		accounts = append(accounts, w.toDomain())
	}
	return accounts, nil
}

func (a *AccountsClient) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	var w wireAccount
	if err := a.c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(accountID), nil, &w, "Failed to load account data."); err != nil {
		return nil, err
	}
	account := w.toDomain()
	return &account, nil
}

// Lookup resolves a receiver account number. A response without a holder
// name counts as not found.
func (a *AccountsClient) Lookup(ctx context.Context, accountNumber string) (*domain.AccountHolder, error) {
	var w wireHolder
	if err := a.c.do(ctx, http.MethodGet, "/accounts/lookup/"+url.PathEscape(accountNumber), nil, &w, "Account not found. Please check the number."); err != nil {
		return nil, err
	}
	holder := w.toDomain()
	if holder.Name == "" {
		return nil, nil
	}
	if holder.AccountNumber == "" {
		holder.AccountNumber = accountNumber
	}
	return &holder, nil
}
