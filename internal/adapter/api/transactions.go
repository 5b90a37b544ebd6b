package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"sfa-bank-client/internal/core/domain"
	"sfa-bank-client/internal/core/ports"
	"sfa-bank-client/pkg/apperror"

	"github.com/shopspring/decimal"
)

// TransactionsClient implements ports.TransactionAPI against the
// /transactions and /transfers resources.
type TransactionsClient struct {
	c *Client
}

func NewTransactionsClient(c *Client) *TransactionsClient {
	return &TransactionsClient{c: c}
}

func (t *TransactionsClient) List(ctx context.Context) ([]domain.Transaction, error) {
	return t.fetch(ctx, "/transactions")
}

func (t *TransactionsClient) ForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return t.fetch(ctx, "/accounts/"+url.PathEscape(accountID)+"/transactions")
}

func (t *TransactionsClient) fetch(ctx context.Context, path string) ([]domain.Transaction, error) {
	var raw json.RawMessage
	if err := t.c.do(ctx, http.MethodGet, path, nil, &raw, "Failed to load transactions."); err != nil {
		return nil, err
	}
	wires, err := oneOrMany[wireTransaction](raw)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode transactions: %w", err))
	}
	txs := make([]domain.Transaction, 0, len(wires))
	for _, w := range wires {
		txs = append(txs, w.toDomain())
	}
	return txs, nil
}

type transferBody struct {
	SenderAccount   string          `json:"senderAccount"`
	ReceiverAccount string          `json:"receiverAccount"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	PIN             string          `json:"pin"`
}

func (t *TransactionsClient) Transfer(ctx context.Context, req ports.TransferRequest) (*domain.TransferReceipt, error) {
	body := transferBody{
		SenderAccount:   req.SenderAccount,
		ReceiverAccount: req.ReceiverAccount,
		Amount:          req.Amount,
		Description:     req.Description,
		PIN:             req.PIN,
	}
	var w wireTransferResult
	if err := t.c.do(ctx, http.MethodPost, "/transfers", body, &w, "Transfer failed. Please try again."); err != nil {
		return nil, err
	}
	receipt := w.toDomain()
	return &receipt, nil
}

func (t *TransactionsClient) Status(ctx context.Context, reference string) (*domain.TransferReceipt, error) {
	var w wireTransferResult
	if err := t.c.do(ctx, http.MethodGet, "/transfers/"+url.PathEscape(reference), nil, &w, "Failed to load transfer status."); err != nil {
		return nil, err
	}
	receipt := w.toDomain()
	return &receipt, nil
}
