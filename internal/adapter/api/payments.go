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

// PaymentsClient implements ports.PaymentAPI against the /payments and
// /billers resources.
type PaymentsClient struct {
	c *Client
}

func NewPaymentsClient(c *Client) *PaymentsClient {
	return &PaymentsClient{c: c}
}

type paymentBody struct {
	BillerID          string          `json:"billerId"`
	BillerCode        string          `json:"billerCode"`
	CustomerReference string          `json:"customerReference"`
	Amount            decimal.Decimal `json:"amount"`
}

func (p *PaymentsClient) Pay(ctx context.Context, req ports.PaymentRequest) (*domain.PaymentReceipt, error) {
	body := paymentBody{
		BillerID:          req.BillerID,
		BillerCode:        req.BillerCode,
		CustomerReference: req.CustomerReference,
		Amount:            req.Amount,
	}
	var w wirePaymentResult
	if err := p.c.do(ctx, http.MethodPost, "/payments", body, &w, "Payment failed. Please try again."); err != nil {
		return nil, err
	}
	receipt := w.toDomain()
	return &receipt, nil
}

func (p *PaymentsClient) History(ctx context.Context) ([]domain.Payment, error) {
	var raw json.RawMessage
	if err := p.c.do(ctx, http.MethodGet, "/payments", nil, &raw, "Failed to load payment history."); err != nil {
		return nil, err
	}
	wires, err := oneOrMany[wirePayment](raw)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("decode payments: %w", err))
	}
	payments := make([]domain.Payment, 0, len(wires))
	for _, w := range wires {
		payments = append(payments, w.toDomain())
	}
	return payments, nil
}

func (p *PaymentsClient) Categories(ctx context.Context) ([]domain.BillerCategory, error) {
	var wires []wireCategory
	if err := p.c.do(ctx, http.MethodGet, "/billers/categories", nil, &wires, "Failed to load biller categories."); err != nil {
		return nil, err
	}
	categories := make([]domain.BillerCategory, 0, len(wires))
	for _, w := range wires {
		categories = append(categories, w.toDomain())
	}
	return categories, nil
}

func (p *PaymentsClient) Billers(ctx context.Context, categoryID string) ([]domain.Biller, error) {
	var wires []wireBiller
	if err := p.c.do(ctx, http.MethodGet, "/billers/"+url.PathEscape(categoryID), nil, &wires, "Failed to load billers."); err != nil {
		return nil, err
	}
	billers := make([]domain.Biller, 0, len(wires))
	for _, w := range wires {
		billers = append(billers, w.toDomain())
	}
	return billers, nil
}
