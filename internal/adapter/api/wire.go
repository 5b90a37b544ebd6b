package api

import (
	"time"

	"sfa-bank-client/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Wire types are the single deserialization boundary: the server mixes
// camelCase and snake_case field names, so every alias is declared here
// and coalesced in toDomain. Wire names must not leak past this file.

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type wireUser struct {
	ID            string `json:"id"`
	MongoID       string `json:"_id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	FullName      string `json:"fullName"`
	FullNameSnake string `json:"full_name"`
	PhoneNumber   string `json:"phoneNumber"`
	PhoneNumSnake string `json:"phone_number"`
}

func (w wireUser) toDomain() domain.User {
	return domain.User{
		ID:          first(w.ID, w.MongoID),
		Username:    w.Username,
		Email:       w.Email,
		FullName:    first(w.FullName, w.FullNameSnake),
		PhoneNumber: first(w.PhoneNumber, w.PhoneNumSnake),
	}
}

type wireAccount struct {
	ID             string          `json:"id"`
	MongoID        string          `json:"_id"`
	Number         string          `json:"accountNumber"`
	NumberSnake    string          `json:"account_number"`
	Type           string          `json:"accountType"`
	TypeSnake      string          `json:"account_type"`
	Balance        decimal.Decimal `json:"balance"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"createdAt"`
	CreatedAtSnake string          `json:"created_at"`
}

func (w wireAccount) toDomain() domain.Account {
	return domain.Account{
		ID:        first(w.ID, w.MongoID),
		Number:    first(w.Number, w.NumberSnake),
		Type:      first(w.Type, w.TypeSnake),
		Balance:   w.Balance,
		Status:    domain.AccountStatus(w.Status),
		CreatedAt: parseTime(first(w.CreatedAt, w.CreatedAtSnake)),
	}
}

type wireHolder struct {
	AccountNumber string `json:"accountNumber"`
	NumberSnake   string `json:"account_number"`
	AccountName   string `json:"accountName"`
	NameSnake     string `json:"account_name"`
	FullName      string `json:"fullName"`
	FullNameSnake string `json:"full_name"`
}

func (w wireHolder) toDomain() domain.AccountHolder {
	return domain.AccountHolder{
		AccountNumber: first(w.AccountNumber, w.NumberSnake),
		Name:          first(w.AccountName, w.NameSnake, w.FullName, w.FullNameSnake),
	}
}

type wireTransaction struct {
	ID              string          `json:"id"`
	MongoID         string          `json:"_id"`
	Type            string          `json:"transactionType"`
	TypeSnake       string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	RefNumberSnake  string          `json:"reference_number"`
	Reference       string          `json:"reference"`
	ReceiverAccount string          `json:"receiverAccount"`
	ReceiverSnake   string          `json:"receiver_account"`
	CreatedAt       string          `json:"createdAt"`
	CreatedAtSnake  string          `json:"created_at"`
}

func (w wireTransaction) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:              first(w.ID, w.MongoID),
		Type:            domain.TransactionType(first(w.Type, w.TypeSnake)),
		Amount:          w.Amount,
		Status:          domain.TransactionStatus(w.Status),
		Description:     w.Description,
		Reference:       first(w.ReferenceNumber, w.RefNumberSnake, w.Reference),
		ReceiverAccount: first(w.ReceiverAccount, w.ReceiverSnake),
		CreatedAt:       parseTime(first(w.CreatedAt, w.CreatedAtSnake)),
	}
}

type wireTransferResult struct {
	ReferenceNumber string       `json:"referenceNumber"`
	RefNumberSnake  string       `json:"reference_number"`
	Reference       string       `json:"reference"`
	Status          string       `json:"status"`
	Sender          *wireAccount `json:"sender"`
}

func (w wireTransferResult) toDomain() domain.TransferReceipt {
	receipt := domain.TransferReceipt{
		Reference: first(w.ReferenceNumber, w.RefNumberSnake, w.Reference),
		Status:    domain.TransactionStatus(w.Status),
	}
	if w.Sender != nil {
		balance := w.Sender.Balance
		receipt.SenderBalance = &balance
	}
	return receipt
}

type wirePayment struct {
	ID              string          `json:"id"`
	MongoID         string          `json:"_id"`
	BillerName      string          `json:"billerName"`
	BillerNameSnake string          `json:"biller_name"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
	Reference       string          `json:"reference"`
	ReferenceNumber string          `json:"referenceNumber"`
	RefNumberSnake  string          `json:"reference_number"`
	CreatedAt       string          `json:"createdAt"`
	CreatedAtSnake  string          `json:"created_at"`
}

func (w wirePayment) toDomain() domain.Payment {
	return domain.Payment{
		ID:         first(w.ID, w.MongoID),
		BillerName: first(w.BillerName, w.BillerNameSnake),
		Amount:     w.Amount,
		Status:     domain.TransactionStatus(w.Status),
		Reference:  first(w.Reference, w.ReferenceNumber, w.RefNumberSnake),
		CreatedAt:  parseTime(first(w.CreatedAt, w.CreatedAtSnake)),
	}
}

type wirePaymentResult struct {
	Reference       string `json:"reference"`
	ReferenceNumber string `json:"referenceNumber"`
	RefNumberSnake  string `json:"reference_number"`
	Status          string `json:"status"`
}

func (w wirePaymentResult) toDomain() domain.PaymentReceipt {
	return domain.PaymentReceipt{
		Reference: first(w.Reference, w.ReferenceNumber, w.RefNumberSnake),
		Status:    domain.TransactionStatus(w.Status),
	}
}

type wireCategory struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
}

func (w wireCategory) toDomain() domain.BillerCategory {
	return domain.BillerCategory{
		ID:    w.ID,
		Label: first(w.Label, w.Name),
	}
}

type wireBiller struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (w wireBiller) toDomain() domain.Biller {
	return domain.Biller{ID: w.ID, Name: w.Name, Code: w.Code}
}

type wireAuthResult struct {
	User  wireUser `json:"user"`
	Token string   `json:"token"`
}
