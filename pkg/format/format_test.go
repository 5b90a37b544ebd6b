package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{"hundred thousand", decimal.NewFromInt(100000), "₦100,000.00"},
		{"zero", decimal.Zero, "₦0.00"},
		{"under a thousand", decimal.NewFromInt(999), "₦999.00"},
		{"exactly a thousand", decimal.NewFromInt(1000), "₦1,000.00"},
		{"million with kobo", decimal.NewFromFloat(1234567.89), "₦1,234,567.89"},
		{"rounds to two places", decimal.NewFromFloat(10.005), "₦10.01"},
		{"negative", decimal.NewFromInt(-4500), "-₦4,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Currency(tt.amount))
		})
	}
}

func TestCurrencyWith(t *testing.T) {
	assert.Equal(t, "$2,500.50", CurrencyWith("$", decimal.NewFromFloat(2500.5)))
}

func TestDate(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "Mar 5, 2024 2:30 PM", Date(ts))
}

func TestMaskAccount(t *testing.T) {
	assert.Equal(t, "****6789", MaskAccount("0123456789"))
	assert.Equal(t, "****123", MaskAccount("123"))
	assert.Equal(t, "", MaskAccount(""))
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{"successful", "success"},
		{"SUCCESSFUL", "success"},
		{"active", "success"},
		{"pending", "warning"},
		{"failed", "danger"},
		{"frozen", "info"},
		{"closed", "secondary"},
		{"whatever", "secondary"},
		{"", "secondary"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StatusBadge(tt.status), "status %q", tt.status)
	}
}

func TestTransactionIcon(t *testing.T) {
	tests := []struct {
		txType   string
		expected string
	}{
		{"transfer", "bi-arrow-left-right"},
		{"deposit", "bi-arrow-down-circle"},
		{"withdrawal", "bi-arrow-up-circle"},
		{"bill_payment", "bi-receipt"},
		{"unknown_type", "bi-circle"},
		{"", "bi-circle"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, TransactionIcon(tt.txType), "type %q", tt.txType)
	}
}
