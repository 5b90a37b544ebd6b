package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "₦"

// Currency renders an amount with the default symbol, thousands grouping
// and exactly two decimal places, e.g. "₦100,000.00".
func Currency(amount decimal.Decimal) string {
	return CurrencyWith(DefaultSymbol, amount)
}

// CurrencyWith renders an amount with the given currency symbol.
func CurrencyWith(symbol string, amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	b.WriteString(group(intPart))
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// group inserts a comma every three digits, right to left.
func group(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	rem := n % 3
	if rem > 0 {
		b.WriteString(digits[:rem])
	}
	for i := rem; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Date renders a medium date with a short time, e.g. "Jan 2, 2006 3:04 PM".
func Date(t time.Time) string {
	return t.Format("Jan 2, 2006 3:04 PM")
}

// MaskAccount hides all but the last four digits of an account number.
func MaskAccount(accountNumber string) string {
	if accountNumber == "" {
		return ""
	}
	if len(accountNumber) <= 4 {
		return "****" + accountNumber
	}
	return "****" + accountNumber[len(accountNumber)-4:]
}

// StatusBadge maps a transaction or account status to a badge style.
// Unknown statuses fall back to "secondary".
func StatusBadge(status string) string {
	switch strings.ToLower(status) {
	case "successful", "active":
		return "success"
	case "pending":
		return "warning"
	case "failed":
		return "danger"
	case "frozen":
		return "info"
	case "closed":
		return "secondary"
	default:
		return "secondary"
	}
}

// TransactionIcon maps a transaction type to its display icon.
// Unknown types fall back to "bi-circle".
func TransactionIcon(transactionType string) string {
	switch strings.ToLower(transactionType) {
	case "transfer":
		return "bi-arrow-left-right"
	case "deposit":
		return "bi-arrow-down-circle"
	case "withdrawal":
		return "bi-arrow-up-circle"
	case "bill_payment":
		return "bi-receipt"
	default:
		return "bi-circle"
	}
}
