package settlement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType represents how the customer settles the selected documents
type PaymentType string

const (
	PaymentTypeAdvance     PaymentType = "ADVANCE"      // paid before delivery, no timing rule applies
	PaymentTypeOpenAccount PaymentType = "OPEN_ACCOUNT" // settled against outstanding invoices
)

// IsValid checks if the payment type is valid
func (p PaymentType) IsValid() bool {
	return p == PaymentTypeAdvance || p == PaymentTypeOpenAccount
}

// String returns the string representation of PaymentType
func (p PaymentType) String() string {
	return string(p)
}

// Document is an outstanding invoice balance eligible for payment.
// It is created by the order/billing collaborator and consumed read-only
// by the settlement engine.
type Document struct {
	ID           uuid.UUID       `json:"id"`
	Number       string          `json:"number"`
	Base         decimal.Decimal `json:"base"`                    // amount owed before adjustment
	Condition    string          `json:"condition"`               // payment condition text from billing
	DueDate      *time.Time      `json:"due_date,omitempty"`      // used when no explicit day count is given
	DaysOverride *int            `json:"days_override,omitempty"` // explicit day count, takes precedence over DueDate
}

// DaysUntilDue resolves the day estimate for the document relative to the
// receipt date. An explicit override always wins over the date difference.
// ok is false when neither source is available; the adjustment calculator
// degrades to a neutral rate in that case rather than failing.
func (d Document) DaysUntilDue(receiptDate time.Time) (days int, ok bool) {
	if d.DaysOverride != nil {
		return *d.DaysOverride, true
	}
	if d.DueDate != nil {
		return DaysBetween(receiptDate, *d.DueDate), true
	}
	return 0, false
}

// Payment condition texts arrive free-form from the billing system, in
// whatever casing the operator typed. Matching is case-insensitive and
// substring based, mirroring how the condition codes are entered upstream.

var noDiscountConditions = []string{
	"lista",            // per price list
	"cuenta corriente", // open account
}

// IsNoDiscountCondition reports whether the condition blocks every
// discount and suppresses cheque interest. Unspecified conditions block
// as well: an unclassified document must never receive a discount.
func IsNoDiscountCondition(condition string) bool {
	c := strings.ToLower(strings.TrimSpace(condition))
	if c == "" {
		return true
	}
	for _, nc := range noDiscountConditions {
		if strings.Contains(c, nc) {
			return true
		}
	}
	return false
}

// IsPromoCondition reports whether the condition text carries the reduced
// 15%/13% promotional schedule, which replaces the 20% early-payment rate.
func IsPromoCondition(condition string) bool {
	c := strings.ToLower(condition)
	return strings.Contains(c, "15%") && strings.Contains(c, "13%")
}
