package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

// ARS is the Argentine Peso, the currency every settlement is computed in
const ARS Currency = "ARS"

// DefaultCurrency is the default currency for the system
const DefaultCurrency = ARS

// Money pairs a decimal amount with its currency. It is immutable and
// lives at the presentation edge; the engine itself computes on bare
// decimals and only attaches the currency when amounts leave the system.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a new Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{
		amount:   amount,
		currency: currency,
	}, nil
}

// NewMoneyARS creates Money in ARS (Argentine Peso)
func NewMoneyARS(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: ARS}
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// String returns the amount at cents precision with the currency code
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// Round2 rounds a decimal to 2 places, ties away from zero. This is the
// policy applied at every money-producing step of the settlement engine.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Round4 rounds a decimal to 4 places, ties away from zero.
// Used for rates and daily interest factors, never for money amounts.
func Round4(d decimal.Decimal) decimal.Decimal {
	return d.Round(4)
}
