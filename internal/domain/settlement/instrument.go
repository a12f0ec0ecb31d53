package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method represents the kind of payment leg
type Method string

const (
	MethodCash     Method = "CASH"
	MethodTransfer Method = "TRANSFER"
	MethodCheque   Method = "CHEQUE"
)

// IsValid checks if the method is a valid Method
func (m Method) IsValid() bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCheque:
		return true
	}
	return false
}

// String returns the string representation of Method
func (m Method) String() string {
	return string(m)
}

// ReasonRefinancing marks instruments generated by the refinancing plan.
// The literal is matched exactly by the totals aggregator, so it must not
// be translated or re-cased.
const ReasonRefinancing = "refinanciación"

// ChequeDetails holds the fields that only exist on cheque instruments.
// A nil ChequeDetails on an Instrument means the leg is cash or transfer.
type ChequeDetails struct {
	RawAmount         decimal.Decimal `json:"raw_amount"` // face value before financial cost
	ChequeNumber      string          `json:"cheque_number"`
	Bank              string          `json:"bank"`
	ChequeDate        time.Time       `json:"cheque_date"` // expected collection date
	OverrideGraceDays *int            `json:"override_grace_days,omitempty"`
	FinancialCost     decimal.Decimal `json:"cf"` // raw - net, set by the refinancing generator
}

// Instrument is one tendered payment leg. Cheque-only fields live in the
// Cheque variant so a cash or transfer leg cannot carry them by accident.
type Instrument struct {
	ID     uuid.UUID       `json:"id"`
	Method Method          `json:"method"`
	Amount decimal.Decimal `json:"amount"` // amount tendered; for cheques the collected net lives in the cost breakdown
	Bank   string          `json:"bank,omitempty"`
	Reason string          `json:"reason,omitempty"`
	Cheque *ChequeDetails  `json:"cheque,omitempty"`
}

// NewCashInstrument creates a cash payment leg
func NewCashInstrument(amount decimal.Decimal) Instrument {
	return Instrument{
		ID:     uuid.New(),
		Method: MethodCash,
		Amount: amount,
	}
}

// NewTransferInstrument creates a bank transfer payment leg
func NewTransferInstrument(amount decimal.Decimal, bank string) Instrument {
	return Instrument{
		ID:     uuid.New(),
		Method: MethodTransfer,
		Amount: amount,
		Bank:   bank,
	}
}

// NewChequeInstrument creates a post-dated cheque payment leg. Amount
// holds the face value as entered; the collected net comes from the cost
// breakdown and is what the totals aggregator counts.
func NewChequeInstrument(rawAmount decimal.Decimal, chequeNumber, bank string, chequeDate time.Time) Instrument {
	return Instrument{
		ID:     uuid.New(),
		Method: MethodCheque,
		Amount: rawAmount,
		Bank:   bank,
		Cheque: &ChequeDetails{
			RawAmount:    rawAmount,
			ChequeNumber: chequeNumber,
			Bank:         bank,
			ChequeDate:   StartOfDay(chequeDate),
		},
	}
}

// IsCheque returns true if the instrument is a cheque leg
func (i Instrument) IsCheque() bool {
	return i.Method == MethodCheque && i.Cheque != nil
}

// IsRefinancing returns true if the instrument was produced by a
// refinancing plan
func (i Instrument) IsRefinancing() bool {
	return i.Reason == ReasonRefinancing
}

// Nominal returns the face value of the leg: the raw amount for cheques
// when present, the net amount otherwise.
func (i Instrument) Nominal() decimal.Decimal {
	if i.IsCheque() && i.Cheque.RawAmount.IsPositive() {
		return i.Cheque.RawAmount
	}
	return i.Amount
}

// EffectiveGraceDays resolves the grace period for a cheque. The
// per-instrument override only applies to refinancing cheques; every
// other cheque uses the global setting.
func (i Instrument) EffectiveGraceDays(defaultGraceDays int) int {
	if i.IsRefinancing() && i.Cheque != nil && i.Cheque.OverrideGraceDays != nil {
		return *i.Cheque.OverrideGraceDays
	}
	return defaultGraceDays
}
