package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

// PromoRule identifies which timing alignment granted the promotional rate
type PromoRule string

const (
	PromoRuleNone         PromoRule = "NONE"
	PromoRuleFreshInvoice PromoRule = "FRESH_INVOICE"   // invoice up to 7 days old, cheque within 30 days of issue
	PromoRuleAlignedMid   PromoRule = "ALIGNED_8_15"    // invoice 8-15 days old, cheque dated at receipt (±1 day)
	PromoRuleAlignedLate  PromoRule = "ALIGNED_16_30"   // invoice 16-30 days old, cheque dated at receipt (±1 day)
)

// DefaultReachTolerance is the dollar tolerance used when checking whether
// the tendered instruments reach the net amount to pay.
var DefaultReachTolerance = decimal.NewFromInt(1)

// ChequePromo is the promotional discount computed for one cheque
type ChequePromo struct {
	InstrumentID uuid.UUID       `json:"instrument_id"`
	Rate         decimal.Decimal `json:"rate"`
	Amount       decimal.Decimal `json:"amount"` // always >= 0, applied as a reduction
	Rule         PromoRule       `json:"rule"`
}

// PromoInput carries the timing context for the promotion rules
type PromoInput struct {
	ReceiptDate    time.Time
	InvoiceAgeDays int // minimum days-used across the selected documents
}

// ReachesNetToPay reports whether the instruments' combined nominal value
// reaches the net target within the given tolerance. The promotion only
// applies to full discount-eligible settlements, and a near-miss inside
// the tolerance still counts as full.
func ReachesNetToPay(instruments []Instrument, netTarget, tolerance decimal.Decimal) bool {
	nominal := decimal.Zero
	for _, inst := range instruments {
		nominal = nominal.Add(inst.Nominal())
	}
	return nominal.GreaterThanOrEqual(netTarget.Sub(tolerance))
}

// PromoEligible gates the whole promotion engine: the aggregate document
// adjustment must be a discount, at least one cheque must be tendered, and
// the nominal total must reach the net target.
func PromoEligible(docAdjustmentSigned decimal.Decimal, instruments []Instrument, netTarget, tolerance decimal.Decimal) bool {
	if !docAdjustmentSigned.IsPositive() {
		return false
	}
	hasCheque := false
	for _, inst := range instruments {
		if inst.IsCheque() {
			hasCheque = true
			break
		}
	}
	if !hasCheque {
		return false
	}
	return ReachesNetToPay(instruments, netTarget, tolerance)
}

// ComputeChequePromo evaluates the promotional rate for one cheque.
//
// The invoice issue date is inferred by walking the receipt date back by
// the invoice age. Overdue documents clamp the age at zero so a document
// paid past due still qualifies under the fresh-invoice rule.
func ComputeChequePromo(inst Instrument, in PromoInput) ChequePromo {
	promo := ChequePromo{
		InstrumentID: inst.ID,
		Rate:         decimal.Zero,
		Amount:       decimal.Zero,
		Rule:         PromoRuleNone,
	}
	if !inst.IsCheque() {
		return promo
	}

	age := in.InvoiceAgeDays
	if age < 0 {
		age = 0
	}
	issueDate := AddDays(in.ReceiptDate, -age)
	chequeDate := inst.Cheque.ChequeDate

	switch {
	case age <= 7 && DaysBetween(issueDate, chequeDate) <= 30:
		promo.Rate = rateThirteen
		promo.Rule = PromoRuleFreshInvoice
	case age > 7 && age <= 15 && WithinDays(chequeDate, in.ReceiptDate, 1):
		promo.Rate = rateThirteen
		promo.Rule = PromoRuleAlignedMid
	case age > 15 && age <= 30 && WithinDays(chequeDate, in.ReceiptDate, 1):
		promo.Rate = rateTen
		promo.Rule = PromoRuleAlignedLate
	default:
		return promo
	}

	base := inst.Cheque.RawAmount
	if !base.IsPositive() {
		base = inst.Amount
	}
	promo.Amount = valueobject.Round2(base.Mul(promo.Rate))
	return promo
}

// ComputeChequePromos evaluates the promotion independently per cheque.
// The caller is responsible for gating with PromoEligible first.
func ComputeChequePromos(instruments []Instrument, in PromoInput) []ChequePromo {
	promos := make([]ChequePromo, 0, len(instruments))
	for _, inst := range instruments {
		if !inst.IsCheque() {
			continue
		}
		promos = append(promos, ComputeChequePromo(inst, in))
	}
	return promos
}

// InvoiceAgeDays returns the minimum days-used across the computed
// adjustments, the age of the freshest invoice in the selection.
func InvoiceAgeDays(adjustments []ComputedAdjustment) int {
	if len(adjustments) == 0 {
		return 0
	}
	minDays := adjustments[0].DaysUsed
	for _, adj := range adjustments[1:] {
		if adj.DaysUsed < minDays {
			minDays = adj.DaysUsed
		}
	}
	return minDays
}
