package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

// DefaultGraceDays is the number of days a post-dated cheque can run
// before financial cost starts accruing, unless configured otherwise.
const DefaultGraceDays = 45

// BlockedGraceDays is the grace period used when interest is globally
// blocked. Large enough that no realistic cheque ever accrues cost.
const BlockedGraceDays = 100000

// ChequeCost is the financial cost breakdown of one post-dated cheque
type ChequeCost struct {
	InstrumentID    uuid.UUID       `json:"instrument_id"`
	DaysTotal       int             `json:"days_total"`   // receipt date to collection date
	DaysCharged     int             `json:"days_charged"` // chargeable days past the grace period
	DailyRate       decimal.Decimal `json:"daily_rate"`
	InterestPct     decimal.Decimal `json:"interest_pct"` // daily rate * days charged
	InterestAmount  decimal.Decimal `json:"interest_amount"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	InterestBlocked bool            `json:"interest_blocked"`
}

// ChequeCostInput carries the per-payment context for cheque costing
type ChequeCostInput struct {
	ReceiptDate       time.Time
	DefaultGraceDays  int
	AnnualInterestPct decimal.Decimal
	// BlockInterest forces the financial cost to zero; set when any
	// selected document is in a no-discount condition. The operator's
	// face value is then trusted as-is.
	BlockInterest bool
}

// NormalizeAnnualPct defends against callers passing a daily fraction
// where an annual percentage is expected. A value strictly between 0 and 1
// is scaled back to its annual percentage equivalent.
func NormalizeAnnualPct(pct decimal.Decimal) decimal.Decimal {
	if pct.IsPositive() && pct.LessThan(decimal.NewFromInt(1)) {
		return pct.Mul(daysInYear).Mul(hundred)
	}
	return pct
}

// DailyRate converts an annual percentage into a daily fraction
func DailyRate(annualPct decimal.Decimal) decimal.Decimal {
	return NormalizeAnnualPct(annualPct).Div(hundred).Div(daysInYear)
}

// ComputeChequeCost computes the financial cost of one cheque instrument.
// A single day-count convention is used everywhere: calendar days from
// receipt to collection, no inclusive extra day. Non-cheque instruments
// carry no financial cost and pass their amount through unchanged.
func ComputeChequeCost(inst Instrument, in ChequeCostInput) ChequeCost {
	cost := ChequeCost{
		InstrumentID: inst.ID,
		DailyRate:    DailyRate(in.AnnualInterestPct),
		NetAmount:    inst.Amount,
	}
	if !inst.IsCheque() {
		return cost
	}

	raw := inst.Cheque.RawAmount
	cost.NetAmount = raw

	daysTotal := DaysBetween(in.ReceiptDate, inst.Cheque.ChequeDate)
	if daysTotal < 0 {
		daysTotal = 0
	}
	cost.DaysTotal = daysTotal

	if in.BlockInterest {
		cost.InterestBlocked = true
		return cost
	}

	grace := inst.EffectiveGraceDays(in.DefaultGraceDays)
	daysCharged := daysTotal - grace
	if daysCharged < 0 {
		daysCharged = 0
	}
	cost.DaysCharged = daysCharged

	cost.InterestPct = cost.DailyRate.Mul(decimal.NewFromInt(int64(daysCharged)))
	cost.InterestAmount = valueobject.Round2(raw.Mul(cost.InterestPct))

	net := raw.Sub(cost.InterestAmount)
	if net.IsNegative() {
		net = decimal.Zero
	}
	cost.NetAmount = net
	return cost
}

// ComputeChequeCosts runs the cost calculation for every cheque in the
// instrument list, preserving order. Non-cheque legs are skipped.
func ComputeChequeCosts(instruments []Instrument, in ChequeCostInput) []ChequeCost {
	costs := make([]ChequeCost, 0, len(instruments))
	for _, inst := range instruments {
		if !inst.IsCheque() {
			continue
		}
		costs = append(costs, ComputeChequeCost(inst, in))
	}
	return costs
}
