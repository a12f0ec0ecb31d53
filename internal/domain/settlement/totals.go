package settlement

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

// BalanceCase enumerates the four ways the balance of a payment is
// resolved. The cases are not reducible to one formula: a discount being
// passed through to cash legs, a surcharge spread over all legs, and a
// refinancing that always targets the full gross each reconcile
// differently for partial payments.
type BalanceCase string

const (
	// BalanceCaseRefinancing: any instrument carries the refinancing
	// reason; the discount base is always the full gross.
	BalanceCaseRefinancing BalanceCase = "REFINANCING"
	// BalanceCasePromoDiscount: aggregate discount, cheques present and
	// the nominal total reaches the net target; the cheque promotion
	// applies on top of the document discount.
	BalanceCasePromoDiscount BalanceCase = "PROMO_DISCOUNT"
	// BalanceCaseChequesNoPromo: cheques present but either no aggregate
	// discount or the target is not reached; balance comes from nominal
	// minus interest with no promotion.
	BalanceCaseChequesNoPromo BalanceCase = "CHEQUES_NO_PROMO"
	// BalanceCaseCashTransferOnly: no cheques at all; a simple shortfall
	// against the net target.
	BalanceCaseCashTransferOnly BalanceCase = "CASH_TRANSFER_ONLY"
)

// IsValid checks if the balance case is valid
func (c BalanceCase) IsValid() bool {
	switch c {
	case BalanceCaseRefinancing, BalanceCasePromoDiscount,
		BalanceCaseChequesNoPromo, BalanceCaseCashTransferOnly:
		return true
	}
	return false
}

// String returns the string representation of BalanceCase
func (c BalanceCase) String() string {
	return string(c)
}

// Totals is the single reconciled settlement record. Field names and signs
// are read positionally by the accounting export and the receipt builder
// and must not change.
type Totals struct {
	Gross                   decimal.Decimal `json:"gross"`
	Discount                decimal.Decimal `json:"discount"` // signed: + discount, - surcharge
	Net                     decimal.Decimal `json:"net"`
	Values                  decimal.Decimal `json:"values"`     // sum of instrument nets; cheque nets come from the cost breakdown
	ValuesRaw               decimal.Decimal `json:"values_raw"` // sum of nominal (face) values
	ChequeInterest          decimal.Decimal `json:"cheque_interest"`
	DiscountAppliedToValues decimal.Decimal `json:"discount_applied_to_values"`
	NetToApply              decimal.Decimal `json:"net_to_apply"`
	Diff                    decimal.Decimal `json:"diff"` // gross - net_to_apply; zero settles fully
	ChequePromo             decimal.Decimal `json:"cheque_promo"`
	Case                    BalanceCase     `json:"balance_case"`
}

// IsSettled returns true when the payment fully settles the selected
// documents. Any non-zero diff must be explicitly accepted as a partial
// payment or resolved via refinancing.
func (t Totals) IsSettled() bool {
	return t.Diff.IsZero()
}

// AggregationInput bundles everything the aggregator combines
type AggregationInput struct {
	Adjustments    []ComputedAdjustment
	Instruments    []Instrument
	ChequeCosts    []ChequeCost
	Promos         []ChequePromo
	ReachTolerance decimal.Decimal // defaults to $1 when zero
}

// SelectBalanceCase picks the balance resolution case for the payment.
// Predicates are checked in strict priority order.
func SelectBalanceCase(docAdjustmentSigned decimal.Decimal, instruments []Instrument, netTarget, tolerance decimal.Decimal) BalanceCase {
	hasCheques := false
	for _, inst := range instruments {
		if inst.IsRefinancing() {
			return BalanceCaseRefinancing
		}
		if inst.IsCheque() {
			hasCheques = true
		}
	}
	if hasCheques {
		if docAdjustmentSigned.IsPositive() && ReachesNetToPay(instruments, netTarget, tolerance) {
			return BalanceCasePromoDiscount
		}
		return BalanceCaseChequesNoPromo
	}
	return BalanceCaseCashTransferOnly
}

// Aggregate combines per-document adjustments, per-cheque costs and
// promotions into the reconciled Totals record.
//
// Totals are sums of already-rounded terms; the only fresh rounding steps
// are the final net-to-apply and diff, keeping repeated recomputation free
// of drift.
func Aggregate(in AggregationInput) Totals {
	tolerance := in.ReachTolerance
	if tolerance.IsZero() {
		tolerance = DefaultReachTolerance
	}

	gross := decimal.Zero
	net := decimal.Zero
	for _, adj := range in.Adjustments {
		gross = gross.Add(adj.Base)
		net = net.Add(adj.FinalAmount)
	}
	discount := gross.Sub(net)

	chequeNets := make(map[uuid.UUID]decimal.Decimal, len(in.ChequeCosts))
	chequeInterest := decimal.Zero
	for _, cost := range in.ChequeCosts {
		chequeNets[cost.InstrumentID] = cost.NetAmount
		chequeInterest = chequeInterest.Add(cost.InterestAmount)
	}

	// Operator-entered cheques carry their face value in Amount; the
	// collected net lives in the cost breakdown and is what counts here.
	values := decimal.Zero
	valuesRaw := decimal.Zero
	for _, inst := range in.Instruments {
		amount := inst.Amount
		if net, ok := chequeNets[inst.ID]; ok {
			amount = net
		}
		values = values.Add(amount)
		valuesRaw = valuesRaw.Add(inst.Nominal())
	}

	balanceCase := SelectBalanceCase(discount, in.Instruments, net, tolerance)

	// Only positive contributions count, and only in the branches where
	// the promotion is actually granted.
	chequePromo := decimal.Zero
	if balanceCase == BalanceCasePromoDiscount {
		for _, promo := range in.Promos {
			if promo.Amount.IsPositive() {
				chequePromo = chequePromo.Add(promo.Amount)
			}
		}
	}

	totals := Totals{
		Gross:          gross,
		Discount:       discount,
		Net:            net,
		Values:         values,
		ValuesRaw:      valuesRaw,
		ChequeInterest: chequeInterest,
		ChequePromo:    chequePromo,
		Case:           balanceCase,
	}

	switch balanceCase {
	case BalanceCaseRefinancing:
		// Refinancing always measures against the full gross.
		totals.DiscountAppliedToValues = discount
		totalCost := discount.Neg().Add(chequeInterest)
		totals.NetToApply = valueobject.Round2(valuesRaw.Sub(totalCost))
		totals.Diff = valueobject.Round2(gross.Sub(totals.NetToApply))

	case BalanceCasePromoDiscount:
		totals.DiscountAppliedToValues = discount.Add(chequePromo)
		totalCost := discount.Neg().Add(chequeInterest).Sub(chequePromo)
		totals.NetToApply = valueobject.Round2(valuesRaw.Sub(totalCost))
		totals.Diff = valueobject.Round2(gross.Sub(totals.NetToApply))

	case BalanceCaseChequesNoPromo:
		totals.DiscountAppliedToValues = discount
		totalCost := discount.Neg().Add(chequeInterest)
		totals.NetToApply = valueobject.Round2(valuesRaw.Sub(totalCost))
		totals.Diff = valueobject.Round2(gross.Sub(totals.NetToApply))

	case BalanceCaseCashTransferOnly:
		totals.DiscountAppliedToValues = discount
		if ReachesNetToPay(in.Instruments, net, tolerance) {
			totals.Diff = decimal.Zero
			totals.NetToApply = gross
		} else {
			totals.Diff = valueobject.Round2(net.Sub(valuesRaw))
			totals.NetToApply = valueobject.Round2(gross.Sub(totals.Diff))
		}
	}

	return totals
}
