package settlement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

// AdjustmentRule is an audit tag identifying which rule produced the rate
type AdjustmentRule string

const (
	RuleBlockedByCondition AdjustmentRule = "BLOCKED_BY_CONDITION"
	RuleAdvancePayment     AdjustmentRule = "ADVANCE_PAYMENT"
	RuleManualTenPercent   AdjustmentRule = "MANUAL_10_PCT"
	RuleEarlyTwenty        AdjustmentRule = "EARLY_20_PCT"
	RuleEarlyPromoFifteen  AdjustmentRule = "EARLY_PROMO_15_PCT"
	RuleMidThirteen        AdjustmentRule = "MID_13_PCT"
	RuleMidTen             AdjustmentRule = "MID_10_PCT"
	RuleNeutral            AdjustmentRule = "NEUTRAL"
	RuleSurcharge          AdjustmentRule = "SURCHARGE"
	RuleInvalidDays        AdjustmentRule = "INVALID_DAYS"
)

var (
	rateTwenty   = decimal.NewFromFloat(0.20)
	rateFifteen  = decimal.NewFromFloat(0.15)
	rateThirteen = decimal.NewFromFloat(0.13)
	rateTen      = decimal.NewFromFloat(0.10)

	daysInYear = decimal.NewFromInt(365)
	hundred    = decimal.NewFromInt(100)
)

// ComputedAdjustment is the per-document result of the discount/surcharge
// rules. It is derived, recomputed on every input change, and never
// persisted on its own.
type ComputedAdjustment struct {
	DocumentID            uuid.UUID       `json:"document_id"`
	DocumentNumber        string          `json:"document_number"`
	DaysUsed              int             `json:"days_used"`
	Base                  decimal.Decimal `json:"base"`
	Rate                  decimal.Decimal `json:"rate"`              // signed: positive = discount, negative = surcharge
	SignedAdjustment      decimal.Decimal `json:"signed_adjustment"` // base * rate, rounded to cents
	FinalAmount           decimal.Decimal `json:"final_amount"`      // base - signed adjustment
	Note                  string          `json:"note"`
	RuleApplied           AdjustmentRule  `json:"rule_applied"`
	NoDiscountBlocked     bool            `json:"no_discount_blocked"`
	ManualOverrideApplied bool            `json:"manual_override_applied"`
}

// AdjustmentInput carries the per-payment context the rules depend on
type AdjustmentInput struct {
	PaymentType       PaymentType
	ManualTenPercent  bool // operator-forced 10% for the 30 < days <= 37 window
	AnnualInterestPct decimal.Decimal
	ReceiptDate       time.Time
}

// ComputeAdjustment evaluates the discount/surcharge rules for one document.
//
// The rules are evaluated in a strict precedence order: condition block,
// advance payment, manual 10% override, then the day buckets. Every edge
// case degrades to a zero rate with an explanatory note; a classification
// failure must never block a payment.
func ComputeAdjustment(doc Document, in AdjustmentInput) ComputedAdjustment {
	adj := ComputedAdjustment{
		DocumentID:     doc.ID,
		DocumentNumber: doc.Number,
		Base:           doc.Base,
		Rate:           decimal.Zero,
	}

	days, daysOK := doc.DaysUntilDue(in.ReceiptDate)
	adj.DaysUsed = days

	switch {
	case IsNoDiscountCondition(doc.Condition):
		adj.NoDiscountBlocked = true
		adj.RuleApplied = RuleBlockedByCondition
		adj.Note = "blocked by condition"

	case in.PaymentType == PaymentTypeAdvance:
		adj.RuleApplied = RuleAdvancePayment
		adj.Note = "advance payment, no rule"

	case in.ManualTenPercent && daysOK && days > 30 && days <= 37:
		adj.Rate = rateTen
		adj.ManualOverrideApplied = true
		adj.RuleApplied = RuleManualTenPercent
		adj.Note = "manual 10% override"

	case !daysOK:
		adj.RuleApplied = RuleInvalidDays
		adj.Note = "invalid day estimate"

	case days <= 7:
		if IsPromoCondition(doc.Condition) {
			adj.Rate = rateFifteen
			adj.RuleApplied = RuleEarlyPromoFifteen
		} else {
			adj.Rate = rateTwenty
			adj.RuleApplied = RuleEarlyTwenty
		}

	case days <= 15:
		adj.Rate = rateThirteen
		adj.RuleApplied = RuleMidThirteen

	case days <= 30:
		adj.Rate = rateTen
		adj.RuleApplied = RuleMidTen

	case days <= 45:
		adj.RuleApplied = RuleNeutral
		adj.Note = "within neutral window"

	default:
		// Surcharge accrues daily past the 45-day neutral window.
		daily := in.AnnualInterestPct.Div(hundred).Div(daysInYear)
		adj.Rate = daily.Mul(decimal.NewFromInt(int64(days - 45))).Neg()
		adj.RuleApplied = RuleSurcharge
		adj.Note = "surcharge past 45 days"
	}

	adj.SignedAdjustment = valueobject.Round2(doc.Base.Mul(adj.Rate))
	adj.FinalAmount = valueobject.Round2(doc.Base.Sub(adj.SignedAdjustment))
	return adj
}

// ComputeAdjustments evaluates the rules over a document set, preserving
// order. Per-document manual override flags are keyed by document ID.
func ComputeAdjustments(docs []Document, in AdjustmentInput, manualFlags map[uuid.UUID]bool) []ComputedAdjustment {
	adjustments := make([]ComputedAdjustment, 0, len(docs))
	for _, doc := range docs {
		docInput := in
		if manualFlags != nil {
			docInput.ManualTenPercent = in.ManualTenPercent || manualFlags[doc.ID]
		}
		adjustments = append(adjustments, ComputeAdjustment(doc, docInput))
	}
	return adjustments
}
