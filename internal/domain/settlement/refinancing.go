package settlement

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/erp/settlement/internal/domain/shared"
	"github.com/erp/settlement/internal/domain/shared/valueobject"
)

// minSafeDenominator floors the 1 - interestPct denominator so a very long
// offset can never divide by zero or flip the sign of the face value.
var minSafeDenominator = decimal.NewFromFloat(0.000001)

// residualThreshold is the smallest residual worth reconciling; anything
// below one cent is already exact at money precision.
var residualThreshold = decimal.NewFromFloat(0.01)

// RefinancingInput describes a request to convert a remaining balance into
// future-dated cheques.
type RefinancingInput struct {
	TargetNet         decimal.Decimal // balance still owed
	DayOffsets        []int           // e.g. [30, 60, 90]
	AnnualInterestPct decimal.Decimal
	GraceDays         int // very large when interest is globally blocked
	Today             time.Time
	DocumentCount     int // documents backing the balance
}

// RefinancingPlan is an ordered list of synthetic cheque instruments whose
// net values sum exactly to the target. Once accepted into the draft
// payment the instruments are ordinary cheques.
type RefinancingPlan struct {
	Instruments []Instrument    `json:"instruments"`
	TotalRaw    decimal.Decimal `json:"total_raw"`
	TotalNet    decimal.Decimal `json:"total_net"`
	TotalCost   decimal.Decimal `json:"total_cost"` // sum of per-cheque cf
}

// GenerateRefinancingPlan solves the inverse problem: given the target net
// amount, find face values for one cheque per day offset such that each
// cheque's net (face minus its own financial cost) sums to the target.
//
// A uniform raw estimate is computed over the sum of safe denominators,
// then the last cheque absorbs the rounding residual so closure is exact.
func GenerateRefinancingPlan(in RefinancingInput) (*RefinancingPlan, error) {
	if in.DocumentCount <= 0 {
		return nil, shared.ErrNoDocuments
	}
	if len(in.DayOffsets) == 0 {
		return nil, shared.ErrNoOffsets
	}
	if !in.TargetNet.IsPositive() {
		return nil, shared.ErrNonPositiveTarget
	}

	daily := DailyRate(in.AnnualInterestPct)
	n := len(in.DayOffsets)

	denominators := make([]decimal.Decimal, n)
	sumDenominators := decimal.Zero
	for i, offset := range in.DayOffsets {
		daysCharged := offset - in.GraceDays
		if daysCharged < 0 {
			daysCharged = 0
		}
		interestPct := daily.Mul(decimal.NewFromInt(int64(daysCharged)))
		denom := decimal.NewFromInt(1).Sub(interestPct)
		if denom.LessThan(minSafeDenominator) {
			denom = minSafeDenominator
		}
		denominators[i] = denom
		sumDenominators = sumDenominators.Add(denom)
	}

	uniformRaw := in.TargetNet.Div(sumDenominators)

	plan := &RefinancingPlan{Instruments: make([]Instrument, 0, n)}
	grace := in.GraceDays
	sumNet := decimal.Zero

	raws := make([]decimal.Decimal, n)
	nets := make([]decimal.Decimal, n)
	for i := 0; i < n-1; i++ {
		raws[i] = valueobject.Round2(uniformRaw)
		nets[i] = valueobject.Round2(raws[i].Mul(denominators[i]))
		sumNet = sumNet.Add(nets[i])
	}

	neededNet := in.TargetNet.Sub(sumNet)
	raws[n-1] = valueobject.Round2(neededNet.Div(denominators[n-1]))
	nets[n-1] = valueobject.Round2(raws[n-1].Mul(denominators[n-1]))
	sumNet = sumNet.Add(nets[n-1])

	// Reconcile the residual into the last cheque, guaranteeing that the
	// plan's nets close the target exactly.
	residual := in.TargetNet.Sub(sumNet)
	if residual.Abs().GreaterThanOrEqual(residualThreshold) {
		nets[n-1] = nets[n-1].Add(residual)
		raws[n-1] = valueobject.Round2(nets[n-1].Div(denominators[n-1]))
	}

	for i, offset := range in.DayOffsets {
		inst := NewChequeInstrument(raws[i], "", "", AddDays(in.Today, offset))
		inst.Amount = nets[i]
		inst.Reason = ReasonRefinancing
		inst.Cheque.OverrideGraceDays = &grace
		inst.Cheque.FinancialCost = raws[i].Sub(nets[i])

		plan.Instruments = append(plan.Instruments, inst)
		plan.TotalRaw = plan.TotalRaw.Add(raws[i])
		plan.TotalNet = plan.TotalNet.Add(nets[i])
		plan.TotalCost = plan.TotalCost.Add(inst.Cheque.FinancialCost)
	}

	return plan, nil
}
