package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/settlement/internal/domain/shared"
)

func refinancingInput(target float64, offsets ...int) RefinancingInput {
	return RefinancingInput{
		TargetNet:         decimal.NewFromFloat(target),
		DayOffsets:        offsets,
		AnnualInterestPct: decimal.NewFromInt(96),
		GraceDays:         45,
		Today:             receiptDate,
		DocumentCount:     1,
	}
}

func TestGenerateRefinancingPlan(t *testing.T) {
	t.Run("nets close the target exactly", func(t *testing.T) {
		plan, err := GenerateRefinancingPlan(refinancingInput(10000, 30, 60, 90))
		require.NoError(t, err)
		require.Len(t, plan.Instruments, 3)

		sumNet := decimal.Zero
		for _, inst := range plan.Instruments {
			sumNet = sumNet.Add(inst.Amount)
		}
		diff := sumNet.Sub(decimal.NewFromInt(10000)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)), "sum %s", sumNet)
		assert.True(t, plan.TotalNet.Equal(sumNet))
	})

	t.Run("uneven target still closes", func(t *testing.T) {
		plan, err := GenerateRefinancingPlan(refinancingInput(10000.01, 30, 60, 90))
		require.NoError(t, err)

		diff := plan.TotalNet.Sub(decimal.NewFromFloat(10000.01)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)), "total net %s", plan.TotalNet)
	})

	t.Run("cheques carry the refinancing markers", func(t *testing.T) {
		plan, err := GenerateRefinancingPlan(refinancingInput(10000, 30, 60, 90))
		require.NoError(t, err)

		for i, inst := range plan.Instruments {
			assert.Equal(t, MethodCheque, inst.Method)
			assert.Equal(t, ReasonRefinancing, inst.Reason)
			require.NotNil(t, inst.Cheque)
			require.NotNil(t, inst.Cheque.OverrideGraceDays)
			assert.Equal(t, 45, *inst.Cheque.OverrideGraceDays)
			assert.True(t, inst.Cheque.ChequeDate.Equal(AddDays(receiptDate, []int{30, 60, 90}[i])))
			assert.True(t, inst.Cheque.FinancialCost.Equal(inst.Cheque.RawAmount.Sub(inst.Amount)))
		}
	})

	t.Run("offsets past the grace period carry a financial cost", func(t *testing.T) {
		plan, err := GenerateRefinancingPlan(refinancingInput(10000, 30, 60, 90))
		require.NoError(t, err)

		// 30 days is inside the 45-day grace: face equals net.
		assert.True(t, plan.Instruments[0].Cheque.FinancialCost.IsZero())
		// 60 and 90 days accrue cost, later cheques more than earlier ones.
		cost60 := plan.Instruments[1].Cheque.FinancialCost
		cost90 := plan.Instruments[2].Cheque.FinancialCost
		assert.True(t, cost60.IsPositive())
		assert.True(t, cost90.GreaterThan(cost60))
		assert.True(t, plan.TotalCost.Equal(plan.TotalRaw.Sub(plan.TotalNet)))
	})

	t.Run("blocked interest produces face values equal to nets", func(t *testing.T) {
		in := refinancingInput(10000, 30, 60, 90)
		in.GraceDays = BlockedGraceDays
		plan, err := GenerateRefinancingPlan(in)
		require.NoError(t, err)

		assert.True(t, plan.TotalCost.IsZero())
		assert.True(t, plan.TotalRaw.Equal(plan.TotalNet))
	})

	t.Run("single offset takes the whole target", func(t *testing.T) {
		plan, err := GenerateRefinancingPlan(refinancingInput(5000, 60))
		require.NoError(t, err)
		require.Len(t, plan.Instruments, 1)
		diff := plan.TotalNet.Sub(decimal.NewFromInt(5000)).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)), "total net %s", plan.TotalNet)
		assert.True(t, plan.Instruments[0].Cheque.RawAmount.GreaterThan(decimal.NewFromInt(5000)))
	})

	t.Run("generated plan settles the balance it was built for", func(t *testing.T) {
		target := decimal.NewFromFloat(7350.25)
		plan, err := GenerateRefinancingPlan(refinancingInput(target.InexactFloat64(), 30, 60, 90))
		require.NoError(t, err)

		costs := ComputeChequeCosts(plan.Instruments, costInput())
		netRecovered := decimal.Zero
		for i, inst := range plan.Instruments {
			netRecovered = netRecovered.Add(inst.Cheque.RawAmount.Sub(costs[i].InterestAmount))
		}
		diff := netRecovered.Sub(target).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.05)), "recovered %s", netRecovered)
	})

	t.Run("no documents is rejected", func(t *testing.T) {
		in := refinancingInput(10000, 30)
		in.DocumentCount = 0
		_, err := GenerateRefinancingPlan(in)
		assert.ErrorIs(t, err, shared.ErrNoDocuments)
	})

	t.Run("no offsets is rejected", func(t *testing.T) {
		_, err := GenerateRefinancingPlan(refinancingInput(10000))
		assert.ErrorIs(t, err, shared.ErrNoOffsets)
	})

	t.Run("non-positive target is rejected", func(t *testing.T) {
		_, err := GenerateRefinancingPlan(refinancingInput(0, 30))
		assert.ErrorIs(t, err, shared.ErrNonPositiveTarget)

		_, err = GenerateRefinancingPlan(refinancingInput(-100, 30))
		assert.ErrorIs(t, err, shared.ErrNonPositiveTarget)
	})
}
