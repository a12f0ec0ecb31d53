package settlement

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var receiptDate = time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)

func costInput() ChequeCostInput {
	return ChequeCostInput{
		ReceiptDate:       receiptDate,
		DefaultGraceDays:  45,
		AnnualInterestPct: decimal.NewFromInt(96),
	}
}

func chequeAt(raw float64, daysOut int) Instrument {
	return NewChequeInstrument(
		decimal.NewFromFloat(raw), "00012345", "Banco Nación",
		AddDays(receiptDate, daysOut),
	)
}

func TestNormalizeAnnualPct(t *testing.T) {
	t.Run("annual percentage passes through", func(t *testing.T) {
		assert.True(t, NormalizeAnnualPct(decimal.NewFromInt(96)).Equal(decimal.NewFromInt(96)))
	})

	t.Run("daily fraction is scaled back to annual", func(t *testing.T) {
		// 96% annual expressed as a daily fraction
		daily := decimal.NewFromInt(96).Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(365))
		normalized := NormalizeAnnualPct(daily)
		diff := normalized.Sub(decimal.NewFromInt(96)).Abs()
		assert.True(t, diff.LessThan(decimal.NewFromFloat(0.0001)), "normalized to %s", normalized)
	})

	t.Run("zero and one are untouched", func(t *testing.T) {
		assert.True(t, NormalizeAnnualPct(decimal.Zero).IsZero())
		assert.True(t, NormalizeAnnualPct(decimal.NewFromInt(1)).Equal(decimal.NewFromInt(1)))
	})
}

func TestComputeChequeCost(t *testing.T) {
	t.Run("cheque inside the grace period costs nothing", func(t *testing.T) {
		cost := ComputeChequeCost(chequeAt(5000, 40), costInput())
		assert.Equal(t, 40, cost.DaysTotal)
		assert.Equal(t, 0, cost.DaysCharged)
		assert.True(t, cost.InterestAmount.IsZero())
		assert.True(t, cost.NetAmount.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("cheque past the grace period accrues daily interest", func(t *testing.T) {
		cost := ComputeChequeCost(chequeAt(5000, 60), costInput())
		assert.Equal(t, 60, cost.DaysTotal)
		assert.Equal(t, 15, cost.DaysCharged)
		// 96/100/365 ≈ 0.00263; 5000 * 0.00263 * 15 ≈ 197.26
		assert.True(t, cost.InterestAmount.Equal(decimal.NewFromFloat(197.26)), "interest %s", cost.InterestAmount)
		assert.True(t, cost.NetAmount.Equal(decimal.NewFromFloat(4802.74)), "net %s", cost.NetAmount)
	})

	t.Run("net plus interest reconstructs the face value", func(t *testing.T) {
		for _, daysOut := range []int{0, 30, 46, 60, 90, 180} {
			cost := ComputeChequeCost(chequeAt(5000, daysOut), costInput())
			sum := cost.NetAmount.Add(cost.InterestAmount)
			diff := sum.Sub(decimal.NewFromInt(5000)).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.01)), "days %d: %s", daysOut, sum)
		}
	})

	t.Run("collection date before receipt clamps to zero days", func(t *testing.T) {
		cost := ComputeChequeCost(chequeAt(5000, -10), costInput())
		assert.Equal(t, 0, cost.DaysTotal)
		assert.True(t, cost.InterestAmount.IsZero())
	})

	t.Run("blocked interest trusts the face value as-is", func(t *testing.T) {
		in := costInput()
		in.BlockInterest = true
		cost := ComputeChequeCost(chequeAt(5000, 120), in)
		assert.True(t, cost.InterestBlocked)
		assert.True(t, cost.InterestAmount.IsZero())
		assert.True(t, cost.NetAmount.Equal(decimal.NewFromInt(5000)))
	})

	t.Run("refinancing cheque uses its grace override", func(t *testing.T) {
		inst := chequeAt(5000, 60)
		inst.Reason = ReasonRefinancing
		override := 100
		inst.Cheque.OverrideGraceDays = &override
		cost := ComputeChequeCost(inst, costInput())
		assert.Equal(t, 0, cost.DaysCharged)
		assert.True(t, cost.InterestAmount.IsZero())
	})

	t.Run("grace override is ignored on ordinary cheques", func(t *testing.T) {
		inst := chequeAt(5000, 60)
		override := 100
		inst.Cheque.OverrideGraceDays = &override
		cost := ComputeChequeCost(inst, costInput())
		assert.Equal(t, 15, cost.DaysCharged)
	})

	t.Run("interest never drives the net below zero", func(t *testing.T) {
		in := costInput()
		in.AnnualInterestPct = decimal.NewFromInt(10000)
		cost := ComputeChequeCost(chequeAt(100, 3650), in)
		assert.False(t, cost.NetAmount.IsNegative())
	})

	t.Run("non-cheque instruments pass through", func(t *testing.T) {
		cash := NewCashInstrument(decimal.NewFromInt(500))
		cost := ComputeChequeCost(cash, costInput())
		assert.True(t, cost.InterestAmount.IsZero())
		assert.True(t, cost.NetAmount.Equal(decimal.NewFromInt(500)))
	})
}

func TestComputeChequeCosts(t *testing.T) {
	t.Run("only cheque legs are costed", func(t *testing.T) {
		instruments := []Instrument{
			NewCashInstrument(decimal.NewFromInt(100)),
			chequeAt(5000, 60),
			NewTransferInstrument(decimal.NewFromInt(200), "Banco Galicia"),
			chequeAt(3000, 40),
		}
		costs := ComputeChequeCosts(instruments, costInput())
		require.Len(t, costs, 2)
		assert.Equal(t, instruments[1].ID, costs[0].InstrumentID)
		assert.Equal(t, instruments[3].ID, costs[1].InstrumentID)
	})
}
