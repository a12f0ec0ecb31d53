package settlement

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	base := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)

	t.Run("forward and backward differences", func(t *testing.T) {
		assert.Equal(t, 10, DaysBetween(base, base.AddDate(0, 0, 10)))
		assert.Equal(t, -10, DaysBetween(base.AddDate(0, 0, 10), base))
		assert.Equal(t, 0, DaysBetween(base, base))
	})

	t.Run("time of day never changes the count", func(t *testing.T) {
		morning := time.Date(2026, 8, 28, 0, 1, 0, 0, time.Local)
		night := time.Date(2026, 8, 28, 23, 59, 0, 0, time.Local)
		assert.Equal(t, 0, DaysBetween(morning, night))

		nextMorning := time.Date(2026, 8, 29, 0, 1, 0, 0, time.Local)
		assert.Equal(t, 1, DaysBetween(night, nextMorning))
	})

	t.Run("spans month boundaries", func(t *testing.T) {
		assert.Equal(t, 4, DaysBetween(base, time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)))
	})
}

func TestAddDays(t *testing.T) {
	t.Run("shifts and normalizes to midnight", func(t *testing.T) {
		noon := time.Date(2026, 8, 28, 12, 30, 0, 0, time.Local)
		shifted := AddDays(noon, 30)
		assert.Equal(t, time.Date(2026, 9, 27, 0, 0, 0, 0, time.Local), shifted)
	})

	t.Run("negative shift walks backward", func(t *testing.T) {
		d := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)
		assert.Equal(t, time.Date(2026, 8, 23, 0, 0, 0, 0, time.Local), AddDays(d, -5))
	})
}

func TestWithinDays(t *testing.T) {
	base := time.Date(2026, 8, 28, 0, 0, 0, 0, time.Local)

	t.Run("same day and one day either side", func(t *testing.T) {
		assert.True(t, WithinDays(base, base, 1))
		assert.True(t, WithinDays(base, base.AddDate(0, 0, 1), 1))
		assert.True(t, WithinDays(base, base.AddDate(0, 0, -1), 1))
	})

	t.Run("two days apart is outside the tolerance", func(t *testing.T) {
		assert.False(t, WithinDays(base, base.AddDate(0, 0, 2), 1))
	})
}

func TestDocumentConditions(t *testing.T) {
	t.Run("no-discount conditions", func(t *testing.T) {
		assert.True(t, IsNoDiscountCondition("precio de lista"))
		assert.True(t, IsNoDiscountCondition("LISTA"))
		assert.True(t, IsNoDiscountCondition("Cuenta Corriente 30 días"))
		assert.True(t, IsNoDiscountCondition(""))
		assert.True(t, IsNoDiscountCondition("   "))
		assert.False(t, IsNoDiscountCondition("contado"))
	})

	t.Run("promo condition pattern", func(t *testing.T) {
		assert.True(t, IsPromoCondition("promo 15% / 13%"))
		assert.True(t, IsPromoCondition("15% contado, 13% cheque"))
		assert.False(t, IsPromoCondition("15% contado"))
		assert.False(t, IsPromoCondition("contado"))
	})
}
