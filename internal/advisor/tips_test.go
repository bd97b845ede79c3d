package advisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestTipForDateIsDeterministic проверяет детерминированность совета дня.
func TestTipForDateIsDeterministic(t *testing.T) {
	morning := time.Date(2024, time.January, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.January, 15, 23, 59, 0, 0, time.UTC)

	first := TipForDate(morning)
	assert.Equal(t, first, TipForDate(evening))
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, savingsTips[0], first.Tip)
}

// TestTipForDateUsesUTCCalendarDay проверяет календарный день UTC.
func TestTipForDateUsesUTCCalendarDay(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2024, time.February, 29, 22, 0, 0, 0, zone)

	got := TipForDate(local)

	assert.Equal(t, "2024-03-01", got.Date)
	assert.Equal(t, savingsTips[8], got.Tip)
}

// TestTipForDateAlwaysPicksFromCatalog проверяет выбор только из каталога.
func TestTipForDateAlwaysPicksFromCatalog(t *testing.T) {
	day := time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		tip := TipForDate(day.AddDate(0, 0, i))
		assert.Contains(t, savingsTips, tip.Tip)
	}
}
