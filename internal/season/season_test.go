package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testModel() *Model {
	return New(0.8, 1.4, Hours{Open: 9, Close: 17}, Hours{Open: 10, Close: 16})
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterFactors(t *testing.T) {
	m := testModel()

	// 2025-11-05 is a Wednesday in Q4.
	assert.InDelta(t, 1.4, m.Multiplier(date(2025, time.November, 5)), 1e-9)
	// 2025-02-05 is a Wednesday in Q1.
	assert.InDelta(t, 0.8, m.Multiplier(date(2025, time.February, 5)), 1e-9)
	// 2025-05-07 is a Wednesday in Q2, flat.
	assert.InDelta(t, 1.0, m.Multiplier(date(2025, time.May, 7)), 1e-9)
}

func TestDayOfWeekFactors(t *testing.T) {
	m := testModel()

	// A flat-quarter week in May 2025: Fri 9th, Sat 10th, Sun 11th.
	assert.InDelta(t, 1.15, m.Multiplier(date(2025, time.May, 9)), 1e-9)
	assert.InDelta(t, 1.3, m.Multiplier(date(2025, time.May, 10)), 1e-9)
	assert.InDelta(t, 1.1, m.Multiplier(date(2025, time.May, 11)), 1e-9)
	// Monday 12th is baseline.
	assert.InDelta(t, 1.0, m.Multiplier(date(2025, time.May, 12)), 1e-9)
}

func TestHolidayOverridesReplaceOtherFactors(t *testing.T) {
	m := testModel()

	// Holiday factors apply regardless of quarter or weekday.
	assert.InDelta(t, 1.8, m.Multiplier(date(2025, time.December, 24)), 1e-9)
	assert.InDelta(t, 1.6, m.Multiplier(date(2025, time.December, 26)), 1e-9)
	assert.InDelta(t, 1.5, m.Multiplier(date(2025, time.June, 30)), 1e-9)
	assert.InDelta(t, 0.6, m.Multiplier(date(2025, time.January, 1)), 1e-9)
	assert.InDelta(t, 1.2, m.Multiplier(date(2025, time.January, 26)), 1e-9)
}

func TestChristmasDayClosed(t *testing.T) {
	m := testModel()
	assert.Zero(t, m.Multiplier(date(2025, time.December, 25)))
	// Any year.
	assert.Zero(t, m.Multiplier(date(2030, time.December, 25)))
}

func TestHoursFor(t *testing.T) {
	m := testModel()

	weekday := m.HoursFor(date(2025, time.May, 12)) // Monday
	assert.Equal(t, Hours{Open: 9, Close: 17}, weekday)

	weekend := m.HoursFor(date(2025, time.May, 10)) // Saturday
	assert.Equal(t, Hours{Open: 10, Close: 16}, weekend)
}

func TestHoursContains(t *testing.T) {
	h := Hours{Open: 9, Close: 17}
	assert.True(t, h.Contains(9))
	assert.True(t, h.Contains(16))
	assert.False(t, h.Contains(17)) // close is exclusive
	assert.False(t, h.Contains(8))
}

func TestHourWeightsStayInsideTradingWindow(t *testing.T) {
	m := testModel()

	for _, d := range []time.Time{
		date(2025, time.May, 12), // weekday
		date(2025, time.May, 10), // weekend
	} {
		hours := m.HoursFor(d)
		weights := m.HourWeights(d)
		assert.Len(t, weights, hours.Close-hours.Open)
		for _, w := range weights {
			assert.True(t, hours.Contains(w.Value), "hour %d outside window %+v", w.Value, hours)
			assert.Greater(t, w.Weight, 0.0)
		}
	}
}

func TestHourWeightsElevatePeaks(t *testing.T) {
	m := testModel()
	weights := m.HourWeights(date(2025, time.May, 12))

	byHour := map[int]float64{}
	for _, w := range weights {
		byHour[w.Value] = w.Weight
	}

	assert.InDelta(t, 3.0, byHour[12], 1e-9) // lunch
	assert.InDelta(t, 3.0, byHour[13], 1e-9)
	assert.InDelta(t, 2.0, byHour[11], 1e-9) // shoulder
	assert.InDelta(t, 2.0, byHour[14], 1e-9)
	assert.InDelta(t, 1.0, byHour[9], 1e-9)
	// 17:00 is outside a 9-17 window, so the after-work peak does not appear.
	_, ok := byHour[17]
	assert.False(t, ok)
}
