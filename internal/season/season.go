// =============================================================================
// Australian POS Data Generator - Seasonality Model
// =============================================================================
//
// Maps a calendar date to a relative transaction-volume multiplier and to a
// time-of-day weight table used to place timestamps inside trading hours.
//
// The multiplier combines three independent factors:
//   1. Quarter of year  - Q4 (Christmas) peak, Q1 (post-Christmas) trough
//   2. Day of week      - Friday and the weekend run hotter in retail
//   3. Holiday override - fixed calendar dates replace the combined factor
//      entirely (Boxing Day sales, EOFY, closed on Christmas Day)
//
// =============================================================================

package season

import (
	"time"

	"github.com/ginjaninja78/aus-pos-datagen/internal/rng"
)

// Hours is a trading window. Open is inclusive, Close exclusive, so
// Open=9 Close=17 trades 09:00-16:59.
type Hours struct {
	Open  int
	Close int
}

// Contains reports whether the wall-clock hour falls inside the window.
func (h Hours) Contains(hour int) bool {
	return hour >= h.Open && hour < h.Close
}

// holidayFactor is a fixed-date override. A factor of zero means the stores
// are closed and no transactions are generated.
type holidayFactor struct {
	Month  time.Month
	Day    int
	Factor float64
}

// holidays is the fixed override table for the Australian retail calendar.
var holidays = []holidayFactor{
	{time.December, 24, 1.8}, // Christmas Eve rush
	{time.December, 25, 0.0}, // Christmas Day, closed
	{time.December, 26, 1.6}, // Boxing Day sales
	{time.June, 30, 1.5},     // EOFY
	{time.January, 1, 0.6},   // New Year's Day
	{time.January, 26, 1.2},  // Australia Day
}

// Model computes volume multipliers and hour weights. Quarter factors come
// from configuration; day-of-week and holiday factors are fixed tables.
type Model struct {
	q1Factor     float64
	q4Factor     float64
	weekdayHours Hours
	weekendHours Hours
}

// New constructs a Model. q1 and q4 are the quarter multipliers (Q2/Q3 are
// flat at 1.0); the two windows are weekday and weekend trading hours.
func New(q1, q4 float64, weekday, weekend Hours) *Model {
	return &Model{
		q1Factor:     q1,
		q4Factor:     q4,
		weekdayHours: weekday,
		weekendHours: weekend,
	}
}

// Multiplier returns the relative volume multiplier for a date. Zero means
// no trading that day.
func (m *Model) Multiplier(date time.Time) float64 {
	for _, h := range holidays {
		if date.Month() == h.Month && date.Day() == h.Day {
			return h.Factor
		}
	}
	return m.quarterFactor(date) * dayOfWeekFactor(date.Weekday())
}

func (m *Model) quarterFactor(date time.Time) float64 {
	switch {
	case date.Month() >= time.October:
		return m.q4Factor
	case date.Month() <= time.March:
		return m.q1Factor
	default:
		return 1.0
	}
}

func dayOfWeekFactor(day time.Weekday) float64 {
	switch day {
	case time.Friday:
		return 1.15
	case time.Saturday:
		return 1.3
	case time.Sunday:
		return 1.1
	default:
		return 1.0
	}
}

// HoursFor returns the trading window applying on the given date.
func (m *Model) HoursFor(date time.Time) Hours {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return m.weekendHours
	}
	return m.weekdayHours
}

// HourWeights returns the relative weight of each trading hour on the given
// date. Lunch (12-14) and the after-work window (17-19) are elevated, with
// shoulders either side of lunch. Every weighted hour lies inside the
// trading window, so no timestamp can fall outside opening hours.
func (m *Model) HourWeights(date time.Time) []rng.Weighted[int] {
	hours := m.HoursFor(date)
	weights := make([]rng.Weighted[int], 0, hours.Close-hours.Open)
	for h := hours.Open; h < hours.Close; h++ {
		w := 1.0
		switch {
		case h >= 12 && h < 14:
			w = 3.0
		case h >= 17 && h < 19:
			w = 2.5
		case h == 11 || h == 14:
			w = 2.0
		}
		weights = append(weights, rng.Weighted[int]{Value: h, Weight: w})
	}
	return weights
}
