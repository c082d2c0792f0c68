package core

import (
	"math"
	"time"
)

type (
	// Summary aggregates a user's budget position.
	Summary struct {
		Budget    float64
		Spent     float64
		Remaining float64
		BurnRate  float64
		DaysLeft  int
	}

	// CategoryTotal is the spend accumulated under one category label.
	CategoryTotal struct {
		Category string
		Total    float64
	}
)

// BurnRate computes how much of the remaining budget can be spent per day
// for the rest of today's month. Today counts as a remaining day. When the
// budget is exhausted or overdrawn the rate is 0.0; days left are reported
// either way. The rate is rounded to two decimals.
func BurnRate(budget, spent float64, today time.Time) (float64, int) {
	daysLeft := DaysInMonth(today) - today.Day() + 1

	remaining := budget - spent
	if remaining <= 0 {
		return 0.0, daysLeft
	}

	return Round2(remaining / float64(daysLeft)), daysLeft
}

// NewSummary builds the full budget position from a budget and a spend
// total. Spent is the all-time sum of the user's expenses, measured against
// the current month's remaining days; totals never reset month to month.
// Remaining may go negative: over budget is a reportable state, not an error.
func NewSummary(budget, spent float64, today time.Time) Summary {
	rate, daysLeft := BurnRate(budget, spent, today)
	return Summary{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget - spent,
		BurnRate:  rate,
		DaysLeft:  daysLeft,
	}
}

// OverBudget reports whether spending has exceeded the budget.
func (s Summary) OverBudget() bool {
	return s.Remaining < 0
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	// Day 0 of the next month is the last day of this one.
	firstOfNext := time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
	return firstOfNext.AddDate(0, 0, -1).Day()
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
