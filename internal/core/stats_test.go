package core

import (
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.January, 31},
		{2025, time.February, 28},
		{2024, time.February, 29}, // leap year
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		d := time.Date(tc.year, tc.month, 10, 0, 0, 0, 0, time.UTC)
		if got := DaysInMonth(d); got != tc.want {
			t.Fatalf("%d-%02d expected %d days, got %d", tc.year, tc.month, tc.want, got)
		}
	}
}

func TestBurnRate(t *testing.T) {
	// 2025-01-15 in a 31-day month: 31 - 15 + 1 = 17 days left.
	today := time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		budget   float64
		spent    float64
		wantRate float64
		wantDays int
	}{
		{"under budget", 1000, 320, 40.0, 17},
		{"rounded rate", 1000, 0, 58.82, 17},
		{"exactly spent", 500, 500, 0.0, 17},
		{"over budget", 500, 800, 0.0, 17},
		{"massively over budget", 100, 1e9, 0.0, 17},
		{"zero budget", 0, 0, 0.0, 17},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rate, days := BurnRate(tc.budget, tc.spent, today)
			if rate != tc.wantRate {
				t.Fatalf("expected rate %v, got %v", tc.wantRate, rate)
			}
			if days != tc.wantDays {
				t.Fatalf("expected %d days left, got %d", tc.wantDays, days)
			}
		})
	}
}

func TestBurnRateLastDayOfMonth(t *testing.T) {
	today := time.Date(2025, time.January, 31, 23, 0, 0, 0, time.UTC)
	rate, days := BurnRate(100, 0, today)
	if days != 1 {
		t.Fatalf("expected 1 day left, got %d", days)
	}
	if rate != 100.0 {
		t.Fatalf("expected rate 100.0, got %v", rate)
	}
}

func TestNewSummary(t *testing.T) {
	today := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	s := NewSummary(1000, 1100, today)
	if s.Spent != 1100 {
		t.Fatalf("expected spent 1100, got %v", s.Spent)
	}
	if s.Remaining != -100 {
		t.Fatalf("expected remaining -100, got %v", s.Remaining)
	}
	if !s.OverBudget() {
		t.Fatalf("expected over-budget state")
	}
	if s.BurnRate != 0.0 {
		t.Fatalf("expected zero burn rate when over budget, got %v", s.BurnRate)
	}
	if s.DaysLeft != 30 {
		t.Fatalf("expected 30 days left in June, got %d", s.DaysLeft)
	}

	ok := NewSummary(900, 300, today)
	if ok.OverBudget() {
		t.Fatalf("unexpected over-budget state")
	}
	if ok.BurnRate != 20.0 {
		t.Fatalf("expected rate 20.0, got %v", ok.BurnRate)
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.0},
		{58.8235, 58.82},
		{-1.006, -1.01},
		{40.0, 40.0},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Fatalf("Round2(%v) expected %v, got %v", tc.in, tc.want, got)
		}
	}
}
