package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// User is a tracked profile. Budgets are monthly and default to zero.
	User struct {
		ID            int64
		Username      string
		MonthlyBudget float64
	}

	// Expense is a single spend record owned by exactly one user.
	Expense struct {
		ID          int64
		Amount      float64
		Category    string
		Description string
		Date        time.Time
		UserID      int64
	}

	// DateRange is a closed interval used by expense filtering.
	DateRange struct {
		Start time.Time
		End   time.Time
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyUsername = errors.New("empty username")
	ErrEmptyCategory = errors.New("empty category")
)

func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}
	if u.MonthlyBudget < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the fields required for persistence. Amount sign is
// deliberately unconstrained: refunds and corrections land as negative
// expenses.
func (e Expense) Validate() error {
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.UserID <= 0 {
		return errors.New("expense has no owner")
	}
	return nil
}
