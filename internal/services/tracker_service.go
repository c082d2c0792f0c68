// Package services orchestrates the storage layer for the menu: user
// resolution, expense bookkeeping, and the summary/breakdown/filter reads.
package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// TrackerService is the single entry point the menu layer talks to. It owns
// no state beyond the injected repository; every call is one independent
// unit of work against the store.
type TrackerService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger

	// now is replaceable in tests to pin the month the statistics run in.
	now func() time.Time
}

func NewTrackerService(repo *storage.SQLiteRepository, logger *log.Logger) *TrackerService {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentTracker)
	}
	return &TrackerService{
		storage: repo,
		logger:  logger,
		now:     time.Now,
	}
}

// LookupUser returns the user with the given username, or nil when absent.
// The menu uses it to decide whether to ask for an initial budget.
func (s *TrackerService) LookupUser(ctx context.Context, username string) (*core.User, error) {
	return s.storage.FindUserByUsername(ctx, username)
}

// FindOrCreateUser resolves a username to a user id, creating the profile
// on first sight. The budget argument only matters on creation; repeat
// visits keep whatever budget the profile already has.
func (s *TrackerService) FindOrCreateUser(ctx context.Context, username string, budget float64) (int64, error) {
	user, err := s.storage.FindUserByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("find or create user: %w", err)
	}
	if user != nil {
		s.logger.DebugContext(ctx, "Known user resolved",
			log.FieldOperation, log.OpRead,
			log.FieldUserID, user.ID, log.FieldUsername, username)
		return user.ID, nil
	}

	id, err := s.storage.CreateUser(ctx, username, budget)
	if err != nil {
		return 0, fmt.Errorf("find or create user: %w", err)
	}

	s.logger.InfoContext(ctx, "Profile created",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, id, log.FieldUsername, username, "monthly_budget", budget)
	return id, nil
}

// AddExpense records a new expense dated now (UTC). Amount sign is not
// checked; the category is the only required label.
func (s *TrackerService) AddExpense(ctx context.Context, userID int64, amount float64, category, description string) error {
	e := core.Expense{
		Amount:      amount,
		Category:    category,
		Description: description,
		UserID:      userID,
	}
	if err := e.Validate(); err != nil {
		return fmt.Errorf("add expense: %w", err)
	}

	if _, err := s.storage.CreateExpense(ctx, e); err != nil {
		return fmt.Errorf("add expense: %w", err)
	}

	s.logger.InfoContext(ctx, "Expense recorded",
		log.FieldOperation, log.OpCreate,
		log.FieldUserID, userID, log.FieldAmount, amount, log.FieldCategory, category)
	return nil
}

// MonthlySummary aggregates the user's budget position. Spent is the
// all-time total of the user's expenses measured against the current
// month's remaining days. The second return value is false when no user
// matches the id.
func (s *TrackerService) MonthlySummary(ctx context.Context, userID int64) (core.Summary, bool, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return core.Summary{}, false, fmt.Errorf("monthly summary: %w", err)
	}
	if user == nil {
		return core.Summary{}, false, nil
	}

	spent, err := s.storage.TotalSpent(ctx, userID)
	if err != nil {
		return core.Summary{}, false, fmt.Errorf("monthly summary: %w", err)
	}

	summary := core.NewSummary(user.MonthlyBudget, spent, s.now())
	if summary.OverBudget() {
		s.logger.WarnContext(ctx, "User is over budget",
			log.FieldOperation, log.OpSummary,
			log.FieldUserID, userID, "remaining", summary.Remaining)
	}
	return summary, true, nil
}

// CategoryBreakdown returns spend per category, highest first. An empty
// result means the user has no expenses yet.
func (s *TrackerService) CategoryBreakdown(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	breakdown, err := s.storage.CategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	return breakdown, nil
}

// FilteredExpenses lists the user's expenses newest first, optionally
// narrowed by a case-insensitive keyword (category or description) and a
// closed date range. Both filters AND-combine.
func (s *TrackerService) FilteredExpenses(ctx context.Context, userID int64, keyword string, dateRange *core.DateRange) ([]core.Expense, error) {
	expenses, err := s.storage.FilteredExpenses(ctx, userID, keyword, dateRange)
	if err != nil {
		return nil, fmt.Errorf("filtered expenses: %w", err)
	}

	s.logger.DebugContext(ctx, "Expense history filtered",
		log.FieldOperation, log.OpList,
		log.FieldUserID, userID, log.FieldKeyword, keyword, log.FieldCount, len(expenses))
	return expenses, nil
}

// EditExpense applies the supplied fields to an expense the user owns.
// Zero amount / empty category mean "keep current value". False reports a
// missing or foreign expense, never an error.
func (s *TrackerService) EditExpense(ctx context.Context, expenseID, userID int64, newAmount float64, newCategory string) (bool, error) {
	ok, err := s.storage.UpdateExpense(ctx, expenseID, userID, newAmount, newCategory)
	if err != nil {
		return false, fmt.Errorf("edit expense: %w", err)
	}

	s.logger.DebugContext(ctx, "Expense edit attempted",
		log.FieldOperation, log.OpUpdate,
		log.FieldExpenseID, expenseID, log.FieldUserID, userID, "found", ok)
	return ok, nil
}

// DeleteExpense removes an expense the user owns; same ownership contract
// as EditExpense.
func (s *TrackerService) DeleteExpense(ctx context.Context, expenseID, userID int64) (bool, error) {
	ok, err := s.storage.DeleteExpense(ctx, expenseID, userID)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}

	s.logger.DebugContext(ctx, "Expense delete attempted",
		log.FieldOperation, log.OpDelete,
		log.FieldExpenseID, expenseID, log.FieldUserID, userID, "found", ok)
	return ok, nil
}

// DeleteUser removes a profile and every expense it owns. The interactive
// menu never offers this; it exists because the ownership relation demands
// an explicit cascade.
func (s *TrackerService) DeleteUser(ctx context.Context, userID int64) (bool, error) {
	ok, err := s.storage.DeleteUser(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return ok, nil
}

// Close releases the underlying store.
func (s *TrackerService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close tracker service: %w", err)
		}
	}
	return nil
}
