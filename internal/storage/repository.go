package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository persists users and their expenses in a local SQLite file.
// The connection pool is capped at one connection: the tracker is a
// single-threaded interactive process and this also keeps ":memory:"
// databases on a single backing store.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// FindUserByUsername looks a user up by exact username. A missing user is
// reported as (nil, nil), not an error.
func (r *SQLiteRepository) FindUserByUsername(ctx context.Context, username string) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, monthly_budget FROM users WHERE username = ?`, username)

	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.MonthlyBudget); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &u, nil
}

// GetUser retrieves a user by id, (nil, nil) when absent.
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (*core.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, username, monthly_budget FROM users WHERE id = ?`, id)

	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.MonthlyBudget); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *SQLiteRepository) CreateUser(ctx context.Context, username string, monthlyBudget float64) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, monthly_budget) VALUES (?, ?)`, username, monthlyBudget)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user id: %w", err)
	}

	slog.InfoContext(ctx, "User created", "id", id, "username", username, "monthly_budget", monthlyBudget)
	return id, nil
}

// DeleteUser removes a user together with every expense it owns. The
// cascade is explicit and runs in one transaction, so a crash can never
// orphan expense rows.
func (r *SQLiteRepository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete user: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete user expenses: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete user rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit delete user: %w", err)
	}

	slog.InfoContext(ctx, "User deleted with owned expenses", "id", id)
	return true, nil
}

// CreateExpense inserts an expense and returns its id. A zero date is
// stamped with the current UTC time.
func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.Expense) (int64, error) {
	if e.Date.IsZero() {
		e.Date = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount, category, description, date, user_id) VALUES (?, ?, ?, ?, ?)`,
		e.Amount, e.Category, e.Description, e.Date, e.UserID)
	if err != nil {
		return 0, fmt.Errorf("create expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create expense id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"amount", e.Amount,
		"category", e.Category,
		"user_id", e.UserID)

	return id, nil
}

// TotalSpent sums every expense the user owns, with no date bound.
func (r *SQLiteRepository) TotalSpent(ctx context.Context, userID int64) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = ?`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total spent: %w", err)
	}
	return total, nil
}

// CategoryBreakdown groups the user's expenses by category, highest total
// first. Tie order between equal totals is left to SQLite.
func (r *SQLiteRepository) CategoryBreakdown(ctx context.Context, userID int64) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount) AS total
		 FROM expenses
		 WHERE user_id = ?
		 GROUP BY category
		 ORDER BY total DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	breakdown := []core.CategoryTotal{}
	for rows.Next() {
		var ct core.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		breakdown = append(breakdown, ct)
	}
	return breakdown, rows.Err()
}

// FilteredExpenses returns the user's expenses newest first. A non-empty
// keyword restricts to rows whose category or description contains it,
// case-insensitively; a non-nil dateRange restricts to the closed interval
// [Start, End]. Both filters combine with AND.
func (r *SQLiteRepository) FilteredExpenses(ctx context.Context, userID int64, keyword string, dateRange *core.DateRange) ([]core.Expense, error) {
	query := `SELECT id, amount, category, description, date, user_id
		 FROM expenses WHERE user_id = ?`
	args := []any{userID}

	if keyword != "" {
		query += ` AND (category LIKE ? OR description LIKE ?)`
		pattern := "%" + keyword + "%"
		args = append(args, pattern, pattern)
	}
	if dateRange != nil {
		query += ` AND date BETWEEN ? AND ?`
		args = append(args, dateRange.Start, dateRange.End)
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filtered expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		var e core.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Category, &e.Description, &e.Date, &e.UserID); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense applies the supplied fields to an expense owned by userID.
// A zero newAmount and an empty newCategory both mean "leave unchanged".
// Returns false when no expense with that id belongs to the user; the
// ownership check is what keeps one user from touching another's records.
func (r *SQLiteRepository) UpdateExpense(ctx context.Context, expenseID, userID int64, newAmount float64, newCategory string) (bool, error) {
	var exists int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM expenses WHERE id = ? AND user_id = ?`, expenseID, userID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find expense for update: %w", err)
	}

	sets := ""
	args := []any{}
	if newAmount != 0 {
		sets = "amount = ?"
		args = append(args, newAmount)
	}
	if newCategory != "" {
		if sets != "" {
			sets += ", "
		}
		sets += "category = ?"
		args = append(args, newCategory)
	}
	if sets == "" {
		// Found but nothing to change still counts as success.
		return true, nil
	}

	args = append(args, expenseID, userID)
	if _, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET `+sets+` WHERE id = ? AND user_id = ?`, args...); err != nil {
		return false, fmt.Errorf("update expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", expenseID, "user_id", userID)
	return true, nil
}

// DeleteExpense removes an expense owned by userID. Same ownership rule as
// UpdateExpense: a foreign or missing id reports false, never an error.
func (r *SQLiteRepository) DeleteExpense(ctx context.Context, expenseID, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = ? AND user_id = ?`, expenseID, userID)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete expense rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	slog.InfoContext(ctx, "Expense deleted", "id", expenseID, "user_id", userID)
	return true, nil
}
