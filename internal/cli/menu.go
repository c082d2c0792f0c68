package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

// Menu drives the interactive text protocol. All parsing and validation of
// user input happens here; the service below assumes well-typed arguments.
type Menu struct {
	svc    *services.TrackerService
	in     *bufio.Scanner
	out    io.Writer
	logger *log.Logger

	interactive bool
}

func NewMenu(svc *services.TrackerService, in io.Reader, out io.Writer, logger *log.Logger) *Menu {
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentMenu)
	}
	return &Menu{
		svc:         svc,
		in:          bufio.NewScanner(in),
		out:         out,
		logger:      logger,
		interactive: isTerminal(in),
	}
}

// isTerminal reports whether the reader is an interactive terminal. Piped
// input (scripts, tests) still works; it just ends the session at EOF
// instead of blocking on a prompt.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// prompt writes a label and reads one input line. ok is false at EOF.
// Piped answers are echoed after the label; a terminal already shows what
// the user typed.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	text := strings.TrimSpace(m.in.Text())
	if !m.interactive {
		fmt.Fprintln(m.out, text)
	}
	return text, true
}

// Run resolves the user profile and enters the main loop. It returns nil
// on a clean exit, including EOF on piped input.
func (m *Menu) Run(ctx context.Context) error {
	if !m.interactive {
		m.logger.DebugContext(ctx, "Running with non-terminal input")
	}

	fmt.Fprintln(m.out, "Welcome to FinTrack")

	username, ok := m.promptUsername()
	if !ok {
		return nil
	}

	userID, created, err := m.resolveUser(ctx, username)
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(m.out, "Welcome, %s! Profile created.\n", username)
	} else {
		fmt.Fprintf(m.out, "Welcome back, %s!\n", username)
	}

	return m.loop(ctx, userID)
}

func (m *Menu) promptUsername() (string, bool) {
	for {
		username, ok := m.prompt("Enter your username: ")
		if !ok {
			return "", false
		}
		if username != "" {
			return username, true
		}
		fmt.Fprintln(m.out, "Username cannot be empty.")
	}
}

// resolveUser finds or creates the profile. Only a first-time user is asked
// for a budget; a later visit ignores it (the stored budget wins).
func (m *Menu) resolveUser(ctx context.Context, username string) (int64, bool, error) {
	existing, err := m.svc.LookupUser(ctx, username)
	if err != nil {
		return 0, false, err
	}

	var budget float64
	created := existing == nil
	if created {
		raw, ok := m.prompt("Set your monthly budget: ")
		if ok && raw != "" {
			v, err := core.ParseAmount(raw)
			if err != nil || v < 0 {
				fmt.Fprintln(m.out, "Invalid budget, starting with 0.")
			} else {
				budget = v
			}
		}
	}

	id, err := m.svc.FindOrCreateUser(ctx, username, budget)
	if err != nil {
		return 0, false, err
	}
	return id, created, nil
}

func (m *Menu) loop(ctx context.Context, userID int64) error {
	for first := true; ; first = false {
		// A live terminal gets the banner before every choice; piped
		// input sees it once and then just answers prompts.
		if m.interactive || first {
			m.printBanner()
		}

		choice, ok := m.prompt("\nChoose an option: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			m.addExpense(ctx, userID)
		case "2":
			m.showSummary(ctx, userID)
		case "3":
			m.showBreakdown(ctx, userID)
		case "4":
			m.editOrDelete(ctx, userID)
		case "5":
			m.searchHistory(ctx, userID)
		case "6":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice.")
		}
	}
}

func (m *Menu) printBanner() {
	fmt.Fprint(m.out, "\n--- FINTRACK ---\n"+
		"1. Add Expense\n"+
		"2. View Monthly Summary\n"+
		"3. View Category Breakdown\n"+
		"4. Delete/Edit Expense\n"+
		"5. Search and Filter History\n"+
		"6. Exit\n")
}

func (m *Menu) addExpense(ctx context.Context, userID int64) {
	raw, ok := m.prompt("Enter amount: ")
	if !ok {
		return
	}
	amount, err := core.ParseAmount(raw)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid amount.")
		return
	}

	category, ok := m.prompt("Enter category (e.g. Food, Rent, Fun): ")
	if !ok {
		return
	}
	if category == "" {
		fmt.Fprintln(m.out, "Category cannot be empty.")
		return
	}

	description, ok := m.prompt("Description (optional): ")
	if !ok {
		return
	}

	if err := m.svc.AddExpense(ctx, userID, amount, category, description); err != nil {
		m.logger.ErrorContext(ctx, "Failed to add expense", log.FieldError, err, log.FieldUserID, userID)
		fmt.Fprintln(m.out, "Could not save the expense.")
		return
	}
	fmt.Fprintf(m.out, "Successfully added %.2f under %s.\n", amount, category)
}

func (m *Menu) showSummary(ctx context.Context, userID int64) {
	summary, found, err := m.svc.MonthlySummary(ctx, userID)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to compute summary", log.FieldError, err, log.FieldUserID, userID)
		fmt.Fprintln(m.out, "Could not compute the summary.")
		return
	}
	if !found {
		fmt.Fprintln(m.out, "No such user.")
		return
	}

	fmt.Fprint(m.out, "\n--- MONTHLY SUMMARY ---\n")
	fmt.Fprintf(m.out, "Total Budget:    %.2f\n", summary.Budget)
	fmt.Fprintf(m.out, "Total Spent:     %.2f\n", summary.Spent)
	fmt.Fprintf(m.out, "Remaining:       %.2f\n", summary.Remaining)
	fmt.Fprintf(m.out, "Days Left:       %d\n", summary.DaysLeft)
	fmt.Fprintf(m.out, "Daily Burn Rate: %.2f/day\n", summary.BurnRate)

	if summary.OverBudget() {
		fmt.Fprintln(m.out, "Warning: You are over budget!")
	}
}

func (m *Menu) showBreakdown(ctx context.Context, userID int64) {
	fmt.Fprint(m.out, "\n--- CATEGORY BREAKDOWN ---\n")

	breakdown, err := m.svc.CategoryBreakdown(ctx, userID)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to compute breakdown", log.FieldError, err, log.FieldUserID, userID)
		fmt.Fprintln(m.out, "Could not compute the breakdown.")
		return
	}
	if len(breakdown) == 0 {
		fmt.Fprintln(m.out, "No data found. Start by adding some expenses!")
		return
	}

	var total float64
	for _, ct := range breakdown {
		total += ct.Total
	}

	fmt.Fprintf(m.out, "%-15s | %-10s | %s\n", "Category", "Amount", "% of Total")
	fmt.Fprintln(m.out, strings.Repeat("-", 40))
	for _, ct := range breakdown {
		var pct float64
		if total != 0 {
			pct = ct.Total / total * 100
		}
		bar := strings.Repeat("#", barWidth(pct))
		fmt.Fprintf(m.out, "%-15s | %10.2f | %5.1f%% %s\n", ct.Category, ct.Total, pct, bar)
	}
	fmt.Fprintln(m.out, strings.Repeat("-", 40))
	fmt.Fprintf(m.out, "%-15s | %10.2f\n", "TOTAL", total)
}

// barWidth maps a percentage onto '#' marks, one per 5%.
func barWidth(pct float64) int {
	if pct <= 0 {
		return 0
	}
	return int(pct / 5)
}

func (m *Menu) editOrDelete(ctx context.Context, userID int64) {
	expenses, err := m.svc.FilteredExpenses(ctx, userID, "", nil)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to list expenses", log.FieldError, err, log.FieldUserID, userID)
		fmt.Fprintln(m.out, "Could not list your transactions.")
		return
	}

	fmt.Fprint(m.out, "\n--- YOUR TRANSACTIONS ---\n")
	for _, e := range expenses {
		fmt.Fprintf(m.out, "ID: %d | %s | %s: %.2f (%s)\n",
			e.ID, e.Date.Format(core.DateLayout), e.Category, e.Amount, e.Description)
	}

	choice, ok := m.prompt("\nDo you want to (E)dit or (D)elete an entry? (or 'B' to go back): ")
	if !ok {
		return
	}

	switch strings.ToLower(choice) {
	case "d":
		m.deleteExpense(ctx, userID)
	case "e":
		m.editExpense(ctx, userID)
	}
}

func (m *Menu) promptExpenseID(label string) (int64, bool) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fmt.Fprintln(m.out, "Invalid ID.")
		return 0, false
	}
	return id, true
}

func (m *Menu) deleteExpense(ctx context.Context, userID int64) {
	id, ok := m.promptExpenseID("Enter the ID to delete: ")
	if !ok {
		return
	}

	deleted, err := m.svc.DeleteExpense(ctx, id, userID)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to delete expense", log.FieldError, err, log.FieldExpenseID, id)
		fmt.Fprintln(m.out, "Could not delete the expense.")
		return
	}
	if deleted {
		fmt.Fprintln(m.out, "Expense deleted successfully.")
	} else {
		fmt.Fprintln(m.out, "Expense not found.")
	}
}

func (m *Menu) editExpense(ctx context.Context, userID int64) {
	id, ok := m.promptExpenseID("Enter the ID to edit: ")
	if !ok {
		return
	}

	fmt.Fprintln(m.out, "Leave blank to keep current value.")

	// Blank answers keep the stored values; the service treats a zero
	// amount and an empty category as "no change".
	var newAmount float64
	rawAmount, ok := m.prompt("New Amount: ")
	if !ok {
		return
	}
	if rawAmount != "" {
		v, err := core.ParseAmount(rawAmount)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid amount, keeping current value.")
		} else {
			newAmount = v
		}
	}

	newCategory, ok := m.prompt("New Category: ")
	if !ok {
		return
	}

	updated, err := m.svc.EditExpense(ctx, id, userID, newAmount, newCategory)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to edit expense", log.FieldError, err, log.FieldExpenseID, id)
		fmt.Fprintln(m.out, "Could not update the expense.")
		return
	}
	if updated {
		fmt.Fprintln(m.out, "Expense updated.")
	} else {
		fmt.Fprintln(m.out, "Expense not found.")
	}
}

func (m *Menu) searchHistory(ctx context.Context, userID int64) {
	fmt.Fprint(m.out, "\n--- SEARCH & FILTER HISTORY ---\n"+
		"1. Search by Keyword\n"+
		"2. Filter by Date Range\n"+
		"3. Both\n")

	choice, ok := m.prompt("Select search type: ")
	if !ok {
		return
	}

	var keyword string
	var dateRange *core.DateRange

	if choice == "1" || choice == "3" {
		keyword, ok = m.prompt("Enter keyword to search: ")
		if !ok {
			return
		}
	}

	if choice == "2" || choice == "3" {
		dateRange, ok = m.promptDateRange()
		if !ok {
			return
		}
	}

	results, err := m.svc.FilteredExpenses(ctx, userID, keyword, dateRange)
	if err != nil {
		m.logger.ErrorContext(ctx, "Failed to filter expenses", log.FieldError, err, log.FieldUserID, userID)
		fmt.Fprintln(m.out, "Could not search your history.")
		return
	}

	fmt.Fprintf(m.out, "\n--- FOUND %d ENTRIES ---\n", len(results))
	for _, e := range results {
		fmt.Fprintf(m.out, "%s | %s: %.2f | %s\n",
			e.Date.Format(core.DateLayout), e.Category, e.Amount, e.Description)
	}
}

// promptDateRange reads a start and end date. An unparsable date skips the
// date filter (nil range) rather than failing the search; any keyword
// filter still applies. The range end is pushed to 23:59 so the whole end
// day is included.
func (m *Menu) promptDateRange() (*core.DateRange, bool) {
	rawStart, ok := m.prompt("Enter start date (YYYY-MM-DD): ")
	if !ok {
		return nil, false
	}
	rawEnd, ok := m.prompt("Enter end date (YYYY-MM-DD): ")
	if !ok {
		return nil, false
	}

	start, errStart := core.ParseDate(rawStart)
	end, errEnd := core.ParseDate(rawEnd)
	if errStart != nil || errEnd != nil {
		fmt.Fprintln(m.out, "Invalid date format. Skipping date filter.")
		return nil, true
	}

	return &core.DateRange{Start: start, End: core.EndOfDay(end)}, true
}
