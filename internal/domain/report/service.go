package report

import (
	"context"
	"math"
	"sort"
	"time"

	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/goal"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/transaction"
)

// maxRangeDays bounds report ranges so a bad request cannot walk
// years of days
const maxRangeDays = 400

// TransactionLister provides transactions for report ranges
type TransactionLister interface {
	ListByBudget(ctx context.Context, budgetID string, filter transaction.ListFilter) ([]transaction.Transaction, error)
}

// Snapshots reads daily snapshot rows and balances
type Snapshots interface {
	GetOrDefault(ctx context.Context, userID, budgetID string, date time.Time) (*dailystate.State, error)
	BalanceForDate(ctx context.Context, budgetID string, date time.Time) (int64, bool, error)
}

// Balances provides ledger balances for the balance series
type Balances interface {
	BalancesAsOf(ctx context.Context, userID, budgetID string, date time.Time) ([]ledger.BalanceLine, error)
}

// CategoryLister provides the category tree for rollups
type CategoryLister interface {
	ListByBudgetID(ctx context.Context, budgetID string) ([]category.Category, error)
}

// GoalLister provides goals for the summary
type GoalLister interface {
	ListByBudget(ctx context.Context, budgetID string) ([]goal.Goal, error)
}

// Service builds read-only reports over the other domains
type Service struct {
	transactions TransactionLister
	snapshots    Snapshots
	balances     Balances
	categories   CategoryLister
	goals        GoalLister
	auth         budget.Authorizer
}

// NewService creates a new report service
func NewService(transactions TransactionLister, snapshots Snapshots, balances Balances, categories CategoryLister, goals GoalLister, auth budget.Authorizer) *Service {
	return &Service{
		transactions: transactions,
		snapshots:    snapshots,
		balances:     balances,
		categories:   categories,
		goals:        goals,
		auth:         auth,
	}
}

// CashflowByDay returns income and expense totals for every day in
// the range, including empty days
func (s *Service) CashflowByDay(ctx context.Context, userID, budgetID string, from, to time.Time) ([]CashflowDay, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	days, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByBudget(ctx, budgetID, transaction.ListFilter{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	index := make(map[string]*CashflowDay, len(days))
	result := make([]CashflowDay, len(days))
	for i, day := range days {
		result[i] = CashflowDay{Date: day}
		index[dayKey(day)] = &result[i]
	}
	for _, tx := range txs {
		entry, ok := index[dayKey(tx.Date)]
		if !ok {
			continue
		}
		switch tx.Type {
		case transaction.TypeIncome:
			entry.IncomeTotal += tx.Amount
		case transaction.TypeExpense:
			entry.ExpenseTotal += tx.Amount
		}
	}
	for i := range result {
		result[i].NetTotal = result[i].IncomeTotal - result[i].ExpenseTotal
	}
	return result, nil
}

// BalanceByDay returns the balance series for the range. Assets come
// from the ledger as of each day; debt totals carry forward from the
// last snapshot that set them.
func (s *Service) BalanceByDay(ctx context.Context, userID, budgetID string, from, to time.Time) ([]BalanceDay, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	days, err := dateRange(from, to)
	if err != nil {
		return nil, err
	}

	var lastDebts int64
	var lastBalance int64
	result := make([]BalanceDay, 0, len(days))
	for _, day := range days {
		lines, err := s.balances.BalancesAsOf(ctx, userID, budgetID, day)
		if err != nil {
			return nil, err
		}
		assets := ledger.CalculateTotals(lines).AssetsTotal

		state, err := s.snapshots.GetOrDefault(ctx, userID, budgetID, day)
		if err != nil {
			return nil, err
		}
		if state.DebtsTotal() != 0 || state.AssetsTotal() != 0 {
			lastDebts = state.DebtsTotal()
		}

		balance := assets - lastDebts
		result = append(result, BalanceDay{
			Date:         day,
			AssetsTotal:  assets,
			DebtsTotal:   lastDebts,
			Balance:      balance,
			DeltaBalance: balance - lastBalance,
		})
		lastBalance = balance
	}
	return result, nil
}

// MonthReport builds the per-day reconciliation table for a calendar
// month plus the month's totals. Month is given as "2006-01".
func (s *Service) MonthReport(ctx context.Context, userID, budgetID, month string) (*MonthReport, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, ErrInvalidMonth
	}
	last := first.AddDate(0, 1, -1)
	days, err := dateRange(first, last)
	if err != nil {
		return nil, err
	}

	txs, err := s.transactions.ListByBudget(ctx, budgetID, transaction.ListFilter{From: &first, To: &last})
	if err != nil {
		return nil, err
	}
	income := make(map[string]int64)
	expense := make(map[string]int64)
	for _, tx := range txs {
		key := dayKey(tx.Date)
		switch tx.Type {
		case transaction.TypeIncome:
			income[key] += tx.Amount
		case transaction.TypeExpense:
			expense[key] += tx.Amount
		}
	}

	report := &MonthReport{Month: month, Days: make([]MonthDay, 0, len(days))}
	for _, day := range days {
		key := dayKey(day)
		bottom := income[key] - expense[key]
		report.MonthIncome += income[key]
		report.MonthExpense += expense[key]

		top, err := s.topTotal(ctx, budgetID, day)
		if err != nil {
			return nil, err
		}
		report.Days = append(report.Days, MonthDay{
			Date:        day,
			TopTotal:    top,
			BottomTotal: bottom,
			Diff:        top - bottom,
		})
	}
	report.MonthNet = report.MonthIncome - report.MonthExpense
	if len(days) > 0 {
		report.AvgNetPerDay = int64(math.Round(float64(report.MonthNet) / float64(len(days))))
	}
	return report, nil
}

// ExpensesByCategory rolls expense totals up to root categories,
// keeps the spending children visible, and sorts by amount. Share is
// the fraction of the period's total expense.
func (s *Service) ExpensesByCategory(ctx context.Context, userID, budgetID string, from, to time.Time, limit int) (*CategoryReport, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}

	txs, err := s.transactions.ListByBudget(ctx, budgetID, transaction.ListFilter{From: &from, To: &to, Type: transaction.TypeExpense})
	if err != nil {
		return nil, err
	}
	cats, err := s.categories.ListByBudgetID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]category.Category, len(cats))
	for _, cat := range cats {
		byID[cat.ID] = cat
	}

	totals := make(map[string]int64)
	var totalExpense int64
	for _, tx := range txs {
		if tx.CategoryID == nil {
			continue
		}
		if _, ok := byID[*tx.CategoryID]; !ok {
			continue
		}
		totals[*tx.CategoryID] += tx.Amount
		totalExpense += tx.Amount
	}

	children := make(map[string][]string)
	var roots []string
	for _, cat := range cats {
		if cat.ParentID != nil {
			if _, ok := byID[*cat.ParentID]; ok {
				children[*cat.ParentID] = append(children[*cat.ParentID], cat.ID)
				continue
			}
		}
		roots = append(roots, cat.ID)
	}

	var items []CategoryExpense
	for _, rootID := range roots {
		item := CategoryExpense{
			CategoryID:   rootID,
			CategoryName: byID[rootID].Name,
			Amount:       totals[rootID],
			Children:     []CategoryExpenseChild{},
		}
		for _, childID := range children[rootID] {
			amount := totals[childID]
			if amount <= 0 {
				continue
			}
			item.Amount += amount
			item.Children = append(item.Children, CategoryExpenseChild{
				CategoryID:   childID,
				CategoryName: byID[childID].Name,
				Amount:       amount,
			})
		}
		if item.Amount <= 0 {
			continue
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Amount > items[j].Amount })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	if totalExpense > 0 {
		for i := range items {
			items[i].Share = float64(items[i].Amount) / float64(totalExpense)
		}
	}
	return &CategoryReport{TotalExpense: totalExpense, Items: items}, nil
}

// Summary returns today's debt totals and the active goals
func (s *Service) Summary(ctx context.Context, userID, budgetID string) (*Summary, error) {
	if err := s.auth.Authorize(ctx, userID, budgetID); err != nil {
		return nil, err
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	state, err := s.snapshots.GetOrDefault(ctx, userID, budgetID, today)
	if err != nil {
		return nil, err
	}

	goals, err := s.goals.ListByBudget(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	active := make([]GoalSummary, 0, len(goals))
	for _, g := range goals {
		if g.Status != goal.StatusActive {
			continue
		}
		active = append(active, GoalSummary{
			Title:    g.Title,
			Target:   g.TargetAmount,
			Current:  g.CurrentAmount,
			Deadline: g.Deadline,
		})
	}

	return &Summary{
		DebtCardsTotal: state.DebtCardsTotal,
		DebtOtherTotal: state.DebtOtherTotal,
		GoalsActive:    active,
	}, nil
}

func (s *Service) topTotal(ctx context.Context, budgetID string, day time.Time) (int64, error) {
	today, hasToday, err := s.snapshots.BalanceForDate(ctx, budgetID, day)
	if err != nil {
		return 0, err
	}
	prev, hasPrev, err := s.snapshots.BalanceForDate(ctx, budgetID, day.AddDate(0, 0, -1))
	if err != nil {
		return 0, err
	}
	if !hasToday || !hasPrev {
		return 0, nil
	}
	return today - prev, nil
}

func dateRange(from, to time.Time) ([]time.Time, error) {
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	var days []time.Time
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
		if len(days) > maxRangeDays {
			return nil, ErrInvalidRange
		}
	}
	return days, nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
