package report

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("invalid date range")
	ErrInvalidMonth = errors.New("invalid month format")
)

// CashflowDay is one day of income and expense totals
type CashflowDay struct {
	Date         time.Time `json:"date"`
	IncomeTotal  int64     `json:"incomeTotal"`
	ExpenseTotal int64     `json:"expenseTotal"`
	NetTotal     int64     `json:"netTotal"`
}

// BalanceDay is one day of the balance series. Debt fields carry
// forward from the last filled snapshot when a day has none.
type BalanceDay struct {
	Date         time.Time `json:"date"`
	AssetsTotal  int64     `json:"assetsTotal"`
	DebtsTotal   int64     `json:"debtsTotal"`
	Balance      int64     `json:"balance"`
	DeltaBalance int64     `json:"deltaBalance"`
}

// MonthDay is one day of the month report with both reconciliation
// views
type MonthDay struct {
	Date        time.Time `json:"date"`
	TopTotal    int64     `json:"topTotal"`
	BottomTotal int64     `json:"bottomTotal"`
	Diff        int64     `json:"diff"`
}

// MonthReport aggregates a calendar month
type MonthReport struct {
	Month        string     `json:"month"`
	Days         []MonthDay `json:"days"`
	MonthIncome  int64      `json:"monthIncome"`
	MonthExpense int64      `json:"monthExpense"`
	MonthNet     int64      `json:"monthNet"`
	AvgNetPerDay int64      `json:"avgNetPerDay"`
}

// CategoryExpenseChild is a subcategory's share of its parent's total
type CategoryExpenseChild struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Amount       int64  `json:"amount"`
}

// CategoryExpense is a root category's expense total with its
// children rolled up into it
type CategoryExpense struct {
	CategoryID   string                 `json:"categoryId"`
	CategoryName string                 `json:"categoryName"`
	Amount       int64                  `json:"amount"`
	Share        float64                `json:"share,omitempty"`
	Children     []CategoryExpenseChild `json:"children"`
}

// CategoryReport is the expenses-by-category breakdown
type CategoryReport struct {
	TotalExpense int64             `json:"totalExpense"`
	Items        []CategoryExpense `json:"items"`
}

// GoalSummary is the slice of a goal shown on the summary screen
type GoalSummary struct {
	Title    string     `json:"title"`
	Target   int64      `json:"target"`
	Current  int64      `json:"current"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

// Summary is the dashboard header: current debt totals and active
// goals
type Summary struct {
	DebtCardsTotal int64         `json:"debtCardsTotal"`
	DebtOtherTotal int64         `json:"debtOtherTotal"`
	GoalsActive    []GoalSummary `json:"goalsActive"`
}
