package model

import "github.com/shopspring/decimal"

// BudgetUtilization describes how one category budget performed.
type BudgetUtilization struct {
	Category string
	Budgeted decimal.Decimal
	Spent    decimal.Decimal
	Percent  float64
}

// InsightSummary condenses a user's trailing financial history into the
// signals the feasibility engine consumes.
type InsightSummary struct {
	BudgetUtilization     []BudgetUtilization
	TotalIncome           decimal.Decimal
	TotalExpenses         decimal.Decimal
	MonthlyAverageSavings decimal.Decimal
	SavingsRate           float64
	// Volatility is the coefficient of variation of monthly expense totals.
	Volatility float64
	// ExpenseTrend is the least-squares slope of monthly expenses,
	// normalized by the first month's total.
	ExpenseTrend float64
}

// OverBudgetCategories counts categories whose spending exceeded the budget.
func (s *InsightSummary) OverBudgetCategories() int {
	n := 0
	for _, b := range s.BudgetUtilization {
		if b.Percent > 100 {
			n++
		}
	}
	return n
}
