// Package model defines the core domain types shared across the application.
package model

// Intent is the closed category of user purpose a message is classified into.
type Intent string

const (
	// IntentAddExpense records a new expense transaction.
	IntentAddExpense Intent = "add_expense"
	// IntentAddIncome records a new income transaction.
	IntentAddIncome Intent = "add_income"
	// IntentViewReport requests a financial report.
	IntentViewReport Intent = "view_report"
	// IntentSetBudget creates or updates a category budget.
	IntentSetBudget Intent = "set_budget"
	// IntentCheckBudget requests current budget utilization.
	IntentCheckBudget Intent = "check_budget"
	// IntentTransactionHistory requests recent transactions.
	IntentTransactionHistory Intent = "transaction_history"
	// IntentCreateGoal creates a new savings goal.
	IntentCreateGoal Intent = "tambah_goal"
	// IntentViewGoal lists active goals with progress.
	IntentViewGoal Intent = "lihat_goal"
	// IntentUpdateGoal records progress against an existing goal.
	IntentUpdateGoal Intent = "update_goal"
	// IntentDeleteGoal cancels an existing goal.
	IntentDeleteGoal Intent = "hapus_goal"
	// IntentTips requests financial education content.
	IntentTips Intent = "tips"
	// IntentHelp requests the usage guide.
	IntentHelp Intent = "help"
	// IntentUnknown is assigned when classification is ambiguous or below threshold.
	IntentUnknown Intent = "unknown"
)

// AllIntents lists every classifiable intent, excluding IntentUnknown.
// The classifier trains one class per entry.
func AllIntents() []Intent {
	return []Intent{
		IntentAddExpense,
		IntentAddIncome,
		IntentViewReport,
		IntentSetBudget,
		IntentCheckBudget,
		IntentTransactionHistory,
		IntentCreateGoal,
		IntentViewGoal,
		IntentUpdateGoal,
		IntentDeleteGoal,
		IntentTips,
		IntentHelp,
	}
}

// Valid reports whether the intent is a member of the closed vocabulary.
func (i Intent) Valid() bool {
	if i == IntentUnknown {
		return true
	}
	for _, known := range AllIntents() {
		if i == known {
			return true
		}
	}
	return false
}

// RequiresAmount reports whether the intent cannot be committed without a
// monetary amount. The dispatcher prompts for one when it is missing.
func (i Intent) RequiresAmount() bool {
	switch i {
	case IntentAddExpense, IntentAddIncome, IntentSetBudget, IntentUpdateGoal, IntentCreateGoal:
		return true
	default:
		return false
	}
}
