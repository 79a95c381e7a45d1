package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType categorizes what a financial goal is for.
type GoalType string

const (
	// GoalSavings is a general savings target.
	GoalSavings GoalType = "savings"
	// GoalDebtPayment is paying down a debt or installment.
	GoalDebtPayment GoalType = "debt_payment"
	// GoalInvestment is building an investment position.
	GoalInvestment GoalType = "investment"
	// GoalPurchase is saving toward a specific purchase.
	GoalPurchase GoalType = "purchase"
	// GoalEmergencyFund is building an emergency reserve.
	GoalEmergencyFund GoalType = "emergency_fund"
	// GoalEducation is saving for education costs.
	GoalEducation GoalType = "education"
)

// Indonesian returns the user-facing label for the goal type.
func (t GoalType) Indonesian() string {
	switch t {
	case GoalSavings:
		return "Tabungan"
	case GoalDebtPayment:
		return "Pembayaran Utang"
	case GoalInvestment:
		return "Investasi"
	case GoalPurchase:
		return "Pembelian"
	case GoalEmergencyFund:
		return "Dana Darurat"
	case GoalEducation:
		return "Pendidikan"
	default:
		return string(t)
	}
}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	// GoalActive is the initial and normal state.
	GoalActive GoalStatus = "active"
	// GoalPaused is reserved; no command currently pauses a goal.
	GoalPaused GoalStatus = "paused"
	// GoalCompleted is reached when the saved amount meets the target.
	GoalCompleted GoalStatus = "completed"
	// GoalCancelled is set by an explicit delete command.
	GoalCancelled GoalStatus = "cancelled"
)

// Milestone is an intermediate checkpoint inside a goal's timeline.
// Milestones are strictly increasing in both date and amount, and the last
// one always equals the goal's target date and amount.
type Milestone struct {
	TargetDate   time.Time
	Label        string
	TargetAmount decimal.Decimal
	Achieved     bool
}

// Strategy is the narrative plan attached to a goal: concrete steps plus
// adjustments suggested when feasibility is low.
type Strategy struct {
	Steps       []string
	Adjustments []string
}

// Goal is a financial goal with its derived planning data.
type Goal struct {
	StartDate        time.Time
	TargetDate       time.Time
	ID               string
	UserID           string
	Name             string
	Type             GoalType
	Priority         Priority
	Status           GoalStatus
	Milestones       []Milestone
	Strategy         Strategy
	TargetAmount     decimal.Decimal
	CurrentAmount    decimal.Decimal
	MonthlyTarget    decimal.Decimal
	FeasibilityScore int
}

// ProgressPercent returns how far along the goal is, in [0, 100+].
func (g *Goal) ProgressPercent() float64 {
	if g.TargetAmount.IsZero() {
		return 0
	}
	pct, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// Remaining returns the amount still needed to reach the target, floored at
// zero.
func (g *Goal) Remaining() decimal.Decimal {
	rem := g.TargetAmount.Sub(g.CurrentAmount)
	if rem.IsNegative() {
		return decimal.Zero
	}
	return rem
}

// ApplyProgress adds an amount toward the goal, refreshes milestone
// achievement flags, and completes the goal when the target is reached.
// Only active goals accept progress.
func (g *Goal) ApplyProgress(amount decimal.Decimal) {
	if g.Status != GoalActive {
		return
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	for i := range g.Milestones {
		g.Milestones[i].Achieved = g.CurrentAmount.GreaterThanOrEqual(g.Milestones[i].TargetAmount)
	}
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		g.Status = GoalCompleted
	}
}

// NextMilestone returns the first unachieved milestone, or nil when every
// checkpoint has been reached.
func (g *Goal) NextMilestone() *Milestone {
	for i := range g.Milestones {
		if !g.Milestones[i].Achieved {
			return &g.Milestones[i]
		}
	}
	return nil
}

// ProjectedCompletion estimates when the goal will be reached at the
// planned monthly pace. Returns the zero time when no pace is set.
func (g *Goal) ProjectedCompletion(now time.Time) time.Time {
	if !g.MonthlyTarget.IsPositive() {
		return time.Time{}
	}
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		return now
	}
	months, _ := g.Remaining().Div(g.MonthlyTarget).Ceil().Float64()
	return now.AddDate(0, int(months), 0)
}

// OnTrack reports whether saved progress keeps pace with the monthly target
// given how much time has elapsed since the goal started.
func (g *Goal) OnTrack(now time.Time) bool {
	elapsed := now.Sub(g.StartDate).Hours() / (24 * 30.44)
	if elapsed <= 0 {
		return true
	}
	expected := g.MonthlyTarget.Mul(decimal.NewFromFloat(elapsed))
	return g.CurrentAmount.GreaterThanOrEqual(expected)
}
