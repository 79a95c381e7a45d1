// Package service defines the interfaces for all application collaborators.
package service

import (
	"context"
	"time"

	"github.com/pandhu/duitbot/internal/model"
	"github.com/shopspring/decimal"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	UserID    string
	Category  string
	Type      model.TransactionType
	Limit     int
	Offset    int
}

// MonthlyTotal is one month's summed transaction amount.
type MonthlyTotal struct {
	Year  int
	Month time.Month
	Total decimal.Decimal
}

// Storage defines the contract for the persistence collaborator. The
// dialogue core never touches durable storage directly; handlers go through
// this interface so the engine stays testable and transport-free.
type Storage interface {
	// Transaction operations
	SaveTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	SumByCategory(ctx context.Context, userID string, txType model.TransactionType, start, end time.Time) (map[string]decimal.Decimal, error)
	MonthlyTotals(ctx context.Context, userID string, txType model.TransactionType, start, end time.Time) ([]MonthlyTotal, error)

	// Budget operations
	SaveBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, userID string, at time.Time) ([]model.Budget, error)
	GetBudget(ctx context.Context, userID, category string, at time.Time) (*model.Budget, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetActiveGoals(ctx context.Context, userID string) ([]model.Goal, error)
	FindActiveGoalByName(ctx context.Context, userID, name string) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Insights defines the contract for the historical-insight collaborator
// consumed by the goal feasibility engine.
type Insights interface {
	Summary(ctx context.Context, userID string) (*model.InsightSummary, error)
}

// Clock is the single source of "now", injectable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// RetryOptions configures retry behavior for collaborator calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
