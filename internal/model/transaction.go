package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TransactionExpense represents money spent.
	TransactionExpense TransactionType = "expense"
	// TransactionIncome represents money received.
	TransactionIncome TransactionType = "income"
)

// Transaction is a single recorded financial event for a user.
type Transaction struct {
	Date        time.Time
	CreatedAt   time.Time
	ID          string
	UserID      string
	Category    string
	Description string
	Type        TransactionType
	Amount      decimal.Decimal
}

// Budget caps spending for one category over a period, usually a calendar
// month.
type Budget struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	UserID      string
	Category    string
	Amount      decimal.Decimal
}

// Covers reports whether the instant falls inside the budget period.
func (b *Budget) Covers(at time.Time) bool {
	return !at.Before(b.PeriodStart) && !at.After(b.PeriodEnd)
}
