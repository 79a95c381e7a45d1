package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/model"
)

// SaveBudget inserts or replaces a category budget for its period.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category, amount, period_start, period_end)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, category, period_start)
		DO UPDATE SET amount = excluded.amount, period_end = excluded.period_end
	`,
		budget.UserID,
		budget.Category,
		budget.Amount.String(),
		budget.PeriodStart,
		budget.PeriodEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget for %s: %w", budget.Category, err)
	}

	return nil
}

// GetBudgets retrieves all budgets whose period covers the given instant.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, userID string, at time.Time) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, category, amount, period_start, period_end
		FROM budgets
		WHERE user_id = ? AND period_start <= ? AND period_end >= ?
		ORDER BY category
	`, userID, at, at)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var amount string
		if err := rows.Scan(&b.UserID, &b.Category, &amount, &b.PeriodStart, &b.PeriodEnd); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse budget amount: %w", err)
		}
		budgets = append(budgets, b)
	}

	return budgets, rows.Err()
}

// GetBudget retrieves one category budget covering the given instant.
// Returns ErrNotFound when no budget exists.
func (s *SQLiteStorage) GetBudget(ctx context.Context, userID, category string, at time.Time) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	var b model.Budget
	var amount string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_id, category, amount, period_start, period_end
		FROM budgets
		WHERE user_id = ? AND category = ? AND period_start <= ? AND period_end >= ?
	`, userID, category, at, at).Scan(&b.UserID, &b.Category, &amount, &b.PeriodStart, &b.PeriodEnd)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("budget for %s: %w", category, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	b.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse budget amount: %w", err)
	}

	return &b, nil
}
