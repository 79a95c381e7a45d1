package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/model"
)

// CreateGoal inserts a goal. Milestones and strategy are stored as JSON
// since they are read back whole, never queried into.
func (s *SQLiteStorage) CreateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	milestones, err := json.Marshal(goal.Milestones)
	if err != nil {
		return fmt.Errorf("failed to marshal milestones: %w", err)
	}
	strategy, err := json.Marshal(goal.Strategy)
	if err != nil {
		return fmt.Errorf("failed to marshal strategy: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO goals (
			id, user_id, name, type, priority, status,
			target_amount, current_amount, monthly_target, feasibility_score,
			start_date, target_date, milestones, strategy
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		goal.ID,
		goal.UserID,
		goal.Name,
		string(goal.Type),
		string(goal.Priority),
		string(goal.Status),
		goal.TargetAmount.String(),
		goal.CurrentAmount.String(),
		goal.MonthlyTarget.String(),
		goal.FeasibilityScore,
		goal.StartDate,
		goal.TargetDate,
		string(milestones),
		string(strategy),
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal %s: %w", goal.ID, err)
	}

	return nil
}

// GetActiveGoals retrieves all active goals for a user, oldest first.
func (s *SQLiteStorage) GetActiveGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, type, priority, status,
		       target_amount, current_amount, monthly_target, feasibility_score,
		       start_date, target_date, milestones, strategy
		FROM goals
		WHERE user_id = ? AND status = ?
		ORDER BY start_date
	`, userID, string(model.GoalActive))
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []model.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}

	return goals, rows.Err()
}

// FindActiveGoalByName finds a user's active goal by case-insensitive name
// match. Commands often reference a goal by a fragment of its name, so a
// substring match is accepted, with an exact match winning over fragments.
// Returns ErrNotFound when no goal matches.
func (s *SQLiteStorage) FindActiveGoalByName(ctx context.Context, userID, name string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(name))
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, type, priority, status,
		       target_amount, current_amount, monthly_target, feasibility_score,
		       start_date, target_date, milestones, strategy
		FROM goals
		WHERE user_id = ? AND status = ? AND instr(LOWER(name), ?) > 0
		ORDER BY LOWER(name) = ? DESC, start_date
		LIMIT 1
	`, userID, string(model.GoalActive), needle, needle)

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("goal %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

// UpdateGoal persists changed goal fields, milestones included.
func (s *SQLiteStorage) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(goal); err != nil {
		return err
	}

	milestones, err := json.Marshal(goal.Milestones)
	if err != nil {
		return fmt.Errorf("failed to marshal milestones: %w", err)
	}
	strategy, err := json.Marshal(goal.Strategy)
	if err != nil {
		return fmt.Errorf("failed to marshal strategy: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, type = ?, priority = ?, status = ?,
		    target_amount = ?, current_amount = ?, monthly_target = ?,
		    feasibility_score = ?, target_date = ?, milestones = ?, strategy = ?
		WHERE id = ?
	`,
		goal.Name,
		string(goal.Type),
		string(goal.Priority),
		string(goal.Status),
		goal.TargetAmount.String(),
		goal.CurrentAmount.String(),
		goal.MonthlyTarget.String(),
		goal.FeasibilityScore,
		goal.TargetDate,
		string(milestones),
		string(strategy),
		goal.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", goal.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %s: %w", goal.ID, common.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (*model.Goal, error) {
	var g model.Goal
	var goalType, priority, status string
	var targetAmount, currentAmount, monthlyTarget string
	var milestones, strategy sql.NullString

	err := row.Scan(&g.ID, &g.UserID, &g.Name, &goalType, &priority, &status,
		&targetAmount, &currentAmount, &monthlyTarget, &g.FeasibilityScore,
		&g.StartDate, &g.TargetDate, &milestones, &strategy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan goal: %w", err)
	}

	g.Type = model.GoalType(goalType)
	g.Priority = model.Priority(priority)
	g.Status = model.GoalStatus(status)

	if g.TargetAmount, err = decimal.NewFromString(targetAmount); err != nil {
		return nil, fmt.Errorf("failed to parse target amount: %w", err)
	}
	if g.CurrentAmount, err = decimal.NewFromString(currentAmount); err != nil {
		return nil, fmt.Errorf("failed to parse current amount: %w", err)
	}
	if g.MonthlyTarget, err = decimal.NewFromString(monthlyTarget); err != nil {
		return nil, fmt.Errorf("failed to parse monthly target: %w", err)
	}

	if milestones.Valid && milestones.String != "" {
		if err := json.Unmarshal([]byte(milestones.String), &g.Milestones); err != nil {
			return nil, fmt.Errorf("failed to unmarshal milestones: %w", err)
		}
	}
	if strategy.Valid && strategy.String != "" {
		if err := json.Unmarshal([]byte(strategy.String), &g.Strategy); err != nil {
			return nil, fmt.Errorf("failed to unmarshal strategy: %w", err)
		}
	}

	return &g, nil
}
