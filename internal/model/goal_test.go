package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGoal_ApplyProgress(t *testing.T) {
	tests := []struct {
		name          string
		start         decimal.Decimal
		add           decimal.Decimal
		wantStatus    GoalStatus
		wantMilestone bool
	}{
		{
			name:       "partial progress stays active",
			start:      decimal.NewFromInt(1_000_000),
			add:        decimal.NewFromInt(500_000),
			wantStatus: GoalActive,
		},
		{
			name:          "crossing a milestone marks it achieved",
			start:         decimal.NewFromInt(2_000_000),
			add:           decimal.NewFromInt(3_500_000),
			wantStatus:    GoalActive,
			wantMilestone: true,
		},
		{
			name:       "reaching the target completes the goal",
			start:      decimal.NewFromInt(4_000_000),
			add:        decimal.NewFromInt(6_000_000),
			wantStatus: GoalCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goal := &Goal{
				Status:        GoalActive,
				TargetAmount:  decimal.NewFromInt(10_000_000),
				CurrentAmount: tt.start,
				Milestones: []Milestone{
					{Label: "Target 3 Bulan", TargetAmount: decimal.NewFromInt(5_000_000)},
					{Label: "Target Akhir", TargetAmount: decimal.NewFromInt(10_000_000)},
				},
			}

			goal.ApplyProgress(tt.add)

			assert.Equal(t, tt.wantStatus, goal.Status)
			assert.Equal(t, tt.wantMilestone || tt.wantStatus == GoalCompleted, goal.Milestones[0].Achieved)
		})
	}
}

func TestGoal_ApplyProgress_IgnoresInactive(t *testing.T) {
	goal := &Goal{
		Status:        GoalCancelled,
		TargetAmount:  decimal.NewFromInt(1_000_000),
		CurrentAmount: decimal.Zero,
	}

	goal.ApplyProgress(decimal.NewFromInt(500_000))

	assert.True(t, goal.CurrentAmount.IsZero())
	assert.Equal(t, GoalCancelled, goal.Status)
}

func TestGoal_NextMilestone(t *testing.T) {
	goal := &Goal{
		Milestones: []Milestone{
			{Label: "Target 3 Bulan", Achieved: true},
			{Label: "Target 6 Bulan"},
			{Label: "Target Akhir"},
		},
	}

	next := goal.NextMilestone()
	assert.NotNil(t, next)
	assert.Equal(t, "Target 6 Bulan", next.Label)

	for i := range goal.Milestones {
		goal.Milestones[i].Achieved = true
	}
	assert.Nil(t, goal.NextMilestone())
}

func TestGoal_OnTrack(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	goal := &Goal{
		StartDate:     now.AddDate(0, -2, 0),
		MonthlyTarget: decimal.NewFromInt(1_000_000),
	}

	goal.CurrentAmount = decimal.NewFromInt(2_500_000)
	assert.True(t, goal.OnTrack(now))

	goal.CurrentAmount = decimal.NewFromInt(500_000)
	assert.False(t, goal.OnTrack(now))
}

func TestGoal_Remaining_NeverNegative(t *testing.T) {
	goal := &Goal{
		TargetAmount:  decimal.NewFromInt(1_000_000),
		CurrentAmount: decimal.NewFromInt(1_500_000),
	}
	assert.True(t, goal.Remaining().IsZero())
}

func TestGoal_ProjectedCompletion(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	goal := &Goal{
		TargetAmount:  decimal.NewFromInt(10_000_000),
		CurrentAmount: decimal.NewFromInt(4_000_000),
		MonthlyTarget: decimal.NewFromInt(2_000_000),
	}

	// 6M remaining at 2M per month rounds up to 3 months.
	assert.Equal(t, now.AddDate(0, 3, 0), goal.ProjectedCompletion(now))

	goal.CurrentAmount = decimal.NewFromInt(10_000_000)
	assert.Equal(t, now, goal.ProjectedCompletion(now))

	goal.MonthlyTarget = decimal.Zero
	assert.True(t, goal.ProjectedCompletion(now).IsZero())
}

func TestIntent_RequiresAmount(t *testing.T) {
	assert.True(t, IntentAddExpense.RequiresAmount())
	assert.True(t, IntentSetBudget.RequiresAmount())
	assert.False(t, IntentViewReport.RequiresAmount())
	assert.False(t, IntentHelp.RequiresAmount())
}
