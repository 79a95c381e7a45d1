package goal

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandhu/duitbot/internal/model"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time { return c.now }

type stubInsights struct {
	summary model.InsightSummary
	err     error
}

func (s *stubInsights) Summary(_ context.Context, _ string) (*model.InsightSummary, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.summary
	return &out, nil
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "whole months",
			from: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC),
			want: 6,
		},
		{
			name: "partial month truncates",
			from: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want: 1,
		},
		{
			name: "year boundary",
			from: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want: 3,
		},
		{
			name: "same month",
			from: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			to:   time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsBetween(tt.from, tt.to))
		})
	}
}

func TestMonthlyTarget(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := NewPlanner(&stubInsights{}, WithClock(stubClock{now: now}))

	target := p.MonthlyTarget(decimal.NewFromInt(10_000_000), time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	// Six whole months to the end of December.
	assert.True(t, target.Equal(decimal.RequireFromString("1666666.67")), "got %s", target)

	// A date inside the current month still divides by one.
	target = p.MonthlyTarget(decimal.NewFromInt(500_000), now.AddDate(0, 0, 10))
	assert.True(t, target.Equal(decimal.NewFromInt(500_000)), "got %s", target)
}

func TestAssessPenalties(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	overBudget := func(n int) []model.BudgetUtilization {
		out := make([]model.BudgetUtilization, n)
		for i := range out {
			out[i] = model.BudgetUtilization{Category: "Lainnya", Percent: 150}
		}
		return out
	}

	tests := []struct {
		name          string
		summary       model.InsightSummary
		monthlyTarget decimal.Decimal
		wantScore     int
		wantFactors   int
	}{
		{
			name: "no penalties",
			summary: model.InsightSummary{
				MonthlyAverageSavings: decimal.NewFromInt(2_000_000),
			},
			monthlyTarget: decimal.NewFromInt(1_000_000),
			wantScore:     100,
			wantFactors:   0,
		},
		{
			name: "target above average savings",
			summary: model.InsightSummary{
				MonthlyAverageSavings: decimal.NewFromInt(500_000),
			},
			monthlyTarget: decimal.NewFromInt(1_000_000),
			wantScore:     80,
			wantFactors:   1,
		},
		{
			name: "over budget categories stack",
			summary: model.InsightSummary{
				MonthlyAverageSavings: decimal.NewFromInt(2_000_000),
				BudgetUtilization:     overBudget(3),
			},
			monthlyTarget: decimal.NewFromInt(1_000_000),
			wantScore:     70,
			wantFactors:   1,
		},
		{
			name: "volatile history",
			summary: model.InsightSummary{
				MonthlyAverageSavings: decimal.NewFromInt(2_000_000),
				Volatility:            0.5,
			},
			monthlyTarget: decimal.NewFromInt(1_000_000),
			wantScore:     85,
			wantFactors:   1,
		},
		{
			name: "score clamps at zero",
			summary: model.InsightSummary{
				MonthlyAverageSavings: decimal.NewFromInt(100_000),
				BudgetUtilization:     overBudget(8),
				Volatility:            0.9,
			},
			monthlyTarget: decimal.NewFromInt(5_000_000),
			wantScore:     0,
			wantFactors:   3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlanner(&stubInsights{summary: tt.summary}, WithClock(stubClock{now: now}))
			got, err := p.Assess(context.Background(), "user-1", tt.monthlyTarget)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Len(t, got.Factors, tt.wantFactors)
			assert.Equal(t, Recommendation(tt.wantScore), got.Recommendation)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestRecommendationBands(t *testing.T) {
	assert.Equal(t, "Goal ini sangat realistis untuk dicapai.", Recommendation(80))
	assert.Equal(t, "Goal ini bisa dicapai dengan disiplin yang baik.", Recommendation(60))
	assert.Equal(t, "Goal ini menantang, perlu penyesuaian budget.", Recommendation(40))
	assert.Equal(t, "Goal ini terlalu ambisius, pertimbangkan untuk merevisi target.", Recommendation(39))
}

func TestMilestonesStrictlyIncreasing(t *testing.T) {
	now := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	p := NewPlanner(&stubInsights{}, WithClock(stubClock{now: now}))

	target := decimal.NewFromInt(12_000_000)
	targetDate := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	milestones := p.Milestones(target, targetDate)
	// 12 months: quarterly at 3, 6, 9, plus the final.
	require.Len(t, milestones, 4)

	for i := 1; i < len(milestones); i++ {
		assert.True(t, milestones[i].TargetDate.After(milestones[i-1].TargetDate),
			"dates must strictly increase at %d", i)
		assert.True(t, milestones[i].TargetAmount.GreaterThan(milestones[i-1].TargetAmount),
			"amounts must strictly increase at %d", i)
	}

	last := milestones[len(milestones)-1]
	assert.Equal(t, "Target Akhir", last.Label)
	assert.True(t, last.TargetAmount.Equal(target))
	assert.Equal(t, targetDate, last.TargetDate)
}

func TestMilestonesShortGoal(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := NewPlanner(&stubInsights{}, WithClock(stubClock{now: now}))

	milestones := p.Milestones(decimal.NewFromInt(900_000), now.AddDate(0, 2, 0))
	require.Len(t, milestones, 1)
	assert.Equal(t, "Target Akhir", milestones[0].Label)
}

func TestBuildStrategy(t *testing.T) {
	s := BuildStrategy(model.GoalSavings, 90)
	assert.Len(t, s.Steps, 3)
	assert.Empty(t, s.Adjustments)

	s = BuildStrategy(model.GoalEmergencyFund, 45)
	assert.Len(t, s.Steps, 3)
	assert.Equal(t, []string{
		"Perpanjang jangka waktu goal",
		"Kurangi target nominal",
		"Cari sumber pendapatan tambahan",
	}, s.Adjustments)
}

func TestPlan(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	insights := &stubInsights{summary: model.InsightSummary{
		MonthlyAverageSavings: decimal.NewFromInt(2_000_000),
	}}
	p := NewPlanner(insights, WithClock(stubClock{now: now}))

	g, feasibility, err := p.Plan(
		context.Background(),
		"user-1",
		"tabungan",
		model.GoalSavings,
		model.PriorityMedium,
		decimal.NewFromInt(10_000_000),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NotNil(t, g)

	assert.NotEmpty(t, g.ID)
	assert.Equal(t, model.GoalActive, g.Status)
	assert.Equal(t, feasibility.Score, g.FeasibilityScore)
	assert.True(t, g.MonthlyTarget.Equal(decimal.RequireFromString("1666666.67")), "got %s", g.MonthlyTarget)
	assert.NotEmpty(t, g.Milestones)
	assert.NotEmpty(t, g.Strategy.Steps)
	assert.NotEmpty(t, feasibility.Recommendation)
}

func TestPlanRejectsInvalidInput(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p := NewPlanner(&stubInsights{}, WithClock(stubClock{now: now}))

	_, _, err := p.Plan(context.Background(), "u", "x", model.GoalSavings,
		model.PriorityMedium, decimal.Zero, now.AddDate(0, 6, 0))
	assert.Error(t, err)

	_, _, err = p.Plan(context.Background(), "u", "x", model.GoalSavings,
		model.PriorityMedium, decimal.NewFromInt(100), now.AddDate(0, -1, 0))
	assert.Error(t, err)
}
