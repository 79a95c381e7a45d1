// Package insight condenses a user's transaction and budget history into
// the summary signals consumed by the goal feasibility engine.
package insight

import (
	"context"
	"fmt"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/service"
)

const (
	// historyMonths is the trailing window the summary is computed over.
	historyMonths = 6

	cacheSize = 1024
	cacheTTL  = 5 * time.Minute
)

// Service computes insight summaries from the storage collaborator.
// Summaries are cached briefly since several handlers may request the same
// user's summary within a single conversation.
type Service struct {
	storage service.Storage
	clock   service.Clock
	cache   *lru.LRU[string, *model.InsightSummary]
	retry   service.RetryOptions
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(c service.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithRetry overrides the retry policy for history reads.
func WithRetry(opts service.RetryOptions) Option {
	return func(s *Service) { s.retry = opts }
}

// WithCacheTTL overrides how long summaries stay cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cache = lru.NewLRU[string, *model.InsightSummary](cacheSize, nil, ttl)
	}
}

// NewService creates an insight service backed by the given storage.
func NewService(storage service.Storage, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		clock:   service.SystemClock{},
		cache:   lru.NewLRU[string, *model.InsightSummary](cacheSize, nil, cacheTTL),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Invalidate drops a user's cached summary. Handlers call this after
// writing a transaction or budget so the next assessment sees fresh data.
func (s *Service) Invalidate(userID string) {
	s.cache.Remove(userID)
}

// Summary computes the trailing six-month financial summary for a user.
func (s *Service) Summary(ctx context.Context, userID string) (*model.InsightSummary, error) {
	if cached, ok := s.cache.Get(userID); ok {
		return cached, nil
	}

	now := s.clock.Now()
	windowStart := startOfMonth(now).AddDate(0, -historyMonths, 0)

	// History reads are idempotent, so transient storage failures retry.
	var incomeTotals, expenseTotals []service.MonthlyTotal
	err := common.WithRetry(ctx, func() error {
		var readErr error
		incomeTotals, readErr = s.storage.MonthlyTotals(ctx, userID, model.TransactionIncome, windowStart, now)
		return readErr
	}, s.retry)
	if err != nil {
		return nil, fmt.Errorf("loading income history: %w", err)
	}
	err = common.WithRetry(ctx, func() error {
		var readErr error
		expenseTotals, readErr = s.storage.MonthlyTotals(ctx, userID, model.TransactionExpense, windowStart, now)
		return readErr
	}, s.retry)
	if err != nil {
		return nil, fmt.Errorf("loading expense history: %w", err)
	}

	summary := &model.InsightSummary{
		TotalIncome:   sumTotals(incomeTotals),
		TotalExpenses: sumTotals(expenseTotals),
	}

	savings := summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.MonthlyAverageSavings = savings.DivRound(decimal.NewFromInt(historyMonths), 2)
	if summary.TotalIncome.IsPositive() {
		rate, _ := savings.Div(summary.TotalIncome).Mul(decimal.NewFromInt(100)).Float64()
		summary.SavingsRate = rate
	}

	expenseSeries := toFloats(expenseTotals)
	summary.Volatility = volatility(expenseSeries)
	summary.ExpenseTrend = trend(expenseSeries)

	utilization, err := s.budgetUtilization(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	summary.BudgetUtilization = utilization

	s.cache.Add(userID, summary)
	return summary, nil
}

func (s *Service) budgetUtilization(ctx context.Context, userID string, now time.Time) ([]model.BudgetUtilization, error) {
	budgets, err := s.storage.GetBudgets(ctx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("loading budgets: %w", err)
	}
	if len(budgets) == 0 {
		return nil, nil
	}

	spentByCategory, err := s.storage.SumByCategory(ctx, userID, model.TransactionExpense, startOfMonth(now), now)
	if err != nil {
		return nil, fmt.Errorf("loading category spending: %w", err)
	}

	utilization := make([]model.BudgetUtilization, 0, len(budgets))
	for _, b := range budgets {
		spent := spentByCategory[b.Category]
		u := model.BudgetUtilization{
			Category: b.Category,
			Budgeted: b.Amount,
			Spent:    spent,
		}
		if b.Amount.IsPositive() {
			pct, _ := spent.Div(b.Amount).Mul(decimal.NewFromInt(100)).Float64()
			u.Percent = pct
		}
		utilization = append(utilization, u)
	}
	return utilization, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func sumTotals(totals []service.MonthlyTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}

func toFloats(totals []service.MonthlyTotal) []float64 {
	out := make([]float64, len(totals))
	for i, t := range totals {
		out[i], _ = t.Total.Float64()
	}
	return out
}

// volatility is the coefficient of variation of the series: standard
// deviation over mean. A flat series yields zero.
func volatility(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))
	if mean == 0 {
		return 0
	}
	variance := 0.0
	for _, v := range series {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(series))
	return math.Sqrt(variance) / mean
}

// trend is the least-squares slope of the series normalized by its first
// value, so a doubling per step reads as 1.0.
func trend(series []float64) float64 {
	n := len(series)
	if n < 2 || series[0] == 0 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	slope := (fn*sumXY - sumX*sumY) / denom
	return slope / series[0]
}
