package goal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/service"
)

// Config holds the feasibility penalty constants. The values are tuned
// heuristics, not derived from a model; change them only deliberately.
type Config struct {
	SavingsPenalty      int
	BudgetPenalty       int
	VolatilityPenalty   int
	VolatilityThreshold float64
}

// DefaultConfig returns the standard penalty tuning.
func DefaultConfig() Config {
	return Config{
		SavingsPenalty:      20,
		BudgetPenalty:       10,
		VolatilityPenalty:   15,
		VolatilityThreshold: 0.3,
	}
}

// Factor explains one contribution to a feasibility score.
type Factor struct {
	Type    string
	Message string
}

// Feasibility is the outcome of assessing a proposed goal against the
// user's financial history.
type Feasibility struct {
	Recommendation string
	Factors        []Factor
	Score          int
}

// Planner derives the planning data attached to a goal: monthly target,
// feasibility, milestone schedule, and strategy.
type Planner struct {
	insights service.Insights
	clock    service.Clock
	cfg      Config
}

// Option configures a Planner.
type Option func(*Planner)

// WithConfig overrides the penalty constants.
func WithConfig(cfg Config) Option {
	return func(p *Planner) { p.cfg = cfg }
}

// WithClock overrides the time source.
func WithClock(c service.Clock) Option {
	return func(p *Planner) { p.clock = c }
}

// NewPlanner creates a planner backed by the given insight collaborator.
func NewPlanner(insights service.Insights, opts ...Option) *Planner {
	p := &Planner{
		insights: insights,
		clock:    service.SystemClock{},
		cfg:      DefaultConfig(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// MonthsBetween returns the number of whole calendar months from one date
// to another. Partial months are truncated, so Jan 15 to Mar 10 is one
// month.
func MonthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// MonthlyTarget computes the amount that must be put aside each month to
// reach targetAmount by targetDate. The horizon is floored at one month so
// a near-term date never divides by zero.
func (p *Planner) MonthlyTarget(targetAmount decimal.Decimal, targetDate time.Time) decimal.Decimal {
	months := MonthsBetween(p.clock.Now(), targetDate)
	if months < 1 {
		months = 1
	}
	return targetAmount.DivRound(decimal.NewFromInt(int64(months)), 2)
}

// Assess scores how achievable a monthly saving target is given the user's
// trailing financial history. The score starts at 100 and deterministic
// penalties are subtracted, clamped to [0, 100].
func (p *Planner) Assess(ctx context.Context, userID string, monthlyTarget decimal.Decimal) (Feasibility, error) {
	summary, err := p.insights.Summary(ctx, userID)
	if err != nil {
		return Feasibility{}, fmt.Errorf("assessing goal feasibility: %w", err)
	}

	score := 100
	var factors []Factor

	if monthlyTarget.GreaterThan(summary.MonthlyAverageSavings) {
		score -= p.cfg.SavingsPenalty
		factors = append(factors, Factor{
			Type:    "warning",
			Message: "Target bulanan melebihi rata-rata tabungan Anda",
		})
	}

	if over := summary.OverBudgetCategories(); over > 0 {
		score -= p.cfg.BudgetPenalty * over
		factors = append(factors, Factor{
			Type:    "warning",
			Message: "Beberapa kategori budget Anda sering terlampaui",
		})
	}

	if summary.Volatility > p.cfg.VolatilityThreshold {
		score -= p.cfg.VolatilityPenalty
		factors = append(factors, Factor{
			Type:    "warning",
			Message: "Pola pemasukan/pengeluaran Anda cukup fluktuatif",
		})
	}

	if score < 0 {
		score = 0
	}

	return Feasibility{
		Score:          score,
		Factors:        factors,
		Recommendation: Recommendation(score),
	}, nil
}

// Recommendation maps a feasibility score to its advisory text.
func Recommendation(score int) string {
	switch {
	case score >= 80:
		return "Goal ini sangat realistis untuk dicapai."
	case score >= 60:
		return "Goal ini bisa dicapai dengan disiplin yang baik."
	case score >= 40:
		return "Goal ini menantang, perlu penyesuaian budget."
	default:
		return "Goal ini terlalu ambisius, pertimbangkan untuk merevisi target."
	}
}

// Milestones builds the checkpoint schedule for a goal: quarterly targets
// with linearly interpolated amounts, closed by a final milestone at the
// target date and amount. Goals shorter than a quarter get only the final
// milestone.
func (p *Planner) Milestones(targetAmount decimal.Decimal, targetDate time.Time) []model.Milestone {
	now := p.clock.Now()
	totalMonths := MonthsBetween(now, targetDate)

	var milestones []model.Milestone
	if totalMonths > 3 {
		perMonth := targetAmount.Div(decimal.NewFromInt(int64(totalMonths)))
		for i := 3; i < totalMonths; i += 3 {
			milestones = append(milestones, model.Milestone{
				Label:        fmt.Sprintf("Target %d Bulan", i),
				TargetDate:   now.AddDate(0, i, 0),
				TargetAmount: perMonth.Mul(decimal.NewFromInt(int64(i))).Round(2),
			})
		}
	}

	milestones = append(milestones, model.Milestone{
		Label:        "Target Akhir",
		TargetDate:   targetDate,
		TargetAmount: targetAmount,
	})

	return milestones
}

// BuildStrategy picks the step plan for a goal type and, when feasibility
// is weak, attaches adjustment suggestions.
func BuildStrategy(goalType model.GoalType, feasibilityScore int) model.Strategy {
	var strategy model.Strategy

	switch goalType {
	case model.GoalSavings:
		strategy.Steps = []string{
			"Atur auto-debit untuk tabungan rutin",
			"Alokasikan bonus dan pendapatan tidak terduga",
			"Review dan kurangi pengeluaran tidak penting",
		}
	case model.GoalInvestment:
		strategy.Steps = []string{
			"Riset instrumen investasi yang sesuai",
			"Mulai dengan investasi rutin minimal",
			"Diversifikasi portofolio seiring waktu",
		}
	case model.GoalEmergencyFund:
		strategy.Steps = []string{
			"Prioritaskan dana darurat sebelum investasi",
			"Simpan di instrumen yang likuid",
			"Target minimal 3x pengeluaran bulanan",
		}
	case model.GoalDebtPayment:
		strategy.Steps = []string{
			"Lunasi utang dengan bunga tertinggi lebih dulu",
			"Hindari menambah utang konsumtif baru",
			"Sisihkan alokasi tetap setiap gajian",
		}
	case model.GoalPurchase:
		strategy.Steps = []string{
			"Bandingkan harga dan tunggu momen promo",
			"Pisahkan dana pembelian dari rekening harian",
			"Tunda pembelian jika dana belum terkumpul",
		}
	case model.GoalEducation:
		strategy.Steps = []string{
			"Cek estimasi biaya pendidikan terkini",
			"Pertimbangkan instrumen dengan imbal hasil stabil",
			"Sisihkan dana pendidikan di awal bulan",
		}
	}

	if feasibilityScore < 60 {
		strategy.Adjustments = []string{
			"Perpanjang jangka waktu goal",
			"Kurangi target nominal",
			"Cari sumber pendapatan tambahan",
		}
	}

	return strategy
}

// Plan builds a complete goal from the user's request: derives the monthly
// target, assesses feasibility, and generates milestones and strategy.
func (p *Planner) Plan(ctx context.Context, userID, name string, goalType model.GoalType, priority model.Priority, targetAmount decimal.Decimal, targetDate time.Time) (*model.Goal, Feasibility, error) {
	now := p.clock.Now()
	if !targetAmount.IsPositive() {
		return nil, Feasibility{}, fmt.Errorf("target amount must be positive")
	}
	if !targetDate.After(now) {
		return nil, Feasibility{}, fmt.Errorf("target date must be in the future")
	}

	monthlyTarget := p.MonthlyTarget(targetAmount, targetDate)

	feasibility, err := p.Assess(ctx, userID, monthlyTarget)
	if err != nil {
		return nil, Feasibility{}, err
	}

	g := &model.Goal{
		ID:               uuid.New().String(),
		UserID:           userID,
		Name:             name,
		Type:             goalType,
		Priority:         priority,
		Status:           model.GoalActive,
		StartDate:        now,
		TargetDate:       targetDate,
		TargetAmount:     targetAmount,
		MonthlyTarget:    monthlyTarget,
		FeasibilityScore: feasibility.Score,
		Milestones:       p.Milestones(targetAmount, targetDate),
		Strategy:         BuildStrategy(goalType, feasibility.Score),
	}

	return g, feasibility, nil
}
