package dispatch

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/common"
	"github.com/pandhu/duitbot/internal/dialogue"
	"github.com/pandhu/duitbot/internal/extract"
	"github.com/pandhu/duitbot/internal/model"
	"github.com/pandhu/duitbot/internal/service"
	"github.com/pandhu/duitbot/internal/tips"
)

// route dispatches a fresh command by intent. The switch is exhaustive
// over the closed intent vocabulary.
func (d *Dispatcher) route(ctx context.Context, dctx *dialogue.Context, userID string, detected model.Intent, entities model.ExtractedEntities, text string, now time.Time) model.Reply {
	switch detected {
	case model.IntentAddExpense:
		return d.handleAddTransaction(ctx, dctx, userID, model.TransactionExpense, entities, text, now)
	case model.IntentAddIncome:
		return d.handleAddTransaction(ctx, dctx, userID, model.TransactionIncome, entities, text, now)
	case model.IntentViewReport:
		return d.handleViewReport(ctx, dctx, userID, now)
	case model.IntentSetBudget:
		return d.handleSetBudget(ctx, dctx, userID, entities, text, now)
	case model.IntentCheckBudget:
		return d.handleCheckBudget(ctx, dctx, userID, now)
	case model.IntentTransactionHistory:
		return d.handleHistory(ctx, dctx, userID, now)
	case model.IntentCreateGoal:
		return d.handleCreateGoal(ctx, dctx, userID, entities, text, now)
	case model.IntentViewGoal:
		return d.handleViewGoal(ctx, dctx, userID, now)
	case model.IntentUpdateGoal:
		return d.handleUpdateGoal(ctx, dctx, userID, entities, now)
	case model.IntentDeleteGoal:
		return d.handleDeleteGoal(ctx, dctx, userID, text, now)
	case model.IntentTips:
		return d.handleTips(ctx, dctx, userID, now)
	case model.IntentHelp:
		return model.TextReply(helpText)
	case model.IntentUnknown:
		return model.TextReply(replyUnknown)
	default:
		return model.TextReply(replyUnknown)
	}
}

func (d *Dispatcher) handleAddTransaction(ctx context.Context, dctx *dialogue.Context, userID string, txType model.TransactionType, entities model.ExtractedEntities, text string, now time.Time) model.Reply {
	if entities.Amount == nil {
		prompt := `Mohon cantumkan jumlah pengeluaran. Contoh: "catat pengeluaran 50rb untuk makan"`
		pendingIntent := model.IntentAddExpense
		if txType == model.TransactionIncome {
			prompt = `Mohon cantumkan jumlah pemasukan. Contoh: "catat pemasukan 1jt gaji"`
			pendingIntent = model.IntentAddIncome
		}
		return d.beginAmountPrompt(dctx, pendingIntent, entities, text, prompt, now)
	}

	return d.commitTransaction(ctx, dctx, userID, txType, *entities.Amount, entities.Category, entities.Date, text, now)
}

// commitTransaction persists the transaction and, for expenses, appends a
// budget warning when the category's budget is near or over its limit.
func (d *Dispatcher) commitTransaction(ctx context.Context, dctx *dialogue.Context, userID string, txType model.TransactionType, amount decimal.Decimal, category string, date time.Time, description string, now time.Time) model.Reply {
	txn := &model.Transaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        txType,
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Date:        date,
		CreatedAt:   now,
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.storage.SaveTransaction(callCtx, txn); err != nil {
		return d.fail(dctx, err, "save_transaction", now)
	}
	d.invalidateInsights(userID)

	var content string
	if txType == model.TransactionIncome {
		content = "✅ Pemasukan sebesar Rp " + FormatRupiah(amount) +
			" dari kategori " + category + " berhasil dicatat."
	} else {
		content = "✅ Pengeluaran sebesar Rp " + FormatRupiah(amount) +
			" untuk kategori " + category + " berhasil dicatat."
		content += d.budgetWarning(ctx, userID, category, now)
	}

	return model.TextReply(content)
}

// budgetWarning checks month-to-date spending against the category budget.
// A failed lookup degrades to no warning rather than failing the commit.
func (d *Dispatcher) budgetWarning(ctx context.Context, userID, category string, now time.Time) string {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	budget, err := d.storage.GetBudget(callCtx, userID, category, now)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			common.LogWarn("budget check skipped", common.Fields{"error": err.Error()})
		}
		return ""
	}

	spent, err := d.monthToDateSpending(ctx, userID, now)
	if err != nil {
		common.LogWarn("budget check skipped", common.Fields{"error": err.Error()})
		return ""
	}

	categorySpent := spent[category]
	switch {
	case categorySpent.GreaterThanOrEqual(budget.Amount):
		return "\n\n⚠️ Perhatian: Budget untuk kategori " + category + " sudah terlampaui!"
	case categorySpent.GreaterThanOrEqual(budget.Amount.Mul(decimal.NewFromFloat(0.8))):
		return "\n\n⚠️ Perhatian: Budget untuk kategori " + category + " sudah mencapai 80%"
	default:
		return ""
	}
}

func (d *Dispatcher) monthToDateSpending(ctx context.Context, userID string, now time.Time) (map[string]decimal.Decimal, error) {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return d.storage.SumByCategory(callCtx, userID, model.TransactionExpense, monthStart, now)
}

func (d *Dispatcher) handleSetBudget(ctx context.Context, dctx *dialogue.Context, userID string, entities model.ExtractedEntities, text string, now time.Time) model.Reply {
	if entities.Amount == nil {
		prompt := `Mohon cantumkan jumlah budget. Contoh: "atur budget makan 1jt"`
		return d.beginAmountPrompt(dctx, model.IntentSetBudget, entities, text, prompt, now)
	}
	return d.commitBudget(ctx, dctx, userID, entities.Category, *entities.Amount, now)
}

func (d *Dispatcher) commitBudget(ctx context.Context, dctx *dialogue.Context, userID, category string, amount decimal.Decimal, now time.Time) model.Reply {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

	budget := &model.Budget{
		UserID:      userID,
		Category:    category,
		Amount:      amount,
		PeriodStart: monthStart,
		PeriodEnd:   monthEnd,
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	if err := d.storage.SaveBudget(callCtx, budget); err != nil {
		return d.fail(dctx, err, "save_budget", now)
	}
	d.invalidateInsights(userID)

	return model.TextReply("✅ Budget untuk kategori " + category +
		" sebesar Rp " + FormatRupiah(amount) + " berhasil diatur untuk bulan ini.")
}

func (d *Dispatcher) handleCheckBudget(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	budgets, err := d.storage.GetBudgets(callCtx, userID, now)
	if err != nil {
		return d.fail(dctx, err, "get_budgets", now)
	}
	if len(budgets) == 0 {
		return model.TextReply(replyNoBudgets)
	}

	spent, err := d.monthToDateSpending(ctx, userID, now)
	if err != nil {
		return d.fail(dctx, err, "sum_by_category", now)
	}

	var sb strings.Builder
	sb.WriteString("Status Budget Bulan Ini:\n\n")
	for _, budget := range budgets {
		used := spent[budget.Category]
		remaining := budget.Amount.Sub(used)
		percent := decimal.Zero
		if budget.Amount.IsPositive() {
			percent = used.Div(budget.Amount).Mul(decimal.NewFromInt(100))
		}

		sb.WriteString(budget.Category + ":\n")
		sb.WriteString("Budget: Rp " + FormatRupiah(budget.Amount) + "\n")
		sb.WriteString("Terpakai: Rp " + FormatRupiah(used) + " (" + percent.StringFixed(1) + "%)\n")
		sb.WriteString("Sisa: Rp " + FormatRupiah(remaining) + "\n\n")
	}

	return model.TextReply(strings.TrimRight(sb.String(), "\n"))
}

func (d *Dispatcher) handleViewReport(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	expenses, err := d.storage.SumByCategory(callCtx, userID, model.TransactionExpense, monthStart, now)
	if err != nil {
		return d.fail(dctx, err, "sum_expenses", now)
	}

	callCtx2, cancel2 := d.callCtx(ctx)
	defer cancel2()
	income, err := d.storage.SumByCategory(callCtx2, userID, model.TransactionIncome, monthStart, now)
	if err != nil {
		return d.fail(dctx, err, "sum_income", now)
	}

	summary := &model.ReportSummary{
		ByExpenseCategory: toCategoryTotals(expenses),
		ByIncomeCategory:  toCategoryTotals(income),
	}
	for _, ct := range summary.ByExpenseCategory {
		summary.TotalExpenses = summary.TotalExpenses.Add(ct.Total)
	}
	for _, ct := range summary.ByIncomeCategory {
		summary.TotalIncome = summary.TotalIncome.Add(ct.Total)
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)

	return model.ReportReply("Berikut laporan keuangan Anda:", summary)
}

func toCategoryTotals(sums map[string]decimal.Decimal) []model.CategoryTotal {
	totals := make([]model.CategoryTotal, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, model.CategoryTotal{Category: category, Total: total})
	}
	// Largest first, name as tiebreak, so reports render deterministically.
	sort.Slice(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

func (d *Dispatcher) handleHistory(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	transactions, err := d.storage.GetTransactions(callCtx, service.TransactionFilter{
		UserID: userID,
		Limit:  10,
	})
	if err != nil {
		return d.fail(dctx, err, "get_transactions", now)
	}
	if len(transactions) == 0 {
		return model.TextReply("Belum ada transaksi tercatat.")
	}

	var sb strings.Builder
	sb.WriteString("Riwayat Transaksi Terakhir:\n\n")
	for _, txn := range transactions {
		marker := "🔴"
		if txn.Type == model.TransactionIncome {
			marker = "🟢"
		}
		sb.WriteString(marker + " " + formatDate(txn.Date) + " - " + txn.Category + "\n")
		if txn.Description != "" {
			sb.WriteString(txn.Description + "\n")
		} else {
			sb.WriteString("Tanpa keterangan\n")
		}
		sb.WriteString("Rp " + FormatRupiah(txn.Amount) + "\n\n")
	}

	return model.TextReply(strings.TrimRight(sb.String(), "\n"))
}

func (d *Dispatcher) handleCreateGoal(ctx context.Context, dctx *dialogue.Context, userID string, entities model.ExtractedEntities, text string, now time.Time) model.Reply {
	if entities.Amount == nil || entities.GoalType == "" {
		return model.TextReply(goalFormatHelp)
	}

	name := entities.GoalName
	if name == "" {
		name = entities.GoalType.Indonesian() + " Goal"
	}
	targetDate := extract.TargetDate(text, now)

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	g, feasibility, err := d.planner.Plan(callCtx, userID, name, entities.GoalType, entities.Priority, *entities.Amount, targetDate)
	if err != nil {
		return d.fail(dctx, err, "plan_goal", now)
	}

	callCtx2, cancel2 := d.callCtx(ctx)
	defer cancel2()
	if err := d.storage.CreateGoal(callCtx2, g); err != nil {
		return d.fail(dctx, err, "create_goal", now)
	}

	tip := d.tips.RandomTip(tipCategoryForGoal(entities.GoalType))

	var sb strings.Builder
	sb.WriteString("✅ Goal berhasil dibuat!\n\n")
	sb.WriteString(formatGoal(g))
	sb.WriteString("\n\n💰 Target Bulanan: Rp " + FormatRupiah(g.MonthlyTarget))
	sb.WriteString("\n📈 Skor Kelayakan: " + strconv.Itoa(g.FeasibilityScore) + "/100")
	sb.WriteString("\n" + feasibility.Recommendation)
	sb.WriteString("\n\n💡 Tips: " + tip.Content)

	return model.TextReply(sb.String())
}

func tipCategoryForGoal(goalType model.GoalType) tips.Category {
	switch goalType {
	case model.GoalInvestment:
		return tips.CategoryInvestment
	case model.GoalDebtPayment:
		return tips.CategoryDebt
	default:
		return tips.CategorySaving
	}
}

func (d *Dispatcher) handleViewGoal(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()

	goals, err := d.storage.GetActiveGoals(callCtx, userID)
	if err != nil {
		return d.fail(dctx, err, "get_goals", now)
	}
	if len(goals) == 0 {
		return model.TextReply(replyNoGoals)
	}

	var sb strings.Builder
	sb.WriteString("📊 *Progress Goal Anda*\n\n")

	totalProgress := 0.0
	onTrack := 0
	for i := range goals {
		g := &goals[i]
		progress := g.ProgressPercent()
		totalProgress += progress
		status := "⚠️ Behind Schedule"
		if g.OnTrack(now) {
			status = "✅ On Track"
			onTrack++
		}

		sb.WriteString("🎯 *" + g.Name + "*\n")
		sb.WriteString(formatGoal(g) + "\n")
		sb.WriteString("Progress: " + decimal.NewFromFloat(progress).StringFixed(1) + "%\n")
		sb.WriteString("Sisa Target: Rp " + FormatRupiah(g.Remaining()) + "\n")
		sb.WriteString("Status: " + status + "\n")
		if projected := g.ProjectedCompletion(now); !projected.IsZero() {
			sb.WriteString("Perkiraan Selesai: " + formatLongDate(projected) + "\n")
		}
		sb.WriteString("\n")

		if next := g.NextMilestone(); next != nil {
			sb.WriteString("📍 *Milestone Berikutnya:*\n")
			sb.WriteString(next.Label + "\n")
			sb.WriteString("Target: Rp " + FormatRupiah(next.TargetAmount) + "\n\n")
		}
	}

	average := totalProgress / float64(len(goals))
	sb.WriteString("📈 *Ringkasan:*\n")
	sb.WriteString("Total Goal: " + strconv.Itoa(len(goals)) + "\n")
	sb.WriteString("On Track: " + strconv.Itoa(onTrack) + "\n")
	sb.WriteString("Progress Rata-rata: " + decimal.NewFromFloat(average).StringFixed(1) + "%")

	return model.TextReply(sb.String())
}

func (d *Dispatcher) handleUpdateGoal(ctx context.Context, dctx *dialogue.Context, userID string, entities model.ExtractedEntities, now time.Time) model.Reply {
	if entities.UpdateTarget == nil || entities.UpdateTarget.Name == "" {
		return model.TextReply(updateGoalFormatHelp)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	g, err := d.storage.FindActiveGoalByName(callCtx, userID, entities.UpdateTarget.Name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.TextReply(replyGoalNotFound)
		}
		return d.fail(dctx, err, "find_goal", now)
	}

	g.ApplyProgress(entities.UpdateTarget.Amount)

	callCtx2, cancel2 := d.callCtx(ctx)
	defer cancel2()
	if err := d.storage.UpdateGoal(callCtx2, g); err != nil {
		return d.fail(dctx, err, "update_goal", now)
	}

	progress := g.ProgressPercent()

	var sb strings.Builder
	sb.WriteString("✅ Progress goal \"" + g.Name + "\" berhasil diperbarui!\n\n")
	sb.WriteString(formatGoal(g) + "\n")
	sb.WriteString("Progress: " + decimal.NewFromFloat(progress).StringFixed(1) + "%\n")
	sb.WriteString("Sisa Target: Rp " + FormatRupiah(g.Remaining()) + "\n")

	if g.Status == model.GoalCompleted {
		sb.WriteString("\n🎉 Selamat! Goal ini sudah tercapai!")
	} else if next := g.NextMilestone(); next != nil {
		sb.WriteString("\n🎯 Milestone berikutnya:\n")
		sb.WriteString(next.Label + ": Rp " + FormatRupiah(next.TargetAmount))
	}

	sb.WriteString("\n\n" + motivation(progress))

	return model.TextReply(sb.String())
}

func (d *Dispatcher) handleDeleteGoal(ctx context.Context, dctx *dialogue.Context, userID, text string, now time.Time) model.Reply {
	name := extract.DeleteTargetName(text)
	if name == "" {
		return model.TextReply(deleteGoalFormatHelp)
	}

	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	g, err := d.storage.FindActiveGoalByName(callCtx, userID, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return model.TextReply(replyGoalNotFound)
		}
		return d.fail(dctx, err, "find_goal", now)
	}

	g.Status = model.GoalCancelled

	callCtx2, cancel2 := d.callCtx(ctx)
	defer cancel2()
	if err := d.storage.UpdateGoal(callCtx2, g); err != nil {
		return d.fail(dctx, err, "cancel_goal", now)
	}

	return model.TextReply("✅ Goal \"" + g.Name + "\" berhasil dihapus.\n\n" +
		"Ringkasan goal:\n" + formatGoal(g))
}

func (d *Dispatcher) handleTips(ctx context.Context, dctx *dialogue.Context, userID string, now time.Time) model.Reply {
	callCtx, cancel := d.callCtx(ctx)
	defer cancel()
	goals, err := d.storage.GetActiveGoals(callCtx, userID)
	if err != nil {
		return d.fail(dctx, err, "get_goals", now)
	}

	uc := tips.UserContext{SavingsRate: 100}
	callCtx2, cancel2 := d.callCtx(ctx)
	defer cancel2()
	if summary, err := d.insights.Summary(callCtx2, userID); err == nil {
		uc = tips.UserContext{
			SavingsRate: summary.SavingsRate,
			OverBudget:  summary.OverBudgetCategories() > 0,
			HighSavings: summary.SavingsRate > 30,
		}
	}

	tip := d.tips.ContextualTip(uc)
	quote := d.tips.RandomQuote()

	level := tips.LevelBasic
	if len(goals) > 0 {
		level = tips.LevelIntermediate
	}
	plan := d.tips.WeeklyPlan(level)

	var sb strings.Builder
	sb.WriteString("💡 *Tips Keuangan*\n\n")
	sb.WriteString(tip.Title + "\n")
	sb.WriteString(tip.Content + "\n\n")
	sb.WriteString("📝 *Detail:*\n" + tip.Detail + "\n\n")
	sb.WriteString("📚 *Rencana Belajar Minggu Ini:*\n")
	for i, topic := range plan {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(topic.Day + ": " + topic.Topic + "\n" + topic.Activity)
	}
	sb.WriteString("\n\n💭 *Quote of the Day:*\n")
	sb.WriteString("\"" + quote.Text + "\"\n- " + quote.Author)

	return model.TextReply(sb.String())
}
