package extract

import (
	"regexp"
	"strings"

	"github.com/pandhu/duitbot/internal/model"
)

// goalTypeKeywords are checked in order; the first substring hit decides the
// goal type.
var goalTypeKeywords = []struct {
	keyword string
	typ     model.GoalType
}{
	{"tabungan", model.GoalSavings},
	{"menabung", model.GoalSavings},
	{"nabung", model.GoalSavings},
	{"simpan", model.GoalSavings},
	{"dana darurat", model.GoalEmergencyFund},
	{"emergency", model.GoalEmergencyFund},
	{"darurat", model.GoalEmergencyFund},
	{"investasi", model.GoalInvestment},
	{"invest", model.GoalInvestment},
	{"saham", model.GoalInvestment},
	{"reksadana", model.GoalInvestment},
	{"pendidikan", model.GoalEducation},
	{"sekolah", model.GoalEducation},
	{"kuliah", model.GoalEducation},
	{"pembelian", model.GoalPurchase},
	{"beli", model.GoalPurchase},
	{"cicilan", model.GoalDebtPayment},
	{"utang", model.GoalDebtPayment},
	{"hutang", model.GoalDebtPayment},
	{"bayar", model.GoalDebtPayment},
}

// priorityKeywords are checked in order; negated forms come before the bare
// word they contain.
var priorityKeywords = []struct {
	keyword  string
	priority model.Priority
}{
	{"tidak penting", model.PriorityLow},
	{"penting", model.PriorityHigh},
	{"urgent", model.PriorityHigh},
	{"prioritas", model.PriorityHigh},
	{"utama", model.PriorityHigh},
	{"sedang", model.PriorityMedium},
	{"biasa", model.PriorityMedium},
	{"normal", model.PriorityMedium},
	{"rendah", model.PriorityLow},
	{"santai", model.PriorityLow},
}

// GoalType returns the goal type mentioned in text, or "" when none is.
func GoalType(text string) model.GoalType {
	for _, gk := range goalTypeKeywords {
		if strings.Contains(text, gk.keyword) {
			return gk.typ
		}
	}
	return ""
}

// Priority returns the priority mentioned in text, defaulting to medium.
func Priority(text string) model.Priority {
	for _, pk := range priorityKeywords {
		if strings.Contains(text, pk.keyword) {
			return pk.priority
		}
	}
	return model.PriorityMedium
}

var (
	createVerbsRe = regexp.MustCompile(`tambah goal|buat goal|target baru|goal baru|\bgoal\b|\btarget\b`)
	updateVerbsRe = regexp.MustCompile(`update goal|perbarui goal|progress goal|\bgoal\b`)
	deleteVerbsRe = regexp.MustCompile(`hapus goal|batalkan goal|selesai goal|\bgoal\b`)

	amountPatternRe   = regexp.MustCompile(`\d+(?:\.\d+)?\s?(?:ribu|rb|juta|jt|k|m)\b`)
	bareNumberRe      = regexp.MustCompile(`\d+(?:[./]\d+)*`)
	durationPatternRe = regexp.MustCompile(`\d{1,2}\s?(?:hari|minggu|bulan|tahun)\b`)
)

// isTimeWord recognizes tokens that describe the deadline, not the name.
func isTimeWord(word string) bool {
	switch word {
	case "hari", "minggu", "bulan", "tahun", "besok", "lusa", "depan", "lalu", "ini", "untuk", "buat":
		return true
	}
	_, ok := monthNames[word]
	return ok
}

// isStructuralWord additionally recognizes goal-type and priority keywords
// that carry structure rather than the goal's name.
func isStructuralWord(word string) bool {
	for _, gk := range goalTypeKeywords {
		if word == gk.keyword {
			return true
		}
	}
	for _, pk := range priorityKeywords {
		if word == pk.keyword {
			return true
		}
	}
	return isTimeWord(word)
}

// GoalName derives the free-text goal name by stripping command verbs,
// amount and date patterns, and structural keywords, then trimming. An
// empty result means "unnamed"; the dispatcher synthesizes a name from the
// goal type.
func GoalName(text string) string {
	return stripToName(text, createVerbsRe, isStructuralWord)
}

// DeleteTargetName extracts the goal name referenced by a delete command.
func DeleteTargetName(text string) string {
	return stripToName(text, deleteVerbsRe, isStructuralWord)
}

// UpdateTarget extracts the amount and goal-name fragment from an update
// command. Goal-type words stay in the fragment because stored goal names
// often contain them ("Tabungan rumah"). Returns nil when no amount is
// present; the handler prompts for the full format in that case.
func UpdateTarget(text string) *model.UpdateTarget {
	amount := Amount(text)
	if amount == nil {
		return nil
	}
	return &model.UpdateTarget{
		Name:   stripToName(text, updateVerbsRe, isTimeWord),
		Amount: *amount,
	}
}

func stripToName(text string, verbs *regexp.Regexp, drop func(string) bool) string {
	clean := verbs.ReplaceAllString(text, " ")
	clean = amountPatternRe.ReplaceAllString(clean, " ")
	clean = durationPatternRe.ReplaceAllString(clean, " ")
	clean = explicitDateRe.ReplaceAllString(clean, " ")
	clean = bareNumberRe.ReplaceAllString(clean, " ")

	var kept []string
	for _, word := range strings.Fields(clean) {
		if !drop(word) {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}
