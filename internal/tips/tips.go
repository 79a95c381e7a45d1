// Package tips serves the financial education content: categorized tips,
// quotes, and weekly learning plans, in Indonesian.
package tips

import (
	"math/rand"
	"strings"
)

// Category groups tips by financial topic.
type Category string

const (
	// CategoryBudgeting covers budget discipline.
	CategoryBudgeting Category = "budgeting"
	// CategorySaving covers building savings.
	CategorySaving Category = "saving"
	// CategoryInvestment covers investing basics.
	CategoryInvestment Category = "investment"
	// CategoryDebt covers debt management.
	CategoryDebt Category = "debt"
	// CategoryIncome covers growing income.
	CategoryIncome Category = "income"
)

// Tip is one piece of educational advice.
type Tip struct {
	Title    string
	Content  string
	Detail   string
	Category Category
}

// Quote pairs a financial aphorism with its author.
type Quote struct {
	Text   string
	Author string
}

// PlanTopic is one scheduled item in a weekly learning plan.
type PlanTopic struct {
	Day      string
	Topic    string
	Activity string
}

// Level grades learning plans by user experience.
type Level string

const (
	// LevelBasic is for users new to personal finance.
	LevelBasic Level = "basic"
	// LevelIntermediate is for users with tracking habits in place.
	LevelIntermediate Level = "intermediate"
	// LevelAdvanced is for users managing investments.
	LevelAdvanced Level = "advanced"
)

// UserContext carries the financial signals used to pick a relevant tip.
type UserContext struct {
	SavingsRate float64
	HasDebt     bool
	OverBudget  bool
	HighSavings bool
}

var catalogue = map[Category][]Tip{
	CategoryBudgeting: {
		{
			Title:    "Aturan 50/30/20",
			Content:  "Bagi pengeluaran Anda: 50% kebutuhan, 30% keinginan, dan 20% tabungan.",
			Detail:   "Kebutuhan meliputi: sewa, listrik, makan\nKeinginan meliputi: hiburan, hobi\nTabungan untuk: dana darurat, investasi",
			Category: CategoryBudgeting,
		},
		{
			Title:    "Tracking Harian",
			Content:  "Catat setiap pengeluaran, sekecil apapun. Pengeluaran kecil bisa jadi besar jika terakumulasi.",
			Detail:   "Gunakan fitur catat transaksi bot ini untuk memudahkan tracking pengeluaran Anda.",
			Category: CategoryBudgeting,
		},
	},
	CategorySaving: {
		{
			Title:    "Dana Darurat",
			Content:  "Siapkan dana darurat minimal 3-6 kali pengeluaran bulanan.",
			Detail:   "Dana darurat penting untuk menghadapi situasi tidak terduga seperti: kehilangan pekerjaan, sakit, atau keadaan darurat lainnya.",
			Category: CategorySaving,
		},
		{
			Title:    "Automasi Tabungan",
			Content:  "Atur auto-debit untuk tabungan begitu gajian. Treat it like a bill payment.",
			Detail:   "Dengan auto-debit, Anda tidak perlu khawatir lupa menabung dan terhindar dari godaan menggunakan uang tersebut.",
			Category: CategorySaving,
		},
	},
	CategoryInvestment: {
		{
			Title:    "Diversifikasi",
			Content:  "Jangan taruh semua telur dalam satu keranjang. Diversifikasi investasi Anda.",
			Detail:   "Contoh diversifikasi:\n- Deposito\n- Reksadana\n- Saham\n- Emas\n- Properti",
			Category: CategoryInvestment,
		},
		{
			Title:    "Investasi Berkala",
			Content:  "Terapkan Dollar Cost Averaging (DCA) untuk mengurangi risiko timing market.",
			Detail:   "Investasi rutin dengan jumlah tetap setiap bulan lebih baik daripada investasi sekaligus dalam jumlah besar.",
			Category: CategoryInvestment,
		},
	},
	CategoryDebt: {
		{
			Title:    "Hindari Utang Konsumtif",
			Content:  "Gunakan utang hanya untuk hal produktif, hindari utang untuk konsumsi.",
			Detail:   "Utang produktif: pendidikan, modal usaha\nUtang konsumtif: gadget, liburan",
			Category: CategoryDebt,
		},
		{
			Title:    "Debt Snowball Method",
			Content:  "Fokus melunasi utang terkecil dulu sambil membayar minimum payment untuk utang lain.",
			Detail:   "Metode ini memberi motivasi karena Anda bisa melihat progress pelunasan utang lebih cepat.",
			Category: CategoryDebt,
		},
	},
	CategoryIncome: {
		{
			Title:    "Multiple Income Streams",
			Content:  "Kembangkan beberapa sumber pendapatan untuk keamanan finansial.",
			Detail:   "Contoh side income:\n- Freelance\n- Online shop\n- Investasi\n- Sewa properti",
			Category: CategoryIncome,
		},
		{
			Title:    "Upgrade Skills",
			Content:  "Investasi dalam pengembangan diri untuk meningkatkan nilai di pasar kerja.",
			Detail:   "Ikuti kursus, sertifikasi, atau pendidikan lanjutan yang relevan dengan karir Anda.",
			Category: CategoryIncome,
		},
	},
}

var quotes = []Quote{
	{
		Text:   "Jangan menabung dari sisa pengeluaran, tapi keluarkan dari sisa tabungan.",
		Author: "Warren Buffett",
	},
	{
		Text:   "Kebebasan finansial adalah ketika aset pasif menghasilkan lebih dari pengeluaran.",
		Author: "Robert Kiyosaki",
	},
	{
		Text:   "Investasi dalam diri sendiri membayar dividen terbaik.",
		Author: "Benjamin Franklin",
	},
}

// Service hands out tips and plans. The random source is injected so tests
// stay deterministic.
type Service struct {
	rng *rand.Rand
}

// Option configures a Service.
type Option func(*Service)

// WithRand overrides the random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// NewService creates a tips service.
func NewService(opts ...Option) *Service {
	s := &Service{
		rng: rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RandomTip returns a random tip, restricted to a category when one is
// given.
func (s *Service) RandomTip(category Category) Tip {
	if tips, ok := catalogue[category]; ok {
		return tips[s.rng.Intn(len(tips))]
	}

	var all []Tip
	for _, cat := range []Category{CategoryBudgeting, CategorySaving, CategoryInvestment, CategoryDebt, CategoryIncome} {
		all = append(all, catalogue[cat]...)
	}
	return all[s.rng.Intn(len(all))]
}

// ContextualTip picks the category most relevant to the user's current
// financial signals, falling back to a random tip.
func (s *Service) ContextualTip(uc UserContext) Tip {
	switch {
	case uc.SavingsRate < 20:
		return s.RandomTip(CategorySaving)
	case uc.HasDebt:
		return s.RandomTip(CategoryDebt)
	case uc.OverBudget:
		return s.RandomTip(CategoryBudgeting)
	case uc.HighSavings:
		return s.RandomTip(CategoryInvestment)
	default:
		return s.RandomTip("")
	}
}

// RandomQuote returns a random financial quote.
func (s *Service) RandomQuote() Quote {
	return quotes[s.rng.Intn(len(quotes))]
}

// WeeklyPlan builds a three-day learning plan for the given level. Unknown
// levels get the basic plan.
func (s *Service) WeeklyPlan(level Level) []PlanTopic {
	switch level {
	case LevelIntermediate:
		return []PlanTopic{
			{Day: "Senin", Topic: "Analisis Arus Kas", Activity: "Identifikasi pola pengeluaran"},
			{Day: "Rabu", Topic: "Strategi Menabung", Activity: "Setup auto-debit tabungan"},
			{Day: "Jumat", Topic: "Perencanaan Investasi", Activity: "Research instrumen investasi"},
		}
	case LevelAdvanced:
		return []PlanTopic{
			{Day: "Senin", Topic: "Analisis Portfolio", Activity: "Review dan rebalancing portfolio"},
			{Day: "Rabu", Topic: "Tax Planning", Activity: "Optimasi pajak investasi"},
			{Day: "Jumat", Topic: "Risk Management", Activity: "Setup proteksi aset"},
		}
	default:
		return []PlanTopic{
			{Day: "Senin", Topic: "Pencatatan Keuangan Harian", Activity: "Praktek mencatat pengeluaran"},
			{Day: "Rabu", Topic: "Membuat Anggaran", Activity: "Menyusun anggaran bulanan"},
			{Day: "Jumat", Topic: "Review Mingguan", Activity: "Evaluasi pengeluaran minggu ini"},
		}
	}
}

// FormatTip renders a tip as a chat message.
func FormatTip(tip Tip) string {
	var sb strings.Builder
	sb.WriteString("💡 *Tips Keuangan: ")
	sb.WriteString(tip.Title)
	sb.WriteString("*\n\n")
	sb.WriteString(tip.Content)
	sb.WriteString("\n\n📝 *Detail:*\n")
	sb.WriteString(tip.Detail)
	return sb.String()
}

// FormatQuote renders a quote as a chat message.
func FormatQuote(q Quote) string {
	return "\"" + q.Text + "\"\n- " + q.Author
}
