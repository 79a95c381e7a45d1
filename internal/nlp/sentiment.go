package nlp

// Curated financial-term lexicons. Hits on the positive and negative lists
// move the score by +1/-1; neutral hits are recorded but not scored.
var (
	positiveTerms = []string{
		"untung", "laba", "profit", "hemat", "tabungan", "investasi",
		"bonus", "diskon", "cashback", "pendapatan", "gajian",
	}
	negativeTerms = []string{
		"rugi", "hutang", "cicilan", "tagihan", "denda", "telat",
		"mahal", "boros", "defisit", "bangkrut", "kridit",
	}
	neutralTerms = []string{
		"transfer", "saldo", "rekening", "transaksi", "mutasi",
		"anggaran", "budget", "biaya", "dana", "uang",
	}
)

// generalValence is a small Indonesian valence table used for the general
// sentiment value, independent of the financial lexicons.
var generalValence = map[string]float64{
	"senang": 2, "bahagia": 2, "lega": 1, "tenang": 1, "semangat": 2,
	"bagus": 1, "baik": 1, "mantap": 2, "untung": 1,
	"sedih": -2, "stress": -2, "stres": -2, "pusing": -2, "khawatir": -2,
	"susah": -1, "sulit": -1, "bingung": -1, "takut": -2, "capek": -1,
	"gagal": -2, "rugi": -1, "bangkrut": -3,
}

// TermType labels which lexicon a recognized financial term came from.
type TermType string

const (
	// TermPositive is a hit on the positive lexicon.
	TermPositive TermType = "positive"
	// TermNegative is a hit on the negative lexicon.
	TermNegative TermType = "negative"
	// TermNeutral is a hit on the neutral lexicon.
	TermNeutral TermType = "neutral"
)

// FinancialTerm is one recognized lexicon hit.
type FinancialTerm struct {
	Term string
	Type TermType
}

// SentimentCategory bands the financial score.
type SentimentCategory string

const (
	// SentimentVeryPositive is score > 1.
	SentimentVeryPositive SentimentCategory = "very_positive"
	// SentimentPositive is score > 0.
	SentimentPositive SentimentCategory = "positive"
	// SentimentNeutral is score == 0.
	SentimentNeutral SentimentCategory = "neutral"
	// SentimentNegative is score > -2.
	SentimentNegative SentimentCategory = "negative"
	// SentimentVeryNegative is everything below.
	SentimentVeryNegative SentimentCategory = "very_negative"
)

// AdvisoryType labels a non-blocking advisory attached to a reply.
type AdvisoryType string

const (
	// AdvisoryFinancialStress fires when the financial score drops below -1.
	AdvisoryFinancialStress AdvisoryType = "financial_stress"
	// AdvisorySpendingBehavior fires when both scores are negative.
	AdvisorySpendingBehavior AdvisoryType = "spending_behavior"
	// AdvisoryPositiveBehavior fires on a positive financial score.
	AdvisoryPositiveBehavior AdvisoryType = "positive_behavior"
)

// Advisory is a non-blocking hint enriching a reply. It never alters
// control flow.
type Advisory struct {
	Type       AdvisoryType
	Message    string
	Suggestion string
}

// SentimentResult is the scorer's output for one message.
type SentimentResult struct {
	Category       SentimentCategory
	FinancialTerms []FinancialTerm
	Advisories     []Advisory
	Score          int
	General        float64
}

// Stressed reports whether the result warrants attaching advisories to the
// user-facing reply.
func (r *SentimentResult) Stressed() bool {
	return r.Score < -1 || (r.Score < 0 && r.General < 0)
}

var (
	positiveSet = toSet(positiveTerms)
	negativeSet = toSet(negativeTerms)
	neutralSet  = toSet(neutralTerms)
)

func toSet(terms []string) map[string]struct{} {
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	return set
}

// ScoreSentiment tokenizes normalized text and scores it against the
// financial lexicons, independently computing a general valence value.
func ScoreSentiment(text string) SentimentResult {
	tokens := tokenRe.FindAllString(text, -1)

	result := SentimentResult{}
	var valenceSum float64

	for _, tok := range tokens {
		switch {
		case member(positiveSet, tok):
			result.Score++
			result.FinancialTerms = append(result.FinancialTerms, FinancialTerm{Term: tok, Type: TermPositive})
		case member(negativeSet, tok):
			result.Score--
			result.FinancialTerms = append(result.FinancialTerms, FinancialTerm{Term: tok, Type: TermNegative})
		case member(neutralSet, tok):
			result.FinancialTerms = append(result.FinancialTerms, FinancialTerm{Term: tok, Type: TermNeutral})
		}
		valenceSum += generalValence[tok]
	}

	if len(tokens) > 0 {
		result.General = valenceSum / float64(len(tokens))
	}
	result.Category = categorize(result.Score)
	result.Advisories = advisories(result.Score, result.General)

	return result
}

func member(set map[string]struct{}, tok string) bool {
	_, ok := set[tok]
	return ok
}

func categorize(score int) SentimentCategory {
	switch {
	case score > 1:
		return SentimentVeryPositive
	case score > 0:
		return SentimentPositive
	case score == 0:
		return SentimentNeutral
	case score > -2:
		return SentimentNegative
	default:
		return SentimentVeryNegative
	}
}

func advisories(score int, general float64) []Advisory {
	var out []Advisory

	if score < -1 {
		out = append(out, Advisory{
			Type:       AdvisoryFinancialStress,
			Message:    "Terdeteksi indikasi stress keuangan. Mungkin Anda perlu memeriksa anggaran dan pengeluaran.",
			Suggestion: "Coba periksa budget Anda atau konsultasikan dengan kami untuk saran pengelolaan keuangan.",
		})
	}

	if score < 0 && general < 0 {
		out = append(out, Advisory{
			Type:       AdvisorySpendingBehavior,
			Message:    "Pola pengeluaran menunjukkan kecenderungan negatif.",
			Suggestion: "Pertimbangkan untuk membuat rencana penghematan atau anggaran yang lebih ketat.",
		})
	}

	if score > 0 {
		out = append(out, Advisory{
			Type:       AdvisoryPositiveBehavior,
			Message:    "Anda menunjukkan pola keuangan yang positif.",
			Suggestion: "Pertahankan kebiasaan baik ini dan pertimbangkan untuk meningkatkan investasi.",
		})
	}

	return out
}
