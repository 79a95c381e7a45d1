package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSentiment(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantScore    int
		wantCategory SentimentCategory
	}{
		{
			name:         "positive financial terms",
			input:        "dapat bonus sama cashback dari gajian",
			wantScore:    3,
			wantCategory: SentimentVeryPositive,
		},
		{
			name:         "single positive term",
			input:        "lumayan hemat bulan ini",
			wantScore:    1,
			wantCategory: SentimentPositive,
		},
		{
			name:         "neutral terms do not move the score",
			input:        "transfer saldo ke rekening",
			wantScore:    0,
			wantCategory: SentimentNeutral,
		},
		{
			name:         "single negative term",
			input:        "tagihan listrik datang lagi",
			wantScore:    -1,
			wantCategory: SentimentNegative,
		},
		{
			name:         "stacked negative terms",
			input:        "hutang numpuk tagihan telat denda terus",
			wantScore:    -4,
			wantCategory: SentimentVeryNegative,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ScoreSentiment(tt.input)
			assert.Equal(t, tt.wantScore, result.Score)
			assert.Equal(t, tt.wantCategory, result.Category)
		})
	}
}

func TestScoreSentiment_NeutralTermsRecorded(t *testing.T) {
	result := ScoreSentiment("cek saldo rekening")

	assert.Equal(t, 0, result.Score)
	assert.Len(t, result.FinancialTerms, 2)
	for _, term := range result.FinancialTerms {
		assert.Equal(t, TermNeutral, term.Type)
	}
}

func TestScoreSentiment_Advisories(t *testing.T) {
	t.Run("financial stress below -1", func(t *testing.T) {
		result := ScoreSentiment("hutang tagihan denda semua telat")
		assert.True(t, result.Stressed())

		var types []AdvisoryType
		for _, a := range result.Advisories {
			types = append(types, a.Type)
		}
		assert.Contains(t, types, AdvisoryFinancialStress)
	})

	t.Run("positive behavior advisory", func(t *testing.T) {
		result := ScoreSentiment("berhasil hemat banyak")
		assert.False(t, result.Stressed())
		assert.Len(t, result.Advisories, 1)
		assert.Equal(t, AdvisoryPositiveBehavior, result.Advisories[0].Type)
	})

	t.Run("no advisories on neutral text", func(t *testing.T) {
		result := ScoreSentiment("cek mutasi transaksi")
		assert.Empty(t, result.Advisories)
	})
}
