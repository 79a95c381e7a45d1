package extract

import (
	"testing"

	"github.com/pandhu/duitbot/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalType(t *testing.T) {
	tests := []struct {
		text string
		want model.GoalType
	}{
		{"tambah goal tabungan 10jt", model.GoalSavings},
		{"mau nabung buat liburan", model.GoalSavings},
		{"buat goal dana darurat 30jt", model.GoalEmergencyFund},
		{"goal investasi reksadana", model.GoalInvestment},
		{"goal kuliah anak", model.GoalEducation},
		{"goal beli rumah", model.GoalPurchase},
		{"lunasi hutang kartu kredit", model.GoalDebtPayment},
		{"lihat laporan", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GoalType(tt.text), "text %q", tt.text)
	}
}

func TestPriority(t *testing.T) {
	tests := []struct {
		text string
		want model.Priority
	}{
		{"goal penting banget", model.PriorityHigh},
		{"urgent buat bulan depan", model.PriorityHigh},
		{"yang santai saja", model.PriorityLow},
		{"goal tidak penting", model.PriorityLow},
		{"goal biasa", model.PriorityMedium},
		{"tambah goal tabungan", model.PriorityMedium},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Priority(tt.text), "text %q", tt.text)
	}
}

func TestGoalName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "strips verbs amounts and type keywords",
			text: "tambah goal tabungan rumah 10jt desember 2024",
			want: "rumah",
		},
		{
			name: "multi word name survives",
			text: "buat goal beli laptop gaming 15jt 6 bulan",
			want: "laptop gaming",
		},
		{
			name: "empty when nothing remains",
			text: "tambah goal tabungan 10jt",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GoalName(tt.text))
		})
	}
}

func TestUpdateTarget(t *testing.T) {
	t.Run("amount and name fragment", func(t *testing.T) {
		got := UpdateTarget("update goal tabungan rumah 5jt")
		require.NotNil(t, got)
		assert.Equal(t, "tabungan rumah", got.Name)
		assert.True(t, got.Amount.Equal(decimal.NewFromInt(5_000_000)))
	})

	t.Run("nil without an amount", func(t *testing.T) {
		assert.Nil(t, UpdateTarget("update goal tabungan rumah"))
	})
}

func TestDeleteTargetName(t *testing.T) {
	assert.Equal(t, "rumah", DeleteTargetName("hapus goal tabungan rumah"))
	assert.Equal(t, "", DeleteTargetName("hapus goal"))
}
