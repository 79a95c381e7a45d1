package intent

import (
	"testing"

	"github.com/pandhu/duitbot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_Classify(t *testing.T) {
	clf, err := New()
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want model.Intent
	}{
		{
			name: "expense with amount and category",
			text: "catat pengeluaran 50rb makan siang",
			want: model.IntentAddExpense,
		},
		{
			name: "bare payment verb",
			text: "bayar",
			want: model.IntentAddExpense,
		},
		{
			name: "income",
			text: "catat pemasukan 1jt gaji",
			want: model.IntentAddIncome,
		},
		{
			name: "report request",
			text: "lihat laporan bulanan",
			want: model.IntentViewReport,
		},
		{
			name: "budget check",
			text: "cek budget",
			want: model.IntentCheckBudget,
		},
		{
			name: "history",
			text: "riwayat transaksi",
			want: model.IntentTransactionHistory,
		},
		{
			name: "goal creation",
			text: "tambah goal tabungan 10jt desember 2024",
			want: model.IntentCreateGoal,
		},
		{
			name: "goal listing",
			text: "lihat goal",
			want: model.IntentViewGoal,
		},
		{
			name: "goal update",
			text: "update goal tabungan rumah 5jt",
			want: model.IntentUpdateGoal,
		},
		{
			name: "goal deletion",
			text: "hapus goal tabungan rumah",
			want: model.IntentDeleteGoal,
		},
		{
			name: "help",
			text: "bantuan",
			want: model.IntentHelp,
		},
		{
			name: "gibberish resolves to unknown",
			text: "asdkjasd",
			want: model.IntentUnknown,
		},
		{
			name: "empty text resolves to unknown",
			text: "",
			want: model.IntentUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := clf.Classify(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifier_ConfidenceFloor(t *testing.T) {
	// An impossibly high floor forces everything to unknown.
	clf, err := New(WithMinConfidence(1.1))
	require.NoError(t, err)

	got, _ := clf.Classify("catat pengeluaran 50rb")
	assert.Equal(t, model.IntentUnknown, got)
}

func TestNew_SeedCoverage(t *testing.T) {
	for _, it := range model.AllIntents() {
		assert.GreaterOrEqual(t, len(seedPhrases[it]), 4, "intent %s", it)
	}
}
