package intent

import "github.com/pandhu/duitbot/internal/model"

// seedPhrases is the hand-curated training set: short Indonesian phrases
// mapped to intents, at least four per intent. It is static configuration;
// the classifier trains from it once at startup and is never mutated.
var seedPhrases = map[model.Intent][]string{
	model.IntentAddExpense: {
		"catat pengeluaran",
		"tambah pengeluaran",
		"keluar uang",
		"bayar",
		"beli",
	},
	model.IntentAddIncome: {
		"catat pemasukan",
		"tambah pemasukan",
		"terima uang",
		"dapat uang",
		"gajian",
	},
	model.IntentViewReport: {
		"lihat laporan",
		"tampilkan laporan",
		"report keuangan",
		"rangkuman",
		"rekap",
	},
	model.IntentSetBudget: {
		"atur budget",
		"tentukan anggaran",
		"set limit",
		"batas pengeluaran",
	},
	model.IntentCheckBudget: {
		"cek budget",
		"lihat sisa budget",
		"sisa anggaran",
		"budget bulanan",
	},
	model.IntentTransactionHistory: {
		"riwayat transaksi",
		"lihat transaksi",
		"history",
		"mutasi",
	},
	model.IntentCreateGoal: {
		"tambah goal",
		"buat goal",
		"target baru",
		"goal baru",
	},
	model.IntentViewGoal: {
		"lihat goal",
		"cek goal",
		"status goal",
		"daftar goal",
	},
	model.IntentUpdateGoal: {
		"update goal",
		"perbarui goal",
		"progress goal",
		"setor progress goal",
	},
	model.IntentDeleteGoal: {
		"hapus goal",
		"batalkan goal",
		"selesai goal",
		"hapus target",
	},
	model.IntentTips: {
		"tips keuangan",
		"saran keuangan",
		"edukasi",
		"pembelajaran",
	},
	model.IntentHelp: {
		"bantuan",
		"tolong",
		"cara pakai",
		"panduan",
	},
}
