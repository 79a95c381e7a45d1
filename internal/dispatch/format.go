package dispatch

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pandhu/duitbot/internal/model"
)

// FormatRupiah renders a decimal amount in Indonesian convention: dot as
// thousands separator, comma as decimal mark, no currency prefix.
func FormatRupiah(d decimal.Decimal) string {
	s := d.StringFixed(2)
	s = strings.TrimSuffix(s, ".00")

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(r)
	}
	if fracPart != "" {
		sb.WriteByte(',')
		sb.WriteString(fracPart)
	}
	return sb.String()
}

func formatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// formatGoal renders the standard goal summary block.
func formatGoal(g *model.Goal) string {
	parts := []string{
		"Jenis: " + g.Type.Indonesian(),
		"Target: Rp " + FormatRupiah(g.TargetAmount),
		"Tenggat: " + formatLongDate(g.TargetDate),
		"Prioritas: " + g.Priority.Indonesian(),
	}
	return strings.Join(parts, "\n")
}

const helpText = `Panduan Penggunaan Bot:

1. Catat Pengeluaran:
   "catat pengeluaran 50rb makan siang"
   "bayar grab 25rb"

2. Catat Pemasukan:
   "catat pemasukan 5jt gaji"
   "dapat uang 1juta dari proyek"

3. Lihat Laporan:
   "lihat laporan"
   "tampilkan laporan bulanan"

4. Cek Budget:
   "cek budget"
   "lihat sisa anggaran"

5. Riwayat Transaksi:
   "lihat riwayat"
   "tampilkan mutasi"

6. Goal Keuangan:
   "tambah goal tabungan 10jt desember 2024"
   "lihat goal"
   "update goal tabungan rumah 5jt"
   "hapus goal tabungan rumah"

7. Tips Keuangan:
   "tips keuangan"

Catatan:
- Gunakan satuan rb/ribu atau jt/juta
- Bisa mencatat transaksi di masa lalu dengan menyebut tanggalnya
- Sebutkan kategori transaksi untuk pencatatan lebih detail`

const goalFormatHelp = `Untuk menambah goal, gunakan format:
"tambah goal [jenis] [target] [tanggal]"

Contoh:
"tambah goal tabungan 10jt desember 2024"
"buat goal dana darurat 30jt 6 bulan"

Jenis goal yang tersedia:
- Tabungan
- Dana Darurat
- Investasi
- Pendidikan
- Pembelian
- Pembayaran Utang`

const updateGoalFormatHelp = `Untuk update goal, gunakan format:
"update goal [nama goal] [jumlah]"

Contoh:
"update goal tabungan rumah 5jt"
"progress goal dana darurat 2.5jt"`

const deleteGoalFormatHelp = `Untuk menghapus goal, gunakan format:
"hapus goal [nama goal]"

Contoh:
"hapus goal tabungan rumah"`

const (
	replyUnknown       = `Maaf, saya tidak memahami permintaan Anda. Ketik "bantuan" untuk melihat panduan penggunaan.`
	replyInternalError = "Maaf, terjadi kesalahan dalam memproses permintaan Anda."
	replyCancelled     = "Operasi dibatalkan."
	replyRetryAmount   = "Baik, silakan masukkan jumlah transaksi kembali."
	replyAskAmount     = "Berapa nominalnya?"
	replyNoGoals       = `Anda belum memiliki goal aktif. Ketik "tambah goal" untuk membuat goal baru.`
	replyGoalNotFound  = `Goal tidak ditemukan. Ketik "lihat goal" untuk melihat daftar goal Anda.`
	replyNoBudgets     = "Anda belum mengatur budget untuk bulan ini."
)

func motivation(progressPercent float64) string {
	switch {
	case progressPercent >= 75:
		return "💪 Hampir sampai! Tetap semangat!"
	case progressPercent >= 50:
		return "👏 Sudah setengah jalan! Pertahankan!"
	case progressPercent >= 25:
		return "🌟 Progress yang bagus! Terus konsisten!"
	default:
		return "🚀 Langkah awal yang baik! Tetap fokus!"
	}
}
