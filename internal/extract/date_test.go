package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestDate_RelativeKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{name: "hari ini", text: "pengeluaran hari ini", want: now},
		{name: "sekarang", text: "catat sekarang", want: now},
		{name: "kemarin", text: "bayar listrik kemarin", want: now.AddDate(0, 0, -1)},
		{name: "besok", text: "tagihan besok", want: now.AddDate(0, 0, 1)},
		{name: "bulan lalu", text: "gaji bulan lalu", want: now.AddDate(0, -1, 0)},
		{name: "minggu lalu", text: "belanja minggu lalu", want: now.AddDate(0, 0, -7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.text, now))
		})
	}
}

func TestDate_Explicit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "day and month only uses current year",
			text: "bayar 12/5",
			want: time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "two digit year assumed 20xx",
			text: "transaksi 1/3/23",
			want: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "full year",
			text: "cicilan 25/12/2024",
			want: time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Date(tt.text, now))
		})
	}
}

func TestDate_RelativeBeatsExplicit(t *testing.T) {
	got := Date("kemarin bayar tagihan 12/5", now)
	assert.Equal(t, now.AddDate(0, 0, -1), got)
}

func TestDate_DefaultsToNow(t *testing.T) {
	assert.Equal(t, now, Date("bayar makan siang", now))
}

func TestTargetDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "month name with year resolves to month end",
			text: "tambah goal tabungan 10jt desember 2024",
			want: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "month name without year rolls to next occurrence",
			text: "goal beli laptop maret",
			want: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "numeric month duration",
			text: "buat goal dana darurat 30jt 6 bulan",
			want: now.AddDate(0, 6, 0),
		},
		{
			name: "numeric year duration",
			text: "goal pendidikan 2 tahun",
			want: now.AddDate(2, 0, 0),
		},
		{
			name: "deadline keyword",
			text: "goal umroh tahun depan",
			want: now.AddDate(1, 0, 0),
		},
		{
			name: "default one month out",
			text: "tambah goal tabungan 5jt",
			want: now.AddDate(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TargetDate(tt.text, now))
		})
	}
}
