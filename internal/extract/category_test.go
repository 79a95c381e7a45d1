package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "food keyword", text: "catat pengeluaran 50rb makan siang", want: "Makanan & Minuman"},
		{name: "ride hailing", text: "bayar grab 25rb", want: "Transportasi"},
		{name: "utilities", text: "bayar listrik bulan ini", want: "Utilitas"},
		{name: "two word keyword", text: "beli paket data 50rb", want: "Komunikasi"},
		{name: "income keyword", text: "terima gaji 5jt", want: "Pendapatan"},
		{name: "first hit wins left to right", text: "makan sebelum beli bensin", want: "Makanan & Minuman"},
		{name: "no keyword falls back to catch-all", text: "bayar 50rb", want: CatchAllCategory},
		{name: "empty text", text: "", want: CatchAllCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.text))
		})
	}
}
