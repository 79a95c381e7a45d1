package extract

import "strings"

// CatchAllCategory is returned when no keyword matches. Category extraction
// is therefore total, unlike amount or date.
const CatchAllCategory = "Lainnya"

// categoryKeywords maps trigger words to transaction categories.
var categoryKeywords = map[string]string{
	"makan":        "Makanan & Minuman",
	"minum":        "Makanan & Minuman",
	"transportasi": "Transportasi",
	"bensin":       "Transportasi",
	"gojek":        "Transportasi",
	"grab":         "Transportasi",
	"listrik":      "Utilitas",
	"air":          "Utilitas",
	"internet":     "Utilitas",
	"pulsa":        "Komunikasi",
	"paket data":   "Komunikasi",
	"belanja":      "Belanja",
	"gaji":         "Pendapatan",
	"bonus":        "Pendapatan",
	"investasi":    "Investasi",
	"kesehatan":    "Kesehatan",
	"hiburan":      "Hiburan",
}

// Category scans words left to right and returns the category of the first
// keyword hit. Two-word keywords are checked before single words at each
// position.
func Category(text string) string {
	words := strings.Fields(text)
	for i, word := range words {
		if i+1 < len(words) {
			if cat, ok := categoryKeywords[word+" "+words[i+1]]; ok {
				return cat
			}
		}
		if cat, ok := categoryKeywords[word]; ok {
			return cat
		}
	}
	return CatchAllCategory
}
