// Package nlp implements the lexical normalization and financial-tone
// scoring stages of the message pipeline. Both are pure functions over raw
// text; normalization is always applied before any downstream extraction.
package nlp

import (
	"regexp"
	"strings"
)

// regionalVariations folds regional-dialect words for "money" into the
// standard term before slang expansion runs.
var regionalVariations = map[string]string{
	"duid":   "uang", // Javanese
	"pipis":  "uang", // Sundanese
	"fulus":  "uang", // Betawi
	"kepeng": "uang", // Balinese
	"pitis":  "uang", // Minang
}

// slangDictionary expands common Indonesian chat abbreviations word-for-word
// on token boundaries. Attached numeric shorthand (50rb, 10jt) is handled
// separately by the shorthand regexes and the amount extractor.
var slangDictionary = map[string]string{
	// Money-related
	"duit":   "uang",
	"doku":   "uang",
	"gopek":  "500",
	"ceban":  "10000",
	"sejuta": "1000000",
	"seceng": "100",
	"sopi":   "1000",

	// Transaction-related
	"tf":  "transfer",
	"trf": "transfer",
	"trx": "transaksi",
	"byr": "bayar",

	// Amount-related
	"rb": "ribu",
	"jt": "juta",
	"k":  "000",

	// Time-related
	"hr":   "hari",
	"bln":  "bulan",
	"thn":  "tahun",
	"kmrn": "kemarin",
	"bsk":  "besok",

	// Common words
	"yg":   "yang",
	"dgn":  "dengan",
	"utk":  "untuk",
	"dr":   "dari",
	"krn":  "karena",
	"tdk":  "tidak",
	"gk":   "tidak",
	"ga":   "tidak",
	"gak":  "tidak",
	"bgt":  "banget",
	"sdh":  "sudah",
	"udh":  "sudah",
	"blm":  "belum",
	"skrg": "sekarang",

	// Financial terms
	"rek":   "rekening",
	"cc":    "kartu kredit",
	"dp":    "uang muka",
	"cicil": "cicilan",
	"bnga":  "bunga",
	"thr":   "tunjangan hari raya",
}

var (
	tokenRe         = regexp.MustCompile(`[a-z0-9]+`)
	thousandsRe     = regexp.MustCompile(`(\d+)k\b`)
	millionsRe      = regexp.MustCompile(`(\d+)(?:jt|m)\b`)
	decimalCommaRe  = regexp.MustCompile(`(\d+),(\d+)`)
	currencyRe      = regexp.MustCompile(`\brp\.?\s*`)
	whitespaceRunRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw user input. It is pure, deterministic, and
// total, and idempotent on its own output. Stage order is a contract:
// shorthand expansion must run after slang replacement (slang introduces
// ribu/juta tokens the amount extractor keys on) and before any extraction.
func Normalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(raw))

	text = replaceTokens(text, regionalVariations)
	text = replaceTokens(text, slangDictionary)

	text = thousandsRe.ReplaceAllString(text, "${1}000")
	text = millionsRe.ReplaceAllString(text, "${1}000000")

	text = decimalCommaRe.ReplaceAllString(text, "$1.$2")
	text = currencyRe.ReplaceAllString(text, "")

	return strings.TrimSpace(whitespaceRunRe.ReplaceAllString(text, " "))
}

// replaceTokens maps whole tokens through the dictionary in a single pass,
// so one replacement never cascades into another.
func replaceTokens(text string, dict map[string]string) string {
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		if repl, ok := dict[tok]; ok {
			return repl
		}
		return tok
	})
}
