// Package extract implements the independent entity extractors that pull
// structured values out of normalized message text. Every extractor is pure
// and total: absence is a sentinel value, never an error.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// Magnitude-word matches take precedence over bare literals when both
	// overlap on the same span.
	magnitudeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(ribu|rb|k|juta|jt|m)\b`)
	groupedRe   = regexp.MustCompile(`\b\d{1,3}(?:\.\d{3})+\b`)
	literalRe   = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
)

// Amount extracts a monetary amount from text. Indonesian magnitude words
// (ribu/rb/k ×1.000, juta/jt/m ×1.000.000) are recognized first, then
// dot-grouped literals, then plain numerics. Returns nil when no numeric
// token is present; prompting the user for a missing amount is the caller's
// job.
func Amount(text string) *decimal.Decimal {
	if m := magnitudeRe.FindStringSubmatch(text); m != nil {
		base, err := decimal.NewFromString(m[1])
		if err == nil {
			mult := thousand
			switch m[2] {
			case "juta", "jt", "m":
				mult = million
			}
			v := base.Mul(mult)
			return &v
		}
	}

	if m := groupedRe.FindString(text); m != "" {
		v, err := decimal.NewFromString(strings.ReplaceAll(m, ".", ""))
		if err == nil {
			return &v
		}
	}

	if m := literalRe.FindString(text); m != "" {
		v, err := decimal.NewFromString(m)
		if err == nil {
			return &v
		}
	}

	return nil
}
