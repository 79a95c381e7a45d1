package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relativeKeywords are scanned left to right; the first occurrence wins and
// takes precedence over any explicit date in the same message.
var relativeKeywords = []struct {
	keyword string
	shift   func(now time.Time) time.Time
}{
	{"hari ini", func(now time.Time) time.Time { return now }},
	{"sekarang", func(now time.Time) time.Time { return now }},
	{"kemarin", func(now time.Time) time.Time { return now.AddDate(0, 0, -1) }},
	{"besok", func(now time.Time) time.Time { return now.AddDate(0, 0, 1) }},
	{"bulan lalu", func(now time.Time) time.Time { return now.AddDate(0, -1, 0) }},
	{"minggu lalu", func(now time.Time) time.Time { return now.AddDate(0, 0, -7) }},
}

var explicitDateRe = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{4}|\d{2}))?`)

// Date resolves the transaction date mentioned in text, defaulting to now
// when nothing matches. Relative keywords beat explicit D/M[/YY|YYYY]
// patterns; two-digit years are assumed 20xx.
func Date(text string, now time.Time) time.Time {
	if t, ok := relativeDate(text, now); ok {
		return t
	}

	if t, ok := explicitDate(text, now); ok {
		return t
	}

	return now
}

func relativeDate(text string, now time.Time) (time.Time, bool) {
	best := -1
	var shift func(time.Time) time.Time
	for _, rk := range relativeKeywords {
		if idx := strings.Index(text, rk.keyword); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			shift = rk.shift
		}
	}
	if best < 0 {
		return time.Time{}, false
	}
	return shift(now), true
}

func explicitDate(text string, now time.Time) (time.Time, bool) {
	m := explicitDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := now.Year()
	if m[3] != "" {
		y, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			y += 2000
		}
		year = y
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
}

// monthNames maps Indonesian month names for goal deadlines like
// "desember 2024".
var monthNames = map[string]time.Month{
	"januari": time.January, "februari": time.February, "maret": time.March,
	"april": time.April, "mei": time.May, "juni": time.June,
	"juli": time.July, "agustus": time.August, "september": time.September,
	"oktober": time.October, "november": time.November, "desember": time.December,
}

var (
	monthNameRe = regexp.MustCompile(`\b(januari|februari|maret|april|mei|juni|juli|agustus|september|oktober|november|desember)(?:\s+(\d{4}))?\b`)
	durationRe  = regexp.MustCompile(`(\d+)\s*(hari|minggu|bulan|tahun)\b`)
)

// futureKeywords resolve deadline words for goals.
var futureKeywords = []struct {
	keyword string
	shift   func(now time.Time) time.Time
}{
	{"minggu depan", func(now time.Time) time.Time { return now.AddDate(0, 0, 7) }},
	{"bulan depan", func(now time.Time) time.Time { return now.AddDate(0, 1, 0) }},
	{"tahun depan", func(now time.Time) time.Time { return now.AddDate(1, 0, 0) }},
	{"lusa", func(now time.Time) time.Time { return now.AddDate(0, 0, 2) }},
	{"besok", func(now time.Time) time.Time { return now.AddDate(0, 0, 1) }},
}

// TargetDate resolves a goal deadline from text. Explicit dates win, then
// Indonesian month names (deadline is the end of that month), then numeric
// durations ("6 bulan"), then deadline keywords. Defaults to one month out
// when nothing matches.
func TargetDate(text string, now time.Time) time.Time {
	if t, ok := explicitDate(text, now); ok {
		return t
	}

	if m := monthNameRe.FindStringSubmatch(text); m != nil {
		month := monthNames[m[1]]
		year := now.Year()
		if m[2] != "" {
			year, _ = strconv.Atoi(m[2])
		} else if month <= now.Month() {
			year++
		}
		// Last day of the named month.
		return time.Date(year, month+1, 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	}

	if m := durationRe.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "hari":
			return now.AddDate(0, 0, n)
		case "minggu":
			return now.AddDate(0, 0, 7*n)
		case "bulan":
			return now.AddDate(0, n, 0)
		case "tahun":
			return now.AddDate(n, 0, 0)
		}
	}

	for _, fk := range futureKeywords {
		if strings.Contains(text, fk.keyword) {
			return fk.shift(now)
		}
	}

	return now.AddDate(0, 1, 0)
}
