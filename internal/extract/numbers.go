package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// minLargeNumber is the floor for a figure to count as a debt balance
// candidate. Smaller figures are shares, ages, floor numbers and so on.
const minLargeNumber = 1000

var (
	reDate    = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`)
	reYear    = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	rePercent = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*%`)
	reFigure  = regexp.MustCompile(`\d+(?:[.,]\d+)*(?:\s\d+(?:[.,]\d+)*)*`)
)

// parseAmount normalizes a money figure written with thousand-group spaces
// and a comma or dot decimal separator ("5 632 057", "3 991 511,63").
// The result is rounded to kopecks.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, "₽", "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.Replace(s, ",", ".", 1)
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' || r == '.' {
			b.WriteRune(r)
		}
	}
	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return math.Round(v*100) / 100, true
}

// parseDMY parses a DD.MM.YYYY date, rejecting impossible calendar dates.
func parseDMY(s string) (time.Time, bool) {
	t, err := time.Parse("2.1.2006", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func scanDates(text string) []string {
	return reDate.FindAllString(text, -1)
}

func scanYears(text string) []int {
	var years []int
	for _, m := range reYear.FindAllString(text, -1) {
		y, _ := strconv.Atoi(m)
		years = append(years, y)
	}
	return years
}

func scanPercents(text string) []float64 {
	var out []float64
	for _, m := range rePercent.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64)
		if err == nil {
			out = append(out, v)
		}
	}
	return out
}

// scanLargeFigures collects balance candidates line by line. Dotted dates
// fall out naturally: their multiple separators fail amount parsing.
func scanLargeFigures(text string) []float64 {
	var out []float64
	for _, line := range strings.Split(text, "\n") {
		for _, m := range reFigure.FindAllString(line, -1) {
			if v, ok := parseAmount(m); ok && v >= minLargeNumber {
				out = append(out, v)
			}
		}
	}
	return out
}

func editDistance(a, b []rune) int {
	m, n := len(a), len(b)
	prev := make([]int, n+1)
	cur := make([]int, n+1)
	for j := 0; j <= n; j++ {
		prev[j] = j
	}
	for i := 1; i <= m; i++ {
		cur[0] = i
		for j := 1; j <= n; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[n]
}

// similarity is 1 - normalized edit distance, on lowercased runes.
func similarity(a, b string) float64 {
	ra := []rune(strings.ToLower(a))
	rb := []rune(strings.ToLower(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	d := editDistance(ra, rb)
	return 1 - float64(d)/float64(max(len(ra), len(rb)))
}

// containsWord reports whether text holds word as a whole token. Tokens are
// runs of letters and digits; RE2 word boundaries are ASCII-only and cannot
// delimit Cyrillic.
func containsWord(text, word string) bool {
	for _, tok := range splitTokens(text) {
		if tok == word {
			return true
		}
	}
	return false
}

func splitTokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			return false
		case r >= 'а' && r <= 'я' || r == 'ё':
			return false
		}
		return true
	})
}
