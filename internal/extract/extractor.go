package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Extractor turns free-form broker requests into structured quote input.
// It is rule-based: dictionaries plus positional heuristics, no ML.
type Extractor struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Extractor {
	return &Extractor{reg: reg}
}

// fuzzyBankThreshold is the minimum token similarity for a misspelled bank
// name ("сбрбанк", "райфайзен") to resolve.
const fuzzyBankThreshold = 0.7

var riskKeywords = map[registry.Risk][]string{
	registry.RiskLife:     {"жизн", "life", "личн"},
	registry.RiskProperty: {"имущ", "квар", "кварти", "апарт", "таун", "частный дом", "жилой дом"},
	registry.RiskTitle:    {"титул", "title"},
}

var contractDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)кд\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)кд\.\s*(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)кд[^\d]{1,10}(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)кредитный\s+договор\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)кредит\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)выдача\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
	regexp.MustCompile(`(?i)договор\s+от\s+(\d{1,2}\.\d{1,2}\.\d{4})`),
}

var (
	// The gaps exclude letters so that "ост" inside words like "постройки"
	// cannot anchor a balance.
	reBalanceBefore = regexp.MustCompile(`(?i)(\d[\d\s.,]*?)[^\d\nа-яёa-z]{0,10}(?:остаток|осз|ост|сумма)`)
	reBalanceAfter  = regexp.MustCompile(`(?i)(?:остаток|осз|ост|сумма)[^\d\nа-яёa-z]{0,10}(\d[\d\s.,]*)`)
	reMarkup        = regexp.MustCompile(`(?i)ставк[аеи:]?[^\d]{0,20}(\d+(?:[.,]\d+)?)\s*%`)
	reFlat          = regexp.MustCompile(`(?i)кварти|кв[^а-яёa-z0-9]|кв$`)
	reQuotes        = regexp.MustCompile(`[«»“”„]`)
	reSpaces        = regexp.MustCompile(`[\t ]+`)
)

// normalizeText flattens the usual messenger artifacts: non-breaking spaces,
// decorative quotes, tab runs, CR line endings.
func normalizeText(t string) string {
	t = strings.ReplaceAll(t, " ", " ")
	t = reQuotes.ReplaceAllString(t, `"`)
	t = reSpaces.ReplaceAllString(t, " ")
	t = strings.ReplaceAll(t, "\r", "\n")
	return strings.TrimSpace(t)
}

// Extract parses a request. It never returns an error: whatever the text did
// not yield stays unset and lowers the confidence score.
func (e *Extractor) Extract(raw string) *Result {
	text := normalizeText(raw)
	lower := strings.ToLower(text)
	res := &Result{}

	bankText := text
	if name, conf, matched := e.detectBank(text, lower); name != "" {
		res.Bank = name
		res.BankConfidence = conf
		if matched != "" {
			// Keep bank aliases like "дом.рф" from reading as object keywords.
			if i := strings.Index(lower, matched); i >= 0 {
				bankText = text[:i] + text[i+len(matched):]
			}
		}
	}
	bankLower := strings.ToLower(bankText)

	if d, ok := findContractDate(text); ok {
		res.ContractDate = d
	}
	e.extractBalance(text, res)

	res.Borrowers = collectBorrowers(text)

	res.ObjectType = detectObjectType(bankLower)
	res.Material = detectMaterial(lower)
	res.YearBuilt = detectYearBuilt(text)
	res.Gas = detectGas(lower)
	res.MarkupPercent = detectMarkup(text)

	detectRisks(lower, res)
	if len(res.Borrowers) == 0 {
		fallbackBorrower(text, lower, res)
	}
	normalizeShares(res.Borrowers)

	res.Confidence = scoreConfidence(res)
	switch {
	case res.Confidence >= 0.85:
		res.ConfidenceBand = BandHigh
	case res.Confidence >= 0.6:
		res.ConfidenceBand = BandMedium
	default:
		res.ConfidenceBand = BandLow
	}
	return res
}

// detectBank resolves the bank by exact alias substring first, then by fuzzy
// token similarity. Returns the matched alias for exact hits so the caller
// can mask it out of further scans.
func (e *Extractor) detectBank(text, lower string) (name string, conf float64, matched string) {
	for _, b := range e.reg.Banks() {
		for _, alias := range append([]string{b.Name}, b.Aliases...) {
			a := strings.ToLower(alias)
			if strings.Contains(lower, a) {
				return b.Name, 1.0, a
			}
		}
	}
	tokens := splitTokens(text)
	var bestName string
	var bestScore float64
	for _, b := range e.reg.Banks() {
		for _, alias := range b.Aliases {
			for _, tok := range tokens {
				if s := similarity(tok, alias); s > bestScore {
					bestName, bestScore = b.Name, s
				}
			}
		}
	}
	if bestScore >= fuzzyBankThreshold {
		return bestName, bestScore, ""
	}
	return "", 0, ""
}

// findContractDate picks the rightmost date tied to a contract keyword.
// Requests often restate an old contract and then correct themselves, so the
// later mention wins.
func findContractDate(text string) (time.Time, bool) {
	best := ""
	bestPos := -1
	for _, re := range contractDatePatterns {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			if m[0] > bestPos {
				bestPos = m[0]
				best = text[m[2]:m[3]]
			}
		}
	}
	if best == "" {
		for _, line := range strings.Split(text, "\n") {
			if containsWord(line, "кд") || containsWord(line, "кредит") || containsWord(line, "договор") {
				if ds := scanDates(line); len(ds) > 0 {
					best = ds[0]
					break
				}
			}
		}
	}
	if best == "" {
		return time.Time{}, false
	}
	return parseDMY(best)
}

// extractBalance fills the debt balance. Keyword-anchored figures win; with
// no keyword a single dominant figure is taken, then the first of several.
func (e *Extractor) extractBalance(text string, res *Result) {
	record := func(source string, v float64) {
		res.Balance = v
		res.BalanceCandidates = append(res.BalanceCandidates, Candidate{Source: source, Value: v})
	}

	if m := reBalanceBefore.FindStringSubmatch(text); m != nil {
		if v, ok := parseAmount(m[1]); ok && v >= minLargeNumber {
			record("before_keyword", v)
		}
	}
	if res.Balance == 0 {
		if m := reBalanceAfter.FindStringSubmatchIndex(text); m != nil {
			rest := strings.TrimLeft(text[m[3]:], " ")
			if !strings.HasPrefix(rest, "%") {
				if v, ok := parseAmount(text[m[2]:m[3]]); ok && v >= minLargeNumber {
					record("after_keyword", v)
				}
			}
		}
	}

	large := scanLargeFigures(text)
	if res.Balance == 0 && len(large) > 0 {
		if len(large) == 1 {
			record("single_figure", large[0])
		} else {
			record("first_of_several", large[0])
			res.Notes = append(res.Notes, "остаток взят по первому крупному числу, проверьте сумму")
		}
	}
	for i := 1; i < len(large); i++ {
		res.BalanceCandidates = append(res.BalanceCandidates, Candidate{Source: "other_figure", Value: large[i]})
	}
}

func collectBorrowers(text string) []Borrower {
	var out []Borrower
	for _, rb := range scanBorrowers(text) {
		b := Borrower{Gender: rb.gender}
		if d, ok := parseDMY(rb.dob); ok {
			b.BirthDate = d
		} else {
			continue
		}
		if rb.share != nil {
			b.SharePercent = *rb.share
		}
		out = append(out, b)
	}
	return out
}

// fallbackBorrower covers requests that name a person without a full
// borrower line: a bare gender word, or a lone plausible birth date on a
// life-risk request.
func fallbackBorrower(text, lower string, res *Result) {
	switch {
	case containsAnyWord(lower, "мужчина", "муж", "он", "мужч"):
		res.Borrowers = append(res.Borrowers, Borrower{Gender: registry.GenderMale, SharePercent: 100})
		res.Notes = append(res.Notes, "не найдена дата рождения заемщика")
		res.Risks.Life = true
	case containsAnyWord(lower, "женщина", "жен", "она"):
		res.Borrowers = append(res.Borrowers, Borrower{Gender: registry.GenderFemale, SharePercent: 100})
		res.Notes = append(res.Notes, "не найдена дата рождения заемщика")
		res.Risks.Life = true
	case res.Risks.Life:
		for _, ds := range scanDates(text) {
			d, ok := parseDMY(ds)
			if !ok {
				continue
			}
			age := Borrower{BirthDate: d}.AgeAt(res.ContractDate)
			if age >= 18 && age <= 100 {
				res.Borrowers = append(res.Borrowers, Borrower{BirthDate: d, SharePercent: 100})
				break
			}
		}
	}
}

func containsAnyWord(lower string, words ...string) bool {
	for _, w := range words {
		if containsWord(lower, w) {
			return true
		}
	}
	return false
}

func detectRisks(lower string, res *Result) {
	for risk, keys := range riskKeywords {
		for _, k := range keys {
			if strings.Contains(lower, k) {
				res.setRisk(risk)
				break
			}
		}
	}
	for _, combo := range []string{"ж+им", "ж + им", "жизнь и имущ", "2 риска", "два риска"} {
		if strings.Contains(lower, combo) {
			res.Risks.Life = true
			res.Risks.Property = true
		}
	}
	if len(res.Borrowers) > 0 {
		res.Risks.Life = true
	}
	if res.ObjectType != "" {
		res.Risks.Property = true
	}
}

func (r *Result) setRisk(risk registry.Risk) {
	switch risk {
	case registry.RiskLife:
		r.Risks.Life = true
	case registry.RiskProperty:
		r.Risks.Property = true
	case registry.RiskTitle:
		r.Risks.Title = true
	}
}

func detectObjectType(lower string) registry.ObjectType {
	switch {
	case strings.Contains(lower, "таун"):
		return registry.ObjectTownhouse
	case strings.Contains(lower, "апарт"):
		return registry.ObjectApartment
	case reFlat.MatchString(lower):
		return registry.ObjectFlat
	case strings.Contains(lower, "дом"):
		if hasWoodKeyword(lower) {
			return registry.ObjectHouseWood
		}
		// Brick is the default house build.
		return registry.ObjectHouseBrick
	}
	return ""
}

func detectMaterial(lower string) registry.Material {
	switch {
	case strings.Contains(lower, "газобетон"):
		return registry.MaterialAeratedConc
	case strings.Contains(lower, "кирпич"), strings.Contains(lower, "блок"), strings.Contains(lower, "железобетон"):
		return registry.MaterialBrick
	case hasWoodKeyword(lower):
		return registry.MaterialWood
	}
	return ""
}

func hasWoodKeyword(lower string) bool {
	for _, k := range []string{"дерев", "древес", "каркас", "брус"} {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// detectYearBuilt takes the last standalone year. Calendar dates are masked
// first so birth dates do not read as construction years.
func detectYearBuilt(text string) int {
	masked := reDate.ReplaceAllString(text, " ")
	years := scanYears(masked)
	if len(years) == 0 {
		return 0
	}
	return years[len(years)-1]
}

func detectGas(lower string) *bool {
	yes := true
	no := false
	for _, k := range []string{"газ есть", "газ: есть", "есть газ"} {
		if strings.Contains(lower, k) {
			return &yes
		}
	}
	for _, k := range []string{"газа нет", "нет газа", "газ отсутствует"} {
		if strings.Contains(lower, k) {
			return &no
		}
	}
	return nil
}

// detectMarkup prefers an explicit "ставка N%" mention; otherwise the first
// percent figure that is not a borrower share.
func detectMarkup(text string) *float64 {
	if m := reMarkup.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(strings.Replace(m[1], ",", ".", 1), 64); err == nil {
			return &v
		}
	}
	shareSpans := reBorrowerShare.FindAllStringSubmatchIndex(text, -1)
	for _, m := range rePercent.FindAllStringSubmatchIndex(text, -1) {
		inShare := false
		for _, s := range shareSpans {
			if m[0] >= s[0] && m[1] <= s[1] {
				inShare = true
				break
			}
		}
		if inShare {
			continue
		}
		if v, err := strconv.ParseFloat(strings.Replace(text[m[2]:m[3]], ",", ".", 1), 64); err == nil {
			return &v
		}
	}
	return nil
}

func scoreConfidence(res *Result) float64 {
	var conf float64
	if res.Bank != "" {
		conf += 0.25 * res.BankConfidence
	}
	if res.Balance > 0 {
		conf += 0.25
	}
	if n := len(res.Borrowers); n > 0 {
		conf += math.Min(0.25, 0.1*float64(n))
	}
	if res.ObjectType != "" {
		conf += 0.1
	}
	if res.Material != "" {
		conf += 0.05
	}
	if res.MarkupPercent != nil {
		conf += 0.05
	}
	return math.Min(1, conf)
}
