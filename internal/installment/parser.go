package installment

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Parsed is the structured form of an installment request: the insured
// person, the installment amount and its end date. Problems lists what the
// text failed to yield; Valid is true only when everything needed is there.
type Parsed struct {
	FullName   string `json:"full_name,omitempty"`
	Surname    string `json:"surname,omitempty"`
	FirstName  string `json:"first_name,omitempty"`
	MiddleName string `json:"middle_name,omitempty"`

	BirthDate time.Time       `json:"birth_date"`
	Age       int             `json:"age"`
	Gender    registry.Gender `json:"gender,omitempty"`

	Amount         float64   `json:"amount"`
	EndDate        time.Time `json:"end_date"`
	MonthsUntilEnd int       `json:"months_until_end"`

	// Height and weight feed the medical underwriting table when present.
	HeightCM int `json:"height_cm,omitempty"`
	WeightKG int `json:"weight_kg,omitempty"`

	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

var (
	reFullName = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)`),
		regexp.MustCompile(`([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s*,`),
		regexp.MustCompile(`([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)[,\s]*\d{1,2}\.\d{1,2}\.\d{4}`),
		regexp.MustCompile(`([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s+([А-ЯЁ][а-яё]+)\s*гр`),
	}
	reAnyDate = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`)
	reEndDate = regexp.MustCompile(`(?i)(?:срок\s+рассрочки\s+)?до\s+(\d{1,2}\.\d{1,2}\.(?:\d{4}|\d{2}))\s*г?`)
	reAmount  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)сумма\s+в\s+рассрочку\s+([\d\s]+?)\s*р`),
		regexp.MustCompile(`(?i)сумма\s+в\s+рассрочку\s+([\d\s]+)`),
		regexp.MustCompile(`(?i)рассрочку\s+([\d\s]+?)\s*р`),
		regexp.MustCompile(`(?i)рассрочку\s+([\d\s]+)`),
	}
	reAmountLoose = regexp.MustCompile(`(?i)рассрочку[^\d]*(\d{1,3}(?:\s+\d{3})+|\d{5,})`)
	reHeight      = regexp.MustCompile(`(?i)рост(?:ом)?:?\s*(\d{2,3})`)
	reWeight      = regexp.MustCompile(`(?i)вес(?:ом)?:?\s*(\d{2,3})`)
)

// femaleSurnameSuffixes mark a female surname; anything else reads as male.
var femaleSurnameSuffixes = []string{
	"ова", "ева", "ина", "ская", "цкая", "нская",
	"ая", "яя", "ую", "ою", "ею", "ию",
}

// GenderBySurname infers gender from a Russian surname ending.
func GenderBySurname(surname string) registry.Gender {
	s := strings.ToLower(strings.TrimSpace(surname))
	if s == "" {
		return ""
	}
	for _, suf := range femaleSurnameSuffixes {
		if strings.HasSuffix(s, suf) {
			return registry.GenderFemale
		}
	}
	return registry.GenderMale
}

// Parse pulls the installment request out of free text. A zero now resolves
// against the current date.
func Parse(text string, now time.Time) *Parsed {
	if now.IsZero() {
		now = time.Now()
	}
	p := &Parsed{}

	for _, re := range reFullName {
		if m := re.FindStringSubmatch(text); m != nil {
			p.Surname, p.FirstName, p.MiddleName = m[1], m[2], m[3]
			p.FullName = m[1] + " " + m[2] + " " + m[3]
			p.Gender = GenderBySurname(p.Surname)
			break
		}
	}
	if p.FullName == "" {
		p.Problems = append(p.Problems, "не удалось извлечь ФИО")
	}

	endRaw := ""
	if m := reEndDate.FindStringSubmatch(text); m != nil {
		endRaw = m[1]
		if d, ok := parseEndDate(endRaw); ok {
			p.EndDate = d
			p.MonthsUntilEnd = monthsUntil(d, now)
		}
	}
	if p.EndDate.IsZero() {
		p.Problems = append(p.Problems, "не удалось извлечь дату окончания рассрочки")
	} else if p.MonthsUntilEnd == 0 {
		p.Problems = append(p.Problems, "срок рассрочки уже истек")
	}

	// The first date that is not the installment end date is the birth date.
	for _, raw := range reAnyDate.FindAllString(text, -1) {
		if raw == endRaw {
			continue
		}
		if d, err := time.Parse("2.1.2006", raw); err == nil {
			p.BirthDate = d
			p.Age = ageAt(d, now)
			break
		}
	}
	if p.BirthDate.IsZero() {
		p.Problems = append(p.Problems, "не удалось извлечь дату рождения")
	}

	p.Amount = parseInstallmentAmount(text)
	if p.Amount == 0 {
		p.Problems = append(p.Problems, "не удалось извлечь сумму рассрочки")
	}

	if m := reHeight.FindStringSubmatch(text); m != nil {
		if v, _ := strconv.Atoi(m[1]); v >= 120 && v <= 220 {
			p.HeightCM = v
		}
	}
	if m := reWeight.FindStringSubmatch(text); m != nil {
		if v, _ := strconv.Atoi(m[1]); v >= 30 && v <= 200 {
			p.WeightKG = v
		}
	}

	p.Valid = len(p.Problems) == 0
	return p
}

func parseInstallmentAmount(text string) float64 {
	for _, re := range reAmount {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		digits := strings.ReplaceAll(strings.TrimSpace(m[1]), " ", "")
		if len(digits) < 5 {
			continue
		}
		if v, err := strconv.ParseFloat(digits, 64); err == nil && v > 0 {
			return v
		}
	}
	if m := reAmountLoose.FindStringSubmatch(text); m != nil {
		digits := strings.ReplaceAll(m[1], " ", "")
		if v, err := strconv.ParseFloat(digits, 64); err == nil && v > 0 {
			return v
		}
	}
	return 0
}

func parseEndDate(raw string) (time.Time, bool) {
	parts := strings.Split(raw, ".")
	if len(parts) == 3 && len(parts[2]) == 2 {
		yy, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, false
		}
		full := 1900 + yy
		if yy < 50 {
			full = 2000 + yy
		}
		raw = parts[0] + "." + parts[1] + "." + strconv.Itoa(full)
	}
	d, err := time.Parse("2.1.2006", raw)
	return d, err == nil
}

// monthsUntil counts calendar months from now to the end date, rounding a
// started month up. Returns 0 for past dates, never less than 1 otherwise.
func monthsUntil(end, now time.Time) int {
	if end.Before(now) {
		return 0
	}
	months := (end.Year()-now.Year())*12 + int(end.Month()) - int(now.Month())
	if end.Day() > now.Day() {
		months++
	}
	if months < 1 {
		return 1
	}
	return months
}

func ageAt(birth, ref time.Time) int {
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}
