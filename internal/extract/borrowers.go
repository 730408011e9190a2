package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

const genderWords = `мужчина|женщина|мужч|муж|жен|она|он`

var (
	// "жен 04.06.1981 - 50%", "он - 50% - 13.04.1968" style lines.
	reBorrowerShare = regexp.MustCompile(`(?i)(` + genderWords + `)[^\d]{0,20}(\d{1,2}\.\d{1,2}\.\d{4})[^\d]{0,20}(\d{1,3})\s*%`)
	// "муж, 07.01.1985", "она 25.11.1992".
	reBorrowerSimple = regexp.MustCompile(`(?i)(` + genderWords + `)[^\d]{0,20}(\d{1,2}\.\d{1,2}\.\d{4})`)
	// "02.03.1980 женщина". Spaces only: a date at the end of a contract
	// line must not pair with a gender word opening the next line.
	reBorrowerDateFirst = regexp.MustCompile(`(?i)(\d{1,2}\.\d{1,2}\.\d{4})[ \t]+(` + genderWords + `)`)
	// Loose whole-text fallback when no line-level match was found.
	reBorrowerGlobal = regexp.MustCompile(`(?i)(` + genderWords + `)[^0-9]{0,30}(\d{1,2}\.\d{1,2}\.\d{4})`)

	reLineStartsDate = regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}`)
)

func genderOf(word string) registry.Gender {
	switch strings.ToLower(word) {
	case "женщина", "жен", "она":
		return registry.GenderFemale
	}
	return registry.GenderMale
}

type rawBorrower struct {
	dob    string
	gender registry.Gender
	share  *float64
}

// scanBorrowers recovers insured persons from the request text. Line-level
// patterns run first; the loose whole-text pass only fires when they found
// nothing. Lines carrying contract-date markers are not scanned so that
// credit dates never register as birth dates.
func scanBorrowers(text string) []rawBorrower {
	var found []rawBorrower
	seen := map[string]bool{}
	add := func(b rawBorrower) {
		if !seen[b.dob] {
			seen[b.dob] = true
			found = append(found, b)
		}
	}

	// Date-before-gender spans line breaks in practice, scan the whole text.
	for _, m := range reBorrowerDateFirst.FindAllStringSubmatch(text, -1) {
		add(rawBorrower{dob: m[1], gender: genderOf(m[2])})
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isContractLine(line) {
			continue
		}
		shared := reBorrowerShare.FindAllStringSubmatch(line, -1)
		for _, m := range shared {
			share, _ := strconv.ParseFloat(m[3], 64)
			add(rawBorrower{dob: m[2], gender: genderOf(m[1]), share: &share})
		}
		if len(shared) > 0 {
			continue
		}
		for _, m := range reBorrowerSimple.FindAllStringSubmatch(line, -1) {
			add(rawBorrower{dob: m[2], gender: genderOf(m[1])})
		}
	}

	if len(found) == 0 {
		for _, m := range reBorrowerGlobal.FindAllStringSubmatch(text, -1) {
			if containsWord(m[0], "кд") {
				continue
			}
			add(rawBorrower{dob: m[2], gender: genderOf(m[1])})
		}
	}
	return found
}

func isContractLine(line string) bool {
	if containsWord(line, "кд") {
		return true
	}
	lower := strings.ToLower(line)
	if strings.Contains(lower, "кредитный договор") {
		return true
	}
	return reLineStartsDate.MatchString(line)
}

// normalizeShares makes borrower shares total 100. With no shares given the
// split is equal with the remainder on the last borrower; with partial or
// off-total shares the given values are rescaled proportionally.
func normalizeShares(bs []Borrower) {
	if len(bs) == 0 {
		return
	}
	if len(bs) == 1 {
		bs[0].SharePercent = 100
		return
	}
	var total float64
	anyGiven := false
	for _, b := range bs {
		total += b.SharePercent
		if b.SharePercent != 0 {
			anyGiven = true
		}
	}
	if total == 100 {
		return
	}
	if !anyGiven {
		splitEqually(bs)
		return
	}
	for i := range bs {
		bs[i].SharePercent = math.Round(bs[i].SharePercent * 100 / total)
	}
}

func splitEqually(bs []Borrower) {
	eq := math.Floor(100 / float64(len(bs)))
	for i := range bs {
		if i == len(bs)-1 {
			bs[i].SharePercent = 100 - eq*float64(len(bs)-1)
		} else {
			bs[i].SharePercent = eq
		}
	}
}
