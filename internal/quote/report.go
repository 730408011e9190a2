package quote

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/quotelab/mortgage-quoter/internal/premium"
)

// renderReport builds the client-facing Markdown breakdown: variant 1 at
// list prices, variant 2 from the optimizer, variant 3 at the custom
// discount when one was asked for.
func renderReport(q *Quote) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", q.First.Bank)
	fmt.Fprintf(&b, "Страховая сумма %s ₽", rub(q.First.InsuredAmount))
	if q.First.MarkupPercent > 0 {
		fmt.Fprintf(&b, " (остаток %s ₽ + %s%%)", rub(q.First.Balance), trimPercent(q.First.MarkupPercent))
	}
	b.WriteString("\n\n")

	writeVariant1(&b, q.First)

	if q.Second != nil {
		s := q.Second
		fmt.Fprintf(&b, "**Вариант 2 (повышенные скидки + доп. риски):**\n\n")
		writeRiskLines(&b, q.First, s.DiscountPercent)
		for _, r := range s.Riders {
			if r.Sum > 0 {
				fmt.Fprintf(&b, "доп риск - %s (%s) на сумму %s ₽ премия %s\n", r.Name, r.Label, rubWhole(r.Sum), rub(r.Premium))
			} else {
				fmt.Fprintf(&b, "доп риск - %s (%s) %s\n", r.Name, r.Label, rub(r.Premium))
			}
		}
		fmt.Fprintf(&b, "Итого тариф/взнос %s\n\n", rub(s.Total))
	}

	if q.CustomDiscountPercent != nil {
		d := *q.CustomDiscountPercent
		fmt.Fprintf(&b, "**Вариант 3 (скидка %s%%):**\n\n", trimPercent(d))
		writeRiskLines(&b, q.First, d)
		fmt.Fprintf(&b, "Итого тариф/взнос %s\n\n", rub(q.CustomTotal))
	}

	notes := append(append([]string(nil), q.Extraction.Notes...), q.First.Warnings...)
	if len(notes) > 0 {
		b.WriteString("Примечания:\n\n")
		for _, n := range notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeVariant1(b *strings.Builder, r *premium.Result) {
	fmt.Fprintf(b, "**Вариант 1:**\n\n")
	if r.Property != nil {
		fmt.Fprintf(b, "имущество %s\n", rub(r.Property.Premium))
	}
	for i, line := range r.LifeLines {
		label := "заемщик"
		if len(r.LifeLines) > 1 {
			label = fmt.Sprintf("заемщик %d", i+1)
		}
		fmt.Fprintf(b, "жизнь %s %s\n", label, rub(line.Premium))
	}
	if r.Title != nil {
		fmt.Fprintf(b, "титул %s\n", rub(r.Title.Premium))
	}
	fmt.Fprintf(b, "ИТОГО тариф/взнос %s\n\n", rub(r.TotalBase))
}

// writeRiskLines prints the core risks repriced at a flat discount, with
// barred risks at list price.
func writeRiskLines(b *strings.Builder, r *premium.Result, percent float64) {
	k := 1 - percent/100
	price := func(rt *premium.RiskTotal) float64 {
		if rt.HasDiscount {
			return math.Round(rt.Premium*k*100) / 100
		}
		return rt.Premium
	}
	if r.Property != nil {
		fmt.Fprintf(b, "имущество %s\n", rub(price(r.Property)))
	}
	if r.Life != nil {
		label := "заемщик"
		if len(r.LifeLines) > 1 {
			label = "заемщики"
		}
		fmt.Fprintf(b, "жизнь %s %s\n", label, rub(price(r.Life)))
	}
	if r.Title != nil {
		fmt.Fprintf(b, "титул %s\n", rub(price(r.Title)))
	}
}

// rub formats an amount the way Russian policy documents do: space-grouped
// thousands, comma decimals, two places.
func rub(v float64) string {
	return group(strconv.FormatFloat(v, 'f', 2, 64))
}

// rubWhole formats a sum insured without kopecks.
func rubWhole(v float64) string {
	return group(strconv.FormatFloat(v, 'f', 0, 64))
}

func group(s string) string {
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i+1:]
	}
	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	res := string(out)
	if neg {
		res = "-" + res
	}
	if frac != "" {
		res += "," + frac
	}
	return res
}

func trimPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
