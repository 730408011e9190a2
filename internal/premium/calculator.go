package premium

import (
	"fmt"
	"math"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Calculator prices the first quote: insured amount with the bank markup,
// then life, property and title premiums with the bank's standard discounts.
// Every sub-premium is rounded to kopecks on its own before totals.
type Calculator struct {
	reg *registry.Registry
}

func New(reg *registry.Registry) *Calculator {
	return &Calculator{reg: reg}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate produces a quote. It only errors on an unknown bank; missing
// pieces of an otherwise valid request degrade to warnings.
func (c *Calculator) Calculate(in Input) (*Result, error) {
	bank, ok := c.reg.Bank(in.BankName)
	if !ok {
		return nil, fmt.Errorf("premium: unknown bank %q", in.BankName)
	}
	terms := bank.EffectiveTerms(in.ContractDate)

	res := &Result{
		Bank:    bank.Name,
		Balance: in.Balance,
	}

	switch {
	case terms.MarkupPercent != nil:
		res.MarkupPercent = *terms.MarkupPercent
	case in.MarkupPercent != nil:
		res.MarkupPercent = *in.MarkupPercent
	default:
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("для банка %s надбавка указывается клиентом, расчет выполнен без надбавки", bank.Name))
	}
	res.InsuredAmount = in.Balance * (1 + res.MarkupPercent/100)

	if in.Life {
		c.calcLife(in, bank, terms, res)
	}
	if in.Property {
		c.calcProperty(in, bank, terms, res)
	}
	if in.Title {
		c.calcTitle(in, bank, terms, res)
	}

	sum := func(pick func(*RiskTotal) float64) float64 {
		var t float64
		for _, rt := range []*RiskTotal{res.Life, res.Property, res.Title} {
			if rt != nil {
				t += pick(rt)
			}
		}
		return round2(t)
	}
	res.TotalBase = sum(func(rt *RiskTotal) float64 { return rt.Premium })
	res.TotalDiscounted = sum(func(rt *RiskTotal) float64 { return rt.Discounted })
	return res, nil
}

func (c *Calculator) calcLife(in Input, bank *registry.BankConfig, terms registry.BankTerms, res *Result) {
	if len(in.Borrowers) == 0 {
		res.Warnings = append(res.Warnings, "страхование жизни пропущено: нет данных заемщиков")
		return
	}

	var shareSum float64
	for _, b := range in.Borrowers {
		shareSum += b.SharePercent
	}
	if shareSum != 100 && !bank.ShareSumExempt {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("доли заемщиков дают %.0f%% вместо 100%%", shareSum))
	}

	discount, hasDiscount := c.reg.DiscountPercent(terms, registry.RiskLife)
	lt := &RiskTotal{HasDiscount: hasDiscount, DiscountPercent: discount}

	for i, b := range in.Borrowers {
		age := ageAt(b.BirthDate, in.ContractDate)
		if age < 0 {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("заемщик %d пропущен: нет даты рождения", i+1))
			continue
		}
		rate, ok := c.reg.LifeRate(bank, b.Gender, age, in.ContractDate)
		if !ok {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("заемщик %d пропущен: возраст %d вне тарифной сетки", i+1, age))
			continue
		}
		prem := round2(res.InsuredAmount * b.SharePercent / 100 * rate / 100)
		line := LifeLine{
			Gender:       b.Gender,
			Age:          age,
			SharePercent: b.SharePercent,
			RatePercent:  rate,
			Premium:      prem,
			Discounted:   prem,
		}
		if hasDiscount {
			line.Discounted = round2(prem * (1 - discount/100))
		}
		res.LifeLines = append(res.LifeLines, line)
		lt.Premium = round2(lt.Premium + line.Premium)
		lt.Discounted = round2(lt.Discounted + line.Discounted)
	}
	if len(res.LifeLines) == 0 {
		return
	}
	res.Life = lt
}

func (c *Calculator) calcProperty(in Input, bank *registry.BankConfig, terms registry.BankTerms, res *Result) {
	obj := in.ObjectType
	if obj == "" {
		obj = registry.ObjectFlat
	}
	rate, ok := c.reg.PropertyRate(bank.Name, obj, in.ContractDate, in.Life)
	if !ok {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("страхование имущества пропущено: нет тарифа для объекта %q", obj))
		return
	}
	res.Property = riskTotal(res.InsuredAmount, rate, c.reg, terms, registry.RiskProperty)
}

func (c *Calculator) calcTitle(in Input, bank *registry.BankConfig, terms registry.BankTerms, res *Result) {
	rate := c.reg.TitleRate(bank.Name, in.ContractDate, in.Life)
	res.Title = riskTotal(res.InsuredAmount, rate, c.reg, terms, registry.RiskTitle)
}

func riskTotal(insured, rate float64, reg *registry.Registry, terms registry.BankTerms, risk registry.Risk) *RiskTotal {
	prem := round2(insured * rate / 100)
	rt := &RiskTotal{
		RatePercent: rate,
		Premium:     prem,
		Discounted:  prem,
	}
	if d, ok := reg.DiscountPercent(terms, risk); ok {
		rt.HasDiscount = true
		rt.DiscountPercent = d
		rt.Discounted = round2(prem * (1 - d/100))
	}
	return rt
}

func ageAt(birth, ref time.Time) int {
	if birth.IsZero() {
		return -1
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	age := ref.Year() - birth.Year()
	if ref.Month() < birth.Month() || (ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		age--
	}
	return age
}
