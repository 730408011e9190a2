package installment

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Age-banded caps on the sum insured. Above 64 no installment cover is sold
// without a medical exam.
const (
	capUnder45 = 45_000_000
	cap45to49  = 35_000_000
	cap50to55  = 25_000_000
	cap56to64  = 15_000_000
)

const discountPercent = 25

// Quote is the priced installment cover: the standard premium over the
// installment term and the discounted one when underwriting allows it.
type Quote struct {
	FullName string          `json:"full_name"`
	Age      int             `json:"age"`
	Gender   registry.Gender `json:"gender"`

	Amount          float64 `json:"amount"`
	EffectiveAmount float64 `json:"effective_amount"`

	EndDate          time.Time `json:"end_date"`
	MonthsUntilEnd   int       `json:"months_until_end"`
	MonthsCalculated int       `json:"months_calculated"`

	TariffPercent  float64 `json:"tariff_percent"`
	AnnualPremium  float64 `json:"annual_premium"`
	MonthlyPremium float64 `json:"monthly_premium"`

	Standard   float64 `json:"standard"`
	Discounted float64 `json:"discounted"`

	UnderwritingFactor  float64  `json:"underwriting_factor"`
	RequiresMedicalExam bool     `json:"requires_medical_exam"`
	Notes               []string `json:"notes,omitempty"`
}

// Calculator prices installment life cover on the reference tariff table.
type Calculator struct {
	reg *registry.Registry
}

func NewCalculator(reg *registry.Registry) *Calculator {
	return &Calculator{reg: reg}
}

// tariffBank carries the reference life table the installment product uses.
const tariffBank = "Сбербанк"

func (c *Calculator) Calculate(p *Parsed) (*Quote, error) {
	if !p.Valid {
		return nil, fmt.Errorf("installment: невалидные данные: %s", strings.Join(p.Problems, ", "))
	}
	if p.Age < 18 || p.Age > 64 {
		if p.Age >= 65 {
			return nil, fmt.Errorf("installment: возраст %d лет требует медобследования", p.Age)
		}
		return nil, fmt.Errorf("installment: возраст %d лет вне тарифной сетки (18-64)", p.Age)
	}

	q := &Quote{
		FullName:           p.FullName,
		Age:                p.Age,
		Gender:             p.Gender,
		Amount:             p.Amount,
		EffectiveAmount:    p.Amount,
		EndDate:            p.EndDate,
		MonthsUntilEnd:     p.MonthsUntilEnd,
		UnderwritingFactor: factorStandard,
	}

	if limit := ageCap(p.Age); q.EffectiveAmount > limit {
		q.EffectiveAmount = limit
		q.Notes = append(q.Notes,
			fmt.Sprintf("максимальная страховая сумма для возраста %d лет: %.0f ₽", p.Age, limit))
	}

	if p.HeightCM > 0 && p.WeightKG > 0 {
		f := UnderwritingFactor(p.Age, p.HeightCM, p.WeightKG)
		switch f {
		case x:
			q.RequiresMedicalExam = true
			q.UnderwritingFactor = factorStandard
			q.Notes = append(q.Notes, "необходимо пройти медобследование")
		case factorLoaded:
			q.UnderwritingFactor = factorLoaded
			q.Notes = append(q.Notes, "применена надбавка +25% к тарифу жизни (мед. андеррайтинг)")
		}
	}

	bank, ok := c.reg.Bank(tariffBank)
	if !ok {
		return nil, fmt.Errorf("installment: reference tariff bank missing from registry")
	}
	rate, ok := c.reg.LifeRate(bank, p.Gender, p.Age, time.Time{})
	if !ok {
		return nil, fmt.Errorf("installment: тариф не найден для возраста %d и пола %s", p.Age, p.Gender)
	}
	q.TariffPercent = rate

	// Terms under a year are priced as a full year.
	q.MonthsCalculated = p.MonthsUntilEnd
	if q.MonthsCalculated < 12 {
		q.MonthsCalculated = 12
	}

	q.AnnualPremium = q.EffectiveAmount * rate / 100 * q.UnderwritingFactor
	q.MonthlyPremium = q.AnnualPremium / 12
	total := q.MonthlyPremium * float64(q.MonthsCalculated)

	q.Standard = round2(total)
	if q.RequiresMedicalExam || q.UnderwritingFactor == factorLoaded {
		q.Discounted = q.Standard
	} else {
		q.Discounted = round2(total * (1 - discountPercent/100.0))
	}
	return q, nil
}

func ageCap(age int) float64 {
	switch {
	case age <= 44:
		return capUnder45
	case age <= 49:
		return cap45to49
	case age <= 55:
		return cap50to55
	}
	return cap56to64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
