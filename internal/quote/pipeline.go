package quote

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quotelab/mortgage-quoter/internal/extract"
	"github.com/quotelab/mortgage-quoter/internal/premium"
	"github.com/quotelab/mortgage-quoter/internal/registry"
	"github.com/quotelab/mortgage-quoter/internal/variant"
)

// Pipeline runs a request end to end: extraction, validation, the first
// quote, the optimized second quote and the rendered report.
type Pipeline struct {
	reg  *registry.Registry
	ex   *extract.Extractor
	calc *premium.Calculator
	opt  *variant.Optimizer
}

func NewPipeline(reg *registry.Registry) *Pipeline {
	return &Pipeline{
		reg:  reg,
		ex:   extract.New(reg),
		calc: premium.New(reg),
		opt:  variant.New(reg),
	}
}

// Quote prices a free-text request. A *ValidationError is returned when the
// text lacks data no quote can be built without.
func (p *Pipeline) Quote(req Request) (*Quote, error) {
	res := p.ex.Extract(req.Text)
	return p.QuoteExtracted(res, req.CustomDiscountPercent)
}

// QuoteExtracted prices an already extracted request. Callers that run their
// own extraction (the model-backed one) enter here.
func (p *Pipeline) QuoteExtracted(res *extract.Result, customDiscount *float64) (*Quote, error) {
	if err := p.validate(res); err != nil {
		return nil, err
	}

	in := p.toInput(res)
	first, err := p.calc.Calculate(in)
	if err != nil {
		return nil, fmt.Errorf("quote: %w", err)
	}

	q := &Quote{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Extraction: res,
		Input:      in,
		First:      first,
		Second:     p.opt.Optimize(first, in),
	}
	if customDiscount != nil {
		q.CustomDiscountPercent = customDiscount
		q.CustomTotal = first.DiscountedTotal(*customDiscount)
	}
	q.Report = renderReport(q)
	return q, nil
}

// validate mirrors the manual checklist an underwriter runs before quoting.
// Every missing piece is reported at once.
func (p *Pipeline) validate(res *extract.Result) error {
	var probs []string

	var bank *registry.BankConfig
	if res.Bank == "" {
		probs = append(probs, "название банка не найдено, укажите банк в запросе (например 'Сбербанк' или 'ВТБ')")
	} else if b, ok := p.reg.Bank(res.Bank); !ok {
		probs = append(probs, fmt.Sprintf("банк %q не поддерживается", res.Bank))
	} else {
		bank = b
	}

	if res.Balance <= 0 {
		probs = append(probs, "остаток задолженности не найден, укажите сумму в рублях (например 'остаток 2 500 000')")
	}

	if !res.Risks.Life && !res.Risks.Property && !res.Risks.Title {
		probs = append(probs, "тип страхования не указан, укажите 'жизнь', 'имущество' или 'титул'")
	}

	if res.Risks.Life {
		if len(res.Borrowers) == 0 {
			probs = append(probs, "для страхования жизни нужны данные заемщика: пол и дата рождения (например 'муж 15.08.1985')")
		}
		for i, b := range res.Borrowers {
			if b.BirthDate.IsZero() {
				probs = append(probs, fmt.Sprintf("у заемщика %d не указана дата рождения (формат ДД.ММ.ГГГГ)", i+1))
			}
			if b.Gender == "" {
				probs = append(probs, fmt.Sprintf("у заемщика %d не указан пол, укажите 'муж' или 'жен'", i+1))
			}
		}
	}

	if res.Risks.Property {
		switch res.ObjectType {
		case "":
			probs = append(probs, "для страхования имущества укажите тип объекта: 'квартира', 'дом', 'таунхаус' или 'апартаменты'")
		case registry.ObjectHouseBrick, registry.ObjectHouseWood:
			if res.Material == "" {
				probs = append(probs, "для дома укажите материал стен: 'кирпич' или 'дерево'")
			}
			if res.ObjectType == registry.ObjectHouseWood && res.Gas == nil {
				probs = append(probs, "для деревянного дома укажите наличие газа: 'с газом' или 'без газа'")
			}
		}
	}

	if bank != nil {
		terms := bank.EffectiveTerms(res.ContractDate)
		if terms.MarkupPercent == nil && res.MarkupPercent == nil {
			probs = append(probs, fmt.Sprintf("для банка %s укажите процентную ставку по кредиту (например 'ставка 10%%')", bank.Name))
		}
	}

	if len(probs) > 0 {
		return &ValidationError{Problems: probs}
	}
	return nil
}

func (p *Pipeline) toInput(res *extract.Result) premium.Input {
	in := premium.Input{
		BankName:      res.Bank,
		Balance:       res.Balance,
		ContractDate:  res.ContractDate,
		MarkupPercent: res.MarkupPercent,
		Life:          res.Risks.Life,
		Property:      res.Risks.Property,
		Title:         res.Risks.Title,
		ObjectType:    res.ObjectType,
		Material:      res.Material,
	}
	for _, b := range res.Borrowers {
		in.Borrowers = append(in.Borrowers, premium.Borrower{
			Gender:       b.Gender,
			BirthDate:    b.BirthDate,
			SharePercent: b.SharePercent,
		})
	}
	return in
}
