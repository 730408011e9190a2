// Package aiextract is the model-backed alternate to the rule-based
// extractor. It is optional: any transport or parse failure falls back to
// the deterministic extractor, so quoting never depends on the model.
package aiextract

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/quotelab/mortgage-quoter/internal/extract"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

const defaultTimeout = 20 * time.Second

type Extractor struct {
	caller   LLMCaller
	fallback *extract.Extractor
	banks    []string
	timeout  time.Duration
}

func New(caller LLMCaller, reg *registry.Registry) *Extractor {
	return &Extractor{
		caller:   caller,
		fallback: extract.New(reg),
		banks:    reg.BankNames(),
		timeout:  defaultTimeout,
	}
}

// Extract asks the model for a structured read of the request and falls
// back to the rule-based extractor when the model fails or returns
// something unusable.
func (e *Extractor) Extract(ctx context.Context, text string) *extract.Result {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.caller.GenerateJSON(ctx, e.prompt(text))
	if err != nil {
		return e.degrade(text, fmt.Sprintf("модельное извлечение недоступно (%v), использован детерминированный разбор", err))
	}
	raw = stripCodeFences(raw)
	if !gjson.Valid(raw) {
		return e.degrade(text, "модель вернула невалидный JSON, использован детерминированный разбор")
	}

	res, ok := parseModelResult(raw)
	if !ok {
		return e.degrade(text, "в ответе модели нет обязательных полей, использован детерминированный разбор")
	}
	return res
}

func (e *Extractor) degrade(text, note string) *extract.Result {
	res := e.fallback.Extract(text)
	res.Notes = append(res.Notes, note)
	return res
}

func (e *Extractor) prompt(text string) string {
	var b strings.Builder
	b.WriteString("Извлеки данные заявки на ипотечное страхование из текста ниже.\n")
	b.WriteString("Поддерживаемые банки: ")
	b.WriteString(strings.Join(e.banks, ", "))
	b.WriteString(".\n\nСхема ответа (JSON, без пояснений):\n")
	b.WriteString(`{
  "bank": "каноническое название банка или пустая строка",
  "balance": 0,
  "contract_date": "ДД.ММ.ГГГГ или пустая строка",
  "risks": {"life": false, "property": false, "title": false},
  "borrowers": [{"birth_date": "ДД.ММ.ГГГГ", "gender": "m|f", "share_percent": 100}],
  "object_type": "flat|apartment|townhouse|house_brick|house_wood или пустая строка",
  "material": "brick|wood|gasobet или пустая строка",
  "year_built": 0,
  "gas": null,
  "markup_percent": null,
  "confidence": 0.0
}`)
	b.WriteString("\n\nТекст заявки:\n")
	b.WriteString(text)
	return b.String()
}

// parseModelResult maps the model JSON onto the extractor result. Bank plus
// either a balance or borrowers is the minimum worth keeping.
func parseModelResult(raw string) (*extract.Result, bool) {
	res := &extract.Result{
		Bank:    gjson.Get(raw, "bank").String(),
		Balance: gjson.Get(raw, "balance").Float(),
		Risks: extract.Risks{
			Life:     gjson.Get(raw, "risks.life").Bool(),
			Property: gjson.Get(raw, "risks.property").Bool(),
			Title:    gjson.Get(raw, "risks.title").Bool(),
		},
		ObjectType: registry.ObjectType(gjson.Get(raw, "object_type").String()),
		Material:   registry.Material(gjson.Get(raw, "material").String()),
		YearBuilt:  int(gjson.Get(raw, "year_built").Int()),
		Confidence: gjson.Get(raw, "confidence").Float(),
		Notes:      []string{"данные извлечены моделью"},
	}
	if res.Bank == "" {
		return nil, false
	}
	res.BankConfidence = res.Confidence

	if d, ok := parseDate(gjson.Get(raw, "contract_date").String()); ok {
		res.ContractDate = d
	}
	if g := gjson.Get(raw, "gas"); g.Exists() && g.Type != gjson.Null {
		v := g.Bool()
		res.Gas = &v
	}
	if m := gjson.Get(raw, "markup_percent"); m.Exists() && m.Type == gjson.Number {
		v := m.Float()
		res.MarkupPercent = &v
	}

	for _, b := range gjson.Get(raw, "borrowers").Array() {
		borrower := extract.Borrower{
			Gender:       registry.Gender(b.Get("gender").String()),
			SharePercent: b.Get("share_percent").Float(),
		}
		if d, ok := parseDate(b.Get("birth_date").String()); ok {
			borrower.BirthDate = d
		}
		res.Borrowers = append(res.Borrowers, borrower)
	}

	if res.Balance <= 0 && len(res.Borrowers) == 0 {
		return nil, false
	}

	switch {
	case res.Confidence >= 0.85:
		res.ConfidenceBand = extract.BandHigh
	case res.Confidence >= 0.6:
		res.ConfidenceBand = extract.BandMedium
	default:
		res.ConfidenceBand = extract.BandLow
	}
	return res, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2.1.2006", s)
	return d, err == nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
