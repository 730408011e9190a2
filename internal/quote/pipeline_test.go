package quote

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/extract"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func pipeline(t *testing.T) *Pipeline {
	t.Helper()
	return NewPipeline(registry.MustLoad())
}

func TestQuoteLifeAndPropertyFlat(t *testing.T) {
	p := pipeline(t)
	q, err := p.Quote(Request{
		Text: "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984",
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.ID == "" {
		t.Fatal("missing quote id")
	}
	// No markup for this bank, so the insured amount equals the balance.
	if q.First.InsuredAmount != 3_000_000 {
		t.Fatalf("insured = %v, want 3000000", q.First.InsuredAmount)
	}
	if len(q.First.LifeLines) != 1 || q.First.LifeLines[0].Age != 40 {
		t.Fatalf("life lines = %+v", q.First.LifeLines)
	}
	if q.First.LifeLines[0].Premium != 18300 {
		t.Fatalf("life premium = %v, want 18300", q.First.LifeLines[0].Premium)
	}
	if q.First.Property.Premium != 3000 {
		t.Fatalf("property premium = %v, want 3000", q.First.Property.Premium)
	}
	if q.First.TotalBase != 21300 {
		t.Fatalf("total = %v, want 21300", q.First.TotalBase)
	}
	if q.Second == nil || q.Second.ProductID != "moyakvartira" {
		t.Fatalf("second quote = %+v, want moyakvartira", q.Second)
	}
	if !strings.Contains(q.Report, "Вариант 1") || !strings.Contains(q.Report, "Вариант 2") {
		t.Fatalf("report missing variants:\n%s", q.Report)
	}
}

func TestQuoteMarkupBreakout(t *testing.T) {
	p := pipeline(t)
	q, err := p.Quote(Request{
		Text: "втб, остаток 2 000 000, кд от 01.06.2024, квартира, муж 01.01.1984",
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.First.InsuredAmount != 2_200_000 {
		t.Fatalf("insured = %v, want 2200000 with 10%% markup", q.First.InsuredAmount)
	}
	if !strings.Contains(q.Report, "+ 10%") {
		t.Fatalf("report does not break out the markup:\n%s", q.Report)
	}
}

func TestQuoteOutOfRangeBorrowerDegrades(t *testing.T) {
	p := pipeline(t)
	q, err := p.Quote(Request{
		Text: "сбербанк осз 1 000 000 кд 01.06.2024 квартира\nмуж 01.01.1954 60%, жен 01.01.1984 40%",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.First.LifeLines) != 1 || q.First.LifeLines[0].Gender != registry.GenderFemale {
		t.Fatalf("life lines = %+v, want only the in-range borrower", q.First.LifeLines)
	}
	if q.First.LifeLines[0].Premium != 1520 {
		t.Fatalf("life premium = %v, want 1520", q.First.LifeLines[0].Premium)
	}
	found := false
	for _, w := range q.First.Warnings {
		if strings.Contains(w, "пропущен") {
			found = true
		}
	}
	if !found {
		t.Fatalf("want a skip warning, got %v", q.First.Warnings)
	}
}

func TestQuoteLifeOnlyHasNoSecondVariant(t *testing.T) {
	p := pipeline(t)
	res := &extract.Result{
		Bank:         "ВТБ",
		Balance:      2_000_000,
		ContractDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Risks:        extract.Risks{Life: true},
		Borrowers: []extract.Borrower{{
			BirthDate:    time.Date(1984, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:       registry.GenderMale,
			SharePercent: 100,
		}},
		ObjectType: registry.ObjectHouseWood,
	}
	q, err := p.QuoteExtracted(res, nil)
	if err != nil {
		t.Fatal(err)
	}
	if q.Second != nil {
		t.Fatalf("second quote = %+v, want none without a property policy", q.Second)
	}
}

func TestQuoteCustomDiscountVariant(t *testing.T) {
	p := pipeline(t)
	d := 25.0
	q, err := p.Quote(Request{
		Text:                  "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984",
		CustomDiscountPercent: &d,
	})
	if err != nil {
		t.Fatal(err)
	}
	// 18300 and 3000 both at 25% off.
	if q.CustomTotal != 15975 {
		t.Fatalf("custom total = %v, want 15975", q.CustomTotal)
	}
	if !strings.Contains(q.Report, "Вариант 3 (скидка 25%)") {
		t.Fatalf("report missing variant 3:\n%s", q.Report)
	}
}

func TestQuoteValidationListsEverything(t *testing.T) {
	p := pipeline(t)
	_, err := p.Quote(Request{Text: "посчитай страховку"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	// Bank, balance and risk type are all missing and all reported at once.
	if len(verr.Problems) < 3 {
		t.Fatalf("problems = %v, want the full checklist", verr.Problems)
	}
}

func TestQuoteValidationClientMarkupRequired(t *testing.T) {
	p := pipeline(t)
	_, err := p.Quote(Request{
		Text: "альфа банк остаток 2 000 000 кд 01.06.2024 квартира муж 01.01.1984",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	found := false
	for _, prob := range verr.Problems {
		if strings.Contains(prob, "ставку") {
			found = true
		}
	}
	if !found {
		t.Fatalf("problems = %v, want a rate requirement", verr.Problems)
	}
}

func TestQuoteValidationWoodenHouseNeedsGas(t *testing.T) {
	p := pipeline(t)
	res := &extract.Result{
		Bank:         "Сбербанк",
		Balance:      2_000_000,
		ContractDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Risks:        extract.Risks{Property: true},
		ObjectType:   registry.ObjectHouseWood,
		Material:     registry.MaterialWood,
	}
	_, err := p.QuoteExtracted(res, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *ValidationError", err)
	}
	if len(verr.Problems) != 1 || !strings.Contains(verr.Problems[0], "газ") {
		t.Fatalf("problems = %v, want the gas question", verr.Problems)
	}
}
