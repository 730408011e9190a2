package extract

import (
	"testing"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	return New(registry.MustLoad())
}

func TestExtractFullRequest(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("Сбербанк, остаток 5 632 057, кд от 15.03.2024, квартира, муж 07.01.1985, ставка 10%")

	if res.Bank != "Сбербанк" || res.BankConfidence != 1.0 {
		t.Errorf("bank = %q (%v)", res.Bank, res.BankConfidence)
	}
	if res.Balance != 5632057 {
		t.Errorf("balance = %v, want 5632057", res.Balance)
	}
	if got := res.ContractDate; got != time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("contract date = %v", got)
	}
	if res.ObjectType != registry.ObjectFlat {
		t.Errorf("object = %q", res.ObjectType)
	}
	if len(res.Borrowers) != 1 {
		t.Fatalf("borrowers = %d, want 1", len(res.Borrowers))
	}
	b := res.Borrowers[0]
	if b.Gender != registry.GenderMale || b.SharePercent != 100 {
		t.Errorf("borrower = %+v", b)
	}
	if b.BirthDate != time.Date(1985, 1, 7, 0, 0, 0, 0, time.UTC) {
		t.Errorf("birth date = %v", b.BirthDate)
	}
	if res.MarkupPercent == nil || *res.MarkupPercent != 10 {
		t.Errorf("markup = %v", res.MarkupPercent)
	}
	if !res.Risks.Life || !res.Risks.Property {
		t.Errorf("risks = %+v", res.Risks)
	}
	if res.ConfidenceBand != BandMedium {
		t.Errorf("band = %s (conf %v)", res.ConfidenceBand, res.Confidence)
	}
}

func TestExtractHighConfidence(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("Сбербанк кирпичный дом осз 7 000 000 ставка 9% он 01.01.1985 50%, она 02.02.1987 50%")

	if res.Balance != 7000000 {
		t.Errorf("balance = %v", res.Balance)
	}
	if res.ObjectType != registry.ObjectHouseBrick || res.Material != registry.MaterialBrick {
		t.Errorf("object = %q material = %q", res.ObjectType, res.Material)
	}
	if len(res.Borrowers) != 2 {
		t.Fatalf("borrowers = %d, want 2", len(res.Borrowers))
	}
	if res.Borrowers[0].SharePercent != 50 || res.Borrowers[1].SharePercent != 50 {
		t.Errorf("shares = %v/%v", res.Borrowers[0].SharePercent, res.Borrowers[1].SharePercent)
	}
	if res.Borrowers[0].Gender != registry.GenderMale || res.Borrowers[1].Gender != registry.GenderFemale {
		t.Errorf("genders = %v/%v", res.Borrowers[0].Gender, res.Borrowers[1].Gender)
	}
	if res.MarkupPercent == nil || *res.MarkupPercent != 9 {
		t.Errorf("markup = %v", res.MarkupPercent)
	}
	if res.ConfidenceBand != BandHigh {
		t.Errorf("band = %s (conf %v)", res.ConfidenceBand, res.Confidence)
	}
}

func TestExtractFuzzyBankName(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("сбебанк 2 000 000 квартира муж 01.01.1990")
	if res.Bank != "Сбербанк" {
		t.Fatalf("bank = %q", res.Bank)
	}
	if res.BankConfidence >= 1 || res.BankConfidence < fuzzyBankThreshold {
		t.Errorf("confidence = %v, want fuzzy score below 1", res.BankConfidence)
	}
}

func TestExtractRightmostContractDate(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("втб 3 000 000 кд от 01.02.2020, перенесли, кд от 05.06.2024")
	if res.ContractDate != time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC) {
		t.Errorf("contract date = %v, want the later mention", res.ContractDate)
	}
}

func TestExtractEqualShareSplit(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("втб ж+им 5 000 000 он 01.01.1980, она 02.02.1982")

	if res.Bank != "ВТБ" {
		t.Fatalf("bank = %q", res.Bank)
	}
	if len(res.Borrowers) != 2 {
		t.Fatalf("borrowers = %d, want 2", len(res.Borrowers))
	}
	if res.Borrowers[0].SharePercent != 50 || res.Borrowers[1].SharePercent != 50 {
		t.Errorf("shares = %v/%v, want equal split", res.Borrowers[0].SharePercent, res.Borrowers[1].SharePercent)
	}
	if !res.Risks.Life || !res.Risks.Property {
		t.Errorf("risks = %+v, want life and property from combo keyword", res.Risks)
	}
}

func TestExtractProportionalShareRescale(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("сбер 4 000 000 он 01.01.1980 60%, она 02.02.1982 60%")
	if len(res.Borrowers) != 2 {
		t.Fatalf("borrowers = %d", len(res.Borrowers))
	}
	if res.Borrowers[0].SharePercent != 50 || res.Borrowers[1].SharePercent != 50 {
		t.Errorf("shares = %v/%v, want rescale to 50/50", res.Borrowers[0].SharePercent, res.Borrowers[1].SharePercent)
	}
}

func TestExtractContractLineNotABorrower(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("кд 12.05.2023\nжен 04.06.1981")

	if res.ContractDate != time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC) {
		t.Errorf("contract date = %v", res.ContractDate)
	}
	if len(res.Borrowers) != 1 {
		t.Fatalf("borrowers = %d, want 1", len(res.Borrowers))
	}
	if res.Borrowers[0].BirthDate != time.Date(1981, 6, 4, 0, 0, 0, 0, time.UTC) {
		t.Errorf("borrower dob = %v", res.Borrowers[0].BirthDate)
	}
}

func TestExtractGenderWordWithoutDate(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("Сбер 4 000 000 квартира муж")

	if len(res.Borrowers) != 1 {
		t.Fatalf("borrowers = %d, want 1", len(res.Borrowers))
	}
	b := res.Borrowers[0]
	if !b.BirthDate.IsZero() || b.Gender != registry.GenderMale || b.SharePercent != 100 {
		t.Errorf("borrower = %+v", b)
	}
	if !res.Risks.Life {
		t.Error("life risk should follow from a named person")
	}
	if len(res.Notes) == 0 {
		t.Error("missing birth date should be noted")
	}
}

func TestExtractWoodenHouse(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("дом из бруса, газа нет, 2 500 000, жен 05.05.1980, 1995 года постройки")

	if res.ObjectType != registry.ObjectHouseWood {
		t.Errorf("object = %q, want house_wood", res.ObjectType)
	}
	if res.Material != registry.MaterialWood {
		t.Errorf("material = %q", res.Material)
	}
	if res.Gas == nil || *res.Gas {
		t.Errorf("gas = %v, want false", res.Gas)
	}
	if res.YearBuilt != 1995 {
		t.Errorf("year built = %v, want 1995 and not a birth year", res.YearBuilt)
	}
	if res.Balance != 2500000 {
		t.Errorf("balance = %v", res.Balance)
	}
}

func TestExtractDomRFAliasIsNotAHouse(t *testing.T) {
	e := newExtractor(t)
	res := e.Extract("дом.рф 3 000 000 жен 01.01.1990")

	if res.Bank != "Дом.РФ" {
		t.Fatalf("bank = %q", res.Bank)
	}
	if res.ObjectType != "" {
		t.Errorf("object = %q, the bank alias must not read as a house", res.ObjectType)
	}
}

func TestExtractNeverFails(t *testing.T) {
	e := newExtractor(t)
	for _, text := range []string{"", "   ", "???", "привет", "!!! 12 %%"} {
		res := e.Extract(text)
		if res == nil {
			t.Fatalf("nil result for %q", text)
		}
		if res.ConfidenceBand != BandLow {
			t.Errorf("band for %q = %s", text, res.ConfidenceBand)
		}
	}
}
