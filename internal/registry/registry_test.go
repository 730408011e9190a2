package registry

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestLoadValidates(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(r.Banks()) < 20 {
		t.Fatalf("expected full bank sheet, got %d banks", len(r.Banks()))
	}
}

func TestBankAliasLookup(t *testing.T) {
	r := MustLoad()
	cases := []struct {
		alias string
		want  string
	}{
		{"сбер", "Сбербанк"},
		{"СБЕРБАНК", "Сбербанк"},
		{"втб", "ВТБ"},
		{"открытие", "ВТБ"},
		{"дом рф", "Дом.РФ"},
		{"россельхоз", "РСХБ"},
		{"тинькофф", "Росбанк / Т-Банк"},
		{"  гпб  ", "Газпромбанк"},
	}
	for _, c := range cases {
		b, ok := r.Bank(c.alias)
		if !ok {
			t.Errorf("Bank(%q) not found", c.alias)
			continue
		}
		if b.Name != c.want {
			t.Errorf("Bank(%q) = %s, want %s", c.alias, b.Name, c.want)
		}
	}
	if _, ok := r.Bank("несуществующий"); ok {
		t.Error("unknown bank resolved")
	}
}

func TestEffectiveTermsVTBCutoff(t *testing.T) {
	r := MustLoad()
	vtb, _ := r.Bank("втб")

	old := vtb.EffectiveTerms(date(2024, 12, 1))
	if old.MarkupPercent == nil || *old.MarkupPercent != 10 {
		t.Errorf("pre-cutoff markup = %v, want 10", old.MarkupPercent)
	}
	if !old.AllowDiscountLife {
		t.Error("pre-cutoff life discount should be allowed")
	}

	cur := vtb.EffectiveTerms(date(2025, 2, 1))
	if cur.MarkupPercent == nil || *cur.MarkupPercent != 0 {
		t.Errorf("post-cutoff markup = %v, want 0", cur.MarkupPercent)
	}
	if cur.AllowDiscountLife || cur.AllowDiscountProperty || cur.AllowDiscountTitle {
		t.Error("post-cutoff discounts should be off")
	}

	zero := vtb.EffectiveTerms(time.Time{})
	if *zero.MarkupPercent != 10 {
		t.Errorf("zero date should resolve oldest terms, got markup %v", *zero.MarkupPercent)
	}
}

func TestClientSuppliedMarkup(t *testing.T) {
	r := MustLoad()
	for _, name := range []string{"альфа", "убрир"} {
		b, _ := r.Bank(name)
		if b.EffectiveTerms(time.Time{}).MarkupPercent != nil {
			t.Errorf("%s markup should be client-supplied", b.Name)
		}
	}
}

func TestLifeRate(t *testing.T) {
	r := MustLoad()
	sber, _ := r.Bank("сбер")

	if got, ok := r.LifeRate(sber, GenderMale, 30, time.Time{}); !ok || got != 0.30 {
		t.Errorf("base male 30 = %v %v, want 0.30", got, ok)
	}
	if got, ok := r.LifeRate(sber, GenderFemale, 18, time.Time{}); !ok || got != 0.10 {
		t.Errorf("base female 18 = %v %v, want 0.10", got, ok)
	}
	if _, ok := r.LifeRate(sber, GenderMale, 17, time.Time{}); ok {
		t.Error("age below table should not resolve")
	}
	if _, ok := r.LifeRate(sber, GenderMale, 65, time.Time{}); ok {
		t.Error("age above table should not resolve")
	}
}

func TestLifeRateVTBSchedule(t *testing.T) {
	r := MustLoad()
	vtb, _ := r.Bank("втб")

	pre, ok := r.LifeRate(vtb, GenderMale, 35, date(2024, 6, 1))
	if !ok || pre != 0.45 {
		t.Errorf("pre-cutoff male 35 = %v %v, want base 0.45", pre, ok)
	}

	post, ok := r.LifeRate(vtb, GenderMale, 35, date(2025, 3, 1))
	if !ok || post != 0.38 {
		t.Errorf("post-cutoff male 35 = %v %v, want vtb table 0.38", post, ok)
	}

	// Ages past 50 fall through to the base table after the cutoff.
	over, ok := r.LifeRate(vtb, GenderMale, 55, date(2025, 3, 1))
	if !ok || over != 1.69 {
		t.Errorf("post-cutoff male 55 = %v %v, want overflow 1.69", over, ok)
	}
}

func TestLifeRateGPBSchedule(t *testing.T) {
	r := MustLoad()
	gpb, _ := r.Bank("гпб")

	pre, _ := r.LifeRate(gpb, GenderFemale, 40, date(2024, 1, 10))
	post, _ := r.LifeRate(gpb, GenderFemale, 40, date(2024, 5, 2))
	if pre != 0.40 || post != 0.49 {
		t.Errorf("gpb female 40 pre/post = %v/%v, want 0.40/0.49", pre, post)
	}
}

func TestPropertyRate(t *testing.T) {
	r := MustLoad()
	cases := []struct {
		bank string
		obj  ObjectType
		want float64
	}{
		{"Сбербанк", ObjectFlat, 0.10},
		{"Сбербанк", ObjectHouseBrick, 0.18},
		{"Сбербанк", ObjectHouseWood, 0.43},
		{"Дом.РФ", ObjectFlat, 0.144},
		{"Дом.РФ", ObjectHouseWood, 0.43},
	}
	for _, c := range cases {
		got, ok := r.PropertyRate(c.bank, c.obj, time.Time{}, true)
		if !ok || got != c.want {
			t.Errorf("PropertyRate(%s, %s) = %v %v, want %v", c.bank, c.obj, got, ok, c.want)
		}
	}
}

func TestTitleRate(t *testing.T) {
	r := MustLoad()
	if got := r.TitleRate("Сбербанк", time.Time{}, true); got != 0.2 {
		t.Errorf("default title = %v, want 0.2", got)
	}
	if got := r.TitleRate("Газпромбанк", date(2024, 1, 1), true); got != 0.28 {
		t.Errorf("gpb pre-cutoff with life = %v, want 0.28", got)
	}
	if got := r.TitleRate("Газпромбанк", date(2024, 1, 1), false); got != 0.336 {
		t.Errorf("gpb pre-cutoff solo = %v, want 0.336", got)
	}
	if got := r.TitleRate("Газпромбанк", date(2024, 6, 1), false); got != 0.457 {
		t.Errorf("gpb post-cutoff solo = %v, want 0.457", got)
	}
}

func TestRidersByObject(t *testing.T) {
	r := MustLoad()

	flat := r.Riders(ObjectFlat)
	if len(flat) != 4 {
		t.Fatalf("flat riders = %d, want 4", len(flat))
	}

	house := r.Riders(ObjectHouseWood)
	if len(house) != 1 || house[0].ID != "bastion" {
		t.Fatalf("house riders = %+v, want bastion only", house)
	}
}

func TestDiscountPercent(t *testing.T) {
	r := MustLoad()

	sber, _ := r.Bank("сбер")
	terms := sber.EffectiveTerms(time.Time{})
	if got, ok := r.DiscountPercent(terms, RiskLife); !ok || got != 20 {
		t.Errorf("sber life discount = %v %v, want 20", got, ok)
	}
	if got, ok := r.DiscountPercent(terms, RiskProperty); !ok || got != 10 {
		t.Errorf("sber property discount = %v %v, want 10", got, ok)
	}
	if got, ok := r.DiscountPercent(terms, RiskTitle); !ok || got != 30 {
		t.Errorf("sber title discount = %v %v, want 30", got, ok)
	}

	alfa, _ := r.Bank("альфа")
	if _, ok := r.DiscountPercent(alfa.EffectiveTerms(time.Time{}), RiskLife); ok {
		t.Error("alfa life discount should be barred")
	}
}

func TestSubCoverageRateFor(t *testing.T) {
	c := SubCoverage{Tiers: []Tier{
		{MinSum: 100, MaxSum: 200, Rate: 0.01},
		{MinSum: 200, MaxSum: 400, Rate: 0.02},
	}}
	if got := c.RateFor(150); got != 0.01 {
		t.Errorf("in first tier = %v", got)
	}
	if got := c.RateFor(300); got != 0.02 {
		t.Errorf("in second tier = %v", got)
	}
	if got := c.RateFor(50); got != 0.01 {
		t.Errorf("below table clamps = %v", got)
	}
	if got := c.RateFor(900); got != 0.02 {
		t.Errorf("above table clamps = %v", got)
	}
}
