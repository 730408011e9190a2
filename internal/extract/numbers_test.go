package extract

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5 632 057", 5632057, true},
		{"3 991 511,63", 3991511.63, true},
		{"2500000", 2500000, true},
		{"1 200 000 ₽", 1200000, true},
		{"12,5", 12.5, true},
		{"07.01.1985", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseAmount(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("parseAmount(%q) = %v %v, want %v %v", c.in, got, ok, c.want, c.ok)
		}
	}
}

func TestParseDMY(t *testing.T) {
	if _, ok := parseDMY("31.02.2021"); ok {
		t.Error("impossible date accepted")
	}
	if d, ok := parseDMY("7.1.1985"); !ok || d.Year() != 1985 {
		t.Errorf("short form = %v %v", d, ok)
	}
}

func TestScanLargeFigures(t *testing.T) {
	got := scanLargeFigures("осз 5 632 057\nкд 15.03.2024\nдоля 50")
	if len(got) != 1 || got[0] != 5632057 {
		t.Errorf("figures = %v, want [5632057]", got)
	}
}

func TestSimilarity(t *testing.T) {
	if s := similarity("сбебанк", "сбербанк"); s < 0.8 {
		t.Errorf("typo similarity = %v", s)
	}
	if s := similarity("втб", "сбербанк"); s > 0.3 {
		t.Errorf("unrelated similarity = %v", s)
	}
	if s := similarity("", "сбер"); s != 0 {
		t.Errorf("empty similarity = %v", s)
	}
}

func TestContainsWord(t *testing.T) {
	if !containsWord("кд 15.03.2024", "кд") {
		t.Error("token not found")
	}
	if containsWord("закладная", "кд") {
		t.Error("substring must not count as a token")
	}
}
