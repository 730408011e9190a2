package quote

import "testing"

func TestRubFormatting(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00"},
		{550, "550,00"},
		{2400.5, "2 400,50"},
		{5632057.13, "5 632 057,13"},
		{-1234.5, "-1 234,50"},
	}
	for _, tc := range cases {
		if got := rub(tc.in); got != tc.want {
			t.Errorf("rub(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := rubWhole(300000); got != "300 000" {
		t.Errorf("rubWhole(300000) = %q", got)
	}
}
