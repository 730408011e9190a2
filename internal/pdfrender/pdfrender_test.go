package pdfrender

import (
	"strings"
	"testing"

	"github.com/quotelab/mortgage-quoter/internal/quote"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func TestBuildHTML(t *testing.T) {
	q, err := quote.NewPipeline(registry.MustLoad()).Quote(quote.Request{
		Text: "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984",
	})
	if err != nil {
		t.Fatal(err)
	}

	doc, err := buildHTML(q)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(doc, "<strong>Сбербанк</strong>") {
		t.Fatalf("missing bank header:\n%s", doc)
	}
	if !strings.Contains(doc, "Вариант 1") {
		t.Fatal("report body missing from the document")
	}
	if !strings.Contains(doc, "charset='utf-8'") {
		t.Fatal("document must declare utf-8")
	}
}
