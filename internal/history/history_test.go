package history

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/quotelab/mortgage-quoter/internal/quote"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testQuote(t *testing.T, text string) *quote.Quote {
	t.Helper()
	q, err := quote.NewPipeline(registry.MustLoad()).Quote(quote.Request{Text: text})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestSaveAndGet(t *testing.T) {
	s := testStore(t)
	q := testQuote(t, "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984")

	if err := s.Save(q); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.First.TotalBase != q.First.TotalBase {
		t.Fatalf("total = %v, want %v", got.First.TotalBase, q.First.TotalBase)
	}
	if got.Report != q.Report {
		t.Fatal("report did not survive the round trip")
	}
}

func TestRecentOrder(t *testing.T) {
	s := testStore(t)
	q1 := testQuote(t, "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984")
	q2 := testQuote(t, "втб, остаток 2 000 000, кд от 01.06.2024, квартира, жен 02.02.1987")
	q2.CreatedAt = q1.CreatedAt.Add(1)

	for _, q := range []*quote.Quote{q1, q2} {
		if err := s.Save(q); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].ID != q2.ID {
		t.Fatalf("newest first: got %s", entries[0].ID)
	}
	if entries[0].Bank != "ВТБ" {
		t.Fatalf("bank = %q", entries[0].Bank)
	}
}

func TestGetMissing(t *testing.T) {
	s := testStore(t)
	if _, err := s.Get("нет-такого"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
