package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tidwall/gjson"

	"github.com/quotelab/mortgage-quoter/internal/history"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(registry.MustLoad(), opts...))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		blob, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(blob)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("http do: %v", err)
	}
	return resp
}

func mustStatus(t *testing.T, resp *http.Response, want int) []byte {
	t.Helper()
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != want {
		t.Fatalf("status=%d want=%d body=%s", resp.StatusCode, want, string(blob))
	}
	return blob
}

const quoteText = "Сбербанк, остаток 3 000 000, кд от 01.06.2024, квартира, муж 01.01.1984"

func TestQuoteEndpoint(t *testing.T) {
	ts := newTestServer(t)

	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/quotes", map[string]any{"text": quoteText}), 200)
	if !gjson.GetBytes(blob, "ok").Bool() {
		t.Fatalf("ok=false: %s", blob)
	}
	if got := gjson.GetBytes(blob, "quote.first.total_base").Float(); got != 21300 {
		t.Fatalf("total_base = %v, want 21300", got)
	}
	if got := gjson.GetBytes(blob, "quote.second.product_id").String(); got != "moyakvartira" {
		t.Fatalf("second product = %q", got)
	}
	if gjson.GetBytes(blob, "quote.report").String() == "" {
		t.Fatal("report is empty")
	}
}

func TestQuoteEndpointStoresHistory(t *testing.T) {
	store, err := history.NewStore(t.TempDir() + "/quotes.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	ts := newTestServer(t, WithHistory(store))

	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/quotes", map[string]any{"text": quoteText}), 200)
	id := gjson.GetBytes(blob, "quote.id").String()
	if id == "" {
		t.Fatal("quote id is empty")
	}

	recent := mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/quotes/recent", nil), 200)
	if n := gjson.GetBytes(recent, "quotes.#").Int(); n != 1 {
		t.Fatalf("recent count = %d, want 1", n)
	}
	if bank := gjson.GetBytes(recent, "quotes.0.bank").String(); bank != "Сбербанк" {
		t.Fatalf("recent bank = %q", bank)
	}

	byID := mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/quotes/"+id, nil), 200)
	if got := gjson.GetBytes(byID, "quote.first.total_base").Float(); got != 21300 {
		t.Fatalf("stored total_base = %v, want 21300", got)
	}

	mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/quotes/no-such-id", nil), 404)
}

func TestQuoteValidationChecklist(t *testing.T) {
	ts := newTestServer(t)

	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/quotes", map[string]any{"text": "посчитай страховку"}), 422)
	if code := gjson.GetBytes(blob, "error.code").String(); code != "validation" {
		t.Fatalf("error code = %q", code)
	}
	if n := gjson.GetBytes(blob, "error.problems.#").Int(); n < 3 {
		t.Fatalf("problems = %s", gjson.GetBytes(blob, "error.problems").Raw)
	}
}

func TestQuoteEmptyText(t *testing.T) {
	ts := newTestServer(t)
	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/quotes", map[string]any{}), 422)
	if code := gjson.GetBytes(blob, "error.code").String(); code != "validation" {
		t.Fatalf("error code = %q", code)
	}
}

func TestInstallmentEndpoint(t *testing.T) {
	orig := timeNow
	timeNow = func() time.Time { return time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { timeNow = orig })

	ts := newTestServer(t)
	text := "Николаев Олег Юрьевич, 15.03.1980 гр\nСумма в рассрочку 10 000 000 р.\nСрок рассрочки до 10.01.2028"
	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/installments", map[string]any{"text": text}), 200)

	if got := gjson.GetBytes(blob, "installment.months_calculated").Int(); got != 24 {
		t.Fatalf("months = %d, want 24", got)
	}
	if got := gjson.GetBytes(blob, "installment.standard").Float(); got != 182000 {
		t.Fatalf("standard = %v, want 182000", got)
	}
	if got := gjson.GetBytes(blob, "installment.discounted").Float(); got != 136500 {
		t.Fatalf("discounted = %v, want 136500", got)
	}
}

func TestInstallmentValidation(t *testing.T) {
	ts := newTestServer(t)
	blob := mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/installments", map[string]any{"text": "посчитай рассрочку"}), 422)
	if n := gjson.GetBytes(blob, "error.problems.#").Int(); n < 3 {
		t.Fatalf("problems = %s", blob)
	}
}

func TestHealthAndMissingServices(t *testing.T) {
	ts := newTestServer(t)

	blob := mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/health", nil), 200)
	if gjson.GetBytes(blob, "history").Bool() || gjson.GetBytes(blob, "pdf").Bool() {
		t.Fatalf("health reports unconfigured services as up: %s", blob)
	}

	mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/quotes/recent", nil), 503)
	mustStatus(t, doJSON(t, http.MethodPost, ts.URL+"/v1/quotes/pdf", map[string]any{"text": quoteText}), 503)
	mustStatus(t, doJSON(t, http.MethodGet, ts.URL+"/v1/quotes", nil), 405)
}
