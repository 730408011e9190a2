// Package httpapi exposes the quoting pipeline over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/aiextract"
	"github.com/quotelab/mortgage-quoter/internal/history"
	"github.com/quotelab/mortgage-quoter/internal/installment"
	"github.com/quotelab/mortgage-quoter/internal/pdfrender"
	"github.com/quotelab/mortgage-quoter/internal/quote"
	"github.com/quotelab/mortgage-quoter/internal/registry"
	"github.com/quotelab/mortgage-quoter/internal/telemetry"
)

// Server wires the pipeline, the installment calculator and the optional
// side services. AI extraction, history and PDF rendering may each be nil;
// the endpoints that need a missing one answer 503.
type Server struct {
	pipeline *quote.Pipeline
	inst     *installment.Calculator

	ai    *aiextract.Extractor
	store *history.Store
	pdf   *pdfrender.Renderer
}

// timeNow is swapped in tests so installment terms stay fixed.
var timeNow = time.Now

// Option configures optional server dependencies.
type Option func(*Server)

func WithAIExtractor(ex *aiextract.Extractor) Option {
	return func(s *Server) { s.ai = ex }
}

func WithHistory(store *history.Store) Option {
	return func(s *Server) { s.store = store }
}

func WithPDFRenderer(r *pdfrender.Renderer) Option {
	return func(s *Server) { s.pdf = r }
}

func NewServer(reg *registry.Registry, opts ...Option) http.Handler {
	s := &Server{
		pipeline: quote.NewPipeline(reg),
		inst:     installment.NewCalculator(reg),
	}
	for _, opt := range opts {
		opt(s)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/quotes", s.handleQuote)
	mux.HandleFunc("/v1/quotes/pdf", s.handleQuotePDF)
	mux.HandleFunc("/v1/quotes/recent", s.handleRecent)
	mux.HandleFunc("/v1/quotes/", s.handleQuoteByID)
	mux.HandleFunc("/v1/installments", s.handleInstallment)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return telemetry.Middleware("httpapi", mux)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]any{
		"ok": false,
		"error": map[string]any{
			"code":    code,
			"message": message,
		},
	})
}

// writeQuoteError maps pipeline failures onto the wire. A validation error
// carries the full checklist so the client can fix everything in one pass.
func writeQuoteError(w http.ResponseWriter, err error) {
	var verr *quote.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":     "validation",
				"message":  "в запросе не хватает данных для расчета",
				"problems": verr.Problems,
			},
		})
		return
	}
	writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return []byte("{}"), nil
	}
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return blob, nil
}

func parseInt(value string, def int) int {
	if strings.TrimSpace(value) == "" {
		return def
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return v
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

type quoteRequest struct {
	Text                  string   `json:"text"`
	CustomDiscountPercent *float64 `json:"custom_discount_percent"`
	UseAI                 bool     `json:"use_ai"`
}

func (s *Server) runQuote(r *http.Request, req quoteRequest) (*quote.Quote, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, &quote.ValidationError{Problems: []string{"пустой запрос: опишите кредит и риски текстом"}}
	}
	ctx, span := telemetry.Span(r.Context(), "pipeline.quote")
	defer span.End()
	if req.UseAI && s.ai != nil {
		res := s.ai.Extract(ctx, req.Text)
		return s.pipeline.QuoteExtracted(res, req.CustomDiscountPercent)
	}
	return s.pipeline.Quote(quote.Request{
		Text:                  req.Text,
		CustomDiscountPercent: req.CustomDiscountPercent,
	})
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var req quoteRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	q, err := s.runQuote(r, req)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if s.store != nil {
		if err := s.store.Save(q); err != nil {
			log.Printf("save quote %s: %v", q.ID, err)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "quote": q})
}

func (s *Server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.pdf == nil {
		writeError(w, http.StatusServiceUnavailable, "pdf_unavailable", "PDF rendering is not configured")
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var req quoteRequest
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	q, err := s.runQuote(r, req)
	if err != nil {
		writeQuoteError(w, err)
		return
	}
	if s.store != nil {
		if err := s.store.Save(q); err != nil {
			log.Printf("save quote %s: %v", q.ID, err)
		}
	}
	pdf, err := s.pdf.Render(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "quote-"+q.ID+".pdf"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (s *Server) handleInstallment(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	blob, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(blob, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	parsed := installment.Parse(req.Text, timeNow())
	if !parsed.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"ok": false,
			"error": map[string]any{
				"code":     "validation",
				"message":  "в запросе не хватает данных для расчета рассрочки",
				"problems": parsed.Problems,
			},
		})
		return
	}
	iq, err := s.inst.Calculate(parsed)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "not_quotable", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "installment": iq})
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history_unavailable", "quote history is not configured")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), 0)
	entries, err := s.store.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "quotes": entries})
}

func (s *Server) handleQuoteByID(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "history_unavailable", "quote history is not configured")
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/quotes/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not_found", "quote not found")
		return
	}
	q, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "quote not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "quote": q})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"ai":      s.ai != nil,
		"history": s.store != nil,
		"pdf":     s.pdf != nil,
	})
}
