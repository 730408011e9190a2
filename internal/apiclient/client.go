// Package apiclient is a typed HTTP client for the quoter API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/history"
	"github.com/quotelab/mortgage-quoter/internal/installment"
	"github.com/quotelab/mortgage-quoter/internal/quote"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// APIError is a non-2xx answer. Problems is filled on validation failures so
// callers can show the checklist instead of a single opaque message.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Problems   []string
}

func (e *APIError) Error() string {
	if len(e.Problems) > 0 {
		return fmt.Sprintf("api: %s: %s", e.Code, strings.Join(e.Problems, "; "))
	}
	return fmt.Sprintf("api: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	blob, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, decodeAPIError(resp.StatusCode, blob)
	}
	return blob, nil
}

func decodeAPIError(status int, blob []byte) error {
	var envelope struct {
		Error struct {
			Code     string   `json:"code"`
			Message  string   `json:"message"`
			Problems []string `json:"problems"`
		} `json:"error"`
	}
	if err := json.Unmarshal(blob, &envelope); err != nil || envelope.Error.Code == "" {
		return &APIError{StatusCode: status, Code: "http_error", Message: string(blob)}
	}
	return &APIError{
		StatusCode: status,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
		Problems:   envelope.Error.Problems,
	}
}

// Quote prices a free-text request.
func (c *Client) Quote(ctx context.Context, text string, customDiscountPercent *float64) (*quote.Quote, error) {
	payload, _ := json.Marshal(map[string]any{
		"text":                    text,
		"custom_discount_percent": customDiscountPercent,
	})
	blob, err := c.doJSON(ctx, http.MethodPost, "/v1/quotes", payload)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Quote *quote.Quote `json:"quote"`
	}
	if err := json.Unmarshal(blob, &resp); err != nil {
		return nil, err
	}
	if resp.Quote == nil {
		return nil, fmt.Errorf("missing quote in response")
	}
	return resp.Quote, nil
}

// QuotePDF prices a request and returns the rendered PDF bytes.
func (c *Client) QuotePDF(ctx context.Context, text string) ([]byte, error) {
	payload, _ := json.Marshal(map[string]any{"text": text})
	return c.doJSON(ctx, http.MethodPost, "/v1/quotes/pdf", payload)
}

// Installment prices installment life cover from a free-text request.
func (c *Client) Installment(ctx context.Context, text string) (*installment.Quote, error) {
	payload, _ := json.Marshal(map[string]any{"text": text})
	blob, err := c.doJSON(ctx, http.MethodPost, "/v1/installments", payload)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Installment *installment.Quote `json:"installment"`
	}
	if err := json.Unmarshal(blob, &resp); err != nil {
		return nil, err
	}
	if resp.Installment == nil {
		return nil, fmt.Errorf("missing installment in response")
	}
	return resp.Installment, nil
}

// Recent lists the latest stored quotes, newest first.
func (c *Client) Recent(ctx context.Context, limit int) ([]history.Entry, error) {
	path := "/v1/quotes/recent"
	if limit > 0 {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(limit))
		path += "?" + q.Encode()
	}
	blob, err := c.doJSON(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Quotes []history.Entry `json:"quotes"`
	}
	if err := json.Unmarshal(blob, &resp); err != nil {
		return nil, err
	}
	return resp.Quotes, nil
}

// Get fetches one stored quote by id.
func (c *Client) Get(ctx context.Context, id string) (*quote.Quote, error) {
	blob, err := c.doJSON(ctx, http.MethodGet, "/v1/quotes/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Quote *quote.Quote `json:"quote"`
	}
	if err := json.Unmarshal(blob, &resp); err != nil {
		return nil, err
	}
	if resp.Quote == nil {
		return nil, fmt.Errorf("missing quote in response")
	}
	return resp.Quote, nil
}

// Health reports which optional services the server runs with.
func (c *Client) Health(ctx context.Context) (map[string]bool, error) {
	blob, err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for k, v := range raw {
		if b, ok := v.(bool); ok {
			out[k] = b
		}
	}
	return out, nil
}
