package quote

import (
	"strings"
	"time"

	"github.com/quotelab/mortgage-quoter/internal/extract"
	"github.com/quotelab/mortgage-quoter/internal/premium"
	"github.com/quotelab/mortgage-quoter/internal/variant"
)

// Request is a free-text quoting request. CustomDiscountPercent, when set,
// adds a third variant priced at that flat discount.
type Request struct {
	Text                  string   `json:"text"`
	CustomDiscountPercent *float64 `json:"custom_discount_percent,omitempty"`
}

// ValidationError lists everything the request is missing. The problems are
// user-facing Russian sentences, one per missing piece.
type ValidationError struct {
	Problems []string `json:"problems"`
}

func (e *ValidationError) Error() string {
	return "quote: invalid request: " + strings.Join(e.Problems, "; ")
}

// Quote is the full quoting outcome: the recovered request, the priced
// variants and the rendered report.
type Quote struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Extraction *extract.Result `json:"extraction"`
	Input      premium.Input   `json:"input"`

	First  *premium.Result `json:"first"`
	Second *variant.Quote  `json:"second,omitempty"`

	CustomDiscountPercent *float64 `json:"custom_discount_percent,omitempty"`
	CustomTotal           float64  `json:"custom_total,omitempty"`

	// Report is the client-facing breakdown in Markdown.
	Report string `json:"report"`
}
