package premium

import (
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Borrower is an insured person as the calculator needs them: resolved
// gender, birth date and a debt share in percent.
type Borrower struct {
	Gender       registry.Gender `json:"gender"`
	BirthDate    time.Time       `json:"birth_date"`
	SharePercent float64         `json:"share_percent"`
}

// Input is a validated quote request. The pipeline maps extractor output
// here after the validation checklist passes.
type Input struct {
	BankName     string    `json:"bank_name"`
	Balance      float64   `json:"balance"`
	ContractDate time.Time `json:"contract_date"`

	// MarkupPercent from the request text, used only by banks whose markup
	// is client-supplied.
	MarkupPercent *float64 `json:"markup_percent,omitempty"`

	Life     bool `json:"life"`
	Property bool `json:"property"`
	Title    bool `json:"title"`

	Borrowers  []Borrower          `json:"borrowers,omitempty"`
	ObjectType registry.ObjectType `json:"object_type,omitempty"`
	Material   registry.Material   `json:"material,omitempty"`
}

// LifeLine is one borrower's premium line.
type LifeLine struct {
	Gender       registry.Gender `json:"gender"`
	Age          int             `json:"age"`
	SharePercent float64         `json:"share_percent"`
	RatePercent  float64         `json:"rate_percent"`
	Premium      float64         `json:"premium"`
	Discounted   float64         `json:"discounted"`
}

// RiskTotal carries one coverage's premium before and after the standard
// bank discount. Discounted equals Premium when the bank bars the discount.
type RiskTotal struct {
	RatePercent     float64 `json:"rate_percent,omitempty"`
	Premium         float64 `json:"premium"`
	Discounted      float64 `json:"discounted"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
	HasDiscount     bool    `json:"has_discount"`
}

// Result is the full first-quote breakdown: per-risk premiums at list price
// and with the standard bank-gated discounts.
type Result struct {
	Bank          string  `json:"bank"`
	Balance       float64 `json:"balance"`
	MarkupPercent float64 `json:"markup_percent"`
	InsuredAmount float64 `json:"insured_amount"`

	Life      *RiskTotal `json:"life,omitempty"`
	LifeLines []LifeLine `json:"life_lines,omitempty"`
	Property  *RiskTotal `json:"property,omitempty"`
	Title     *RiskTotal `json:"title,omitempty"`

	TotalBase       float64 `json:"total_base"`
	TotalDiscounted float64 `json:"total_discounted"`

	// Warnings note degraded parts of the quote (skipped borrowers, missing
	// client markup). The quote itself is still produced.
	Warnings []string `json:"warnings,omitempty"`
}

// DiscountedTotal recomputes the quote total with every allowed discount
// replaced by the given percent. Risks whose discount the bank bars stay at
// list price. Used for the enhanced second quote and custom third quote.
func (r *Result) DiscountedTotal(percent float64) float64 {
	var total float64
	k := 1 - percent/100
	add := func(rt *RiskTotal) {
		if rt == nil {
			return
		}
		if rt.HasDiscount {
			total += round2(rt.Premium * k)
		} else {
			total += rt.Premium
		}
	}
	add(r.Life)
	add(r.Property)
	add(r.Title)
	return round2(total)
}
