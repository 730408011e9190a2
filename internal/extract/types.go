package extract

import (
	"time"

	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Band grades how much of the request the extractor recovered.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Borrower is one insured person recovered from the request text.
// BirthDate is zero when the text named a person without a date.
type Borrower struct {
	BirthDate    time.Time       `json:"birth_date"`
	Gender       registry.Gender `json:"gender,omitempty"`
	SharePercent float64         `json:"share_percent"`
}

// AgeAt returns full years at the reference date. A zero reference resolves
// against the current date. Returns -1 when the birth date is unknown.
func (b Borrower) AgeAt(ref time.Time) int {
	if b.BirthDate.IsZero() {
		return -1
	}
	if ref.IsZero() {
		ref = time.Now()
	}
	age := ref.Year() - b.BirthDate.Year()
	if ref.Month() < b.BirthDate.Month() ||
		(ref.Month() == b.BirthDate.Month() && ref.Day() < b.BirthDate.Day()) {
		age--
	}
	return age
}

// Risks marks which coverages the request asks for.
type Risks struct {
	Life     bool `json:"life"`
	Property bool `json:"property"`
	Title    bool `json:"title"`
}

// Candidate records where a balance value came from, for diagnostics.
type Candidate struct {
	Source string  `json:"source"`
	Value  float64 `json:"value"`
}

// Result is the structured form of a free-text quote request. Extraction
// never fails: fields the text did not yield stay zero and the confidence
// score reflects what is missing.
type Result struct {
	Bank           string  `json:"bank,omitempty"`
	BankConfidence float64 `json:"bank_confidence"`

	Balance           float64     `json:"balance"`
	BalanceCandidates []Candidate `json:"balance_candidates,omitempty"`

	ContractDate time.Time `json:"contract_date"`

	Risks     Risks      `json:"risks"`
	Borrowers []Borrower `json:"borrowers,omitempty"`

	ObjectType registry.ObjectType `json:"object_type,omitempty"`
	Material   registry.Material   `json:"material,omitempty"`
	YearBuilt  int                 `json:"year_built,omitempty"`
	Gas        *bool               `json:"gas,omitempty"`

	// MarkupPercent is nil when the text carried no explicit rate.
	MarkupPercent *float64 `json:"markup_percent,omitempty"`

	Confidence     float64  `json:"confidence"`
	ConfidenceBand Band     `json:"confidence_band"`
	Notes          []string `json:"notes,omitempty"`
}
