package registry

import "time"

type Gender string

const (
	GenderMale   Gender = "m"
	GenderFemale Gender = "f"
)

type ObjectType string

const (
	ObjectFlat       ObjectType = "flat"
	ObjectApartment  ObjectType = "apartment"
	ObjectTownhouse  ObjectType = "townhouse"
	ObjectHouseBrick ObjectType = "house_brick"
	ObjectHouseWood  ObjectType = "house_wood"
)

type Material string

const (
	MaterialBrick       Material = "brick"
	MaterialWood        Material = "wood"
	MaterialAeratedConc Material = "gasobet"
)

type Risk string

const (
	RiskLife     Risk = "life"
	RiskProperty Risk = "property"
	RiskTitle    Risk = "title"
)

// LifeModel selects which life tariff schedule a bank uses.
type LifeModel string

const (
	LifeModelBase  LifeModel = "base"
	LifeModelDomRF LifeModel = "domrf"
	LifeModelRSHB  LifeModel = "rshb"
	LifeModelSPB   LifeModel = "spb"
	LifeModelMKB   LifeModel = "mkb"
	LifeModelGPB   LifeModel = "gpb"
	LifeModelVTB   LifeModel = "vtb"
)

// BankTerms is one revision of a bank's commercial rules. A bank carries an
// ordered list of revisions; the one in force is the last whose ValidFrom is
// not after the contract date.
type BankTerms struct {
	ValidFrom time.Time

	// MarkupPercent is the fixed markup on the debt balance. nil means the
	// client supplies the markup percent themselves (Альфа Банк, УБРИР).
	MarkupPercent *float64

	AllowDiscountLife     bool
	AllowDiscountProperty bool
	AllowDiscountTitle    bool

	// Per-category overrides of the default discount percents. nil = default.
	DiscountLifePercent     *float64
	DiscountPropertyPercent *float64
	DiscountTitlePercent    *float64
}

type BankConfig struct {
	Name      string
	Aliases   []string
	LifeModel LifeModel

	// ShareSumExempt banks accept borrower shares that do not sum to 100.
	ShareSumExempt bool

	Terms []BankTerms
}

// EffectiveTerms resolves the bank terms in force on the contract date.
// A zero contract date resolves to the first (oldest) revision.
func (b *BankConfig) EffectiveTerms(contractDate time.Time) BankTerms {
	terms := b.Terms[0]
	if contractDate.IsZero() {
		return terms
	}
	for _, t := range b.Terms[1:] {
		if t.ValidFrom.After(contractDate) {
			break
		}
		terms = t
	}
	return terms
}

// LifeTable maps gender and age to a tariff rate in percent of the insured
// amount. Male and Female are indexed by age-MinAge. ClampAges tables serve
// out-of-range ages at the nearest edge rate instead of failing (РСХБ).
type LifeTable struct {
	Name      string
	MinAge    int
	MaxAge    int
	ClampAges bool
	Male      []float64
	Female    []float64
}

func (t *LifeTable) Rate(g Gender, age int) (float64, bool) {
	if age < t.MinAge || age > t.MaxAge {
		if !t.ClampAges {
			return 0, false
		}
		age = min(max(age, t.MinAge), t.MaxAge)
	}
	i := age - t.MinAge
	switch g {
	case GenderMale:
		return t.Male[i], true
	case GenderFemale:
		return t.Female[i], true
	}
	return 0, false
}

// LifeVersion is one entry of a bank's date-conditional life tariff schedule.
// Overflow, when set, serves ages the primary table does not cover (ВТБ keeps
// the pre-cutoff table for borrowers over 50).
type LifeVersion struct {
	ValidFrom time.Time
	Table     *LifeTable
	Overflow  *LifeTable
}

type LifeSchedule []LifeVersion

// PropertyRule is one revision of property rates for a bank.
// BundledRates, when present, replace Rates for requests that also carry
// life insurance.
type PropertyRule struct {
	ValidFrom    time.Time
	Rates        map[ObjectType]float64
	BundledRates map[ObjectType]float64
}

// TitleRule is one revision of title rates. WithLife applies when the request
// bundles life insurance, Solo otherwise.
type TitleRule struct {
	ValidFrom time.Time
	WithLife  float64
	Solo      float64
}

// CoverKind names a rider sub-coverage.
type CoverKind string

const (
	CoverFinish    CoverKind = "finish"
	CoverMovable   CoverKind = "movable"
	CoverLiability CoverKind = "liability"
	CoverConstruct CoverKind = "construct"
)

// Tier is one band of a tiered sum-insured rate table. Rate is a fraction of
// the sum insured (premium = sum × Rate).
type Tier struct {
	MinSum float64
	MaxSum float64
	Rate   float64
}

type SubCoverage struct {
	Kind  CoverKind
	Label string
	Tiers []Tier
}

func (c SubCoverage) MinSum() float64 { return c.Tiers[0].MinSum }

func (c SubCoverage) MaxSum() float64 { return c.Tiers[len(c.Tiers)-1].MaxSum }

// RateFor returns the tier rate for a sum insured, clamping to the nearest
// tier when the sum falls outside the table.
func (c SubCoverage) RateFor(sum float64) float64 {
	for _, t := range c.Tiers {
		if sum >= t.MinSum && sum <= t.MaxSum {
			return t.Rate
		}
	}
	if sum < c.Tiers[0].MinSum {
		return c.Tiers[0].Rate
	}
	return c.Tiers[len(c.Tiers)-1].Rate
}

// Pack is a fixed-price bundle of a pack-priced rider (Экспресс products).
type Pack struct {
	FinishSum    float64
	MovableSum   float64
	LiabilitySum float64
	Premium      float64
}

// RiderProduct is a supplementary coverage product offered in the discounted
// second quote. Products are either cover-priced (tiered sub-coverages) or
// pack-priced (fixed bundles), never both.
type RiderProduct struct {
	ID       string
	Name     string
	RiskName string

	// Objects restricts eligibility. Empty means any property object.
	Objects []ObjectType

	// Priority products are preferred by the optimizer when viable.
	Priority bool

	Covers []SubCoverage
	Packs  []Pack
}

func (p *RiderProduct) Eligible(obj ObjectType) bool {
	if len(p.Objects) == 0 {
		return true
	}
	for _, o := range p.Objects {
		if o == obj {
			return true
		}
	}
	return false
}

func (p *RiderProduct) Cover(kind CoverKind) (SubCoverage, bool) {
	for _, c := range p.Covers {
		if c.Kind == kind {
			return c, true
		}
	}
	return SubCoverage{}, false
}

// CheapestPack returns the lowest-premium pack of a pack-priced product.
func (p *RiderProduct) CheapestPack() Pack {
	best := p.Packs[0]
	for _, pk := range p.Packs[1:] {
		if pk.Premium < best.Premium {
			best = pk
		}
	}
	return best
}

// DiscountDefaults are the standard discount percents applied when a bank
// allows a category discount and carries no override.
type DiscountDefaults struct {
	Life     float64
	Property float64
	Title    float64
}

// OptimizerConfig is the target price-gap window for the second quote.
// The window is configuration, not a domain law; revisions of the source
// data have carried different values.
type OptimizerConfig struct {
	GapMin          float64
	GapMax          float64
	GapTarget       float64
	SizingThreshold float64
	SizingTarget    float64

	// EnhancedDiscountPercent replaces the standard category discounts in the
	// second quote.
	EnhancedDiscountPercent float64
}
