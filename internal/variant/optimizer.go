package variant

import (
	"math"

	"github.com/quotelab/mortgage-quoter/internal/premium"
	"github.com/quotelab/mortgage-quoter/internal/registry"
)

// Optimizer builds the discounted second quote: the core risks repriced at
// the enhanced discount plus one supplementary rider product, picked so the
// saving against the first quote lands inside the configured gap window.
type Optimizer struct {
	reg *registry.Registry
	cfg registry.OptimizerConfig
}

func New(reg *registry.Registry) *Optimizer {
	return &Optimizer{reg: reg, cfg: reg.Optimizer}
}

// RiderLine is one supplementary coverage in the second quote. Sum is zero
// for pack-priced products.
type RiderLine struct {
	Product string  `json:"product"`
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Sum     float64 `json:"sum,omitempty"`
	Premium float64 `json:"premium"`
}

// Quote is the optimized second quote.
type Quote struct {
	ProductID       string      `json:"product_id"`
	ProductName     string      `json:"product_name"`
	RiskName        string      `json:"risk_name"`
	DiscountPercent float64     `json:"discount_percent"`
	CoreTotal       float64     `json:"core_total"`
	Riders          []RiderLine `json:"riders"`
	Total           float64     `json:"total"`
	Gap             float64     `json:"gap"`
}

type candidate struct {
	product *registry.RiderProduct
	riders  []RiderLine
	premium float64
	total   float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Optimize builds the second quote for a priced request, or nil when no
// viable one exists: life-only requests, unknown object kinds, and gaps
// below the minimum all yield nil.
func (o *Optimizer) Optimize(base *premium.Result, in premium.Input) *Quote {
	if in.Life && !in.Property {
		return nil
	}

	obj := in.ObjectType
	if obj == "" {
		obj = registry.ObjectFlat
	}
	switch obj {
	case registry.ObjectFlat, registry.ObjectApartment, registry.ObjectTownhouse,
		registry.ObjectHouseBrick, registry.ObjectHouseWood:
	default:
		return nil
	}

	core := base.DiscountedTotal(o.cfg.EnhancedDiscountPercent)
	v1 := base.TotalBase

	var candidates []candidate
	for _, p := range o.reg.Riders(obj) {
		c, ok := o.seed(p, base.InsuredAmount)
		if !ok {
			continue
		}
		c.total = round2(core + c.premium)
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return nil
	}

	best := o.pick(candidates, v1)
	if best == nil {
		return nil
	}

	if v1-best.total > o.cfg.SizingThreshold {
		if sized := o.size(best, base.InsuredAmount, core, v1); sized != nil {
			best = sized
		}
	}
	if best.total >= v1 {
		return nil
	}

	return &Quote{
		ProductID:       best.product.ID,
		ProductName:     best.product.Name,
		RiskName:        best.product.RiskName,
		DiscountPercent: o.cfg.EnhancedDiscountPercent,
		CoreTotal:       core,
		Riders:          best.riders,
		Total:           best.total,
		Gap:             round2(v1 - best.total),
	}
}

// seed computes the starting premium for a product: the cheapest pack for
// pack-priced products, a moderate finish sum for cover-priced ones.
func (o *Optimizer) seed(p *registry.RiderProduct, insured float64) (candidate, bool) {
	c := candidate{product: p}

	if len(p.Packs) > 0 {
		pk := p.CheapestPack()
		c.premium = pk.Premium
		c.riders = []RiderLine{{
			Product: p.ID,
			Name:    p.Name,
			Label:   p.RiskName,
			Premium: pk.Premium,
		}}
		return c, true
	}

	cover, ok := p.Cover(registry.CoverFinish)
	if !ok {
		return c, false
	}
	sum, ok := seedFinishSum(cover, insured)
	if !ok {
		return c, false
	}
	prem := round2(sum * cover.RateFor(sum))
	c.premium = prem
	c.riders = []RiderLine{{
		Product: p.ID,
		Name:    p.Name,
		Label:   cover.Label,
		Sum:     sum,
		Premium: prem,
	}}
	return c, true
}

// seedFinishSum picks a finish sum proportional to the insured amount but
// capped at triple the table minimum so the rider stays modest.
func seedFinishSum(cover registry.SubCoverage, insured float64) (float64, bool) {
	min := cover.MinSum()
	max := math.Min(cover.MaxSum(), insured)
	if insured < min {
		return math.Min(min, max), max >= min
	}
	share := 0.1
	if insured > 5_000_000 {
		share = 0.05
	}
	sum := math.Min(max, math.Min(min*3, math.Max(min, insured*share)))
	if sum < min || sum > max {
		return 0, false
	}
	return math.Round(sum), true
}

// pick chooses among candidates. Priority products go first: inside the gap
// window the dearest wins (more coverage for the same saving), outside it the
// one closest to the target gap. Non-priority products are a fallback with
// the cheapest preferred inside the window.
func (o *Optimizer) pick(candidates []candidate, v1 float64) *candidate {
	var priority, rest []candidate
	for _, c := range candidates {
		if c.product.Priority {
			priority = append(priority, c)
		} else {
			rest = append(rest, c)
		}
	}

	if best := o.pickFrom(priority, v1, true); best != nil {
		return best
	}
	return o.pickFrom(rest, v1, false)
}

func (o *Optimizer) pickFrom(candidates []candidate, v1 float64, preferDear bool) *candidate {
	var best *candidate
	var bestGap float64
	for i := range candidates {
		c := &candidates[i]
		gap := v1 - c.total
		if gap < o.cfg.GapMin {
			continue
		}
		if best == nil {
			best, bestGap = c, gap
			continue
		}
		if gap <= o.cfg.GapMax {
			inBand := bestGap <= o.cfg.GapMax
			switch {
			case !inBand:
				best, bestGap = c, gap
			case preferDear && c.total > best.total:
				best, bestGap = c, gap
			case !preferDear && c.total < best.total:
				best, bestGap = c, gap
			}
		} else if bestGap > o.cfg.GapMax &&
			math.Abs(gap-o.cfg.GapTarget) < math.Abs(bestGap-o.cfg.GapTarget) {
			best, bestGap = c, gap
		}
	}
	return best
}
